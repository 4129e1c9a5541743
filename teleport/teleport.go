// Package teleport aims a pointer ray at teleportation area meshes and decides
// where, and whether, the player may teleport.
package teleport

import (
	"math"

	"github.com/op/go-logging"
	"github.com/wacki/teleportarea/mesh"
)

var log = logging.MustGetLogger("teleportarea:teleport")

func init() {
	logging.SetLevel(logging.WARNING, "teleportarea:teleport")
}

const DefaultMaxDistance = 10.0

var (
	LegalColor   = mesh.Color{R: 0, G: 1, B: 0, A: 1}
	IllegalColor = mesh.Color{R: 1, G: 0, B: 0, A: 1}
)

type Ray struct {
	Origin    mesh.Vec3
	Direction mesh.Vec3
}

// At returns the point dist along the ray.
func (r Ray) At(dist float64) mesh.Vec3 {
	return r.Origin.Add(r.Direction.Scale(dist))
}

// Target is where the pointer currently lands.
type Target struct {
	// Visible is false when the ray hits neither an area nor the ground.
	Visible bool
	// Legal is true when the ray hit a teleportation area.
	Legal    bool
	Position mesh.Vec3
	Distance float64
}

// Color is the marker color for the target.
func (t Target) Color() mesh.Color {
	if t.Legal {
		return LegalColor
	}
	return IllegalColor
}

// Teleporter casts rays against a set of teleportation area meshes.
type Teleporter struct {
	Areas []*mesh.Mesh
	// MaxDistance limits how far away an area can be hit. Zero or less means
	// DefaultMaxDistance.
	MaxDistance float64
}

func New(areas ...*mesh.Mesh) *Teleporter {
	return &Teleporter{Areas: areas, MaxDistance: DefaultMaxDistance}
}

// Aim casts r against the areas. When no area is in reach, the ray falls back
// to the ground plane at height refY, which gives a visible but illegal
// target.
func (t *Teleporter) Aim(r Ray, refY float64) Target {
	r.Direction = r.Direction.Normalized()

	if dist, ok := t.raycast(r); ok {
		return Target{Visible: true, Legal: true, Position: r.At(dist), Distance: dist}
	}

	dist, ok := raycastPlane(r, refY)
	if !ok {
		return Target{}
	}
	return Target{Visible: true, Position: r.At(dist), Distance: dist}
}

// Teleport aims and, on a legal target, returns the reference position moved
// onto it. Otherwise the reference position is returned unchanged.
func (t *Teleporter) Teleport(r Ray, reference mesh.Vec3) (mesh.Vec3, Target) {
	target := t.Aim(r, reference.Y)
	if !target.Legal {
		return reference, target
	}
	log.Debugf("teleporting from %v to %v", reference, target.Position)
	return target.Position, target
}

// Closest hit within MaxDistance over all areas.
func (t *Teleporter) raycast(r Ray) (float64, bool) {
	best := math.Inf(1)
	for _, m := range t.Areas {
		for i := 0; i < m.TriangleCount(); i++ {
			a, b, c := m.Triangle(i)
			if dist, ok := raycastTriangle(r, a, b, c); ok && dist < best {
				best = dist
			}
		}
	}
	if best > t.maxDistance() {
		return 0, false
	}
	return best, true
}

func (t *Teleporter) maxDistance() float64 {
	if t.MaxDistance <= 0 {
		return DefaultMaxDistance
	}
	return t.MaxDistance
}

const parallelEpsilon = 1e-12

// Möller-Trumbore intersection. Only the front face counts, which is the side
// the area faces up from.
func raycastTriangle(r Ray, a, b, c mesh.Vec3) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	normal := e1.Cross(e2)
	if r.Direction.Dot(normal) >= 0 {
		return 0, false
	}

	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < parallelEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := e2.Dot(q) * inv
	return dist, dist > 0
}

func raycastPlane(r Ray, y float64) (float64, bool) {
	if math.Abs(r.Direction.Y) < parallelEpsilon {
		return 0, false
	}
	dist := (y - r.Origin.Y) / r.Direction.Y
	return dist, dist > 0
}

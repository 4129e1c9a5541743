package playarea

import (
	"math"

	"github.com/pkg/errors"
	"github.com/wacki/teleportarea/mesh"
)

var fadedWhite = mesh.White.WithAlpha(0)

var borderTriangles = []int{
	0, 1, 4,
	1, 5, 4,
	1, 2, 5,
	2, 6, 5,
	2, 3, 6,
	3, 7, 6,
	3, 0, 7,
	0, 4, 7,
}

// BorderMesh builds a band of the given thickness around the outside of r. The
// inner edge is opaque and the outer edge fades out. A zero thickness has no
// mesh.
func BorderMesh(r Rect, thickness float64) *mesh.Mesh {
	if thickness == 0 {
		return nil
	}

	n := len(r)
	vertices := make([]mesh.Vec3, 2*n)
	for i, c := range r {
		vertices[i] = mesh.Vec3{X: c.X, Y: borderLift, Z: c.Z}
	}

	for i := 0; i < n; i++ {
		next := vertices[(i+1)%n].Sub(vertices[i]).Normalized()
		prev := vertices[(i+n-1)%n].Sub(vertices[i]).Normalized()

		v := vertices[i]
		v = v.Add(next.Cross(mesh.Up).Scale(thickness))
		v = v.Add(prev.Cross(mesh.Down).Scale(thickness))
		vertices[n+i] = v
	}

	m := &mesh.Mesh{
		Name:      "PlayAreaBorder",
		Vertices:  vertices,
		Triangles: append([]int(nil), borderTriangles...),
		UV: []mesh.Vec2{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0},
			{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
		},
		Colors: make([]mesh.Color, 2*n),
	}
	for i := range m.Colors {
		if i < n {
			m.Colors[i] = mesh.White
		} else {
			m.Colors[i] = fadedWhite
		}
	}
	return m
}

// PlayerMesh builds an open cylinder band around the player's feet that fades
// towards its top edge.
func PlayerMesh(slices int, radius, height float64) (*mesh.Mesh, error) {
	if slices < 3 {
		return nil, errors.Errorf("player mesh needs at least 3 slices, got %d", slices)
	}

	numVertices := slices * 2
	m := &mesh.Mesh{
		Name:      "PlayerObject",
		Vertices:  make([]mesh.Vec3, numVertices),
		Colors:    make([]mesh.Color, numVertices),
		Triangles: make([]int, 0, slices*6),
	}

	segment := 2 * math.Pi / float64(slices)
	for i := 0; i < slices; i++ {
		i0 := i * 2
		i1 := i0 + 1
		i2 := (i0 + 2) % numVertices
		i3 := (i0 + 3) % numVertices

		angle := float64(i) * segment
		x := radius * math.Sin(angle)
		z := radius * math.Cos(angle)

		m.Vertices[i0] = mesh.Vec3{X: x, Y: 0, Z: z}
		m.Vertices[i1] = mesh.Vec3{X: x, Y: height, Z: z}
		m.Colors[i0] = mesh.White
		m.Colors[i1] = fadedWhite

		m.Triangles = append(m.Triangles, i0, i1, i2, i2, i1, i3)
	}
	return m, nil
}

// Package area models teleportation areas: a walkable floor outline with
// optional holes, stored as YAML documents, and the mesh that was last
// generated for it.
package area

import (
	"io"
	"os"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/wacki/teleportarea/internal/triangulate"
	"github.com/wacki/teleportarea/mesh"
	"gopkg.in/yaml.v3"
)

var log = logging.MustGetLogger("teleportarea:area")

func init() {
	logging.SetLevel(logging.WARNING, "teleportarea:area")
}

// DefaultMeshSavePath is where meshes go when an area does not say otherwise.
const DefaultMeshSavePath = "Assets/TeleportationAreas/"

// VertexList is an outline in world space. Only X and Z matter for the floor
// shape.
type VertexList []mesh.Vec3

// Area is a teleportation area document.
type Area struct {
	Name         string       `yaml:"name"`
	MeshSavePath string       `yaml:"meshSavePath,omitempty"`
	Height       float64      `yaml:"height"`
	Outer        VertexList   `yaml:"outer"`
	Holes        []VertexList `yaml:"holes,omitempty"`
	// Name of the mesh generated by the last build, if any
	MeshName string `yaml:"mesh,omitempty"`
}

func Load(r io.Reader) (*Area, error) {
	var a Area
	if err := yaml.NewDecoder(r).Decode(&a); err != nil {
		return nil, errors.Wrap(err, "decoding area")
	}
	return &a, nil
}

func LoadFile(path string) (*Area, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Load(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return a, nil
}

func (a *Area) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a); err != nil {
		return errors.Wrap(err, "encoding area")
	}
	return enc.Close()
}

func (a *Area) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := a.Save(f); err != nil {
		f.Close()
		return errors.Wrap(err, path)
	}
	return f.Close()
}

// SavePath is the folder meshes for this area are stored in.
func (a *Area) SavePath() string {
	if a.MeshSavePath == "" {
		return DefaultMeshSavePath
	}
	return a.MeshSavePath
}

// AddHole appends an empty hole and returns its index.
func (a *Area) AddHole() int {
	a.Holes = append(a.Holes, VertexList{})
	return len(a.Holes) - 1
}

func (a *Area) RemoveHole(i int) error {
	if i < 0 || i >= len(a.Holes) {
		return errors.Errorf("area %s has no hole %d", a.Name, i)
	}
	a.Holes = append(a.Holes[:i], a.Holes[i+1:]...)
	return nil
}

// Project drops the outline onto the floor plane. Holes that are still being
// authored, with fewer than three vertices, are left out.
func (a *Area) Project() (outer triangulate.Ring, holes []triangulate.Ring) {
	outer = a.Outer.project()
	for _, hole := range a.Holes {
		if len(hole) < 3 {
			continue
		}
		holes = append(holes, hole.project())
	}
	return outer, holes
}

func (l VertexList) project() triangulate.Ring {
	ring := make(triangulate.Ring, len(l))
	for i, v := range l {
		ring[i] = triangulate.Point{X: v.X, Y: v.Z}
	}
	return ring
}

// FromRings builds an area from floor plane rings.
func FromRings(name string, outer triangulate.Ring, holes []triangulate.Ring) *Area {
	a := &Area{Name: name, Outer: unproject(outer)}
	for _, hole := range holes {
		a.Holes = append(a.Holes, unproject(hole))
	}
	return a
}

func unproject(ring triangulate.Ring) VertexList {
	l := make(VertexList, len(ring))
	for i, p := range ring {
		l[i] = mesh.Vec3{X: p.X, Z: p.Y}
	}
	return l
}

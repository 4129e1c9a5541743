// Package mesh holds renderable triangle meshes built from floor
// triangulations, along with the few operations an authoring pipeline needs:
// lifting 2D results into 3D, compacting vertex buffers and exporting them.
package mesh

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/wacki/teleportarea/internal/triangulate"
)

// Mesh is an indexed triangle list. UV and Colors are optional, but when set
// they hold one entry per vertex.
type Mesh struct {
	Name      string  `json:"name"`
	Vertices  []Vec3  `json:"vertices"`
	Triangles []int   `json:"triangles"`
	UV        []Vec2  `json:"uv,omitempty"`
	Colors    []Color `json:"colors,omitempty"`
}

// Lift places a floor triangulation at a constant height. The plane's Y axis
// becomes the world Z axis.
func Lift(res *triangulate.Result, height float64) *Mesh {
	return LiftFunc(res, func(x, z float64) float64 {
		return height
	})
}

// LiftFunc is like Lift, but samples the height of every vertex from heightAt,
// for example to drape an area over terrain.
func LiftFunc(res *triangulate.Result, heightAt func(x, z float64) float64) *Mesh {
	m := &Mesh{
		Vertices:  make([]Vec3, len(res.Vertices)),
		Triangles: make([]int, len(res.Indices)),
	}
	for i, p := range res.Vertices {
		m.Vertices[i] = Vec3{p.X, heightAt(p.X, p.Y), p.Y}
	}
	copy(m.Triangles, res.Indices)
	return m
}

func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// Triangle returns the corners of the i-th triangle.
func (m *Mesh) Triangle(i int) (a, b, c Vec3) {
	return m.Vertices[m.Triangles[3*i]], m.Vertices[m.Triangles[3*i+1]], m.Vertices[m.Triangles[3*i+2]]
}

// Validate checks that the buffers are consistent with each other.
func (m *Mesh) Validate() error {
	if len(m.Triangles)%3 != 0 {
		return errors.Errorf("mesh %q: index count %d is not a multiple of 3", m.Name, len(m.Triangles))
	}
	for i, index := range m.Triangles {
		if index < 0 || index >= len(m.Vertices) {
			return errors.Errorf("mesh %q: index %d at %d is out of range", m.Name, index, i)
		}
	}
	if m.UV != nil && len(m.UV) != len(m.Vertices) {
		return errors.Errorf("mesh %q: %d uvs for %d vertices", m.Name, len(m.UV), len(m.Vertices))
	}
	if m.Colors != nil && len(m.Colors) != len(m.Vertices) {
		return errors.Errorf("mesh %q: %d colors for %d vertices", m.Name, len(m.Colors), len(m.Vertices))
	}
	return nil
}

// Optimize reorders vertices by their first use in the index buffer and drops
// the ones no triangle references. Triangles are left in place. A mesh that
// fails Validate is returned as an error and left untouched.
func (m *Mesh) Optimize() error {
	if err := m.Validate(); err != nil {
		return err
	}

	remap := make([]int, len(m.Vertices))
	for i := range remap {
		remap[i] = -1
	}

	order := make([]int, 0, len(m.Vertices))
	for i, index := range m.Triangles {
		if remap[index] < 0 {
			remap[index] = len(order)
			order = append(order, index)
		}
		m.Triangles[i] = remap[index]
	}

	vertices := make([]Vec3, len(order))
	for i, old := range order {
		vertices[i] = m.Vertices[old]
	}
	m.Vertices = vertices

	if m.UV != nil {
		uv := make([]Vec2, len(order))
		for i, old := range order {
			uv[i] = m.UV[old]
		}
		m.UV = uv
	}
	if m.Colors != nil {
		colors := make([]Color, len(order))
		for i, old := range order {
			colors[i] = m.Colors[old]
		}
		m.Colors = colors
	}
	return nil
}

// Bounds returns the axis aligned box around all vertices. An empty mesh has
// inverted infinite bounds.
func (m *Mesh) Bounds() (min, max Vec3) {
	min = Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Vertices {
		min = Vec3{math.Min(min.X, v.X), math.Min(min.Y, v.Y), math.Min(min.Z, v.Z)}
		max = Vec3{math.Max(max.X, v.X), math.Max(max.Y, v.Y), math.Max(max.Z, v.Z)}
	}
	return min, max
}

// Area sums the surface area of all triangles.
func (m *Mesh) Area() float64 {
	var area float64
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		area += b.Sub(a).Cross(c.Sub(a)).Len() / 2
	}
	return area
}

// WriteOBJ writes the mesh as a Wavefront OBJ object. Face indices are one
// based, and texture coordinates are referenced when the mesh has them.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if m.Name != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, uv := range m.UV {
		fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
	}
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangles[3*i]+1, m.Triangles[3*i+1]+1, m.Triangles[3*i+2]+1
		if m.UV != nil {
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
		} else {
			fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
		}
	}
	return errors.Wrap(bw.Flush(), "writing obj")
}

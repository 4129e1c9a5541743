package mesh

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wacki/teleportarea/internal/triangulate"
)

func squareWithHole(t *testing.T) *triangulate.Result {
	t.Helper()
	outer := triangulate.Ring{{X: -2, Y: -2}, {X: 2, Y: -2}, {X: 2, Y: 2}, {X: -2, Y: 2}}
	hole := triangulate.Ring{{X: -0.5, Y: 0.5}, {X: 0.5, Y: 0.5}, {X: 0.5, Y: -0.5}, {X: -0.5, Y: -0.5}}
	res, err := triangulate.Triangulate(outer, []triangulate.Ring{hole})
	require.NoError(t, err)
	return res
}

func TestLift(t *testing.T) {
	res := squareWithHole(t)
	m := Lift(res, 1.5)
	require.NoError(t, m.Validate())
	assert.Equal(t, res.Indices, m.Triangles)
	for i, v := range m.Vertices {
		assert.Equal(t, res.Vertices[i].X, v.X)
		assert.Equal(t, 1.5, v.Y)
		assert.Equal(t, res.Vertices[i].Y, v.Z)
	}
	assert.InDelta(t, 15, m.Area(), 1e-9)

	// Lifted triangles stay clockwise when seen from above
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		assert.Greater(t, b.Sub(a).Cross(c.Sub(a)).Dot(Up), 0.0)
	}
}

func TestLiftFunc(t *testing.T) {
	m := LiftFunc(squareWithHole(t), func(x, z float64) float64 {
		return x + z
	})
	for _, v := range m.Vertices {
		assert.Equal(t, v.X+v.Z, v.Y)
	}
}

func TestOptimize(t *testing.T) {
	m := &Mesh{
		Vertices:  []Vec3{{0, 0, 0}, {9, 9, 9}, {1, 0, 0}, {0, 0, 1}},
		Triangles: []int{3, 2, 0},
		UV:        []Vec2{{0, 0}, {9, 9}, {1, 0}, {0, 1}},
		Colors:    []Color{White, Clear, White, Clear},
	}
	require.NoError(t, m.Optimize())
	require.NoError(t, m.Validate())
	assert.Equal(t, []int{0, 1, 2}, m.Triangles)
	assert.Equal(t, []Vec3{{0, 0, 1}, {1, 0, 0}, {0, 0, 0}}, m.Vertices)
	assert.Equal(t, []Vec2{{0, 1}, {1, 0}, {0, 0}}, m.UV)
	assert.Equal(t, []Color{Clear, White, White}, m.Colors)
}

func TestOptimizeOutOfRange(t *testing.T) {
	m := &Mesh{
		Vertices:  []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}},
		Triangles: []int{0, 1, 7},
	}
	require.NotPanics(t, func() {
		assert.Error(t, m.Optimize())
	})
	assert.Equal(t, []int{0, 1, 7}, m.Triangles)
	assert.Len(t, m.Vertices, 3)
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Mesh{Vertices: []Vec3{{}}, Triangles: []int{0, 0}}).Validate())
	assert.Error(t, (&Mesh{Vertices: []Vec3{{}}, Triangles: []int{0, 0, 1}}).Validate())
	assert.Error(t, (&Mesh{Vertices: []Vec3{{}}, UV: []Vec2{{}, {}}}).Validate())
	assert.Error(t, (&Mesh{Vertices: []Vec3{{}}, Colors: []Color{}}).Validate())
	assert.NoError(t, (&Mesh{}).Validate())
}

func TestBounds(t *testing.T) {
	min, max := Lift(squareWithHole(t), 3).Bounds()
	assert.Equal(t, Vec3{-2, 3, -2}, min)
	assert.Equal(t, Vec3{2, 3, 2}, max)
}

func TestWriteOBJ(t *testing.T) {
	m := &Mesh{
		Name:      "quad",
		Vertices:  []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
		Triangles: []int{2, 1, 0, 3, 2, 0},
	}
	var buf bytes.Buffer
	require.NoError(t, m.WriteOBJ(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"o quad",
		"v 0 0 0",
		"v 1 0 0",
		"v 1 0 1",
		"v 0 0 1",
		"f 3 2 1",
		"f 4 3 1",
	}, lines)

	m.UV = []Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	buf.Reset()
	require.NoError(t, m.WriteOBJ(&buf))
	assert.Contains(t, buf.String(), "vt 1 1\n")
	assert.Contains(t, buf.String(), "f 3/3 2/2 1/1\n")
}

func TestJSON(t *testing.T) {
	m := Lift(squareWithHole(t), 0)
	m.Name = "floor"
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "uv")

	var decoded Mesh
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m, &decoded)
}

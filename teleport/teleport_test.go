package teleport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wacki/teleportarea/internal/triangulate"
	"github.com/wacki/teleportarea/mesh"
)

const epsilon = 1e-9

// A 4x4 floor at height 0 with a 1x1 hole in the middle
func floor(t *testing.T) *mesh.Mesh {
	t.Helper()
	outer := triangulate.Ring{{X: -2, Y: -2}, {X: 2, Y: -2}, {X: 2, Y: 2}, {X: -2, Y: 2}}
	hole := triangulate.Ring{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: 0.5, Y: 0.5}, {X: -0.5, Y: 0.5}}
	res, err := triangulate.Triangulate(outer, []triangulate.Ring{hole})
	require.NoError(t, err)
	return mesh.Lift(res, 0)
}

func TestAim(t *testing.T) {
	tp := New(floor(t))

	t.Run("legal", func(t *testing.T) {
		target := tp.Aim(Ray{Origin: mesh.Vec3{X: -1.3, Y: 2, Z: -1.7}, Direction: mesh.Vec3{Y: -2}}, 0)
		assert.True(t, target.Visible)
		assert.True(t, target.Legal)
		assert.InDelta(t, 2, target.Distance, epsilon)
		assert.InDelta(t, -1.3, target.Position.X, epsilon)
		assert.InDelta(t, 0, target.Position.Y, epsilon)
		assert.Equal(t, LegalColor, target.Color())
	})

	t.Run("through the hole", func(t *testing.T) {
		target := tp.Aim(Ray{Origin: mesh.Vec3{Y: 2}, Direction: mesh.Vec3{Y: -1}}, -1)
		assert.True(t, target.Visible)
		assert.False(t, target.Legal)
		assert.InDelta(t, 3, target.Distance, epsilon)
		assert.InDelta(t, -1, target.Position.Y, epsilon)
		assert.Equal(t, IllegalColor, target.Color())
	})

	t.Run("from below", func(t *testing.T) {
		target := tp.Aim(Ray{Origin: mesh.Vec3{X: 1.5, Y: -1, Z: 1.5}, Direction: mesh.Vec3{Y: 1}}, 0)
		assert.False(t, target.Legal)
	})

	t.Run("out of reach", func(t *testing.T) {
		tp := New(floor(t))
		tp.MaxDistance = 1
		target := tp.Aim(Ray{Origin: mesh.Vec3{X: 1.5, Y: 2, Z: 1.5}, Direction: mesh.Vec3{Y: -1}}, 0)
		assert.True(t, target.Visible)
		assert.False(t, target.Legal)
	})

	t.Run("zero value reach", func(t *testing.T) {
		tp := &Teleporter{Areas: []*mesh.Mesh{floor(t)}}
		target := tp.Aim(Ray{Origin: mesh.Vec3{X: 1.5, Y: 2, Z: 1.5}, Direction: mesh.Vec3{Y: -1}}, 0)
		assert.True(t, target.Legal)
		assert.InDelta(t, 2, target.Distance, epsilon)

		target = tp.Aim(Ray{Origin: mesh.Vec3{X: 1.5, Y: DefaultMaxDistance + 1, Z: 1.5}, Direction: mesh.Vec3{Y: -1}}, 0)
		assert.False(t, target.Legal)
	})

	t.Run("at the sky", func(t *testing.T) {
		target := tp.Aim(Ray{Origin: mesh.Vec3{Y: 2}, Direction: mesh.Vec3{X: 1, Y: 1}}, 0)
		assert.False(t, target.Visible)
		target = tp.Aim(Ray{Origin: mesh.Vec3{Y: 2}, Direction: mesh.Vec3{X: 1}}, 0)
		assert.False(t, target.Visible)
	})

	t.Run("closest area wins", func(t *testing.T) {
		upper := floor(t)
		for i := range upper.Vertices {
			upper.Vertices[i].Y = 1
		}
		tp := New(floor(t), upper)
		target := tp.Aim(Ray{Origin: mesh.Vec3{X: 1.3, Y: 3, Z: 1.7}, Direction: mesh.Vec3{Y: -1}}, 0)
		assert.True(t, target.Legal)
		assert.InDelta(t, 1, target.Position.Y, epsilon)
	})
}

func TestTeleport(t *testing.T) {
	tp := New(floor(t))
	reference := mesh.Vec3{X: 0, Y: 0, Z: -1.5}

	pos, target := tp.Teleport(Ray{Origin: mesh.Vec3{X: 0.1, Y: 1.5, Z: -1.5}, Direction: mesh.Vec3{Y: -0.5, Z: 0.9}}, reference)
	require.True(t, target.Legal)
	assert.InDelta(t, 0.1, pos.X, epsilon)
	assert.InDelta(t, 1.2, pos.Z, epsilon)
	assert.InDelta(t, 0, pos.Y, epsilon)

	// Aiming into the hole leaves the reference where it was
	pos, target = tp.Teleport(Ray{Origin: mesh.Vec3{Y: 1}, Direction: mesh.Vec3{Y: -1}}, reference)
	assert.False(t, target.Legal)
	assert.Equal(t, reference, pos)
}

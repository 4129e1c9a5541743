// Constrained triangulation of floor outlines for VR teleportation areas.
//
// This package converts a simple polygon, which may be non-convex and may
// contain holes, into a set of triangles using only the original points. The
// result indexes into a pooled vertex array made of the outer ring followed by
// each hole, which is exactly the layout a mesh needs. See the mesh, area and
// meshstore packages for turning results into stored meshes.
package teleportarea

import "github.com/wacki/teleportarea/internal/triangulate"

type Point = triangulate.Point
type Ring = triangulate.Ring
type Result = triangulate.Result
type Option = triangulate.Option

type InvalidInputError = triangulate.InvalidInputError
type GeometryError = triangulate.GeometryError

// Triangulate an outer ring with holes.
//
// Either ring orientation is accepted. Holes with fewer than three points are
// skipped. Triangles in the result are wound clockwise. Invalid topology is
// reported as a *GeometryError unless validation is turned off.
func Triangulate(outer Ring, holes []Ring, opts ...Option) (*Result, error) {
	return triangulate.Triangulate(outer, holes, opts...)
}

// WithoutValidation skips the up-front topology checks.
func WithoutValidation() Option {
	return triangulate.WithoutValidation()
}

// WithValidation turns the up-front topology checks on or off. They are on by
// default.
func WithValidation(validate bool) Option {
	return triangulate.WithValidation(validate)
}

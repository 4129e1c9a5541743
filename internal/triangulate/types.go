package triangulate

// Point is a position on the projection plane. Callers working in 3D drop the
// height axis before triangulating (the X-Z floor plane becomes X-Y here).
type Point struct {
	X float64
	Y float64
}

// Ring is an implicitly closed sequence of points. The last point connects back
// to the first.
type Ring []Point

// Result is a triangle list over a pooled vertex array. Every three consecutive
// indices form one triangle, wound clockwise on the plane.
type Result struct {
	Vertices []Point
	Indices  []int
}

// Note that all vertices involved with the sweep are pointers. This means they
// can be used as keys, and that two input points with equal coordinates are
// still distinct vertices. We never modify a vertex's coordinates.
type vertex struct {
	Point
	// Position in the pooled vertex array
	index int
	// Ring neighbors after orientation has been normalized, so that the inside of
	// the polygon is always on the left of prev->v->next.
	prev, next *vertex
}

type segment struct {
	start *vertex
	end   *vertex
}

type triangle struct {
	a, b, c *vertex
}

type vertexStack []*vertex

type vertexSet map[*vertex]struct{}

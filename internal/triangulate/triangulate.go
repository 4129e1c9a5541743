package triangulate

import (
	"fmt"
	"math"

	"github.com/op/go-logging"

	"github.com/wacki/teleportarea/internal/dbg"
)

var log = logging.MustGetLogger("teleportarea:triangulate")

func init() {
	// Sweep traces are loud. Stay quiet unless a backend is configured.
	logging.SetLevel(logging.WARNING, "teleportarea:triangulate")
}

type options struct {
	validate bool
}

// Option tunes a single Triangulate call.
type Option func(*options)

// WithoutValidation skips the up front topology checks. Invalid input then
// produces whatever the sweep makes of it, or a GeometryError when the sweep
// notices the inconsistency itself.
func WithoutValidation() Option {
	return func(o *options) {
		o.validate = false
	}
}

// WithValidation is the default. It exists so callers can pass a config flag
// straight through.
func WithValidation(validate bool) Option {
	return func(o *options) {
		o.validate = validate
	}
}

// Triangulate fills the outer ring minus the holes with triangles that only use
// the input points.
//
// The returned vertex array holds the outer points followed by the points of
// each hole that has at least three points, all in input order. Holes with
// fewer points are skipped. Ring orientation does not matter. Triangles are
// wound clockwise.
//
// When several input points share coordinates, triangle corners resolve to the
// first of them in the vertex array.
func Triangulate(outer Ring, holes []Ring, opts ...Option) (result *Result, err error) {
	o := options{validate: true}
	for _, opt := range opts {
		opt(&o)
	}

	if len(outer) < 3 {
		return nil, invalidInputf("outer ring needs at least 3 points, got %d", len(outer))
	}

	included := make([]Ring, 0, len(holes))
	for i, hole := range holes {
		if len(hole) < 3 {
			log.Debugf("skipping hole %d with %d points", i, len(hole))
			continue
		}
		included = append(included, hole)
	}

	for i, ring := range append([]Ring{outer}, included...) {
		for j, p := range ring {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				return nil, invalidInputf("%s point %d is not finite: %v", ringName(i), j, p)
			}
		}
	}

	if o.validate {
		if err := validate(outer, included); err != nil {
			return nil, err
		}
	}

	defer func() {
		recoveredErr := handleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()

	pool, linked := buildPool(outer, included)
	diagonals := findDiagonals(linked)
	monotones := splitIntoMonotones(linked, diagonals)

	result = &Result{
		Vertices: make([]Point, len(pool)),
		Indices:  make([]int, 0, 3*(len(pool)+2*len(included)-2)),
	}

	// First occurrence wins for equal coordinates
	firstIndex := make(map[Point]int, len(pool))
	for i, v := range pool {
		result.Vertices[i] = v.Point
		if _, ok := firstIndex[v.Point]; !ok {
			firstIndex[v.Point] = i
		}
	}

	for _, monotone := range monotones {
		for _, tri := range triangulateMonotone(monotone) {
			a := firstIndex[tri.a.Point]
			b := firstIndex[tri.b.Point]
			c := firstIndex[tri.c.Point]
			if a == b || b == c || a == c {
				// Collapsed onto a duplicate point, so it has no area to cover
				continue
			}
			// Reverse each triangle so the mesh faces up
			result.Indices = append(result.Indices, c, b, a)
		}
	}

	log.Debugf("triangulated %d vertices, %d holes into %d triangles (%d monotone pieces)",
		len(pool), len(included), result.TriangleCount(), len(monotones))
	return result, nil
}

// Create vertices for every ring, in pool order, and link them up. Links are
// set up so the inside of the polygon is on the left of prev->v->next, without
// changing the order of the pool itself. Runs of consecutive equal points are
// linked through their first point only; the rest stay in the pool but take no
// part in the triangulation.
func buildPool(outer Ring, holes []Ring) (pool, linked []*vertex) {
	count := len(outer)
	for _, hole := range holes {
		count += len(hole)
	}
	pool = make([]*vertex, 0, count)
	linked = make([]*vertex, 0, count)

	for i, ring := range append([]Ring{outer}, holes...) {
		first := len(pool)
		for _, p := range ring {
			pool = append(pool, &vertex{Point: p, index: len(pool)})
		}

		verts := distinctVertices(pool[first:])
		if len(verts) < 3 {
			fatalf("%s has fewer than 3 distinct points", ringName(i))
		}
		area := distinct(ring).SignedArea()
		if area == 0 {
			fatalf("%s has zero area", ringName(i))
		}
		// Outer ring goes counterclockwise, holes go clockwise
		forward := (area > 0) == (i == 0)

		for j, v := range verts {
			next := verts[CircularIndex(j+1, len(verts))]
			if forward {
				v.next = next
				next.prev = v
			} else {
				v.prev = next
				next.next = v
			}
		}
		linked = append(linked, verts...)
	}
	return pool, linked
}

func distinctVertices(verts []*vertex) []*vertex {
	kept := make([]*vertex, 0, len(verts))
	for _, v := range verts {
		if len(kept) > 0 && kept[len(kept)-1].Point == v.Point {
			continue
		}
		kept = append(kept, v)
	}
	for len(kept) > 1 && kept[len(kept)-1].Point == kept[0].Point {
		kept = kept[:len(kept)-1]
	}
	return kept
}

func (v *vertex) String() string {
	if dbg.Enabled() {
		return fmt.Sprintf("%s#%d(%g, %g)", dbg.Name(v), v.index, v.X, v.Y)
	}
	return fmt.Sprintf("#%d(%g, %g)", v.index, v.X, v.Y)
}

// TriangleCount is the number of triangles in the index buffer.
func (r *Result) TriangleCount() int {
	return len(r.Indices) / 3
}

// Triangle returns the corners of the i-th triangle.
func (r *Result) Triangle(i int) (a, b, c Point) {
	return r.Vertices[r.Indices[3*i]], r.Vertices[r.Indices[3*i+1]], r.Vertices[r.Indices[3*i+2]]
}

// Area is the total area covered by the triangles. Since every triangle is
// clockwise, this is the negated sum of their signed areas.
func (r *Result) Area() float64 {
	var sum float64
	for i := 0; i < r.TriangleCount(); i++ {
		a, b, c := r.Triangle(i)
		sum -= cross(a, b, c) / 2
	}
	return sum
}

package triangulate

import (
	"math"
	"sort"

	"github.com/op/go-logging"
)

// Plane sweep that cuts a polygon with holes into y-monotone pieces by adding
// diagonals at split and merge vertices. The sweep line moves from the top down
// using the lexicographic ordering from util.go, so horizontal edges behave as
// if they were very slightly tilted.
//
// Rings must already be oriented so the inside of the polygon lies on the left
// of every edge (outer ring counterclockwise, holes clockwise). With that
// convention, holes need no special casing: the top of a hole is a split
// vertex and its bottom is a merge vertex.

type vertexKind int

const (
	startVertex vertexKind = iota
	splitVertex
	endVertex
	mergeVertex
	regularVertex
)

func (k vertexKind) String() string {
	return [...]string{"start", "split", "end", "merge", "regular"}[k]
}

func classify(v *vertex) vertexKind {
	prevBelow := v.prev.below(v)
	nextBelow := v.next.below(v)
	convex := cross(v.prev.Point, v.Point, v.next.Point) > 0

	switch {
	case prevBelow && nextBelow:
		if convex {
			return startVertex
		}
		return splitVertex
	case !prevBelow && !nextBelow:
		if convex {
			return endVertex
		}
		return mergeVertex
	}
	return regularVertex
}

type sweep struct {
	// Edges currently crossing the sweep line that have the inside of the polygon
	// to their right. An edge is identified by its upper vertex v, and runs from v
	// to v.next.
	status []*vertex
	helper map[*vertex]*vertex
	kinds  map[*vertex]vertexKind

	diagonals []segment
	seen      map[segment]struct{}
}

// Find the diagonals that split the polygon into monotone pieces.
func findDiagonals(vertices []*vertex) []segment {
	s := &sweep{
		helper: make(map[*vertex]*vertex),
		kinds:  make(map[*vertex]vertexKind, len(vertices)),
		seen:   make(map[segment]struct{}),
	}

	queue := make([]*vertex, len(vertices))
	copy(queue, vertices)
	sort.Slice(queue, func(i, j int) bool {
		return queue[j].below(queue[i])
	})

	for _, v := range queue {
		s.kinds[v] = classify(v)
	}

	debug := log.IsEnabledFor(logging.DEBUG)
	for _, v := range queue {
		if debug {
			log.Debugf("sweep %s vertex %s", s.kinds[v], v)
		}
		s.handle(v)
	}

	if len(s.status) != 0 {
		fatalf("%d edges left on the sweep line", len(s.status))
	}
	return s.diagonals
}

func (s *sweep) handle(v *vertex) {
	switch s.kinds[v] {
	case startVertex:
		s.insert(v, v)

	case endVertex:
		s.connectIfMerge(v, v.prev)
		s.remove(v.prev)

	case splitVertex:
		left := s.edgeLeftOf(v)
		s.connect(v, s.helper[left])
		s.helper[left] = v
		s.insert(v, v)

	case mergeVertex:
		s.connectIfMerge(v, v.prev)
		s.remove(v.prev)
		left := s.edgeLeftOf(v)
		s.connectIfMerge(v, left)
		s.helper[left] = v

	case regularVertex:
		if v.prev.above(v) {
			// Boundary runs downward here, so the inside is to the right of v
			s.connectIfMerge(v, v.prev)
			s.remove(v.prev)
			s.insert(v, v)
		} else {
			left := s.edgeLeftOf(v)
			s.connectIfMerge(v, left)
			s.helper[left] = v
		}
	}
}

func (s *sweep) insert(edge, helper *vertex) {
	s.status = append(s.status, edge)
	s.helper[edge] = helper
}

func (s *sweep) remove(edge *vertex) {
	for i, e := range s.status {
		if e == edge {
			s.status = append(s.status[:i], s.status[i+1:]...)
			delete(s.helper, edge)
			return
		}
	}
	fatalf("edge from %s is not on the sweep line", edge)
}

func (s *sweep) connectIfMerge(v, edge *vertex) {
	h, ok := s.helper[edge]
	if !ok {
		fatalf("edge from %s is not on the sweep line", edge)
	}
	if s.kinds[h] == mergeVertex {
		s.connect(v, h)
	}
}

func (s *sweep) connect(a, b *vertex) {
	if a == b {
		return
	}
	d := segment{a, b}
	if b.index < a.index {
		d = segment{b, a}
	}
	if _, ok := s.seen[d]; ok {
		return
	}
	s.seen[d] = struct{}{}
	if log.IsEnabledFor(logging.DEBUG) {
		log.Debugf("diagonal %s - %s", d.start, d.end)
	}
	s.diagonals = append(s.diagonals, d)
}

// Find the edge directly left of v on the sweep line. The status is a plain
// slice, so this is linear in the number of edges crossing the sweep line.
func (s *sweep) edgeLeftOf(v *vertex) *vertex {
	var best *vertex
	bestX := math.Inf(-1)
	for _, e := range s.status {
		x := xAt(e, v.Y)
		if x <= v.X && x > bestX {
			best = e
			bestX = x
		}
	}
	if best == nil {
		fatalf("no edge left of %s vertex %s", s.kinds[v], v)
	}
	return best
}

// X coordinate of the edge starting at upper, at height y. Horizontal edges
// only ever span the sweep line for degenerate input, so any endpoint will do.
func xAt(upper *vertex, y float64) float64 {
	lower := upper.next
	if upper.Y == lower.Y {
		return math.Min(upper.X, lower.X)
	}
	return lower.X + (y-lower.Y)*(upper.X-lower.X)/(upper.Y-lower.Y)
}

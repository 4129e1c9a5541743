package triangulate

import (
	"fmt"
	"math"
)

// validate checks the preconditions the sweep relies on. Once consecutive
// repeats are dropped, every ring must be simple with non-zero area and no two
// rings may touch. Every hole must be strictly inside the outer ring and no
// hole may sit inside another one. The pairwise edge tests are quadratic, which
// is fine for hand authored outlines.
func validate(outer Ring, holes []Ring) error {
	rings := make([]Ring, 0, len(holes)+1)
	for _, ring := range append([]Ring{outer}, holes...) {
		rings = append(rings, distinct(ring))
	}
	outer, holes = rings[0], rings[1:]

	for i, ring := range rings {
		if len(ring) < 3 {
			return geometryErrorf("%s has fewer than 3 distinct points", ringName(i))
		}
		if ring.SignedArea() == 0 {
			return geometryErrorf("%s has zero area", ringName(i))
		}
		if err := checkSimple(ring, ringName(i)); err != nil {
			return err
		}
	}

	for i := range rings {
		for j := i + 1; j < len(rings); j++ {
			if ringsTouch(rings[i], rings[j]) {
				return geometryErrorf("%s touches %s", ringName(i), ringName(j))
			}
		}
	}

	// With no crossings, a single vertex decides containment for the whole ring
	for i, hole := range holes {
		if !outer.ContainsPoint(hole[0]) {
			return geometryErrorf("%s is not inside the outer ring", ringName(i+1))
		}
		for j, other := range holes {
			if i != j && other.ContainsPoint(hole[0]) {
				return geometryErrorf("%s is inside %s", ringName(i+1), ringName(j+1))
			}
		}
	}
	return nil
}

func ringName(i int) string {
	if i == 0 {
		return "outer ring"
	}
	return fmt.Sprintf("hole %d", i-1)
}

func checkSimple(ring Ring, name string) error {
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[CircularIndex(i+1, n)]

		// Adjacent edges share a vertex, so they only conflict when they fold back
		// onto each other.
		c := ring[CircularIndex(i+2, n)]
		if cross(a, b, c) == 0 && (a.X-b.X)*(c.X-b.X)+(a.Y-b.Y)*(c.Y-b.Y) > 0 {
			return geometryErrorf("%s folds back on itself at index %d", name, CircularIndex(i+1, n))
		}

		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // adjacent through the closing edge
			}
			if segmentsIntersect(a, b, ring[j], ring[CircularIndex(j+1, n)]) {
				return geometryErrorf("%s self-intersects between edges %d and %d", name, i, j)
			}
		}
	}
	return nil
}

func ringsTouch(r1, r2 Ring) bool {
	for i, a := range r1 {
		b := r1[CircularIndex(i+1, len(r1))]
		for j, c := range r2 {
			d := r2[CircularIndex(j+1, len(r2))]
			if segmentsIntersect(a, b, c, d) {
				return true
			}
		}
	}
	return false
}

// Closed segment intersection, so shared endpoints and collinear overlaps count.
func segmentsIntersect(p1, p2, q1, q2 Point) bool {
	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}

// Assumes p is collinear with ab
func onSegment(a, b, p Point) bool {
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}

package triangulate

// This contains no actual tests. It is just a helper for testing triangulation
// validity.

import (
	"math"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that a triangulation is valid. The rules are:
// 1. The vertex array is exactly the outer ring followed by the included holes.
// 2. Every index is in range and the indices of a triangle are distinct.
// 3. Every triangle is clockwise (or flat).
// 4. Every ring edge is an edge of some triangle.
// 5. The triangle areas add up to the polygon area.
// 6. Sampled points are covered by exactly one triangle inside the polygon and
//    by none outside of it.
func assertValidTriangulation(t *testing.T, outer Ring, holes []Ring, result *Result) {
	t.Helper()
	require.NotNil(t, result)

	var included []Ring
	for _, hole := range holes {
		if len(hole) >= 3 {
			included = append(included, hole)
		}
	}

	var expected []Point
	expected = append(expected, outer...)
	for _, hole := range included {
		expected = append(expected, hole...)
	}
	require.Equal(t, expected, result.Vertices, "vertex array must be the pooled input points")
	require.Zero(t, len(result.Indices)%3, "index count must be a multiple of 3")

	edges := make(map[[2]int]struct{})
	addEdge := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		edges[[2]int{a, b}] = struct{}{}
	}
	for i := 0; i < result.TriangleCount(); i++ {
		a, b, c := result.Indices[3*i], result.Indices[3*i+1], result.Indices[3*i+2]
		for _, idx := range []int{a, b, c} {
			require.True(t, idx >= 0 && idx < len(result.Vertices), "index %d out of range", idx)
		}
		require.True(t, a != b && b != c && a != c, "triangle %d repeats an index: %d %d %d", i, a, b, c)

		pa, pb, pc := result.Triangle(i)
		require.False(t, cross(pa, pb, pc) > 0, "counterclockwise triangle %d: %# v", i, pretty.Formatter([]Point{pa, pb, pc}))
		addEdge(a, b)
		addEdge(b, c)
		addEdge(c, a)
	}

	offset := 0
	for _, ring := range append([]Ring{outer}, included...) {
		for j := range ring {
			a := offset + j
			b := offset + CircularIndex(j+1, len(ring))
			key := [2]int{a, b}
			if a > b {
				key = [2]int{b, a}
			}
			_, ok := edges[key]
			assert.True(t, ok, "ring edge %v-%v is not a triangle edge", ring[j], ring[CircularIndex(j+1, len(ring))])
		}
		offset += len(ring)
	}

	expectedArea := math.Abs(outer.SignedArea())
	for _, hole := range included {
		expectedArea -= math.Abs(hole.SignedArea())
	}
	require.InDelta(t, expectedArea, result.Area(), 1e-6*math.Max(1, expectedArea), "sum of triangle areas must equal the polygon area")

	validateCoverageBySampling(t, outer, included, result)
}

func validateCoverageBySampling(t *testing.T, outer Ring, holes []Ring, result *Result) {
	t.Helper()
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, p := range outer {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	// Odd offsets keep samples off the (mostly round number) edges
	step := math.Max(maxX-minX, maxY-minY) / 47
	for y := minY + step*0.3183; y < maxY; y += step {
		for x := minX + step*0.2718; x < maxX; x += step {
			p := Point{x, y}
			inside := outer.ContainsPoint(p)
			for _, hole := range holes {
				if hole.ContainsPoint(p) {
					inside = false
				}
			}

			covering := 0
			for i := 0; i < result.TriangleCount(); i++ {
				a, b, c := result.Triangle(i)
				if pointInTriangle(p, a, b, c) {
					covering++
				}
			}

			if inside {
				assert.Equal(t, 1, covering, "point %v should be covered by exactly one triangle", p)
			} else {
				assert.Equal(t, 0, covering, "point %v should not be covered", p)
			}
		}
	}
}

func pointInTriangle(p, a, b, c Point) bool {
	d1 := cross(a, b, p)
	d2 := cross(b, c, p)
	d3 := cross(c, a, p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

package triangulate

import "math"

const Epsilon = 1e-9

// Equal is a tolerance based comparison. Ordering of vertices never uses it;
// it only exists for tests and for area checks where float noise is expected.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// A common convention in our geometry is that if two points have the same Y
// value, the one with the smaller X value is "lower". This simulates a slightly
// rotated coordinate system, allowing us to assume Y values are never equal.
// Exact duplicates fall back to pool order so that the order stays total.
func (v *vertex) below(other *vertex) bool {
	if v.Y != other.Y {
		return v.Y < other.Y
	}
	if v.X != other.X {
		return v.X < other.X
	}
	return v.index > other.index
}

func (v *vertex) above(other *vertex) bool {
	return v != other && !v.below(other)
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// Twice the signed area of abc. Positive when abc turns left.
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func (s *vertexStack) push(v *vertex) {
	*s = append(*s, v)
}

func (s *vertexStack) pop() *vertex {
	if len(*s) == 0 {
		return nil
	}
	v := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return v
}

func (s *vertexStack) peek() *vertex {
	if len(*s) == 0 {
		return nil
	}
	return (*s)[len(*s)-1]
}

func (s *vertexStack) empty() bool {
	return len(*s) == 0
}

func (set vertexSet) add(v *vertex) {
	set[v] = struct{}{}
}

func (set vertexSet) has(v *vertex) bool {
	_, ok := set[v]
	return ok
}

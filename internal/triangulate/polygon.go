package triangulate

// SignedArea is positive for counterclockwise rings and negative for clockwise
// ones.
func (r Ring) SignedArea() float64 {
	var sum float64
	for i, p := range r {
		q := r[CircularIndex(i+1, len(r))]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// distinct drops consecutive repeats of a point, including a closing point that
// repeats the first one.
func distinct(r Ring) Ring {
	out := make(Ring, 0, len(r))
	for _, p := range r {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

func (r Ring) IsCCW() bool {
	return r.SignedArea() > 0
}

func (r Ring) IsCW() bool {
	return r.SignedArea() < 0
}

func (r Ring) Reverse() Ring {
	reversed := make(Ring, 0, len(r))
	for i := len(r) - 1; i >= 0; i-- {
		reversed = append(reversed, r[i])
	}
	return reversed
}

// Even-odd point-in-polygon. Output is not defined for points exactly on the
// boundary.
func (r Ring) ContainsPoint(p Point) bool {
	return r.CrossingCount(p)%2 == 1
}

// Crossing count helper for even odd rule. Counts the edges crossed by a ray
// cast from p towards +X.
func (r Ring) CrossingCount(p Point) int {
	crossingCount := 0
	for i, a := range r {
		b := r[CircularIndex(i+1, len(r))]
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if x > p.X {
			crossingCount++
		}
	}
	return crossingCount
}

func (t *triangle) signedArea() float64 {
	return cross(t.a.Point, t.b.Point, t.c.Point) / 2
}

func (t *triangle) isCCW() bool {
	return t.signedArea() > 0
}

func (t *triangle) isCW() bool {
	return t.signedArea() < 0
}

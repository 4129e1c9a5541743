package triangulate

import "math"

// Once the diagonals are known, the monotone pieces are recovered by walking a
// half-edge structure. Ring edges exist only in their inside-on-the-left
// direction and diagonals exist in both directions, so every traced face is a
// piece of the polygon's interior, wound counterclockwise.

type halfEdge struct {
	origin, target *vertex
	angle          float64
	used           bool
}

func splitIntoMonotones(vertices []*vertex, diagonals []segment) [][]*vertex {
	outgoing := make(map[*vertex][]*halfEdge, len(vertices))
	all := make([]*halfEdge, 0, len(vertices)+2*len(diagonals))
	add := func(from, to *vertex) {
		e := &halfEdge{
			origin: from,
			target: to,
			angle:  math.Atan2(to.Y-from.Y, to.X-from.X),
		}
		outgoing[from] = append(outgoing[from], e)
		all = append(all, e)
	}

	for _, v := range vertices {
		add(v, v.next)
	}
	for _, d := range diagonals {
		add(d.start, d.end)
		add(d.end, d.start)
	}

	var faces [][]*vertex
	for _, start := range all {
		if start.used {
			continue
		}
		var face []*vertex
		e := start
		for !e.used {
			e.used = true
			face = append(face, e.origin)
			e = nextHalfEdge(outgoing[e.target], e)
		}
		if e != start {
			fatalf("face starting at %s does not close", start.origin)
		}
		faces = append(faces, face)
	}
	return faces
}

// Pick the outgoing edge that makes the sharpest left turn, which is the first
// one found rotating clockwise from the way we came in. Going straight back
// is the last resort.
func nextHalfEdge(candidates []*halfEdge, incoming *halfEdge) *halfEdge {
	back := math.Atan2(incoming.origin.Y-incoming.target.Y, incoming.origin.X-incoming.target.X)

	var best *halfEdge
	bestTurn := math.Inf(1)
	for _, e := range candidates {
		turn := math.Mod(back-e.angle, 2*math.Pi)
		if turn <= 0 {
			turn += 2 * math.Pi
		}
		if turn < bestTurn {
			best = e
			bestTurn = turn
		}
	}
	if best == nil {
		fatalf("dead end at %s", incoming.target)
	}
	return best
}

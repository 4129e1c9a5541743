package triangulate

// Monotone pieces come out of the sweep counterclockwise, and no horizontal
// line crosses more than two of their edges. Ties on y are broken by below(),
// the same order the sweep used to cut them, so flat edges are fine.

func triangulateMonotone(points []*vertex) []*triangle {
	if len(points) < 3 {
		fatalf("cannot triangulate degenerate polygon with point count: %d", len(points))
	}
	if len(points) == 3 {
		return []*triangle{{points[0], points[1], points[2]}}
	}

	sorted, leftChain, bottom := mergeChains(points)
	triangles := make([]*triangle, 0, len(points)-2)

	// The stack holds a reflex run along one chain. Its top is the point
	// processed last.
	stack := make(vertexStack, 0, len(points))
	stack.push(sorted[0])
	stack.push(sorted[1])
	for i := 2; i < len(sorted); i++ {
		p := sorted[i]
		onLeft := leftChain.has(p)

		if onLeft != leftChain.has(stack.peek()) {
			// p sees every stacked point across the piece. Fan them all out.
			for !stack.empty() {
				a := stack.pop()
				if stack.empty() {
					break
				}
				b := stack.peek()
				// b is above a on the opposite chain
				if onLeft {
					triangles = appendTriangle(triangles, &triangle{p, a, b})
				} else {
					triangles = appendTriangle(triangles, &triangle{a, p, b})
				}
			}
			stack.push(sorted[i-1])
			stack.push(p)
			continue
		}

		// Same chain: cut ears off the top of the stack while p can see past
		// them. The last popped point goes back on.
		v := stack.pop()
		for !stack.empty() {
			q := stack.peek()
			var ear *triangle
			if onLeft {
				ear = &triangle{p, q, v}
			} else {
				ear = &triangle{p, v, q}
			}
			// A clockwise ear means v is reflex as seen from p
			if !ear.isCCW() {
				break
			}
			v = stack.pop()
			triangles = append(triangles, ear)
		}
		stack.push(v)
		stack.push(p)
	}

	// Close the piece by connecting the bottom to the remaining run.
	l := stack.pop()
	for !stack.empty() {
		p := stack.pop()
		if leftChain.has(l) {
			triangles = appendTriangle(triangles, &triangle{bottom, p, l})
		} else {
			triangles = appendTriangle(triangles, &triangle{bottom, l, p})
		}
		l = p
	}
	return triangles
}

// mergeChains orders the points from the top down, leaving out the bottom
// point, which is returned on its own. Going forward from the top walks the
// left chain, backward walks the right one.
func mergeChains(points []*vertex) (sorted []*vertex, left vertexSet, bottom *vertex) {
	top := 0
	for i, p := range points {
		if p.above(points[top]) {
			top = i
		}
	}

	n := len(points)
	sorted = make([]*vertex, 0, n)
	sorted = append(sorted, points[top])
	left = make(vertexSet)

	forward, backward := 1, 1
	for {
		l := points[CircularIndex(top+forward, n)]
		r := points[CircularIndex(top-backward, n)]
		if l == r {
			return sorted, left, l
		}
		if l.above(r) {
			left.add(l)
			sorted = append(sorted, l)
			forward++
		} else {
			sorted = append(sorted, r)
			backward++
		}
	}
}

// Every triangle the fans produce goes through here.
func appendTriangle(triangles []*triangle, tri *triangle) []*triangle {
	if tri.isCW() {
		fatalf("triangle is clockwise: %s %s %s", tri.a, tri.b, tri.c)
	}
	return append(triangles, tri)
}

package triangulate

import (
	"embed"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// This file parses the svg fixtures and outputs rings. This is not a full (or
// even correct) svg parser. It finds every polygon in the file; the first one
// is the outer ring and the rest are holes. If anything goes wrong, it panics.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func loadFixture(name string) (Ring, []Ring) {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		panic(fmt.Sprintf("Could not load fixture %q: %v", name, err))
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse fixture %q: %v", name, err))
	}

	polygons := rootEl.FindAll("polygon")
	if len(polygons) == 0 {
		panic(fmt.Sprintf("No polygons found in fixture %q", name))
	}

	var rings []Ring
	for _, polygonEl := range polygons {
		var ring Ring
		for _, pointString := range strings.Fields(polygonEl.Attributes["points"]) {
			parts := strings.Split(pointString, ",")
			if len(parts) != 2 {
				panic(fmt.Sprintf("Invalid point string %q", pointString))
			}
			x, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				panic(fmt.Sprintf("Invalid x value %q: %v", parts[0], err))
			}
			y, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				panic(fmt.Sprintf("Invalid y value %q: %v", parts[1], err))
			}
			ring = append(ring, Point{x, y})
		}
		rings = append(rings, ring)
	}
	return rings[0], rings[1:]
}

// Some ad hoc code specified fixtures

func regularPolygon(n int, radius float64) Ring {
	var ring Ring
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		ring = append(ring, Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
	}
	return ring
}

func star(x, y, outerRadius, innerRadius float64) Ring {
	var ring Ring
	for i := 0; i < 10; i++ {
		r := outerRadius
		if i%2 == 1 {
			r = innerRadius
		}
		angle := 2 * math.Pi * float64(i) / 10
		ring = append(ring, Point{X: x + r*math.Cos(angle), Y: y + r*math.Sin(angle)})
	}
	return ring
}

func square(cx, cy, size float64) Ring {
	h := size / 2
	return Ring{
		{X: cx - h, Y: cy - h},
		{X: cx + h, Y: cy - h},
		{X: cx + h, Y: cy + h},
		{X: cx - h, Y: cy + h},
	}
}

func squareWithHole() (Ring, []Ring) {
	return square(0, 0, 4), []Ring{square(0, 0, 1).Reverse()}
}

func starOutline() (Ring, []Ring) {
	return star(0, 0, 10, 5), []Ring{star(0, 0, 8, 3)}
}

// A floor with a grid of pillars cut out of it
func pillaredHall() (Ring, []Ring) {
	outer := Ring{{0, 0}, {12, 0}, {12, 9}, {0, 9}}
	var holes []Ring
	for x := 2.0; x <= 10; x += 4 {
		for y := 2.0; y <= 7; y += 2.5 {
			holes = append(holes, square(x, y, 1))
		}
	}
	return outer, holes
}

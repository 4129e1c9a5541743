package area

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/pkg/errors"
	"github.com/wacki/teleportarea/internal/triangulate"
)

// ReadPoints reads rings as newline separated "x y" points, with a blank line
// between rings. The first ring is the outer one, the rest are holes.
func ReadPoints(r io.Reader) (outer triangulate.Ring, holes []triangulate.Ring, err error) {
	var rings []triangulate.Ring
	var ring triangulate.Ring

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// If it's empty, and we collected any points, this is the end of the ring
		if line == "" {
			if len(ring) > 0 {
				rings = append(rings, ring)
				ring = nil
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, nil, errors.Errorf("line %d: expected \"x y\", got %q", lineNo, line)
		}
		p, err := parsePoint(parts[0], parts[1])
		if err != nil {
			return nil, nil, errors.Wrapf(err, "line %d", lineNo)
		}
		ring = append(ring, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	// Handle trailing ring if any
	if len(ring) > 0 {
		rings = append(rings, ring)
	}
	return splitRings(rings)
}

// ReadSVG reads every <polygon> element of an SVG document. The first polygon
// is the outer ring and the rest are holes.
func ReadSVG(r io.Reader) (outer triangulate.Ring, holes []triangulate.Ring, err error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing svg")
	}

	var rings []triangulate.Ring
	for i, el := range root.FindAll("polygon") {
		var ring triangulate.Ring
		for _, pair := range strings.Fields(el.Attributes["points"]) {
			parts := strings.Split(pair, ",")
			if len(parts) != 2 {
				return nil, nil, errors.Errorf("polygon %d: invalid point %q", i, pair)
			}
			p, err := parsePoint(parts[0], parts[1])
			if err != nil {
				return nil, nil, errors.Wrapf(err, "polygon %d", i)
			}
			ring = append(ring, p)
		}
		rings = append(rings, ring)
	}
	return splitRings(rings)
}

func parsePoint(xs, ys string) (triangulate.Point, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return triangulate.Point{}, errors.Wrap(err, "invalid x")
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return triangulate.Point{}, errors.Wrap(err, "invalid y")
	}
	return triangulate.Point{X: x, Y: y}, nil
}

func splitRings(rings []triangulate.Ring) (triangulate.Ring, []triangulate.Ring, error) {
	if len(rings) == 0 {
		return nil, nil, errors.New("no rings found")
	}
	return rings[0], rings[1:], nil
}

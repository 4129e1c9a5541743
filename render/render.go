// Package render draws floor triangulations to PNG images, and can print
// them straight to terminals that support inline images.
package render

import (
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
	"github.com/wacki/teleportarea/internal/triangulate"
)

// Padding around the shape, in pixels
const padding = 20

// Draw renders the triangles of res, scale pixels per unit. The origin is at
// the bottom left, like the plane the triangulation lives on.
func Draw(res *triangulate.Result, scale float64) *gg.Context {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range res.Vertices {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	if len(res.Vertices) == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + padding*2
	height := int(scale*(maxY-minY)) + padding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	// Translate for padding
	c.Translate(padding, padding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-minX, -minY)

	for i := 0; i < res.TriangleCount(); i++ {
		a, b, cc := res.Triangle(i)
		c.MoveTo(a.X, a.Y)
		c.LineTo(b.X, b.Y)
		c.LineTo(cc.X, cc.Y)
		c.ClosePath()
	}
	c.SetRGB(0, 0.5, 0)
	c.FillPreserve()
	// Line width is in device space, so it does not grow with the scale
	c.SetLineWidth(1)
	c.SetRGB(0, 1, 1)
	c.Stroke()

	for _, p := range res.Vertices {
		c.DrawPoint(p.X, p.Y, 2)
	}
	c.SetRGB(1, 1, 0)
	c.Fill()
	return c
}

func SavePNG(res *triangulate.Result, scale float64, path string) error {
	return errors.Wrapf(Draw(res, scale).SavePNG(path), "saving %s", path)
}

// Preview prints the rendering inline. This only shows up in terminals that
// implement the iTerm image protocol.
func Preview(res *triangulate.Result, scale float64) error {
	dir, err := os.MkdirTemp("", "teleportarea")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "preview.png")
	if err := SavePNG(res, scale, path); err != nil {
		return err
	}
	return imgcat.CatFile(path, os.Stdout)
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kr/pretty"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/wacki/teleportarea/area"
	"github.com/wacki/teleportarea/config"
	"github.com/wacki/teleportarea/internal/triangulate"
	"github.com/wacki/teleportarea/mesh"
	"github.com/wacki/teleportarea/meshstore"
	"github.com/wacki/teleportarea/playarea"
	"github.com/wacki/teleportarea/render"
)

func runBuild(conf *config.Config, paths []string, stdout io.Writer) error {
	areas := make([]*area.Area, len(paths))
	for i, path := range paths {
		a, err := area.LoadFile(path)
		if err != nil {
			return err
		}
		areas[i] = a
	}

	store, err := meshstore.Open(conf.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	b := &area.Builder{
		Store:    store,
		Optimize: conf.Mesh.Optimize,
		Validate: conf.Triangulate.Validate,
	}
	previous := make([]string, len(areas))
	for i, a := range areas {
		previous[i] = a.MeshName
	}

	// Areas that built before a failure already lost their old mesh, so their
	// documents are written whether or not the batch succeeded.
	buildErr := b.BuildAll(context.Background(), areas)
	for i, a := range areas {
		if a.MeshName == previous[i] {
			continue
		}
		if err := a.SaveFile(paths[i]); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s %s -> %s\n", aurora.Green("built"), aurora.Bold(a.Name), a.MeshName)
	}
	return buildErr
}

// Read rings from a file, or stdin when path is empty. SVG is recognised by
// extension or by a leading '<'.
func readRings(path string, stdin io.Reader) (triangulate.Ring, []triangulate.Ring, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".svg") || bytes.HasPrefix(bytes.TrimSpace(data), []byte("<")) {
		return area.ReadSVG(bytes.NewReader(data))
	}
	return area.ReadPoints(bytes.NewReader(data))
}

// Open path for writing, or fall back to stdout. The returned close function
// is always safe to call.
func output(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func writeMesh(m *mesh.Mesh, format, path string, stdout io.Writer) error {
	w, closeFn, err := output(path, stdout)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(m)
	default:
		err = m.WriteOBJ(w)
	}
	if err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func runImport(input, name, outputPath string, stdin io.Reader, stdout io.Writer) error {
	outer, holes, err := readRings(input, stdin)
	if err != nil {
		return err
	}

	w, closeFn, err := output(outputPath, stdout)
	if err != nil {
		return err
	}
	if err := area.FromRings(name, outer, holes).Save(w); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func runTriangulate(conf *config.Config, c *cli, stdin io.Reader, stdout, stderr io.Writer) error {
	outer, holes, err := readRings(*c.triangulate.input, stdin)
	if err != nil {
		return err
	}

	res, err := triangulate.Triangulate(outer, holes, triangulate.WithValidation(conf.Triangulate.Validate))
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "%s %d triangles over %d vertices, area %g\n",
		aurora.Green("triangulated"), res.TriangleCount(), len(res.Vertices), res.Area())

	if *c.triangulate.dump {
		fmt.Fprintf(stderr, "%# v\n", pretty.Formatter(res))
	}
	if *c.triangulate.png != "" {
		if err := render.SavePNG(res, *c.triangulate.scale, *c.triangulate.png); err != nil {
			return err
		}
	}
	if *c.triangulate.imgcat {
		if err := render.Preview(res, *c.triangulate.scale); err != nil {
			return err
		}
	}

	m := mesh.Lift(res, conf.Mesh.Height)
	m.Name = "TeleportationArea"
	if conf.Mesh.Optimize {
		if err := m.Optimize(); err != nil {
			return err
		}
	}
	return writeMesh(m, *c.triangulate.format, *c.triangulate.output, stdout)
}

func runPlayArea(sizeName string, thickness float64, player bool, outputPath string, stdout io.Writer) error {
	if player {
		m, err := playarea.PlayerMesh(playarea.DefaultPlayerSlices, playarea.DefaultPlayerRadius, playarea.DefaultPlayerHeight)
		if err != nil {
			return err
		}
		return writeMesh(m, "obj", outputPath, stdout)
	}

	size, err := playarea.ParseSize(sizeName)
	if err != nil {
		return err
	}
	if size == playarea.Calibrated {
		return errors.New("calibrated play areas need a tracking system")
	}
	rect, err := playarea.Bounds(size, nil)
	if err != nil {
		return err
	}

	m := playarea.BorderMesh(rect, thickness)
	if m == nil {
		return errors.New("a border of zero thickness has no mesh")
	}
	return writeMesh(m, "obj", outputPath, stdout)
}

func runStoreLs(conf *config.Config, stdout io.Writer) error {
	store, err := meshstore.Open(conf.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		m, err := store.Load(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s\t%d vertices\t%d triangles\n", aurora.Bold(name), len(m.Vertices), m.TriangleCount())
	}
	return nil
}

func runStoreRm(conf *config.Config, names []string, stdout io.Writer) error {
	store, err := meshstore.Open(conf.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, name := range names {
		if err := store.Delete(name); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s %s\n", aurora.Red("deleted"), name)
	}
	return nil
}

func runStoreExport(conf *config.Config, name, format, outputPath string, stdout io.Writer) error {
	store, err := meshstore.Open(conf.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	m, err := store.Load(name)
	if err != nil {
		return err
	}
	return writeMesh(m, format, outputPath, stdout)
}

// Command teleportarea builds teleportation area meshes from floor outlines
// and inspects the meshes it stored.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/wacki/teleportarea/config"
	"github.com/wacki/teleportarea/internal/dbg"
	"gopkg.in/alecthomas/kingpin.v2"
)

var log = logging.MustGetLogger("teleportarea")

var version = "0.1.0"

type cli struct {
	app *kingpin.Application

	configFile *string
	debug      *bool
	cpuProfile *bool

	build struct {
		cmd   *kingpin.CmdClause
		areas *[]string
	}
	importCmd struct {
		cmd    *kingpin.CmdClause
		input  *string
		name   *string
		output *string
	}
	triangulate struct {
		cmd    *kingpin.CmdClause
		input  *string
		format *string
		output *string
		png    *string
		imgcat *bool
		scale  *float64
		dump   *bool
	}
	playarea struct {
		cmd       *kingpin.CmdClause
		size      *string
		thickness *float64
		player    *bool
		output    *string
	}
	storeLs struct {
		cmd *kingpin.CmdClause
	}
	storeRm struct {
		cmd   *kingpin.CmdClause
		names *[]string
	}
	storeExport struct {
		cmd    *kingpin.CmdClause
		name   *string
		format *string
		output *string
	}
}

func newCLI() *cli {
	c := &cli{app: kingpin.New("teleportarea", "Build VR teleportation area meshes from floor outlines.")}
	c.app.Version(version)

	c.configFile = c.app.Flag("config", "Location of the TOML config file.").Short('c').String()
	c.debug = c.app.Flag("debug", "Log everything at debug level.").Bool()
	c.cpuProfile = c.app.Flag("cpuprofile", "Write a CPU profile to the working directory.").Bool()

	c.build.cmd = c.app.Command("build", "Rebuild the meshes of area documents and update them in place.")
	c.build.areas = c.build.cmd.Arg("area", "Area YAML documents.").Required().ExistingFiles()

	c.importCmd.cmd = c.app.Command("import", "Create an area document from an outline file.")
	c.importCmd.input = c.importCmd.cmd.Arg("file", "Outline as SVG polygons or point text. Reads stdin when omitted.").String()
	c.importCmd.name = c.importCmd.cmd.Flag("name", "Area name.").Default("area").String()
	c.importCmd.output = c.importCmd.cmd.Flag("output", "Write the document here instead of stdout.").Short('o').String()

	c.triangulate.cmd = c.app.Command("triangulate", "Triangulate an outline file without storing anything.")
	c.triangulate.input = c.triangulate.cmd.Arg("file", "Outline as SVG polygons or point text. Reads stdin when omitted.").String()
	c.triangulate.format = c.triangulate.cmd.Flag("format", "Output format.").Short('f').Default("obj").Enum("obj", "json")
	c.triangulate.output = c.triangulate.cmd.Flag("output", "Write the mesh here instead of stdout.").Short('o').String()
	c.triangulate.png = c.triangulate.cmd.Flag("png", "Also render the triangulation to this PNG file.").String()
	c.triangulate.imgcat = c.triangulate.cmd.Flag("imgcat", "Print the rendering inline (iTerm only).").Bool()
	c.triangulate.scale = c.triangulate.cmd.Flag("scale", "Pixels per unit when rendering.").Default("20").Float64()
	c.triangulate.dump = c.triangulate.cmd.Flag("dump", "Pretty print the raw triangulation to stderr.").Bool()

	c.playarea.cmd = c.app.Command("playarea", "Export the play area visualisation as OBJ.")
	c.playarea.size = c.playarea.cmd.Flag("size", "Play area size: 400x300, 300x225 or 200x150.").Default("400x300").String()
	c.playarea.thickness = c.playarea.cmd.Flag("thickness", "Border thickness in meters.").Default("0.15").Float64()
	c.playarea.player = c.playarea.cmd.Flag("player", "Export the player marker instead of the border.").Bool()
	c.playarea.output = c.playarea.cmd.Flag("output", "Write the mesh here instead of stdout.").Short('o').String()

	store := c.app.Command("store", "Inspect the configured mesh store.")
	c.storeLs.cmd = store.Command("ls", "List stored meshes.")
	c.storeRm.cmd = store.Command("rm", "Delete stored meshes.")
	c.storeRm.names = c.storeRm.cmd.Arg("name", "Mesh names.").Required().Strings()
	c.storeExport.cmd = store.Command("export", "Export a stored mesh.")
	c.storeExport.name = c.storeExport.cmd.Arg("name", "Mesh name.").Required().String()
	c.storeExport.format = c.storeExport.cmd.Flag("format", "Output format.").Short('f').Default("obj").Enum("obj", "json")
	c.storeExport.output = c.storeExport.cmd.Flag("output", "Write the mesh here instead of stdout.").Short('o').String()

	return c
}

func (c *cli) run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	command, err := c.app.Parse(args)
	if err != nil {
		return err
	}

	conf := config.Default()
	if *c.configFile != "" {
		if err := conf.LoadFile(*c.configFile); err != nil {
			return err
		}
	}
	if err := conf.SetupLogging(*c.debug); err != nil {
		return err
	}
	dbg.Enable(*c.debug)

	if *c.cpuProfile {
		log.Info("CPU profiler started.")
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	switch command {
	case c.build.cmd.FullCommand():
		return runBuild(conf, *c.build.areas, stdout)
	case c.importCmd.cmd.FullCommand():
		return runImport(*c.importCmd.input, *c.importCmd.name, *c.importCmd.output, stdin, stdout)
	case c.triangulate.cmd.FullCommand():
		return runTriangulate(conf, c, stdin, stdout, stderr)
	case c.playarea.cmd.FullCommand():
		return runPlayArea(*c.playarea.size, *c.playarea.thickness, *c.playarea.player, *c.playarea.output, stdout)
	case c.storeLs.cmd.FullCommand():
		return runStoreLs(conf, stdout)
	case c.storeRm.cmd.FullCommand():
		return runStoreRm(conf, *c.storeRm.names, stdout)
	case c.storeExport.cmd.FullCommand():
		return runStoreExport(conf, *c.storeExport.name, *c.storeExport.format, *c.storeExport.output, stdout)
	}
	return errors.Errorf("unhandled command %q", command)
}

func main() {
	if err := newCLI().run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red("error:"), err)
		os.Exit(1)
	}
}

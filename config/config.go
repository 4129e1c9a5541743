// Package config holds the teleportarea tool configuration, read from a TOML
// file.
package config

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/wacki/teleportarea/area"
	"github.com/wacki/teleportarea/meshstore"
)

var log = logging.MustGetLogger("teleportarea:config")

func init() {
	logging.SetLevel(logging.WARNING, "teleportarea:config")
}

var format = logging.MustStringFormatter(
	"%{color}%{time:15:04:05.000} %{module} ▶ %{level:.4s} %{id:03x} %{message}%{color:reset}",
)

// Logging is one log backend.
type Logging struct {
	// Output is "stdout", "stderr" or a file path. Environment variables in
	// the path are expanded.
	Output string `toml:"output"`
	Level  string `toml:"level"`
}

// Config defines the central type where all configuration is unmarshalled to.
type Config struct {
	toml.MetaData

	Store meshstore.Config `toml:"store"`

	Mesh struct {
		Optimize bool    `toml:"optimize"`
		Height   float64 `toml:"height"`
	} `toml:"mesh"`

	Triangulate struct {
		Validate bool `toml:"validate"`
	} `toml:"triangulate"`

	Logging []Logging `toml:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{
		Store: meshstore.Config{
			Backend: "dir",
			Path:    area.DefaultMeshSavePath,
		},
		Logging: []Logging{{Output: "stderr", Level: "warning"}},
	}
	c.Mesh.Optimize = true
	c.Triangulate.Validate = true
	return c
}

// Load decodes a TOML configuration over the current values, so anything the
// file leaves out keeps its default.
func (c *Config) Load(r io.Reader) error {
	md, err := toml.DecodeReader(r, c)
	if err != nil {
		return errors.Wrap(err, "decoding config")
	}
	c.MetaData = md

	for _, key := range md.Undecoded() {
		log.Warningf("Unknown configuration key %s", key)
	}
	return nil
}

func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrap(c.Load(f), path)
}

// SetupLogging installs the configured log backends. With debug set, every
// backend logs at DEBUG regardless of its configured level.
func (c *Config) SetupLogging(debug bool) error {
	var logBackends []logging.Backend
	for _, l := range c.Logging {
		var output io.Writer

		switch l.Output {
		case "stdout":
			output = os.Stdout
		case "stderr", "":
			output = os.Stderr
		default:
			f, err := os.OpenFile(os.ExpandEnv(l.Output), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0660)
			if err != nil {
				return errors.Wrap(err, "opening log output")
			}
			output = f
		}

		backend := logging.NewLogBackend(output, "", 0)
		backendFormatter := logging.NewBackendFormatter(backend, format)
		backendLeveled := logging.AddModuleLevel(backendFormatter)

		level, err := logging.LogLevel(l.Level)
		if err != nil {
			return errors.Wrapf(err, "log level %q", l.Level)
		}
		if debug {
			level = logging.DEBUG
		}

		backendLeveled.SetLevel(level, "")
		logBackends = append(logBackends, backendLeveled)
	}

	if len(logBackends) == 0 {
		logBackends = append(logBackends, logging.NewLogBackend(io.Discard, "", 0))
	}
	logging.SetBackend(logBackends...)
	return nil
}

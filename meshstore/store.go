// Package meshstore persists generated meshes by name. It backs the mesh
// assets an area points at, so that rebuilding an area can replace the mesh it
// generated last time.
package meshstore

import (
	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/wacki/teleportarea/mesh"
)

var log = logging.MustGetLogger("teleportarea:meshstore")

func init() {
	logging.SetLevel(logging.WARNING, "teleportarea:meshstore")
}

// ErrNotFound is returned by Load for names the store does not hold.
var ErrNotFound = errors.New("mesh not found")

// Store is a named collection of meshes. Deleting a missing mesh is not an
// error.
type Store interface {
	Save(name string, m *mesh.Mesh) error
	Load(name string) (*mesh.Mesh, error)
	Delete(name string) error
	List() ([]string, error)
	Close() error
}

// Config selects and locates a backend.
type Config struct {
	// Backend is "dir" or "bolt". Empty means "dir".
	Backend string `toml:"backend"`
	// Path is the folder for "dir" and the database file for "bolt".
	Path string `toml:"path"`
}

// Open returns the backend described by cfg.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", "dir":
		return NewDir(cfg.Path)
	case "bolt":
		return NewBolt(cfg.Path)
	default:
		return nil, errors.Errorf("unknown mesh store backend %q", cfg.Backend)
	}
}

func checkName(name string) error {
	if name == "" {
		return errors.New("mesh name is empty")
	}
	return nil
}

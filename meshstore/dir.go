package meshstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/wacki/teleportarea/mesh"
)

const meshExt = ".json"

// Dir keeps one JSON file per mesh in a folder.
type Dir struct {
	path string
}

// NewDir returns a store rooted at path. The folder is created on first save.
func NewDir(path string) (*Dir, error) {
	if path == "" {
		return nil, errors.New("mesh store path is empty")
	}
	return &Dir{path: path}, nil
}

func (d *Dir) file(name string) string {
	return filepath.Join(d.path, name+meshExt)
}

func (d *Dir) Save(name string, m *mesh.Mesh) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(d.path, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", d.path)
	}

	data, err := json.Marshal(m)
	if err != nil {
		return errors.Wrapf(err, "encoding mesh %s", name)
	}

	// Write then rename so readers never see a partial file
	tmp := d.file(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, "writing mesh %s", name)
	}
	if err := os.Rename(tmp, d.file(name)); err != nil {
		return errors.Wrapf(err, "writing mesh %s", name)
	}
	log.Debugf("saved mesh %s to %s", name, d.file(name))
	return nil
}

func (d *Dir) Load(name string) (*mesh.Mesh, error) {
	data, err := os.ReadFile(d.file(name))
	if os.IsNotExist(err) {
		return nil, errors.Wrap(ErrNotFound, name)
	} else if err != nil {
		return nil, errors.Wrapf(err, "reading mesh %s", name)
	}

	var m mesh.Mesh
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "decoding mesh %s", name)
	}
	return &m, nil
}

func (d *Dir) Delete(name string) error {
	err := os.Remove(d.file(name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "deleting mesh %s", name)
	}
	return nil
}

func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "listing %s", d.path)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), meshExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), meshExt))
	}
	sort.Strings(names)
	return names, nil
}

func (d *Dir) Close() error {
	return nil
}

package meshstore

import (
	"encoding/json"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
	"github.com/wacki/teleportarea/mesh"
)

var meshBucket = []byte("meshes")

// Bolt keeps meshes as JSON values in a single bucket of a boltdb file.
type Bolt struct {
	db *bolt.DB
}

// NewBolt opens or creates the database at path.
func NewBolt(path string) (*Bolt, error) {
	if path == "" {
		return nil, errors.New("mesh store path is empty")
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(meshBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating mesh bucket")
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Save(name string, m *mesh.Mesh) error {
	if err := checkName(name); err != nil {
		return err
	}

	data, err := json.Marshal(m)
	if err != nil {
		return errors.Wrapf(err, "encoding mesh %s", name)
	}

	if err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(meshBucket).Put([]byte(name), data)
	}); err != nil {
		return errors.Wrapf(err, "saving mesh %s", name)
	}
	log.Debugf("saved mesh %s to %s", name, b.db.Path())
	return nil
}

func (b *Bolt) Load(name string) (*mesh.Mesh, error) {
	var m *mesh.Mesh
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(meshBucket).Get([]byte(name))
		if data == nil {
			return errors.Wrap(ErrNotFound, name)
		}
		m = new(mesh.Mesh)
		return errors.Wrapf(json.Unmarshal(data, m), "decoding mesh %s", name)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (b *Bolt) Delete(name string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(meshBucket).Delete([]byte(name))
	})
}

func (b *Bolt) List() ([]string, error) {
	var names []string
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(meshBucket).ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

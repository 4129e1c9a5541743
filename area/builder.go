package area

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/wacki/teleportarea/internal/triangulate"
	"github.com/wacki/teleportarea/mesh"
	"github.com/wacki/teleportarea/meshstore"
	"golang.org/x/sync/errgroup"
)

const meshNamePrefix = "TeleportationAreaMesh_"

// Builder regenerates area meshes. Building is explicit: callers rebuild an
// area whenever they changed its outline.
type Builder struct {
	// Store receives generated meshes. When nil, each area uses a folder store
	// at its own SavePath.
	Store meshstore.Store
	// Optimize compacts the vertex buffer before saving.
	Optimize bool
	// Validate checks ring topology before triangulating.
	Validate bool
}

// Build triangulates the area, lifts it to the area's height and stores the
// resulting mesh under a fresh name. The mesh from the previous build is
// removed and the area records the new name.
func (b *Builder) Build(a *Area) (*mesh.Mesh, error) {
	outer, holes := a.Project()
	res, err := triangulate.Triangulate(outer, holes, triangulate.WithValidation(b.Validate))
	if err != nil {
		return nil, errors.Wrapf(err, "triangulating area %s", a.Name)
	}

	m := mesh.Lift(res, a.Height)
	m.Name = meshNamePrefix + xid.New().String()
	if b.Optimize {
		if err := m.Optimize(); err != nil {
			return nil, errors.Wrapf(err, "optimizing area %s", a.Name)
		}
	}

	store, err := b.storeFor(a)
	if err != nil {
		return nil, err
	}
	if err := store.Save(m.Name, m); err != nil {
		return nil, err
	}
	if a.MeshName != "" && a.MeshName != m.Name {
		if err := store.Delete(a.MeshName); err != nil {
			log.Warningf("area %s: could not delete old mesh %s: %s", a.Name, a.MeshName, err)
		}
	}

	log.Infof("area %s: built %s with %d triangles", a.Name, m.Name, m.TriangleCount())
	a.MeshName = m.Name
	return m, nil
}

func (b *Builder) storeFor(a *Area) (meshstore.Store, error) {
	if b.Store != nil {
		return b.Store, nil
	}
	return meshstore.NewDir(a.SavePath())
}

// BuildAll builds independent areas concurrently. The first failure cancels
// the builds that have not started yet and is returned.
func (b *Builder) BuildAll(ctx context.Context, areas []*Area) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, a := range areas {
		a := a
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := b.Build(a)
			return err
		})
	}
	return g.Wait()
}

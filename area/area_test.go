package area

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wacki/teleportarea/internal/triangulate"
	"github.com/wacki/teleportarea/mesh"
)

const lobbyYAML = `name: lobby
height: 0.5
outer:
  - {x: -2, y: 0, z: -2}
  - {x: 2, y: 0, z: -2}
  - {x: 2, y: 0, z: 2}
  - {x: -2, y: 0, z: 2}
holes:
  - - {x: -0.5, y: 0, z: 0.5}
    - {x: 0.5, y: 0, z: 0.5}
    - {x: 0.5, y: 0, z: -0.5}
    - {x: -0.5, y: 0, z: -0.5}
  - - {x: 1, y: 0, z: 1}
`

func lobby(t *testing.T) *Area {
	t.Helper()
	a, err := Load(strings.NewReader(lobbyYAML))
	require.NoError(t, err)
	return a
}

func TestLoad(t *testing.T) {
	a := lobby(t)
	assert.Equal(t, "lobby", a.Name)
	assert.Equal(t, 0.5, a.Height)
	assert.Len(t, a.Outer, 4)
	assert.Len(t, a.Holes, 2)
	assert.Equal(t, mesh.Vec3{X: 2, Z: -2}, a.Outer[1])
	assert.Equal(t, DefaultMeshSavePath, a.SavePath())
}

func TestSaveRoundTrip(t *testing.T) {
	a := lobby(t)
	a.MeshName = "TeleportationAreaMesh_x"

	var buf bytes.Buffer
	require.NoError(t, a.Save(&buf))
	assert.Contains(t, buf.String(), "mesh: TeleportationAreaMesh_x")

	decoded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, a, decoded)
}

func TestProject(t *testing.T) {
	outer, holes := lobby(t).Project()
	assert.Equal(t, triangulate.Ring{{X: -2, Y: -2}, {X: 2, Y: -2}, {X: 2, Y: 2}, {X: -2, Y: 2}}, outer)
	// The single point hole is still being authored
	require.Len(t, holes, 1)
	assert.Equal(t, triangulate.Point{X: -0.5, Y: 0.5}, holes[0][0])
}

func TestHoles(t *testing.T) {
	a := lobby(t)
	assert.Equal(t, 2, a.AddHole())
	assert.Len(t, a.Holes, 3)
	require.NoError(t, a.RemoveHole(0))
	assert.Len(t, a.Holes, 2)
	assert.Len(t, a.Holes[0], 1)
	assert.Error(t, a.RemoveHole(5))
}

func TestFromRings(t *testing.T) {
	a := FromRings("yard", triangulate.Ring{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, nil)
	assert.Equal(t, mesh.Vec3{X: 1}, a.Outer[1])
	outer, holes := a.Project()
	assert.Equal(t, triangulate.Ring{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, outer)
	assert.Empty(t, holes)
}

func TestReadPoints(t *testing.T) {
	input := `# courtyard
0 0
4 0
4 4
0 4

1 1
1 2
2 2
`
	outer, holes, err := ReadPoints(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, outer, 4)
	require.Len(t, holes, 1)
	assert.Equal(t, triangulate.Point{X: 1, Y: 2}, holes[0][1])

	_, _, err = ReadPoints(strings.NewReader("1 2 3\n"))
	assert.Error(t, err)
	_, _, err = ReadPoints(strings.NewReader("1 x\n"))
	assert.Error(t, err)
	_, _, err = ReadPoints(strings.NewReader("\n\n"))
	assert.Error(t, err)
}

func TestReadSVG(t *testing.T) {
	input := `<svg xmlns="http://www.w3.org/2000/svg">
  <polygon points="0,0 4,0 4,4 0,4" />
  <polygon points="1,1 1,2 2,2" />
</svg>`
	outer, holes, err := ReadSVG(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, triangulate.Point{X: 4, Y: 4}, outer[2])
	require.Len(t, holes, 1)
	assert.Len(t, holes[0], 3)

	_, _, err = ReadSVG(strings.NewReader(`<svg><polygon points="0;0" /></svg>`))
	assert.Error(t, err)
}

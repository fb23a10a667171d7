package resource

import (
	"testing"

	"github.com/ferrox-engine/ferrox/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshResourceRoundTrip(t *testing.T) {

	mesh := NewMeshResource("cube", []math32.Vector3{
		*math32.NewVector3(0, 0, 0),
		*math32.NewVector3(1, 0, 0),
		*math32.NewVector3(0, 1, 0),
	}, []uint32{0, 1, 2})
	require.NoError(t, mesh.Validate())

	data, err := Marshal(mesh)
	require.NoError(t, err)

	var roundTripped MeshResource
	require.NoError(t, Unmarshal(data, &roundTripped))
	assert.False(t, roundTripped.Dormant())
	assert.Equal(t, mesh.Name, roundTripped.Name)
	assert.Equal(t, mesh.Indices, roundTripped.Indices)
	assert.Equal(t, mesh.Vertices, roundTripped.Vertices)

	data2, err := Marshal(&roundTripped)
	require.NoError(t, err)
	assert.Equal(t, data, data2, "serialize->deserialize->serialize must reproduce the same payload")
}

func TestMeshResourceInvalidIndexGoesDormant(t *testing.T) {

	mesh := NewMeshResource("broken", []math32.Vector3{*math32.NewVector3(0, 0, 0)}, []uint32{0, 1, 2})
	err := mesh.Validate()
	assert.Error(t, err)
	assert.True(t, mesh.Dormant())
}

func TestMeshResourceNonMultipleOfThreeGoesDormant(t *testing.T) {

	mesh := NewMeshResource("broken", []math32.Vector3{*math32.NewVector3(0, 0, 0)}, []uint32{0, 0})
	err := mesh.Validate()
	assert.Error(t, err)
	assert.True(t, mesh.Dormant())
}

func TestCollisionTableCapacity(t *testing.T) {

	table := NewCollisionTable("default")
	for i := 0; i < MaxCollisionGroups; i++ {
		_, err := table.AddGroup(string(rune('a' + i)))
		require.NoError(t, err)
	}
	_, err := table.AddGroup("overflow")
	assert.Error(t, err, "a 33rd group must be rejected")
	assert.Len(t, table.Groups, MaxCollisionGroups)
}

func TestCollisionTableFilterLookupIsSymmetric(t *testing.T) {

	table := NewCollisionTable("default")
	a, _ := table.AddGroup("A")
	b, _ := table.AddGroup("B")
	table.SetFilter(a, b, FilterEntry{Action: SkipResolution})

	assert.Equal(t, SkipResolution, table.Lookup(a, b).Action)
	assert.Equal(t, SkipResolution, table.Lookup(b, a).Action)
}

func TestCollisionTableDefaultFilterResolves(t *testing.T) {

	table := NewCollisionTable("default")
	a, _ := table.AddGroup("A")
	b, _ := table.AddGroup("B")

	assert.Equal(t, Resolve, table.Lookup(a, b).Action)
}

func TestSolverConfigClampsIterationCounts(t *testing.T) {

	cfg := NewSolverConfig("world")
	cfg.VelocityIterations = -3
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Equal(t, 1, cfg.VelocityIterations)
	assert.False(t, cfg.Dormant(), "clamping recovers the resource; it must not stay dormant")
}

func TestJointConfigOverrideResolvesOverBase(t *testing.T) {

	base := NewSolverConfig("world")
	override := NewJointConfigOverride("stiffHinge")
	custom := float32(0.9)
	override.Baumgarte = &custom

	baumgarte, _, _, _ := override.Resolve(base)
	assert.Equal(t, custom, baumgarte)
}

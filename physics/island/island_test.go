package island

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSplitsDisjointComponents(t *testing.T) {

	m := NewManager()
	dynamic := []Node{{Index: 0}, {Index: 1}, {Index: 2}, {Index: 3}}
	edges := []Edge{{A: 0, B: 1}, {A: 2, B: 3}}

	islands := m.Build(dynamic, nil, edges)

	assert.Len(t, islands, 2, "two disjoint pairs must produce two islands")
	for _, isl := range islands {
		assert.Len(t, isl.Bodies, 2)
	}
}

func TestBuildBoundaryNodeDoesNotMergeIslands(t *testing.T) {

	m := NewManager()
	dynamic := []Node{{Index: 0}, {Index: 1}}
	boundary := []Node{{Index: 100, Boundary: true}}
	// Both dynamic bodies rest on the same static floor (boundary node 100)
	// but are not connected to each other directly.
	edges := []Edge{{A: 0, B: 100}, {A: 1, B: 100}}

	islands := m.Build(dynamic, boundary, edges)

	assert.Len(t, islands, 2, "a shared static floor must not merge unrelated islands")
	for _, isl := range islands {
		assert.True(t, isl.IsBoundary(100))
	}
}

func TestBuildSkipResolutionEdgeExcludedFromSolveByDefault(t *testing.T) {

	m := NewManager()
	dynamic := []Node{{Index: 0}, {Index: 1}}
	edges := []Edge{{A: 0, B: 1, Skipped: true}}

	islands := m.Build(dynamic, nil, edges)

	require := assert.New(t)
	require.Len(islands, 2, "a skip-resolution edge must not union bodies into the solve graph")
}

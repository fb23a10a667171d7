package resource

import (
	"fmt"

	"github.com/ferrox-engine/ferrox/math32"
)

// MeshResource is a persisted triangle mesh collider: a vertex array and
// an index array, grounded on original_source/Systems/Physics/PhysicsMesh.hpp.
type MeshResource struct {
	ID       ID               `yaml:"id"`
	Name     string           `yaml:"name"`
	Vertices []math32.Vector3 `yaml:"vertices"`
	Indices  []uint32         `yaml:"indices"`

	dormant bool
}

// NewMeshResource creates a MeshResource with a fresh ID.
func NewMeshResource(name string, vertices []math32.Vector3, indices []uint32) *MeshResource {

	return &MeshResource{ID: NewID(), Name: name, Vertices: vertices, Indices: indices}
}

// Validate enforces spec §6 "Persistent invariants on load": every index
// must reference an existing vertex and the index count must be a
// multiple of three. A failing mesh is marked dormant rather than causing
// a fault downstream.
func (m *MeshResource) Validate() error {

	if len(m.Indices)%3 != 0 {
		m.dormant = true
		return fmt.Errorf("mesh %q: index count %d is not a multiple of 3", m.Name, len(m.Indices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			m.dormant = true
			return fmt.Errorf("mesh %q: index %d out of range (have %d vertices)", m.Name, idx, len(m.Vertices))
		}
	}
	m.dormant = false
	return nil
}

// Dormant reports whether the mesh failed validation and should make an
// empty contribution to physics.
func (m *MeshResource) Dormant() bool {

	return m.dormant
}

// SubMesh is one sub-mesh selection within a MultiConvexMeshResource: a
// contiguous run of indices plus its pre-computed mass properties.
type SubMesh struct {
	IndexStart int             `yaml:"indexStart"`
	IndexCount int             `yaml:"indexCount"`
	Volume     float32         `yaml:"volume"`
	CenterMass math32.Vector3  `yaml:"centerMass"`
	AABB       math32.Box3     `yaml:"aabb"`
}

// MultiConvexMeshResource is a mesh resource partitioned into several
// convex sub-meshes, each with pre-computed volume/center-of-mass/AABB,
// grounded on original_source/Systems/Physics/MultiConvexMesh.hpp.
type MultiConvexMeshResource struct {
	ID       ID               `yaml:"id"`
	Name     string           `yaml:"name"`
	Vertices []math32.Vector3 `yaml:"vertices"`
	Indices  []uint32         `yaml:"indices"`
	SubMeshes []SubMesh       `yaml:"subMeshes"`

	dormant bool
}

// NewMultiConvexMeshResource creates a MultiConvexMeshResource with a fresh ID.
func NewMultiConvexMeshResource(name string, vertices []math32.Vector3, indices []uint32, subs []SubMesh) *MultiConvexMeshResource {

	return &MultiConvexMeshResource{ID: NewID(), Name: name, Vertices: vertices, Indices: indices, SubMeshes: subs}
}

func (m *MultiConvexMeshResource) Validate() error {

	if len(m.Indices)%3 != 0 {
		m.dormant = true
		return fmt.Errorf("multi-convex mesh %q: index count %d is not a multiple of 3", m.Name, len(m.Indices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			m.dormant = true
			return fmt.Errorf("multi-convex mesh %q: index %d out of range", m.Name, idx)
		}
	}
	for i, sm := range m.SubMeshes {
		if sm.IndexStart < 0 || sm.IndexStart+sm.IndexCount > len(m.Indices) {
			m.dormant = true
			return fmt.Errorf("multi-convex mesh %q: sub-mesh %d index range out of bounds", m.Name, i)
		}
	}
	m.dormant = false
	return nil
}

func (m *MultiConvexMeshResource) Dormant() bool {

	return m.dormant
}

// HeightMapResource is a terrain-style height-field collider: a regular
// grid of row*col samples plus cell spacing.
type HeightMapResource struct {
	ID      ID        `yaml:"id"`
	Name    string    `yaml:"name"`
	Rows    int       `yaml:"rows"`
	Cols    int       `yaml:"cols"`
	CellX   float32   `yaml:"cellX"`
	CellZ   float32   `yaml:"cellZ"`
	Heights []float32 `yaml:"heights"`

	dormant bool
}

// NewHeightMapResource creates a HeightMapResource with a fresh ID.
func NewHeightMapResource(name string, rows, cols int, cellX, cellZ float32, heights []float32) *HeightMapResource {

	return &HeightMapResource{ID: NewID(), Name: name, Rows: rows, Cols: cols, CellX: cellX, CellZ: cellZ, Heights: heights}
}

func (h *HeightMapResource) Validate() error {

	if len(h.Heights) != h.Rows*h.Cols {
		h.dormant = true
		return fmt.Errorf("heightmap %q: have %d samples, want rows*cols=%d", h.Name, len(h.Heights), h.Rows*h.Cols)
	}
	h.dormant = false
	return nil
}

func (h *HeightMapResource) Dormant() bool {

	return h.dormant
}

// HeightAt returns the sample at grid cell (row, col).
func (h *HeightMapResource) HeightAt(row, col int) float32 {

	return h.Heights[row*h.Cols+col]
}

// Package island implements the island manager described in spec §4.5:
// a union-find partition of awake dynamic bodies connected by non-skipped
// contacts and joints, so the solver can iterate each disjoint group
// independently and decide sleep per-island rather than per-body.
//
// Grounded on original_source/Systems/Physics/PhysicsIsland.hpp (flood-fill
// over the collider/constraint graph) and on the union-find style already
// used by g3n-engine's physics/collision.Matrix for pairwise bookkeeping.
package island

// Node is anything the island manager can place into an island: a body
// index plus whether it is a boundary node (static/kinematic) that is
// added to an island it touches but never flooded through.
type Node struct {
	Index    int
	Boundary bool
}

// Edge connects two body indices through a contact or joint. Skipped
// marks a skip-resolution contact. When SolveSkippedEdges is false, Build
// does not join islands through a skipped edge, neither for solving nor
// for sleep; the edge is still listed in the Edges of each island it
// touches.
type Edge struct {
	A, B    int
	Skipped bool // true for a SkipResolution collision-filter pair
}

// Island is a maximal connected component of awake dynamic bodies.
type Island struct {
	Bodies    []int // dynamic body indices, including boundary bodies touched
	Edges     []Edge
	boundary  map[int]bool
}

// IsBoundary reports whether the given body index was added to this
// island as a boundary (static/kinematic) node.
func (isl *Island) IsBoundary(bodyIndex int) bool {

	return isl.boundary[bodyIndex]
}

// Manager builds islands from the current frame's graph of awake bodies
// and connecting edges via union-find (spec §4.5).
type Manager struct {
	// SolveSkippedEdges controls whether SkipResolution edges join the
	// bodies they connect into one island. Build makes a single partition
	// that serves both solving and sleep, so when this is false a skipped
	// edge links islands for neither.
	SolveSkippedEdges bool
}

// NewManager creates a Manager with SolveSkippedEdges disabled, so
// skip-resolution edges do not link islands.
func NewManager() *Manager {

	return &Manager{SolveSkippedEdges: false}
}

// Build partitions the given awake dynamic nodes and boundary nodes into
// islands using the supplied edges. Static/kinematic bodies never seed or
// get flooded through; they are only attached to whichever island(s) they
// touch.
func (m *Manager) Build(dynamic []Node, boundary []Node, edges []Edge) []*Island {

	parent := make(map[int]int)
	isDynamic := make(map[int]bool, len(dynamic))
	for _, n := range dynamic {
		parent[n.Index] = n.Index
		isDynamic[n.Index] = true
	}

	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	// Union dynamic bodies connected through non-boundary edges.
	for _, e := range edges {
		if e.Skipped && !m.SolveSkippedEdges {
			continue
		}
		if isDynamic[e.A] && isDynamic[e.B] {
			union(e.A, e.B)
		}
	}

	byRoot := make(map[int]*Island)
	order := make([]int, 0, len(dynamic))
	for _, n := range dynamic {
		root := find(n.Index)
		isl, ok := byRoot[root]
		if !ok {
			isl = &Island{boundary: make(map[int]bool)}
			byRoot[root] = isl
			order = append(order, root)
		}
		isl.Bodies = append(isl.Bodies, n.Index)
	}

	// Attach edges (including skipped ones, and ones touching boundary
	// nodes) to whichever island(s) they touch, and mark boundary nodes.
	for _, e := range edges {
		var islandsTouched []*Island
		if isDynamic[e.A] {
			if isl, ok := byRoot[find(e.A)]; ok {
				islandsTouched = append(islandsTouched, isl)
			}
		}
		if isDynamic[e.B] {
			if isl, ok := byRoot[find(e.B)]; ok {
				islandsTouched = append(islandsTouched, isl)
			}
		}
		for _, isl := range islandsTouched {
			isl.Edges = append(isl.Edges, e)
			if !isDynamic[e.A] {
				isl.attachBoundary(e.A)
			}
			if !isDynamic[e.B] {
				isl.attachBoundary(e.B)
			}
		}
	}

	islands := make([]*Island, 0, len(order))
	for _, root := range order {
		islands = append(islands, byRoot[root])
	}
	return islands
}

func (isl *Island) attachBoundary(idx int) {

	if isl.boundary[idx] {
		return
	}
	isl.boundary[idx] = true
	isl.Bodies = append(isl.Bodies, idx)
}

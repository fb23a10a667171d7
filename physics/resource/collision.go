package resource

import "fmt"

// MaxCollisionGroups is the bitmask width enforced by a CollisionTable:
// at most 32 groups may be registered (spec §6 "Persistent invariants on
// load"), mirroring original_source/Systems/Physics/CollisionTable.hpp.
const MaxCollisionGroups = 32

// FilterAction decides how a pair of collision groups interacts.
type FilterAction int

const (
	// Resolve performs both detection and resolution (the default).
	Resolve FilterAction = iota
	// SkipResolution still detects, but the solver never resolves the
	// contact, and (unless island.Manager.SolveSkippedEdges is set) it does
	// not link islands, for solving or for sleep.
	SkipResolution
	// SkipDetection never even runs narrowphase for the pair.
	SkipDetection
)

// CollisionGroup is one named entry in a CollisionTable, identified by a
// small bit index (0..31) mirroring CollisionGroup.hpp.
type CollisionGroup struct {
	ID   ID     `yaml:"id"`
	Name string `yaml:"name"`
	Bit  uint   `yaml:"bit"`
}

// Mask returns the single-bit mask for this group.
func (g CollisionGroup) Mask() uint32 {

	return 1 << g.Bit
}

// FilterEntry is the per-pair record in a CollisionTable (spec §3
// "Collision filter").
type FilterEntry struct {
	Action FilterAction `yaml:"action"`

	// SendEventsToA/SendEventsToB/SendEventsToSpace gate whether
	// GroupCollision* events are dispatched to each side.
	SendEventsToA     bool `yaml:"sendEventsToA"`
	SendEventsToB     bool `yaml:"sendEventsToB"`
	SendEventsToSpace bool `yaml:"sendEventsToSpace"`

	// EventNameOverride, when non-empty, replaces the default event name
	// used for this pair.
	EventNameOverride string `yaml:"eventNameOverride,omitempty"`

	// PreSolveBlock requests a PreSolve callback before the solver runs.
	PreSolveBlock bool `yaml:"preSolveBlock"`

	// CustomCollisionEventTracker opts this pair out of the default
	// collision-matrix-driven Started/Persisted/Ended bookkeeping and into
	// a dedicated per-pair start/persist/end event stream instead, for
	// scripts that need fine-grained control over a specific pair's
	// events independent of every other pair sharing these two groups.
	CustomCollisionEventTracker bool `yaml:"customCollisionEventTracker"`
}

// CollisionTable is the persisted CollisionGroup x CollisionGroup filter
// table, holding at most MaxCollisionGroups groups with unique IDs
// (spec §6, §3), mirroring CollisionTable.hpp.
type CollisionTable struct {
	ID     ID               `yaml:"id"`
	Name   string           `yaml:"name"`
	Groups []CollisionGroup `yaml:"groups"`

	// Pairs is the flat list of (groupA bit, groupB bit, entry) triples
	// making up the filter table.
	Pairs []FilterPair `yaml:"pairs"`

	dormant bool
}

// FilterPair is one (groupA, groupB) -> entry triple in a CollisionTable.
type FilterPair struct {
	GroupA uint        `yaml:"groupA"`
	GroupB uint        `yaml:"groupB"`
	Entry  FilterEntry `yaml:"entry"`
}

// NewCollisionTable creates an empty CollisionTable with a fresh ID.
func NewCollisionTable(name string) *CollisionTable {

	return &CollisionTable{ID: NewID(), Name: name}
}

// AddGroup registers a new collision group, assigning it the next free
// bit. Returns an error (and does not mutate the table) if the table is
// already at capacity.
func (t *CollisionTable) AddGroup(name string) (CollisionGroup, error) {

	if len(t.Groups) >= MaxCollisionGroups {
		return CollisionGroup{}, fmt.Errorf("collision table %q: at capacity (%d groups)", t.Name, MaxCollisionGroups)
	}
	for _, g := range t.Groups {
		if g.Name == name {
			return CollisionGroup{}, fmt.Errorf("collision table %q: group %q already registered", t.Name, name)
		}
	}
	g := CollisionGroup{ID: NewID(), Name: name, Bit: uint(len(t.Groups))}
	t.Groups = append(t.Groups, g)
	return g, nil
}

// SetFilter records the FilterEntry for the unordered pair (a, b).
func (t *CollisionTable) SetFilter(a, b CollisionGroup, entry FilterEntry) {

	lo, hi := a.Bit, b.Bit
	if lo > hi {
		lo, hi = hi, lo
	}
	for i, p := range t.Pairs {
		if p.GroupA == lo && p.GroupB == hi {
			t.Pairs[i].Entry = entry
			return
		}
	}
	t.Pairs = append(t.Pairs, FilterPair{GroupA: lo, GroupB: hi, Entry: entry})
}

// Lookup returns the FilterEntry for the unordered pair (a, b), defaulting
// to Resolve with no event suppression when no entry was registered.
func (t *CollisionTable) Lookup(a, b CollisionGroup) FilterEntry {

	lo, hi := a.Bit, b.Bit
	if lo > hi {
		lo, hi = hi, lo
	}
	for _, p := range t.Pairs {
		if p.GroupA == lo && p.GroupB == hi {
			return p.Entry
		}
	}
	return FilterEntry{Action: Resolve, SendEventsToA: true, SendEventsToB: true, SendEventsToSpace: true}
}

// Validate enforces the ≤32-groups / unique-ID invariant.
func (t *CollisionTable) Validate() error {

	if len(t.Groups) > MaxCollisionGroups {
		t.dormant = true
		return fmt.Errorf("collision table %q: %d groups exceeds max %d", t.Name, len(t.Groups), MaxCollisionGroups)
	}
	seen := make(map[ID]bool, len(t.Groups))
	for _, g := range t.Groups {
		if seen[g.ID] {
			t.dormant = true
			return fmt.Errorf("collision table %q: duplicate group id %s", t.Name, g.ID)
		}
		seen[g.ID] = true
	}
	t.dormant = false
	return nil
}

func (t *CollisionTable) Dormant() bool {

	return t.dormant
}

package resource

import "fmt"

// PhysicsMaterial is the persisted friction/restitution/density/priority
// record a Collider references, mirroring
// original_source/Systems/Physics/PhysicsMaterial.hpp.
type PhysicsMaterial struct {
	ID              ID      `yaml:"id"`
	Name            string  `yaml:"name"`
	Density         float32 `yaml:"density"`
	Restitution     float32 `yaml:"restitution"`
	StaticFriction  float32 `yaml:"staticFriction"`
	DynamicFriction float32 `yaml:"dynamicFriction"`

	// Priority breaks ties when two materials disagree on how to combine
	// restitution/friction: the higher-priority material's combine rule wins.
	Priority int `yaml:"priority"`

	dormant bool
}

// NewPhysicsMaterial creates a PhysicsMaterial with a fresh ID and sane
// defaults (restitution 0, friction 0.6, density 1, priority 0).
func NewPhysicsMaterial(name string) *PhysicsMaterial {

	return &PhysicsMaterial{
		ID:              NewID(),
		Name:            name,
		Density:         1,
		Restitution:     0,
		StaticFriction:  0.6,
		DynamicFriction: 0.6,
	}
}

func (m *PhysicsMaterial) Validate() error {

	if m.Density < 0 {
		m.dormant = true
		return fmt.Errorf("material %q: negative density %v", m.Name, m.Density)
	}
	if m.Restitution < 0 || m.Restitution > 1 {
		m.dormant = true
		return fmt.Errorf("material %q: restitution %v out of [0,1]", m.Name, m.Restitution)
	}
	m.dormant = false
	return nil
}

func (m *PhysicsMaterial) Dormant() bool {

	return m.dormant
}

// Package resource implements the persisted-layout data resources consumed
// by the physics kernel: meshes, collision tables, materials, solver
// configuration, and per-joint config overrides. Each resource type is
// grounded on the corresponding original_source/Systems/Physics/*.hpp
// resource, re-expressed as a plain Go struct with a YAML round-trip and
// an invalid-resource-goes-dormant loading discipline (spec §6/§7).
package resource

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"
)

// Logger is the diagnostic sink used when a resource fails validation.
// Satisfied by the standard log package by default, matching the plain
// log.Printf call the teacher uses in physics/narrowphase.go.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Log is the package-level diagnostic sink; replace it to redirect
// resource-validation diagnostics elsewhere.
var Log Logger = log.Default()

// ID is a stable resource identifier, backed by a UUID the way Gekko3D
// keys its entities - here it keys persisted physics resources instead.
type ID uuid.UUID

// NewID generates a fresh random resource ID.
func NewID() ID {

	return ID(uuid.New())
}

func (id ID) String() string {

	return uuid.UUID(id).String()
}

func (id ID) MarshalYAML() (interface{}, error) {

	return uuid.UUID(id).String(), nil
}

func (id *ID) UnmarshalYAML(unmarshal func(interface{}) error) error {

	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("resource: invalid id %q: %w", s, err)
	}
	*id = ID(u)
	return nil
}

// Validatable is satisfied by every resource kind in this package. A loader
// calls Validate once after Unmarshal; a resource that fails validation is
// flipped dormant rather than allowed to crash the caller (spec §7
// "Invalid resource content").
type Validatable interface {
	Validate() error
	Dormant() bool
}

// Marshal serializes a resource to its YAML document form.
func Marshal(v interface{}) ([]byte, error) {

	return yaml.Marshal(v)
}

// Unmarshal parses a YAML document into v and runs its Validate method,
// marking the resource dormant on failure instead of returning an error
// to the caller - the caller always gets back a loadable, if inert, value.
func Unmarshal(data []byte, v Validatable) error {

	if err := yaml.Unmarshal(data, v); err != nil {
		return err
	}
	if err := v.Validate(); err != nil {
		Log.Printf("resource: %T marked dormant: %v", v, err)
	}
	return nil
}

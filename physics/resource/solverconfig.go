package resource

import "fmt"

// PositionCorrectionMode selects how position-level error is removed
// (spec §4.7).
type PositionCorrectionMode int

const (
	Baumgarte PositionCorrectionMode = iota
	PostStabilizationBasic
	PostStabilizationBlock
)

// TangentMode selects how friction tangent directions are derived for a
// contact point (spec §4.3).
type TangentMode int

const (
	TangentOrthonormal TangentMode = iota
	TangentVelocityAligned
	TangentRandom
)

// SolverConfig is the persisted per-world solver tuning record, mirroring
// original_source/Systems/Physics/PhysicsSolverConfig.hpp.
type SolverConfig struct {
	ID   ID     `yaml:"id"`
	Name string `yaml:"name"`

	VelocityIterations int `yaml:"velocityIterations"`
	PositionIterations int `yaml:"positionIterations"`

	PositionCorrection PositionCorrectionMode `yaml:"positionCorrection"`
	TangentSelection   TangentMode            `yaml:"tangentSelection"`

	Baumgarte               float32 `yaml:"baumgarte"`
	MaxLinearErrorCorrection  float32 `yaml:"maxLinearErrorCorrection"`
	MaxAngularErrorCorrection float32 `yaml:"maxAngularErrorCorrection"`

	AllowWarmStart bool `yaml:"allowWarmStart"`

	LinearSleepEpsilon  float32 `yaml:"linearSleepEpsilon"`
	AngularSleepEpsilon float32 `yaml:"angularSleepEpsilon"`
	TimeToSleep         float32 `yaml:"timeToSleep"`

	dormant bool
}

// NewSolverConfig returns a SolverConfig with the defaults named in spec
// §4.6/§4.9: 10 velocity iterations, Baumgarte correction, warm-start on,
// linear/angular sleep epsilon 0.02, time-to-sleep 0.5s.
func NewSolverConfig(name string) *SolverConfig {

	return &SolverConfig{
		ID:                        NewID(),
		Name:                      name,
		VelocityIterations:        10,
		PositionIterations:        4,
		PositionCorrection:        Baumgarte,
		TangentSelection:          TangentOrthonormal,
		Baumgarte:                 0.2,
		MaxLinearErrorCorrection:  0.2,
		MaxAngularErrorCorrection: 0.2,
		AllowWarmStart:            true,
		LinearSleepEpsilon:        0.02,
		AngularSleepEpsilon:       0.02,
		TimeToSleep:               0.5,
	}
}

// Validate clamps out-of-range configuration instead of failing (spec §7
// "Configuration out-of-range"): iteration counts are floored at 1.
func (c *SolverConfig) Validate() error {

	changed := false
	if c.VelocityIterations < 1 {
		c.VelocityIterations = 1
		changed = true
	}
	if c.PositionIterations < 1 {
		c.PositionIterations = 1
		changed = true
	}
	c.dormant = false
	if changed {
		return fmt.Errorf("solver config %q: clamped iteration counts to minimum valid values", c.Name)
	}
	return nil
}

func (c *SolverConfig) Dormant() bool {

	return c.dormant
}

// JointConfigOverride holds per-joint overrides of the world's solver
// defaults (slop, Baumgarte, error-correction caps, correction mode),
// mirroring the source's ConstraintConfigBlock.
type JointConfigOverride struct {
	ID   ID     `yaml:"id"`
	Name string `yaml:"name"`

	Slop                      *float32                `yaml:"slop,omitempty"`
	Baumgarte                 *float32                `yaml:"baumgarte,omitempty"`
	MaxLinearErrorCorrection  *float32                `yaml:"maxLinearErrorCorrection,omitempty"`
	MaxAngularErrorCorrection *float32                `yaml:"maxAngularErrorCorrection,omitempty"`
	PositionCorrection        *PositionCorrectionMode `yaml:"positionCorrection,omitempty"`

	dormant bool
}

// NewJointConfigOverride returns an override record with every field
// unset (inherits the world SolverConfig until explicitly overridden).
func NewJointConfigOverride(name string) *JointConfigOverride {

	return &JointConfigOverride{ID: NewID(), Name: name}
}

// Resolve returns the effective values for this override layered on top
// of a base SolverConfig.
func (o *JointConfigOverride) Resolve(base *SolverConfig) (baumgarte, maxLinear, maxAngular float32, correction PositionCorrectionMode) {

	baumgarte, maxLinear, maxAngular, correction = base.Baumgarte, base.MaxLinearErrorCorrection, base.MaxAngularErrorCorrection, base.PositionCorrection
	if o.Baumgarte != nil {
		baumgarte = *o.Baumgarte
	}
	if o.MaxLinearErrorCorrection != nil {
		maxLinear = *o.MaxLinearErrorCorrection
	}
	if o.MaxAngularErrorCorrection != nil {
		maxAngular = *o.MaxAngularErrorCorrection
	}
	if o.PositionCorrection != nil {
		correction = *o.PositionCorrection
	}
	return
}

func (o *JointConfigOverride) Validate() error {

	o.dormant = false
	return nil
}

func (o *JointConfigOverride) Dormant() bool {

	return o.dormant
}

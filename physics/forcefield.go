// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "github.com/ferrox-engine/ferrox/math32"

// EffectKind identifies an effect's variant. Bits match the per-body
// IgnoreSpaceEffects mask (Body.ignoreSpaceEffects) one-for-one, per
// original_source's PhysicsEffectType bitfield.
type EffectKind uint32

const (
	EffectDrag EffectKind = 1 << iota
	EffectFlow
	EffectForce
	EffectGravity
	EffectThrust
	EffectVortex
	EffectWind
	EffectTorque
	EffectPointGravity
	EffectPointForce
	EffectBuoyancy
	EffectCustom
)

// EffectScope selects which bodies an effect applies to (spec §4.8
// "Attachment scopes").
type EffectScope int

const (
	ScopeSpace  EffectScope = iota // every dynamic body in the simulation
	ScopeLevel                     // every dynamic body tagged with the effect's level name
	ScopeRegion                    // only bodies whose AABB overlaps the effect's region box
	ScopeBody                      // only the effect's explicit target bodies
)

// Effect is the common interface every physics effect satisfies,
// independent of which of {PreCalculator, BodyApplier, SpringApplier} it
// also implements. An effect is something that applies a force and can be
// attached to a body, a region, a level, or the whole space.
type Effect interface {
	Kind() EffectKind
	Active() bool
	SetActive(state bool)
	Scope() EffectScope
	WakeUpOnChange() bool

	// Level, Region and HasTarget only carry meaning under the
	// corresponding scope (ScopeLevel/ScopeRegion/ScopeBody respectively);
	// effectAppliesTo (simulation.go) is what interprets them.
	Level() string
	Region() math32.Box3
	HasTarget(b *Body) bool
}

// PreCalculator is implemented by effects that cache world-space state
// once per step instead of recomputing it per body (local→world direction
// transforms, vortex axis, flow center).
type PreCalculator interface {
	PreCalculate(dt float32)
}

// BodyApplier is implemented by effects that push a force/torque directly
// onto a rigid body.
type BodyApplier interface {
	ApplyToBody(b *Body, dt float32)
}

// SpringApplier completes the {PreCalculate, ApplyToBody, ApplyToSpringSystem}
// capability set effects are polymorphic over. No concrete effect in this
// package implements it: the spring systems it would apply to (cloth,
// rope) are soft-body constructs, explicitly out of scope. The interface
// is kept so a future SpringSystem component could opt an effect in
// without touching the effect's own type.
type SpringApplier interface {
	ApplyToSprings(dt float32)
}

// baseEffect holds the state every effect shares: on/off, wake-on-change,
// and attachment scope. Embedded by every concrete effect type below.
type baseEffect struct {
	kind           EffectKind
	active         bool
	wakeUpOnChange bool
	scope          EffectScope
	level          string
	region         math32.Box3
	targets        []*Body
}

func newBaseEffect(kind EffectKind) baseEffect {

	return baseEffect{kind: kind, active: true, scope: ScopeSpace}
}

func (e *baseEffect) Kind() EffectKind { return e.kind }

func (e *baseEffect) Active() bool { return e.active }

// SetActive enables/disables the effect without removing it from the
// simulation.
func (e *baseEffect) SetActive(state bool) { e.active = state }

func (e *baseEffect) Scope() EffectScope { return e.scope }

func (e *baseEffect) WakeUpOnChange() bool { return e.wakeUpOnChange }

// SetWakeUpOnChange sets whether a body is woken when this effect's
// properties change (spec §4.8).
func (e *baseEffect) SetWakeUpOnChange(state bool) { e.wakeUpOnChange = state }

// SetLevelScope attaches this effect to a level-wide scope: only bodies
// whose Level() matches name are affected.
func (e *baseEffect) SetLevelScope(name string) {

	e.scope = ScopeLevel
	e.level = name
}

// SetRegionScope attaches this effect to a region scope: only bodies
// whose AABB overlaps box are affected.
func (e *baseEffect) SetRegionScope(box math32.Box3) {

	e.scope = ScopeRegion
	e.region = box
}

// SetBodyScope attaches this effect directly to one or more bodies,
// independent of where they are in space.
func (e *baseEffect) SetBodyScope(bodies ...*Body) {

	e.scope = ScopeBody
	e.targets = bodies
}

// Level returns the level tag this effect is scoped to (only meaningful
// under ScopeLevel).
func (e *baseEffect) Level() string { return e.level }

// Region returns the world-space box this effect is scoped to (only
// meaningful under ScopeRegion).
func (e *baseEffect) Region() math32.Box3 { return e.region }

// HasTarget reports whether b is one of this effect's explicit targets
// (only meaningful under ScopeBody).
func (e *baseEffect) HasTarget(b *Body) bool {

	for _, t := range e.targets {
		if t == b {
			return true
		}
	}
	return false
}

//
// ForceEffect applies a constant force in a given direction, in local or
// world space. Always applied at the body's center of mass; heavier
// bodies accelerate less for the same force (spec §4.8 direction-based).
//
type ForceEffect struct {
	baseEffect
	localSpaceDirection bool
	direction           math32.Vector3
	worldDirection      math32.Vector3
	strength            float32
}

// NewForceEffect creates and returns a pointer to a new ForceEffect.
func NewForceEffect(direction *math32.Vector3, strength float32) *ForceEffect {

	fe := &ForceEffect{baseEffect: newBaseEffect(EffectForce)}
	fe.direction = *direction.Clone().Normalize()
	fe.strength = strength
	return fe
}

// SetLocalSpaceDirection selects whether Direction is interpreted in the
// body's local frame (recomputed per body) or world space (cached once).
func (fe *ForceEffect) SetLocalSpaceDirection(state bool) { fe.localSpaceDirection = state }

func (fe *ForceEffect) SetStrength(strength float32) { fe.strength = strength }

func (fe *ForceEffect) SetDirection(dir *math32.Vector3) { fe.direction = *dir.Clone().Normalize() }

// PreCalculate caches the world-space direction once per step when the
// direction is already in world space.
func (fe *ForceEffect) PreCalculate(dt float32) {

	if !fe.localSpaceDirection {
		fe.worldDirection = fe.direction
	}
}

// ApplyToBody satisfies BodyApplier.
func (fe *ForceEffect) ApplyToBody(b *Body, dt float32) {

	dir := fe.worldDirection
	if fe.localSpaceDirection {
		dir = b.VectorToWorld(&fe.direction)
	}
	force := dir.MultiplyScalar(fe.strength)
	b.ApplyForce(force, math32.NewVector3(0, 0, 0))
}

//
// GravityEffect is a constant acceleration applied in a given direction;
// mass is ignored, so every body falls at the same rate. Useful for
// world or region gravity (spec §4.8 direction-based).
//
type GravityEffect struct {
	baseEffect
	localSpaceDirection bool
	direction           math32.Vector3
	worldDirection      math32.Vector3
	strength            float32
}

// NewGravityEffect creates and returns a pointer to a new GravityEffect.
func NewGravityEffect(direction *math32.Vector3, strength float32) *GravityEffect {

	ge := &GravityEffect{baseEffect: newBaseEffect(EffectGravity)}
	ge.direction = *direction.Clone().Normalize()
	ge.strength = strength
	return ge
}

func (ge *GravityEffect) SetLocalSpaceDirection(state bool) { ge.localSpaceDirection = state }

func (ge *GravityEffect) SetStrength(strength float32) { ge.strength = strength }

func (ge *GravityEffect) SetDirection(dir *math32.Vector3) { ge.direction = *dir.Clone().Normalize() }

func (ge *GravityEffect) PreCalculate(dt float32) {

	if !ge.localSpaceDirection {
		ge.worldDirection = ge.direction
	}
}

// ApplyToBody applies the acceleration via ApplyForceField, which scales
// by mass internally so the resulting acceleration is mass-independent.
func (ge *GravityEffect) ApplyToBody(b *Body, dt float32) {

	dir := ge.worldDirection
	if ge.localSpaceDirection {
		dir = b.VectorToWorld(&ge.direction)
	}
	accel := dir.MultiplyScalar(ge.strength)
	b.ApplyForceField(accel)
}

//
// basicPointEffect is the shared min/max-distance strength interpolation
// for PointForceEffect/PointGravityEffect (spec §4.8 point-based),
// replacing the old Attractor/Repeller pair with the source's named
// strength-at-min/strength-at-max falloff model.
//
type basicPointEffect struct {
	baseEffect
	position      math32.Vector3
	minDistance   float32
	maxDistance   float32
	strengthAtMin float32
	strengthAtMax float32
}

func newBasicPointEffect(kind EffectKind, position *math32.Vector3, strengthAtMin, strengthAtMax float32) basicPointEffect {

	return basicPointEffect{
		baseEffect:    newBaseEffect(kind),
		position:      *position,
		minDistance:   0,
		maxDistance:   50,
		strengthAtMin: strengthAtMin,
		strengthAtMax: strengthAtMax,
	}
}

func (pe *basicPointEffect) SetPosition(pos *math32.Vector3) { pe.position = *pos }

func (pe *basicPointEffect) Position() math32.Vector3 { return pe.position }

// SetDistanceRange sets the two radii strengthAtMin/strengthAtMax are
// linearly interpolated between; beyond maxDistance, strength clamps to
// strengthAtMax (spec's "ClampToMax" end condition).
func (pe *basicPointEffect) SetDistanceRange(min, max float32) {

	pe.minDistance = min
	pe.maxDistance = max
}

func (pe *basicPointEffect) SetStrengthRange(atMin, atMax float32) {

	pe.strengthAtMin = atMin
	pe.strengthAtMax = atMax
}

func (pe *basicPointEffect) strengthAt(dist float32) float32 {

	if pe.maxDistance <= pe.minDistance {
		return pe.strengthAtMin
	}
	t := math32.Clamp((dist-pe.minDistance)/(pe.maxDistance-pe.minDistance), 0, 1)
	return pe.strengthAtMin + t*(pe.strengthAtMax-pe.strengthAtMin)
}

// PointForceEffect pushes (or, with a negative strength, pulls) bodies
// along the line from the effect's position to the body, with magnitude
// interpolated between StrengthAtMin/StrengthAtMax over the min/max
// distance range. Mass affects the resulting acceleration.
type PointForceEffect struct {
	basicPointEffect
}

// NewPointForceEffect creates and returns a pointer to a new
// PointForceEffect.
func NewPointForceEffect(position *math32.Vector3, strengthAtMin, strengthAtMax float32) *PointForceEffect {

	return &PointForceEffect{newBasicPointEffect(EffectPointForce, position, strengthAtMin, strengthAtMax)}
}

func (pe *PointForceEffect) ApplyToBody(b *Body, dt float32) {

	pos := b.Position()
	dir := pos.Clone().Sub(&pe.position)
	dist := dir.Length()
	if dist < 1e-6 {
		return
	}
	dir.Normalize()
	force := dir.MultiplyScalar(pe.strengthAt(dist))
	b.ApplyForce(force, math32.NewVector3(0, 0, 0))
}

// PointGravityEffect pulls (or, with a negative strength, pushes) bodies
// toward the effect's position as a mass-independent acceleration, with
// magnitude interpolated the same way as PointForceEffect. Useful for
// planetary gravity.
type PointGravityEffect struct {
	basicPointEffect
}

// NewPointGravityEffect creates and returns a pointer to a new
// PointGravityEffect.
func NewPointGravityEffect(position *math32.Vector3, strengthAtMin, strengthAtMax float32) *PointGravityEffect {

	return &PointGravityEffect{newBasicPointEffect(EffectPointGravity, position, strengthAtMin, strengthAtMax)}
}

func (pg *PointGravityEffect) ApplyToBody(b *Body, dt float32) {

	pos := b.Position()
	dir := pg.position.Clone().Sub(&pos)
	dist := dir.Length()
	if dist < 1e-6 {
		return
	}
	dir.Normalize()
	accel := dir.MultiplyScalar(pg.strengthAt(dist))
	b.ApplyForceField(accel)
}

//
// DragEffect slows a body's linear and angular velocity. Damping terms
// are mass-independent accelerations (accel = -b*v); drag terms are
// mass-dependent forces (F = -b*v) (spec §4.8 field-based).
//
type DragEffect struct {
	baseEffect
	linearDamping  float32
	angularDamping float32
	linearDrag     float32
	angularDrag    float32
}

// NewDragEffect creates and returns a pointer to a new DragEffect with
// every coefficient zero (no effect until configured).
func NewDragEffect() *DragEffect {

	return &DragEffect{baseEffect: newBaseEffect(EffectDrag)}
}

func (de *DragEffect) SetLinearDamping(d float32)  { de.linearDamping = d }
func (de *DragEffect) SetAngularDamping(d float32) { de.angularDamping = d }
func (de *DragEffect) SetLinearDrag(d float32)     { de.linearDrag = d }
func (de *DragEffect) SetAngularDrag(d float32)    { de.angularDrag = d }

func (de *DragEffect) ApplyToBody(b *Body, dt float32) {

	vel := b.Velocity()
	angVel := b.AngularVelocity()

	if de.linearDrag != 0 {
		force := vel.Clone().MultiplyScalar(-de.linearDrag)
		b.ApplyForce(force, math32.NewVector3(0, 0, 0))
	}
	if de.linearDamping != 0 {
		accel := vel.Clone().MultiplyScalar(-de.linearDamping)
		b.ApplyForceField(accel)
	}
	if de.angularDrag != 0 {
		torque := angVel.Clone().MultiplyScalar(-de.angularDrag)
		b.ApplyTorque(torque)
	}
	if de.angularDamping != 0 {
		// Angular damping is mass-independent in the source; approximate
		// by scaling out the inverse-inertia the torque would otherwise
		// be divided by is not directly invertible here, so apply it as
		// a direct angular velocity pull instead of a torque.
		b.SetAngularVelocity(angVel.Clone().MultiplyScalar(1 - de.angularDamping*dt))
	}
}

//
// FlowEffect pushes a body toward a target speed along a direction (a
// river or conveyor), and optionally attracts it toward the flow's
// central axis (a tractor beam) (spec §4.8 field-based).
//
type FlowEffect struct {
	baseEffect
	localSpaceDirection bool
	direction           math32.Vector3
	worldDirection      math32.Vector3
	center              math32.Vector3
	flowSpeed           float32
	maxFlowForce        float32
	attractToCenter     bool
	attractSpeed        float32
	maxAttractForce     float32
}

// NewFlowEffect creates and returns a pointer to a new FlowEffect.
func NewFlowEffect(direction *math32.Vector3, flowSpeed, maxFlowForce float32) *FlowEffect {

	fe := &FlowEffect{baseEffect: newBaseEffect(EffectFlow)}
	fe.direction = *direction.Clone().Normalize()
	fe.flowSpeed = flowSpeed
	fe.maxFlowForce = maxFlowForce
	return fe
}

func (fe *FlowEffect) SetLocalSpaceDirection(state bool) { fe.localSpaceDirection = state }
func (fe *FlowEffect) SetCenter(center *math32.Vector3)  { fe.center = *center }

// SetAttractToCenter enables pulling bodies toward the flow's central
// axis at attractSpeed, clamped by maxAttractForce.
func (fe *FlowEffect) SetAttractToCenter(attractSpeed, maxAttractForce float32) {

	fe.attractToCenter = true
	fe.attractSpeed = attractSpeed
	fe.maxAttractForce = maxAttractForce
}

func (fe *FlowEffect) PreCalculate(dt float32) {

	if !fe.localSpaceDirection {
		fe.worldDirection = fe.direction
	}
}

func (fe *FlowEffect) ApplyToBody(b *Body, dt float32) {

	dir := fe.worldDirection
	if fe.localSpaceDirection {
		dir = b.VectorToWorld(&fe.direction)
	}
	dir.Normalize()

	vel := b.Velocity()
	along := vel.Dot(&dir)
	forceMag := math32.Clamp(fe.flowSpeed-along, -fe.maxFlowForce, fe.maxFlowForce)
	b.ApplyForce(dir.Clone().MultiplyScalar(forceMag), math32.NewVector3(0, 0, 0))

	if !fe.attractToCenter {
		return
	}
	pos := b.Position()
	toAxis := pos.Clone().Sub(&fe.center)
	alongAxis := toAxis.Dot(&dir)
	radial := toAxis.Sub(dir.Clone().MultiplyScalar(alongAxis))
	dist := radial.Length()
	if dist < 1e-6 {
		return
	}
	radialDir := radial.Clone().Normalize().Negate()
	radialVel := vel.Dot(radialDir)
	attractForceMag := math32.Clamp(fe.attractSpeed-radialVel, -fe.maxAttractForce, fe.maxAttractForce)
	b.ApplyForce(radialDir.MultiplyScalar(attractForceMag), math32.NewVector3(0, 0, 0))
}

//
// WindEffect applies a force from the squared relative speed between a
// moving air mass and the body, scaled by a drag coefficient standing in
// for the body's cross-sectional area (spec §4.8 field-based).
//
type WindEffect struct {
	baseEffect
	localSpaceDirection bool
	direction           math32.Vector3
	worldDirection      math32.Vector3
	windSpeed           float32
	dragCoefficient     float32
}

// NewWindEffect creates and returns a pointer to a new WindEffect.
func NewWindEffect(direction *math32.Vector3, windSpeed, dragCoefficient float32) *WindEffect {

	we := &WindEffect{baseEffect: newBaseEffect(EffectWind)}
	we.direction = *direction.Clone().Normalize()
	we.windSpeed = windSpeed
	we.dragCoefficient = dragCoefficient
	return we
}

func (we *WindEffect) SetLocalSpaceDirection(state bool) { we.localSpaceDirection = state }

func (we *WindEffect) PreCalculate(dt float32) {

	if !we.localSpaceDirection {
		we.worldDirection = we.direction
	}
}

func (we *WindEffect) ApplyToBody(b *Body, dt float32) {

	dir := we.worldDirection
	if we.localSpaceDirection {
		dir = b.VectorToWorld(&we.direction)
	}
	windVel := dir.Clone().MultiplyScalar(we.windSpeed)
	vel := b.Velocity()
	rel := windVel.Sub(&vel)
	speed := rel.Length()
	if speed < 1e-6 {
		return
	}
	relDir := rel.Clone().Normalize()
	force := relDir.MultiplyScalar(we.dragCoefficient * speed * speed)
	b.ApplyForce(force, math32.NewVector3(0, 0, 0))
}

//
// VortexEffect spins bodies about an axis: an inward force pulls them
// toward the axis and a tangential force spins them around it, both
// interpolated over a min/max distance range (spec §4.8 field-based).
// Intended as a region effect.
//
type VortexEffect struct {
	baseEffect
	localAxis       bool
	axis            math32.Vector3
	worldAxis       math32.Vector3
	center          math32.Vector3
	minDistance     float32
	maxDistance     float32
	twistAtMin      float32
	twistAtMax      float32
	inwardAtMin     float32
	inwardAtMax     float32
}

// NewVortexEffect creates and returns a pointer to a new VortexEffect
// spinning about axis, centered at center.
func NewVortexEffect(center, axis *math32.Vector3) *VortexEffect {

	ve := &VortexEffect{baseEffect: newBaseEffect(EffectVortex)}
	ve.center = *center
	ve.axis = *axis.Clone().Normalize()
	ve.maxDistance = 50
	return ve
}

func (ve *VortexEffect) SetLocalAxis(state bool) { ve.localAxis = state }

func (ve *VortexEffect) SetDistanceRange(min, max float32) {

	ve.minDistance = min
	ve.maxDistance = max
}

func (ve *VortexEffect) SetTwistStrength(atMin, atMax float32) {

	ve.twistAtMin = atMin
	ve.twistAtMax = atMax
}

func (ve *VortexEffect) SetInwardStrength(atMin, atMax float32) {

	ve.inwardAtMin = atMin
	ve.inwardAtMax = atMax
}

func (ve *VortexEffect) PreCalculate(dt float32) {

	if !ve.localAxis {
		ve.worldAxis = ve.axis
	}
}

func (ve *VortexEffect) ApplyToBody(b *Body, dt float32) {

	axis := ve.worldAxis
	if ve.localAxis {
		axis = b.VectorToWorld(&ve.axis)
	}
	axis.Normalize()

	pos := b.Position()
	toPos := pos.Clone().Sub(&ve.center)
	along := toPos.Dot(&axis)
	radial := toPos.Sub(axis.Clone().MultiplyScalar(along))
	dist := radial.Length()
	if dist < 1e-6 {
		return
	}

	t := float32(0)
	if ve.maxDistance > ve.minDistance {
		t = math32.Clamp((dist-ve.minDistance)/(ve.maxDistance-ve.minDistance), 0, 1)
	}
	twist := ve.twistAtMin + t*(ve.twistAtMax-ve.twistAtMin)
	inward := ve.inwardAtMin + t*(ve.inwardAtMax-ve.inwardAtMin)

	radialDir := radial.Clone().Normalize()
	tangent := axis.Clone().Cross(radialDir).MultiplyScalar(twist)
	total := radialDir.Clone().MultiplyScalar(-inward)
	total.Add(tangent)

	b.ApplyForce(total, math32.NewVector3(0, 0, 0))
}

//
// ThrustEffect applies a directional force at an offset from the body's
// center of mass, producing a torque when the offset is non-zero. Used
// to model thrusters (spec §4.8 local).
//
type ThrustEffect struct {
	baseEffect
	localSpaceDirection bool
	direction           math32.Vector3
	localOffset         math32.Vector3
	strength            float32
}

// NewThrustEffect creates and returns a pointer to a new ThrustEffect.
func NewThrustEffect(direction *math32.Vector3, localOffset *math32.Vector3, strength float32) *ThrustEffect {

	te := &ThrustEffect{baseEffect: newBaseEffect(EffectThrust)}
	te.direction = *direction.Clone().Normalize()
	te.localOffset = *localOffset
	te.strength = strength
	return te
}

func (te *ThrustEffect) SetLocalSpaceDirection(state bool) { te.localSpaceDirection = state }

func (te *ThrustEffect) ApplyToBody(b *Body, dt float32) {

	if te.localSpaceDirection {
		localForce := te.direction.Clone().MultiplyScalar(te.strength)
		b.ApplyLocalForce(localForce, &te.localOffset)
		return
	}
	force := te.direction.Clone().MultiplyScalar(te.strength)
	worldOffset := b.VectorToWorld(&te.localOffset)
	b.ApplyForce(force, &worldOffset)
}

//
// TorqueEffect applies a pure torque about an axis, in local or world
// space, with no linear component (spec §4.8 local).
//
type TorqueEffect struct {
	baseEffect
	localTorque bool
	axis        math32.Vector3
	strength    float32
}

// NewTorqueEffect creates and returns a pointer to a new TorqueEffect.
func NewTorqueEffect(axis *math32.Vector3, strength float32) *TorqueEffect {

	te := &TorqueEffect{baseEffect: newBaseEffect(EffectTorque)}
	te.axis = *axis.Clone().Normalize()
	te.strength = strength
	return te
}

func (te *TorqueEffect) SetLocalTorque(state bool) { te.localTorque = state }

func (te *TorqueEffect) ApplyToBody(b *Body, dt float32) {

	axis := te.axis
	if te.localTorque {
		axis = b.VectorToWorld(&te.axis)
	}
	torque := axis.Clone().Normalize().MultiplyScalar(te.strength)
	b.ApplyTorque(torque)
}

//
// BuoyancyEffect pushes a body up out of a fluid volume with a force
// proportional to the submerged fraction of its AABB (spec §4.8 field-
// based). This approximates the source's per-point sampling grid with a
// single AABB/plane overlap fraction — cheaper, and adequate for AABB-
// shaped or roughly-box-shaped colliders; it underestimates buoyancy for
// very non-box-like shapes near the surface.
//
type BuoyancyEffect struct {
	baseEffect
	surfaceHeight float32
	fluidDensity  float32
	gravity       math32.Vector3
}

// NewBuoyancyEffect creates and returns a pointer to a new BuoyancyEffect
// for a fluid whose surface sits at surfaceHeight (world Y) with the
// given density, opposing the given world-space gravity vector.
func NewBuoyancyEffect(surfaceHeight, fluidDensity float32, gravity *math32.Vector3) *BuoyancyEffect {

	return &BuoyancyEffect{
		baseEffect:    newBaseEffect(EffectBuoyancy),
		surfaceHeight: surfaceHeight,
		fluidDensity:  fluidDensity,
		gravity:       *gravity,
	}
}

func (be *BuoyancyEffect) SetSurfaceHeight(h float32) { be.surfaceHeight = h }
func (be *BuoyancyEffect) SetFluidDensity(d float32)   { be.fluidDensity = d }

func (be *BuoyancyEffect) ApplyToBody(b *Body, dt float32) {

	bb := b.BoundingBox()
	size := bb.Size(nil)
	if size.Y <= 0 {
		return
	}
	submergedTop := math32.Min(bb.Max.Y, be.surfaceHeight)
	submerged := submergedTop - bb.Min.Y
	if submerged <= 0 {
		return
	}
	frac := math32.Clamp(submerged/size.Y, 0, 1)
	volume := size.X * size.Y * size.Z

	g := be.gravity.Length()
	if g < 1e-6 {
		return
	}
	up := be.gravity.Clone().Negate().Normalize()
	force := up.MultiplyScalar(be.fluidDensity * volume * frac * g)
	b.ApplyForce(force, math32.NewVector3(0, 0, 0))
}

//
// CustomEffect raises CustomPhysicsEffectPrecalculatePhase and
// ApplyCustomPhysicsEffect events instead of computing a force itself,
// so a script can implement bespoke effect logic without a new Go type
// (spec §4.8 "user-defined", spec §6 events).
//
type CustomEffect struct {
	baseEffect
}

// NewCustomEffect creates and returns a pointer to a new CustomEffect.
// Simulation.internalStep dispatches its precalculate/apply events
// directly rather than calling PreCalculate/ApplyToBody, since a custom
// effect's whole purpose is to hand control to a subscriber.
func NewCustomEffect() *CustomEffect {

	return &CustomEffect{baseEffect: newBaseEffect(EffectCustom)}
}

// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/ferrox-engine/ferrox/physics/equation"
	"github.com/ferrox-engine/ferrox/physics/solver"
	"github.com/ferrox-engine/ferrox/physics/constraint"
	"github.com/ferrox-engine/ferrox/physics/collision"
	"github.com/ferrox-engine/ferrox/physics/island"
	"github.com/ferrox-engine/ferrox/physics/material"
	"github.com/ferrox-engine/ferrox/physics/resource"
	"github.com/ferrox-engine/ferrox/math32"
	"github.com/ferrox-engine/ferrox/core"
)

// Simulation represents a physics simulation.
type Simulation struct {
	core.Dispatcher // World-level event stream (spec §6): CollisionStarted/
	                 // Persisted/Ended, RigidBodySlept/Awoke, PhysicsUpdateFinished.

	scene        *core.Node
	effects      []Effect
	solverConfig *resource.SolverConfig

	// Bodies under simulation
	bodies      []*Body  // Slice of bodies. May contain nil values.
	nilBodies   []int           // Array keeps track of which indices of the 'bodies' array are nil

	// Collision tracking
	collisionMatrix     collision.Matrix // Boolean triangular matrix indicating which pairs of bodies are colliding
	prevCollisionMatrix collision.Matrix // CollisionMatrix from the previous step.

	allowSleep  bool                // Makes bodies go to sleep when they've been inactive
	paused bool

	quatNormalizeSkip int  // How often to normalize quaternions. Set to 0 for every step, 1 for every second etc..
	                       // A larger value increases performance.
	                       // If bodies tend to explode, set to a smaller value (zero to be sure nothing can go wrong).
	quatNormalizeFast bool // Set to true to use fast quaternion normalization. It is often enough accurate to use. If bodies tend to explode, set to false.

	time float32      // The wall-clock time since simulation start
	stepnumber int    // Number of timesteps taken since start
	default_dt float32 // Default and last timestep sizes
	dt float32      // Currently / last used timestep. Is set to -1 if not available. This value is updated before each internal step, which means that it is "fresh" inside event callbacks.

	accumulator float32 // Time accumulator for interpolation. See http://gafferongames.com/game-physics/fix-your-timestep/

	broadphase  *Broadphase    // The broadphase algorithm to use, default is NaiveBroadphase
	narrowphase *Narrowphase   // The narrowphase algorithm to use
	solver      solver.ISolver // The solver algorithm to use, default is Gauss-Seidel

	// manifoldCache is the persistent contact manager (spec §4.3):
	// point-matching, warm-start carry and Started/Persisted/Ended
	// bookkeeping for event publication.
	manifoldCache *ManifoldCache

	// islandMgr partitions awake dynamic bodies into constraint islands
	// each step (spec §4.5); islands gate per-island sleep decisions.
	islandMgr *island.Manager
	islands   []*island.Island

	// collisionTable is the simulation's 32-group collision filter table
	// (spec §3/§6). Nil means every pair resolves normally.
	collisionTable *resource.CollisionTable

	constraints       []constraint.IConstraint  // All constraints

	// dynamicMotors are DynamicMotor sidecars stepped once per frame,
	// before their owning joint's Update, so the motor's callback-driven
	// target speed is in effect for this step's solve.
	dynamicMotors []*constraint.DynamicMotor

	materials         []*material.Material      // All added materials
	cMaterials        []*material.ContactMaterial

	//contactMaterialTable map[intPair]*material.ContactMaterial // Used to look up a ContactMaterial given two instances of Material.
	//defaultMaterial *Material
	defaultContactMaterial *material.ContactMaterial

	doProfiling      bool
}

// NewSimulation creates and returns a pointer to a new physics simulation.
func NewSimulation(scene *core.Node) *Simulation {

	s := new(Simulation)
	s.Dispatcher.Initialize()
	s.time = 0
	s.dt = -1
	s.default_dt = 1.0 / 60
	s.scene = scene
	s.allowSleep = true

	// Set up broadphase, narrowphase, and solver
	s.broadphase = NewBroadphase()
	s.narrowphase = NewNarrowphase(s)
	s.solver = solver.NewGaussSeidel()
	s.manifoldCache = NewManifoldCache()
	s.islandMgr = island.NewManager()

	s.collisionMatrix = collision.NewMatrix()
	s.prevCollisionMatrix = collision.NewMatrix()

	//s.contactMaterialTable = make(map[intPair]*material.ContactMaterial)
	//s.defaultMaterial = NewMaterial
	s.defaultContactMaterial = material.NewContactMaterial(nil, nil)

	s.SetSolverConfig(resource.NewSolverConfig("default"))

	return s
}

// iterativeSolver is satisfied by solvers whose iteration count can be
// tuned at runtime (GaussSeidel.SetIterations); used by SetSolverConfig
// so Simulation.solver can stay typed as the narrower solver.ISolver.
type iterativeSolver interface {
	SetIterations(n int)
}

// SetSolverConfig installs the world's solver tuning record (spec §4.6/
// §4.7): VelocityIterations is forwarded to the underlying solver, and
// PositionCorrection/PositionIterations/error-correction caps drive the
// position-correction pass in internalStep.
func (s *Simulation) SetSolverConfig(cfg *resource.SolverConfig) {

	if cfg == nil {
		return
	}
	cfg.Validate()
	s.solverConfig = cfg
	if it, ok := s.solver.(iterativeSolver); ok {
		it.SetIterations(cfg.VelocityIterations)
	}
}

// SolverConfig returns the simulation's current solver tuning record.
func (s *Simulation) SolverConfig() *resource.SolverConfig {

	return s.solverConfig
}

func (s *Simulation) Scene() *core.Node {

	return s.scene
}

// SetCollisionTable installs the 32-group collision filter table used to
// resolve SkipDetection/SkipResolution pairs (spec §3/§6).
func (s *Simulation) SetCollisionTable(t *resource.CollisionTable) {

	s.collisionTable = t
}

// CollisionTable returns the simulation's collision filter table, or nil
// if none was set.
func (s *Simulation) CollisionTable() *resource.CollisionTable {

	return s.collisionTable
}

// SetAllowSleep enables or disables island-gated sleeping (spec §4.9).
func (s *Simulation) SetAllowSleep(state bool) {

	s.allowSleep = state
}

// Islands returns the constraint islands assembled during the most recent
// step (spec §4.5), primarily useful for tests and diagnostics.
func (s *Simulation) Islands() []*island.Island {

	return s.islands
}

// AddEffect adds a physics effect to the simulation (spec §4.8).
func (s *Simulation) AddEffect(eff Effect) {

	s.effects = append(s.effects, eff)
}

// RemoveEffect removes the specified effect from the simulation.
// Returns true if found, false otherwise.
func (s *Simulation) RemoveEffect(eff Effect) bool {

	for pos, current := range s.effects {
		if current == eff {
			copy(s.effects[pos:], s.effects[pos+1:])
			s.effects[len(s.effects)-1] = nil
			s.effects = s.effects[:len(s.effects)-1]
			return true
		}
	}
	return false
}

// Effects returns the effects currently attached to the simulation.
func (s *Simulation) Effects() []Effect {

	return s.effects
}

// effectAppliesTo resolves an effect's attachment scope against a body
// (spec §4.8 "Attachment scopes"). ScopeSpace additionally honors the
// body's IgnoreSpaceEffects mask, which is otherwise a dead setting.
func effectAppliesTo(eff Effect, b *Body) bool {

	switch eff.Scope() {
	case ScopeSpace:
		return !b.IgnoresSpaceEffect(uint32(eff.Kind()))
	case ScopeLevel:
		return b.Level() != "" && b.Level() == eff.Level()
	case ScopeRegion:
		region := eff.Region()
		bb := b.BoundingBox()
		return region.IsIntersectionBox(&bb)
	case ScopeBody:
		return eff.HasTarget(b)
	}
	return false
}

// AddBody adds a body to the simulation.
func (s *Simulation) AddBody(body *Body, name string) {

	// Do nothing if body is already present
	for _, existingBody := range s.bodies {
		if existingBody == body {
			return // Do nothing
		}
	}

	// If there are any open/nil spots in the body slice - add the body to one of them
	// Else, just append to the end of the slice. Either way compute the body's index in the slice.
	var idx int
	nilLen := len(s.nilBodies)
	if nilLen > 0 {
		idx = s.nilBodies[nilLen-1]
		s.nilBodies = s.nilBodies[0:nilLen-1]
		s.bodies[idx] = body
	} else {
		idx = len(s.bodies)
		s.bodies = append(s.bodies, body)

		// Initialize collision matrix values up to the current index (and set the colliding flag to false)
		s.collisionMatrix.Set(idx, idx, false)
		s.prevCollisionMatrix.Set(idx, idx, false)
	}

	body.SetIndex(idx)
	body.SetName(name)
	body.MarkBroadphaseInsert(body.BodyType() != Static)

	// TODO dispatch add-body event
	//s.Dispatch(AddBodyEvent, BodyEvent{body})
}

// RemoveBody removes the specified body from the simulation.
// Returns true if found, false otherwise.
func (s *Simulation) RemoveBody(body *Body) bool {

	for idx, current := range s.bodies {
		if current == body {
			s.bodies[idx] = nil
			s.broadphase.Remove(body)
			// TODO dispatch remove-body event
			//s.Dispatch(AddBodyEvent, BodyEvent{body})
			return true
		}
	}
	return false
}

// Clean removes nil bodies from the bodies array, recalculates the body indices and updates the collision matrix.
//func (s *Simulation) Clean() {
//
//	// TODO Remove nil bodies from array
//	//copy(s.bodies[pos:], s.bodies[pos+1:])
//	//s.bodies[len(s.bodies)-1] = nil
//	//s.bodies = s.bodies[:len(s.bodies)-1]
//
//	// Recompute body indices (each body has a .index int property)
//	for i:=0; i<len(s.bodies); i++ {
//		s.bodies[i].SetIndex(i)
//	}
//
//	// TODO Update collision matrix
//
//}

// Bodies returns the slice of bodies under simulation.
// The slice may contain nil values!
func (s *Simulation) Bodies() []*Body{

	return s.bodies
}

func (s *Simulation) Step(frameDelta float32) {

	s.StepPlus(frameDelta, 0, 10)
}


// StepPlus steps the simulation.
// maxSubSteps should be 10 by default
func (s *Simulation) StepPlus(frameDelta float32, timeSinceLastCalled float32, maxSubSteps int) {

	if s.paused {
		return
	}

	dt := frameDelta//float32(frameDelta.Seconds())

    //if timeSinceLastCalled == 0 { // Fixed, simple stepping

        s.internalStep(dt)

        // Increment time
        //s.time += dt

    //} else {
	//
    //    s.accumulator += timeSinceLastCalled
    //    var substeps = 0
    //    for s.accumulator >= dt && substeps < maxSubSteps {
    //        // Do fixed steps to catch up
    //        s.internalStep(dt)
    //        s.accumulator -= dt
    //        substeps++
    //    }
	//
    //    var t = (s.accumulator % dt) / dt
    //    for j := 0; j < len(s.bodies); j++ {
    //        var b = s.bodies[j]
    //        b.previousPosition.lerp(b.position, t, b.interpolatedPosition)
    //        b.previousQuaternion.slerp(b.quaternion, t, b.interpolatedQuaternion)
    //        b.previousQuaternion.normalize()
    //    }
    //    s.time += timeSinceLastCalled
    //}

}

// SetPaused sets the paused state of the simulation.
func (s *Simulation) SetPaused(state bool) {

	s.paused = state
}

// Paused returns the paused state of the simulation.
func (s *Simulation) Paused() bool {

	return s.paused
}

// ClearForces sets all body forces in the world to zero.
func (s *Simulation) ClearForces() {

	for i:=0; i < len(s.bodies); i++ {
		if s.bodies[i] != nil {
			s.bodies[i].ClearForces()
		}
	}
}

// AddConstraint adds a constraint to the simulation.
func (s *Simulation) AddConstraint(c constraint.IConstraint) {

	s.constraints = append(s.constraints, c)
}

func (s *Simulation) RemoveConstraint(c constraint.IConstraint) {

	// TODO
}

// AddDynamicMotor registers a DynamicMotor to be stepped (its driver
// callback evaluated and pushed into its joint's motor) every frame.
func (s *Simulation) AddDynamicMotor(dm *constraint.DynamicMotor) {

	s.dynamicMotors = append(s.dynamicMotors, dm)
}

// RemoveDynamicMotor unregisters a previously added DynamicMotor; it does
// not disable the underlying joint motor, only stops driving it.
func (s *Simulation) RemoveDynamicMotor(dm *constraint.DynamicMotor) bool {

	for i, existing := range s.dynamicMotors {
		if existing == dm {
			s.dynamicMotors = append(s.dynamicMotors[:i], s.dynamicMotors[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Simulation) AddMaterial(mat *material.Material) {

	s.materials = append(s.materials, mat)
}

func (s *Simulation) RemoveMaterial(mat *material.Material) {

	// TODO
}

// Adds a contact material to the simulation
func (s *Simulation) AddContactMaterial(cmat *material.ContactMaterial) {

	s.cMaterials = append(s.cMaterials, cmat)

	// TODO add contactMaterial materials to contactMaterialTable
	// s.contactMaterialTable.set(cmat.materials[0].id, cmat.materials[1].id, cmat)
}

// GetContactMaterial returns the contact material between the specified bodies.
func (s *Simulation) GetContactMaterial(bodyA, bodyB *Body) *material.ContactMaterial {

	var cm *material.ContactMaterial
	// TODO
	//if bodyA.material != nil && bodyB.material != nil {
	//	cm = s.contactMaterialTable.get(bodyA.material.id, bodyB.material.id)
	//	if cm == nil {
	//		cm = s.defaultContactMaterial
	//	}
	//} else {
	cm = s.defaultContactMaterial
	//}
	return cm
}


// Events =====================

type CollideEvent struct {
	body      *Body
	contactEq *equation.Contact
}

// TODO AddBodyEvent, RemoveBodyEvent
type ContactEvent struct {
	bodyA *Body
	bodyB *Body
}

const (
	BeginContactEvent = "physics.BeginContactEvent"
	EndContactEvent   = "physics.EndContactEvent"
	CollisionEv       = "physics.Collision"

	// World-level events dispatched by Simulation (spec §6).
	CollisionStarted        = "physics.CollisionStarted"
	CollisionPersisted      = "physics.CollisionPersisted"
	CollisionEnded          = "physics.CollisionEnded"
	RigidBodySleptEvent     = "physics.RigidBodySlept"
	RigidBodyAwokeEvent     = "physics.RigidBodyAwoke"
	PhysicsUpdateFinished   = "physics.PhysicsUpdateFinished"

	// Joint limit/breakage events (spec §6).
	JointLowerLimitReached  = "physics.JointLowerLimitReached"
	JointUpperLimitReached  = "physics.JointUpperLimitReached"
	JointExceedImpulseLimit = "physics.JointExceedImpulseLimit"

	// CustomEffect events (spec §4.8/§6): a CustomEffect never computes a
	// force on its own, it only raises these for a subscriber to act on.
	CustomPhysicsEffectPrecalculatePhase = "physics.CustomPhysicsEffectPrecalculatePhase"
	ApplyCustomPhysicsEffect             = "physics.ApplyCustomPhysicsEffect"
)

// CollisionPairEvent is dispatched for CollisionStarted/Persisted/Ended:
// the simulation-level counterpart of the per-body CollideEvent, carrying
// both bodies so a single subscriber can watch every pair at once.
type CollisionPairEvent struct {
	BodyA *Body
	BodyB *Body
}

// JointLimitEvent is dispatched for JointLowerLimitReached/
// JointUpperLimitReached: Joint identifies the constraint whose JointLimit
// sidecar clamped, Axis is the sidecar's axis index (0 for single-axis
// joints), Value is the current constraint position along that axis.
type JointLimitEvent struct {
	Joint constraint.IConstraint
	Axis  int
	Value float32
}

// JointImpulseLimitEvent is dispatched for JointExceedImpulseLimit: a
// breakable joint's accumulated impulse exceeded MaxImpulse and the
// joint was disabled.
type JointImpulseLimitEvent struct {
	Joint   constraint.IConstraint
	Impulse float32
}

// CustomPhysicsEffectEvent is dispatched for
// CustomPhysicsEffectPrecalculatePhase/ApplyCustomPhysicsEffect: Effect
// identifies which CustomEffect raised it, Body is nil for the
// precalculate-phase event (raised once per step, not per body) and set
// for the per-body apply event.
type CustomPhysicsEffectEvent struct {
	Effect *CustomEffect
	Body   *Body
	Dt     float32
}

// ===========================


// ApplySolution applies the specified solution to the bodies under simulation.
// The solution is a set of linear and angular velocity deltas for each body.
// This method alters the solution arrays.
func (s *Simulation) ApplySolution(sol *solver.Solution) {

	// Add results to velocity and angular velocity of bodies
	for i := 0; i < len(s.bodies); i++ {
		if s.bodies[i] != nil {
			s.bodies[i].ApplyVelocityDeltas(&sol.VelocityDeltas[i], &sol.AngularVelocityDeltas[i])
		}
	}
}

// correctPositions runs the post-stabilization position solver (spec §4.7).
// Baumgarte mode needs nothing here, since its bias term is already baked
// into the velocity solve; PostStabilizationBasic sweeps every contact and
// joint equation once per iteration, while PostStabilizationBlock instead
// gives each joint (and each contact equation) its own sub-iterations before
// moving to the next block, approximating a block solve.
func (s *Simulation) correctPositions(contactEqs []*equation.Contact) {

	cfg := s.solverConfig
	if cfg == nil || cfg.PositionCorrection == resource.Baumgarte {
		return
	}

	resolveLimits := func(c constraint.IConstraint) (float32, float32) {
		maxLinear, maxAngular := cfg.MaxLinearErrorCorrection, cfg.MaxAngularErrorCorrection
		if co, ok := c.(interface {
			ConfigOverride() *resource.JointConfigOverride
		}); ok {
			if ov := co.ConfigOverride(); ov != nil {
				_, maxLinear, maxAngular, _ = ov.Resolve(cfg)
			}
		}
		return maxLinear, maxAngular
	}

	switch cfg.PositionCorrection {
	case resource.PostStabilizationBasic:
		for iter := 0; iter < cfg.PositionIterations; iter++ {
			for _, eq := range contactEqs {
				s.correctEquationPosition(eq, cfg.MaxLinearErrorCorrection, cfg.MaxAngularErrorCorrection)
			}
			for i := 0; i < len(s.constraints); i++ {
				maxLinear, maxAngular := resolveLimits(s.constraints[i])
				for _, eq := range s.constraints[i].Equations() {
					s.correctEquationPosition(eq, maxLinear, maxAngular)
				}
			}
		}
	case resource.PostStabilizationBlock:
		for _, eq := range contactEqs {
			for iter := 0; iter < cfg.PositionIterations; iter++ {
				s.correctEquationPosition(eq, cfg.MaxLinearErrorCorrection, cfg.MaxAngularErrorCorrection)
			}
		}
		for i := 0; i < len(s.constraints); i++ {
			maxLinear, maxAngular := resolveLimits(s.constraints[i])
			eqs := s.constraints[i].Equations()
			for iter := 0; iter < cfg.PositionIterations; iter++ {
				for _, eq := range eqs {
					s.correctEquationPosition(eq, maxLinear, maxAngular)
				}
			}
		}
	}
}

// correctEquationPosition nudges the position (and, for rotational rows,
// orientation) of an equation's two bodies toward removing its current
// Gq position error, the same G/eff-mass terms the velocity solve uses but
// applied directly to Body.position/Body.quaternion instead of velocity.
func (s *Simulation) correctEquationPosition(eq equation.IEquation, maxLinear, maxAngular float32) {

	if !eq.Enabled() {
		return
	}
	ba, okA := eq.BodyA().(*Body)
	bb, okB := eq.BodyB().(*Body)
	if !okA || !okB {
		return
	}

	c := eq.ComputeGiMGt() + eq.Eps()
	if c == 0 {
		return
	}
	lambda := -eq.ComputeGq() / c

	jeA := eq.JeA()
	jeB := eq.JeB()
	spatA := jeA.Spatial()
	spatB := jeB.Spatial()
	rotA := jeA.Rotational()
	rotB := jeB.Rotational()

	if ba.BodyType() == Dynamic {
		deltaPos := spatA.Clone().MultiplyScalar(lambda * ba.InvMassEff())
		clampMagnitude(deltaPos, maxLinear)
		ba.position.Add(deltaPos)

		deltaTheta := rotA.Clone().MultiplyScalar(lambda).ApplyMatrix3(ba.InvRotInertiaWorldEff())
		clampMagnitude(deltaTheta, maxAngular)
		integrateQuaternionDelta(ba.quaternion, deltaTheta)
	}
	if bb.BodyType() == Dynamic {
		deltaPos := spatB.Clone().MultiplyScalar(lambda * bb.InvMassEff())
		clampMagnitude(deltaPos, maxLinear)
		bb.position.Add(deltaPos)

		deltaTheta := rotB.Clone().MultiplyScalar(lambda).ApplyMatrix3(bb.InvRotInertiaWorldEff())
		clampMagnitude(deltaTheta, maxAngular)
		integrateQuaternionDelta(bb.quaternion, deltaTheta)
	}
}

// clampMagnitude scales v down in place so its length never exceeds max.
func clampMagnitude(v *math32.Vector3, max float32) {

	if max <= 0 {
		return
	}
	length := v.Length()
	if length > max {
		v.MultiplyScalar(max / length)
	}
}

// integrateQuaternionDelta nudges q by the small-angle rotation theta,
// using the same first-order quaternion-derivative form Body.Integrate
// uses for a velocity-rate angular step, but applied as a one-shot
// correction rather than scaled by dt.
func integrateQuaternionDelta(q *math32.Quaternion, theta *math32.Vector3) {

	bx, by, bz, bw := q.X, q.Y, q.Z, q.W
	ax, ay, az := theta.X, theta.Y, theta.Z
	q.X += 0.5 * (ax*bw + ay*bz - az*by)
	q.Y += 0.5 * (ay*bw + az*bx - ax*bz)
	q.Z += 0.5 * (az*bw + ax*by - ay*bx)
	q.W += 0.5 * (-ax*bx - ay*by - az*bz)
	q.Normalize()
}

// Store old collision state info
func (s *Simulation) collisionMatrixTick() {

	s.prevCollisionMatrix = s.collisionMatrix
	s.collisionMatrix = collision.NewMatrix()

	lb := len(s.bodies)
	s.collisionMatrix.Set(lb, lb, false)

	// TODO verify that the matrices are indeed different
	//if s.prevCollisionMatrix == s.collisionMatrix {
	//	log.Error("SAME")
	//}

	// TODO
	//s.bodyOverlapKeeper.tick()
	//s.shapeOverlapKeeper.tick()
}

func (s *Simulation) uniqueBodiesFromPairs(pairs []CollisionPair) []*Body {

	bodiesUndergoingNarrowphase := make([]*Body, 0) // array of indices of s.bodies
	for _, pair := range pairs {
		alreadyAddedA := false
		alreadyAddedB := false
		for _, body := range bodiesUndergoingNarrowphase {
			if pair.BodyA == body {
				alreadyAddedA = true
				if alreadyAddedB {
					break
				}
			}
			if pair.BodyB == body {
				alreadyAddedB = true
				if alreadyAddedA {
					break
				}
			}
		}
		if !alreadyAddedA {
			bodiesUndergoingNarrowphase = append(bodiesUndergoingNarrowphase, pair.BodyA)
		}
		if !alreadyAddedB {
			bodiesUndergoingNarrowphase = append(bodiesUndergoingNarrowphase, pair.BodyB)
		}
	}

	return bodiesUndergoingNarrowphase
}

// TODO read https://gafferongames.com/post/fix_your_timestep/
func (s *Simulation) internalStep(dt float32) {

	s.dt = dt

	// Step 1: commit deferred transform/mass/broadphase mutations queued
	// since the last step before anything reads body state (spec §4.1/§2).
	s.CommitChanges()

	// Apply effects (spec §4.8): a PreCalculate pass once per effect, then
	// an ApplyToBody pass per dynamic body the effect's scope covers.
	// CustomEffect never computes a force itself; it raises events instead.
	for _, eff := range s.effects {
		if !eff.Active() {
			continue
		}
		if pc, ok := eff.(PreCalculator); ok {
			pc.PreCalculate(dt)
		}
		if ce, ok := eff.(*CustomEffect); ok {
			s.Dispatch(CustomPhysicsEffectPrecalculatePhase, &CustomPhysicsEffectEvent{Effect: ce, Dt: dt})
		}
	}
	for _, b := range s.bodies {
		if b == nil || b.BodyType() != Dynamic {
			continue
		}
		for _, eff := range s.effects {
			if !eff.Active() || !effectAppliesTo(eff, b) {
				continue
			}
			if ce, ok := eff.(*CustomEffect); ok {
				s.Dispatch(ApplyCustomPhysicsEffect, &CustomPhysicsEffectEvent{Effect: ce, Body: b, Dt: dt})
				continue
			}
			if ba, ok := eff.(BodyApplier); ok {
				ba.ApplyToBody(b, dt)
			}
		}
	}

	// Drop last step's Started/Persisted/Ended bookkeeping before this
	// step's narrowphase pass repopulates it.
	s.manifoldCache.Reset()

    // Find pairs of bodies that are potentially colliding (broadphase),
	// reading only from the committed proxy registry.
	pairs := s.broadphase.FindCollisionPairs(s.broadphase.Proxies())

	// Drop SkipDetection pairs outright (spec §3 "Collision filter") and
	// prune pairs excluded by constraints' colConn property.
	pairs = s.filterPairs(pairs)
    pairs = s.prunePairs(pairs)

	// Switch collision matrices (to keep track of which collisions started/ended)
    s.collisionMatrixTick()

    // Resolve collisions and generate contact and friction equations
	contactEqs, frictionEqs := s.narrowphase.GenerateEquations(pairs)

	// SkipResolution pairs still produce contacts (for caching/events) but
	// must not affect velocities (spec §8 scenario 5).
	s.applyResolutionFilter(contactEqs, frictionEqs)

	// Add all friction equations to solver
	for i := 0; i < len(frictionEqs); i++ {
		s.solver.AddEquation(frictionEqs[i])
	}

	// Add all contact equations to solver (and update some things)
	for i := 0; i < len(contactEqs); i++ {
		s.solver.AddEquation(contactEqs[i])
		s.updateSleepAndCollisionMatrix(contactEqs[i])
	}

	// Drive DynamicMotor sidecars' target speeds before their owning
	// joints compute this step's equations.
	for _, dm := range s.dynamicMotors {
		dm.Step(dt)
	}

    // Add all equations from user-added constraints to the solver
	userAddedEquations := 0
    for i := 0; i < len(s.constraints); i++ {
		c := s.constraints[i]
		if brk, ok := c.(interface{ Broken() bool }); ok && brk.Broken() {
			continue
		}
		c.Update()
        eqs := c.Equations()
        for j := 0; j < len(eqs); j++ {
			userAddedEquations++
            s.solver.AddEquation(eqs[j])
        }
    }

	// Poll limit sidecars for lower/upper transitions (spec §6) now that
	// Update() has refreshed every joint's generalized coordinates.
	for i := 0; i < len(s.constraints); i++ {
		lb, ok := s.constraints[i].(constraint.LimitBearing)
		if !ok {
			continue
		}
		for axis, lim := range lb.Limits() {
			lowerReached, upperReached := lim.CheckReached()
			if lowerReached {
				s.Dispatch(JointLowerLimitReached, &JointLimitEvent{Joint: s.constraints[i], Axis: axis, Value: lim.Current()})
			}
			if upperReached {
				s.Dispatch(JointUpperLimitReached, &JointLimitEvent{Joint: s.constraints[i], Axis: axis, Value: lim.Current()})
			}
		}
	}

	// Assemble this step's constraint islands (spec §4.5) now that every
	// contact and joint equation for the step is known.
	s.islands = s.buildIslands(contactEqs)

	// Publish collision events from this step's manifold-cache bookkeeping.
	s.emitContactEvents()
	// Wake up bodies
	// TODO why not wake bodies up inside s.updateSleepAndCollisionMatrix when setting the WakeUpAfterNarrowphase flag?
	// Maybe there we are only looking at bodies that belong to current contact equations...
	// and need to wake up all marked bodies
	for i := 0; i < len(s.bodies); i++ {
		bi := s.bodies[i]
		if bi != nil && bi.WakeUpAfterNarrowphase() {
			bi.WakeUp()
			bi.SetWakeUpAfterNarrowphase(false)
		}
	}

	// If we have any equations to solve
	if len(frictionEqs) + len(contactEqs) + userAddedEquations > 0 {
		// Update effective mass for all bodies
		for i := 0; i < len(s.bodies); i++ {
			if s.bodies[i] != nil {
				s.bodies[i].UpdateEffectiveMassProperties()
			}
		}
		// Solve the constrained system
		solution := s.solver.Solve(dt, len(s.bodies))
		// Apply linear and angular velocity deltas to bodies
		s.ApplySolution(solution)
		// Clear all equations added to the solver
		s.solver.ClearEquations()
	}

	// Breakable joints (spec §3 Joint "max impulse"): a joint whose rows
	// accumulated more impulse this step than its MaxImpulse snaps and
	// stops being solved from the next step on.
	for i := 0; i < len(s.constraints); i++ {
		c := s.constraints[i]
		breakable, ok := c.(interface {
			Broken() bool
			MaxImpulse() float32
			AccumulatedImpulse(h float32) float32
			Break()
		})
		if !ok || breakable.Broken() || breakable.MaxImpulse() <= 0 {
			continue
		}
		impulse := breakable.AccumulatedImpulse(dt)
		if impulse > breakable.MaxImpulse() {
			breakable.Break()
			s.Dispatch(JointExceedImpulseLimit, &JointImpulseLimitEvent{Joint: c, Impulse: impulse})
		}
	}

    // Apply damping (only to dynamic bodies)
    // See http://code.google.com/p/bullet/issues/detail?id=74 for details
    for _, body := range s.bodies {
        if body != nil && body.BodyType() == Dynamic {
			body.ApplyDamping(dt)
        }
    }

    // TODO s.Dispatch(World_step_preStepEvent)

	// Integrate the forces into velocities and the velocities into position deltas for all bodies
    // TODO future: quatNormalize := s.stepnumber % (s.quatNormalizeSkip + 1) == 0
    for _, body := range s.bodies {
		if body != nil {
			body.Integrate(dt, true, s.quatNormalizeFast)
		}
    }

	// Post-stabilization position solver (spec §4.7): removes residual
	// positional/angular error the Baumgarte bias left behind by nudging
	// Body.position/Body.quaternion directly.
	s.correctPositions(contactEqs)

    s.ClearForces()

    // TODO s.broadphase.dirty = true ?

    // Update world time
    s.time += dt
    s.stepnumber += 1

    // TODO s.Dispatch(World_step_postStepEvent)

    // Sleeping update: gated per-island, not per-body (spec §4.9).
    s.sleepUpdate(s.islands)

    s.Dispatch(PhysicsUpdateFinished, nil)
}

// TODO - REVIEW THIS
func (s *Simulation) prunePairs(pairs []CollisionPair) []CollisionPair {

	// TODO There is probably a bug here when the same body can have multiple constraints and appear in multiple pairs

	//// Remove constrained pairs with collideConnected == false
	//pairIdxsToRemove := []int
	//for i := 0; i < len(s.constraints); i++ {
	//	c := s.constraints[i]
	//	cBodyA := s.bodies[c.BodyA().Index()]
	//	cBodyB := s.bodies[c.BodyB().Index()]
	//	if !c.CollideConnected() {
	//		for i := range pairs {
	//			if (pairs[i].BodyA == cBodyA && pairs[i].BodyB == cBodyB) ||
	//				(pairs[i].BodyA == cBodyB && pairs[i].BodyB == cBodyA) {
	//				pairIdxsToRemove = append(pairIdxsToRemove, i)
	//
	//			}
	//		}
	//	}
	//}
	//
	//// Remove pairs
	////var prunedPairs []CollisionPair
	//for i := range pairs {
	//	for _, idx := range pairIdxsToRemove {
	//		copy(pairs[i:], pairs[i+1:])
	//		//pairs[len(pairs)-1] = nil
	//		pairs = pairs[:len(pairs)-1]
	//	}
	//}

	return pairs
}

// generateContacts
func (s *Simulation) updateSleepAndCollisionMatrix(contactEq *equation.Contact) {

	// Get current collision indices
	bodyA := s.bodies[contactEq.BodyA().Index()]
	bodyB := s.bodies[contactEq.BodyB().Index()]

	// TODO future: update equations with physical material properties

	if bodyA.AllowSleep() && bodyA.BodyType() == Dynamic && bodyA.SleepState() == Sleeping && bodyB.SleepState() == Awake && bodyB.BodyType() != Static {
		velocityB := bodyB.Velocity()
		angularVelocityB := bodyB.AngularVelocity()
		speedSquaredB := velocityB.LengthSq() + angularVelocityB.LengthSq()
		speedLimitSquaredB := math32.Pow(bodyB.SleepSpeedLimit(), 2)
		if speedSquaredB >= speedLimitSquaredB*2 {
			bodyA.SetWakeUpAfterNarrowphase(true)
		}
	}

	if bodyB.AllowSleep() && bodyB.BodyType() == Dynamic && bodyB.SleepState() == Sleeping && bodyA.SleepState() == Awake && bodyA.BodyType() != Static {
		velocityA := bodyA.Velocity()
		angularVelocityA := bodyA.AngularVelocity()
		speedSquaredA := velocityA.LengthSq() + angularVelocityA.LengthSq()
		speedLimitSquaredA := math32.Pow(bodyA.SleepSpeedLimit(), 2)
		if speedSquaredA >= speedLimitSquaredA*2 {
			bodyB.SetWakeUpAfterNarrowphase(true)
		}
	}

	// Now we know that i and j are in contact. Set collision matrix state
	s.collisionMatrix.Set(bodyA.Index(), bodyB.Index(), true)

	if s.prevCollisionMatrix.Get(bodyA.Index(), bodyB.Index()) == false {
		// First contact!
		bodyA.Dispatch(CollisionEv, &CollideEvent{bodyB, contactEq})
		bodyB.Dispatch(CollisionEv, &CollideEvent{bodyA, contactEq})
	}

	// TODO this is only for events
	//s.bodyOverlapKeeper.set(bodyA.id, bodyB.id)
	//s.shapeOverlapKeeper.set(si.id, sj.id)

}

// emitContactEvents dispatches CollisionStarted/Persisted/Ended for every
// pair the manifold cache tracked this step (spec §2 step 13, §6), as a
// world-level CollisionPairEvent on the Simulation. It dispatches no
// per-body event; the per-body CollideEvent is raised separately by
// updateSleepAndCollisionMatrix on a pair's first contact.
//
// A pair whose FilterEntry sets CustomCollisionEventTracker is dispatched
// on a dedicated per-pair channel (EventNameOverride, or "custom:" plus
// the default event name when no override is given) instead of the
// shared default channel, so a script tracking one specific pair isn't
// drowned out by every other pair sharing those two groups.
func (s *Simulation) emitContactEvents() {

	dispatch := func(evname string, key pairKey) {
		bodyA := s.bodies[key.lo]
		bodyB := s.bodies[key.hi]
		if bodyA == nil || bodyB == nil {
			return
		}
		entry := s.filterEntry(bodyA, bodyB)
		if entry.CustomCollisionEventTracker {
			name := entry.EventNameOverride
			if name == "" {
				name = "custom:" + evname
			}
			s.Dispatch(name, &CollisionPairEvent{BodyA: bodyA, BodyB: bodyB})
			return
		}
		s.Dispatch(evname, &CollisionPairEvent{BodyA: bodyA, BodyB: bodyB})
	}

	for _, key := range s.manifoldCache.Started {
		dispatch(CollisionStarted, key)
	}
	for _, key := range s.manifoldCache.Persisted {
		dispatch(CollisionPersisted, key)
	}
	for _, key := range s.manifoldCache.Ended {
		dispatch(CollisionEnded, key)
	}
}
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constraint implements physics constraints.
package constraint

import (
	"github.com/ferrox-engine/ferrox/physics/equation"
	"github.com/ferrox-engine/ferrox/physics/resource"
	"github.com/ferrox-engine/ferrox/math32"
)

type IBody interface {
	equation.IBody
	WakeUp()
	VectorToWorld(*math32.Vector3) math32.Vector3
	PointToLocal(*math32.Vector3) math32.Vector3
	VectorToLocal(*math32.Vector3) math32.Vector3
	Quaternion() *math32.Quaternion
}

type IConstraint interface {
	Update() // Update all the equations with data.
	Equations() []equation.IEquation
	CollideConnected() bool
	BodyA() IBody
	BodyB() IBody
}

// LimitBearing is implemented by joint types carrying one or more
// JointLimit atoms (spec §3 Joint "Optional sidecar components");
// Simulation polls Limits() once per step to dispatch
// JointLowerLimitReached/JointUpperLimitReached (spec §6).
type LimitBearing interface {
	Limits() []*JointLimit
}

// Constraint base struct.
type Constraint struct {
	equations []equation.IEquation // Equations to be solved in this constraint
	bodyA     IBody
	bodyB     IBody
	colConn   bool // Set to true if you want the bodies to collide when they are connected.

	// configOverride layers per-joint solver tuning on top of the
	// simulation's SolverConfig (spec §3 Joint "Optional sidecar
	// components: ... JointConfigOverride").
	configOverride *resource.JointConfigOverride

	// maxImpulse is the breakable-joint threshold (spec §3 Joint "max
	// impulse (for breakable joints)"); zero means unbreakable.
	maxImpulse float32
	broken     bool
}

// NewConstraint creates and returns a pointer to a new Constraint object.
//func NewConstraint(bodyA, bodyB IBody, colConn, wakeUpBodies bool) *Constraint {
//
//	c := new(Constraint)
//	c.initialize(bodyA, bodyB, colConn, wakeUpBodies)
//	return c
//}

func (c *Constraint) initialize(bodyA, bodyB IBody, colConn, wakeUpBodies bool) {

	c.bodyA = bodyA
	c.bodyB = bodyB
	c.colConn = colConn // true

	if wakeUpBodies { // true
		if bodyA != nil {
			bodyA.WakeUp()
		}
		if bodyB != nil {
			bodyB.WakeUp()
		}
	}
}

// AddEquation adds an equation to the constraint.
func (c *Constraint) AddEquation(eq equation.IEquation) {

	c.equations = append(c.equations, eq)
}

// Equations returns the constraint's equations.
func (c *Constraint) Equations() []equation.IEquation {

	return c.equations
}

func (c *Constraint) CollideConnected() bool {

	return c.colConn
}

func (c *Constraint) BodyA() IBody {

	return c.bodyA
}

func (c *Constraint) BodyB() IBody {

	return c.bodyB
}

// SetEnable sets the enabled flag of the constraint equations.
func (c *Constraint) SetEnabled(state bool) {

	for i := range c.equations {
		c.equations[i].SetEnabled(state)
	}
}

// SetConfigOverride installs per-joint solver tuning that layers on top
// of the simulation's SolverConfig; nil reverts to the simulation's
// defaults.
func (c *Constraint) SetConfigOverride(o *resource.JointConfigOverride) {

	c.configOverride = o
}

// ConfigOverride returns the joint's solver tuning override, or nil.
func (c *Constraint) ConfigOverride() *resource.JointConfigOverride {

	return c.configOverride
}

// SetMaxImpulse sets the breakable-joint impulse threshold; zero (the
// default) means the joint never breaks.
func (c *Constraint) SetMaxImpulse(maxImpulse float32) {

	c.maxImpulse = maxImpulse
}

// MaxImpulse returns the breakable-joint impulse threshold.
func (c *Constraint) MaxImpulse() float32 {

	return c.maxImpulse
}

// Broken reports whether this joint has exceeded MaxImpulse and been
// disabled.
func (c *Constraint) Broken() bool {

	return c.broken
}

// Break disables every equation in the joint and marks it broken; called
// by the simulation once AccumulatedImpulse exceeds MaxImpulse.
func (c *Constraint) Break() {

	c.broken = true
	c.SetEnabled(false)
}

// AccumulatedImpulse returns this step's total impulse magnitude across
// every equation in the joint (sum of |multiplier| * h), used to check
// MaxImpulse for breakable joints.
func (c *Constraint) AccumulatedImpulse(h float32) float32 {

	var total float32
	for _, eq := range c.equations {
		total += math32.Abs(eq.Multiplier()) * h
	}
	return total
}

// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/ferrox-engine/ferrox/math32"
)

// LinearMotor is a linear motor constraint equation, the translational
// counterpart of RotationalMotor: tries to keep the relative linear
// velocity of the bodies along a shared world axis at a given value.
// Used by the Prismatic joint's DynamicMotor sidecar to drive the
// slider's free axis.
type LinearMotor struct {
	Equation
	axis        *math32.Vector3 // World-oriented slide axis, shared by both bodies.
	targetSpeed float32
}

// NewLinearMotor creates and returns a pointer to a new LinearMotor
// equation object.
func NewLinearMotor(bodyA, bodyB IBody, maxForce float32) *LinearMotor {

	le := new(LinearMotor)
	le.axis = math32.NewVector3(1, 0, 0)
	le.Equation.initialize(bodyA, bodyB, -maxForce, maxForce)

	return le
}

// SetAxis sets the world-space slide axis the motor drives along.
func (le *LinearMotor) SetAxis(axis *math32.Vector3) {

	le.axis = axis
}

// Axis returns the world-space slide axis.
func (le *LinearMotor) Axis() math32.Vector3 {

	return *le.axis
}

// SetTargetSpeed sets the target relative linear speed along the axis.
func (le *LinearMotor) SetTargetSpeed(speed float32) {

	le.targetSpeed = speed
}

// TargetSpeed returns the target relative linear speed.
func (le *LinearMotor) TargetSpeed() float32 {

	return le.targetSpeed
}

// ComputeB computes the right-hand side of the SPOOK equation.
func (le *LinearMotor) ComputeB(h float32) float32 {

	// g = 0
	// gdot = axis * vj - axis * vi
	// G = [-axis 0 axis 0]
	le.jeA.SetSpatial(le.axis.Clone().Negate())
	le.jeB.SetSpatial(le.axis.Clone())

	GW := le.ComputeGW() - le.targetSpeed
	GiMf := le.ComputeGiMf()

	return -GW*le.b - h*GiMf
}

// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/ferrox-engine/ferrox/math32"
	"github.com/ferrox-engine/ferrox/physics/equation"
)

// Prismatic constraint, sometimes called a slider. Fixes all three
// relative rotational degrees of freedom between the bodies and all but
// one linear degree of freedom, leaving the bodies free to translate
// along a shared axis like a piston.
type Prismatic struct {
	Constraint
	pivotA *math32.Vector3 // Pivot, defined locally in bodyA.
	pivotB *math32.Vector3 // Pivot, defined locally in bodyB.
	axisA  *math32.Vector3 // Slide axis, defined locally in bodyA.
	axisB  *math32.Vector3 // Slide axis, defined locally in bodyB.

	// latEq1/latEq2 lock lateral translation (the two axes perpendicular
	// to the slide axis); the slide axis itself is left unconstrained.
	latEq1 *equation.Contact
	latEq2 *equation.Contact

	// rotEq1-3 lock all relative rotation, same construction as Lock.
	rotEq1 *equation.Rotational
	rotEq2 *equation.Rotational
	rotEq3 *equation.Rotational

	motorEq *equation.LinearMotor // Drives translation along the slide axis (see SetMotorEnabled).

	xA, yA, zA *math32.Vector3
	xB, yB, zB *math32.Vector3
}

// NewPrismatic creates and returns a pointer to a new Prismatic constraint
// object sliding along axisA/axisB (each defined in its own body's local
// frame; both should point the same direction in world space at rest).
func NewPrismatic(bodyA, bodyB IBody, pivotA, pivotB, axisA, axisB *math32.Vector3, maxForce float32) *Prismatic {

	pc := new(Prismatic)
	pc.Constraint.initialize(bodyA, bodyB, true, true)

	pc.pivotA = pivotA
	pc.pivotB = pivotB
	pc.axisA = axisA.Clone().Normalize()
	pc.axisB = axisB.Clone().Normalize()

	pc.latEq1 = equation.NewContact(bodyA, bodyB, -maxForce, maxForce)
	pc.latEq2 = equation.NewContact(bodyA, bodyB, -maxForce, maxForce)
	pc.AddEquation(&pc.latEq1.Equation)
	pc.AddEquation(&pc.latEq2.Equation)

	pc.rotEq1 = equation.NewRotational(bodyA, bodyB, maxForce)
	pc.rotEq2 = equation.NewRotational(bodyA, bodyB, maxForce)
	pc.rotEq3 = equation.NewRotational(bodyA, bodyB, maxForce)
	pc.AddEquation(pc.rotEq1)
	pc.AddEquation(pc.rotEq2)
	pc.AddEquation(pc.rotEq3)

	UnitX := math32.NewVector3(1, 0, 0)
	UnitY := math32.NewVector3(0, 1, 0)
	UnitZ := math32.NewVector3(0, 0, 1)

	xLocalA := bodyA.VectorToLocal(UnitX)
	xLocalB := bodyB.VectorToLocal(UnitX)
	yLocalA := bodyA.VectorToLocal(UnitY)
	yLocalB := bodyB.VectorToLocal(UnitY)
	zLocalA := bodyA.VectorToLocal(UnitZ)
	zLocalB := bodyB.VectorToLocal(UnitZ)

	pc.xA, pc.xB = &xLocalA, &xLocalB
	pc.yA, pc.yB = &yLocalA, &yLocalB
	pc.zA, pc.zB = &zLocalA, &zLocalB

	pc.motorEq = equation.NewLinearMotor(bodyA, bodyB, maxForce)
	pc.motorEq.SetEnabled(false)
	pc.AddEquation(pc.motorEq)

	return pc
}

// SetMotorEnabled enables/disables the axial motor (DynamicMotor, see
// motor.go) driving translation along the slide axis.
func (pc *Prismatic) SetMotorEnabled(state bool) {

	pc.motorEq.SetEnabled(state)
}

// SetMotorSpeed sets the target axial translation speed, in units/sec.
func (pc *Prismatic) SetMotorSpeed(speed float32) {

	pc.motorEq.SetTargetSpeed(speed)
}

// SetMotorMaxForce sets the symmetric max force the motor may apply.
func (pc *Prismatic) SetMotorMaxForce(maxForce float32) {

	pc.motorEq.SetMaxForce(maxForce)
	pc.motorEq.SetMinForce(-maxForce)
}

// Update updates the equations with data.
func (pc *Prismatic) Update() {

	quatA := pc.bodyA.Quaternion()
	quatB := pc.bodyB.Quaternion()

	worldAxisA := pc.axisA.Clone().ApplyQuaternion(quatA)

	rA := pc.pivotA.Clone().ApplyQuaternion(quatA)
	rB := pc.pivotB.Clone().ApplyQuaternion(quatB)

	t1, t2 := worldAxisA.RandomTangents()

	pc.latEq1.SetNormal(t1)
	pc.latEq1.SetRA(rA)
	pc.latEq1.SetRB(rB)

	pc.latEq2.SetNormal(t2)
	pc.latEq2.SetRA(rA.Clone())
	pc.latEq2.SetRB(rB.Clone())

	xAw := pc.bodyA.VectorToWorld(pc.xA)
	yBw := pc.bodyB.VectorToWorld(pc.yB)

	yAw := pc.bodyA.VectorToWorld(pc.yA)
	zBw := pc.bodyB.VectorToWorld(pc.zB)

	zAw := pc.bodyA.VectorToWorld(pc.zA)
	xBw := pc.bodyB.VectorToWorld(pc.xB)

	pc.rotEq1.SetAxisA(&xAw)
	pc.rotEq1.SetAxisB(&yBw)

	pc.rotEq2.SetAxisA(&yAw)
	pc.rotEq2.SetAxisB(&zBw)

	pc.rotEq3.SetAxisA(&zAw)
	pc.rotEq3.SetAxisB(&xBw)

	if pc.motorEq.Enabled() {
		pc.motorEq.SetAxis(worldAxisA)
	}
}

// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/ferrox-engine/ferrox/physics/equation"
	"github.com/ferrox-engine/ferrox/math32"
)

// Hinge constraint.
// Think of it as a door hinge.
// It tries to keep the door in the correct place and with the correct orientation.
type Hinge struct {
	PointToPoint
	axisA   *math32.Vector3           // Rotation axis, defined locally in bodyA.
	axisB   *math32.Vector3           // Rotation axis, defined locally in bodyB.
	rotEq1  *equation.Rotational
	rotEq2  *equation.Rotational
	motorEq *equation.RotationalMotor

	// refAngleTangent/refAngleNormal are the same reference tangent vector
	// (perpendicular to the hinge axis, picked once at construction),
	// stored in bodyA's and bodyB's local frames respectively. Update()
	// rotates both back to world space with the bodies' current
	// orientations and measures the signed angle between them about the
	// hinge axis, giving a drift-free twist angle for limit/spring to
	// track (the technique used by Bullet's btHingeConstraint.getHingeAngle).
	refAngleTangent *math32.Vector3
	refAngleNormal  *math32.Vector3
	angle           float32

	limit  *JointLimit
	spring *JointSpring
}

// NewHinge creates and returns a pointer to a new Hinge constraint object.
func NewHinge(bodyA, bodyB IBody, pivotA, pivotB, axisA, axisB *math32.Vector3, maxForce float32) *Hinge {

	hc := new(Hinge)

	hc.initialize(bodyA, bodyB, pivotA, pivotB, maxForce)

	hc.axisA = axisA
	hc.axisB = axisB
	hc.axisA.Normalize()
	hc.axisB.Normalize()

	hc.rotEq1 = equation.NewRotational(bodyA, bodyB, maxForce)
	hc.rotEq2 = equation.NewRotational(bodyA, bodyB, maxForce)
	hc.motorEq = equation.NewRotationalMotor(bodyA, bodyB, maxForce)
	hc.motorEq.SetEnabled(false) // Not enabled by default

	hc.AddEquation(hc.rotEq1)
	hc.AddEquation(hc.rotEq2)
	hc.AddEquation(hc.motorEq)

	worldAxisA := hc.axisA.Clone().ApplyQuaternion(bodyA.Quaternion())
	tangent, _ := worldAxisA.RandomTangents()
	tangentA := bodyA.VectorToLocal(tangent)
	tangentB := bodyB.VectorToLocal(tangent)
	hc.refAngleTangent = &tangentA
	hc.refAngleNormal = &tangentB

	return hc
}

func (hc *Hinge) SetMotorEnabled(state bool) {

	hc.motorEq.SetEnabled(state)
}

func (hc *Hinge) SetMotorSpeed(speed float32) {

	hc.motorEq.SetTargetSpeed(speed)
}

func (hc *Hinge) SetMotorMaxForce(maxForce float32) {

	hc.motorEq.SetMaxForce(maxForce)
	hc.motorEq.SetMinForce(-maxForce)
}

// Update updates the equations with data.
func (hc *Hinge) Update() {

	hc.PointToPoint.Update()

	// Get world axes
	quatA := hc.bodyA.Quaternion()
	quatB := hc.bodyB.Quaternion()

	worldAxisA := hc.axisA.Clone().ApplyQuaternion(quatA)
	worldAxisB := hc.axisB.Clone().ApplyQuaternion(quatB)

	t1, t2 := worldAxisA.RandomTangents()
	hc.rotEq1.SetAxisA(t1)
	hc.rotEq2.SetAxisA(t2)
	hc.rotEq1.SetAxisB(worldAxisB)
	hc.rotEq2.SetAxisB(worldAxisB)

	if hc.motorEq.Enabled() {
		hc.motorEq.SetAxisA(hc.axisA.Clone().ApplyQuaternion(quatA))
		hc.motorEq.SetAxisB(hc.axisB.Clone().ApplyQuaternion(quatB))
	}

	tA := hc.refAngleTangent.Clone().ApplyQuaternion(quatA)
	tB := hc.refAngleNormal.Clone().ApplyQuaternion(quatB)
	cross := tA.Clone().Cross(tB)
	hc.angle = math32.Atan2(cross.Dot(worldAxisA), tA.Dot(tB))

	if hc.limit != nil {
		hc.limit.SetRotationalAxis(worldAxisA)
		hc.limit.SetCurrent(hc.angle)
	}
	if hc.spring != nil {
		hc.spring.SetRotationalAxis(worldAxisA)
		hc.spring.SetCurrent(hc.angle)
	}
}

// SetLimit bounds the hinge's twist angle to [lower, upper] (radians),
// creating the JointLimit atom on first call.
func (hc *Hinge) SetLimit(lower, upper, maxForce float32) {

	if hc.limit == nil {
		hc.limit = NewJointLimit(hc.bodyA, hc.bodyB, lower, upper, maxForce)
		hc.AddEquation(hc.limit.Equation())
		return
	}
	hc.limit.SetBounds(lower, upper)
}

// SetSpring pulls the hinge's twist angle toward target with the given
// frequency (Hz) and damping ratio (1 = critically damped), creating the
// JointSpring atom on first call.
func (hc *Hinge) SetSpring(target, frequency, dampingRatio, maxForce float32) {

	if hc.spring == nil {
		hc.spring = NewJointSpring(hc.bodyA, hc.bodyB, target, frequency, dampingRatio, maxForce)
		hc.AddEquation(hc.spring.Equation())
		return
	}
	hc.spring.SetTarget(target)
	hc.spring.SetFrequency(frequency, dampingRatio)
}

// Angle returns the hinge's current twist angle, in radians.
func (hc *Hinge) Angle() float32 {

	return hc.angle
}

// Limits implements constraint.LimitBearing.
func (hc *Hinge) Limits() []*JointLimit {

	if hc.limit == nil {
		return nil
	}
	return []*JointLimit{hc.limit}
}

// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/ferrox-engine/ferrox/math32"
	"github.com/ferrox-engine/ferrox/physics/equation"
)

// Universal constraint, like a U-joint (cardan joint): shares a pivot
// point and keeps axisA (fixed in body A) and axisB (fixed in body B)
// perpendicular to each other, leaving two rotational degrees of freedom
// free (rotation of each body about its own axis) and locking only the
// twist that would bring the two axes out of perpendicular alignment.
type Universal struct {
	PointToPoint
	axisA *math32.Vector3
	axisB *math32.Vector3
	rotEq *equation.Rotational
}

// NewUniversal creates and returns a pointer to a new Universal
// constraint object.
func NewUniversal(bodyA, bodyB IBody, pivotA, pivotB, axisA, axisB *math32.Vector3, maxForce float32) *Universal {

	uc := new(Universal)
	uc.initialize(bodyA, bodyB, pivotA, pivotB, maxForce)

	uc.axisA = axisA.Clone().Normalize()
	uc.axisB = axisB.Clone().Normalize()

	// NewRotational's default maxAngle is already Pi/2 (perpendicular),
	// which is exactly the constraint a universal joint needs.
	uc.rotEq = equation.NewRotational(bodyA, bodyB, maxForce)
	uc.AddEquation(uc.rotEq)

	return uc
}

// Update updates the equations with data.
func (uc *Universal) Update() {

	uc.PointToPoint.Update()

	worldAxisA := uc.axisA.Clone().ApplyQuaternion(uc.bodyA.Quaternion())
	worldAxisB := uc.axisB.Clone().ApplyQuaternion(uc.bodyB.Quaternion())

	uc.rotEq.SetAxisA(worldAxisA)
	uc.rotEq.SetAxisB(worldAxisB)
}

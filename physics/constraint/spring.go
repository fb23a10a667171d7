// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/ferrox-engine/ferrox/math32"
	"github.com/ferrox-engine/ferrox/physics/equation"
)

// JointSpring is an atom (spec §4.4 step 5): a soft row, sidecar to a
// joint's rigid rows, pulling one generalized coordinate toward a target
// value with a given frequency/damping instead of enforcing it exactly.
type JointSpring struct {
	eq *equation.Spring
}

// NewJointSpring creates and returns a pointer to a new JointSpring atom
// pulling the tracked coordinate toward target.
func NewJointSpring(bodyA, bodyB IBody, target, frequency, dampingRatio, maxForce float32) *JointSpring {

	return &JointSpring{eq: equation.NewSpring(bodyA, bodyB, target, frequency, dampingRatio, maxForce)}
}

// Equation returns the molecule this atom produces for the solver.
func (js *JointSpring) Equation() equation.IEquation { return js.eq }

// SetSpatialAxis sets the world-space linear axis the spring pulls along.
func (js *JointSpring) SetSpatialAxis(axis *math32.Vector3) { js.eq.SetSpatialAxis(axis) }

// SetRotationalAxis sets the world-space axis the spring twists about.
func (js *JointSpring) SetRotationalAxis(axis *math32.Vector3) { js.eq.SetRotationalAxis(axis) }

// SetCurrent records this step's coordinate value.
func (js *JointSpring) SetCurrent(value float32) { js.eq.SetCurrent(value) }

// SetTarget sets the rest value the spring pulls the coordinate toward.
func (js *JointSpring) SetTarget(value float32) { js.eq.SetTarget(value) }

// SetFrequency sets the spring's natural frequency (Hz) and damping
// ratio (1 = critically damped).
func (js *JointSpring) SetFrequency(frequency, dampingRatio float32) {
	js.eq.SetFrequency(frequency, dampingRatio)
}

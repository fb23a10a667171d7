// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/ferrox-engine/ferrox/math32"
	"github.com/ferrox-engine/ferrox/physics/equation"
)

// JointLimit is an atom (spec §4.4): the serializable min/max bound for
// one generalized coordinate of a joint. A joint attaches one with
// AddEquation(limit.Equation()) alongside its own bilateral rows, and
// calls SetCurrent (and SetSpatialAxis/SetRotationalAxis, if the axis
// changes) from its own Update() every step.
type JointLimit struct {
	eq       *equation.Limit
	wasLower bool
	wasUpper bool
}

// NewJointLimit creates and returns a pointer to a new JointLimit atom
// bounding the tracked coordinate to [lower, upper].
func NewJointLimit(bodyA, bodyB IBody, lower, upper, maxForce float32) *JointLimit {

	return &JointLimit{eq: equation.NewLimit(bodyA, bodyB, lower, upper, maxForce)}
}

// Equation returns the molecule this atom produces for the solver.
func (jl *JointLimit) Equation() equation.IEquation { return jl.eq }

// SetSpatialAxis sets the world-space linear axis the bound applies to.
func (jl *JointLimit) SetSpatialAxis(axis *math32.Vector3) { jl.eq.SetSpatialAxis(axis) }

// SetRotationalAxis sets the world-space axis the bound applies to.
func (jl *JointLimit) SetRotationalAxis(axis *math32.Vector3) { jl.eq.SetRotationalAxis(axis) }

// SetCurrent records this step's coordinate value.
func (jl *JointLimit) SetCurrent(value float32) { jl.eq.SetCurrent(value) }

// Current returns the most recently recorded coordinate value.
func (jl *JointLimit) Current() float32 { return jl.eq.Current() }

// SetBounds sets the [lower, upper] range.
func (jl *JointLimit) SetBounds(lower, upper float32) { jl.eq.SetBounds(lower, upper) }

// CheckReached reports, for this step's recorded Current(), whether the
// joint has just transitioned into violating the lower or upper bound
// (edge-triggered: a joint resting against its limit reports once, not
// every step), for dispatching JointLowerLimitReached/
// JointUpperLimitReached (spec §6).
func (jl *JointLimit) CheckReached() (lowerReached, upperReached bool) {

	atLower := jl.eq.Current() < jl.eq.Lower()
	atUpper := jl.eq.Current() > jl.eq.Upper()
	lowerReached = atLower && !jl.wasLower
	upperReached = atUpper && !jl.wasUpper
	jl.wasLower = atLower
	jl.wasUpper = atUpper
	return
}

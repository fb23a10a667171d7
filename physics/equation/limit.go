// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/ferrox-engine/ferrox/math32"
)

// Limit is a molecule (transient per-step Jacobian row) enforcing
// Lower <= q <= Upper on one generalized coordinate of a joint, via an
// asymmetric min/max impulse clamp that only activates once q leaves the
// range: the constraint's JointLimit atom (see physics/constraint) holds
// the serializable Lower/Upper/MaxForce state across steps, and calls
// SetCurrent/SetSpatialAxis/SetRotationalAxis each step to reconstruct
// this row from it, since how q and its Jacobian are measured differs
// per joint (Prismatic slide distance vs. Hinge twist angle).
type Limit struct {
	Equation
	rotational bool
	axis       *math32.Vector3
	current    float32
	lower      float32
	upper      float32
	maxForce   float32
}

// NewLimit creates and returns a pointer to a new Limit equation,
// disabled until the first ComputeB call finds Current() out of range.
func NewLimit(bodyA, bodyB IBody, lower, upper, maxForce float32) *Limit {

	l := new(Limit)
	l.axis = math32.NewVector3(1, 0, 0)
	l.lower = lower
	l.upper = upper
	l.maxForce = maxForce
	l.Equation.initialize(bodyA, bodyB, 0, 0)
	l.Equation.SetEnabled(false)

	return l
}

// SetSpatialAxis sets the world-space linear axis this limit measures
// translation along (e.g. Prismatic's slide axis).
func (l *Limit) SetSpatialAxis(axis *math32.Vector3) {

	l.rotational = false
	l.axis = axis
}

// SetRotationalAxis sets the world-space axis this limit measures
// rotation about (e.g. Hinge's hinge axis).
func (l *Limit) SetRotationalAxis(axis *math32.Vector3) {

	l.rotational = true
	l.axis = axis
}

// SetCurrent records this step's generalized-coordinate value.
func (l *Limit) SetCurrent(value float32) {

	l.current = value
}

// Current returns the most recently recorded coordinate value.
func (l *Limit) Current() float32 { return l.current }

// SetBounds sets the [lower, upper] range the coordinate is kept within.
func (l *Limit) SetBounds(lower, upper float32) {

	l.lower = lower
	l.upper = upper
}

// Lower returns the lower bound.
func (l *Limit) Lower() float32 { return l.lower }

// Upper returns the upper bound.
func (l *Limit) Upper() float32 { return l.upper }

// ComputeB activates the row, with asymmetric impulse bounds pushing
// only back toward the violated bound, when Current() is outside
// [Lower, Upper]; otherwise it disables the row so the solver skips it.
func (l *Limit) ComputeB(h float32) float32 {

	if l.rotational {
		l.jeA.SetRotational(l.axis.Clone().Negate())
		l.jeB.SetRotational(l.axis.Clone())
	} else {
		l.jeA.SetSpatial(l.axis.Clone().Negate())
		l.jeB.SetSpatial(l.axis.Clone())
	}

	var violation float32
	switch {
	case l.current < l.lower:
		violation = l.current - l.lower
		l.SetMinForce(0)
		l.SetMaxForce(l.maxForce)
		l.SetEnabled(true)
	case l.current > l.upper:
		violation = l.current - l.upper
		l.SetMinForce(-l.maxForce)
		l.SetMaxForce(0)
		l.SetEnabled(true)
	default:
		l.SetEnabled(false)
		return 0
	}

	GW := l.ComputeGW()
	GiMf := l.ComputeGiMf()
	return -violation*l.a - GW*l.b - h*GiMf
}

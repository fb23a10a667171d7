// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/ferrox-engine/ferrox/math32"
)

// Spring is a molecule implementing a soft constraint (spec §4.4 step
// 5): rather than a bilateral row enforcing Current() == Target()
// exactly, its SPOOK stiffness/relaxation are re-derived every step from
// a spring frequency and damping ratio via SetSpookParams, the
// implicit-spring-to-CFM/ERP mapping the SPOOK formulation already
// provides. The owning JointSpring atom (see physics/constraint) holds
// the serializable frequency/damping/target state and calls
// SetCurrent/SetTarget/SetSpatialAxis/SetRotationalAxis each step.
type Spring struct {
	Equation
	rotational   bool
	axis         *math32.Vector3
	current      float32
	target       float32
	frequency    float32
	dampingRatio float32
}

// NewSpring creates and returns a pointer to a new Spring equation
// pulling the tracked coordinate toward target.
func NewSpring(bodyA, bodyB IBody, target, frequency, dampingRatio, maxForce float32) *Spring {

	s := new(Spring)
	s.axis = math32.NewVector3(1, 0, 0)
	s.target = target
	s.frequency = frequency
	s.dampingRatio = dampingRatio
	s.Equation.initialize(bodyA, bodyB, -maxForce, maxForce)

	return s
}

// SetSpatialAxis sets the world-space linear axis this spring pulls
// along.
func (s *Spring) SetSpatialAxis(axis *math32.Vector3) {

	s.rotational = false
	s.axis = axis
}

// SetRotationalAxis sets the world-space axis this spring twists about.
func (s *Spring) SetRotationalAxis(axis *math32.Vector3) {

	s.rotational = true
	s.axis = axis
}

// SetCurrent records this step's generalized-coordinate value.
func (s *Spring) SetCurrent(value float32) { s.current = value }

// SetTarget sets the rest value the spring pulls the coordinate toward.
func (s *Spring) SetTarget(target float32) { s.target = target }

// SetFrequency sets the spring's natural frequency (Hz) and damping
// ratio (1 = critically damped).
func (s *Spring) SetFrequency(frequency, dampingRatio float32) {

	s.frequency = frequency
	s.dampingRatio = dampingRatio
}

// ComputeB re-derives the row's SPOOK parameters from the spring's
// frequency/damping for this step's h, then computes the biased RHS
// pulling Current() toward Target().
func (s *Spring) ComputeB(h float32) float32 {

	if s.rotational {
		s.jeA.SetRotational(s.axis.Clone().Negate())
		s.jeB.SetRotational(s.axis.Clone())
	} else {
		s.jeA.SetSpatial(s.axis.Clone().Negate())
		s.jeB.SetSpatial(s.axis.Clone())
	}

	frequency := s.frequency
	if frequency <= 0 {
		frequency = 1 // degenerate: fall back to 1 Hz (a very soft row) rather than dividing by zero.
	}
	s.SetSpookParams(frequency*frequency, s.dampingRatio, h)

	violation := s.current - s.target
	GW := s.ComputeGW()
	GiMf := s.ComputeGiMf()
	return -violation*s.a - GW*s.b - h*GiMf
}

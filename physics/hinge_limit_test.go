// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ferrox-engine/ferrox/core"
	"github.com/ferrox-engine/ferrox/math32"
	"github.com/ferrox-engine/ferrox/physics/constraint"
)

func TestHingeAngleTracksTwistAboutAxis(t *testing.T) {

	sim := NewSimulation(core.NewNode())
	bodyA := newTestBody(sim, *math32.NewVector3(-1, 0, 0))
	bodyB := newTestBody(sim, *math32.NewVector3(1, 0, 0))
	sim.CommitChanges()

	axis := math32.NewVector3(0, 0, 1)
	hinge := constraint.NewHinge(bodyA, bodyB, math32.NewVector3(1, 0, 0), math32.NewVector3(-1, 0, 0), axis, axis.Clone(), 1e6)
	hinge.Update()
	assert.InDelta(t, 0, hinge.Angle(), 1e-3, "freshly created hinge must read zero twist")

	bodyB.SetTransform(math32.NewVector3(1, 0, 0), math32.NewQuaternion(0, 0, 0, 1).SetFromAxisAngle(math32.NewVector3(0, 0, 1), math32.Pi/2))
	sim.CommitChanges()
	hinge.Update()
	assert.InDelta(t, math32.Pi/2, hinge.Angle(), 1e-2, "rotating bodyB 90deg about the hinge axis must read as a 90deg twist")
}

func TestHingeLimitReachedFiresOnTransitionOnly(t *testing.T) {

	sim := NewSimulation(core.NewNode())
	bodyA := newTestBody(sim, *math32.NewVector3(-1, 0, 0))
	bodyB := newTestBody(sim, *math32.NewVector3(1, 0, 0))
	sim.CommitChanges()

	axis := math32.NewVector3(0, 0, 1)
	hinge := constraint.NewHinge(bodyA, bodyB, math32.NewVector3(1, 0, 0), math32.NewVector3(-1, 0, 0), axis, axis.Clone(), 1e6)
	hinge.SetLimit(-0.1, 0.1, 1e6)
	hinge.Update()

	limits := hinge.Limits()
	assert.Len(t, limits, 1)

	bodyB.SetTransform(math32.NewVector3(1, 0, 0), math32.NewQuaternion(0, 0, 0, 1).SetFromAxisAngle(math32.NewVector3(0, 0, 1), math32.Pi/2))
	sim.CommitChanges()
	hinge.Update()

	_, upperReached := limits[0].CheckReached()
	assert.True(t, upperReached, "twisting past the upper bound must report a reached transition")

	_, reachedAgain := limits[0].CheckReached()
	assert.False(t, reachedAgain, "CheckReached must not re-fire every step the joint rests against its limit")
}

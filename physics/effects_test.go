// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ferrox-engine/ferrox/core"
	"github.com/ferrox-engine/ferrox/math32"
)

func TestEffectAppliesToSpaceScopeRespectsIgnoreMask(t *testing.T) {

	sim := NewSimulation(core.NewNode())
	body := newTestBody(sim, *math32.NewVector3(0, 0, 0))
	sim.CommitChanges()

	ge := NewGravityEffect(math32.NewVector3(0, -1, 0), 9.8)
	assert.True(t, effectAppliesTo(ge, body), "space-scoped effect must apply by default")

	body.SetIgnoreSpaceEffects(uint32(EffectGravity))
	assert.False(t, effectAppliesTo(ge, body), "body ignoring EffectGravity must be skipped")
}

func TestEffectAppliesToBodyScopeOnlyTargets(t *testing.T) {

	sim := NewSimulation(core.NewNode())
	targeted := newTestBody(sim, *math32.NewVector3(0, 0, 0))
	other := newTestBody(sim, *math32.NewVector3(5, 0, 0))
	sim.CommitChanges()

	fe := NewForceEffect(math32.NewVector3(1, 0, 0), 10)
	fe.SetBodyScope(targeted)

	assert.True(t, effectAppliesTo(fe, targeted))
	assert.False(t, effectAppliesTo(fe, other))
}

func TestEffectAppliesToRegionScopeChecksBoundingBoxOverlap(t *testing.T) {

	sim := NewSimulation(core.NewNode())
	inside := newTestBody(sim, *math32.NewVector3(0, 0, 0))
	outside := newTestBody(sim, *math32.NewVector3(100, 0, 0))
	sim.CommitChanges()

	we := NewWindEffect(math32.NewVector3(1, 0, 0), 5, 0.1)
	we.SetRegionScope(math32.Box3{
		Min: *math32.NewVector3(-2, -2, -2),
		Max: *math32.NewVector3(2, 2, 2),
	})

	assert.True(t, effectAppliesTo(we, inside))
	assert.False(t, effectAppliesTo(we, outside))
}

func TestGravityEffectAppliesMassIndependentAcceleration(t *testing.T) {

	sim := NewSimulation(core.NewNode())
	body := newTestBody(sim, *math32.NewVector3(0, 0, 0))
	sim.CommitChanges()

	ge := NewGravityEffect(math32.NewVector3(0, -1, 0), 9.8)
	ge.PreCalculate(1.0 / 60)
	ge.ApplyToBody(body, 1.0/60)

	f := body.Force()
	assert.InDelta(t, -9.8*body.Mass(), f.Y, 1e-3, "gravity force must scale with mass (mass-independent acceleration)")
}

func TestDragEffectOpposesVelocity(t *testing.T) {

	sim := NewSimulation(core.NewNode())
	body := newTestBody(sim, *math32.NewVector3(0, 0, 0))
	sim.CommitChanges()
	body.SetVelocity(math32.NewVector3(5, 0, 0))

	de := NewDragEffect()
	de.SetLinearDrag(1)
	de.ApplyToBody(body, 1.0/60)

	f := body.Force()
	assert.Less(t, f.X, float32(0), "linear drag must push back against the body's velocity")
}

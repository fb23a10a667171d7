// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrox-engine/ferrox/core"
	"github.com/ferrox-engine/ferrox/math32"
	"github.com/ferrox-engine/ferrox/physics/constraint"
	"github.com/ferrox-engine/ferrox/physics/material"
	"github.com/ferrox-engine/ferrox/physics/resource"
	"github.com/ferrox-engine/ferrox/physics/shape"
)

func newTestBody(sim *Simulation, pos math32.Vector3) *Body {

	mat := material.NewMaterial("test")
	b := NewBody(shape.NewSphere(0.5), mat)
	b.SetTransform(&pos, math32.NewQuaternion(0, 0, 0, 1))
	sim.AddBody(b, "")
	return b
}

func TestPointToPointUsesEachBodysOwnPivot(t *testing.T) {

	sim := NewSimulation(core.NewNode())
	bodyA := newTestBody(sim, *math32.NewVector3(-1, 0, 0))
	bodyB := newTestBody(sim, *math32.NewVector3(1, 0, 0))
	sim.CommitChanges()

	pivotA := math32.NewVector3(1, 0, 0)
	pivotB := math32.NewVector3(-1, 0, 0)
	ptp := constraint.NewPointToPoint(bodyA, bodyB, pivotA, pivotB, 1e6)
	ptp.Update()

	// Bodies sit 2 units apart with pivots pointing at each other; both
	// pivots resolve to the same world point (the midpoint), so rA and rB
	// must differ (rA from bodyA's center, rB from bodyB's center).
	assert.NotEqual(t, ptp.PivotAWorld(), ptp.PivotBWorld(), "rA and rB must be computed from each body's own pivot/quaternion")
}

func TestUniversalKeepsAxesPerpendicular(t *testing.T) {

	sim := NewSimulation(core.NewNode())
	bodyA := newTestBody(sim, *math32.NewVector3(0, 0, 0))
	bodyB := newTestBody(sim, *math32.NewVector3(0, 0, 0))
	sim.CommitChanges()

	axisA := math32.NewVector3(1, 0, 0)
	axisB := math32.NewVector3(0, 1, 0)
	uc := constraint.NewUniversal(bodyA, bodyB, math32.NewVector3(0, 0, 0), math32.NewVector3(0, 0, 0), axisA, axisB, 1e6)
	uc.Update()

	eqs := uc.Equations()
	require.Len(t, eqs, 4, "3 point-to-point rows + 1 perpendicularity row")
}

func TestPrismaticDynamicMotorStepsDriverAndUnregisters(t *testing.T) {

	sim := NewSimulation(core.NewNode())
	bodyA := newTestBody(sim, *math32.NewVector3(0, 0, 0))
	bodyB := newTestBody(sim, *math32.NewVector3(1, 0, 0))
	sim.CommitChanges()

	axis := math32.NewVector3(1, 0, 0)
	pc := constraint.NewPrismatic(bodyA, bodyB, math32.NewVector3(0, 0, 0), math32.NewVector3(0, 0, 0), axis, axis, 1e6)

	var lastDt float32
	steps := 0
	driver := func(dt float32) float32 {
		lastDt = dt
		steps++
		return 2.5
	}
	dm := constraint.NewDynamicMotor(pc, driver)
	sim.AddConstraint(pc)
	sim.AddDynamicMotor(dm)

	dm.Step(1.0 / 60)
	pc.Update()

	assert.Equal(t, 1, steps)
	assert.Equal(t, float32(1.0/60), lastDt)

	removed := sim.RemoveDynamicMotor(dm)
	assert.True(t, removed)
	removedAgain := sim.RemoveDynamicMotor(dm)
	assert.False(t, removedAgain)
}

func TestCustomCollisionEventTrackerUsesDedicatedChannel(t *testing.T) {

	sim := NewSimulation(core.NewNode())
	bodyA := newTestBody(sim, *math32.NewVector3(0, 0, 0))
	bodyB := newTestBody(sim, *math32.NewVector3(1, 0, 0))
	sim.CommitChanges()

	table := resource.NewCollisionTable("default")
	groupA, _ := table.AddGroup("A")
	groupB, _ := table.AddGroup("B")
	table.SetFilter(groupA, groupB, resource.FilterEntry{
		Action:                      resource.Resolve,
		CustomCollisionEventTracker: true,
		EventNameOverride:           "custom:a-vs-b",
	})
	sim.SetCollisionTable(table)
	bodyA.SetCollisionGroup(groupA)
	bodyB.SetCollisionGroup(groupB)

	var gotDefault, gotCustom bool
	sim.Subscribe(CollisionStarted, func(name string, ev interface{}) { gotDefault = true })
	sim.Subscribe("custom:a-vs-b", func(name string, ev interface{}) { gotCustom = true })

	sim.manifoldCache.Started = append(sim.manifoldCache.Started, makePairKey(bodyA.Index(), bodyB.Index()))
	sim.emitContactEvents()

	assert.True(t, gotCustom, "a CustomCollisionEventTracker pair must dispatch on its dedicated channel")
	assert.False(t, gotDefault, "a CustomCollisionEventTracker pair must not also dispatch on the shared default channel")
}

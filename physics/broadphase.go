// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

// CollisionPair is a pair of bodies that may be colliding.
type CollisionPair struct {
	BodyA *Body
	BodyB *Body
}

// Broadphase tracks the set of bodies currently registered for collision
// queries, split into static and dynamic proxies the way spec §4.1
// describes: a single writer (CommitChanges, via InsertStatic/
// InsertDynamic/Remove) owns this registry; FindCollisionPairs only reads
// it.
type Broadphase struct {
	staticProxies  map[*Body]bool
	dynamicProxies map[*Body]bool
}

// NewBroadphase creates and returns a pointer to a new Broadphase.
func NewBroadphase() *Broadphase {

	b := new(Broadphase)
	b.staticProxies = make(map[*Body]bool)
	b.dynamicProxies = make(map[*Body]bool)
	return b
}

// InsertStatic registers a body as a static broadphase proxy, moving it
// out of the dynamic set if it was there.
func (b *Broadphase) InsertStatic(body *Body) {

	delete(b.dynamicProxies, body)
	b.staticProxies[body] = true
}

// InsertDynamic registers a body as a dynamic broadphase proxy, moving it
// out of the static set if it was there.
func (b *Broadphase) InsertDynamic(body *Body) {

	delete(b.staticProxies, body)
	b.dynamicProxies[body] = true
}

// Remove drops a body from both proxy sets.
func (b *Broadphase) Remove(body *Body) {

	delete(b.staticProxies, body)
	delete(b.dynamicProxies, body)
}

// Proxies returns every body currently registered with the broadphase
// (static and dynamic).
func (b *Broadphase) Proxies() []*Body {

	out := make([]*Body, 0, len(b.staticProxies)+len(b.dynamicProxies))
	for body := range b.staticProxies {
		out = append(out, body)
	}
	for body := range b.dynamicProxies {
		out = append(out, body)
	}
	return out
}

// FindCollisionPairs (naive implementation)
func (b *Broadphase) FindCollisionPairs(objects []*Body) []CollisionPair {

	pairs := make([]CollisionPair, 0)

	for iA, bodyA := range objects {
		for _, bodyB := range objects[iA+1:] {
			if b.NeedTest(bodyA, bodyB) {
				BBa := bodyA.BoundingBox()
				BBb := bodyB.BoundingBox()
				if BBa.IsIntersectionBox(&BBb) {
					pairs = append(pairs, CollisionPair{bodyA, bodyB})
				}
			}
		}
	}

	return pairs
}

func (b *Broadphase) NeedTest(bodyA, bodyB *Body) bool {

	if !bodyA.CollidableWith(bodyB) || (bodyA.Sleeping() && bodyB.Sleeping()) {
		return false
	}

	return true
}

// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "github.com/ferrox-engine/ferrox/math32"

// PendingAction bits mirror spec §4.1's three kinds of deferred mutation a
// physics node can queue: transform, mass, and broadphase. Operations on a
// body never touch broadphase/mass/transform state directly; they set
// bits here, and CommitChanges is the single writer that applies them in
// a fixed order (transform -> mass -> broadphase) so later passes always
// see coherent inputs from earlier ones.
type PendingAction uint8

const (
	PendingTransform PendingAction = 1 << iota
	PendingMass
	PendingBroadphaseInsertStatic
	PendingBroadphaseInsertDynamic
	PendingBroadphaseRemove
	PendingBroadphaseUpdate

	pendingBroadphaseInsertMask = PendingBroadphaseInsertStatic | PendingBroadphaseInsertDynamic
)

// MarkTransformDirty queues a deferred re-read of the body's world
// transform from its parent chain at the next CommitChanges.
func (b *Body) MarkTransformDirty() {

	b.pending |= PendingTransform
}

// MarkMassDirty queues a deferred recompute of center of mass and local/
// world inertia tensor at the next CommitChanges.
func (b *Body) MarkMassDirty() {

	b.pending |= PendingMass
}

// MarkBroadphaseInsert queues a deferred broadphase proxy insertion. The
// queue batches insert/remove/update kinds so a single frame's flurry of
// changes collapses to the minimal operation: a still-pending Remove is
// cancelled, since Insert-then-Remove nets to nothing.
func (b *Body) MarkBroadphaseInsert(dynamic bool) {

	b.pending &^= PendingBroadphaseRemove
	if dynamic {
		b.pending = (b.pending &^ PendingBroadphaseInsertStatic) | PendingBroadphaseInsertDynamic
	} else {
		b.pending = (b.pending &^ PendingBroadphaseInsertDynamic) | PendingBroadphaseInsertStatic
	}
}

// MarkBroadphaseRemove queues a deferred broadphase proxy removal. If an
// insert for this body is still pending (never yet committed), the pair
// cancels and nothing is queued at all.
func (b *Body) MarkBroadphaseRemove() {

	if b.pending&pendingBroadphaseInsertMask != 0 {
		b.pending &^= pendingBroadphaseInsertMask
		return
	}
	b.pending |= PendingBroadphaseRemove
}

// MarkBroadphaseUpdate queues a deferred AABB refresh in the broadphase,
// unless an insert or remove for this body already supersedes it.
func (b *Body) MarkBroadphaseUpdate() {

	if b.pending&(pendingBroadphaseInsertMask|PendingBroadphaseRemove) != 0 {
		return
	}
	b.pending |= PendingBroadphaseUpdate
}

// SetTransform queues a user-driven position/orientation change. The
// change is not visible to the solver until the next CommitChanges, per
// spec §5's mutation discipline: physics-dispatched event handlers may
// call this mid-step without corrupting the step in progress.
func (b *Body) SetTransform(pos *math32.Vector3, quat *math32.Quaternion) {

	b.GetNode().SetPositionVec(pos)
	b.GetNode().SetRotationQuat(quat)
	b.MarkTransformDirty()
}

// commitTransform re-reads the body's world position/orientation from its
// node (which mirrors the parent chain via core.Node's own transform
// cache) and clears the pending bit.
func (b *Body) commitTransform() {

	pos := b.GetNode().Position()
	quat := b.GetNode().Quaternion()
	b.position.Copy(&pos)
	b.quaternion.Copy(&quat)
	b.pending &^= PendingTransform
}

// commitMass recomputes inertia from the current shape/mass and clears
// the pending bit.
func (b *Body) commitMass() {

	b.UpdateMassProperties()
	b.pending &^= PendingMass
}

// CommitChanges flushes every body's deferred transform/mass/broadphase
// mutations in the fixed sub-pass order required by spec §4.1, repairing
// invariants before the rest of the step pipeline sees the world's state.
// Applying CommitChanges twice with no intervening mutation is a no-op
// the second time, since every pending bit is cleared as it is applied
// (spec §8 idempotence law).
func (s *Simulation) CommitChanges() {

	for _, b := range s.bodies {
		if b == nil || b.pending&PendingTransform == 0 {
			continue
		}
		b.commitTransform()
	}

	for _, b := range s.bodies {
		if b == nil || b.pending&PendingMass == 0 {
			continue
		}
		b.commitMass()
	}

	for _, b := range s.bodies {
		if b == nil {
			continue
		}
		s.commitBroadphase(b)
	}
}

// commitBroadphase applies whichever broadphase action is pending for b
// and clears the corresponding bits. The committer (this method) is the
// single writer of broadphase state; everything else only sets bits.
func (s *Simulation) commitBroadphase(b *Body) {

	switch {
	case b.pending&PendingBroadphaseInsertDynamic != 0:
		s.broadphase.InsertDynamic(b)
	case b.pending&PendingBroadphaseInsertStatic != 0:
		s.broadphase.InsertStatic(b)
	case b.pending&PendingBroadphaseRemove != 0:
		s.broadphase.Remove(b)
	case b.pending&PendingBroadphaseUpdate != 0:
		// Naive broadphase recomputes AABBs on every query; nothing
		// further to do beyond clearing the bit.
	default:
		return
	}
	b.pending &^= (pendingBroadphaseInsertMask | PendingBroadphaseRemove | PendingBroadphaseUpdate)
}

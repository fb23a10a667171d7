// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/ferrox-engine/ferrox/math32"
)

// Contact is a contact/non-penetration constraint equation: one row of a
// Manifold (spec §3 "Manifold" / §4.3 "Contact cache").
type Contact struct {
	Equation
	restitution float32         // "bounciness": u1 = -e*u0
	rA          *math32.Vector3 // World-oriented vector that goes from the center of bA to the contact point.
	rB          *math32.Vector3 // World-oriented vector that goes from the center of bB to the contact point.
	nA          *math32.Vector3 // Contact normal, pointing out of body A.

	// localA/localB are the contact point in each body's local frame,
	// used by the contact cache to match this point against the previous
	// step's manifold points by nearest body-space distance (spec §4.3).
	localA      math32.Vector3
	localB      math32.Vector3
	penetration float32

	// newContact/fromCache are point-matching bookkeeping: newContact
	// marks a point with no matched predecessor (fresh this step);
	// fromCache marks a point that inherited a predecessor's accumulated
	// impulse and was warm-started.
	newContact bool
	fromCache  bool
}

// NewContact creates and returns a pointer to a new Contact equation object.
func NewContact(bodyA, bodyB IBody, minForce, maxForce float32) *Contact {

	ce := new(Contact)

	// minForce default should be 0.

	ce.restitution = 0.5
	ce.rA = &math32.Vector3{}
	ce.rB = &math32.Vector3{}
	ce.nA = &math32.Vector3{}
	ce.newContact = true

	ce.Equation.initialize(bodyA, bodyB, minForce, maxForce)

	return ce
}

func (ce *Contact) SetRestitution(r float32) {

	ce.restitution = r
}

func (ce *Contact) Restitution() float32 {

	return ce.restitution
}

func (ce *Contact) SetNormal(newNormal *math32.Vector3) {

	ce.nA = newNormal
}

func (ce *Contact) Normal() math32.Vector3 {

	return *ce.nA
}

func (ce *Contact) SetRA(newRa *math32.Vector3) {

	ce.rA = newRa
}

func (ce *Contact) RA() math32.Vector3 {

	return *ce.rA
}

func (ce *Contact) SetRB(newRb *math32.Vector3) {

	ce.rB = newRb
}

func (ce *Contact) RB() math32.Vector3 {

	return *ce.rB
}

// SetLocalPoints records the contact point in each body's local frame;
// the contact cache uses these for point-matching across steps.
func (ce *Contact) SetLocalPoints(localA, localB math32.Vector3) {

	ce.localA = localA
	ce.localB = localB
}

// LocalA returns the contact point in body A's local frame.
func (ce *Contact) LocalA() math32.Vector3 {

	return ce.localA
}

// LocalB returns the contact point in body B's local frame.
func (ce *Contact) LocalB() math32.Vector3 {

	return ce.localB
}

// SetPenetration records the penetration depth at this contact point.
func (ce *Contact) SetPenetration(depth float32) {

	ce.penetration = depth
}

// Penetration returns the penetration depth at this contact point.
func (ce *Contact) Penetration() float32 {

	return ce.penetration
}

// SetFromCache marks whether this point inherited a matched predecessor's
// accumulated impulse (warm-started) this step.
func (ce *Contact) SetFromCache(v bool) {

	ce.fromCache = v
	ce.newContact = !v
}

// FromCache reports whether this point was warm-started from a matched
// predecessor this step.
func (ce *Contact) FromCache() bool {

	return ce.fromCache
}

// IsNewContact reports whether this point had no matched predecessor.
func (ce *Contact) IsNewContact() bool {

	return ce.newContact
}

// ComputeB computes the right-hand side of the SPOOK equation for this
// contact row, including the restitution term.
func (ce *Contact) ComputeB(h float32) float32 {

	vA := ce.bA.Velocity()
	wA := ce.bA.AngularVelocity()

	vB := ce.bB.Velocity()
	wB := ce.bB.AngularVelocity()

	// Calculate cross products
	rnA := math32.NewVec3().CrossVectors(ce.rA, ce.nA)
	rnB := math32.NewVec3().CrossVectors(ce.rB, ce.nA)

	// g = xj+rB -(xi+rA)
	// G = [ -nA  -rnA  nA  rnB ]
	ce.jeA.SetSpatial(ce.nA.Clone().Negate())
	ce.jeA.SetRotational(rnA.Clone().Negate())
	ce.jeB.SetSpatial(ce.nA.Clone())
	ce.jeB.SetRotational(rnB.Clone())

	// Calculate the penetration vector
	posA := ce.bA.Position()
	posB := ce.bB.Position()
	penetrationVec := ce.rB.Clone().Add(&posB).Sub(ce.rA).Sub(&posA)

	g := ce.nA.Dot(penetrationVec)

	// Compute iteration
	ePlusOne := ce.restitution + 1
	GW := ePlusOne*vB.Dot(ce.nA) - ePlusOne*vA.Dot(ce.nA) + wB.Dot(rnB) - wA.Dot(rnA)
	GiMf := ce.ComputeGiMf()

	return -g*ce.a - GW*ce.b - h*GiMf
}

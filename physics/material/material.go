// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material holds the friction/restitution data physics bodies
// are built from, independent of the rendering material of the same name.
package material

// Material describes the frictional and restitution properties of a body.
type Material struct {
	name        string
	friction    float32
	restitution float32
}

// NewMaterial creates and returns a pointer to a new Material with the specified name.
func NewMaterial(name string) *Material {

	m := new(Material)
	m.name = name
	m.friction = 0.3
	m.restitution = 0.3
	return m
}

// SetName sets the material name.
func (m *Material) SetName(name string) {

	m.name = name
}

// Name returns the material name.
func (m *Material) Name() string {

	return m.name
}

// SetFriction sets the friction coefficient.
func (m *Material) SetFriction(friction float32) {

	m.friction = friction
}

// Friction returns the friction coefficient.
func (m *Material) Friction() float32 {

	return m.friction
}

// SetRestitution sets the restitution (bounciness) coefficient.
func (m *Material) SetRestitution(restitution float32) {

	m.restitution = restitution
}

// Restitution returns the restitution (bounciness) coefficient.
func (m *Material) Restitution() float32 {

	return m.restitution
}

// ContactMaterial describes the combined friction/restitution and SPOOK
// equation parameters to use when two specific materials touch, overriding
// the simple average of the two materials' own properties.
type ContactMaterial struct {
	Mat1 *Material
	Mat2 *Material

	friction    float32
	restitution float32

	contactEquationStiffness  float32
	contactEquationRelaxation float32

	frictionEquationStiffness  float32
	frictionEquationRelaxation float32
}

// NewContactMaterial creates and returns a pointer to a new ContactMaterial
// between the two specified materials, seeded with default SPOOK parameters.
func NewContactMaterial(mat1, mat2 *Material) *ContactMaterial {

	cm := new(ContactMaterial)
	cm.Mat1 = mat1
	cm.Mat2 = mat2
	cm.friction = 0.3
	cm.restitution = 0.3
	cm.contactEquationStiffness = 1e7
	cm.contactEquationRelaxation = 3
	cm.frictionEquationStiffness = 1e7
	cm.frictionEquationRelaxation = 3
	return cm
}

func (cm *ContactMaterial) SetFriction(friction float32) { cm.friction = friction }
func (cm *ContactMaterial) Friction() float32             { return cm.friction }

func (cm *ContactMaterial) SetRestitution(restitution float32) { cm.restitution = restitution }
func (cm *ContactMaterial) Restitution() float32                { return cm.restitution }

func (cm *ContactMaterial) SetContactEquationStiffness(v float32)  { cm.contactEquationStiffness = v }
func (cm *ContactMaterial) ContactEquationStiffness() float32      { return cm.contactEquationStiffness }
func (cm *ContactMaterial) SetContactEquationRelaxation(v float32) { cm.contactEquationRelaxation = v }
func (cm *ContactMaterial) ContactEquationRelaxation() float32     { return cm.contactEquationRelaxation }

func (cm *ContactMaterial) SetFrictionEquationStiffness(v float32)  { cm.frictionEquationStiffness = v }
func (cm *ContactMaterial) FrictionEquationStiffness() float32      { return cm.frictionEquationStiffness }
func (cm *ContactMaterial) SetFrictionEquationRelaxation(v float32) { cm.frictionEquationRelaxation = v }
func (cm *ContactMaterial) FrictionEquationRelaxation() float32     { return cm.frictionEquationRelaxation }

// Table looks up the ContactMaterial registered for a pair of materials.
// Mirrors the teacher's commented-out ContactMaterialTable sketch.
type Table struct {
	entries map[pairKey]*ContactMaterial
}

type pairKey struct {
	a, b *Material
}

// NewTable creates and returns a pointer to a new, empty contact material table.
func NewTable() *Table {

	return &Table{entries: make(map[pairKey]*ContactMaterial)}
}

// Set registers cm as the contact material to use whenever mat1 and mat2 touch.
func (t *Table) Set(mat1, mat2 *Material, cm *ContactMaterial) {

	t.entries[pairKey{mat1, mat2}] = cm
	t.entries[pairKey{mat2, mat1}] = cm
}

// Get returns the registered contact material for the pair, and whether one was found.
func (t *Table) Get(mat1, mat2 *Material) (*ContactMaterial, bool) {

	cm, ok := t.entries[pairKey{mat1, mat2}]
	return cm, ok
}

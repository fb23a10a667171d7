// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"github.com/ferrox-engine/ferrox/math32"
	"github.com/ferrox-engine/ferrox/physics/collision"
)

// ConvexHull is a collision shape defined by an arbitrary convex polyhedron,
// stored as a triangulated vertex/face list in local (body) space.
type ConvexHull struct {
	vertices     []math32.Vector3
	faceIndices  [][3]int
	faceNormals  []math32.Vector3
}

// NewConvexHull creates and returns a pointer to a new ConvexHull built from
// the supplied vertices and triangular faces (each face a triple of indices
// into vertices). Face normals are derived from winding order.
func NewConvexHull(vertices []math32.Vector3, faces [][3]int) *ConvexHull {

	c := new(ConvexHull)
	c.vertices = vertices
	c.faceIndices = faces
	c.faceNormals = make([]math32.Vector3, len(faces))
	for i, f := range faces {
		v0 := c.vertices[f[0]]
		v1 := c.vertices[f[1]]
		v2 := c.vertices[f[2]]
		e1 := v1.Clone().Sub(&v0)
		e2 := v2.Clone().Sub(&v0)
		c.faceNormals[i] = *e1.Cross(e2).Normalize()
	}
	return c
}

// Vertices returns the local-space vertices of the hull.
func (c *ConvexHull) Vertices() []math32.Vector3 {

	return c.vertices
}

// ReadVertices calls fn for each local-space vertex in turn, stopping early
// if fn returns true.
func (c *ConvexHull) ReadVertices(fn func(vertex math32.Vector3) bool) {

	for _, v := range c.vertices {
		if fn(v) {
			return
		}
	}
}

// Faces returns the hull's triangular faces as local-space vertex triples.
func (c *ConvexHull) Faces() [][3]math32.Vector3 {

	faces := make([][3]math32.Vector3, len(c.faceIndices))
	for i, f := range c.faceIndices {
		faces[i] = [3]math32.Vector3{c.vertices[f[0]], c.vertices[f[1]], c.vertices[f[2]]}
	}
	return faces
}

// FaceNormals returns the hull's local-space face normals, one per face.
func (c *ConvexHull) FaceNormals() []math32.Vector3 {

	return c.faceNormals
}

// WorldFaceNormals returns the hull's face normals rotated into world space by quat.
func (c *ConvexHull) WorldFaceNormals(quat *math32.Quaternion) []math32.Vector3 {

	world := make([]math32.Vector3, len(c.faceNormals))
	for i := range c.faceNormals {
		n := c.faceNormals[i]
		world[i] = *n.Clone().ApplyQuaternion(quat)
	}
	return world
}

// WorldFace transforms a local-space face (as returned by Faces) into world space.
func (c *ConvexHull) WorldFace(face [3]math32.Vector3, pos *math32.Vector3, quat *math32.Quaternion) [3]math32.Vector3 {

	var world [3]math32.Vector3
	for i := 0; i < 3; i++ {
		world[i] = *face[i].Clone().ApplyQuaternion(quat).Add(pos)
	}
	return world
}

// worldVertex returns vertex i transformed into world space.
func (c *ConvexHull) worldVertex(i int, pos *math32.Vector3, quat *math32.Quaternion) math32.Vector3 {

	return *c.vertices[i].Clone().ApplyQuaternion(quat).Add(pos)
}

// projectWorld projects the hull's world-space vertices onto axis, returning (min, max).
func (c *ConvexHull) projectWorld(axis *math32.Vector3, pos *math32.Vector3, quat *math32.Quaternion) (float32, float32) {

	min := math32.Inf(1)
	max := math32.Inf(-1)
	for i := range c.vertices {
		wv := c.worldVertex(i, pos, quat)
		d := wv.Dot(axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

// FindPenetrationAxis runs a separating-axis test between this hull and other,
// using each hull's world-space face normals as candidate axes. It returns
// whether the hulls are penetrating and, if so, the axis of minimum
// penetration (pointing from other towards this hull).
func (c *ConvexHull) FindPenetrationAxis(other *ConvexHull, posA, posB *math32.Vector3, quatA, quatB *math32.Quaternion) (bool, math32.Vector3) {

	candidates := append(append([]math32.Vector3{}, c.WorldFaceNormals(quatA)...), other.WorldFaceNormals(quatB)...)

	var minAxis math32.Vector3
	minDepth := math32.Inf(1)

	for _, n := range candidates {
		if n.LengthSq() < 1e-12 {
			continue
		}
		axis := n.Clone().Normalize()

		minA, maxA := c.projectWorld(axis, posA, quatA)
		minB, maxB := other.projectWorld(axis, posB, quatB)

		if maxA < minB || maxB < minA {
			// Separating axis found: the hulls do not overlap.
			return false, math32.Vector3{}
		}

		depth := maxA - minB
		if d2 := maxB - minA; d2 < depth {
			depth = d2
		}
		if depth < minDepth {
			minDepth = depth
			minAxis = *axis
			// Orient the axis so it points from B towards A.
			centerA := posA
			centerB := posB
			if minAxis.Clone().Dot(centerA.Clone().Sub(centerB)) < 0 {
				minAxis.Negate()
			}
		}
	}

	return true, minAxis
}

// ClipAgainstHull clips the incident face of other (the face most aligned with
// separatingNormal) against the side planes of this hull's closest face to
// separatingNormal, returning the surviving contact points with penetration
// depths between minDist and maxDist. Grounded on the classic reference/incident
// face clipping used by SAT-based polyhedron narrowphases.
func (c *ConvexHull) ClipAgainstHull(other *ConvexHull, posA, posB *math32.Vector3, quatA, quatB *math32.Quaternion, separatingNormal *math32.Vector3, minDist, maxDist float32) []collision.Contact {

	otherNormals := other.WorldFaceNormals(quatB)
	otherFaces := other.Faces()
	bestOther := -1
	bestOtherDot := math32.Inf(-1)
	for i, n := range otherNormals {
		d := n.Dot(separatingNormal)
		if d > bestOtherDot {
			bestOtherDot = d
			bestOther = i
		}
	}
	if bestOther < 0 {
		return nil
	}
	incident := other.WorldFace(otherFaces[bestOther], posB, quatB)
	polygon := []math32.Vector3{incident[0], incident[1], incident[2]}

	thisNormals := c.WorldFaceNormals(quatA)
	thisFaces := c.Faces()
	bestThis := -1
	bestThisDot := math32.Inf(1)
	for i, n := range thisNormals {
		d := n.Dot(separatingNormal)
		if d < bestThisDot {
			bestThisDot = d
			bestThis = i
		}
	}
	if bestThis < 0 {
		return nil
	}
	refWorldFace := c.WorldFace(thisFaces[bestThis], posA, quatA)
	refNormal := thisNormals[bestThis]

	center := refWorldFace[0].Clone().Add(&refWorldFace[1]).Add(&refWorldFace[2]).MultiplyScalar(1.0 / 3.0)
	for i := 0; i < 3; i++ {
		v1 := refWorldFace[i]
		v2 := refWorldFace[(i+1)%3]
		edge := v2.Clone().Sub(&v1)
		sideNormal := edge.Clone().Cross(&refNormal).Normalize()
		if sideNormal.Dot(center.Clone().Sub(&v1)) > 0 {
			sideNormal.Negate()
		}
		polygon = clipPolygonAgainstPlane(polygon, &v1, sideNormal)
		if len(polygon) == 0 {
			return nil
		}
	}

	contacts := make([]collision.Contact, 0, len(polygon))
	for _, p := range polygon {
		point := p
		depth := refNormal.Dot(point.Clone().Sub(&refWorldFace[0]))
		penetration := -depth
		if depth <= 0 && penetration >= minDist && penetration <= maxDist {
			contacts = append(contacts, collision.Contact{
				Point:  point,
				Normal: refNormal,
				Depth:  penetration,
			})
		}
	}
	return contacts
}

// clipPolygonAgainstPlane keeps the part of poly on the side of the plane
// (through planePoint, with outward normal planeNormal) that planeNormal points
// away from, inserting new vertices at the plane intersection.
func clipPolygonAgainstPlane(poly []math32.Vector3, planePoint *math32.Vector3, planeNormal *math32.Vector3) []math32.Vector3 {

	if len(poly) == 0 {
		return poly
	}
	out := make([]math32.Vector3, 0, len(poly)+1)
	for i := range poly {
		current := poly[i]
		next := poly[(i+1)%len(poly)]
		currentInside := planeNormal.Dot(current.Clone().Sub(planePoint)) <= 0
		nextInside := planeNormal.Dot(next.Clone().Sub(planePoint)) <= 0
		if currentInside {
			out = append(out, current)
		}
		if currentInside != nextInside {
			out = append(out, intersectEdgePlane(&current, &next, planePoint, planeNormal))
		}
	}
	return out
}

// intersectEdgePlane returns the point where segment a-b crosses the plane.
func intersectEdgePlane(a, b, planePoint, planeNormal *math32.Vector3) math32.Vector3 {

	ab := b.Clone().Sub(a)
	denom := planeNormal.Dot(ab)
	if denom == 0 {
		return *a
	}
	t := planeNormal.Dot(planePoint.Clone().Sub(a)) / denom
	return *ab.MultiplyScalar(t).Add(a)
}

// IShape =============================================================

// BoundingBox computes and returns the local-space bounding box of the hull.
func (c *ConvexHull) BoundingBox() math32.Box3 {

	min := math32.Vector3{X: math32.Inf(1), Y: math32.Inf(1), Z: math32.Inf(1)}
	max := math32.Vector3{X: math32.Inf(-1), Y: math32.Inf(-1), Z: math32.Inf(-1)}
	for _, v := range c.vertices {
		min.Min(&v)
		max.Max(&v)
	}
	return math32.Box3{min, max}
}

// BoundingSphere computes and returns the local-space bounding sphere of the hull.
func (c *ConvexHull) BoundingSphere() math32.Sphere {

	var radius float32
	for _, v := range c.vertices {
		if l := v.Length(); l > radius {
			radius = l
		}
	}
	return *math32.NewSphere(math32.NewVec3(), radius)
}

// Area returns an approximation of the hull's surface area, summing each
// triangular face's area.
func (c *ConvexHull) Area() float32 {

	var total float32
	for _, f := range c.faceIndices {
		v0 := c.vertices[f[0]]
		v1 := c.vertices[f[1]]
		v2 := c.vertices[f[2]]
		e1 := v1.Clone().Sub(&v0)
		e2 := v2.Clone().Sub(&v0)
		total += e1.Clone().Cross(e2).Length() * 0.5
	}
	return total
}

// Volume returns an approximation of the hull's volume, computed from its
// axis-aligned bounding box.
func (c *ConvexHull) Volume() float32 {

	box := c.BoundingBox()
	size := box.Max.Clone().Sub(&box.Min)
	return size.X * size.Y * size.Z
}

// RotationalInertia approximates the hull's rotational inertia tensor using
// its axis-aligned bounding box, treated as a solid box of the given mass.
func (c *ConvexHull) RotationalInertia(mass float32) math32.Matrix3 {

	box := c.BoundingBox()
	size := box.Max.Clone().Sub(&box.Min)
	x2 := size.X * size.X
	y2 := size.Y * size.Y
	z2 := size.Z * size.Z
	k := mass / 12
	return *math32.NewMatrix3().Set(
		k*(y2+z2), 0, 0,
		0, k*(x2+z2), 0,
		0, 0, k*(x2+y2),
	)
}

// ProjectOntoAxis computes and returns the minimum and maximum distances of
// the hull's local-space vertices projected onto the specified local axis.
func (c *ConvexHull) ProjectOntoAxis(localAxis *math32.Vector3) (float32, float32) {

	min := math32.Inf(1)
	max := math32.Inf(-1)
	for _, v := range c.vertices {
		d := v.Dot(localAxis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/ferrox-engine/ferrox/math32"
	"github.com/ferrox-engine/ferrox/physics/equation"
)

// GaussSeidel equation solver.
// See https://en.wikipedia.org/wiki/Gauss-Seidel_method.
// The number of solver iterations determines the quality of the solution.
// More iterations yield a better solution but require more computation.
//
// This is the sequential-impulse velocity solver of spec §4.6: each row's
// accumulated impulse is clamped to its equation's own MinForce/MaxForce.
// Contact normal rows have MinForce 0 (lambda >= 0); friction rows keep
// the fixed +-slipForce bounds they were created with, which do not
// follow the paired normal row's accumulated impulse. Warm-starting
// applies each equation's carried-over Multiplier once before iterating.
type GaussSeidel struct {
	Solver
	maxIter    int     // Number of velocity-solve iterations (spec §4.6 default N=10).
	tolerance  float32 // When the error is less than the tolerance, the system is assumed to be converged.
	WarmStart  bool    // Apply each equation's carried accumulated impulse once before iterating.

	solveInvCs  []float32
	solveBs     []float32
	solveLambda []float32
}

// NewGaussSeidel creates and returns a pointer to a new GaussSeidel constraint equation solver
// with the spec's default iteration count (10) and warm-starting enabled.
func NewGaussSeidel() *GaussSeidel {

	gs := new(GaussSeidel)
	gs.maxIter = 10
	gs.tolerance = 1e-7
	gs.WarmStart = true

	gs.VelocityDeltas = make([]math32.Vector3, 0)
	gs.AngularVelocityDeltas = make([]math32.Vector3, 0)

	gs.solveInvCs = make([]float32, 0)
	gs.solveBs = make([]float32, 0)
	gs.solveLambda = make([]float32, 0)

	return gs
}

// SetIterations overrides the velocity-solve iteration count, e.g. from a
// resource.SolverConfig's VelocityIterations field.
func (gs *GaussSeidel) SetIterations(n int) {

	if n < 1 {
		n = 1
	}
	gs.maxIter = n
}

func (gs *GaussSeidel) Reset(numBodies int) {

	// Reset solution
	gs.VelocityDeltas = make([]math32.Vector3, numBodies)
	gs.AngularVelocityDeltas = make([]math32.Vector3, numBodies)
	gs.Iterations = 0

	// Reset internal arrays
	gs.solveInvCs = gs.solveInvCs[0:0]
	gs.solveBs = gs.solveBs[0:0]
	gs.solveLambda = gs.solveLambda[0:0]
}

// applyImpulse adds deltaLambda's contribution to both bodies' velocity
// and angular velocity deltas for the given equation's Jacobian.
func (gs *GaussSeidel) applyImpulse(eq equation.IEquation, deltaLambda float32) {

	idxBodyA := eq.BodyA().Index()
	idxBodyB := eq.BodyB().Index()
	jeA := eq.JeA()
	jeB := eq.JeB()

	spatA := jeA.Spatial()
	spatB := jeB.Spatial()
	gs.VelocityDeltas[idxBodyA].Add(spatA.MultiplyScalar(eq.BodyA().InvMassEff() * deltaLambda))
	gs.VelocityDeltas[idxBodyB].Add(spatB.MultiplyScalar(eq.BodyB().InvMassEff() * deltaLambda))

	rotA := jeA.Rotational()
	rotB := jeB.Rotational()
	gs.AngularVelocityDeltas[idxBodyA].Add(rotA.ApplyMatrix3(eq.BodyA().InvRotInertiaWorldEff()).MultiplyScalar(deltaLambda))
	gs.AngularVelocityDeltas[idxBodyB].Add(rotB.ApplyMatrix3(eq.BodyB().InvRotInertiaWorldEff()).MultiplyScalar(deltaLambda))
}

// Solve runs the sequential-impulse velocity solve for the equations
// added since the last ClearEquations.
func (gs *GaussSeidel) Solve(dt float32, nBodies int) *Solution {

	gs.Reset(nBodies)

	iter := 0
	nEquations := len(gs.equations)
	h := dt

	// Things that do not change during iteration can be computed once,
	// including seeding each row's accumulated impulse from last step's
	// Multiplier and applying it a single time (warm-start, spec §4.6).
	for i := 0; i < nEquations; i++ {
		eq := gs.equations[i]
		gs.solveInvCs = append(gs.solveInvCs, 1.0/eq.ComputeC())
		gs.solveBs = append(gs.solveBs, eq.ComputeB(h))

		var lambda0 float32
		if gs.WarmStart {
			lambda0 = eq.Multiplier() * h
		}
		gs.solveLambda = append(gs.solveLambda, lambda0)
		if lambda0 != 0 {
			gs.applyImpulse(eq, lambda0)
		}
	}

	if nEquations > 0 {
		tolSquared := gs.tolerance * gs.tolerance

		// Iterate over equations. Friction rows are added to the solver
		// ahead of the contact normal rows by the caller, so within an
		// iteration friction is applied before normal (spec §4.6 step 1).
		for iter = 0; iter < gs.maxIter; iter++ {

			// Accumulate the total error for each iteration.
			deltaLambdaTot := float32(0)

			for j := 0; j < nEquations; j++ {
				eq := gs.equations[j]
				if !eq.Enabled() {
					continue
				}

				// Compute iteration
				lambdaJ := gs.solveLambda[j]

				idxBodyA := eq.BodyA().Index()
				idxBodyB := eq.BodyB().Index()

				vA := gs.VelocityDeltas[idxBodyA]
				vB := gs.VelocityDeltas[idxBodyB]
				wA := gs.AngularVelocityDeltas[idxBodyA]
				wB := gs.AngularVelocityDeltas[idxBodyB]
				jeA := eq.JeA()
				jeB := eq.JeB()
				GWlambda := jeA.MultiplyVectors(&vA, &wA) + jeB.MultiplyVectors(&vB, &wB)

				deltaLambda := gs.solveInvCs[j] * (gs.solveBs[j] - GWlambda - eq.Eps()*lambdaJ)

				// Clamp if we are outside the min/max interval. Contact
				// normal rows have MinForce 0 (lambda >= 0); friction
				// rows use their fixed +-slipForce bounds.
				if lambdaJ+deltaLambda < eq.MinForce() {
					deltaLambda = eq.MinForce() - lambdaJ
				} else if lambdaJ+deltaLambda > eq.MaxForce() {
					deltaLambda = eq.MaxForce() - lambdaJ
				}
				gs.solveLambda[j] += deltaLambda
				deltaLambdaTot += math32.Abs(deltaLambda)

				gs.applyImpulse(eq, deltaLambda)
			}

			// If the total error is small enough - stop iterating
			if deltaLambdaTot*deltaLambdaTot < tolSquared {
				break
			}
		}

		// Set the .multiplier property of each equation so next step's
		// warm-start (or the contact cache, for Contact equations) can
		// pick up the converged accumulated impulse.
		for i := range gs.equations {
			gs.equations[i].SetMultiplier(gs.solveLambda[i] / h)
		}
		iter += 1
	}

	gs.Iterations = iter

	return &gs.Solution
}

// Package physics implements the gravity engine phases.
//
// Each step of the simulation calls the phases in a fixed order, and each
// phase completes over the whole [dynamo.State] before the next one reads it:
//
//   - [AccumulateForces]: pairwise Newtonian attraction with a distance floor
//   - [Integrate]: semi-implicit Euler advance of velocity, then position
//   - [ResolveCollisions]: disc overlap correction and elastic impulses
//   - [ClampBoundaries]: wall clamping with velocity reflection
//
// All pair loops visit each unordered pair exactly once (i < j), so the cost
// is O(n²) per phase.
//
// # Mass as radius
//
// A body's mass doubles as its disc radius. See [Radius].
//
// # Diagnostics
//
// [KineticEnergy], [PotentialEnergy], [Momentum] and [AngularMomentum] read a
// state without mutating it; [Field] samples the gravitational field for
// visualization.
package physics

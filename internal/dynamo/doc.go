// Package dynamo provides the core data model shared by the gravity simulation.
//
// The package defines the particle store and the immutable run parameters
// consumed by every physics phase:
//
//   - [Body]: mass, position, velocity and the transient force accumulator
//   - [Particle]: a Body tagged with a stable creation ID
//   - [State]: the contiguous, index-addressed particle arena
//   - [Params]: world bounds and physical constants, passed by value
//
// # Mass and radius
//
// A single scalar serves as both the mass and the collision/draw radius of a
// body. No separate radius field exists.
//
// # Thread Safety
//
// State is owned by a single step sequence and is NOT safe for concurrent
// mutation.
package dynamo

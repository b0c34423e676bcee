// Package viz renders a running simulation in the terminal.
//
// The live view is a Bubble Tea program that advances the simulator one step
// per frame and draws it onto braille [Canvas] layers:
//
//   - walls as nested rectangles
//   - particles as circles whose radius is their mass
//   - optional gravitational field lines on a fixed grid
//
// # Key Bindings
//
//	F     - Toggle field lines
//	T     - Cycle color themes
//	R     - Reset to the initial particle set
//	?     - Show help overlay
//	Q     - Quit
package viz

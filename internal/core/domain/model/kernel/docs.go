// Package kernel provides the value objects shared by every part of the drone
// delivery domain.
//
// The package includes:
//   - Position: a cell on the toroidal delivery grid
//   - Direction: a single move and its move-log code
//   - Limits: capacity and autonomy configuration of a delivery
//   - UUID: identifier of a simulation run
//
// All types are immutable values and safe to share between goroutines.
package kernel

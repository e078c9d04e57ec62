// Package grid implements the packet registry of a delivery: the toroidal grid,
// the packets placed on it and their lifecycle.
package grid

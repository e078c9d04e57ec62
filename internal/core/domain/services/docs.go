// Package services provides the domain services that orchestrate a delivery across
// the packet registry, the fleet and the path search.
//
// The package includes:
//   - Delivery: plans one route per drone, plays the simulation and scores it
//   - Report: planning diagnostics over the assigned routes
//
// Path search itself lives in the pathfinding subpackage.
package services

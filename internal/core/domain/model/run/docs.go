// Package run provides the Run aggregate: a submitted scenario waiting to be
// simulated, then holding its score and move log.
//
// Key business rules:
//   - A run is created Queued and only with a scenario that parses
//   - Queued runs end either Completed with an outcome or Failed with a reason
//   - Final statuses never change
package run

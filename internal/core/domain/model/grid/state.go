package grid

import (
	"fmt"

	"dronedelivery/internal/pkg/errs"
)

// State is the lifecycle state of a packet.
//
// State transitions:
//
//	Pending ──> Willing ──> Assigned ──> Delivered
//	   ^           │           │
//	   └───────────┴───────────┘ (rollback)
//	Pending ──> Missing ──> Pending (requeue)
//
// Willing marks a packet captured by a route that is still being searched;
// Assigned marks a packet whose route was committed to a drone.
type State int

const (
	// Unknown represents an uninitialized state.
	Unknown State = iota
	// Pending packets wait for a route.
	Pending
	// Willing packets are held by a route under construction.
	Willing
	// Assigned packets belong to a committed route.
	Assigned
	// Missing packets could not be reached by any policy.
	Missing
	// Delivered packets were visited by a drone.
	Delivered
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Willing:   "Willing",
		Assigned:  "Assigned",
		Missing:   "Missing",
		Delivered: "Delivered",
	}
}

// Validate checks that the state is one of the known packet states.
func (s State) Validate() error {
	if _, ok := getStateStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the name of the state.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsClaimed reports whether a route currently holds the packet.
func (s State) IsClaimed() bool {
	return s == Willing || s == Assigned
}

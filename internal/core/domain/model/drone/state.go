package drone

import (
	"fmt"

	"dronedelivery/internal/pkg/errs"
)

// State is the lifecycle state of a drone.
//
// State transitions:
//
//	Pending ──> Ready ──> Shipping ──> Stopped
//	   │                                 ^
//	   └─────────────────────────────────┘ (no route: idle until stopped)
type State int

const (
	// Unknown represents an uninitialized state.
	Unknown State = iota
	// Pending drones wait at the depot without a route.
	Pending
	// Ready drones hold a route and wait for the simulation to start.
	Ready
	// Shipping drones play their route one step per tick.
	Shipping
	// Stopped drones are done for the rest of the simulation.
	Stopped
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:  "Unknown",
		Pending:  "Pending",
		Ready:    "Ready",
		Shipping: "Shipping",
		Stopped:  "Stopped",
	}
}

// Validate checks that the state is a known drone state.
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

// Ready transitions Pending to Ready.
func (s State) Ready() (State, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to receive a route", s),
		)
	}
	return Ready, nil
}

// Ship transitions Ready to Shipping.
func (s State) Ship() (State, error) {
	if s != Ready {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to start shipping", s),
		)
	}
	return Shipping, nil
}

package run

import (
	"fmt"

	"dronedelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of a simulation run.
//
// State transitions:
//
//	Queued ──┬──> Completed
//	         └──> Failed
//
// Completed and Failed are final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Queued runs wait for the processing job.
	Queued

	// Completed runs hold a score and the move log.
	Completed

	// Failed runs hold the reason planning or simulation stopped.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Queued:    "Queued",
		Completed: "Completed",
		Failed:    "Failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Queued:    "Queued",
		Completed: "Completed",
		Failed:    "Failed",
	}
}

// ParseStatus converts a status name, as exposed by the API, into a Status.
func ParseStatus(name string) (Status, error) {
	for s, str := range getValidStatusStrings() {
		if str == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	return s == Completed || s == Failed
}

// Complete transitions Queued to Completed.
func (s Status) Complete() (Status, error) {
	if s != Queued {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
	return Completed, nil
}

// Fail transitions Queued to Failed.
func (s Status) Fail() (Status, error) {
	if s != Queued {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to fail", s.String()),
		)
	}
	return Failed, nil
}

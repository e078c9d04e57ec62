package kernel

import (
	"errors"
	"fmt"
	"math"

	"dronedelivery/internal/pkg/errs"
	"dronedelivery/internal/pkg/guard"
)

// ErrLimitsIsNotConstructed is returned when a zero-value Limits is used.
var ErrLimitsIsNotConstructed = errs.NewValueIsRequiredError("limits must be created via NewLimits")

// Limits is the range and payload configuration shared by the planner and the drones
// of one delivery. Every packet on board costs autonomyRatio distance units, so a
// drone carrying n packets can fly at most Autonomy(n).
//
// Invariant: a route holding n packets is valid only while its distance is at most
// Autonomy(n) and n is at most MaxCapacity().
//
// Example:
//
//	limits, err := kernel.NewLimits(2, 10, 60)
//	if err != nil {
//	    return err
//	}
//	limits.Autonomy(2)        // 40
//	limits.MaxCapacityFor(45) // 1
type Limits struct {
	maxCapacity   int
	autonomyRatio int
	maxDistance   int
	guard         guard.ConstructorGuard
}

// NewLimits creates the limits of a delivery.
//
// Parameters:
//   - maxCapacity: the most packets a drone can carry (must be >= 1)
//   - autonomyRatio: distance lost per packet on board (must be >= 0)
//   - maxDistance: autonomy of an empty drone (must be >= 0)
//
// Returns:
//   - Limits: the validated limits
//   - error: ValueIsOutOfRangeError for every invalid parameter, joined
func NewLimits(maxCapacity int, autonomyRatio int, maxDistance int) (Limits, error) {
	l := Limits{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		l.setMaxCapacity(maxCapacity),
		l.setAutonomyRatio(autonomyRatio),
		l.setMaxDistance(maxDistance),
	); err != nil {
		return Limits{}, err
	}
	return l, nil
}

// Validate checks that the limits were built with NewLimits.
func (l Limits) Validate() error {
	return l.guard.Validate(ErrLimitsIsNotConstructed)
}

// WithMaxDistance returns a copy of the limits with another base autonomy.
// Scenarios carry their own distance while capacity and ratio come from configuration.
func (l Limits) WithMaxDistance(maxDistance int) (Limits, error) {
	return NewLimits(l.maxCapacity, l.autonomyRatio, maxDistance)
}

// MaxCapacity returns the most packets a drone can carry regardless of distance.
func (l Limits) MaxCapacity() int {
	return l.maxCapacity
}

// AutonomyRatio returns the distance lost per packet on board.
func (l Limits) AutonomyRatio() int {
	return l.autonomyRatio
}

// MaxDistance returns the autonomy of an empty drone.
func (l Limits) MaxDistance() int {
	return l.maxDistance
}

// Autonomy returns the distance a drone carrying packets can fly:
// maxDistance - packets*autonomyRatio. The value may be negative for heavy loads.
//
// Example:
//
//	limits, _ := kernel.NewLimits(4, 40, 1000)
//	limits.Autonomy(0) // 1000
//	limits.Autonomy(3) // 880
func (l Limits) Autonomy(packets int) int {
	return l.maxDistance - packets*l.autonomyRatio
}

// MaxCapacityFor returns the largest packet count in [0, MaxCapacity()] whose autonomy
// still covers distance. It returns 0 when even an empty drone cannot fly that far.
//
// Example:
//
//	limits, _ := kernel.NewLimits(4, 40, 1000)
//	limits.MaxCapacityFor(840) // 4
//	limits.MaxCapacityFor(841) // 3
//	limits.MaxCapacityFor(961) // 0
func (l Limits) MaxCapacityFor(distance int) int {
	capacity := 0
	for i := 0; i <= l.maxCapacity; i++ {
		if l.Autonomy(i) >= distance {
			capacity = i
		}
	}
	return capacity
}

// String renders the limits for logs.
func (l Limits) String() string {
	return fmt.Sprintf("Limits(capacity=%d,ratio=%d,distance=%d)", l.maxCapacity, l.autonomyRatio, l.maxDistance)
}

func (l *Limits) setMaxCapacity(maxCapacity int) error {
	if maxCapacity < 1 {
		return errs.NewValueIsOutOfRangeError("maxCapacity", maxCapacity, 1, math.MaxInt)
	}
	l.maxCapacity = maxCapacity
	return nil
}

func (l *Limits) setAutonomyRatio(autonomyRatio int) error {
	if autonomyRatio < 0 {
		return errs.NewValueIsOutOfRangeError("autonomyRatio", autonomyRatio, 0, math.MaxInt)
	}
	l.autonomyRatio = autonomyRatio
	return nil
}

func (l *Limits) setMaxDistance(maxDistance int) error {
	if maxDistance < 0 {
		return errs.NewValueIsOutOfRangeError("maxDistance", maxDistance, 0, math.MaxInt)
	}
	l.maxDistance = maxDistance
	return nil
}

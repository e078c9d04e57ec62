package route

import (
	"fmt"

	"dronedelivery/internal/core/domain/model/kernel"
)

// Classification records what a cell was when the step onto it was planned.
type Classification struct {
	Packet         bool
	Lane           bool
	Free           bool
	StartLane      bool
	BreaksDelivery bool
}

// Step is one tick of a route: the cell reached and the move that reaches it.
// A wait step uses kernel.Stay and does not move the drone.
type Step struct {
	position  kernel.Position
	direction kernel.Direction
	class     Classification
}

// NewStep creates a step onto pos using direction dir.
func NewStep(pos kernel.Position, dir kernel.Direction, class Classification) Step {
	return Step{position: pos, direction: dir, class: class}
}

// NewWaitStep creates a step that keeps the drone on its cell for one tick.
func NewWaitStep(pos kernel.Position) Step {
	return Step{position: pos, direction: kernel.Stay}
}

// Position returns the cell reached by the step.
func (s Step) Position() kernel.Position {
	return s.position
}

// Direction returns the move of the step.
func (s Step) Direction() kernel.Direction {
	return s.direction
}

// Classification returns the planning-time classification of the cell.
func (s Step) Classification() Classification {
	return s.class
}

// IsWait reports whether the step is a wait step.
func (s Step) IsWait() bool {
	return s.direction == kernel.Stay
}

// String renders the step as "R3C16(Up)".
func (s Step) String() string {
	return fmt.Sprintf("%s(%s)", s.position, s.direction)
}

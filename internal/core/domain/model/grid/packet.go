package grid

import (
	"fmt"

	"dronedelivery/internal/core/domain/model/kernel"
)

// Packet is a snapshot of an item waiting on the grid. The Grid owns the live
// packets; callers receive copies and mutate through Grid methods.
type Packet struct {
	position kernel.Position
	state    State
	distance int
}

// Position returns the cell of the packet.
func (p Packet) Position() kernel.Position {
	return p.position
}

// State returns the lifecycle state of the packet.
func (p Packet) State() State {
	return p.state
}

// Distance returns the tick at which the owning route reaches the packet.
// It is zero while the packet is not claimed.
func (p Packet) Distance() int {
	return p.distance
}

// String renders the packet as "R8C12(8)".
func (p Packet) String() string {
	return fmt.Sprintf("%s(%d)", p.position, p.distance)
}

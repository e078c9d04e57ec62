package drone

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"dronedelivery/internal/core/domain/model/grid"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/route"
	"dronedelivery/internal/pkg/errs"
)

// ErrDroneIsNotConstructed is returned when a Drone was not created through NewDrone.
var ErrDroneIsNotConstructed = errors.New("Drone must be created via NewDrone constructor")

// Drone is a delivery agent. It receives at most one route, then plays it back one
// step per tick, delivering every packet it flies over and recording a move log.
//
// The move log starts with the number of packets on board followed by one direction
// code per tick; ticks spent waiting or after the route ended are logged as 0.
//
// Example:
//
//	d, _ := drone.NewDrone(0, g)
//	_ = d.SetRoute(r)
//	_ = d.Start()
//	for range maxRound {
//	    d.NextMove()
//	}
//	d.Stop()
//	fmt.Println(d.MoveString()) // "2 2 2 3 ... 0 0"
type Drone struct {
	id       int
	grid     *grid.Grid
	position kernel.Position
	state    State
	route    *route.Route
	cursor   int
	moves    []int

	isConstructed bool
}

// NewDrone creates a drone parked on the depot of g.
//
// Parameters:
//   - id: stable identifier, drones are served and simulated in id order (must be >= 0)
//   - g: the packet registry the drone delivers to
//
// Returns:
//   - *Drone: a Pending drone
//   - error: when id is negative or g is missing
func NewDrone(id int, g *grid.Grid) (*Drone, error) {
	if id < 0 {
		return nil, errs.NewValueIsOutOfRangeError("id", id, 0, math.MaxInt)
	}
	if g == nil {
		return nil, errs.NewValueIsRequiredError("grid")
	}

	return &Drone{
		id:            id,
		grid:          g,
		position:      g.Start(),
		state:         Pending,
		isConstructed: true,
	}, nil
}

// Validate ensures the drone was created through NewDrone.
func (d *Drone) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDroneIsNotConstructed
	}
	return nil
}

// ID returns the drone identifier.
func (d *Drone) ID() int {
	return d.id
}

// Position returns the cell the drone is on.
func (d *Drone) Position() kernel.Position {
	return d.position
}

// State returns the lifecycle state.
func (d *Drone) State() State {
	return d.state
}

// Route returns the assigned route, or nil.
func (d *Drone) Route() *route.Route {
	return d.route
}

// Moves returns a copy of the move log.
func (d *Drone) Moves() []int {
	moves := make([]int, len(d.moves))
	copy(moves, d.moves)
	return moves
}

// MoveString returns the move log as space separated codes.
func (d *Drone) MoveString() string {
	codes := make([]string, len(d.moves))
	for i, m := range d.moves {
		codes[i] = strconv.Itoa(m)
	}
	return strings.Join(codes, " ")
}

// SetRoute assigns r to a Pending drone.
func (d *Drone) SetRoute(r *route.Route) error {
	if r == nil {
		return errs.NewValueIsRequiredError("route")
	}
	next, err := d.state.Ready()
	if err != nil {
		return err
	}
	d.route = r
	d.state = next
	return nil
}

// Start logs the number of packets on board and begins shipping. A drone without a
// route logs 0 and stays Pending, idle for the whole run.
func (d *Drone) Start() error {
	if d.state == Pending && d.route == nil {
		d.moves = append(d.moves, 0)
		return nil
	}

	next, err := d.state.Ship()
	if err != nil {
		return err
	}
	d.moves = append(d.moves, d.route.PacketsCount())
	d.state = next
	return nil
}

// NextMove plays one tick. A Shipping drone executes its next step; once the route is
// exhausted it stops. Every tick appends exactly one code to the move log.
func (d *Drone) NextMove() {
	if d.state != Shipping {
		d.moves = append(d.moves, kernel.Stay.Code())
		return
	}

	var (
		step route.Step
		ok   bool
	)
	if d.route != nil {
		step, ok = d.route.Step(d.cursor)
	}
	if !ok {
		d.state = Stopped
		d.moves = append(d.moves, kernel.Stay.Code())
		return
	}
	d.cursor++

	if !step.IsWait() {
		d.position = step.Position()
		if p, found := d.grid.Packet(d.position); found && p.State() != grid.Delivered {
			d.grid.SetState(d.position, grid.Delivered)
		}
	}
	d.moves = append(d.moves, step.Direction().Code())
}

// Stop ends the simulation for the drone.
func (d *Drone) Stop() {
	d.state = Stopped
}

// Reset parks the drone back on the depot without a route. Packets of the released
// route go back to Pending.
func (d *Drone) Reset() {
	if d.route != nil {
		d.route.Reset()
	}
	d.route = nil
	d.cursor = 0
	d.moves = nil
	d.position = d.grid.Start()
	d.state = Pending
}

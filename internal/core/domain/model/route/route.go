package route

import (
	"errors"
	"fmt"
	"strings"

	"dronedelivery/internal/core/domain/model/grid"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/pkg/errs"
)

var (
	// ErrRouteIsEmpty is returned when undoing a step on a route without steps.
	ErrRouteIsEmpty = errors.New("route has no step")
	// ErrRouteIsDetached is returned when merging a route that does not continue this one.
	ErrRouteIsDetached = errors.New("route does not continue from reach")
)

type addition struct {
	wait     bool
	captured bool
}

// Route is an itinerary under construction: the ordered steps a drone executes and
// the manifest of packets it captures along the way.
//
// Routes never own packets. The manifest holds coordinates and every state or
// distance change goes through the grid, so the whole planner sees the same packet
// lifecycle.
//
// Invariants:
//   - Distance() equals the number of steps, wait steps included
//   - wait steps always sit at the front of the step list
//   - a captured packet's distance is its 1-based index in the step list
//   - MaxCapacity() equals limits.MaxCapacityFor(Distance())
//
// Example:
//
//	r, _ := route.New(g, limits, depot)
//	r.AddStep(route.NewStep(next, kernel.Down, route.Classification{Free: true}))
//	if err := r.RemoveLastStep(); err != nil {
//	    // nothing to undo
//	}
type Route struct {
	grid   *grid.Grid
	limits kernel.Limits

	start kernel.Position
	reach kernel.Position

	steps   []Step
	packets []kernel.Position
	history []addition

	distance    int
	maxCapacity int
}

// New creates an empty route starting (and reaching) start.
//
// Parameters:
//   - g: the packet registry the route captures from
//   - limits: capacity and autonomy configuration
//   - start: first cell of the route, must lie inside g
//
// Returns:
//   - *Route: the empty route
//   - error: when the registry is missing, limits are not constructed or start is outside the grid
func New(g *grid.Grid, limits kernel.Limits, start kernel.Position) (*Route, error) {
	if g == nil {
		return nil, errs.NewValueIsRequiredError("grid")
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	if !g.Contains(start) {
		return nil, errors.Join(errs.NewValueIsInvalidError("start"), fmt.Errorf("%w: %s", grid.ErrPositionIsOutOfGrid, start))
	}

	return &Route{
		grid:        g,
		limits:      limits,
		start:       start,
		reach:       start,
		maxCapacity: limits.MaxCapacityFor(0),
	}, nil
}

// Start returns the first cell of the route.
func (r *Route) Start() kernel.Position {
	return r.start
}

// Reach returns the cell reached by the last move, or Start for a route without moves.
func (r *Route) Reach() kernel.Position {
	return r.reach
}

// Distance returns the number of ticks needed to fly the route.
func (r *Route) Distance() int {
	return r.distance
}

// MaxCapacity returns how many packets the route may carry at its current distance.
func (r *Route) MaxCapacity() int {
	return r.maxCapacity
}

// MovesCount returns the number of steps, wait steps included.
func (r *Route) MovesCount() int {
	return len(r.steps)
}

// PacketsCount returns the number of captured packets.
func (r *Route) PacketsCount() int {
	return len(r.packets)
}

// IsEmpty reports whether the route has no step.
func (r *Route) IsEmpty() bool {
	return len(r.steps) == 0
}

// Steps returns a copy of the steps in execution order.
func (r *Route) Steps() []Step {
	steps := make([]Step, len(r.steps))
	copy(steps, r.steps)
	return steps
}

// Step returns the i-th step in execution order.
func (r *Route) Step(i int) (Step, bool) {
	if i < 0 || i >= len(r.steps) {
		return Step{}, false
	}
	return r.steps[i], true
}

// StepDistance returns the tick at which the i-th step is executed.
func (r *Route) StepDistance(i int) int {
	return i + 1
}

// PacketPositions returns the manifest in capture order.
func (r *Route) PacketPositions() []kernel.Position {
	positions := make([]kernel.Position, len(r.packets))
	copy(positions, r.packets)
	return positions
}

// Packets returns the current registry snapshots of the manifest.
func (r *Route) Packets() []grid.Packet {
	packets := make([]grid.Packet, 0, len(r.packets))
	for _, pos := range r.packets {
		if p, ok := r.grid.Packet(pos); ok {
			packets = append(packets, p)
		}
	}
	return packets
}

// AddStep extends the route by one tick.
//
// A wait step is inserted at the front and delays every captured packet by one tick.
// Any other step is appended and becomes the new reach; a Pending packet on its cell
// is captured as Willing with the step's tick as distance.
func (r *Route) AddStep(step Step) {
	if step.IsWait() {
		r.steps = append([]Step{step}, r.steps...)
		r.shiftPackets(1)
		r.history = append(r.history, addition{wait: true})
	} else {
		r.steps = append(r.steps, step)
		r.reach = step.position
		captured := false
		if p, ok := r.grid.Packet(step.position); ok && p.State() == grid.Pending {
			r.grid.SetState(step.position, grid.Willing)
			r.grid.SetDistance(step.position, len(r.steps))
			r.packets = append(r.packets, step.position)
			captured = true
		}
		r.history = append(r.history, addition{captured: captured})
	}

	r.setDistance(r.distance + 1)
}

// RemoveLastStep undoes the most recent AddStep, including steps merged by AddRoute.
// A packet captured by the removed step goes back to Pending.
func (r *Route) RemoveLastStep() error {
	if len(r.history) == 0 {
		return ErrRouteIsEmpty
	}
	last := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]

	if last.wait {
		r.steps = r.steps[1:]
		r.shiftPackets(-1)
	} else {
		r.steps = r.steps[:len(r.steps)-1]
		if last.captured {
			pos := r.packets[len(r.packets)-1]
			r.packets = r.packets[:len(r.packets)-1]
			r.grid.ResetPacket(pos)
		}
		r.reach = r.lastMove()
	}

	r.setDistance(r.distance - 1)
	return nil
}

// AddRoute appends next, which must start where this route ends.
//
// Packets of next are delayed by this route's distance. Wait steps of next move to
// the front, where they delay this route's packets too. next is emptied and must not
// be used afterwards.
func (r *Route) AddRoute(next *Route) error {
	if next == nil {
		return errs.NewValueIsRequiredError("route")
	}
	if next.grid != r.grid || next.start != r.reach {
		return ErrRouteIsDetached
	}

	for _, pos := range next.packets {
		r.grid.AddToDistance(pos, r.distance)
	}

	var waits, moves []Step
	for _, s := range next.steps {
		if s.IsWait() {
			waits = append(waits, NewWaitStep(r.start))
			continue
		}
		moves = append(moves, s)
	}
	r.shiftPackets(len(waits))

	r.steps = append(waits, r.steps...)
	r.steps = append(r.steps, moves...)
	if len(moves) > 0 {
		r.reach = next.reach
	}
	r.packets = append(r.packets, next.packets...)
	r.history = append(r.history, next.history...)
	r.setDistance(r.distance + next.distance)

	next.clear()
	return nil
}

// AssignWilling commits the route: every Willing packet of the manifest becomes Assigned.
func (r *Route) AssignWilling() {
	for _, pos := range r.packets {
		if p, ok := r.grid.Packet(pos); ok && p.State() == grid.Willing {
			r.grid.SetState(pos, grid.Assigned)
		}
	}
}

// ResetWilling releases the Willing packets of the manifest back to Pending.
func (r *Route) ResetWilling() {
	for _, pos := range r.packets {
		if p, ok := r.grid.Packet(pos); ok && p.State() == grid.Willing {
			r.grid.ResetPacket(pos)
		}
	}
}

// Reset releases every packet of the manifest and empties the route.
func (r *Route) Reset() {
	for _, pos := range r.packets {
		r.grid.ResetPacket(pos)
	}
	r.clear()
}

// String renders the route for logs and regression fixtures:
//
//	Start:R4C16 Reach:R8C12 Steps:R5C16(Down);... Packets:R8C12(8) MaxCapacity:2 Distance:8
func (r *Route) String() string {
	steps := make([]string, len(r.steps))
	for i, s := range r.steps {
		steps[i] = s.String()
	}
	packets := make([]string, 0, len(r.packets))
	for _, p := range r.Packets() {
		packets = append(packets, p.String())
	}
	return fmt.Sprintf("Start:%s Reach:%s Steps:%s Packets:%s MaxCapacity:%d Distance:%d",
		r.start, r.reach, strings.Join(steps, ";"), strings.Join(packets, ";"), r.maxCapacity, r.distance)
}

func (r *Route) shiftPackets(delta int) {
	if delta == 0 {
		return
	}
	for _, pos := range r.packets {
		r.grid.AddToDistance(pos, delta)
	}
}

func (r *Route) lastMove() kernel.Position {
	for i := len(r.steps) - 1; i >= 0; i-- {
		if !r.steps[i].IsWait() {
			return r.steps[i].position
		}
	}
	return r.start
}

func (r *Route) setDistance(distance int) {
	r.distance = distance
	r.maxCapacity = r.limits.MaxCapacityFor(distance)
}

func (r *Route) clear() {
	r.steps = nil
	r.packets = nil
	r.history = nil
	r.reach = r.start
	r.setDistance(0)
}

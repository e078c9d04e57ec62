package pathfinding

import (
	"errors"
	"fmt"

	"dronedelivery/internal/core/domain/model/grid"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/route"
	"dronedelivery/internal/pkg/errs"
)

var (
	// ErrNoRoute is returned when no policy produced a route.
	ErrNoRoute = errors.New("no route found")
	// ErrCapacityExceeded is returned when a search captured more packets than its distance allows.
	ErrCapacityExceeded = errors.New("route exceeds drone capacity")
	// ErrSearchExhausted is returned when a search used its whole step budget.
	ErrSearchExhausted = errors.New("route search exhausted its step budget")
	// ErrNoCandidate is returned when a search cannot make any further step.
	ErrNoCandidate = errors.New("no candidate step")
	// ErrNoPendingPacket is returned when no Pending packet is left on the grid.
	ErrNoPendingPacket = errors.New("no pending packet")
)

// Path is a point-to-point query on the grid. It turns the bearing between start
// and reach into concrete routes under the routing policies.
//
// A Path may be a leg of a longer itinerary; offset is then the number of ticks
// flown before the leg starts and is used to decide which claimed packets block.
type Path struct {
	grid    *grid.Grid
	limits  kernel.Limits
	start   kernel.Position
	reach   kernel.Position
	bearing Bearing
	offset  int
}

// NewPath creates a query from start to reach.
//
// Parameters:
//   - g: packet registry the routes capture from
//   - limits: capacity and autonomy configuration
//   - start: first cell, must lie inside g
//   - reach: target cell, must lie inside g
//
// Returns:
//   - *Path: the query
//   - error: when an argument is missing or a position lies outside the grid
func NewPath(g *grid.Grid, limits kernel.Limits, start kernel.Position, reach kernel.Position) (*Path, error) {
	if g == nil {
		return nil, errs.NewValueIsRequiredError("grid")
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	for _, pos := range []kernel.Position{start, reach} {
		if !g.Contains(pos) {
			return nil, errors.Join(errs.NewValueIsInvalidError("path"), fmt.Errorf("%w: %s", grid.ErrPositionIsOutOfGrid, pos))
		}
	}

	return &Path{
		grid:    g,
		limits:  limits,
		start:   start,
		reach:   reach,
		bearing: NewBearing(start, reach, g.Columns()),
	}, nil
}

// Start returns the first cell.
func (p *Path) Start() kernel.Position {
	return p.start
}

// Reach returns the target cell.
func (p *Path) Reach() kernel.Position {
	return p.reach
}

// Bearing returns the heading from start to reach.
func (p *Path) Bearing() Bearing {
	return p.bearing
}

// Distance returns the length of the shortest unobstructed walk.
func (p *Path) Distance() int {
	return p.bearing.Distance()
}

// ClosestPendingPath returns the path from `from` to the nearest Pending packet.
// Ties go to the packet loaded first.
func (p *Path) ClosestPendingPath(from kernel.Position) (*Path, error) {
	return p.extremalPendingPath(from, func(candidate, best int) bool { return candidate < best })
}

// FarthestPendingPath returns the path from `from` to the most distant Pending packet.
// Ties go to the packet loaded first.
func (p *Path) FarthestPendingPath(from kernel.Position) (*Path, error) {
	return p.extremalPendingPath(from, func(candidate, best int) bool { return candidate > best })
}

// MapRoute searches a route with each policy in turn. The first route that reaches
// the target wins and its packets are committed as Assigned.
// Without policies DefaultFallback is used.
func (p *Path) MapRoute(policies ...Policy) (*route.Route, error) {
	r, err := p.mapWilling(policies)
	if err != nil {
		return nil, err
	}
	r.AssignWilling()
	return r, nil
}

func (p *Path) mapWilling(policies []Policy) (*route.Route, error) {
	if len(policies) == 0 {
		policies = DefaultFallback()
	}

	var failures []error
	for _, policy := range policies {
		r, err := p.search(policy)
		if err == nil {
			return r, nil
		}
		failures = append(failures, fmt.Errorf("%s: %w", policy, err))
	}
	return nil, fmt.Errorf("%w from %s to %s: %w", ErrNoRoute, p.start, p.reach, errors.Join(failures...))
}

func (p *Path) extremalPendingPath(from kernel.Position, better func(candidate, best int) bool) (*Path, error) {
	var (
		found    bool
		target   kernel.Position
		distance int
	)
	for _, packet := range p.grid.PendingPackets() {
		d := NewBearing(from, packet.Position(), p.grid.Columns()).Distance()
		if !found || better(d, distance) {
			found, target, distance = true, packet.Position(), d
		}
	}
	if !found {
		return nil, ErrNoPendingPacket
	}
	return NewPath(p.grid, p.limits, from, target)
}

func (p *Path) leg(offset int) *Path {
	leg := *p
	leg.offset = offset
	return &leg
}

// stepBudget bounds a single search so that wait loops always end.
func (p *Path) stepBudget() int {
	return p.limits.Autonomy(0) + 2*((p.grid.Rows()+1)+(p.grid.Columns()+1))
}

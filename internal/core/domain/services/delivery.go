package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"dronedelivery/internal/core/domain/model/drone"
	"dronedelivery/internal/core/domain/model/grid"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/route"
	"dronedelivery/internal/core/domain/model/scenario"
	"dronedelivery/internal/core/domain/services/pathfinding"
	"dronedelivery/internal/pkg/errs"
)

// deliveredBonus is granted per packet when the whole registry was delivered.
const deliveredBonus = 10

// ErrDeliveryAlreadyStarted is returned when Start is called twice without Reset.
var ErrDeliveryAlreadyStarted = errors.New("delivery already started")

// Delivery orchestrates one scenario: it owns the packet registry and the fleet,
// assigns one route per drone and plays the simulation.
//
// Key responsibilities:
//   - Planning: MapRoutes hands bubble routes to Pending drones in id order
//   - Simulation: Start plays exactly maxRound ticks
//   - Scoring: Score and MoveLines produce the challenge output
//
// A Delivery is not safe for concurrent use. Build one per run.
//
// Example usage:
//
//	sc, _ := scenario.ParseString(input)
//	limits, _ := kernel.NewLimits(2, 10, sc.MaxDistance())
//	d, _ := services.NewDelivery(sc, limits)
//	missing := d.MapRoutes(ctx)
//	_ = d.Start(ctx)
//	fmt.Println(d.Score(), len(missing))
type Delivery struct {
	scenario scenario.Scenario
	limits   kernel.Limits
	grid     *grid.Grid
	drones   []*drone.Drone
	policies []pathfinding.Policy
	bubble   bool
	round    int
	started  bool
	logger   *slog.Logger
}

// Option customises a Delivery.
type Option func(d *Delivery)

// WithLogger sets the logger used for planning and simulation traces.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Delivery) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithPolicies replaces the fallback list tried for every route.
func WithPolicies(policies ...pathfinding.Policy) Option {
	return func(d *Delivery) {
		if len(policies) > 0 {
			d.policies = policies
		}
	}
}

// WithBubbleRoutes chooses between multi-stop itineraries (the default) and
// single-target routes to the closest Pending packet.
func WithBubbleRoutes(enabled bool) Option {
	return func(d *Delivery) {
		d.bubble = enabled
	}
}

// NewDelivery builds the registry and the fleet of a scenario.
//
// Parameters:
//   - sc: the parsed scenario (must be constructed)
//   - limits: capacity and ratio; the base autonomy is taken from the scenario
//   - opts: optional logger, fallback list and planning mode
//
// Returns:
//   - *Delivery: a delivery with every packet Pending and every drone Pending
//   - error: when the scenario or limits are invalid
func NewDelivery(sc scenario.Scenario, limits kernel.Limits, opts ...Option) (*Delivery, error) {
	if err := errors.Join(sc.Validate(), limits.Validate()); err != nil {
		return nil, err
	}

	scenarioLimits, err := limits.WithMaxDistance(sc.MaxDistance())
	if err != nil {
		return nil, err
	}

	g, err := grid.NewGrid(sc.Rows(), sc.Columns(), sc.Depot(), sc.Packets())
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("scenario", err)
	}

	drones := make([]*drone.Drone, 0, sc.DroneCount())
	for id := range sc.DroneCount() {
		d, err := drone.NewDrone(id, g)
		if err != nil {
			return nil, err
		}
		drones = append(drones, d)
	}

	d := &Delivery{
		scenario: sc,
		limits:   scenarioLimits,
		grid:     g,
		drones:   drones,
		policies: pathfinding.DefaultFallback(),
		bubble:   true,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "delivery")

	return d, nil
}

// CreateDelivery parses a scenario text and builds its delivery.
func CreateDelivery(r io.Reader, limits kernel.Limits, opts ...Option) (*Delivery, error) {
	sc, err := scenario.Parse(r)
	if err != nil {
		return nil, err
	}
	return NewDelivery(sc, limits, opts...)
}

// Scenario returns the scenario the delivery was built from.
func (d *Delivery) Scenario() scenario.Scenario {
	return d.scenario
}

// Limits returns the effective limits, base autonomy included.
func (d *Delivery) Limits() kernel.Limits {
	return d.limits
}

// Grid returns the packet registry.
func (d *Delivery) Grid() *grid.Grid {
	return d.grid
}

// Drones returns the fleet in id order.
func (d *Delivery) Drones() []*drone.Drone {
	return append([]*drone.Drone(nil), d.drones...)
}

// Round returns the number of ticks played so far.
func (d *Delivery) Round() int {
	return d.round
}

// MapRoutes assigns routes while Pending packets and Pending drones remain.
//
// Each iteration searches a route from the depot. A found route goes to the first
// Pending drone; when nothing can be found the closest Pending packet from the depot
// is marked Missing so that the loop always progresses.
//
// Returns:
//   - []kernel.Position: the packets marked Missing, in the order they were given up
func (d *Delivery) MapRoutes(ctx context.Context) []kernel.Position {
	var missing []kernel.Position
	depot := d.grid.Start()

	for d.grid.Count(grid.Pending) > 0 {
		next := d.firstPendingDrone()
		if next == nil {
			break
		}

		path, err := pathfinding.NewPath(d.grid, d.limits, depot, depot)
		if err != nil {
			d.logger.ErrorContext(ctx, "failed to create path", "error", err)
			break
		}

		r, err := d.mapRoute(path)
		if err == nil {
			if err := next.SetRoute(r); err != nil {
				r.Reset()
				d.logger.ErrorContext(ctx, "failed to assign route", "droneId", next.ID(), "error", err)
				break
			}
			d.logger.DebugContext(ctx, "route mapped",
				"droneId", next.ID(),
				"packets", r.PacketsCount(),
				"distance", r.Distance(),
				"pending", d.grid.Count(grid.Pending))
			continue
		}

		closest, cerr := path.ClosestPendingPath(depot)
		if cerr != nil {
			break
		}
		d.grid.MarkMissing(closest.Reach())
		missing = append(missing, closest.Reach())
		d.logger.WarnContext(ctx, "packet marked missing", "position", closest.Reach().String(), "error", err)
	}

	d.logger.InfoContext(ctx, "routes mapped",
		"routes", len(d.Routes()),
		"assigned", d.grid.Count(grid.Assigned),
		"missing", len(missing),
		"pending", d.grid.Count(grid.Pending))
	return missing
}

// RetryMissing requeues Missing packets and runs another planning pass with the
// drones that are still Pending. It returns the packets Missing after that pass.
// Without a Pending drone nothing is requeued.
func (d *Delivery) RetryMissing(ctx context.Context) []kernel.Position {
	if d.firstPendingDrone() == nil {
		return d.missingPositions()
	}
	if requeued := d.grid.ResetMissingPackets(); requeued > 0 {
		d.MapRoutes(ctx)
	}
	return d.missingPositions()
}

// Start plays the simulation: every drone starts, then exactly maxRound ticks are
// played with drones moving in id order, then every drone is stopped.
func (d *Delivery) Start(ctx context.Context) error {
	if d.started {
		return ErrDeliveryAlreadyStarted
	}
	d.started = true

	for _, dr := range d.drones {
		if err := dr.Start(); err != nil {
			return fmt.Errorf("starting drone %d: %w", dr.ID(), err)
		}
	}
	for d.round < d.scenario.MaxRound() {
		for _, dr := range d.drones {
			dr.NextMove()
		}
		d.round++
	}
	for _, dr := range d.drones {
		dr.Stop()
	}

	d.logger.InfoContext(ctx, "simulation finished",
		"rounds", d.round,
		"delivered", d.grid.Count(grid.Delivered),
		"packets", d.grid.Len())
	return nil
}

// Score evaluates the delivery:
// delivered * (maxRound*droneCount - totalMoves), plus 10 per packet when every
// packet was delivered. totalMoves counts every step of every assigned route.
//
// droneCount is the whole fleet, idle drones included, not only the drones holding
// a route. The reference score of 355 for the 20x20 example depends on it: with one
// of four drones idle, counting routed drones only would give 205.
func (d *Delivery) Score() int {
	delivered := d.grid.Count(grid.Delivered)

	moves := 0
	for _, r := range d.Routes() {
		moves += r.MovesCount()
	}

	score := delivered * (d.scenario.MaxRound()*len(d.drones) - moves)
	if delivered == d.grid.Len() {
		score += d.grid.Len() * deliveredBonus
	}
	return score
}

// MoveLines returns one move log per drone in id order.
func (d *Delivery) MoveLines() []string {
	lines := make([]string, len(d.drones))
	for i, dr := range d.drones {
		lines[i] = dr.MoveString()
	}
	return lines
}

// Routes returns the routes assigned so far, in drone id order.
func (d *Delivery) Routes() []*route.Route {
	var routes []*route.Route
	for _, dr := range d.drones {
		if r := dr.Route(); r != nil {
			routes = append(routes, r)
		}
	}
	return routes
}

// Reset rolls back every route and parks the fleet on the depot.
func (d *Delivery) Reset() {
	for _, dr := range d.drones {
		dr.Reset()
	}
	d.round = 0
	d.started = false
}

// String renders a one-line summary.
func (d *Delivery) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Packets:%d Drones:%d Round:%d MaxRound:%d %s Grid:%dx%d Depot:%s",
		d.grid.Len(), len(d.drones), d.round, d.scenario.MaxRound(), d.limits,
		d.scenario.Rows(), d.scenario.Columns(), d.grid.Start())
	return b.String()
}

func (d *Delivery) mapRoute(path *pathfinding.Path) (*route.Route, error) {
	if d.bubble {
		return path.MapBubbleRoute(d.policies...)
	}
	closest, err := path.ClosestPendingPath(d.grid.Start())
	if err != nil {
		return nil, err
	}
	return closest.MapRoute(d.policies...)
}

func (d *Delivery) missingPositions() []kernel.Position {
	var missing []kernel.Position
	for _, p := range d.grid.Packets() {
		if p.State() == grid.Missing {
			missing = append(missing, p.Position())
		}
	}
	return missing
}

func (d *Delivery) firstPendingDrone() *drone.Drone {
	for _, dr := range d.drones {
		if dr.State() == drone.Pending {
			return dr
		}
	}
	return nil
}

package scenario

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/pkg/errs"
	"dronedelivery/internal/pkg/guard"
)

// ErrScenarioIsNotConstructed is returned when a zero-value Scenario is used.
var ErrScenarioIsNotConstructed = errs.NewValueIsRequiredError("scenario must be created via NewScenario or Parse")

// Upper bounds of a scenario. Planning cost grows with the grid, the range and the
// packet count; the simulation keeps droneCount*maxRound moves in memory.
const (
	MaxGridSide    = 1000
	MaxDroneCount  = 1000
	MaxDistance    = 100_000
	MaxRound       = 100_000
	MaxPacketCount = 100_000
	MaxFleetTicks  = 10_000_000
)

// Scenario is the immutable description of one delivery challenge: grid size, fleet,
// range, simulation length, depot and packet cells.
//
// Packets are kept sorted by row then column; that order is the registry order used
// for every tie-break during planning.
type Scenario struct {
	rows        int
	columns     int
	droneCount  int
	maxDistance int
	maxRound    int
	depot       kernel.Position
	packets     []kernel.Position
	guard       guard.ConstructorGuard
}

// NewScenario validates and creates a scenario.
//
// Parameters:
//   - rows, columns: grid size (1..MaxGridSide)
//   - droneCount: fleet size (0..MaxDroneCount)
//   - maxDistance: autonomy of an empty drone (0..MaxDistance)
//   - maxRound: number of simulated ticks (0..MaxRound)
//   - depot: start cell of every drone, inside the grid
//   - packets: at most MaxPacketCount cells inside the grid, in any order
//
// droneCount*maxRound may not exceed MaxFleetTicks.
//
// Returns:
//   - Scenario: the validated scenario with sorted packets
//   - error: every validation failure, joined
func NewScenario(
	rows, columns, droneCount, maxDistance, maxRound int,
	depot kernel.Position,
	packets []kernel.Position,
) (Scenario, error) {
	s := Scenario{
		rows:        rows,
		columns:     columns,
		droneCount:  droneCount,
		maxDistance: maxDistance,
		maxRound:    maxRound,
		depot:       depot,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		inRange("rows", rows, 1, MaxGridSide),
		inRange("columns", columns, 1, MaxGridSide),
		inRange("droneCount", droneCount, 0, MaxDroneCount),
		inRange("maxDistance", maxDistance, 0, MaxDistance),
		inRange("maxRound", maxRound, 0, MaxRound),
		inRange("packetCount", len(packets), 0, MaxPacketCount),
	); err != nil {
		return Scenario{}, err
	}
	if err := inRange("droneCount*maxRound", droneCount*maxRound, 0, MaxFleetTicks); err != nil {
		return Scenario{}, err
	}

	if err := s.setDepot(depot); err != nil {
		return Scenario{}, err
	}
	if err := s.setPackets(packets); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// Validate checks that the scenario was built by NewScenario or Parse.
func (s Scenario) Validate() error {
	return s.guard.Validate(ErrScenarioIsNotConstructed)
}

// Rows returns the number of rows.
func (s Scenario) Rows() int {
	return s.rows
}

// Columns returns the number of columns.
func (s Scenario) Columns() int {
	return s.columns
}

// DroneCount returns the fleet size.
func (s Scenario) DroneCount() int {
	return s.droneCount
}

// MaxDistance returns the autonomy of an empty drone.
func (s Scenario) MaxDistance() int {
	return s.maxDistance
}

// MaxRound returns the number of simulated ticks.
func (s Scenario) MaxRound() int {
	return s.maxRound
}

// Depot returns the start cell of every drone.
func (s Scenario) Depot() kernel.Position {
	return s.depot
}

// Packets returns the packet cells sorted by row then column.
func (s Scenario) Packets() []kernel.Position {
	return slices.Clone(s.packets)
}

// PacketCount returns the number of packets, duplicates included.
func (s Scenario) PacketCount() int {
	return len(s.packets)
}

func (s *Scenario) setDepot(depot kernel.Position) error {
	if !s.contains(depot) {
		return errs.NewValueIsInvalidErrorWithCause("depot", fmt.Errorf("%s is outside a %dx%d grid", depot, s.rows, s.columns))
	}
	s.depot = depot
	return nil
}

func (s *Scenario) setPackets(packets []kernel.Position) error {
	sorted := slices.Clone(packets)
	for _, p := range sorted {
		if !s.contains(p) {
			return errs.NewValueIsInvalidErrorWithCause("packet", fmt.Errorf("%s is outside a %dx%d grid", p, s.rows, s.columns))
		}
	}
	slices.SortStableFunc(sorted, func(a, b kernel.Position) int {
		return cmp.Or(cmp.Compare(a.Row(), b.Row()), cmp.Compare(a.Column(), b.Column()))
	})
	s.packets = sorted
	return nil
}

func (s *Scenario) contains(p kernel.Position) bool {
	return p.Row() < s.rows && p.Column() < s.columns
}

func inRange(name string, value, minValue, maxValue int) error {
	if value < minValue || value > maxValue {
		return errs.NewValueIsOutOfRangeError(name, value, minValue, maxValue)
	}
	return nil
}

package grid

import (
	"errors"
	"fmt"
	"math"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/pkg/errs"
)

// ErrPositionIsOutOfGrid is returned when a position does not fit the grid bounds.
var ErrPositionIsOutOfGrid = errors.New("position is out of grid")

// Grid is the packet registry of one delivery. It owns every packet, answers
// classification questions about cells and is the only place packet state changes.
//
// Columns wrap around (the grid is a cylinder): moving Left from column 0 leads to
// the last column and moving Right from the last column leads to column 0. Rows are
// bounded and never wrap.
//
// Packets keep their load order. When several packets share a coordinate, lookups by
// position resolve to the first one.
type Grid struct {
	rows    int
	columns int
	start   kernel.Position

	packets []Packet
	index   map[kernel.Position]int

	packetsByRow    map[int]int
	packetsByColumn map[int]int
}

// NewGrid creates a registry for a rows x columns grid.
//
// Parameters:
//   - rows: number of rows (must be >= 1)
//   - columns: number of columns (must be >= 1)
//   - start: the depot, must lie inside the grid
//   - positions: packet cells in registry order, each inside the grid
//
// Returns:
//   - *Grid: the registry with every packet Pending
//   - error: ValueIsOutOfRangeError for bad dimensions, ErrPositionIsOutOfGrid for
//     a depot or packet outside the bounds
func NewGrid(rows int, columns int, start kernel.Position, positions []kernel.Position) (*Grid, error) {
	if err := errors.Join(
		validateDimension("rows", rows),
		validateDimension("columns", columns),
	); err != nil {
		return nil, err
	}

	g := &Grid{
		rows:            rows - 1,
		columns:         columns - 1,
		packets:         make([]Packet, 0, len(positions)),
		index:           make(map[kernel.Position]int, len(positions)),
		packetsByRow:    make(map[int]int),
		packetsByColumn: make(map[int]int),
	}

	if !g.Contains(start) {
		return nil, errors.Join(errs.NewValueIsInvalidError("start"), fmt.Errorf("%w: %s", ErrPositionIsOutOfGrid, start))
	}
	g.start = start

	for _, pos := range positions {
		if !g.Contains(pos) {
			return nil, errors.Join(errs.NewValueIsInvalidError("packet"), fmt.Errorf("%w: %s", ErrPositionIsOutOfGrid, pos))
		}
		if _, exists := g.index[pos]; !exists {
			g.index[pos] = len(g.packets)
		}
		g.packets = append(g.packets, Packet{position: pos, state: Pending})
		g.packetsByRow[pos.Row()]++
		g.packetsByColumn[pos.Column()]++
	}

	return g, nil
}

// Rows returns the highest row index.
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the highest column index.
func (g *Grid) Columns() int {
	return g.columns
}

// Start returns the depot.
func (g *Grid) Start() kernel.Position {
	return g.start
}

// Contains reports whether pos lies inside the grid bounds.
func (g *Grid) Contains(pos kernel.Position) bool {
	return pos.Row() <= g.rows && pos.Column() <= g.columns
}

// Neighbour returns the cell reached from pos by one move in direction dir.
// Columns wrap; a move past the first or last row returns false.
func (g *Grid) Neighbour(pos kernel.Position, dir kernel.Direction) (kernel.Position, bool) {
	row, column := pos.Row(), pos.Column()
	switch dir {
	case kernel.Stay:
	case kernel.Left:
		column--
		if column < 0 {
			column = g.columns
		}
	case kernel.Right:
		column++
		if column > g.columns {
			column = 0
		}
	case kernel.Up:
		row--
	case kernel.Down:
		row++
	default:
		return kernel.Position{}, false
	}

	if row < 0 || row > g.rows {
		return kernel.Position{}, false
	}
	return kernel.MustNewPosition(row, column), true
}

// Len returns the number of packets, duplicates included.
func (g *Grid) Len() int {
	return len(g.packets)
}

// Packet returns a snapshot of the packet at pos.
func (g *Grid) Packet(pos kernel.Position) (Packet, bool) {
	i, ok := g.index[pos]
	if !ok {
		return Packet{}, false
	}
	return g.packets[i], true
}

// Packets returns snapshots of every packet in registry order.
func (g *Grid) Packets() []Packet {
	packets := make([]Packet, len(g.packets))
	copy(packets, g.packets)
	return packets
}

// PendingPackets returns snapshots of the Pending packets in registry order.
func (g *Grid) PendingPackets() []Packet {
	var packets []Packet
	for _, p := range g.packets {
		if p.state == Pending {
			packets = append(packets, p)
		}
	}
	return packets
}

// Count returns the number of packets in state s.
func (g *Grid) Count(s State) int {
	count := 0
	for _, p := range g.packets {
		if p.state == s {
			count++
		}
	}
	return count
}

// SetState changes the state of the packet at pos. It reports false when no packet
// lies there or the state is invalid.
func (g *Grid) SetState(pos kernel.Position, s State) bool {
	if s.Validate() != nil {
		return false
	}
	return g.update(pos, func(p *Packet) { p.state = s })
}

// SetDistance records the tick at which the packet at pos is reached.
func (g *Grid) SetDistance(pos kernel.Position, distance int) bool {
	return g.update(pos, func(p *Packet) { p.distance = distance })
}

// AddToDistance shifts the recorded distance of the packet at pos by delta.
func (g *Grid) AddToDistance(pos kernel.Position, delta int) bool {
	return g.update(pos, func(p *Packet) { p.distance += delta })
}

// ResetPacket puts the packet at pos back to Pending with a zero distance.
func (g *Grid) ResetPacket(pos kernel.Position) bool {
	return g.update(pos, func(p *Packet) {
		p.state = Pending
		p.distance = 0
	})
}

// MarkMissing moves the first Pending packet at pos to Missing. Unlike SetState it
// also reaches duplicates hidden behind a claimed packet on the same cell.
func (g *Grid) MarkMissing(pos kernel.Position) bool {
	for i := range g.packets {
		if g.packets[i].position == pos && g.packets[i].state == Pending {
			g.packets[i].state = Missing
			g.packets[i].distance = 0
			return true
		}
	}
	return false
}

// ResetMissingPackets requeues every Missing packet and returns how many were reset.
func (g *Grid) ResetMissingPackets() int {
	reset := 0
	for i := range g.packets {
		if g.packets[i].state == Missing {
			g.packets[i].state = Pending
			g.packets[i].distance = 0
			reset++
		}
	}
	return reset
}

// IsPacket reports whether a packet lies at pos, whatever its state.
func (g *Grid) IsPacket(pos kernel.Position) bool {
	_, ok := g.index[pos]
	return ok
}

// IsLane reports whether pos shares a row or a column with at least one packet.
// Packet cells are lanes too.
func (g *Grid) IsLane(pos kernel.Position) bool {
	return g.packetsByRow[pos.Row()] > 0 || g.packetsByColumn[pos.Column()] > 0
}

// IsFree reports whether pos is neither a packet nor a lane.
func (g *Grid) IsFree(pos kernel.Position) bool {
	return !g.IsPacket(pos) && !g.IsLane(pos)
}

// IsStartLane reports whether pos shares a row or a column with the depot.
func (g *Grid) IsStartLane(pos kernel.Position) bool {
	return pos.Row() == g.start.Row() || pos.Column() == g.start.Column()
}

// WillBreakDelivery reports whether a drone entering pos at tick nextDistance would
// reach a claimed packet before (or when) its owning route does.
func (g *Grid) WillBreakDelivery(pos kernel.Position, nextDistance int) bool {
	p, ok := g.Packet(pos)
	return ok && p.state.IsClaimed() && p.distance >= nextDistance
}

// IsBlocking reports whether entering pos at tick nextDistance is forbidden to a route
// that does not want to capture the packet there. Pending and Missing packets always
// block, claimed packets block until their owner has passed, Delivered ones never do.
func (g *Grid) IsBlocking(pos kernel.Position, nextDistance int) bool {
	p, ok := g.Packet(pos)
	if !ok {
		return false
	}
	switch p.state {
	case Pending, Missing:
		return true
	case Willing, Assigned:
		return p.distance >= nextDistance
	default:
		return false
	}
}

func (g *Grid) update(pos kernel.Position, apply func(p *Packet)) bool {
	i, ok := g.index[pos]
	if !ok {
		return false
	}
	apply(&g.packets[i])
	return true
}

func validateDimension(name string, value int) error {
	if value < 1 {
		return errs.NewValueIsOutOfRangeError(name, value, 1, math.MaxInt)
	}
	return nil
}

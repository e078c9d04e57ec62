package pathfinding

import (
	"fmt"

	"dronedelivery/internal/core/domain/model/kernel"
)

// Bearing is the shortest heading from one cell to another. Columns wrap, so the
// horizontal heading picks the shorter way around; rows never wrap.
type Bearing struct {
	vertical        kernel.Direction
	verticalCount   int
	horizontal      kernel.Direction
	horizontalCount int
}

// NewBearing computes the bearing from start to reach on a grid whose highest column
// index is maxColumn. When both ways around are equally long the bearing goes Right.
//
// Example:
//
//	b := pathfinding.NewBearing(kernel.MustNewPosition(12, 7), kernel.MustNewPosition(2, 2), 19)
//	b.String() // "D15 (10Up 5Left)"
func NewBearing(start kernel.Position, reach kernel.Position, maxColumn int) Bearing {
	b := Bearing{vertical: kernel.Stay, horizontal: kernel.Stay}

	switch {
	case reach.Row() < start.Row():
		b.vertical, b.verticalCount = kernel.Up, start.Row()-reach.Row()
	case reach.Row() > start.Row():
		b.vertical, b.verticalCount = kernel.Down, reach.Row()-start.Row()
	}

	var right, left int
	switch {
	case start.Column() < reach.Column():
		right = reach.Column() - start.Column()
		left = start.Column() + (maxColumn - reach.Column()) + 1
	case start.Column() > reach.Column():
		left = start.Column() - reach.Column()
		right = reach.Column() + (maxColumn - start.Column()) + 1
	default:
		return b
	}

	if right <= left {
		b.horizontal, b.horizontalCount = kernel.Right, right
	} else {
		b.horizontal, b.horizontalCount = kernel.Left, left
	}
	return b
}

// Vertical returns the row heading: Up, Down or Stay.
func (b Bearing) Vertical() kernel.Direction {
	return b.vertical
}

// VerticalCount returns the number of row moves.
func (b Bearing) VerticalCount() int {
	return b.verticalCount
}

// Horizontal returns the column heading: Left, Right or Stay.
func (b Bearing) Horizontal() kernel.Direction {
	return b.horizontal
}

// HorizontalOpposite returns the column heading going the long way around.
func (b Bearing) HorizontalOpposite() kernel.Direction {
	return b.horizontal.Opposite()
}

// HorizontalCount returns the number of column moves.
func (b Bearing) HorizontalCount() int {
	return b.horizontalCount
}

// Distance returns the length of the shortest unobstructed walk.
func (b Bearing) Distance() int {
	return b.verticalCount + b.horizontalCount
}

// String renders the bearing as "D15 (10Up 5Left)".
func (b Bearing) String() string {
	return fmt.Sprintf("D%d (%d%s %d%s)", b.Distance(), b.verticalCount, b.vertical, b.horizontalCount, b.horizontal)
}

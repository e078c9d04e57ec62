package kernel

import (
	"errors"
	"fmt"
	"math"

	"dronedelivery/internal/pkg/errs"
)

// Position is a cell on the delivery grid addressed by row and column.
// Position is an immutable value object and is comparable, so it can be used
// directly as a map key. Unlike most value objects in this package the zero value
// is meaningful: it is the top-left cell R0C0.
//
// Example:
//
//	pos, err := kernel.NewPosition(4, 16)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(pos) // Output: R4C16
type Position struct {
	row    int
	column int
}

// NewPosition creates a Position from non-negative coordinates.
//
// Parameters:
//   - row: zero-based row index (must be >= 0)
//   - column: zero-based column index (must be >= 0)
//
// Returns:
//   - Position: the validated position
//   - error: ValueIsOutOfRangeError when a coordinate is negative
//
// Example:
//
//	depot, err := kernel.NewPosition(4, 16)
//	if err != nil {
//	    return err
//	}
func NewPosition(row int, column int) (Position, error) {
	p := Position{}
	if err := errors.Join(p.setRow(row), p.setColumn(column)); err != nil {
		return Position{}, err
	}
	return p, nil
}

// MustNewPosition is like NewPosition but panics on invalid coordinates.
// It is meant for fixtures and for coordinates already checked against the grid.
func MustNewPosition(row int, column int) Position {
	p, err := NewPosition(row, column)
	if err != nil {
		panic(err)
	}
	return p
}

// Row returns the zero-based row index.
func (p Position) Row() int {
	return p.row
}

// Column returns the zero-based column index.
func (p Position) Column() int {
	return p.column
}

// IsEqual reports whether both positions address the same cell.
func (p Position) IsEqual(other Position) bool {
	return p == other
}

// String renders the position as "R{row}C{column}", the notation used in route dumps
// and diagnostics.
//
// Example:
//
//	kernel.MustNewPosition(12, 1).String() // "R12C1"
func (p Position) String() string {
	return fmt.Sprintf("R%dC%d", p.row, p.column)
}

func (p *Position) setRow(row int) error {
	if row < 0 {
		return errs.NewValueIsOutOfRangeError("row", row, 0, math.MaxInt)
	}
	p.row = row
	return nil
}

func (p *Position) setColumn(column int) error {
	if column < 0 {
		return errs.NewValueIsOutOfRangeError("column", column, 0, math.MaxInt)
	}
	p.column = column
	return nil
}

package kernel

import (
	"fmt"

	"dronedelivery/internal/pkg/errs"
)

// Direction is a single grid move. The integer value of each direction is the code
// written to the move log, so the constants must never be reordered.
//
//	Stay=0  Left=1  Up=2  Right=3  Down=4
type Direction int

const (
	// Stay keeps the drone on its cell for one tick.
	Stay Direction = iota
	// Left moves one column to the left, wrapping from column 0 to the last column.
	Left
	// Up moves one row towards row 0.
	Up
	// Right moves one column to the right, wrapping from the last column to column 0.
	Right
	// Down moves one row away from row 0.
	Down
)

func getDirectionStrings() map[Direction]string {
	return map[Direction]string{
		Stay:  "Stay",
		Left:  "Left",
		Up:    "Up",
		Right: "Right",
		Down:  "Down",
	}
}

// Validate checks that the direction is one of the five known moves.
//
// Returns:
//   - nil for Stay, Left, Up, Right and Down
//   - ValueIsInvalidError for any other value
func (d Direction) Validate() error {
	if _, ok := getDirectionStrings()[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("direction is invalid", fmt.Errorf("%d is not a valid direction", d))
	}
	return nil
}

// Code returns the move-log code of the direction.
func (d Direction) Code() int {
	return int(d)
}

// String returns the name of the direction, or "Unknown" for invalid values.
func (d Direction) String() string {
	if s, ok := getDirectionStrings()[d]; ok {
		return s
	}
	return "Unknown"
}

// Opposite returns the direction pointing the other way. Stay is its own opposite.
//
// Example:
//
//	kernel.Left.Opposite() // Right
//	kernel.Up.Opposite()   // Down
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	default:
		return Stay
	}
}

// IsHorizontal reports whether the direction moves along the column axis.
func (d Direction) IsHorizontal() bool {
	return d == Left || d == Right
}

// IsVertical reports whether the direction moves along the row axis.
func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

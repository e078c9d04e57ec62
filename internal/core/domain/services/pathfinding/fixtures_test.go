package pathfinding_test

import (
	"strings"
	"testing"

	"dronedelivery/internal/core/domain/model/grid"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/route"

	"github.com/stretchr/testify/require"
)

func pos(row, column int) kernel.Position {
	return kernel.MustNewPosition(row, column)
}

var depot = kernel.MustNewPosition(4, 16)

// exampleGrid is the 20x20 sample delivery: five packets sorted by row then column.
func exampleGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.NewGrid(20, 20, depot, []kernel.Position{
		pos(2, 2), pos(8, 12), pos(12, 1), pos(14, 17), pos(16, 7),
	})
	require.NoError(t, err)
	return g
}

func limits(t *testing.T, maxCapacity int) kernel.Limits {
	t.Helper()
	l, err := kernel.NewLimits(maxCapacity, 10, 60)
	require.NoError(t, err)
	return l
}

func stepsString(r *route.Route) string {
	steps := r.Steps()
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, ";")
}

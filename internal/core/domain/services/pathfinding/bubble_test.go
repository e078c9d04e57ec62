package pathfinding_test

import (
	"testing"

	"dronedelivery/internal/core/domain/model/grid"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/services/pathfinding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_MapBubbleRoute(t *testing.T) {
	free := pathfinding.Policy{Capture: pathfinding.CaptureFree}

	testCases := []struct {
		name        string
		maxCapacity int
		reach       kernel.Position
		expected    string
		pending     int
	}{
		{
			name:        "from_depot_capacity_two",
			maxCapacity: 2,
			reach:       depot,
			expected: "Start:R4C16 Reach:R12C1 Steps:R3C16(Up);R2C16(Up);R2C17(Right);R2C18(Right);" +
				"R2C19(Right);R2C0(Right);R2C1(Right);R2C2(Right);R3C2(Down);R4C2(Down);R5C2(Down);" +
				"R6C2(Down);R7C2(Down);R8C2(Down);R9C2(Down);R10C2(Down);R11C2(Down);R12C2(Down);" +
				"R12C1(Left) Packets:R2C2(8);R12C1(19) MaxCapacity:2 Distance:19",
			pending: 3,
		},
		{
			name:        "from_depot_capacity_four",
			maxCapacity: 4,
			reach:       depot,
			expected: "Start:R4C16 Reach:R14C17 Steps:R3C16(Up);R2C16(Up);R2C17(Right);R2C18(Right);" +
				"R2C19(Right);R2C0(Right);R2C1(Right);R2C2(Right);R3C2(Down);R4C2(Down);R5C2(Down);" +
				"R6C2(Down);R7C2(Down);R8C2(Down);R9C2(Down);R10C2(Down);R11C2(Down);R12C2(Down);" +
				"R12C1(Left);R13C1(Down);R13C0(Left);R13C19(Left);R13C18(Left);R14C18(Down);" +
				"R14C17(Left) Packets:R2C2(8);R12C1(19);R14C17(25) MaxCapacity:3 Distance:25",
			pending: 2,
		},
		{
			name:        "through_a_first_target",
			maxCapacity: 4,
			reach:       pos(8, 12),
			expected: "Start:R4C16 Reach:R12C1 Steps:R5C16(Down);R6C16(Down);R7C16(Down);R7C15(Left);" +
				"R7C14(Left);R7C13(Left);R8C13(Down);R8C12(Left);R9C12(Down);R9C13(Right);R10C13(Down);" +
				"R11C13(Down);R11C14(Right);R11C15(Right);R11C16(Right);R12C16(Down);R13C16(Down);" +
				"R14C16(Down);R14C17(Right);R13C17(Up);R13C18(Right);R13C19(Right);R13C0(Right);" +
				"R12C0(Up);R12C1(Right) Packets:R8C12(8);R14C17(19);R12C1(25) MaxCapacity:3 Distance:25",
			pending: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given
			g := exampleGrid(t)
			p, err := pathfinding.NewPath(g, limits(t, tc.maxCapacity), depot, tc.reach)
			require.NoError(t, err)

			// When
			r, err := p.MapBubbleRoute(free)

			// Then
			require.NoError(t, err)
			assert.Equal(t, tc.expected, r.String())
			assert.Equal(t, tc.pending, g.Count(grid.Pending), "rejected legs are released")
			assert.Equal(t, 5-tc.pending, g.Count(grid.Assigned))
		})
	}
}

func TestPath_MapBubbleRoute_NothingToCapture(t *testing.T) {
	// Given
	g := exampleGrid(t)
	for _, packet := range g.Packets() {
		g.SetState(packet.Position(), grid.Delivered)
	}
	p, err := pathfinding.NewPath(g, limits(t, 2), depot, depot)
	require.NoError(t, err)

	// When
	r, err := p.MapBubbleRoute(pathfinding.DefaultFallback()...)

	// Then
	require.ErrorIs(t, err, pathfinding.ErrNoRoute)
	assert.Nil(t, r)
}

package pathfinding_test

import (
	"testing"

	"dronedelivery/internal/core/domain/model/grid"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/services/pathfinding"
	"dronedelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPath(t *testing.T) {
	g := exampleGrid(t)

	t.Run("valid", func(t *testing.T) {
		p, err := pathfinding.NewPath(g, limits(t, 4), depot, pos(16, 7))

		require.NoError(t, err)
		assert.Equal(t, 21, p.Distance())
		assert.Equal(t, depot, p.Start())
		assert.Equal(t, pos(16, 7), p.Reach())
	})

	t.Run("reach_outside_grid", func(t *testing.T) {
		_, err := pathfinding.NewPath(g, limits(t, 4), depot, pos(20, 7))
		require.ErrorIs(t, err, grid.ErrPositionIsOutOfGrid)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing_grid", func(t *testing.T) {
		_, err := pathfinding.NewPath(nil, limits(t, 4), depot, depot)
		require.Error(t, err)
	})
}

func TestPath_ClosestPendingPath(t *testing.T) {
	// Given
	g := exampleGrid(t)
	p, err := pathfinding.NewPath(g, limits(t, 4), depot, depot)
	require.NoError(t, err)

	t.Run("closest", func(t *testing.T) {
		closest, err := p.ClosestPendingPath(pos(8, 7))

		require.NoError(t, err)
		assert.Equal(t, pos(8, 12), closest.Reach())
		assert.Equal(t, 5, closest.Distance())
	})

	t.Run("ties_go_to_registry_order", func(t *testing.T) {
		closest, err := p.ClosestPendingPath(depot)

		require.NoError(t, err)
		assert.Equal(t, pos(2, 2), closest.Reach())
		assert.Equal(t, 8, closest.Distance())
	})

	t.Run("farthest", func(t *testing.T) {
		farthest, err := p.FarthestPendingPath(depot)

		require.NoError(t, err)
		assert.Equal(t, pos(16, 7), farthest.Reach())
		assert.Equal(t, 21, farthest.Distance())
	})
}

func TestPath_ClosestPendingPath_NonePending(t *testing.T) {
	g, err := grid.NewGrid(3, 3, pos(0, 0), []kernel.Position{pos(1, 1)})
	require.NoError(t, err)
	g.SetState(pos(1, 1), grid.Delivered)
	p, err := pathfinding.NewPath(g, limits(t, 2), pos(0, 0), pos(0, 0))
	require.NoError(t, err)

	_, err = p.ClosestPendingPath(pos(0, 0))

	require.ErrorIs(t, err, pathfinding.ErrNoPendingPacket)
}

func TestPath_MapRoute_Policies(t *testing.T) {
	testCases := []struct {
		name     string
		policy   pathfinding.Policy
		expected string
	}{
		{
			name:   "route",
			policy: pathfinding.Policy{Capture: pathfinding.CaptureRoute},
			expected: "Start:R4C16 Reach:R16C7 Steps:R5C16(Down);R6C16(Down);R7C16(Down);R8C16(Down);" +
				"R8C15(Left);R8C14(Left);R8C13(Left);R8C12(Left);R9C12(Down);R10C12(Down);R11C12(Down);" +
				"R12C12(Down);R13C12(Down);R14C12(Down);R15C12(Down);R16C12(Down);R16C11(Left);R16C10(Left);" +
				"R16C9(Left);R16C8(Left);R16C7(Left) Packets:R8C12(8);R16C7(21) MaxCapacity:3 Distance:21",
		},
		{
			name:   "route_alternative",
			policy: pathfinding.Policy{Capture: pathfinding.CaptureRoute, Alternative: true},
			expected: "Start:R4C16 Reach:R16C7 Steps:R4C15(Left);R4C14(Left);R4C13(Left);R4C12(Left);" +
				"R5C12(Down);R6C12(Down);R7C12(Down);R8C12(Down);R8C11(Left);R8C10(Left);R8C9(Left);" +
				"R8C8(Left);R8C7(Left);R9C7(Down);R10C7(Down);R11C7(Down);R12C7(Down);R13C7(Down);" +
				"R14C7(Down);R15C7(Down);R16C7(Down) Packets:R8C12(8);R16C7(21) MaxCapacity:3 Distance:21",
		},
		{
			name:   "route_opposite",
			policy: pathfinding.Policy{Capture: pathfinding.CaptureRoute, Opposite: true},
			expected: "Start:R4C16 Reach:R16C7 Steps:R4C17(Right);R5C17(Down);R6C17(Down);R7C17(Down);" +
				"R8C17(Down);R9C17(Down);R10C17(Down);R11C17(Down);R12C17(Down);R13C17(Down);R14C17(Down);" +
				"R15C17(Down);R16C17(Down);R16C18(Right);R16C19(Right);R16C0(Right);R16C1(Right);" +
				"R16C2(Right);R16C3(Right);R16C4(Right);R16C5(Right);R16C6(Right);R16C7(Right) " +
				"Packets:R14C17(11);R16C7(23) MaxCapacity:3 Distance:23",
		},
		{
			name:   "free",
			policy: pathfinding.Policy{Capture: pathfinding.CaptureFree},
			expected: "Start:R4C16 Reach:R16C7 Steps:R5C16(Down);R6C16(Down);R7C16(Down);R7C15(Left);" +
				"R7C14(Left);R7C13(Left);R8C13(Down);R9C13(Down);R10C13(Down);R11C13(Down);R12C13(Down);" +
				"R13C13(Down);R14C13(Down);R15C13(Down);R16C13(Down);R16C12(Left);R16C11(Left);" +
				"R16C10(Left);R16C9(Left);R16C8(Left);R16C7(Left) Packets:R16C7(21) MaxCapacity:3 Distance:21",
		},
		{
			name:   "free_alternative",
			policy: pathfinding.Policy{Capture: pathfinding.CaptureFree, Alternative: true},
			expected: "Start:R4C16 Reach:R16C7 Steps:R4C15(Left);R4C14(Left);R4C13(Left);R5C13(Down);" +
				"R6C13(Down);R7C13(Down);R7C12(Left);R7C11(Left);R7C10(Left);R7C9(Left);R7C8(Left);" +
				"R7C7(Left);R8C7(Down);R9C7(Down);R10C7(Down);R11C7(Down);R12C7(Down);R13C7(Down);" +
				"R14C7(Down);R15C7(Down);R16C7(Down) Packets:R16C7(21) MaxCapacity:3 Distance:21",
		},
		{
			name:   "free_opposite",
			policy: pathfinding.Policy{Capture: pathfinding.CaptureFree, Opposite: true},
			expected: "Start:R4C16 Reach:R16C7 Steps:R5C16(Down);R6C16(Down);R7C16(Down);R8C16(Down);" +
				"R9C16(Down);R10C16(Down);R11C16(Down);R12C16(Down);R13C16(Down);R14C16(Down);" +
				"R15C16(Down);R16C16(Down);R16C17(Right);R16C18(Right);R16C19(Right);R16C0(Right);" +
				"R16C1(Right);R16C2(Right);R16C3(Right);R16C4(Right);R16C5(Right);R16C6(Right);" +
				"R16C7(Right) Packets:R16C7(23) MaxCapacity:3 Distance:23",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given
			g := exampleGrid(t)
			p, err := pathfinding.NewPath(g, limits(t, 4), depot, pos(16, 7))
			require.NoError(t, err)

			// When
			r, err := p.MapRoute(tc.policy)

			// Then
			require.NoError(t, err)
			assert.Equal(t, tc.expected, r.String())
			for _, packet := range r.Packets() {
				assert.Equal(t, grid.Assigned, packet.State())
			}
		})
	}
}

func TestPath_MapRoute_IsRepeatable(t *testing.T) {
	// Given
	g := exampleGrid(t)
	p, err := pathfinding.NewPath(g, limits(t, 4), depot, pos(16, 7))
	require.NoError(t, err)
	first, err := p.MapRoute(pathfinding.Policy{Capture: pathfinding.CaptureFree})
	require.NoError(t, err)

	// When
	second, err := p.MapRoute(pathfinding.Policy{Capture: pathfinding.CaptureFree})

	// Then
	require.NoError(t, err)
	assert.Equal(t, stepsString(first), stepsString(second))
	assert.Equal(t, 21, second.Distance())
	assert.Zero(t, second.PacketsCount(), "the target is already assigned")
}

func TestPath_MapRoute_CapacityExceeded(t *testing.T) {
	// Given
	g := exampleGrid(t)
	p, err := pathfinding.NewPath(g, limits(t, 1), depot, pos(16, 7))
	require.NoError(t, err)

	// When
	_, err = p.MapRoute(pathfinding.Policy{Capture: pathfinding.CaptureRoute})

	// Then
	require.ErrorIs(t, err, pathfinding.ErrNoRoute)
	require.ErrorIs(t, err, pathfinding.ErrCapacityExceeded)
	assert.Equal(t, 5, g.Count(grid.Pending), "a failed search releases its packets")
}

func TestPath_MapRoute_StartEqualsReach(t *testing.T) {
	p, err := pathfinding.NewPath(exampleGrid(t), limits(t, 2), depot, depot)
	require.NoError(t, err)

	r, err := p.MapRoute()

	require.NoError(t, err)
	assert.True(t, r.IsEmpty())
}

package pathfinding

import (
	"fmt"

	"dronedelivery/internal/core/domain/model/grid"
	"dronedelivery/internal/core/domain/model/route"
)

// MapBubbleRoute builds a multi-stop itinerary.
//
// When start and reach differ the itinerary first goes to reach. It then keeps
// hopping to the closest Pending packet from its current end while the drone has
// room left, as long as the longer itinerary stays within the autonomy of the
// heavier load. The first leg that cannot be found or does not fit ends the
// itinerary.
//
// Returns ErrNoRoute when no packet could be captured; the grid is left untouched
// in that case. Otherwise every captured packet is Assigned.
func (p *Path) MapBubbleRoute(policies ...Policy) (*route.Route, error) {
	itinerary, err := route.New(p.grid, p.limits, p.start)
	if err != nil {
		return nil, err
	}

	if p.start != p.reach {
		first, err := p.mapWilling(policies)
		if err != nil {
			return nil, err
		}
		itinerary = first
	}

	for itinerary.PacketsCount() < p.limits.MaxCapacity() && p.grid.Count(grid.Pending) > 0 {
		next, err := p.ClosestPendingPath(itinerary.Reach())
		if err != nil {
			break
		}
		leg, err := next.leg(p.offset + itinerary.Distance()).mapWilling(policies)
		if err != nil {
			break
		}
		if leg.PacketsCount() == 0 {
			break
		}

		count := itinerary.PacketsCount() + leg.PacketsCount()
		distance := itinerary.Distance() + leg.Distance()
		if distance > p.limits.Autonomy(count) || count > p.limits.MaxCapacity() {
			leg.ResetWilling()
			break
		}
		if err := itinerary.AddRoute(leg); err != nil {
			leg.ResetWilling()
			itinerary.Reset()
			return nil, fmt.Errorf("merging leg to %s: %w", next.Reach(), err)
		}
	}

	if itinerary.PacketsCount() == 0 {
		itinerary.Reset()
		return nil, fmt.Errorf("%w from %s: no packet captured", ErrNoRoute, p.start)
	}

	itinerary.AssignWilling()
	return itinerary, nil
}

package pathfinding

import (
	"dronedelivery/internal/core/domain/model/grid"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/route"
)

type candidate struct {
	position  kernel.Position
	direction kernel.Direction
}

var searchOrder = []kernel.Direction{kernel.Up, kernel.Down, kernel.Left, kernel.Right}

// search walks from start to reach one step at a time under policy. On failure every
// packet the walk captured is released.
func (p *Path) search(policy Policy) (*route.Route, error) {
	r, err := route.New(p.grid, p.limits, p.start)
	if err != nil {
		return nil, err
	}

	current := policy
	budget := p.stepBudget()
	for r.Reach() != p.reach {
		if r.MovesCount() >= budget {
			r.Reset()
			return nil, ErrSearchExhausted
		}

		steps, err := p.nextSteps(r, current)
		if err != nil {
			r.Reset()
			return nil, err
		}

		for _, step := range steps {
			r.AddStep(step)
			if current.Capture == CaptureRoute && r.PacketsCount() == r.MaxCapacity() {
				current = current.saturated()
			} else if r.PacketsCount() > r.MaxCapacity() {
				r.Reset()
				return nil, ErrCapacityExceeded
			}
		}
	}

	return r, nil
}

func (p *Path) nextSteps(r *route.Route, policy Policy) ([]route.Step, error) {
	tip := r.Reach()
	nextDistance := p.nextDistance(r)

	candidates, direct, ok := p.candidates(tip, policy)
	if ok {
		return []route.Step{p.step(direct, nextDistance)}, nil
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidate
	}

	if selected := p.selectByCapture(candidates, policy.Capture, nextDistance); len(selected) > 0 {
		if !policy.Pure && policy.Alternative && len(selected) >= 2 {
			return []route.Step{p.step(selected[1], nextDistance)}, nil
		}
		return []route.Step{p.step(selected[0], nextDistance)}, nil
	}

	if policy.Dodge && p.blockedByClaim(candidates, nextDistance) {
		if detour, found := p.dodge(tip, candidates, nextDistance); found {
			return detour, nil
		}
		return []route.Step{route.NewWaitStep(p.start)}, nil
	}

	switch {
	case policy.Pure:
		return nil, ErrNoCandidate
	case policy.Wait:
		return []route.Step{route.NewWaitStep(p.start)}, nil
	default:
		return []route.Step{p.step(candidates[0], nextDistance)}, nil
	}
}

// candidates lists the bearing-compatible neighbours of tip. When reach is one of the
// neighbours it is returned on its own.
func (p *Path) candidates(tip kernel.Position, policy Policy) ([]candidate, candidate, bool) {
	horizontal := p.bearing.Horizontal()
	if policy.Opposite {
		horizontal = p.bearing.HorizontalOpposite()
	}

	var result []candidate
	for _, dir := range searchOrder {
		if dir.IsVertical() && tip.Row() == p.reach.Row() {
			continue
		}
		if dir.IsHorizontal() && tip.Column() == p.reach.Column() {
			continue
		}

		next, ok := p.grid.Neighbour(tip, dir)
		if !ok || next == p.start {
			continue
		}
		if next == p.reach {
			return nil, candidate{position: next, direction: dir}, true
		}
		if dir == p.bearing.Vertical() || dir == horizontal {
			result = append(result, candidate{position: next, direction: dir})
		}
	}
	return result, candidate{}, false
}

func (p *Path) selectByCapture(candidates []candidate, capture Capture, nextDistance int) []candidate {
	passable := func(c candidate) bool { return !p.grid.IsBlocking(c.position, nextDistance) }

	switch capture {
	case CaptureRoute:
		return firstNonEmpty(
			filter(candidates, func(c candidate) bool {
				packet, ok := p.grid.Packet(c.position)
				return ok && packet.State() == grid.Pending
			}),
			filter(candidates, func(c candidate) bool { return p.grid.IsLane(c.position) && passable(c) }),
			filter(candidates, func(c candidate) bool { return p.grid.IsStartLane(c.position) && passable(c) }),
		)
	case CaptureFree:
		return firstNonEmpty(
			filter(candidates, func(c candidate) bool { return p.grid.IsFree(c.position) }),
			filter(candidates, passable),
		)
	default:
		return filter(candidates, passable)
	}
}

func (p *Path) blockedByClaim(candidates []candidate, nextDistance int) bool {
	for _, c := range candidates {
		if p.grid.WillBreakDelivery(c.position, nextDistance) {
			return true
		}
	}
	return false
}

func (p *Path) nextDistance(r *route.Route) int {
	return p.offset + r.Distance() + 1
}

func (p *Path) step(c candidate, nextDistance int) route.Step {
	return route.NewStep(c.position, c.direction, p.classify(c.position, nextDistance))
}

func (p *Path) classify(pos kernel.Position, nextDistance int) route.Classification {
	return route.Classification{
		Packet:         p.grid.IsPacket(pos),
		Lane:           p.grid.IsLane(pos),
		Free:           p.grid.IsFree(pos),
		StartLane:      p.grid.IsStartLane(pos),
		BreaksDelivery: p.grid.WillBreakDelivery(pos, nextDistance),
	}
}

func filter(candidates []candidate, keep func(c candidate) bool) []candidate {
	var kept []candidate
	for _, c := range candidates {
		if keep(c) {
			kept = append(kept, c)
		}
	}
	return kept
}

func firstNonEmpty(lists ...[]candidate) []candidate {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}

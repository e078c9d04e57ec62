package pathfinding

import (
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/route"
)

// dodgeLookahead is the longest detour, in moves after the first side step, that
// dodge explores.
const dodgeLookahead = 4

type detourNode struct {
	position kernel.Position
	depth    int
	parent   int
	dir      kernel.Direction
}

// dodge looks for a short detour around the first candidate blocked by a claimed
// packet. The detour must rejoin the walk on a cell the blocked candidate leads to
// and must be strictly cheaper than waiting for the owner to pass.
func (p *Path) dodge(tip kernel.Position, candidates []candidate, nextDistance int) ([]route.Step, bool) {
	var blocker candidate
	for _, c := range candidates {
		if p.grid.WillBreakDelivery(c.position, nextDistance) {
			blocker = c
			break
		}
	}
	packet, _ := p.grid.Packet(blocker.position)
	waitTicks := packet.Distance() - nextDistance + 1

	targets := p.rejoinCells(blocker.position)
	if len(targets) == 0 {
		return nil, false
	}

	var best []route.Step
	bestCost := waitTicks + 2
	for _, dir := range searchOrder {
		side, ok := p.grid.Neighbour(tip, dir)
		if !ok || side == blocker.position || side == p.start || p.grid.IsBlocking(side, nextDistance) {
			continue
		}
		tail, found := p.detour(side, blocker.position, targets, nextDistance+1)
		if !found || 1+len(tail) >= bestCost {
			continue
		}
		best = append([]route.Step{p.step(candidate{position: side, direction: dir}, nextDistance)}, tail...)
		bestCost = len(best)
	}

	return best, best != nil
}

// rejoinCells returns the cells a walk through blocked would continue to.
func (p *Path) rejoinCells(blocked kernel.Position) map[kernel.Position]bool {
	bearing := NewBearing(blocked, p.reach, p.grid.Columns())
	targets := make(map[kernel.Position]bool)
	for _, dir := range searchOrder {
		if dir != bearing.Vertical() && dir != bearing.Horizontal() {
			continue
		}
		if next, ok := p.grid.Neighbour(blocked, dir); ok && next != p.start {
			targets[next] = true
		}
	}
	return targets
}

// detour runs a breadth-first search from side to any target over cells that do not
// block at the tick they would be entered.
func (p *Path) detour(
	side kernel.Position,
	blocked kernel.Position,
	targets map[kernel.Position]bool,
	firstDistance int,
) ([]route.Step, bool) {
	if targets[side] {
		return nil, true
	}

	nodes := []detourNode{{position: side, parent: -1}}
	visited := map[kernel.Position]bool{side: true}
	for i := 0; i < len(nodes); i++ {
		node := nodes[i]
		if node.depth == dodgeLookahead {
			continue
		}
		for _, dir := range searchOrder {
			next, ok := p.grid.Neighbour(node.position, dir)
			if !ok || visited[next] || next == blocked || next == p.start {
				continue
			}
			tick := firstDistance + node.depth
			if p.grid.IsBlocking(next, tick) {
				continue
			}
			visited[next] = true
			nodes = append(nodes, detourNode{position: next, depth: node.depth + 1, parent: i, dir: dir})
			if targets[next] {
				return p.unwind(nodes, len(nodes)-1, firstDistance), true
			}
		}
	}
	return nil, false
}

func (p *Path) unwind(nodes []detourNode, last int, firstDistance int) []route.Step {
	steps := make([]route.Step, nodes[last].depth)
	for i := last; nodes[i].parent >= 0; i = nodes[i].parent {
		n := nodes[i]
		steps[n.depth-1] = p.step(candidate{position: n.position, direction: n.dir}, firstDistance+n.depth-1)
	}
	return steps
}

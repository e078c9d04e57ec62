package services

import (
	"fmt"

	"dronedelivery/internal/core/domain/model/grid"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/services/pathfinding"
)

// ShippingError describes a drone flying over a packet cell earlier than the tick
// at which that packet is expected to be delivered.
type ShippingError struct {
	DroneID  int
	Position kernel.Position
	Tick     int
	Packet   grid.Packet
}

// String renders the error the way it is written to diagnostics files.
func (e ShippingError) String() string {
	return fmt.Sprintf("drone %d: cell %s(%d); packet %s", e.DroneID, e.Position, e.Tick, e.Packet)
}

// Report aggregates planning diagnostics of a delivery.
type Report struct {
	Routes                int
	AverageDistance       float64
	AveragePackets        float64
	CapturedPackets       int
	AveragePacketDistance float64
	Duplicates            []kernel.Position
	ShippingErrors        []ShippingError
	Missing               int
	Packets               []grid.Packet

	// FarthestPending is the Pending packet most distant from the depot, set when
	// packets were left unplanned because no drone remained.
	FarthestPending         *kernel.Position
	FarthestPendingDistance int
}

// Report computes diagnostics over the assigned routes.
//
// Duplicates are coordinates captured by more than one route. A shipping error is a
// directional step over a captured packet cell happening before the tick recorded on
// that packet.
func (d *Delivery) Report() Report {
	rep := Report{Missing: d.grid.Count(grid.Missing)}

	totalDistance, totalPackets := 0, 0
	for _, dr := range d.drones {
		r := dr.Route()
		if r == nil {
			continue
		}
		rep.Routes++
		totalDistance += r.Distance()
		totalPackets += r.PacketsCount()
		rep.Packets = append(rep.Packets, r.Packets()...)
	}

	rep.CapturedPackets = len(rep.Packets)
	if rep.Routes > 0 {
		rep.AverageDistance = float64(totalDistance) / float64(rep.Routes)
		rep.AveragePackets = float64(totalPackets) / float64(rep.Routes)
	}

	captured := make(map[kernel.Position]grid.Packet, len(rep.Packets))
	counts := make(map[kernel.Position]int, len(rep.Packets))
	packetDistance := 0
	for _, p := range rep.Packets {
		packetDistance += p.Distance()
		if _, ok := captured[p.Position()]; !ok {
			captured[p.Position()] = p
		}
		counts[p.Position()]++
		if counts[p.Position()] == 2 {
			rep.Duplicates = append(rep.Duplicates, p.Position())
		}
	}
	if rep.CapturedPackets > 0 {
		rep.AveragePacketDistance = float64(packetDistance) / float64(rep.CapturedPackets)
	}

	for _, dr := range d.drones {
		r := dr.Route()
		if r == nil {
			continue
		}
		for i, step := range r.Steps() {
			if step.IsWait() {
				continue
			}
			packet, ok := captured[step.Position()]
			if !ok {
				continue
			}
			if tick := r.StepDistance(i); tick < packet.Distance() {
				rep.ShippingErrors = append(rep.ShippingErrors, ShippingError{
					DroneID:  dr.ID(),
					Position: step.Position(),
					Tick:     tick,
					Packet:   packet,
				})
			}
		}
	}

	d.reportFarthestPending(&rep)
	return rep
}

func (d *Delivery) reportFarthestPending(rep *Report) {
	depot := d.grid.Start()
	path, err := pathfinding.NewPath(d.grid, d.limits, depot, depot)
	if err != nil {
		return
	}
	farthest, err := path.FarthestPendingPath(depot)
	if err != nil {
		return
	}
	reach := farthest.Reach()
	rep.FarthestPending = &reach
	rep.FarthestPendingDistance = farthest.Distance()
}

// String renders the report summary lines.
func (r Report) String() string {
	summary := fmt.Sprintf(
		"route count: %d, average distance: %.2f, average packet count: %.2f\n"+
			"route packets count: %d, average distance: %.2f\n"+
			"duplicates: %d\nshipping errors: %d\nmissing: %d",
		r.Routes, r.AverageDistance, r.AveragePackets,
		r.CapturedPackets, r.AveragePacketDistance,
		len(r.Duplicates), len(r.ShippingErrors), r.Missing)
	if r.FarthestPending != nil {
		summary += fmt.Sprintf("\nfarthest pending: %s (%d)", r.FarthestPending, r.FarthestPendingDistance)
	}
	return summary
}

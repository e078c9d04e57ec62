package pathfinding

import (
	"fmt"
	"strings"

	"dronedelivery/internal/pkg/errs"
)

// Capture selects which cells a search prefers to step on.
type Capture int

const (
	// CaptureRoute prefers Pending packets, then packet lanes, then depot lanes.
	CaptureRoute Capture = iota
	// CaptureFree prefers cells that are neither packets nor lanes.
	CaptureFree
	// CaptureAll accepts any cell that does not block.
	CaptureAll
)

func getCaptureStrings() map[Capture]string {
	return map[Capture]string{
		CaptureRoute: "Route",
		CaptureFree:  "Free",
		CaptureAll:   "All",
	}
}

// String returns the name of the capture mode.
func (c Capture) String() string {
	if s, ok := getCaptureStrings()[c]; ok {
		return s
	}
	return "Unknown"
}

// Policy tunes a single search attempt.
type Policy struct {
	Capture Capture
	// Alternative takes the second preferred cell when there are several.
	Alternative bool
	// Opposite goes the long way around the column axis.
	Opposite bool
	// Wait inserts a wait step when no cell qualifies.
	Wait bool
	// Dodge looks for a short detour around packets claimed by other routes.
	Dodge bool
	// Pure disables every fallback: the search fails when no cell qualifies.
	Pure bool
}

// DefaultFallback returns the policies the orchestrator tries, in order.
func DefaultFallback() []Policy {
	return []Policy{
		{Capture: CaptureFree},
		{Capture: CaptureAll, Alternative: true},
		{Capture: CaptureFree, Wait: true},
		{Capture: CaptureAll, Alternative: true, Wait: true},
		{Capture: CaptureFree, Opposite: true},
		{Capture: CaptureAll, Alternative: true, Opposite: true},
		{Capture: CaptureFree, Opposite: true, Wait: true},
		{Capture: CaptureAll, Alternative: true, Opposite: true, Wait: true},
	}
}

// ParsePolicy reads a policy written as "Free|Alternative|Wait". The capture mode
// defaults to Route when the text names none.
func ParsePolicy(text string) (Policy, error) {
	p := Policy{Capture: CaptureRoute}
	for _, token := range strings.Split(text, "|") {
		switch strings.ToLower(strings.TrimSpace(token)) {
		case "route":
			p.Capture = CaptureRoute
		case "free":
			p.Capture = CaptureFree
		case "all":
			p.Capture = CaptureAll
		case "alternative", "alt":
			p.Alternative = true
		case "opposite", "opp":
			p.Opposite = true
		case "wait":
			p.Wait = true
		case "dodge":
			p.Dodge = true
		case "pure":
			p.Pure = true
		default:
			return Policy{}, errs.NewValueIsInvalidErrorWithCause("policy", fmt.Errorf("unknown flag %q", token))
		}
	}
	return p, nil
}

// String renders the policy as "All|Alternative|Wait".
func (p Policy) String() string {
	parts := []string{p.Capture.String()}
	for _, flag := range []struct {
		set  bool
		name string
	}{
		{p.Alternative, "Alternative"},
		{p.Opposite, "Opposite"},
		{p.Wait, "Wait"},
		{p.Dodge, "Dodge"},
		{p.Pure, "Pure"},
	} {
		if flag.set {
			parts = append(parts, flag.name)
		}
	}
	return strings.Join(parts, "|")
}

// saturated is the policy a Route search switches to once the drone is full: it
// must not capture anything else and must not fall back on packet cells.
func (p Policy) saturated() Policy {
	return Policy{Capture: CaptureFree, Pure: true}
}

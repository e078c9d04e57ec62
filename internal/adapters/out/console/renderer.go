// Package console prints simulation results for the planner CLI.
package console

import (
	"fmt"
	"io"
	"strings"

	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/core/domain/services"

	"github.com/fatih/color"
)

// Renderer writes colored summaries. Colors are dropped when noColor is set or the
// output is not a terminal.
type Renderer struct {
	out   io.Writer
	title *color.Color
	good  *color.Color
	warn  *color.Color
	bad   *color.Color
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, noColor bool) *Renderer {
	r := &Renderer{
		out:   out,
		title: color.New(color.FgCyan, color.Bold),
		good:  color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		bad:   color.New(color.FgRed),
	}
	if noColor {
		for _, c := range []*color.Color{r.title, r.good, r.warn, r.bad} {
			c.DisableColor()
		}
	}
	return r
}

// Result prints the score, the delivered and missing counts and the move log path.
func (r *Renderer) Result(res commands.SimulateResult) error {
	var sb strings.Builder

	sb.WriteString(r.title.Sprintf("score: %d", res.Score) + "\n")

	missing := r.good.Sprintf("missing: %d", len(res.Missing))
	if len(res.Missing) > 0 {
		cells := make([]string, 0, len(res.Missing))
		for _, p := range res.Missing {
			cells = append(cells, p.String())
		}
		missing = r.bad.Sprintf("missing: %d (%s)", len(res.Missing), strings.Join(cells, " "))
	}
	fmt.Fprintf(&sb, "delivered: %d, %s\n", res.Delivered, missing)

	if res.MoveLogPath != "" {
		fmt.Fprintf(&sb, "move log: %s\n", res.MoveLogPath)
	}

	_, err := io.WriteString(r.out, sb.String())
	return err
}

// Routes prints one mapped route per line.
func (r *Renderer) Routes(routes []string) error {
	var sb strings.Builder

	sb.WriteString(r.title.Sprint("routes") + "\n")
	for i, route := range routes {
		fmt.Fprintf(&sb, "%2d. %s\n", i+1, route)
	}

	_, err := io.WriteString(r.out, sb.String())
	return err
}

// Report prints the planning diagnostics. Duplicates are warnings, shipping errors
// and missing packets are failures.
func (r *Renderer) Report(rep services.Report) error {
	var sb strings.Builder

	sb.WriteString(r.title.Sprint("report") + "\n")
	for _, line := range strings.Split(rep.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "duplicates:") && len(rep.Duplicates) > 0:
			line = r.warn.Sprint(line)
		case strings.HasPrefix(line, "shipping errors:") && len(rep.ShippingErrors) > 0,
			strings.HasPrefix(line, "missing:") && rep.Missing > 0:
			line = r.bad.Sprint(line)
		}
		sb.WriteString(line + "\n")
	}

	for _, p := range rep.Duplicates {
		sb.WriteString(r.warn.Sprintf("  duplicate %s", p) + "\n")
	}
	for _, e := range rep.ShippingErrors {
		sb.WriteString(r.bad.Sprintf("  %s", e) + "\n")
	}

	_, err := io.WriteString(r.out, sb.String())
	return err
}

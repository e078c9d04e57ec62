package ports

import "context"

// MoveLogWriter exports the move log of a finished simulation, one line per drone.
type MoveLogWriter interface {
	// Write stores lines under a name derived from score and returns where they went.
	Write(ctx context.Context, score int, lines []string) (string, error)
}

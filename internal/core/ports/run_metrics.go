package ports

import "time"

// RunMetrics records the result of processed runs.
type RunMetrics interface {
	ObserveRun(status string, score int, delivered int, missing int, elapsed time.Duration)
}

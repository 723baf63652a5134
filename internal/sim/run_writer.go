package sim

import "defsim/internal/telemetry"

// RunWriter handles the run metadata row written once at start.
type RunWriter interface {
	WriteRun(telemetry.RunRow) error
}

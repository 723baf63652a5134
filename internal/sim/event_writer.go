package sim

import "defsim/internal/telemetry"

// EventWriter handles lifecycle event rows.
type EventWriter interface {
	WriteEvent(telemetry.EventRow) error
}

// Optional: event writers may support batch mode.
type batchEventWriter interface {
	WriteEvents([]telemetry.EventRow) error
}

package sim

import "defsim/internal/telemetry"

// DetectionWriter handles sensor detection rows.
type DetectionWriter interface {
	WriteDetection(telemetry.DetectionRow) error
}

// Optional: detection writers may support batch mode.
type batchDetectionWriter interface {
	WriteDetections([]telemetry.DetectionRow) error
}

package telemetry

import "time"

// DetectionRow describes one sensor-to-target detection in a tick.
type DetectionRow struct {
	RunID     string    `json:"run_id"`
	Tick      int       `json:"tick"`
	TimeS     float64   `json:"t_s"`
	SensorID  int       `json:"sensor_id"`
	TargetID  int       `json:"target_id"`
	DistanceM float64   `json:"distance_m"`
	Timestamp time.Time `json:"ts"`
}

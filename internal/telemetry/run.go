package telemetry

import "time"

// RunRow is written once when a simulation starts.
type RunRow struct {
	RunID     string    `json:"run_id"`
	Scenario  string    `json:"scenario"`
	DtS       float64   `json:"dt_s"`
	TMaxS     float64   `json:"t_max_s"`
	Seed      uint64    `json:"seed"`
	Sensors   int       `json:"sensors"`
	Launchers int       `json:"launchers"`
	Groups    int       `json:"groups"`
	StartedAt time.Time `json:"started_at"`
}

package telemetry

import "time"

// SimulationStateRow captures per-tick engine counters.
type SimulationStateRow struct {
	RunID         string    `json:"run_id"`
	Tick          int       `json:"tick"`
	TimeS         float64   `json:"t_s"`
	AliveTargets  int       `json:"alive_targets"`
	AliveMissiles int       `json:"alive_missiles"`
	PendingSpawns int       `json:"pending_spawns"`
	MissilesReady int       `json:"missiles_ready"`
	LedgerEntries int       `json:"ledger_entries"`
	Timestamp     time.Time `json:"ts"`
}

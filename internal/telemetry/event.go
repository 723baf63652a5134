package telemetry

import "time"

// Lifecycle event types.
const (
	EventSpawn        = "spawn"
	EventLaunch       = "launch"
	EventHit          = "hit"
	EventKilled       = "killed"
	EventBreakthrough = "breakthrough"
	EventSelfDestruct = "self_destruct"
	EventOutOfRegion  = "out_of_region"
)

// EventRow records one lifecycle event. MissileID, TargetID, and
// LauncherID are -1 when the event does not involve that entity kind.
type EventRow struct {
	RunID      string    `json:"run_id"`
	Tick       int       `json:"tick"`
	TimeS      float64   `json:"t_s"`
	Type       string    `json:"type"`
	TargetID   int       `json:"target_id"`
	MissileID  int       `json:"missile_id"`
	LauncherID int       `json:"launcher_id"`
	Detail     string    `json:"detail,omitempty"`
	Timestamp  time.Time `json:"ts"`
}

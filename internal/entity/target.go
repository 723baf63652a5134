// Incoming threat agents flying straight-line courses at the command post
package entity

import "defsim/internal/geom"

// Target status values. A target leaves "alive" exactly once; consumption
// is idempotent and never demoted.
const (
	TargetAlive         = "alive"
	TargetKilled        = "killed"
	TargetBrokenThrough = "broken_through"
	TargetOutOfRegion   = "out_of_region"
)

// Target is one incoming threat. Velocity is fixed at spawn: an XY
// course toward the command post at the group speed, altitude held.
type Target struct {
	ID            int
	GroupID       string
	Pos           geom.Vec3
	Vel           geom.Vec3
	Speed         float64
	Endurance     int
	MaxEndurance  int
	ArrivalRadius float64
	Dest          geom.Vec3 // command post position, ground level
	Status        string
	ConsumedTick  int // tick the target left "alive", -1 while alive
}

// NewTarget creates a target at pos heading toward dest. The course is
// computed in the XY plane; altitude stays at the spawn Z. A target
// spawned directly above dest heads +X.
func NewTarget(id int, groupID string, pos, dest geom.Vec3, speed, arrivalRadius float64, endurance int) *Target {
	dir := geom.V(dest.X-pos.X, dest.Y-pos.Y, 0).Unit()
	if dir.IsZero() {
		dir = geom.V(1, 0, 0)
	}
	return &Target{
		ID:            id,
		GroupID:       groupID,
		Pos:           pos,
		Vel:           dir.Scale(speed),
		Speed:         speed,
		Endurance:     endurance,
		MaxEndurance:  endurance,
		ArrivalRadius: arrivalRadius,
		Dest:          dest,
		Status:        TargetAlive,
		ConsumedTick:  -1,
	}
}

// Alive reports whether the target still participates in the simulation.
func (t *Target) Alive() bool { return t.Status == TargetAlive }

// Tick advances the target by dt and evaluates its disposition:
// killed > breakthrough > out-of-region > alive. Kills are applied by
// the engine's hit phase; Tick only honors an already-zero endurance.
func (t *Target) Tick(dt float64, w World, tick int) {
	if !t.Alive() {
		return
	}
	t.Pos = w.ClampZ(t.Pos.Add(t.Vel.Scale(dt)))

	switch {
	case t.Endurance <= 0:
		t.consume(TargetKilled, tick)
	case t.Pos.DistanceXY(t.Dest) <= t.ArrivalRadius:
		t.consume(TargetBrokenThrough, tick)
	case !w.ContainsXY(t.Pos):
		t.consume(TargetOutOfRegion, tick)
	}
}

// ApplyHits subtracts hits from endurance and kills the target when it
// reaches zero. Hitting an already-killed target is a no-op.
func (t *Target) ApplyHits(hits, tick int) {
	if hits <= 0 || t.Status == TargetKilled || t.Status == TargetOutOfRegion {
		return
	}
	t.Endurance -= hits
	if t.Endurance <= 0 {
		t.Endurance = 0
		// A breakthrough marked earlier in this same tick is promoted:
		// the hit wins.
		t.Status = TargetKilled
		if t.ConsumedTick < 0 {
			t.ConsumedTick = tick
		}
	}
}

// TimeToGo projects the time until the target enters the arrival radius
// along its current course, clamped at zero.
func (t *Target) TimeToGo() float64 {
	if t.Speed <= 0 {
		return infTgo
	}
	remaining := t.Pos.DistanceXY(t.Dest) - t.ArrivalRadius
	if remaining < 0 {
		remaining = 0
	}
	return remaining / t.Speed
}

const infTgo = 1e18

func (t *Target) consume(status string, tick int) {
	if !t.Alive() {
		return
	}
	t.Status = status
	t.ConsumedTick = tick
}

package entity

import (
	"math"

	"defsim/internal/geom"
)

// LaunchRecord is one entry of a launcher's firing history.
type LaunchRecord struct {
	Tick      int
	TimeS     float64
	MissileID int
	TargetID  int
}

// Launcher holds a missile magazine behind a per-launcher cooldown.
// Launchers start cooled: CooldownUntil is -Inf until the first shot.
type Launcher struct {
	ID            int
	Pos           geom.Vec3
	Magazine      int
	CooldownS     float64
	CooldownUntil float64
	History       []LaunchRecord
}

// NewLauncher creates a launcher with a full magazine, ready to fire.
func NewLauncher(id int, pos geom.Vec3, magazine int, cooldownS float64) *Launcher {
	return &Launcher{
		ID:            id,
		Pos:           pos,
		Magazine:      magazine,
		CooldownS:     cooldownS,
		CooldownUntil: math.Inf(-1),
	}
}

// CanFire reports whether the launcher has ordnance and is off cooldown.
func (l *Launcher) CanFire(now float64) bool {
	return l.Magazine > 0 && now >= l.CooldownUntil
}

// CooldownRemaining returns the time until the launcher may fire again.
func (l *Launcher) CooldownRemaining(now float64) float64 {
	if r := l.CooldownUntil - now; r > 0 {
		return r
	}
	return 0
}

// Launch fires a new missile at the target. The missile departs from
// the launcher position at the performance initial speed, pointed at
// the target (+X when collocated). The caller supplies the missile ID;
// the launcher decrements its magazine and starts its cooldown.
func (l *Launcher) Launch(missileID int, tgt *Target, perf MissilePerformance, now float64, tick int) *Missile {
	if !l.CanFire(now) {
		return nil
	}
	dir := tgt.Pos.Sub(l.Pos).Unit()
	if dir.IsZero() {
		dir = geom.V(1, 0, 0)
	}
	l.Magazine--
	l.CooldownUntil = now + l.CooldownS
	l.History = append(l.History, LaunchRecord{
		Tick:      tick,
		TimeS:     now,
		MissileID: missileID,
		TargetID:  tgt.ID,
	})
	return NewMissile(missileID, l.ID, tgt.ID, l.Pos, dir.Scale(perf.InitialSpeed), perf)
}

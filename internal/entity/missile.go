// Guided interceptor: true 3-D proportional navigation with saturation limits
package entity

import (
	"math"

	"defsim/internal/geom"
)

// Missile flight phases.
const (
	MissileCruise     = "cruise"
	MissileEndgame    = "endgame"
	MissileTerminated = "terminated"
)

// Missile end reasons, recorded on termination.
const (
	EndHit          = "hit"
	EndSelfDestruct = "self_destruct"
	EndTargetLost   = "target_lost"
	EndOutOfRegion  = "out_of_region"
	EndNumericFault = "numeric_fault"
)

// MissilePerformance bundles the kinematic and guidance limits of one
// missile. MaxTurnRate is radians per second; degrees exist only at the
// scenario boundary.
type MissilePerformance struct {
	InitialSpeed             float64
	MaxSpeed                 float64
	MaxAccel                 float64
	MaxTurnRate              float64
	InterceptRadius          float64
	N                        float64
	EndgameFactor            float64
	EndgameMissIncreaseTicks int
}

// Missile is one in-flight interceptor committed to a single target.
type Missile struct {
	ID         int
	LauncherID int
	TargetID   int
	Pos        geom.Vec3
	Vel        geom.Vec3
	Perf       MissilePerformance

	Phase              string
	EndReason          string
	PrevMissDist       float64
	MissIncreaseStreak int
}

// NewMissile creates a missile in cruise phase. A newborn missile skips
// the remainder of the tick it was launched in; the engine starts
// updating it the following tick.
func NewMissile(id, launcherID, targetID int, pos, vel geom.Vec3, perf MissilePerformance) *Missile {
	return &Missile{
		ID:           id,
		LauncherID:   launcherID,
		TargetID:     targetID,
		Pos:          pos,
		Vel:          vel,
		Perf:         perf,
		Phase:        MissileCruise,
		PrevMissDist: math.Inf(1),
	}
}

// Alive reports whether the missile is still flying.
func (m *Missile) Alive() bool { return m.Phase != MissileTerminated }

// Terminate ends the flight. Terminating twice keeps the first reason.
func (m *Missile) Terminate(reason string) {
	if m.Phase == MissileTerminated {
		return
	}
	m.Phase = MissileTerminated
	m.EndReason = reason
}

// Update runs the six-step per-tick missile update against the target
// state left by the target phase: guidance, acceleration saturation,
// velocity integration + speed clip, turn-rate-limited attitude update,
// position integration + Z clamp, then collision and self-destruct
// evaluation. targetGone means the target can no longer be hit: it was
// consumed in an earlier tick or left the region this tick (a target
// that broke through this tick can still be hit: the hit wins).
// Update reports whether the missile scored a hit this tick.
func (m *Missile) Update(dt float64, targetPos, targetVel geom.Vec3, targetGone bool, w World) bool {
	if !m.Alive() {
		return false
	}

	aCmd := m.guidance(targetPos, targetVel)
	a := geom.Sat(aCmd, m.Perf.MaxAccel)

	v := geom.Sat(m.Vel.Add(a.Scale(dt)), m.Perf.MaxSpeed)

	// The turn-rate clip runs after the speed clip so an over-commanded
	// turn cannot leak across it: |v| is preserved, only the direction
	// is limited.
	prevDir := m.Vel.Unit()
	newDir := v.Unit()
	if !prevDir.IsZero() && !newDir.IsZero() {
		dir := geom.RotateToward(prevDir, newDir, m.Perf.MaxTurnRate*dt)
		v = dir.Scale(v.Norm())
	}
	m.Vel = v

	m.Pos = w.ClampZ(m.Pos.Add(m.Vel.Scale(dt)))

	if !geom.Finite(m.Pos) || !geom.Finite(m.Vel) {
		m.Terminate(EndNumericFault)
		return false
	}

	return m.evaluate(targetPos, targetGone, w)
}

// guidance computes the commanded acceleration via true 3-D PN:
// a_cmd = N · |v_rel| · (Ω × r̂) with Ω = (r × v_rel) / (r · r).
func (m *Missile) guidance(targetPos, targetVel geom.Vec3) geom.Vec3 {
	r := targetPos.Sub(m.Pos)
	rr := r.Dot(r)
	if rr == 0 {
		return geom.Vec3{}
	}
	vRel := targetVel.Sub(m.Vel)
	omega := r.Cross(vRel).Scale(1 / rr)
	return omega.Cross(r.Unit()).Scale(m.Perf.N * vRel.Norm())
}

// evaluate applies the collision and self-destruct rules after movement.
func (m *Missile) evaluate(targetPos geom.Vec3, targetGone bool, w World) bool {
	if targetGone {
		m.Terminate(EndTargetLost)
		return false
	}

	d := m.Pos.DistanceTo(targetPos)
	hit := false
	switch {
	case d <= m.Perf.InterceptRadius:
		m.Terminate(EndHit)
		hit = true
	case d <= m.Perf.EndgameFactor*m.Perf.InterceptRadius:
		m.Phase = MissileEndgame
		if d > m.PrevMissDist {
			m.MissIncreaseStreak++
		} else {
			m.MissIncreaseStreak = 0
		}
		if m.MissIncreaseStreak >= m.Perf.EndgameMissIncreaseTicks {
			m.Terminate(EndSelfDestruct)
		}
	case !w.ContainsXY(m.Pos):
		m.Terminate(EndOutOfRegion)
	}

	m.PrevMissDist = d
	return hit
}

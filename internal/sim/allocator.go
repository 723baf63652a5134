// CommandPost allocator: target prioritization, assignment ledger, launcher selection
package sim

import (
	"sort"

	"defsim/internal/entity"
	"defsim/internal/geom"
)

// CommandPost holds the assignment ledger: which in-flight missiles are
// committed to which targets. Only in-flight missiles count; the ledger
// and launcher state are mutated exclusively in the command post phase.
type CommandPost struct {
	Pos           geom.Vec3 // ground level
	ArrivalRadius float64
	ledger        map[int]map[int]struct{} // target id -> missile ids
}

// NewCommandPost creates a command post with an empty ledger.
func NewCommandPost(pos geom.Vec3, arrivalRadius float64) *CommandPost {
	return &CommandPost{
		Pos:           pos,
		ArrivalRadius: arrivalRadius,
		ledger:        make(map[int]map[int]struct{}),
	}
}

// Assigned returns the number of in-flight missiles committed to a target.
func (cp *CommandPost) Assigned(targetID int) int { return len(cp.ledger[targetID]) }

// LedgerSize returns the total number of ledger entries.
func (cp *CommandPost) LedgerSize() int {
	n := 0
	for _, ms := range cp.ledger {
		n += len(ms)
	}
	return n
}

// Commit records a newly launched missile against its target.
func (cp *CommandPost) Commit(targetID, missileID int) {
	ms, ok := cp.ledger[targetID]
	if !ok {
		ms = make(map[int]struct{})
		cp.ledger[targetID] = ms
	}
	ms[missileID] = struct{}{}
}

// Maintain drops ledger entries for terminated missiles and for consumed
// targets (step A of the allocation procedure).
func (cp *CommandPost) Maintain(missileAlive func(missileID int) bool, targetAlive func(targetID int) bool) {
	for tid, ms := range cp.ledger {
		if !targetAlive(tid) {
			delete(cp.ledger, tid)
			continue
		}
		for mid := range ms {
			if !missileAlive(mid) {
				delete(ms, mid)
			}
		}
		if len(ms) == 0 {
			delete(cp.ledger, tid)
		}
	}
}

// Prioritize orders the detected, still-alive targets by ascending Tgo,
// breaking ties by XY distance to the command post, then by target ID.
func (cp *CommandPost) Prioritize(detected map[int]bool, targets []*entity.Target) []*entity.Target {
	var out []*entity.Target
	for _, t := range targets {
		if t.Alive() && detected[t.ID] {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		ta, tb := a.TimeToGo(), b.TimeToGo()
		if ta != tb {
			return ta < tb
		}
		da, db := a.Pos.DistanceXY(cp.Pos), b.Pos.DistanceXY(cp.Pos)
		if da != db {
			return da < db
		}
		return a.ID < b.ID
	})
	return out
}

// Deficit returns how many additional missiles target t demands given
// its assignment cap (step C). Never negative.
func (cp *CommandPost) Deficit(t *entity.Target, maxAssignable int) int {
	d := maxAssignable - cp.Assigned(t.ID)
	if d < 0 {
		return 0
	}
	return d
}

// SelectLauncher picks the launcher to fire at t (step D): among
// launchers that can fire now and have not fired this tick, shortest
// remaining cooldown first, then shortest 3-D distance to the target,
// then lowest launcher ID. Returns nil when none is eligible.
func (cp *CommandPost) SelectLauncher(launchers []*entity.Launcher, firedThisTick map[int]bool, t *entity.Target, now float64) *entity.Launcher {
	var best *entity.Launcher
	var bestCooldown, bestDist float64
	for _, l := range launchers {
		if firedThisTick[l.ID] || !l.CanFire(now) {
			continue
		}
		cooldown := l.CooldownRemaining(now)
		dist := l.Pos.DistanceTo(t.Pos)
		better := best == nil ||
			cooldown < bestCooldown ||
			(cooldown == bestCooldown && dist < bestDist) ||
			(cooldown == bestCooldown && dist == bestDist && l.ID < best.ID)
		if better {
			best, bestCooldown, bestDist = l, cooldown, dist
		}
	}
	return best
}

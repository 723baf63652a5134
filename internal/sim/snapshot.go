package sim

import "defsim/internal/entity"

// LauncherStatus is one launcher's state in a snapshot or summary.
type LauncherStatus struct {
	ID                int     `json:"id"`
	Magazine          int     `json:"magazine"`
	CooldownRemaining float64 `json:"cooldown_remaining_s"`
	Fired             int     `json:"fired"`
}

// Snapshot is a consistent view of the run taken between ticks, served
// by the admin server.
type Snapshot struct {
	RunID                string           `json:"run_id"`
	Scenario             string           `json:"scenario"`
	Tick                 int              `json:"tick"`
	TimeS                float64          `json:"t_s"`
	Done                 bool             `json:"done"`
	AliveTargets         int              `json:"alive_targets"`
	AliveMissiles        int              `json:"alive_missiles"`
	PendingSpawns        int              `json:"pending_spawns"`
	LedgerEntries        int              `json:"ledger_entries"`
	TargetsKilled        int              `json:"targets_killed"`
	TargetsBrokenThrough int              `json:"targets_broken_through"`
	TargetsOutOfRegion   int              `json:"targets_out_of_region"`
	Launchers            []LauncherStatus `json:"launchers"`
}

// Summary aggregates the outcome of a run. Valid at any point; final
// once Done is true.
type Summary struct {
	RunID                string           `json:"run_id"`
	Scenario             string           `json:"scenario"`
	Ticks                int              `json:"ticks"`
	TimeS                float64          `json:"t_s"`
	Done                 bool             `json:"done"`
	TargetsSpawned       int              `json:"targets_spawned"`
	TargetsKilled        int              `json:"targets_killed"`
	TargetsBrokenThrough int              `json:"targets_broken_through"`
	TargetsOutOfRegion   int              `json:"targets_out_of_region"`
	TargetsAlive         int              `json:"targets_alive"`
	MissilesFired        int              `json:"missiles_fired"`
	MissileHits          int              `json:"missile_hits"`
	MissileSelfDestructs int              `json:"missile_self_destructs"`
	MissilesTargetLost   int              `json:"missiles_target_lost"`
	MissilesOutOfRegion  int              `json:"missiles_out_of_region"`
	MissilesAirborne     int              `json:"missiles_airborne"`
	Launchers            []LauncherStatus `json:"launchers"`
}

// Snapshot returns the current run state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		RunID:         e.runID,
		Scenario:      e.sc.Meta.Name,
		Tick:          e.tick,
		TimeS:         float64(e.tick) * e.dt,
		Done:          e.done,
		AliveTargets:  e.aliveTargets(),
		AliveMissiles: e.aliveMissiles(),
		PendingSpawns: e.pendingSpawns,
		LedgerEntries: e.cp.LedgerSize(),
		Launchers:     e.launcherStatuses(),
	}
	for _, t := range e.targets {
		switch t.Status {
		case entity.TargetKilled:
			s.TargetsKilled++
		case entity.TargetBrokenThrough:
			s.TargetsBrokenThrough++
		case entity.TargetOutOfRegion:
			s.TargetsOutOfRegion++
		}
	}
	return s
}

// Summary returns the aggregated run outcome.
func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Summary{
		RunID:          e.runID,
		Scenario:       e.sc.Meta.Name,
		Ticks:          e.tick,
		TimeS:          float64(e.tick) * e.dt,
		Done:           e.done,
		TargetsSpawned: len(e.targets),
		MissilesFired:  len(e.missiles),
		Launchers:      e.launcherStatuses(),
	}
	for _, t := range e.targets {
		switch t.Status {
		case entity.TargetAlive:
			s.TargetsAlive++
		case entity.TargetKilled:
			s.TargetsKilled++
		case entity.TargetBrokenThrough:
			s.TargetsBrokenThrough++
		case entity.TargetOutOfRegion:
			s.TargetsOutOfRegion++
		}
	}
	for _, m := range e.missiles {
		if m.Alive() {
			s.MissilesAirborne++
			continue
		}
		switch m.EndReason {
		case entity.EndHit:
			s.MissileHits++
		case entity.EndSelfDestruct, entity.EndNumericFault:
			s.MissileSelfDestructs++
		case entity.EndTargetLost:
			s.MissilesTargetLost++
		case entity.EndOutOfRegion:
			s.MissilesOutOfRegion++
		}
	}
	return s
}

func (e *Engine) launcherStatuses() []LauncherStatus {
	now := float64(e.tick) * e.dt
	out := make([]LauncherStatus, 0, len(e.launchers))
	for _, l := range e.launchers {
		out = append(out, LauncherStatus{
			ID:                l.ID,
			Magazine:          l.Magazine,
			CooldownRemaining: l.CooldownRemaining(now),
			Fired:             len(l.History),
		})
	}
	return out
}

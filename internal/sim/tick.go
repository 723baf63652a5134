package sim

import (
	"context"
	"sort"

	"defsim/internal/entity"
	"defsim/internal/logging"
	"defsim/internal/telemetry"
)

// Run writes the run metadata row and steps the engine to completion.
// The loop is unpaced: it runs as fast as it can. Cancelling the
// context stops it between ticks.
func (e *Engine) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting engine",
		"run_id", e.runID,
		"scenario", e.sc.Meta.Name,
		"dt_s", e.dt,
		"t_max_ticks", e.tMaxTicks)

	e.writeRun()

	for !e.Done() {
		select {
		case <-ctx.Done():
			log.Info("engine cancelled", "tick", e.Tick())
			return
		default:
		}
		e.Step()
	}

	s := e.Summary()
	log.Info("engine finished",
		"ticks", s.Ticks,
		"t_s", s.TimeS,
		"targets_killed", s.TargetsKilled,
		"targets_broken_through", s.TargetsBrokenThrough,
		"missiles_fired", s.MissilesFired,
		"missile_hits", s.MissileHits)
}

// Step runs one full tick: spawn, target phase, missile phase, hit
// application, sensor phase, command post phase, then row emission and
// the termination check. All substeps complete before the tick advances.
func (e *Engine) Step() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done {
		return
	}

	now := float64(e.tick) * e.dt
	var events []telemetry.EventRow

	events = e.phaseSpawn(now, events)
	events = e.phaseTargets(now, events)
	hits, events := e.phaseMissiles(now, events)
	events = e.phaseApplyHits(now, hits, events)
	detRows, detected := e.phaseSensors(now)
	events = e.phaseCommandPost(now, detected, events)

	e.emit(now, detRows, events)

	e.tick++
	if e.tick >= e.tMaxTicks || (e.aliveTargets() == 0 && e.pendingSpawns == 0) {
		e.done = true
	}
}

// phaseSpawn materializes enemy groups scheduled for this tick.
func (e *Engine) phaseSpawn(now float64, events []telemetry.EventRow) []telemetry.EventRow {
	newborn := e.spawnTable[e.tick]
	if len(newborn) == 0 {
		return events
	}
	delete(e.spawnTable, e.tick)
	for _, t := range newborn {
		e.targets = append(e.targets, t)
		e.targetByID[t.ID] = t
		e.pendingSpawns--
		events = append(events, e.event(now, telemetry.EventSpawn, t.ID, -1, -1, t.GroupID))
	}
	sort.Slice(e.targets, func(i, j int) bool { return e.targets[i].ID < e.targets[j].ID })
	return events
}

// phaseTargets advances every alive target and records consumptions.
func (e *Engine) phaseTargets(now float64, events []telemetry.EventRow) []telemetry.EventRow {
	for _, t := range e.targets {
		if !t.Alive() {
			continue
		}
		t.Tick(e.dt, e.world, e.tick)
		switch t.Status {
		case entity.TargetBrokenThrough:
			events = append(events, e.event(now, telemetry.EventBreakthrough, t.ID, -1, -1, ""))
		case entity.TargetOutOfRegion:
			events = append(events, e.event(now, telemetry.EventOutOfRegion, t.ID, -1, -1, ""))
		}
	}
	return events
}

// hittable reports whether a missile may still score against its target
// this tick. A target that broke through in this tick's target phase is
// still hittable: the hit wins. Targets consumed in earlier ticks, or
// gone from the region, are not.
func hittable(t *entity.Target, tick int) bool {
	if t.Alive() {
		return true
	}
	return t.Status == entity.TargetBrokenThrough && t.ConsumedTick == tick
}

// phaseMissiles runs the six-step update for every alive missile and
// accumulates hit reports per target.
func (e *Engine) phaseMissiles(now float64, events []telemetry.EventRow) (map[int]int, []telemetry.EventRow) {
	hits := make(map[int]int)
	for _, m := range e.missiles {
		if !m.Alive() {
			continue
		}
		t := e.targetByID[m.TargetID]
		gone := !hittable(t, e.tick)
		if m.Update(e.dt, t.Pos, t.Vel, gone, e.world) {
			hits[m.TargetID]++
			events = append(events, e.event(now, telemetry.EventHit, m.TargetID, m.ID, m.LauncherID, ""))
			continue
		}
		if !m.Alive() {
			events = append(events, e.event(now, telemetry.EventSelfDestruct, m.TargetID, m.ID, m.LauncherID, m.EndReason))
		}
	}
	return hits, events
}

// phaseApplyHits subtracts accumulated hits in target-ID order, then
// terminates surviving missiles whose target was consumed this tick.
func (e *Engine) phaseApplyHits(now float64, hits map[int]int, events []telemetry.EventRow) []telemetry.EventRow {
	ids := make([]int, 0, len(hits))
	for id := range hits {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		t := e.targetByID[id]
		wasKilled := t.Status == entity.TargetKilled
		t.ApplyHits(hits[id], e.tick)
		if !wasKilled && t.Status == entity.TargetKilled {
			events = append(events, e.event(now, telemetry.EventKilled, t.ID, -1, -1, ""))
		}
	}

	for _, m := range e.missiles {
		if !m.Alive() {
			continue
		}
		t := e.targetByID[m.TargetID]
		if !t.Alive() && t.ConsumedTick == e.tick {
			m.Terminate(entity.EndTargetLost)
			events = append(events, e.event(now, telemetry.EventSelfDestruct, m.TargetID, m.ID, m.LauncherID, m.EndReason))
		}
	}
	return events
}

// phaseSensors unions detections across sensors. Detection reflects
// target positions after this tick's target phase.
func (e *Engine) phaseSensors(now float64) ([]telemetry.DetectionRow, map[int]bool) {
	var rows []telemetry.DetectionRow
	detected := make(map[int]bool)
	for _, s := range e.sensors {
		for _, c := range s.Detect(e.targets) {
			detected[c.TargetID] = true
			rows = append(rows, telemetry.DetectionRow{
				RunID:     e.runID,
				Tick:      e.tick,
				TimeS:     now,
				SensorID:  s.ID,
				TargetID:  c.TargetID,
				DistanceM: c.DistanceM,
				Timestamp: e.timestamp(now),
			})
		}
	}
	return rows, detected
}

// phaseCommandPost maintains the ledger, orders targets by priority,
// and fires launchers against the per-target deficits. Newly launched
// missiles join the alive set but only integrate from the next tick.
func (e *Engine) phaseCommandPost(now float64, detected map[int]bool, events []telemetry.EventRow) []telemetry.EventRow {
	e.cp.Maintain(
		func(mid int) bool { return e.missileByID[mid].Alive() },
		func(tid int) bool { return e.targetByID[tid].Alive() },
	)

	firedThisTick := make(map[int]bool)
	for _, t := range e.cp.Prioritize(detected, e.targets) {
		deficit := e.cp.Deficit(t, e.sc.MaxAssignable(t.Endurance))
		for i := 0; i < deficit; i++ {
			l := e.cp.SelectLauncher(e.launchers, firedThisTick, t, now)
			if l == nil {
				break
			}
			mid := e.nextMissileID
			e.nextMissileID++
			m := l.Launch(mid, t, e.perf, now, e.tick)
			firedThisTick[l.ID] = true
			e.missiles = append(e.missiles, m)
			e.missileByID[m.ID] = m
			e.cp.Commit(t.ID, m.ID)
			events = append(events, e.event(now, telemetry.EventLaunch, t.ID, m.ID, l.ID, ""))
		}
	}
	return events
}

func (e *Engine) event(now float64, typ string, targetID, missileID, launcherID int, detail string) telemetry.EventRow {
	return telemetry.EventRow{
		RunID:      e.runID,
		Tick:       e.tick,
		TimeS:      now,
		Type:       typ,
		TargetID:   targetID,
		MissileID:  missileID,
		LauncherID: launcherID,
		Detail:     detail,
		Timestamp:  e.timestamp(now),
	}
}

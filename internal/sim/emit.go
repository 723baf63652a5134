package sim

import (
	"log/slog"

	"defsim/internal/telemetry"
)

// writeRun emits the run metadata row once at start.
func (e *Engine) writeRun() {
	if e.sinks.Runs == nil {
		return
	}
	row := telemetry.RunRow{
		RunID:     e.runID,
		Scenario:  e.sc.Meta.Name,
		DtS:       e.sc.Sim.DtS,
		TMaxS:     e.sc.Sim.TMaxS,
		Seed:      e.sc.Sim.Seed,
		Sensors:   len(e.sensors),
		Launchers: len(e.launchers),
		Groups:    len(e.sc.EnemyForces.Groups),
		StartedAt: e.startedAt,
	}
	if err := e.sinks.Runs.WriteRun(row); err != nil {
		slog.Error("run row write failed", "err", err)
	}
}

// emit writes this tick's rows: per-entity telemetry (alive entities
// plus targets consumed this tick, ID ascending, targets before
// missiles), detections, events, and the state row.
func (e *Engine) emit(now float64, detRows []telemetry.DetectionRow, events []telemetry.EventRow) {
	if e.sinks.Telemetry != nil {
		batch := e.telemetryRows(now)
		if bw, ok := e.sinks.Telemetry.(batchWriter); ok {
			if err := bw.WriteBatch(batch); err != nil {
				slog.Error("telemetry batch write failed", "err", err)
			}
		} else {
			for _, row := range batch {
				if err := e.sinks.Telemetry.Write(row); err != nil {
					slog.Error("telemetry write failed", "kind", row.Kind, "entity_id", row.EntityID, "err", err)
				}
			}
		}
	}

	if len(detRows) > 0 && e.sinks.Detections != nil {
		if bw, ok := e.sinks.Detections.(batchDetectionWriter); ok {
			if err := bw.WriteDetections(detRows); err != nil {
				slog.Error("detection batch write failed", "err", err)
			}
		} else {
			for _, d := range detRows {
				if err := e.sinks.Detections.WriteDetection(d); err != nil {
					slog.Error("detection write failed", "err", err)
				}
			}
		}
	}

	if len(events) > 0 && e.sinks.Events != nil {
		if bw, ok := e.sinks.Events.(batchEventWriter); ok {
			if err := bw.WriteEvents(events); err != nil {
				slog.Error("event batch write failed", "err", err)
			}
		} else {
			for _, ev := range events {
				if err := e.sinks.Events.WriteEvent(ev); err != nil {
					slog.Error("event write failed", "type", ev.Type, "err", err)
				}
			}
		}
	}

	if e.sinks.State != nil {
		row := telemetry.SimulationStateRow{
			RunID:         e.runID,
			Tick:          e.tick,
			TimeS:         now,
			AliveTargets:  e.aliveTargets(),
			AliveMissiles: e.aliveMissiles(),
			PendingSpawns: e.pendingSpawns,
			MissilesReady: e.missilesReady(),
			LedgerEntries: e.cp.LedgerSize(),
			Timestamp:     e.timestamp(now),
		}
		if err := e.sinks.State.WriteState(row); err != nil {
			slog.Error("state write failed", "err", err)
		}
	}
}

func (e *Engine) telemetryRows(now float64) []telemetry.TelemetryRow {
	var rows []telemetry.TelemetryRow
	ts := e.timestamp(now)
	for _, t := range e.targets {
		if !t.Alive() && t.ConsumedTick != e.tick {
			continue
		}
		rows = append(rows, telemetry.TelemetryRow{
			RunID:     e.runID,
			Kind:      telemetry.KindTarget,
			EntityID:  t.ID,
			Tick:      e.tick,
			TimeS:     now,
			X:         t.Pos.X,
			Y:         t.Pos.Y,
			Z:         t.Pos.Z,
			VX:        t.Vel.X,
			VY:        t.Vel.Y,
			VZ:        t.Vel.Z,
			Status:    t.Status,
			Timestamp: ts,
		})
	}
	for _, m := range e.missiles {
		if !m.Alive() {
			continue
		}
		rows = append(rows, telemetry.TelemetryRow{
			RunID:     e.runID,
			Kind:      telemetry.KindMissile,
			EntityID:  m.ID,
			Tick:      e.tick,
			TimeS:     now,
			X:         m.Pos.X,
			Y:         m.Pos.Y,
			Z:         m.Pos.Z,
			VX:        m.Vel.X,
			VY:        m.Vel.Y,
			VZ:        m.Vel.Z,
			Status:    m.Phase,
			Timestamp: ts,
		})
	}
	return rows
}

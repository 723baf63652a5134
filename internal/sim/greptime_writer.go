package sim

import (
	"context"
	"log/slog"
	"strconv"

	"defsim/internal/telemetry"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// GreptimeDBWriter writes rows to GreptimeDB via the ingester client.
// Integer identities are stored as string tags and counters as double
// fields, matching the column types the ingester supports. GreptimeDB
// auto-creates tables on first write, using the column types supplied
// here.
type GreptimeDBWriter struct {
	client     *greptime.Client
	db         string
	teleTable  string
	detTable   string
	eventTable string
	stateTable string
}

// NewGreptimeDBWriter creates a GreptimeDB writer. detTable, eventTable,
// and stateTable may be empty to skip those row kinds.
func NewGreptimeDBWriter(endpoint, database, teleTable, detTable, eventTable, stateTable string) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(endpoint).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	if teleTable == "" {
		teleTable = telemetry.TelemetryTableName
	}

	return &GreptimeDBWriter{
		client:     client,
		db:         database,
		teleTable:  teleTable,
		detTable:   detTable,
		eventTable: eventTable,
		stateTable: stateTable,
	}, nil
}

// Write inserts a single telemetry row.
func (w *GreptimeDBWriter) Write(row telemetry.TelemetryRow) error {
	return w.WriteBatch([]telemetry.TelemetryRow{row})
}

// WriteBatch inserts multiple telemetry rows.
func (w *GreptimeDBWriter) WriteBatch(rows []telemetry.TelemetryRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.teleTable)
	if err != nil {
		return err
	}
	if err := addColumns(tbl,
		tagCol{"run_id", types.STRING},
		tagCol{"kind", types.STRING},
		tagCol{"entity_id", types.STRING},
	); err != nil {
		return err
	}
	if err := addFieldColumns(tbl,
		"tick", "t_s", "x_m", "y_m", "z_m", "vx_mps", "vy_mps", "vz_mps",
	); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("status", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		if err := tbl.AddRow(
			r.RunID, r.Kind, strconv.Itoa(r.EntityID),
			float64(r.Tick), r.TimeS, r.X, r.Y, r.Z, r.VX, r.VY, r.VZ,
			r.Status, r.Timestamp,
		); err != nil {
			return err
		}
	}

	return w.write(tbl)
}

// WriteDetection inserts a single detection row.
func (w *GreptimeDBWriter) WriteDetection(row telemetry.DetectionRow) error {
	return w.WriteDetections([]telemetry.DetectionRow{row})
}

// WriteDetections inserts multiple detection rows.
func (w *GreptimeDBWriter) WriteDetections(rows []telemetry.DetectionRow) error {
	if len(rows) == 0 || w.detTable == "" {
		return nil
	}

	tbl, err := table.New(w.detTable)
	if err != nil {
		return err
	}
	if err := addColumns(tbl,
		tagCol{"run_id", types.STRING},
		tagCol{"sensor_id", types.STRING},
		tagCol{"target_id", types.STRING},
	); err != nil {
		return err
	}
	if err := addFieldColumns(tbl, "tick", "t_s", "distance_m"); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		if err := tbl.AddRow(
			r.RunID, strconv.Itoa(r.SensorID), strconv.Itoa(r.TargetID),
			float64(r.Tick), r.TimeS, r.DistanceM, r.Timestamp,
		); err != nil {
			return err
		}
	}

	return w.write(tbl)
}

// WriteEvent inserts a single event row.
func (w *GreptimeDBWriter) WriteEvent(row telemetry.EventRow) error {
	return w.WriteEvents([]telemetry.EventRow{row})
}

// WriteEvents inserts multiple event rows.
func (w *GreptimeDBWriter) WriteEvents(rows []telemetry.EventRow) error {
	if len(rows) == 0 || w.eventTable == "" {
		return nil
	}

	tbl, err := table.New(w.eventTable)
	if err != nil {
		return err
	}
	if err := addColumns(tbl,
		tagCol{"run_id", types.STRING},
		tagCol{"type", types.STRING},
	); err != nil {
		return err
	}
	if err := addFieldColumns(tbl,
		"tick", "t_s", "target_id", "missile_id", "launcher_id",
	); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("detail", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		if err := tbl.AddRow(
			r.RunID, r.Type,
			float64(r.Tick), r.TimeS, float64(r.TargetID), float64(r.MissileID), float64(r.LauncherID),
			r.Detail, r.Timestamp,
		); err != nil {
			return err
		}
	}

	return w.write(tbl)
}

// WriteState inserts a simulation state row.
func (w *GreptimeDBWriter) WriteState(row telemetry.SimulationStateRow) error {
	if w.stateTable == "" {
		return nil
	}

	tbl, err := table.New(w.stateTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("run_id", types.STRING); err != nil {
		return err
	}
	if err := addFieldColumns(tbl,
		"tick", "t_s", "alive_targets", "alive_missiles", "pending_spawns", "missiles_ready", "ledger_entries",
	); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	if err := tbl.AddRow(
		row.RunID,
		float64(row.Tick), row.TimeS, float64(row.AliveTargets), float64(row.AliveMissiles),
		float64(row.PendingSpawns), float64(row.MissilesReady), float64(row.LedgerEntries),
		row.Timestamp,
	); err != nil {
		return err
	}

	return w.write(tbl)
}

type tagCol struct {
	name string
	typ  types.ColumnType
}

func addColumns(tbl *table.Table, cols ...tagCol) error {
	for _, c := range cols {
		if err := tbl.AddTagColumn(c.name, c.typ); err != nil {
			return err
		}
	}
	return nil
}

func addFieldColumns(tbl *table.Table, names ...string) error {
	for _, n := range names {
		if err := tbl.AddFieldColumn(n, types.FLOAT64); err != nil {
			return err
		}
	}
	return nil
}

func (w *GreptimeDBWriter) write(tbl *table.Table) error {
	ctx := ingesterContext.New(context.Background())
	if _, err := w.client.Write(ctx, tbl); err != nil {
		slog.Error("greptime write failed", "err", err)
		return err
	}
	return nil
}

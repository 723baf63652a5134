package sim

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"defsim/internal/telemetry"
)

type collectWriter struct{ rows []telemetry.TelemetryRow }

func (c *collectWriter) Write(r telemetry.TelemetryRow) error {
	c.rows = append(c.rows, r)
	return nil
}

func TestReplayLog(t *testing.T) {
	rows := []telemetry.TelemetryRow{
		{RunID: "r1", Kind: telemetry.KindTarget, EntityID: 1, Tick: 0, Timestamp: time.Unix(0, 0)},
		{RunID: "r1", Kind: telemetry.KindMissile, EntityID: 1, Tick: 1, Timestamp: time.Unix(0, 100)},
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// A run metadata row in the same file is skipped by replay.
	enc.Encode(telemetry.RunRow{RunID: "r1", Scenario: "s"})
	for _, r := range rows {
		enc.Encode(r)
	}

	out := &collectWriter{}
	if err := ReplayLog(&buf, out, 0); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if len(out.rows) != 2 {
		t.Fatalf("replayed rows = %d, want 2", len(out.rows))
	}
	if out.rows[0].Kind != telemetry.KindTarget || out.rows[1].Kind != telemetry.KindMissile {
		t.Errorf("rows replayed out of order: %+v", out.rows)
	}
}

func TestReplayLog_BadInput(t *testing.T) {
	out := &collectWriter{}
	if err := ReplayLog(bytes.NewBufferString("{not json"), out, 0); err == nil {
		t.Fatal("ReplayLog accepted malformed input")
	}
}

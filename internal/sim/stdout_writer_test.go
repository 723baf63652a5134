package sim

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"defsim/internal/telemetry"
)

func TestJSONStdoutWriter_EmitsOneLinePerRow(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONStdoutWriter{out: &buf}

	w.Write(telemetry.TelemetryRow{RunID: "r1", Kind: telemetry.KindTarget, EntityID: 1})
	w.WriteEvent(telemetry.EventRow{RunID: "r1", Type: telemetry.EventLaunch, TargetID: 1, MissileID: 2, LauncherID: 3})
	w.WriteState(telemetry.SimulationStateRow{RunID: "r1", Tick: 5})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	var row telemetry.TelemetryRow
	if err := json.Unmarshal([]byte(lines[0]), &row); err != nil {
		t.Fatalf("first line is not a telemetry row: %v", err)
	}
	if row.Kind != telemetry.KindTarget {
		t.Errorf("kind = %q", row.Kind)
	}
}

func TestColorStdoutWriter_ThrottlesStateLines(t *testing.T) {
	var buf bytes.Buffer
	w := &ColorStdoutWriter{out: &buf, stateEveryS: 5, lastStateTime: -1}

	for _, ts := range []float64{0, 1, 2, 5, 6, 10} {
		w.WriteState(telemetry.SimulationStateRow{TimeS: ts})
	}
	lines := strings.Count(buf.String(), "\n")
	// 0, 5, and 10 pass the throttle.
	if lines != 3 {
		t.Errorf("state lines = %d, want 3", lines)
	}
}

func TestColorStdoutWriter_EventIncludesIDs(t *testing.T) {
	var buf bytes.Buffer
	w := &ColorStdoutWriter{out: &buf, stateEveryS: 5, lastStateTime: -1}
	w.WriteEvent(telemetry.EventRow{Type: telemetry.EventHit, TimeS: 1.5, TargetID: 4, MissileID: 7, LauncherID: 2})
	got := buf.String()
	for _, want := range []string{"hit", "target=4", "missile=7", "launcher=2"} {
		if !strings.Contains(got, want) {
			t.Errorf("event line missing %q: %s", want, got)
		}
	}
}

package main

import (
	"testing"

	"defsim/internal/sim"
	"defsim/internal/telemetry"
)

type nopWriter struct{ events int }

func (n *nopWriter) Write(telemetry.TelemetryRow) error            { return nil }
func (n *nopWriter) WriteDetection(telemetry.DetectionRow) error   { return nil }
func (n *nopWriter) WriteEvent(telemetry.EventRow) error           { n.events++; return nil }
func (n *nopWriter) WriteState(telemetry.SimulationStateRow) error { return nil }
func (n *nopWriter) WriteRun(telemetry.RunRow) error               { return nil }

func TestMergeSinks_CombinesPerKind(t *testing.T) {
	a := &nopWriter{}
	b := &nopWriter{}
	merged := mergeSinks(
		sim.Sinks{Events: a, Telemetry: a},
		sim.Sinks{Events: b},
	)

	if merged.Events == nil || merged.Telemetry == nil {
		t.Fatal("merged sinks missing wired kinds")
	}
	if merged.Detections != nil || merged.State != nil || merged.Runs != nil {
		t.Error("merged sinks wired kinds nobody provided")
	}

	merged.Events.WriteEvent(telemetry.EventRow{})
	if a.events != 1 || b.events != 1 {
		t.Errorf("event fan-out = %d/%d, want 1/1", a.events, b.events)
	}
}

func TestNewSinks_JSONFormat(t *testing.T) {
	sinks, tui, cleanup, err := newSinks(formatJSON, "", true)
	if err != nil {
		t.Fatalf("newSinks: %v", err)
	}
	defer cleanup()
	if tui != nil {
		t.Error("json format started a TUI")
	}
	if sinks.Telemetry == nil || sinks.Events == nil || sinks.State == nil || sinks.Runs == nil {
		t.Error("json format left sinks unwired")
	}
}

func TestNewSinks_UnknownFormat(t *testing.T) {
	if _, _, _, err := newSinks("bogus", "", true); err == nil {
		t.Fatal("newSinks accepted unknown format")
	}
}

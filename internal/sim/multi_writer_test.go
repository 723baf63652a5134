package sim

import (
	"testing"

	"defsim/internal/telemetry"
)

type countingWriter struct {
	rows    int
	batches int
	dets    int
	events  int
	states  int
	runs    int
}

func (c *countingWriter) Write(telemetry.TelemetryRow) error { c.rows++; return nil }
func (c *countingWriter) WriteDetection(telemetry.DetectionRow) error {
	c.dets++
	return nil
}
func (c *countingWriter) WriteEvent(telemetry.EventRow) error           { c.events++; return nil }
func (c *countingWriter) WriteState(telemetry.SimulationStateRow) error { c.states++; return nil }
func (c *countingWriter) WriteRun(telemetry.RunRow) error               { c.runs++; return nil }

type countingBatchWriter struct {
	countingWriter
}

func (c *countingBatchWriter) WriteBatch(rows []telemetry.TelemetryRow) error {
	c.batches++
	c.rows += len(rows)
	return nil
}

func TestMultiWriter_FansOut(t *testing.T) {
	a := &countingWriter{}
	b := &countingWriter{}
	mw := NewMultiWriter(
		[]TelemetryWriter{a, b},
		[]DetectionWriter{a, b},
		[]EventWriter{a, b},
		[]StateWriter{a, b},
		[]RunWriter{a, b},
	)

	mw.Write(telemetry.TelemetryRow{})
	mw.WriteDetection(telemetry.DetectionRow{})
	mw.WriteEvent(telemetry.EventRow{})
	mw.WriteState(telemetry.SimulationStateRow{})
	mw.WriteRun(telemetry.RunRow{})

	for i, c := range []*countingWriter{a, b} {
		if c.rows != 1 || c.dets != 1 || c.events != 1 || c.states != 1 || c.runs != 1 {
			t.Errorf("writer %d counts = %+v, want one of each", i, c)
		}
	}
}

func TestMultiWriter_UsesBatchWhereSupported(t *testing.T) {
	plain := &countingWriter{}
	batch := &countingBatchWriter{}
	mw := NewMultiWriter([]TelemetryWriter{plain, batch}, nil, nil, nil, nil)

	rows := make([]telemetry.TelemetryRow, 3)
	if err := mw.WriteBatch(rows); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if plain.rows != 3 {
		t.Errorf("plain writer rows = %d, want 3 (row-by-row fallback)", plain.rows)
	}
	if batch.batches != 1 || batch.rows != 3 {
		t.Errorf("batch writer batches/rows = %d/%d, want 1/3", batch.batches, batch.rows)
	}
}

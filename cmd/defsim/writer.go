package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"defsim/internal/sim"
)

// Output formats for the simulate command.
const (
	formatAuto  = "auto"
	formatJSON  = "json"
	formatColor = "color"
	formatTUI   = "tui"
)

// newSinks wires the output writers: the chosen stdout format, an
// optional GreptimeDB sink from the environment, and an optional JSONL
// log export. It returns the sinks, the TUI writer when one was
// started, and a cleanup function.
func newSinks(format, logFile string, printOnly bool) (sim.Sinks, *sim.TUIWriter, func(), error) {
	cleanup := func() {}

	if format == formatAuto {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			format = formatColor
		} else {
			format = formatJSON
		}
	}

	var sinks sim.Sinks
	var tui *sim.TUIWriter
	switch format {
	case formatJSON:
		w := sim.NewJSONStdoutWriter()
		sinks = sim.Sinks{Telemetry: w, Detections: w, Events: w, State: w, Runs: w}
	case formatColor:
		w := sim.NewColorStdoutWriter(5)
		sinks = sim.Sinks{Events: w, State: w, Runs: w}
	case formatTUI:
		tui = sim.NewTUIWriter()
		sinks = sim.Sinks{Events: tui, State: tui, Runs: tui}
	default:
		return sim.Sinks{}, nil, nil, fmt.Errorf("unknown format %q", format)
	}

	if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" && !printOnly {
		gw, err := sim.NewGreptimeDBWriter(
			endpoint,
			"public",
			os.Getenv("GREPTIMEDB_TABLE"),
			os.Getenv("DETECTION_TABLE"),
			os.Getenv("EVENT_TABLE"),
			os.Getenv("SIMULATION_STATE_TABLE"),
		)
		if err != nil {
			return sim.Sinks{}, nil, nil, err
		}
		sinks = mergeSinks(sinks, sim.Sinks{Telemetry: gw, Detections: gw, Events: gw, State: gw})
	}

	if logFile != "" {
		fw, err := sim.NewFileWriter(logFile, logFile+".detections", logFile+".events", logFile+".state")
		if err != nil {
			return sim.Sinks{}, nil, nil, err
		}
		cleanup = func() { fw.Close() }
		sinks = mergeSinks(sinks, sim.Sinks{Telemetry: fw, Detections: fw, Events: fw, State: fw, Runs: fw})
	}

	return sinks, tui, cleanup, nil
}

// mergeSinks fans each row kind out to both sink sets where both are
// present.
func mergeSinks(a, b sim.Sinks) sim.Sinks {
	var tws []sim.TelemetryWriter
	var dws []sim.DetectionWriter
	var ews []sim.EventWriter
	var sws []sim.StateWriter
	var rws []sim.RunWriter
	for _, s := range []sim.Sinks{a, b} {
		if s.Telemetry != nil {
			tws = append(tws, s.Telemetry)
		}
		if s.Detections != nil {
			dws = append(dws, s.Detections)
		}
		if s.Events != nil {
			ews = append(ews, s.Events)
		}
		if s.State != nil {
			sws = append(sws, s.State)
		}
		if s.Runs != nil {
			rws = append(rws, s.Runs)
		}
	}
	mw := sim.NewMultiWriter(tws, dws, ews, sws, rws)
	out := sim.Sinks{}
	if len(tws) > 0 {
		out.Telemetry = mw
	}
	if len(dws) > 0 {
		out.Detections = mw
	}
	if len(ews) > 0 {
		out.Events = mw
	}
	if len(sws) > 0 {
		out.State = mw
	}
	if len(rws) > 0 {
		out.Runs = mw
	}
	return out
}

// newReplayWriter picks the telemetry writer for the replay command.
func newReplayWriter(printOnly bool) (sim.TelemetryWriter, error) {
	if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" && !printOnly {
		return sim.NewGreptimeDBWriter(endpoint, "public", os.Getenv("GREPTIMEDB_TABLE"), "", "", "")
	}
	return sim.NewJSONStdoutWriter(), nil
}

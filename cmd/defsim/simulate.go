package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"defsim/internal/admin"
	"defsim/internal/config"
	"defsim/internal/logging"
	"defsim/internal/report"
	"defsim/internal/sim"
)

var (
	simScenarioPath string
	simSchemaPath   string
	simBuiltin      bool
	simFormat       string
	simLogFile      string
	simLogLevel     string
	simPrintOnly    bool
	simAdminAddr    string
	simReportPath   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a defense scenario to completion",
	Long:  "simulate loads a scenario, runs the engine as fast as it can, and emits telemetry, detection, and event logs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(simLogLevel)

		var sc *config.Scenario
		var err error
		if simBuiltin {
			sc = config.BuiltIn()
		} else {
			if simScenarioPath == "" {
				return fmt.Errorf("--scenario or --builtin required")
			}
			sc, err = config.Load(simScenarioPath, simSchemaPath)
			if err != nil {
				return err
			}
		}
		log.Info("scenario loaded",
			"name", sc.Meta.Name,
			"sensors", len(sc.FriendlyForces.Sensors),
			"launchers", len(sc.FriendlyForces.Launchers),
			"missiles", sc.TotalMissiles(),
			"groups", len(sc.EnemyForces.Groups),
			"targets", sc.TotalTargets())

		sinks, tui, cleanup, err := newSinks(simFormat, simLogFile, simPrintOnly)
		if err != nil {
			return err
		}
		defer cleanup()

		engine := sim.NewEngine(uuid.New().String(), time.Now().UTC(), sc, sinks)

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		ctx = logging.NewContext(ctx, log)

		if simAdminAddr != "" {
			srv := admin.NewServer(engine)
			go func() {
				log.Info("admin server listening", "addr", simAdminAddr)
				if err := srv.Start(ctx, simAdminAddr); err != nil && err != http.ErrServerClosed {
					log.Error("admin server failed", "err", err)
				}
			}()
		}

		if tui != nil {
			go func() {
				engine.Run(ctx)
				tui.Wait()
				cancel()
			}()
			<-ctx.Done()
			tui.Close()
		} else {
			engine.Run(ctx)
		}

		summary := engine.Summary()
		log.Info("run summary",
			"targets_spawned", summary.TargetsSpawned,
			"targets_killed", summary.TargetsKilled,
			"targets_broken_through", summary.TargetsBrokenThrough,
			"targets_out_of_region", summary.TargetsOutOfRegion,
			"missiles_fired", summary.MissilesFired,
			"missile_hits", summary.MissileHits,
			"missile_self_destructs", summary.MissileSelfDestructs)

		if simReportPath != "" {
			if err := report.Render(summary, simReportPath); err != nil {
				return err
			}
			log.Info("report written", "path", simReportPath)
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simScenarioPath, "scenario", "", "Path to scenario YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/scenario.cue", "Path to CUE schema file (empty to skip)")
	simulateCmd.Flags().BoolVar(&simBuiltin, "builtin", false, "Run the built-in demo scenario")
	simulateCmd.Flags().StringVar(&simFormat, "format", formatAuto, "Output format: auto, json, color, tui")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export run logs (JSONL)")
	simulateCmd.Flags().StringVar(&simLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Ignore GREPTIMEDB_ENDPOINT and print to STDOUT only")
	simulateCmd.Flags().StringVar(&simAdminAddr, "admin", "", "Admin server listen address (e.g. :8080, empty to disable)")
	simulateCmd.Flags().StringVar(&simReportPath, "report", "", "Write an HTML run report to this path")
}

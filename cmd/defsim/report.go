package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"defsim/internal/config"
	"defsim/internal/logging"
	"defsim/internal/report"
	"defsim/internal/sim"
)

var (
	reportScenarioPath string
	reportSchemaPath   string
	reportBuiltin      bool
	reportOut          string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run a scenario headlessly and write an HTML report",
	Long:  "report runs the scenario with no telemetry sinks and renders the outcome summary to HTML. Runs are deterministic, so the reported outcome matches any other run of the same scenario; only the run ID differs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New("warn")

		var sc *config.Scenario
		var err error
		if reportBuiltin {
			sc = config.BuiltIn()
		} else {
			if reportScenarioPath == "" {
				return fmt.Errorf("--scenario or --builtin required")
			}
			sc, err = config.Load(reportScenarioPath, reportSchemaPath)
			if err != nil {
				return err
			}
		}

		engine := sim.NewEngine(uuid.New().String(), time.Now().UTC(), sc, sim.Sinks{})
		engine.Run(logging.NewContext(cmd.Context(), log))

		if err := report.Render(engine.Summary(), reportOut); err != nil {
			return err
		}
		fmt.Println(reportOut)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportScenarioPath, "scenario", "", "Path to scenario YAML")
	reportCmd.Flags().StringVar(&reportSchemaPath, "schema", "schemas/scenario.cue", "Path to CUE schema file (empty to skip)")
	reportCmd.Flags().BoolVar(&reportBuiltin, "builtin", false, "Run the built-in demo scenario")
	reportCmd.Flags().StringVar(&reportOut, "out", "report.html", "Output HTML path")
}

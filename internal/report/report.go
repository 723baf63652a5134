// Post-run HTML report rendering
package report

import (
	"fmt"
	"html/template"
	"os"

	"defsim/internal/sim"
)

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>defsim report — {{.Scenario}}</title>
  <style>
    body { font-family: monospace; margin: 2em; }
    table { border-collapse: collapse; margin-top: 1em; }
    td, th { border: 1px solid #999; padding: 4px 10px; text-align: right; }
  </style>
</head>
<body>
  <h1>defsim run {{.RunID}}</h1>
  <p>scenario {{.Scenario}} — {{.Ticks}} ticks ({{printf "%.1f" .TimeS}} s)</p>
  <h2>Targets</h2>
  <table>
    <tr><th>spawned</th><th>killed</th><th>broken through</th><th>out of region</th><th>still alive</th></tr>
    <tr><td>{{.TargetsSpawned}}</td><td>{{.TargetsKilled}}</td><td>{{.TargetsBrokenThrough}}</td><td>{{.TargetsOutOfRegion}}</td><td>{{.TargetsAlive}}</td></tr>
  </table>
  <h2>Missiles</h2>
  <table>
    <tr><th>fired</th><th>hits</th><th>self-destructs</th><th>target lost</th><th>out of region</th><th>airborne</th></tr>
    <tr><td>{{.MissilesFired}}</td><td>{{.MissileHits}}</td><td>{{.MissileSelfDestructs}}</td><td>{{.MissilesTargetLost}}</td><td>{{.MissilesOutOfRegion}}</td><td>{{.MissilesAirborne}}</td></tr>
  </table>
  <h2>Launchers</h2>
  <table>
    <tr><th>id</th><th>fired</th><th>magazine left</th></tr>
    {{range .Launchers}}<tr><td>{{.ID}}</td><td>{{.Fired}}</td><td>{{.Magazine}}</td></tr>
    {{end}}
  </table>
</body>
</html>
`

// Render writes an HTML report of the run summary to path.
func Render(s sim.Summary, path string) error {
	tpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	if err := tpl.Execute(f, s); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

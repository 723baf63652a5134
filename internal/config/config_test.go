package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validScenarioYAML = `
meta:
  version: "1"
  name: test
  description: loader test
sim:
  t_max_s: 120
world:
  region_rect: {xmin_m: -1000000, xmax_m: 1000000, ymin_m: -1000000, ymax_m: 1000000}
command_post:
  position: {x_m: 0, y_m: 0}
  arrival_radius_m: 500
policy:
  missile_guidance:
    type: true_3d_pn
    N: 3.5
friendly_forces:
  sensors:
    - {id: 1, pos: {x_m: 0, y_m: 0, z_m: 10}, range_m: 40000}
  launchers:
    - {id: 1, pos: {x_m: 100, y_m: 0, z_m: 0}}
enemy_forces:
  groups:
    - id: g1
      spawn_time_s: 0
      center_xy: {x_m: 50000, y_m: 0}
      z_m: 1000
      count: 3
      ring_spacing_m: 400
      start_angle_deg: 0
      endurance_pt: 1
      speed_mps: 250
missile_defaults:
  kinematics:
    initial_speed_mps: 300
    max_speed_mps: 1200
    max_accel_mps2: 80
    max_turn_rate_deg_s: 40
    intercept_radius_m: 50
`

func TestParse_AppliesDefaults(t *testing.T) {
	sc, err := Parse([]byte(validScenarioYAML))
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if sc.Sim.DtS != DefaultDtS {
		t.Errorf("dt_s default = %v, want %v", sc.Sim.DtS, DefaultDtS)
	}
	if got := sc.World.ZLimitsM; len(got) != 2 || got[0] != 0 || got[1] != DefaultZMaxM {
		t.Errorf("z_limits_m default = %v", got)
	}
	l := sc.FriendlyForces.Launchers[0]
	if l.MissilesLoaded != DefaultMissilesLoaded || l.CooldownS != DefaultCooldownS {
		t.Errorf("launcher defaults = %+v", l)
	}
	g := sc.Policy.MissileGuidance
	if g.EndgameFactor != DefaultEndgameFactor || g.EndgameMissIncreaseTicks != DefaultEndgameMissIncreaseTicks {
		t.Errorf("guidance defaults = %+v", g)
	}
	if sc.Policy.LauncherInitiallyCooled == nil || !*sc.Policy.LauncherInitiallyCooled {
		t.Error("launcher_initially_cooled default should be true")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(validScenarioYAML), 0o644); err != nil {
		t.Fatalf("write temp scenario: %v", err)
	}
	sc, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if sc.Meta.Name != "test" {
		t.Errorf("meta.name = %q", sc.Meta.Name)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Scenario)
		field  string
	}{
		{"negative dt", func(s *Scenario) { s.Sim.DtS = -0.1 }, "sim.dt_s"},
		{"zero t_max", func(s *Scenario) { s.Sim.TMaxS = 0 }, "sim.t_max_s"},
		{"degenerate rect", func(s *Scenario) { s.World.RegionRect.XMaxM = s.World.RegionRect.XMinM }, "world.region_rect"},
		{"cp outside region", func(s *Scenario) { s.CommandPost.Position.XM = 2e6 }, "command_post.position"},
		{"guidance gain", func(s *Scenario) { s.Policy.MissileGuidance.N = 5 }, "policy.missile_guidance.N"},
		{"endurance", func(s *Scenario) { s.EnemyForces.Groups[0].EndurancePt = 0 }, "enemy_forces.groups[0].endurance_pt"},
		{"count", func(s *Scenario) { s.EnemyForces.Groups[0].Count = 0 }, "enemy_forces.groups[0].count"},
		{"spawn after t_max", func(s *Scenario) { s.EnemyForces.Groups[0].SpawnTimeS = 1e6 }, "enemy_forces.groups[0].spawn_time_s"},
		{"v_max", func(s *Scenario) { s.MissileDefaults.Kinematics.MaxSpeedMPS = 0 }, "missile_defaults.kinematics.max_speed_mps"},
		{"duplicate launcher id", func(s *Scenario) { s.FriendlyForces.Launchers[1].ID = s.FriendlyForces.Launchers[0].ID }, "friendly_forces.launchers[1].id"},
		{"wrong tgo definition", func(s *Scenario) { s.Policy.TgoDefinition = "eta_3d" }, "policy.tgo_definition"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sc := BuiltIn()
			tc.mutate(sc)
			err := sc.Validate()
			if err == nil {
				t.Fatal("Validate() accepted an invalid scenario")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Errorf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestBuiltIn_IsValid(t *testing.T) {
	if err := BuiltIn().Validate(); err != nil {
		t.Fatalf("built-in scenario invalid: %v", err)
	}
}

func TestMaxAssignable(t *testing.T) {
	sc := BuiltIn()
	if got := sc.MaxAssignable(3); got != 3 {
		t.Errorf("MaxAssignable(3) = %d, want 3", got)
	}
	sc.Policy.MaxAssignablePerTarget = 2
	if got := sc.MaxAssignable(3); got != 2 {
		t.Errorf("capped MaxAssignable(3) = %d, want 2", got)
	}
	if got := sc.MaxAssignable(1); got != 1 {
		t.Errorf("capped MaxAssignable(1) = %d, want 1", got)
	}
}

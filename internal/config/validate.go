// CUE schema validation and domain validation
package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
)

// Canonical policy values. A scenario may omit the policy ordering
// fields; when present they must spell out exactly these rules.
const (
	GuidanceTrue3DPN = "true_3d_pn"
	TgoXYOverSpeed   = "xy_distance_over_speed"
)

var (
	canonicalTieBreakers    = []string{"distance_xy", "id"}
	canonicalLauncherOrder  = []string{"cooldown", "distance_3d", "id"}
)

// ValidationError reports an invalid or out-of-domain scenario field.
// It is surfaced before the engine starts; the engine itself never
// aborts on runtime conditions.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid scenario: %s: %s", e.Field, e.Msg)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// ValidateWithCue validates a YAML scenario file using a CUE schema file.
func ValidateWithCue(configFile, cueFile string) error {
	ctx := cuecontext.New()

	yamlBytes, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML scenario: %w", err)
	}
	yamlFile, err := yaml.Extract(configFile, yamlBytes)
	if err != nil {
		return fmt.Errorf("cannot parse YAML scenario: %w", err)
	}
	configVal := ctx.BuildFile(yamlFile)

	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}
	schemaVal := ctx.CompileBytes(schemaBytes)

	final := configVal.Unify(schemaVal)
	if final.Err() != nil {
		return fmt.Errorf("schema unify failed: %w", final.Err())
	}
	if err := final.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Validate performs Go-side domain validation after defaults are applied.
func (s *Scenario) Validate() error {
	if s.Sim.DtS <= 0 {
		return invalid("sim.dt_s", "must be positive, got %v", s.Sim.DtS)
	}
	if s.Sim.TMaxS <= 0 {
		return invalid("sim.t_max_s", "must be positive, got %v", s.Sim.TMaxS)
	}

	r := s.World.RegionRect
	if r.XMinM >= r.XMaxM || r.YMinM >= r.YMaxM {
		return invalid("world.region_rect", "degenerate rect [%v,%v]x[%v,%v]", r.XMinM, r.XMaxM, r.YMinM, r.YMaxM)
	}
	if len(s.World.ZLimitsM) != 2 {
		return invalid("world.z_limits_m", "want [min, max], got %v entries", len(s.World.ZLimitsM))
	}
	if s.World.ZLimitsM[0] < 0 || s.World.ZLimitsM[0] >= s.World.ZLimitsM[1] {
		return invalid("world.z_limits_m", "want 0 <= min < max, got %v", s.World.ZLimitsM)
	}

	cp := s.CommandPost
	if cp.ArrivalRadiusM <= 0 {
		return invalid("command_post.arrival_radius_m", "must be positive, got %v", cp.ArrivalRadiusM)
	}
	if cp.Position.XM < r.XMinM || cp.Position.XM > r.XMaxM || cp.Position.YM < r.YMinM || cp.Position.YM > r.YMaxM {
		return invalid("command_post.position", "outside region rect")
	}

	if err := s.validatePolicy(); err != nil {
		return err
	}
	if err := s.validateForces(); err != nil {
		return err
	}
	return s.validateKinematics()
}

func (s *Scenario) validatePolicy() error {
	p := s.Policy
	if p.MissileGuidance.Type != GuidanceTrue3DPN {
		return invalid("policy.missile_guidance.type", "unsupported %q", p.MissileGuidance.Type)
	}
	if n := p.MissileGuidance.N; n < 3 || n > 4 {
		return invalid("policy.missile_guidance.N", "must be in [3, 4], got %v", n)
	}
	if p.MissileGuidance.EndgameFactor < 1 {
		return invalid("policy.missile_guidance.endgame_factor", "must be >= 1, got %v", p.MissileGuidance.EndgameFactor)
	}
	if p.MissileGuidance.EndgameMissIncreaseTicks < 1 {
		return invalid("policy.missile_guidance.endgame_miss_increase_ticks", "must be >= 1, got %v", p.MissileGuidance.EndgameMissIncreaseTicks)
	}
	if p.TgoDefinition != "" && p.TgoDefinition != TgoXYOverSpeed {
		return invalid("policy.tgo_definition", "engine implements %q, got %q", TgoXYOverSpeed, p.TgoDefinition)
	}
	if len(p.TieBreakers) > 0 && !equalStrings(p.TieBreakers, canonicalTieBreakers) {
		return invalid("policy.tie_breakers", "engine implements %v, got %v", canonicalTieBreakers, p.TieBreakers)
	}
	if len(p.LauncherSelectionOrder) > 0 && !equalStrings(p.LauncherSelectionOrder, canonicalLauncherOrder) {
		return invalid("policy.launcher_selection_order", "engine implements %v, got %v", canonicalLauncherOrder, p.LauncherSelectionOrder)
	}
	if p.LauncherInitiallyCooled != nil && !*p.LauncherInitiallyCooled {
		return invalid("policy.launcher_initially_cooled", "engine starts launchers cooled")
	}
	if p.MaxAssignablePerTarget < 0 {
		return invalid("policy.max_assignable_per_target", "must be >= 0, got %v", p.MaxAssignablePerTarget)
	}
	return nil
}

func (s *Scenario) validateForces() error {
	sensorIDs := map[int]bool{}
	for i, sn := range s.FriendlyForces.Sensors {
		field := fmt.Sprintf("friendly_forces.sensors[%d]", i)
		if sn.RangeM <= 0 {
			return invalid(field+".range_m", "must be positive, got %v", sn.RangeM)
		}
		if sensorIDs[sn.ID] {
			return invalid(field+".id", "duplicate sensor id %d", sn.ID)
		}
		sensorIDs[sn.ID] = true
	}

	launcherIDs := map[int]bool{}
	for i, l := range s.FriendlyForces.Launchers {
		field := fmt.Sprintf("friendly_forces.launchers[%d]", i)
		if l.MissilesLoaded < 1 {
			return invalid(field+".missiles_loaded", "must be >= 1, got %d", l.MissilesLoaded)
		}
		if l.CooldownS < 0 {
			return invalid(field+".cooldown_s", "must be >= 0, got %v", l.CooldownS)
		}
		if launcherIDs[l.ID] {
			return invalid(field+".id", "duplicate launcher id %d", l.ID)
		}
		launcherIDs[l.ID] = true
	}

	groupIDs := map[string]bool{}
	for i, g := range s.EnemyForces.Groups {
		field := fmt.Sprintf("enemy_forces.groups[%d]", i)
		if g.Count < 1 {
			return invalid(field+".count", "must be >= 1, got %d", g.Count)
		}
		if g.EndurancePt < 1 {
			return invalid(field+".endurance_pt", "must be >= 1, got %d", g.EndurancePt)
		}
		if g.SpeedMPS <= 0 {
			return invalid(field+".speed_mps", "must be positive, got %v", g.SpeedMPS)
		}
		if g.RingSpacingM <= 0 {
			return invalid(field+".ring_spacing_m", "must be positive, got %v", g.RingSpacingM)
		}
		if g.SpawnTimeS < 0 || g.SpawnTimeS >= s.Sim.TMaxS {
			return invalid(field+".spawn_time_s", "must be in [0, t_max_s), got %v", g.SpawnTimeS)
		}
		if g.ZM < s.World.ZLimitsM[0] || g.ZM > s.World.ZLimitsM[1] {
			return invalid(field+".z_m", "outside z limits, got %v", g.ZM)
		}
		if groupIDs[g.ID] {
			return invalid(field+".id", "duplicate group id %q", g.ID)
		}
		groupIDs[g.ID] = true
	}

	return nil
}

func (s *Scenario) validateKinematics() error {
	k := s.MissileDefaults.Kinematics
	if k.InitialSpeedMPS <= 0 {
		return invalid("missile_defaults.kinematics.initial_speed_mps", "must be positive, got %v", k.InitialSpeedMPS)
	}
	if k.MaxSpeedMPS <= 0 {
		return invalid("missile_defaults.kinematics.max_speed_mps", "must be positive, got %v", k.MaxSpeedMPS)
	}
	if k.InitialSpeedMPS > k.MaxSpeedMPS {
		return invalid("missile_defaults.kinematics.initial_speed_mps", "exceeds max_speed_mps")
	}
	if k.MaxAccelMPS2 <= 0 {
		return invalid("missile_defaults.kinematics.max_accel_mps2", "must be positive, got %v", k.MaxAccelMPS2)
	}
	if k.MaxTurnRateDegS <= 0 {
		return invalid("missile_defaults.kinematics.max_turn_rate_deg_s", "must be positive, got %v", k.MaxTurnRateDegS)
	}
	if k.InterceptRadiusM <= 0 {
		return invalid("missile_defaults.kinematics.intercept_radius_m", "must be positive, got %v", k.InterceptRadiusM)
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

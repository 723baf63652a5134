// YAML scenario loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Meta describes the scenario document itself.
type Meta struct {
	Version     string `yaml:"version"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Sim holds the time discretization and the reserved RNG seed. The seed
// is parsed and carried but no randomness is invoked: output is
// independent of it.
type Sim struct {
	DtS   float64 `yaml:"dt_s"`
	TMaxS float64 `yaml:"t_max_s"`
	Seed  uint64  `yaml:"seed"`
}

// RegionRect bounds the world in the XY plane.
type RegionRect struct {
	XMinM float64 `yaml:"xmin_m"`
	XMaxM float64 `yaml:"xmax_m"`
	YMinM float64 `yaml:"ymin_m"`
	YMaxM float64 `yaml:"ymax_m"`
}

// World is the simulation domain: an XY rect plus an altitude band.
type World struct {
	RegionRect RegionRect `yaml:"region_rect"`
	ZLimitsM   []float64  `yaml:"z_limits_m"`
}

// Position2D is a plan-view position in metres.
type Position2D struct {
	XM float64 `yaml:"x_m"`
	YM float64 `yaml:"y_m"`
}

// Position3D is a full position in metres.
type Position3D struct {
	XM float64 `yaml:"x_m"`
	YM float64 `yaml:"y_m"`
	ZM float64 `yaml:"z_m"`
}

// CommandPost defines the breakthrough geometry.
type CommandPost struct {
	Position       Position2D `yaml:"position"`
	ArrivalRadiusM float64    `yaml:"arrival_radius_m"`
}

// Guidance configures the proportional-navigation law.
type Guidance struct {
	Type                     string  `yaml:"type"`
	N                        float64 `yaml:"N"`
	EndgameFactor            float64 `yaml:"endgame_factor"`
	EndgameMissIncreaseTicks int     `yaml:"endgame_miss_increase_ticks"`
}

// Policy pins the allocation rules. The ordering fields are declarative:
// they must spell out the engine's fixed rules and exist so a scenario
// author cannot silently assume different ones.
type Policy struct {
	TgoDefinition           string   `yaml:"tgo_definition"`
	TieBreakers             []string `yaml:"tie_breakers"`
	LauncherSelectionOrder  []string `yaml:"launcher_selection_order"`
	LauncherInitiallyCooled *bool    `yaml:"launcher_initially_cooled"`
	MaxAssignablePerTarget  int      `yaml:"max_assignable_per_target"`
	MissileGuidance         Guidance `yaml:"missile_guidance"`
}

// Sensor is one spherical-range detector.
type Sensor struct {
	ID     int        `yaml:"id"`
	Pos    Position3D `yaml:"pos"`
	RangeM float64    `yaml:"range_m"`
}

// Launcher is one missile battery.
type Launcher struct {
	ID             int        `yaml:"id"`
	Pos            Position3D `yaml:"pos"`
	MissilesLoaded int        `yaml:"missiles_loaded"`
	CooldownS      float64    `yaml:"cooldown_s"`
}

// FriendlyForces groups the defensive assets.
type FriendlyForces struct {
	Sensors   []Sensor   `yaml:"sensors"`
	Launchers []Launcher `yaml:"launchers"`
}

// Group is one enemy formation, spawned on concentric rings.
type Group struct {
	ID             string     `yaml:"id"`
	SpawnTimeS     float64    `yaml:"spawn_time_s"`
	CenterXY       Position2D `yaml:"center_xy"`
	ZM             float64    `yaml:"z_m"`
	Count          int        `yaml:"count"`
	RingSpacingM   float64    `yaml:"ring_spacing_m"`
	StartAngleDeg  float64    `yaml:"start_angle_deg"`
	RingHalfOffset bool       `yaml:"ring_half_offset"`
	EndurancePt    int        `yaml:"endurance_pt"`
	SpeedMPS       float64    `yaml:"speed_mps"`
}

// EnemyForces groups the incoming threat formations.
type EnemyForces struct {
	Groups []Group `yaml:"groups"`
}

// Kinematics holds per-missile performance defaults. Turn rate is in
// deg/s here; the engine converts to rad/s at the boundary.
type Kinematics struct {
	InitialSpeedMPS  float64 `yaml:"initial_speed_mps"`
	MaxSpeedMPS      float64 `yaml:"max_speed_mps"`
	MaxAccelMPS2     float64 `yaml:"max_accel_mps2"`
	MaxTurnRateDegS  float64 `yaml:"max_turn_rate_deg_s"`
	InterceptRadiusM float64 `yaml:"intercept_radius_m"`
}

// MissileDefaults carries the default missile performance bundle.
type MissileDefaults struct {
	Kinematics Kinematics `yaml:"kinematics"`
}

// Scenario is the root configuration: the immutable bundle the engine
// is constructed from.
type Scenario struct {
	Meta            Meta            `yaml:"meta"`
	Sim             Sim             `yaml:"sim"`
	World           World           `yaml:"world"`
	CommandPost     CommandPost     `yaml:"command_post"`
	Policy          Policy          `yaml:"policy"`
	FriendlyForces  FriendlyForces  `yaml:"friendly_forces"`
	EnemyForces     EnemyForces     `yaml:"enemy_forces"`
	MissileDefaults MissileDefaults `yaml:"missile_defaults"`
}

// Defaults applied after unmarshal.
const (
	DefaultDtS                      = 0.1
	DefaultMissilesLoaded           = 4
	DefaultCooldownS                = 5.0
	DefaultEndgameFactor            = 2.0
	DefaultEndgameMissIncreaseTicks = 3
	DefaultZMaxM                    = 5000.0
)

// Load reads a YAML scenario, validates it against the CUE schema, then
// applies defaults and Go-side domain validation. schemaPath may be
// empty to skip the CUE pass.
func Load(path, schemaPath string) (*Scenario, error) {
	if schemaPath != "" {
		if err := ValidateWithCue(path, schemaPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals a YAML scenario document, applies defaults, and
// validates it.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	sc.ApplyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// ApplyDefaults fills unset optional fields with the documented defaults.
func (s *Scenario) ApplyDefaults() {
	if s.Sim.DtS == 0 {
		s.Sim.DtS = DefaultDtS
	}
	if len(s.World.ZLimitsM) == 0 {
		s.World.ZLimitsM = []float64{0, DefaultZMaxM}
	}
	if s.Policy.MissileGuidance.Type == "" {
		s.Policy.MissileGuidance.Type = GuidanceTrue3DPN
	}
	if s.Policy.MissileGuidance.EndgameFactor == 0 {
		s.Policy.MissileGuidance.EndgameFactor = DefaultEndgameFactor
	}
	if s.Policy.MissileGuidance.EndgameMissIncreaseTicks == 0 {
		s.Policy.MissileGuidance.EndgameMissIncreaseTicks = DefaultEndgameMissIncreaseTicks
	}
	if s.Policy.LauncherInitiallyCooled == nil {
		cooled := true
		s.Policy.LauncherInitiallyCooled = &cooled
	}
	for i := range s.FriendlyForces.Launchers {
		l := &s.FriendlyForces.Launchers[i]
		if l.MissilesLoaded == 0 {
			l.MissilesLoaded = DefaultMissilesLoaded
		}
		if l.CooldownS == 0 {
			l.CooldownS = DefaultCooldownS
		}
	}
}

// MaxAssignable returns the missile cap for a target with the given
// endurance: the tighter of the endurance and the optional policy cap.
func (s *Scenario) MaxAssignable(endurance int) int {
	if s.Policy.MaxAssignablePerTarget > 0 && s.Policy.MaxAssignablePerTarget < endurance {
		return s.Policy.MaxAssignablePerTarget
	}
	return endurance
}

// TotalTargets sums the group counts.
func (s *Scenario) TotalTargets() int {
	n := 0
	for _, g := range s.EnemyForces.Groups {
		n += g.Count
	}
	return n
}

// TotalMissiles sums the launcher magazines.
func (s *Scenario) TotalMissiles() int {
	n := 0
	for _, l := range s.FriendlyForces.Launchers {
		n += l.MissilesLoaded
	}
	return n
}

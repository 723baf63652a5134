package config

// BuiltIn returns a predefined demo scenario: two staggered raids
// against a single command post screened by two sensors and two
// launchers. It is used by `simulate --builtin` and by tests.
func BuiltIn() *Scenario {
	cooled := true
	sc := &Scenario{
		Meta: Meta{
			Version:     "1",
			Name:        "builtin-demo",
			Description: "Two staggered raids against a single command post.",
		},
		Sim:   Sim{DtS: 0.1, TMaxS: 300, Seed: 1},
		World: World{RegionRect: RegionRect{XMinM: -1e6, XMaxM: 1e6, YMinM: -1e6, YMaxM: 1e6}, ZLimitsM: []float64{0, 5000}},
		CommandPost: CommandPost{
			Position:       Position2D{XM: 0, YM: 0},
			ArrivalRadiusM: 500,
		},
		Policy: Policy{
			TgoDefinition:           TgoXYOverSpeed,
			TieBreakers:             []string{"distance_xy", "id"},
			LauncherSelectionOrder:  []string{"cooldown", "distance_3d", "id"},
			LauncherInitiallyCooled: &cooled,
			MissileGuidance: Guidance{
				Type:                     GuidanceTrue3DPN,
				N:                        3.5,
				EndgameFactor:            2.0,
				EndgameMissIncreaseTicks: 3,
			},
		},
		FriendlyForces: FriendlyForces{
			Sensors: []Sensor{
				{ID: 1, Pos: Position3D{XM: -10000, YM: 0, ZM: 30}, RangeM: 60000},
				{ID: 2, Pos: Position3D{XM: 10000, YM: 0, ZM: 30}, RangeM: 60000},
			},
			Launchers: []Launcher{
				{ID: 1, Pos: Position3D{XM: -2000, YM: 1000, ZM: 0}, MissilesLoaded: 8, CooldownS: 5},
				{ID: 2, Pos: Position3D{XM: 2000, YM: -1000, ZM: 0}, MissilesLoaded: 8, CooldownS: 5},
			},
		},
		EnemyForces: EnemyForces{
			Groups: []Group{
				{
					ID:            "raid-east",
					SpawnTimeS:    0,
					CenterXY:      Position2D{XM: 50000, YM: 5000},
					ZM:            1200,
					Count:         5,
					RingSpacingM:  400,
					StartAngleDeg: 0,
					EndurancePt:   1,
					SpeedMPS:      250,
				},
				{
					ID:             "raid-north",
					SpawnTimeS:     40,
					CenterXY:       Position2D{XM: -8000, YM: 55000},
					ZM:             900,
					Count:          8,
					RingSpacingM:   300,
					StartAngleDeg:  90,
					RingHalfOffset: true,
					EndurancePt:    2,
					SpeedMPS:       220,
				},
			},
		},
		MissileDefaults: MissileDefaults{
			Kinematics: Kinematics{
				InitialSpeedMPS:  300,
				MaxSpeedMPS:      1200,
				MaxAccelMPS2:     80,
				MaxTurnRateDegS:  40,
				InterceptRadiusM: 50,
			},
		},
	}
	return sc
}

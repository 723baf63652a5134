// Engine orchestrating the deterministic phase-ordered tick loop
package sim

import (
	"math"
	"sort"
	"sync"
	"time"

	"defsim/internal/config"
	"defsim/internal/entity"
	"defsim/internal/geom"
)

// Sinks bundles the output writers. Any field may be nil to discard
// that row kind. Writers never influence simulation state: two runs of
// the same scenario emit identical rows regardless of sinks.
type Sinks struct {
	Telemetry  TelemetryWriter
	Detections DetectionWriter
	Events     EventWriter
	State      StateWriter
	Runs       RunWriter
}

// Engine owns every live entity collection and advances them tick by
// tick. Time is discretized as an integer tick count; real time is
// tick·Δt. The engine is deterministic: it reads no clock and no RNG,
// and all iterations traverse entities in ID-ascending order.
type Engine struct {
	mu sync.Mutex

	runID     string
	startedAt time.Time
	sc        *config.Scenario
	world     entity.World
	dt        float64
	tMaxTicks int

	tick int
	done bool

	targets     []*entity.Target // ID ascending, consumed entries retained
	targetByID  map[int]*entity.Target
	missiles    []*entity.Missile // ID ascending, terminated entries retained
	missileByID map[int]*entity.Missile
	sensors     []*entity.Sensor
	launchers   []*entity.Launcher
	cp          *CommandPost

	spawnTable    map[int][]*entity.Target
	pendingSpawns int
	nextMissileID int
	perf          entity.MissilePerformance

	sinks Sinks
}

// NewEngine builds an engine from a validated scenario. runID tags all
// emitted rows; startedAt anchors their timestamps (pass a fixed value
// to make two runs byte-identical).
func NewEngine(runID string, startedAt time.Time, sc *config.Scenario, sinks Sinks) *Engine {
	e := &Engine{
		runID:     runID,
		startedAt: startedAt,
		sc:        sc,
		world: entity.World{
			XMin: sc.World.RegionRect.XMinM,
			XMax: sc.World.RegionRect.XMaxM,
			YMin: sc.World.RegionRect.YMinM,
			YMax: sc.World.RegionRect.YMaxM,
			ZMin: sc.World.ZLimitsM[0],
			ZMax: sc.World.ZLimitsM[1],
		},
		dt:            sc.Sim.DtS,
		tMaxTicks:     int(math.Round(sc.Sim.TMaxS / sc.Sim.DtS)),
		targetByID:    make(map[int]*entity.Target),
		missileByID:   make(map[int]*entity.Missile),
		nextMissileID: 1,
		perf:          missilePerformance(sc),
		sinks:         sinks,
	}

	e.spawnTable, e.pendingSpawns = buildSpawnTable(sc)

	for _, s := range sc.FriendlyForces.Sensors {
		e.sensors = append(e.sensors, &entity.Sensor{
			ID:     s.ID,
			Pos:    geom.V(s.Pos.XM, s.Pos.YM, s.Pos.ZM),
			RangeM: s.RangeM,
		})
	}
	sort.Slice(e.sensors, func(i, j int) bool { return e.sensors[i].ID < e.sensors[j].ID })

	for _, l := range sc.FriendlyForces.Launchers {
		e.launchers = append(e.launchers, entity.NewLauncher(
			l.ID,
			geom.V(l.Pos.XM, l.Pos.YM, l.Pos.ZM),
			l.MissilesLoaded,
			l.CooldownS,
		))
	}
	sort.Slice(e.launchers, func(i, j int) bool { return e.launchers[i].ID < e.launchers[j].ID })

	e.cp = NewCommandPost(geom.V(sc.CommandPost.Position.XM, sc.CommandPost.Position.YM, 0), sc.CommandPost.ArrivalRadiusM)

	return e
}

// missilePerformance converts the scenario missile defaults to engine
// units (turn rate deg/s → rad/s at the boundary).
func missilePerformance(sc *config.Scenario) entity.MissilePerformance {
	k := sc.MissileDefaults.Kinematics
	g := sc.Policy.MissileGuidance
	return entity.MissilePerformance{
		InitialSpeed:             k.InitialSpeedMPS,
		MaxSpeed:                 k.MaxSpeedMPS,
		MaxAccel:                 k.MaxAccelMPS2,
		MaxTurnRate:              geom.DegToRad(k.MaxTurnRateDegS),
		InterceptRadius:          k.InterceptRadiusM,
		N:                        g.N,
		EndgameFactor:            g.EndgameFactor,
		EndgameMissIncreaseTicks: g.EndgameMissIncreaseTicks,
	}
}

// RunID returns the run identity tag.
func (e *Engine) RunID() string { return e.runID }

// Tick returns the current tick count.
func (e *Engine) Tick() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tick
}

// Done reports whether the run has terminated.
func (e *Engine) Done() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.done
}

// CommandPost exposes the allocator for inspection.
func (e *Engine) CommandPost() *CommandPost { return e.cp }

func (e *Engine) timestamp(timeS float64) time.Time {
	return e.startedAt.Add(time.Duration(timeS * float64(time.Second)))
}

func (e *Engine) aliveTargets() int {
	n := 0
	for _, t := range e.targets {
		if t.Alive() {
			n++
		}
	}
	return n
}

func (e *Engine) aliveMissiles() int {
	n := 0
	for _, m := range e.missiles {
		if m.Alive() {
			n++
		}
	}
	return n
}

func (e *Engine) missilesReady() int {
	n := 0
	for _, l := range e.launchers {
		n += l.Magazine
	}
	return n
}

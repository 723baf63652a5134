// Ring-filling formation spawner for enemy groups
package sim

import (
	"math"

	"defsim/internal/config"
	"defsim/internal/entity"
	"defsim/internal/geom"
)

// ringCapacity returns the slot count of ring k: the number of arc
// segments of at least ring_spacing length on a circle of radius
// k·ring_spacing, never less than one.
func ringCapacity(k int) int {
	n := int(math.Floor(2 * math.Pi * float64(k)))
	if n < 1 {
		n = 1
	}
	return n
}

// ringPositions lays out a group on concentric rings of radius
// k·ring_spacing, filled innermost-first. Members of a ring are spaced
// 2π/n apart starting at start_angle_deg; rings k ≥ 2 rotate by an
// extra π/n when ring_half_offset is set. Z is the group altitude.
func ringPositions(g config.Group) []geom.Vec3 {
	positions := make([]geom.Vec3, 0, g.Count)
	start := geom.DegToRad(g.StartAngleDeg)
	remaining := g.Count
	for k := 1; remaining > 0; k++ {
		n := ringCapacity(k)
		if n > remaining {
			n = remaining
		}
		radius := float64(k) * g.RingSpacingM
		step := 2 * math.Pi / float64(n)
		offset := 0.0
		if g.RingHalfOffset && k >= 2 {
			offset = step / 2
		}
		for i := 0; i < n; i++ {
			theta := start + float64(i)*step + offset
			positions = append(positions, geom.V(
				g.CenterXY.XM+radius*math.Cos(theta),
				g.CenterXY.YM+radius*math.Sin(theta),
				g.ZM,
			))
		}
		remaining -= n
	}
	return positions
}

// spawnTick converts a group spawn time to its tick index.
func spawnTick(spawnTimeS, dt float64) int {
	return int(math.Round(spawnTimeS / dt))
}

// buildSpawnTable materializes every group member up front with stable
// IDs (assigned in group order, then ring order) and indexes them by
// spawn tick. Targets only join the engine's population at their tick.
func buildSpawnTable(sc *config.Scenario) (map[int][]*entity.Target, int) {
	dest := geom.V(sc.CommandPost.Position.XM, sc.CommandPost.Position.YM, 0)
	table := make(map[int][]*entity.Target)
	nextID := 1
	total := 0
	for _, g := range sc.EnemyForces.Groups {
		tick := spawnTick(g.SpawnTimeS, sc.Sim.DtS)
		for _, pos := range ringPositions(g) {
			t := entity.NewTarget(nextID, g.ID, pos, dest, g.SpeedMPS, sc.CommandPost.ArrivalRadiusM, g.EndurancePt)
			table[tick] = append(table[tick], t)
			nextID++
			total++
		}
	}
	return table, total
}

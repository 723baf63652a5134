package entity

import (
	"math"
	"testing"

	"defsim/internal/geom"
)

var testPerf = MissilePerformance{
	InitialSpeed:             300,
	MaxSpeed:                 1200,
	MaxAccel:                 80,
	MaxTurnRate:              geom.DegToRad(40),
	InterceptRadius:          50,
	N:                        3.5,
	EndgameFactor:            2,
	EndgameMissIncreaseTicks: 3,
}

func TestLauncher_StartsCooled(t *testing.T) {
	l := NewLauncher(1, geom.V(0, 0, 0), 4, 5)
	if !l.CanFire(0) {
		t.Error("new launcher should be able to fire at t=0")
	}
	if l.CooldownRemaining(0) != 0 {
		t.Errorf("cooldown remaining = %v, want 0", l.CooldownRemaining(0))
	}
}

func TestLauncher_LaunchDecrementsAndCoolsDown(t *testing.T) {
	l := NewLauncher(1, geom.V(0, 0, 0), 2, 5)
	tgt := NewTarget(9, "g", geom.V(-1000, 0, 0), geom.V(0, 0, 0), 100, 10, 1)

	m := l.Launch(1, tgt, testPerf, 10, 100)
	if m == nil {
		t.Fatal("Launch returned nil")
	}
	if l.Magazine != 1 {
		t.Errorf("magazine = %d, want 1", l.Magazine)
	}
	if l.CooldownUntil != 15 {
		t.Errorf("cooldown_until = %v, want 15", l.CooldownUntil)
	}
	if l.CanFire(12) {
		t.Error("launcher fired while on cooldown")
	}
	if !l.CanFire(15) {
		t.Error("launcher still cold at cooldown expiry")
	}

	if m.TargetID != 9 || m.LauncherID != 1 {
		t.Errorf("missile wiring = target %d launcher %d", m.TargetID, m.LauncherID)
	}
	if got := m.Vel.Norm(); math.Abs(got-300) > 1e-9 {
		t.Errorf("initial speed = %v, want 300", got)
	}
	if m.Vel.X >= 0 {
		t.Errorf("missile not pointed at target: vel = %v", m.Vel)
	}

	if len(l.History) != 1 || l.History[0].MissileID != 1 || l.History[0].Tick != 100 {
		t.Errorf("history = %+v", l.History)
	}
}

func TestLauncher_EmptyMagazine(t *testing.T) {
	l := NewLauncher(1, geom.V(0, 0, 0), 1, 5)
	tgt := NewTarget(2, "g", geom.V(-1000, 0, 0), geom.V(0, 0, 0), 100, 10, 1)
	if l.Launch(1, tgt, testPerf, 0, 0) == nil {
		t.Fatal("first launch failed")
	}
	if l.Launch(2, tgt, testPerf, 100, 1000) != nil {
		t.Error("launched from an empty magazine")
	}
}

func TestLauncher_CollocatedTargetLaunchesPlusX(t *testing.T) {
	l := NewLauncher(1, geom.V(0, 0, 0), 1, 5)
	tgt := NewTarget(2, "g", geom.V(0, 0, 0), geom.V(0, 0, 0), 100, 10, 1)
	m := l.Launch(1, tgt, testPerf, 0, 0)
	if m == nil {
		t.Fatal("Launch returned nil")
	}
	if m.Vel.X != 300 || m.Vel.Y != 0 || m.Vel.Z != 0 {
		t.Errorf("velocity = %v, want (300, 0, 0)", m.Vel)
	}
}

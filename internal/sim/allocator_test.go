package sim

import (
	"testing"

	"defsim/internal/entity"
	"defsim/internal/geom"
)

func testTarget(id int, pos geom.Vec3, speed float64, endurance int) *entity.Target {
	return entity.NewTarget(id, "g", pos, geom.V(0, 0, 0), speed, 500, endurance)
}

func TestCommandPost_PrioritizeByTgo(t *testing.T) {
	cp := NewCommandPost(geom.V(0, 0, 0), 500)
	near := testTarget(1, geom.V(10000, 0, 1000), 100, 1)   // Tgo 95
	fast := testTarget(2, geom.V(20000, 0, 1000), 400, 1)   // Tgo 48.75
	far := testTarget(3, geom.V(50000, 0, 1000), 100, 1)    // Tgo 495
	hidden := testTarget(4, geom.V(5000, 0, 1000), 100, 1)  // not detected
	dead := testTarget(5, geom.V(1000, 0, 1000), 100, 1)    // consumed
	dead.Status = entity.TargetKilled

	detected := map[int]bool{1: true, 2: true, 3: true, 5: true}
	got := cp.Prioritize(detected, []*entity.Target{near, fast, far, hidden, dead})
	if len(got) != 3 {
		t.Fatalf("prioritized = %d targets, want 3", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 1 || got[2].ID != 3 {
		t.Errorf("order = %d, %d, %d, want 2, 1, 3", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestCommandPost_PrioritizeTieBreaks(t *testing.T) {
	cp := NewCommandPost(geom.V(0, 0, 0), 500)
	// Same Tgo and same distance: falls through to ID ascending.
	a := testTarget(7, geom.V(10000, 0, 1000), 100, 1)
	b := testTarget(3, geom.V(0, 10000, 1000), 100, 1)
	// Same Tgo achieved with different distance/speed: distance decides.
	closer := testTarget(9, geom.V(5250, 0, 1000), 50, 1) // Tgo = (5250-500)/50 = 95
	detected := map[int]bool{7: true, 3: true, 9: true}

	got := cp.Prioritize(detected, []*entity.Target{a, b, closer})
	if got[0].ID != 9 {
		t.Errorf("first = %d, want 9 (shorter distance at equal Tgo)", got[0].ID)
	}
	if got[1].ID != 3 || got[2].ID != 7 {
		t.Errorf("tie order = %d, %d, want 3, 7", got[1].ID, got[2].ID)
	}
}

func TestCommandPost_DeficitAndCommit(t *testing.T) {
	cp := NewCommandPost(geom.V(0, 0, 0), 500)
	tgt := testTarget(1, geom.V(10000, 0, 1000), 100, 2)

	if got := cp.Deficit(tgt, 2); got != 2 {
		t.Fatalf("deficit = %d, want 2", got)
	}
	cp.Commit(1, 101)
	cp.Commit(1, 102)
	if got := cp.Deficit(tgt, 2); got != 0 {
		t.Errorf("deficit after commits = %d, want 0", got)
	}
	if got := cp.Assigned(1); got != 2 {
		t.Errorf("assigned = %d, want 2", got)
	}
	if got := cp.LedgerSize(); got != 2 {
		t.Errorf("ledger size = %d, want 2", got)
	}
}

func TestCommandPost_MaintainDropsDeadEntries(t *testing.T) {
	cp := NewCommandPost(geom.V(0, 0, 0), 500)
	cp.Commit(1, 101)
	cp.Commit(1, 102)
	cp.Commit(2, 103)

	missileAlive := func(id int) bool { return id != 102 }
	targetAlive := func(id int) bool { return id != 2 }
	cp.Maintain(missileAlive, targetAlive)

	if got := cp.Assigned(1); got != 1 {
		t.Errorf("target 1 assigned = %d, want 1 (missile 102 terminated)", got)
	}
	if got := cp.Assigned(2); got != 0 {
		t.Errorf("target 2 assigned = %d, want 0 (target consumed)", got)
	}
	if got := cp.LedgerSize(); got != 1 {
		t.Errorf("ledger size = %d, want 1", got)
	}

	// The freed capacity is assignable again.
	tgt := testTarget(1, geom.V(10000, 0, 1000), 100, 2)
	if got := cp.Deficit(tgt, 2); got != 1 {
		t.Errorf("deficit after maintain = %d, want 1", got)
	}
}

func TestCommandPost_SelectLauncher(t *testing.T) {
	cp := NewCommandPost(geom.V(0, 0, 0), 500)
	tgt := testTarget(1, geom.V(10000, 0, 0), 100, 1)

	near := entity.NewLauncher(3, geom.V(5000, 0, 0), 4, 5)
	far := entity.NewLauncher(1, geom.V(-5000, 0, 0), 4, 5)
	empty := entity.NewLauncher(2, geom.V(9000, 0, 0), 0, 5)

	launchers := []*entity.Launcher{far, empty, near}
	got := cp.SelectLauncher(launchers, map[int]bool{}, tgt, 0)
	if got == nil || got.ID != 3 {
		t.Fatalf("selected %+v, want launcher 3 (closest with ordnance)", got)
	}

	// Once the closest has fired this tick, the farther one is chosen.
	got = cp.SelectLauncher(launchers, map[int]bool{3: true}, tgt, 0)
	if got == nil || got.ID != 1 {
		t.Fatalf("selected %+v, want launcher 1", got)
	}

	// Nobody left: empty magazine never fires.
	got = cp.SelectLauncher(launchers, map[int]bool{1: true, 3: true}, tgt, 0)
	if got != nil {
		t.Fatalf("selected %+v, want nil", got)
	}
}

func TestCommandPost_SelectLauncherTieByID(t *testing.T) {
	cp := NewCommandPost(geom.V(0, 0, 0), 500)
	tgt := testTarget(1, geom.V(0, 10000, 0), 100, 1)
	a := entity.NewLauncher(5, geom.V(1000, 0, 0), 4, 5)
	b := entity.NewLauncher(2, geom.V(-1000, 0, 0), 4, 5)

	got := cp.SelectLauncher([]*entity.Launcher{a, b}, map[int]bool{}, tgt, 0)
	if got == nil || got.ID != 2 {
		t.Fatalf("selected %+v, want launcher 2 (equal distance, lower id)", got)
	}
}

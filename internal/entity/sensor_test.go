package entity

import (
	"testing"

	"defsim/internal/geom"
)

func TestSensor_Detect(t *testing.T) {
	s := &Sensor{ID: 1, Pos: geom.V(0, 0, 0), RangeM: 1000}

	inRange := NewTarget(1, "g", geom.V(600, 0, 0), geom.V(0, 0, 0), 100, 10, 1)
	atEdge := NewTarget(2, "g", geom.V(0, 1000, 0), geom.V(0, 0, 0), 100, 10, 1)
	outside := NewTarget(3, "g", geom.V(0, 1001, 0), geom.V(0, 0, 0), 100, 10, 1)
	dead := NewTarget(4, "g", geom.V(100, 0, 0), geom.V(0, 0, 0), 100, 10, 1)
	dead.Status = TargetKilled

	contacts := s.Detect([]*Target{inRange, atEdge, outside, dead})
	if len(contacts) != 2 {
		t.Fatalf("contacts = %d, want 2", len(contacts))
	}
	if contacts[0].TargetID != 1 || contacts[1].TargetID != 2 {
		t.Errorf("contact ids = %d, %d", contacts[0].TargetID, contacts[1].TargetID)
	}
	if contacts[0].DistanceM != 600 {
		t.Errorf("distance = %v, want 600", contacts[0].DistanceM)
	}
}

func TestSensor_RangeIsThreeDimensional(t *testing.T) {
	s := &Sensor{ID: 1, Pos: geom.V(0, 0, 0), RangeM: 1000}
	// 800 m out in XY but high enough that the 3-D distance exceeds range.
	high := NewTarget(1, "g", geom.V(800, 0, 700), geom.V(0, 0, 0), 100, 10, 1)
	if got := s.Detect([]*Target{high}); len(got) != 0 {
		t.Errorf("detected target beyond 3-D range: %+v", got)
	}
}

package physics

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-sandbox/internal/core"
)

const testDT = 0.015

func TestSpaceGravityPullsDynamicBodies(t *testing.T) {
	s := NewSpace(core.V(0, 300))

	id, err := s.AddBody(BodySpec{
		Kind:     Dynamic,
		Category: CategoryMob,
		Shape:    ShapeBox,
		Size:     core.V(10, 10),
		Mass:     1,
		Position: core.V(100, 100),
	})
	if err != nil {
		t.Fatalf("AddBody() failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		s.Advance(testDT, func(Event) bool { return true })
	}

	if s.Position(id).Y <= 100 {
		t.Errorf("Dynamic body should fall, y = %f", s.Position(id).Y)
	}
	if s.Velocity(id).Y <= 0 {
		t.Errorf("Dynamic body should gain downward velocity, vy = %f", s.Velocity(id).Y)
	}
}

func TestSpaceStaticBodiesDoNotMove(t *testing.T) {
	s := NewSpace(core.V(0, 300))

	id, err := s.AddBody(BodySpec{
		Kind:     Static,
		Category: CategoryBlock,
		Shape:    ShapeBox,
		Size:     core.V(32, 32),
		Position: core.V(16, 16),
	})
	if err != nil {
		t.Fatalf("AddBody() failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		s.Advance(testDT, func(Event) bool { return true })
	}

	if s.Position(id) != core.V(16, 16) {
		t.Errorf("Static body moved to %v", s.Position(id))
	}
}

func TestSpaceReportsContactPhases(t *testing.T) {
	s := NewSpace(core.V(0, 300))

	ground, _ := s.AddBody(BodySpec{
		Kind:     Static,
		Category: CategoryBlock,
		Shape:    ShapeBox,
		Size:     core.V(200, 20),
		Position: core.V(100, 110),
	})
	box, _ := s.AddBody(BodySpec{
		Kind:          Dynamic,
		Category:      CategoryPlayer,
		Shape:         ShapeBox,
		Size:          core.V(10, 10),
		Mass:          1,
		FixedRotation: true,
		Position:      core.V(100, 90),
	})

	counts := make(map[Phase]int)
	for i := 0; i < 120; i++ {
		s.Advance(testDT, func(ev Event) bool {
			pair := map[BodyID]bool{ev.A: true, ev.B: true}
			if !pair[ground] || !pair[box] {
				t.Errorf("Unexpected bodies in event: %+v", ev)
			}
			counts[ev.Phase]++
			return true
		})
	}

	if counts[PhaseBegin] == 0 {
		t.Error("Expected a begin event when the box lands")
	}
	if counts[PhasePostSolve] == 0 {
		t.Error("Expected post-solve events while resting on the ground")
	}

	// The box should rest on top of the ground, not fall through it.
	if y := s.Position(box).Y; y > 100 {
		t.Errorf("Box fell through the ground, y = %f", y)
	}
}

func TestSpaceSetPositionTeleports(t *testing.T) {
	s := NewSpace(core.V(0, 300))

	s.AddBody(BodySpec{
		Kind:     Static,
		Category: CategoryBlock,
		Shape:    ShapeBox,
		Size:     core.V(200, 20),
		Position: core.V(100, 110),
	})
	box, _ := s.AddBody(BodySpec{
		Kind:          Dynamic,
		Category:      CategoryPlayer,
		Shape:         ShapeBox,
		Size:          core.V(10, 10),
		Mass:          1,
		FixedRotation: true,
		Position:      core.V(1000, 1000),
	})

	s.SetPosition(box, core.V(100, 90))
	if got := s.Position(box); got != core.V(100, 90) {
		t.Fatalf("Position = %v, expected (100, 90)", got)
	}

	began := false
	for i := 0; i < 60; i++ {
		s.Advance(testDT, func(ev Event) bool {
			if ev.Phase == PhaseBegin {
				began = true
			}
			return true
		})
	}
	if !began {
		t.Error("Teleported box should land on the ground")
	}
	if y := s.Position(box).Y; y > 100 {
		t.Errorf("Teleported box fell through the ground, y = %f", y)
	}
}

func TestSpacePreSolveRejectLetsBodiesPass(t *testing.T) {
	s := NewSpace(core.V(0, 300))

	s.AddBody(BodySpec{
		Kind:     Static,
		Category: CategoryBlock,
		Shape:    ShapeBox,
		Size:     core.V(200, 20),
		Position: core.V(100, 110),
	})
	box, _ := s.AddBody(BodySpec{
		Kind:     Dynamic,
		Category: CategoryItem,
		Shape:    ShapeCircle,
		Radius:   4,
		Mass:     1,
		Position: core.V(100, 90),
	})

	for i := 0; i < 200; i++ {
		s.Advance(testDT, func(Event) bool { return false })
	}

	if y := s.Position(box).Y; y < 130 {
		t.Errorf("Rejected contact should let the item fall through, y = %f", y)
	}
}

func TestSpaceRemoveBody(t *testing.T) {
	s := NewSpace(core.V(0, 0))

	id, _ := s.AddBody(BodySpec{
		Kind:     Dynamic,
		Category: CategoryItem,
		Shape:    ShapeCircle,
		Radius:   4,
		Mass:     1,
	})

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", s.Len())
	}
	if err := s.RemoveBody(id); err != nil {
		t.Fatalf("RemoveBody() failed: %v", err)
	}
	if s.Contains(id) {
		t.Error("Removed body should not be contained")
	}

	err := s.RemoveBody(id)
	if !errors.Is(err, ErrUnknownBody) {
		t.Errorf("Second RemoveBody() error = %v, expected ErrUnknownBody", err)
	}
}

func TestBodySpecValidate(t *testing.T) {
	tests := []struct {
		name  string
		spec  BodySpec
		valid bool
	}{
		{"box", BodySpec{Category: CategoryMob, Size: core.V(1, 1), Mass: 1}, true},
		{"zero size", BodySpec{Category: CategoryMob, Mass: 1}, false},
		{"massless dynamic", BodySpec{Category: CategoryMob, Size: core.V(1, 1)}, false},
		{"massless static", BodySpec{Kind: Static, Category: CategoryBlock, Size: core.V(1, 1)}, true},
		{"circle without radius", BodySpec{Category: CategoryItem, Shape: ShapeCircle, Mass: 1}, false},
		{"no category", BodySpec{Size: core.V(1, 1), Mass: 1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.spec.Validate()
			if (err == nil) != tc.valid {
				t.Errorf("Validate() = %v, expected valid=%v", err, tc.valid)
			}
		})
	}
}

package world

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/entity"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
	"github.com/vovakirdan/tui-sandbox/internal/physics/physicstest"
)

const testDT = 0.015

func newScriptedWorld(t *testing.T) (*World, *physicstest.Scripted) {
	t.Helper()
	backend := physicstest.New()
	return New(backend, config.DefaultWorldConfig()), backend
}

// playerAndItem adds a player and a dropped apple far apart.
func playerAndItem(t *testing.T, w *World) (*entity.Player, *entity.DroppedItem) {
	t.Helper()
	p := entity.NewPlayer(w.Config().Player)
	if err := w.AddPlayer(p, core.V(100, 100)); err != nil {
		t.Fatalf("AddPlayer() failed: %v", err)
	}
	apple, _ := entity.NewItem("apple")
	d, err := w.AddItem(apple, core.V(300, 100))
	if err != nil {
		t.Fatalf("AddItem() failed: %v", err)
	}
	return p, d
}

type call struct {
	a, b  string
	phase physics.Phase
}

func recorder(calls *[]call, phase physics.Phase, result bool) HandlerFunc {
	return func(a, b entity.Entity, _ *StepData) bool {
		*calls = append(*calls, call{a: a.Kind(), b: b.Kind(), phase: phase})
		return result
	}
}

func TestDispatchUnorderedPair(t *testing.T) {
	orders := []struct {
		name        string
		first, last physics.Category
		wantA       string
	}{
		{"player first", physics.CategoryPlayer, physics.CategoryItem, "player"},
		{"item first", physics.CategoryItem, physics.CategoryPlayer, "apple"},
	}

	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			w, backend := newScriptedWorld(t)
			p, d := playerAndItem(t, w)

			var calls []call
			w.AddCollisionHandler(tc.first, tc.last, Handlers{
				Begin: recorder(&calls, physics.PhaseBegin, true),
			})

			pid, did := p.Body().ID(), d.Body().ID()
			backend.Inject(
				physics.Event{A: pid, B: did, Phase: physics.PhaseBegin},
				physics.Event{A: did, B: pid, Phase: physics.PhaseBegin},
			)
			w.Step(testDT)

			if len(calls) != 2 {
				t.Fatalf("Handler calls = %d, expected 2", len(calls))
			}
			for _, c := range calls {
				if c.a != tc.wantA {
					t.Errorf("First handler argument = %s, expected %s", c.a, tc.wantA)
				}
			}
		})
	}
}

func TestDispatchReRegistrationReplaces(t *testing.T) {
	w, backend := newScriptedWorld(t)
	p, d := playerAndItem(t, w)

	var first, second []call
	w.AddCollisionHandler(physics.CategoryPlayer, physics.CategoryItem, Handlers{
		Begin: recorder(&first, physics.PhaseBegin, true),
	})
	w.AddCollisionHandler(physics.CategoryItem, physics.CategoryPlayer, Handlers{
		Begin: recorder(&second, physics.PhaseBegin, true),
	})

	backend.Inject(physics.Event{A: p.Body().ID(), B: d.Body().ID(), Phase: physics.PhaseBegin})
	w.Step(testDT)

	if len(first) != 0 {
		t.Errorf("Replaced handler was called %d times", len(first))
	}
	if len(second) != 1 || second[0].a != "apple" {
		t.Errorf("Replacement calls = %v, expected one with the item first", second)
	}
}

func TestDispatchPreSolveRejects(t *testing.T) {
	w, backend := newScriptedWorld(t)
	p, d := playerAndItem(t, w)

	w.AddCollisionHandler(physics.CategoryPlayer, physics.CategoryItem, Handlers{
		PreSolve: func(entity.Entity, entity.Entity, *StepData) bool { return false },
	})

	backend.Inject(
		physics.Event{A: p.Body().ID(), B: d.Body().ID(), Phase: physics.PhasePreSolve},
		physics.Event{A: p.Body().ID(), B: d.Body().ID(), Phase: physics.PhasePostSolve},
	)
	w.Step(testDT)

	if len(backend.Results) != 2 || backend.Results[0] || !backend.Results[1] {
		t.Errorf("Results = %v, expected [false true]", backend.Results)
	}
}

func TestDispatchBeginRejectSuppressesPostSolve(t *testing.T) {
	w, backend := newScriptedWorld(t)
	p, d := playerAndItem(t, w)

	var calls []call
	w.AddCollisionHandler(physics.CategoryPlayer, physics.CategoryItem, Handlers{
		Begin:     recorder(&calls, physics.PhaseBegin, false),
		PostSolve: recorder(&calls, physics.PhasePostSolve, true),
	})

	pid, did := p.Body().ID(), d.Body().ID()
	backend.Inject(
		physics.Event{A: pid, B: did, Phase: physics.PhaseBegin},
		physics.Event{A: pid, B: did, Phase: physics.PhasePostSolve},
	)
	w.Step(testDT)

	if len(calls) != 1 || calls[0].phase != physics.PhaseBegin {
		t.Fatalf("Calls = %v, expected only the begin handler", calls)
	}

	backend.Inject(
		physics.Event{A: did, B: pid, Phase: physics.PhaseSeparate},
		physics.Event{A: pid, B: did, Phase: physics.PhasePostSolve},
	)
	w.Step(testDT)

	if len(calls) != 2 || calls[1].phase != physics.PhasePostSolve {
		t.Errorf("Calls = %v, expected post-solve after separation", calls)
	}
}

func TestDispatchMissingPairIsNoop(t *testing.T) {
	w, backend := newScriptedWorld(t)
	p, d := playerAndItem(t, w)

	backend.Inject(physics.Event{A: p.Body().ID(), B: d.Body().ID(), Phase: physics.PhasePreSolve})
	w.Step(testDT)

	if len(backend.Results) != 1 || !backend.Results[0] {
		t.Errorf("Results = %v, expected the contact accepted", backend.Results)
	}
	if w.Stats().Handled != 0 {
		t.Errorf("Handled = %d, expected 0", w.Stats().Handled)
	}
}

func TestDispatchUnknownBodyPanics(t *testing.T) {
	w, backend := newScriptedWorld(t)
	p, _ := playerAndItem(t, w)

	backend.Inject(physics.Event{A: p.Body().ID(), B: 999, Phase: physics.PhaseBegin})

	defer func() {
		r := recover()
		ie, ok := r.(*InvariantError)
		if !ok {
			t.Fatalf("recover() = %v, expected *InvariantError", r)
		}
		if ie.Body != 999 || !errors.Is(ie, ErrUnknownBody) {
			t.Errorf("InvariantError = %v, expected unknown body 999", ie)
		}
	}()
	w.Step(testDT)
	t.Fatal("Step() should panic on an unregistered body")
}

func TestDispatchSkipsPendingEntities(t *testing.T) {
	w, backend := newScriptedWorld(t)
	p, d := playerAndItem(t, w)

	calls := 0
	w.AddCollisionHandler(physics.CategoryPlayer, physics.CategoryItem, Handlers{
		Begin: func(_, b entity.Entity, data *StepData) bool {
			calls++
			data.World.RemoveEntity(b)
			return true
		},
	})

	ev := physics.Event{A: p.Body().ID(), B: d.Body().ID(), Phase: physics.PhaseBegin}
	backend.Inject(ev, ev)
	w.Step(testDT)

	if calls != 1 {
		t.Errorf("Handler calls = %d, expected 1 once the item is pending", calls)
	}
	if !d.Released() {
		t.Error("Item should be released at the end of the tick")
	}
}

func TestAddDuringAdvanceIsRejected(t *testing.T) {
	w, backend := newScriptedWorld(t)
	p, d := playerAndItem(t, w)

	var addErr error
	w.AddCollisionHandler(physics.CategoryPlayer, physics.CategoryItem, Handlers{
		Begin: func(_, _ entity.Entity, data *StepData) bool {
			wool, _ := entity.NewItem("wool")
			_, addErr = data.World.AddItem(wool, core.V(0, 0))
			return true
		},
	})

	backend.Inject(physics.Event{A: p.Body().ID(), B: d.Body().ID(), Phase: physics.PhaseBegin})
	w.Step(testDT)

	if !errors.Is(addErr, ErrLocked) {
		t.Errorf("AddItem() during advance error = %v, expected ErrLocked", addErr)
	}
}

package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
	"github.com/vovakirdan/tui-sandbox/internal/physics/physicstest"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox"
	"github.com/vovakirdan/tui-sandbox/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{runes("a"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{runes("k"), core.ActionCursorUp, false},
		{runes("x"), core.ActionUse, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionUse, false},
		{runes("c"), core.ActionPlace, false},
		{runes("n"), core.ActionNextItem, false},
		{runes("p"), core.ActionPause, false},
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runes("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := keys.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}
}

func TestMapKeyToFrameSkipsQuit(t *testing.T) {
	keys := DefaultKeyMap()
	frame := core.NewInputFrame()

	if !keys.MapKeyToFrame(runes("q"), &frame) {
		t.Error("q should be a quit request")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("Quit should not be forwarded to the session")
	}
	keys.MapKeyToFrame(runes("d"), &frame)
	if !frame.Has(core.ActionRight) {
		t.Error("d should set ActionRight")
	}
}

func TestRunRows(t *testing.T) {
	created := time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC)
	rows := runRows([]storage.Run{
		{ID: 7, Scenario: "hive", Ticks: 900, MobsKilled: 3, ItemsCollected: 2, BlocksMined: 1, Died: true, CreatedAt: created},
		{ID: 8, Scenario: "simple", Ticks: 12},
	})

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	want := []string{"7", "hive", "900", "3", "2", "1", "died", "Mar 04 05:06"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("rows[0][%d] = %q, expected %q", i, rows[0][i], cell)
		}
	}
	if rows[1][6] != "quit" {
		t.Errorf("Surviving run end = %q, expected quit", rows[1][6])
	}
}

func newModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	s, err := sandbox.New("simple", config.DefaultWorldConfig(),
		sandbox.WithBackend(func(core.Vec2) physics.Backend { return physicstest.New() }))
	if err != nil {
		t.Fatalf("sandbox.New() failed: %v", err)
	}
	cfg := core.DefaultConfig()
	cfg.Seed = 3
	if err := s.Reset(cfg); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return NewModel(s, store, cfg, nil)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func TestModelTicksSession(t *testing.T) {
	m := newModel(t, nil)

	for i := 0; i < 3; i++ {
		m = update(t, m, TickMsg(time.Now()))
	}
	if m.State().Tick != 3 {
		t.Errorf("Tick = %d, expected 3", m.State().Tick)
	}

	m = update(t, m, runes("p"))
	m = update(t, m, TickMsg(time.Now()))
	if !m.State().Paused {
		t.Error("p then a tick should pause the session")
	}

	view := m.View()
	if !strings.Contains(view, "PAUSED") {
		t.Error("View should show the pause banner")
	}
}

func TestModelRecordsRunOnQuit(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newModel(t, store)
	for i := 0; i < 5; i++ {
		m = update(t, m, TickMsg(time.Now()))
	}
	m = update(t, m, runes("q"))
	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	// A second quit must not record twice.
	update(t, m, runes("q"))

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 recorded run, got %d", len(runs))
	}
	if runs[0].Scenario != "simple" || runs[0].Ticks != 5 || runs[0].Died {
		t.Errorf("Recorded run = %+v", runs[0])
	}
}

func TestModelBackReturnsToMenu(t *testing.T) {
	m := newModel(t, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Error("Esc should request the menu without quitting")
	}
}

func TestSessionModelFlow(t *testing.T) {
	cfg := core.DefaultConfig()
	m := NewSessionModel(nil, config.DefaultWorldConfig(), cfg, nil)
	if !strings.Contains(m.View(), "S A N D B O X") {
		t.Fatal("Session should start at the menu")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)
	if m.screen != screenWorld {
		t.Fatalf("Enter should open the world viewer, screen = %d", m.screen)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	if m.screen != screenMenu {
		t.Errorf("Esc should return to the menu, screen = %d", m.screen)
	}
}

func TestRenderScreenKeepsRowsAndText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(1, 0, "hi")
	s.SetColored(5, 1, '#', core.ColorBrown)
	s.DrawTextColored(2, 2, "bee", core.ColorYellow)

	out := RenderScreen(s)
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("Rendered %d line breaks, expected 2", n)
	}
	for _, want := range []string{"hi", "#", "bee"} {
		if !strings.Contains(out, want) {
			t.Errorf("Rendered screen is missing %q", want)
		}
	}
}

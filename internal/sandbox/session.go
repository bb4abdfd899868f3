// Package sandbox adapts a world to the platform's session contract: it
// owns a world and its player, maps input frames to player actions, steps
// the world once per tick and draws it into a character screen.
package sandbox

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/entity"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/storage"
	"github.com/vovakirdan/tui-sandbox/internal/world"

	// Built-in scenarios register themselves.
	_ "github.com/vovakirdan/tui-sandbox/internal/scenarios"
)

// BackendFactory creates the physics backend for a fresh world.
type BackendFactory func(gravity core.Vec2) physics.Backend

// Session is one playthrough of a scenario.
type Session struct {
	scenario   registry.Scenario
	worldCfg   config.WorldConfig
	logger     *log.Logger
	newBackend BackendFactory

	config core.RuntimeConfig
	world  *world.World
	player *entity.Player
	cursor core.Vec2 // Target point in world pixels
	held   int       // Index of the selected inventory stack
	paused bool
	dead   bool

	last world.Interaction
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger passed to every world the session creates.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBackend replaces the Chipmunk backend, e.g. with a scripted one in tests.
func WithBackend(f BackendFactory) Option {
	return func(s *Session) {
		if f != nil {
			s.newBackend = f
		}
	}
}

// New creates a session for a registered scenario. Call Reset before Step.
func New(scenarioID string, cfg config.WorldConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sc, err := registry.Create(scenarioID)
	if err != nil {
		return nil, err
	}

	s := &Session{
		scenario: sc,
		worldCfg: cfg,
		logger:   log.New(io.Discard),
		newBackend: func(gravity core.Vec2) physics.Backend {
			return physics.NewSpace(gravity)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the scenario id.
func (s *Session) ID() string { return s.scenario.ID() }

// Title returns the scenario display name.
func (s *Session) Title() string { return s.scenario.Title() }

// World returns the current world.
func (s *Session) World() *world.World { return s.world }

// Player returns the current player.
func (s *Session) Player() *entity.Player { return s.player }

// Cursor returns the target point in world pixels.
func (s *Session) Cursor() core.Vec2 { return s.cursor }

// Held returns the selected inventory stack, if the player carries anything.
func (s *Session) Held() (entity.Stack, bool) {
	if s.player == nil {
		return entity.Stack{}, false
	}
	stacks := s.player.Inventory().Stacks()
	if len(stacks) == 0 {
		return entity.Stack{}, false
	}
	return stacks[s.held%len(stacks)], true
}

// Seed returns the seed of the current world.
func (s *Session) Seed() int64 { return s.config.Seed }

// LastInteraction returns what the most recent use action did.
func (s *Session) LastInteraction() world.Interaction { return s.last }

// Reset builds a fresh world from the scenario with the runtime seed.
func (s *Session) Reset(cfg core.RuntimeConfig) error {
	s.config = cfg
	s.paused = false
	s.dead = false
	s.held = 0
	s.last = world.Interaction{}

	rng := rand.New(rand.NewSource(cfg.Seed))
	backend := s.newBackend(core.V(0, s.worldCfg.Physics.Gravity))
	w := world.New(backend, s.worldCfg, world.WithLogger(s.logger), world.WithRand(rng))
	w.InstallDefaultHandlers()

	p, err := s.scenario.Load(w, rng)
	if err != nil {
		return fmt.Errorf("sandbox: load %s: %w", s.scenario.ID(), err)
	}

	s.world = w
	s.player = p
	s.cursor = p.Position()
	s.logger.Debug("session reset", "scenario", s.scenario.ID(), "seed", cfg.Seed, "entities", w.Registry().Len())
	return nil
}

// Step applies input and advances the world by one tick.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if s.dead {
		if in.Has(core.ActionRestart) {
			if err := s.Reset(s.config); err != nil {
				s.logger.Error("restart failed", "error", err)
			}
		}
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	s.applyInput(in)
	s.world.Step(s.config.DT())

	if s.player.IsDead() || s.player.Released() {
		s.dead = true
		s.logger.Info("player died", "scenario", s.scenario.ID(), "tick", s.world.Tick())
	}
	return core.StepResult{State: s.State()}
}

func (s *Session) applyInput(in core.InputFrame) {
	p := s.player
	switch {
	case in.Has(core.ActionLeft):
		p.Move(-1, 0)
	case in.Has(core.ActionRight):
		p.Move(1, 0)
	}
	switch {
	case in.Has(core.ActionUp):
		p.Move(0, -1)
	case in.Has(core.ActionDown):
		p.Move(0, 1)
	}
	if in.Has(core.ActionJump) {
		p.Jump()
	}

	step := s.worldCfg.Grid.BlockSize
	if in.Has(core.ActionCursorLeft) {
		s.cursor.X -= step
	}
	if in.Has(core.ActionCursorRight) {
		s.cursor.X += step
	}
	if in.Has(core.ActionCursorUp) {
		s.cursor.Y -= step
	}
	if in.Has(core.ActionCursorDown) {
		s.cursor.Y += step
	}
	w, h := s.worldCfg.PixelSize()
	s.cursor.X = core.ClampF(s.cursor.X, 0, w-1)
	s.cursor.Y = core.ClampF(s.cursor.Y, 0, h-1)

	if in.Has(core.ActionUse) {
		res, err := s.world.Interact(p, s.cursor)
		if err != nil {
			s.logger.Warn("interaction failed", "error", err)
		}
		s.last = res
	}

	if in.Has(core.ActionNextItem) {
		if n := len(p.Inventory().Stacks()); n > 0 {
			s.held = (s.held%n + 1) % n
		}
	}
	if in.Has(core.ActionPlace) {
		s.placeHeld()
	}
}

// placeHeld puts the selected block into an empty cell at the cursor, or
// eats the selected item when it cannot be placed there.
func (s *Session) placeHeld() {
	st, ok := s.Held()
	if !ok {
		return
	}
	id := st.Item.ID
	if _, placeable := st.Item.BlockID(); placeable {
		_, occupied := s.world.BlockAt(s.cursor)
		if !occupied || !st.Item.Edible() {
			if err := s.world.Place(s.player, id, s.cursor); err != nil {
				s.logger.Debug("place rejected", "item", id, "error", err)
			}
			return
		}
	}
	if err := s.world.UseItem(s.player, id); err != nil {
		s.logger.Debug("use rejected", "item", id, "error", err)
	}
}

// State returns the current session state.
func (s *Session) State() core.SessionState {
	st := core.SessionState{Dead: s.dead, Paused: s.paused}
	if s.world != nil {
		stats := s.world.Stats()
		st.Tick = stats.Ticks
		st.MobsKilled = stats.MobsKilled
	}
	if s.player != nil {
		st.Health = s.player.Health()
		st.Food = s.player.Food()
	}
	return st
}

// Stats returns the world counters.
func (s *Session) Stats() world.Stats {
	if s.world == nil {
		return world.Stats{}
	}
	return s.world.Stats()
}

// Record summarizes the session as a run for storage.
func (s *Session) Record() storage.Run {
	st := s.Stats()
	r := storage.Run{
		Scenario:       s.scenario.ID(),
		Seed:           s.config.Seed,
		Ticks:          st.Ticks,
		MobsKilled:     st.MobsKilled,
		ItemsCollected: st.ItemsCollected,
		BlocksMined:    st.BlocksMined,
		Died:           s.dead,
	}
	if s.player != nil {
		r.Health = s.player.Health()
	}
	return r
}

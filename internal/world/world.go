// Package world owns every entity in a sandbox and steps them with a
// physics backend. A tick advances physics while contact events are
// dispatched to typed handlers, steps each mob, then reconciles removals
// requested along the way.
package world

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/entity"
	"github.com/vovakirdan/tui-sandbox/internal/mob"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
)

// Cell is a grid coordinate.
type Cell struct {
	Col, Row int
}

// World is the set of live entities plus the physics backend they live in.
// It is not safe for concurrent use.
type World struct {
	cfg      config.WorldConfig
	backend  physics.Backend
	registry *Registry
	dispatch *Dispatcher
	logger   *log.Logger
	rand     mob.Source

	blocks    map[Cell]*entity.Block
	resources map[string]bool

	pending    []entity.Entity
	pendingSet map[physics.BodyID]bool

	tick      uint64
	advancing bool
	stats     Stats
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for entity lifecycle and handler events.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithRand sets the random source mobs draw from.
func WithRand(src mob.Source) Option {
	return func(w *World) {
		if src != nil {
			w.rand = src
		}
	}
}

// WithSeed seeds a math/rand source for mobs.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// New creates an empty world on top of backend.
func New(backend physics.Backend, cfg config.WorldConfig, opts ...Option) *World {
	registry := NewRegistry()
	w := &World{
		cfg:        cfg,
		backend:    backend,
		registry:   registry,
		dispatch:   NewDispatcher(registry),
		logger:     log.New(io.Discard),
		rand:       rand.New(rand.NewSource(1)),
		blocks:     make(map[Cell]*entity.Block),
		resources:  make(map[string]bool),
		pendingSet: make(map[physics.BodyID]bool),
	}
	for _, kind := range cfg.Mobs.Bee.ResourceBlocks {
		w.resources[kind] = true
	}
	w.dispatch.skip = w.isPending
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Config returns the world configuration.
func (w *World) Config() config.WorldConfig { return w.cfg }

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 { return w.tick }

// Registry exposes the body-to-entity map.
func (w *World) Registry() *Registry { return w.registry }

// Logger returns the world logger.
func (w *World) Logger() *log.Logger { return w.logger }

// Add creates a body for e at pos and registers it.
func (w *World) Add(e entity.Entity, pos core.Vec2) error {
	if w.advancing {
		return fmt.Errorf("world: add %s: %w", e.Kind(), ErrLocked)
	}
	if e.Body().Attached() {
		return fmt.Errorf("world: add %s: %w", e.Kind(), ErrDuplicateRegistration)
	}

	spec := e.BodySpec()
	spec.Position = pos
	if spec.Friction == 0 {
		spec.Friction = w.cfg.Physics.Friction
	}

	id, err := w.backend.AddBody(spec)
	if err != nil {
		return fmt.Errorf("world: add %s: %w", e.Kind(), err)
	}
	if err := w.registry.Register(e, id, spec.Category); err != nil {
		_ = w.backend.RemoveBody(id)
		return err
	}
	e.Bind(physics.NewHandle(w.backend, id))

	w.logger.Debug("entity added", "kind", e.Kind(), "category", spec.Category, "body", id, "x", pos.X, "y", pos.Y)
	return nil
}

// AddPlayer places a player with its centre at pos.
func (w *World) AddPlayer(p *entity.Player, pos core.Vec2) error {
	return w.Add(p, pos)
}

// AddMob places a mob with its centre at pos.
func (w *World) AddMob(m *mob.Mob, pos core.Vec2) error {
	return w.Add(m, pos)
}

// AddItem drops item into the world at pos.
func (w *World) AddItem(item entity.Item, pos core.Vec2) (*entity.DroppedItem, error) {
	d := entity.NewDroppedItem(item, w.cfg.Items)
	if err := w.Add(d, pos); err != nil {
		return nil, err
	}
	return d, nil
}

// AddBlockAt places b in the grid cell (col, row).
func (w *World) AddBlockAt(b *entity.Block, col, row int) error {
	cell := Cell{Col: col, Row: row}
	if col < 0 || row < 0 || col >= w.cfg.Grid.Width || row >= w.cfg.Grid.Height {
		return fmt.Errorf("world: block at %d,%d: %w", col, row, ErrOutOfBounds)
	}
	if _, ok := w.blocks[cell]; ok {
		return fmt.Errorf("world: block at %d,%d: %w", col, row, ErrCellOccupied)
	}

	b.SetSize(w.cfg.Grid.BlockSize)
	if err := w.Add(b, w.CellCentre(col, row)); err != nil {
		return err
	}
	w.blocks[cell] = b
	return nil
}

// CellCentre returns the pixel centre of a grid cell.
func (w *World) CellCentre(col, row int) core.Vec2 {
	size := w.cfg.Grid.BlockSize
	return core.V((float64(col)+0.5)*size, (float64(row)+0.5)*size)
}

// CellAt returns the grid cell containing pos.
func (w *World) CellAt(pos core.Vec2) Cell {
	size := w.cfg.Grid.BlockSize
	return Cell{Col: floorDiv(pos.X, size), Row: floorDiv(pos.Y, size)}
}

// BlockAt returns the block in the cell containing pos, if any.
func (w *World) BlockAt(pos core.Vec2) (*entity.Block, bool) {
	b, ok := w.blocks[w.CellAt(pos)]
	if !ok || w.isPending(b) {
		return nil, false
	}
	return b, true
}

// AddCollisionHandler registers handlers for the unordered category pair.
// A later registration for the same pair replaces the earlier one.
func (w *World) AddCollisionHandler(a, b physics.Category, h Handlers) {
	w.dispatch.Add(a, b, h)
	w.logger.Debug("collision handler registered", "first", a, "second", b)
}

// RemoveEntity queues e for removal at the end of the current tick, or at
// the next reconcile when called between ticks. It reports whether e was
// queued; removing an entity that is already queued or gone does nothing.
func (w *World) RemoveEntity(e entity.Entity) bool {
	if e == nil || e.Released() {
		return false
	}
	id := e.Body().ID()
	if id == 0 || w.pendingSet[id] || !w.registry.Contains(id) {
		return false
	}
	w.pendingSet[id] = true
	w.pending = append(w.pending, e)
	return true
}

// Pending reports whether e is queued for removal.
func (w *World) Pending(e entity.Entity) bool {
	return w.isPending(e)
}

func (w *World) isPending(e entity.Entity) bool {
	return w.pendingSet[e.Body().ID()]
}

// Step runs one tick: physics with contact dispatch, mob behaviour, then
// removal of everything queued during the tick.
func (w *World) Step(dt float64) {
	w.tick++
	data := &StepData{World: w, Tick: w.tick, DT: dt}

	w.advancing = true
	func() {
		defer func() { w.advancing = false }()
		w.backend.Advance(dt, func(ev physics.Event) bool {
			w.stats.Contacts++
			return w.dispatch.Dispatch(ev, data)
		})
	}()

	w.stepMobs(dt)
	w.reconcile()
}

func (w *World) stepMobs(dt float64) {
	ctx := mob.StepContext{DT: dt, Tick: w.tick, Rand: w.rand}

	var players []core.Vec2
	for _, p := range w.Players() {
		players = append(players, p.Position())
	}

	for _, m := range w.Mobs() {
		m.Step(ctx, players, w.resourcesNear(m.Position()))
		if m.Dead() {
			w.RemoveEntity(m)
		}
	}
}

// resourcesNear returns positions of attracting blocks within the
// configured radius of pos.
func (w *World) resourcesNear(pos core.Vec2) []core.Vec2 {
	if len(w.resources) == 0 {
		return nil
	}
	radius := w.cfg.Mobs.Bee.AttractionRadius
	var out []core.Vec2
	for _, e := range w.registry.Entities() {
		b, ok := e.(*entity.Block)
		if !ok || !w.resources[b.Kind()] || w.isPending(b) {
			continue
		}
		if p := b.Position(); pos.Within(p, radius) {
			out = append(out, p)
		}
	}
	return out
}

// reconcile queues dead mobs and fallen bodies, then releases everything
// queued.
func (w *World) reconcile() {
	w.sweep()
	w.flush()
}

func (w *World) sweep() {
	_, height := w.cfg.PixelSize()
	floor := height * float64(1+w.cfg.Physics.FallOut)

	for _, e := range w.registry.Entities() {
		switch v := e.(type) {
		case *mob.Mob:
			if v.Dead() {
				w.RemoveEntity(v)
				continue
			}
		case *entity.Block:
			continue
		}
		if e.Position().Y > floor {
			w.logger.Debug("entity fell out of the world", "kind", e.Kind(), "body", e.Body().ID())
			w.RemoveEntity(e)
		}
	}
}

func (w *World) flush() {
	queued := w.pending
	w.pending = nil
	for _, e := range queued {
		w.release(e)
	}
}

func (w *World) release(e entity.Entity) {
	id := e.Body().ID()
	delete(w.pendingSet, id)

	if err := w.registry.Unregister(id); err != nil {
		panic(&InvariantError{Op: "unregister", Body: id, Err: err})
	}
	e.Release()
	if err := w.backend.RemoveBody(id); err != nil {
		panic(&InvariantError{Op: "release", Body: id, Err: err})
	}
	w.dispatch.Forget(id)

	switch v := e.(type) {
	case *entity.Block:
		if cell := w.CellAt(v.Position()); w.blocks[cell] == v {
			delete(w.blocks, cell)
		}
	case *mob.Mob:
		if v.Dead() {
			w.stats.MobsKilled++
			w.logger.Debug("mob died", "kind", v.Kind(), "body", id)
		}
	}
	w.stats.Removed++
	w.logger.Debug("entity removed", "kind", e.Kind(), "body", id)
}

func floorDiv(v, size float64) int {
	q := int(v / size)
	if v < 0 && float64(q)*size != v {
		q--
	}
	return q
}

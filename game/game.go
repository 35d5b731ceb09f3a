// Package game wires the ECS world, the simulation systems and a game spec
// into a tick-driven snake match.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/ecs/system"
	"github.com/milk9111/snake/pathfind"
	"github.com/milk9111/snake/prefabs"
)

var (
	ErrNilSpec      = errors.New("game: nil spec")
	ErrUnknownSnake = errors.New("game: unknown snake")
)

type Option func(*Game)

func WithLogger(logger log.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithSelector overrides the target selector named by the spec. Reloads
// keep it.
func WithSelector(sel system.TargetSelector) Option {
	return func(g *Game) {
		g.selector = sel
		g.fixedSelector = sel != nil
	}
}

// WithDebug keeps every computer snake's last grid for inspection.
func WithDebug(debug bool) Option {
	return func(g *Game) { g.debug = debug }
}

// WithEventHandler receives every world event after the tick that raised it.
func WithEventHandler(fn func(ecs.Event)) Option {
	return func(g *Game) { g.onEvent = fn }
}

type Game struct {
	id     uuid.UUID
	spec   *prefabs.GameSpec
	logger log.Logger

	world       *ecs.World
	scheduler   *ecs.Scheduler
	state       *component.GameState
	spawner     *system.Spawner
	spawn       *system.SpawnSystem
	pathfinding *system.PathfindingSystem

	selector      system.TargetSelector
	fixedSelector bool
	debug         bool
	onEvent       func(ecs.Event)

	snakes map[string]ecs.Entity
	final  map[string]SnakeStats
}

// New builds a game from spec and places its snakes, the first food and a
// coin. The spec is validated first.
func New(spec *prefabs.GameSpec, opts ...Option) (*Game, error) {
	if spec == nil {
		return nil, ErrNilSpec
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		id:     uuid.New(),
		spec:   spec,
		logger: log.NewNopLogger(),
		world:  ecs.NewWorld(),
		snakes: make(map[string]ecs.Entity),
		final:  make(map[string]SnakeStats),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = log.With(g.logger, "game", g.id.String())
	g.debug = g.debug || spec.AI.Debug

	rng := rand.New(rand.NewPCG(spec.Seed, spec.Seed^0x9e3779b97f4a7c15))
	g.spawner = system.NewSpawner(spec, rng, g.logger)

	field := ecs.CreateEntity(g.world)
	if err := ecs.Add(g.world, field, component.PlayFieldComponent.Kind(), &component.PlayField{
		X:      spec.Field.X,
		Y:      spec.Field.Y,
		Width:  spec.Field.Width,
		Height: spec.Field.Height,
	}); err != nil {
		return nil, fmt.Errorf("game: add field: %w", err)
	}

	g.state = &component.GameState{
		State:        component.StateRunning,
		TickRate:     spec.TickRate,
		NextBombTick: g.spawner.FutureTicks(0, spec.Bomb.FirstSeconds),
	}
	stateEnt := ecs.CreateEntity(g.world)
	if err := ecs.Add(g.world, stateEnt, component.GameStateComponent.Kind(), g.state); err != nil {
		return nil, fmt.Errorf("game: add state: %w", err)
	}

	for _, s := range spec.Snakes {
		if err := g.addSnake(s); err != nil {
			return nil, err
		}
	}
	for range spec.Food.Count {
		g.spawner.SpawnFood(g.world)
	}
	g.spawner.SpawnCoin(g.world, 0)

	if g.selector == nil {
		g.selector = system.NewSelector(spec.AI, g.logger)
	}
	g.pathfinding = system.NewPathfindingSystem(g.selector, g.logger)
	g.spawn = system.NewSpawnSystem(g.spawner, spec, g.logger)

	g.scheduler = ecs.NewScheduler()
	g.scheduler.Add("pathfinding", g.pathfinding)
	g.scheduler.Add("movement", system.NewMovementSystem())
	g.scheduler.Add("collision", system.NewCollisionSystem(g.spawner, g.logger))
	g.scheduler.Add("spawn", g.spawn)
	g.scheduler.Add("ttl", system.NewTTLSystem())
	g.scheduler.Add("gameover", system.NewGameOverSystem(g.logger))
	g.scheduler.Add("record", ecs.SystemFunc(g.recordDeaths))
	g.scheduler.Add("cleanup", system.NewCleanupSystem())

	_ = level.Info(g.logger).Log("msg", "game started", "spec", spec.Name, "snakes", len(spec.Snakes), "seed", spec.Seed)
	return g, nil
}

func (g *Game) addSnake(s prefabs.SnakeSpec) error {
	dx, dy := s.Direction.Delta()
	parts := make([]component.Segment, g.spec.Snake.StartLength)
	for i := range parts {
		parts[i] = component.Segment{
			X: s.X - float64(i*dx),
			Y: s.Y - float64(i*dy),
		}
	}

	e := ecs.CreateEntity(g.world)
	snake := &component.Snake{
		Name:         s.Name,
		Parts:        parts,
		Direction:    s.Direction,
		GrowthOnFeed: g.spec.Snake.GrowthOnFeed,
	}
	if err := ecs.Add(g.world, e, component.SnakeComponent.Kind(), snake); err != nil {
		return fmt.Errorf("game: add snake %s: %w", s.Name, err)
	}

	var err error
	switch s.Control {
	case prefabs.ControlPlayer:
		err = ecs.Add(g.world, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	default:
		err = errors.Join(
			ecs.Add(g.world, e, component.ComputerTagComponent.Kind(), &component.ComputerTag{}),
			ecs.Add(g.world, e, component.PathfindingComponent.Kind(), &component.Pathfinding{Debug: g.debug}),
		)
	}
	if err != nil {
		return fmt.Errorf("game: tag snake %s: %w", s.Name, err)
	}
	g.snakes[s.Name] = e
	return nil
}

// Update advances the game by one tick. Paused and stopped games do not
// advance.
func (g *Game) Update() error {
	if g.state.State != component.StateRunning {
		return nil
	}
	g.state.Ticks++
	g.scheduler.Update(g.world)

	for _, evt := range g.world.Events().Drain() {
		if evt.Type == ecs.EventGameOver {
			_ = level.Info(g.logger).Log("msg", "game over", "ticks", g.state.Ticks, "score", g.Snapshot().Score)
		}
		if g.onEvent != nil {
			g.onEvent(evt)
		}
	}
	return nil
}

func (g *Game) Running() bool {
	return g.state.State != component.StateStopped
}

func (g *Game) Paused() bool {
	return g.state.State == component.StatePaused
}

// SetPaused pauses or resumes a game that has not ended.
func (g *Game) SetPaused(paused bool) {
	switch {
	case !g.Running():
	case paused:
		g.state.State = component.StatePaused
	default:
		g.state.State = component.StateRunning
	}
}

func (g *Game) Ticks() int {
	return g.state.Ticks
}

func (g *Game) TickRate() int {
	return g.state.TickRate
}

func (g *Game) ID() uuid.UUID {
	return g.id
}

func (g *Game) World() *ecs.World {
	return g.world
}

func (g *Game) Spec() *prefabs.GameSpec {
	return g.spec
}

// Timings reports the time spent in each system so far.
func (g *Game) Timings() []ecs.Timing {
	return g.scheduler.Timings()
}

// Steer turns the named snake. A turn that would put the head on the neck
// is ignored and reported as false, even after several turns in one tick.
func (g *Game) Steer(name string, dir pathfind.Direction) (bool, error) {
	snake, ok := g.snake(name)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownSnake, name)
	}
	if dir == pathfind.None || snake.Reverses(dir) {
		return false, nil
	}
	snake.Direction = dir
	return true, nil
}

// Debug returns the last grid and path searched by the named computer
// snake. It needs debug mode.
func (g *Game) Debug(name string) (*pathfind.Grid, pathfind.Path, bool) {
	e, ok := g.snakes[name]
	if !ok {
		return nil, nil, false
	}
	pf, ok := ecs.Get(g.world, e, component.PathfindingComponent.Kind())
	if !ok || pf.Grid == nil {
		return nil, nil, false
	}
	return pf.Grid, pf.Path, true
}

// Reload applies a new spec to the running game. Spawn rules, tick rate and
// AI take effect at once; the field and the snakes already placed stay.
func (g *Game) Reload(spec *prefabs.GameSpec) error {
	if spec == nil {
		return ErrNilSpec
	}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("game: reload: %w", err)
	}
	if spec.Field != g.spec.Field {
		_ = level.Warn(g.logger).Log("msg", "field change ignored until restart")
	}

	g.spec = spec
	g.spawner.Configure(spec)
	g.spawn.Configure(spec)
	g.state.TickRate = spec.TickRate
	if !g.fixedSelector {
		g.selector = system.NewSelector(spec.AI, g.logger)
		g.pathfinding.SetSelector(g.selector)
	}

	debug := g.debug || spec.AI.Debug
	ecs.ForEach(g.world, component.PathfindingComponent.Kind(), func(_ ecs.Entity, pf *component.Pathfinding) {
		pf.Debug = debug
	})

	_ = level.Info(g.logger).Log("msg", "spec reloaded", "spec", spec.Name)
	return nil
}

func (g *Game) snake(name string) (*component.Snake, bool) {
	e, ok := g.snakes[name]
	if !ok {
		return nil, false
	}
	return ecs.Get(g.world, e, component.SnakeComponent.Kind())
}

// recordDeaths keeps the final stats of snakes about to be cleaned up.
func (g *Game) recordDeaths(w *ecs.World) {
	ecs.ForEach2(w, component.SnakeComponent.Kind(), component.DeadComponent.Kind(), func(e ecs.Entity, s *component.Snake, d *component.Dead) {
		st := statsOf(w, e, s)
		st.Cause = d.Cause
		g.final[s.Name] = st
	})
}

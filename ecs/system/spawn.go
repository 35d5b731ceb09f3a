package system

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/prefabs"
)

// SpawnSystem keeps food on the field and drops bombs on a random timer,
// retiring the oldest bomb once the cap is exceeded.
type SpawnSystem struct {
	spawner *Spawner
	bomb    prefabs.BombSpec
	food    int
	logger  log.Logger
}

func NewSpawnSystem(spawner *Spawner, spec *prefabs.GameSpec, logger log.Logger) *SpawnSystem {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	s := &SpawnSystem{spawner: spawner, logger: logger}
	s.Configure(spec)
	return s
}

func (s *SpawnSystem) Configure(spec *prefabs.GameSpec) {
	if spec == nil {
		return
	}
	s.bomb = spec.Bomb
	s.food = spec.Food.Count
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if w == nil || s.spawner == nil {
		return
	}
	gs, ok := gameState(w)
	if !ok || gs.State != component.StateRunning {
		return
	}

	s.keepFood(w)

	if s.bomb.Max <= 0 || gs.Ticks < gs.NextBombTick {
		return
	}
	gs.NextBombTick = s.spawner.FutureTicks(gs.Ticks, s.bomb.NextSeconds)
	bomb, ok := s.spawner.SpawnBomb(w, gs.Ticks)
	if !ok {
		return
	}
	w.Events().Push(ecs.Event{Type: ecs.EventBombSpawn, Data: bomb})
	_ = level.Debug(s.logger).Log("msg", "bomb spawned", "bomb", bomb, "tick", gs.Ticks, "next", gs.NextBombTick)
	s.retireBombs(w)
}

func (s *SpawnSystem) keepFood(w *ecs.World) {
	live := 0
	ecs.ForEach(w, component.FoodTagComponent.Kind(), func(e ecs.Entity, _ *component.FoodTag) {
		if !isDead(w, e) {
			live++
		}
	})
	for ; live < s.food; live++ {
		if _, ok := s.spawner.SpawnFood(w); !ok {
			return
		}
	}
}

func (s *SpawnSystem) retireBombs(w *ecs.World) {
	type bomb struct {
		e    ecs.Entity
		tick int
	}
	var bombs []bomb
	ecs.ForEach(w, component.BombTagComponent.Kind(), func(e ecs.Entity, b *component.BombTag) {
		if !isDead(w, e) {
			bombs = append(bombs, bomb{e: e, tick: b.SpawnTick})
		}
	})
	for len(bombs) > s.bomb.Max {
		oldest := 0
		for i, b := range bombs[1:] {
			if b.tick < bombs[oldest].tick {
				oldest = i + 1
			}
		}
		kill(w, bombs[oldest].e, "retired")
		bombs = append(bombs[:oldest], bombs[oldest+1:]...)
	}
}

package system

import (
	"math"
	"math/rand/v2"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/prefabs"
)

const maxPlacementAttempts = 512

// Spawner creates food, coins and bombs at random free spots of the field.
// The collision and spawn systems share one so a seed replays a game.
type Spawner struct {
	rng      *rand.Rand
	food     prefabs.FoodSpec
	coin     prefabs.CoinSpec
	bomb     prefabs.BombSpec
	tickRate int
	logger   log.Logger
}

func NewSpawner(spec *prefabs.GameSpec, rng *rand.Rand, logger log.Logger) *Spawner {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	s := &Spawner{rng: rng, logger: logger}
	s.Configure(spec)
	return s
}

// Configure swaps in new spawn rules. Entities already on the field keep
// their size.
func (s *Spawner) Configure(spec *prefabs.GameSpec) {
	if spec == nil {
		return
	}
	s.food = spec.Food
	s.coin = spec.Coin
	s.bomb = spec.Bomb
	s.tickRate = spec.TickRate
}

// FutureTicks returns a tick between r.Min and r.Max seconds after now.
func (s *Spawner) FutureTicks(now int, r prefabs.Range) int {
	return now + s.intBetween(r.Min, r.Max)*s.tickRate
}

// RollCoin reports whether eating food should drop a coin.
func (s *Spawner) RollCoin() bool {
	return s.rng.Float64() < s.coin.Chance
}

func (s *Spawner) SpawnFood(w *ecs.World) (ecs.Entity, bool) {
	e, ok := s.spawn(w, s.food.Width, s.food.Height)
	if !ok {
		return 0, false
	}
	_ = ecs.Add(w, e, component.FoodTagComponent.Kind(), &component.FoodTag{})
	return e, true
}

func (s *Spawner) SpawnCoin(w *ecs.World, now int) (ecs.Entity, bool) {
	e, ok := s.spawn(w, s.coin.Width, s.coin.Height)
	if !ok {
		return 0, false
	}
	_ = ecs.Add(w, e, component.CoinTagComponent.Kind(), &component.CoinTag{})
	ttl := s.FutureTicks(now, s.coin.TTLSeconds) - now
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Ticks: ttl, Born: now})
	return e, true
}

func (s *Spawner) SpawnBomb(w *ecs.World, now int) (ecs.Entity, bool) {
	e, ok := s.spawn(w, s.bomb.Width, s.bomb.Height)
	if !ok {
		return 0, false
	}
	_ = ecs.Add(w, e, component.BombTagComponent.Kind(), &component.BombTag{SpawnTick: now})
	return e, true
}

func (s *Spawner) spawn(w *ecs.World, width, height float64) (ecs.Entity, bool) {
	t, ok := s.place(w, width, height)
	if !ok {
		_ = level.Warn(s.logger).Log("msg", "no free spot", "width", width, "height", height)
		return 0, false
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &t)
	_ = ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Width: width, Height: height, Collidable: true})
	return e, true
}

// place picks a random whole-cell position inside the field where a
// width x height box hits nothing collidable.
func (s *Spawner) place(w *ecs.World, width, height float64) (component.Transform, bool) {
	field, ok := playField(w)
	if !ok {
		return component.Transform{}, false
	}
	spanX := int(math.Floor(field.Width - width))
	spanY := int(math.Floor(field.Height - height))
	if spanX < 0 || spanY < 0 {
		return component.Transform{}, false
	}

	blockers := obstacles(w, 0)
	for range maxPlacementAttempts {
		t := component.Transform{
			X: field.X + float64(s.rng.IntN(spanX+1)),
			Y: field.Y + float64(s.rng.IntN(spanY+1)),
		}
		bb := component.Box{X: t.X, Y: t.Y, W: width, H: height}.Bounds()
		free := true
		for _, o := range blockers {
			if collides(bb, o) {
				free = false
				break
			}
		}
		if free {
			return t, true
		}
	}
	return component.Transform{}, false
}

func (s *Spawner) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}

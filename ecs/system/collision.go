package system

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

// Death causes recorded on Dead and in snake_died events.
const (
	CauseWall  = "wall"
	CauseSelf  = "self"
	CauseSnake = "snake"
	CauseBomb  = "bomb"
)

// CollisionSystem resolves what every snake head touched after moving.
// Deaths are decided against the positions at the start of the system so
// two heads meeting both die.
type CollisionSystem struct {
	spawner *Spawner
	logger  log.Logger
}

func NewCollisionSystem(spawner *Spawner, logger log.Logger) *CollisionSystem {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &CollisionSystem{spawner: spawner, logger: logger}
}

type snakeRef struct {
	e     ecs.Entity
	snake *component.Snake
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	field, ok := playField(w)
	if !ok {
		return
	}
	now := 0
	if gs, ok := gameState(w); ok {
		now = gs.Ticks
	}

	var snakes []snakeRef
	ecs.ForEach(w, component.SnakeComponent.Kind(), func(e ecs.Entity, snake *component.Snake) {
		if !isDead(w, e) && len(snake.Parts) > 0 {
			snakes = append(snakes, snakeRef{e: e, snake: snake})
		}
	})

	deaths := make(map[ecs.Entity]string)
	for _, ref := range snakes {
		if cause := s.fatal(w, ref, snakes, field); cause != "" {
			deaths[ref.e] = cause
		}
	}

	for _, ref := range snakes {
		if cause, dead := deaths[ref.e]; dead {
			kill(w, ref.e, cause)
			w.Events().Push(ecs.Event{Type: ecs.EventSnakeDied, Data: ecs.SnakeEvent{Snake: ref.e, Cause: cause}})
			_ = level.Info(s.logger).Log("msg", "snake died", "snake", ref.snake.Name, "cause", cause, "len", len(ref.snake.Parts))
			continue
		}
		s.eat(w, ref, now)
	}
}

func (s *CollisionSystem) fatal(w *ecs.World, ref snakeRef, snakes []snakeRef, field *component.PlayField) string {
	head := ref.snake.Head().Bounds()
	if !field.Bounds().Contains(head) {
		return CauseWall
	}
	for _, part := range ref.snake.Parts[1:] {
		if overlaps(head, part.Bounds()) {
			return CauseSelf
		}
	}
	for _, other := range snakes {
		if other.e == ref.e {
			continue
		}
		if collides(head, other.snake) {
			return CauseSnake
		}
	}

	cause := ""
	ecs.ForEach(w, component.BombTagComponent.Kind(), func(e ecs.Entity, _ *component.BombTag) {
		if cause != "" || isDead(w, e) {
			return
		}
		if box, ok := boxOf(w, e); ok && overlaps(head, box.Bounds()) {
			cause = CauseBomb
		}
	})
	return cause
}

func (s *CollisionSystem) eat(w *ecs.World, ref snakeRef, now int) {
	head := ref.snake.Head().Bounds()

	ecs.ForEach(w, component.FoodTagComponent.Kind(), func(e ecs.Entity, _ *component.FoodTag) {
		if isDead(w, e) {
			return
		}
		box, ok := boxOf(w, e)
		if !ok || !overlaps(head, box.Bounds()) {
			return
		}
		kill(w, e, "eaten")
		ref.snake.Grow(ref.snake.GrowthOnFeed)
		ref.snake.ApplesEaten++
		ref.snake.Score++
		w.Events().Push(ecs.Event{Type: ecs.EventAteFood, Data: ecs.SnakeEvent{Snake: ref.e, Other: e}})
		_ = level.Debug(s.logger).Log("msg", "ate food", "snake", ref.snake.Name, "apples", ref.snake.ApplesEaten)

		if s.spawner == nil {
			return
		}
		s.spawner.SpawnFood(w)
		if s.spawner.RollCoin() {
			s.spawner.SpawnCoin(w, now)
		}
	})

	ecs.ForEach(w, component.CoinTagComponent.Kind(), func(e ecs.Entity, _ *component.CoinTag) {
		if isDead(w, e) {
			return
		}
		box, ok := boxOf(w, e)
		if !ok || !overlaps(head, box.Bounds()) {
			return
		}
		kill(w, e, "collected")
		ref.snake.Coins++
		w.Events().Push(ecs.Event{Type: ecs.EventAteCoin, Data: ecs.SnakeEvent{Snake: ref.e, Other: e}})
	})
}

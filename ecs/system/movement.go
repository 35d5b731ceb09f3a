package system

import (
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

// MovementSystem advances every living snake one cell along its direction.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.SnakeComponent.Kind(), func(e ecs.Entity, snake *component.Snake) {
		if isDead(w, e) {
			return
		}
		snake.Move(snake.Direction)
	})
}

package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/pathfind"
)

func playField(w *ecs.World) (*component.PlayField, bool) {
	e, ok := ecs.First(w, component.PlayFieldComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.PlayFieldComponent.Kind())
}

func gameState(w *ecs.World) (*component.GameState, bool) {
	e, ok := ecs.First(w, component.GameStateComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.GameStateComponent.Kind())
}

func isDead(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.DeadComponent.Kind())
}

func kill(w *ecs.World, e ecs.Entity, cause string) {
	if isDead(w, e) {
		return
	}
	_ = ecs.Add(w, e, component.DeadComponent.Kind(), &component.Dead{Cause: cause})
}

// boxOf returns the collider box of a single-box entity.
func boxOf(w *ecs.World, e ecs.Entity) (component.Box, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return component.Box{}, false
	}
	c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok {
		return component.Box{}, false
	}
	return component.NewBox(t, c), true
}

// obstacles lists every live collidable entity except skip, snakes first.
func obstacles(w *ecs.World, skip ecs.Entity) []pathfind.Obstacle {
	var out []pathfind.Obstacle
	ecs.ForEach(w, component.SnakeComponent.Kind(), func(e ecs.Entity, s *component.Snake) {
		if e == skip || isDead(w, e) || len(s.Parts) == 0 {
			return
		}
		out = append(out, s)
	})
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, t *component.Transform, c *component.Collider) {
		if e == skip || !c.Collidable || isDead(w, e) {
			return
		}
		out = append(out, component.NewBox(t, c))
	})
	return out
}

// overlaps is a strict AABB test: boxes that only touch do not collide.
func overlaps(a, b cp.BB) bool {
	return a.L < b.R && b.L < a.R && a.B < b.T && b.B < a.T
}

func collides(bb cp.BB, o pathfind.Obstacle) bool {
	if seg, ok := o.(pathfind.Segmented); ok {
		for _, part := range seg.Segments() {
			if overlaps(bb, part.Bounds()) {
				return true
			}
		}
		return false
	}
	return overlaps(bb, o.Bounds())
}

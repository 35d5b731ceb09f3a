package system

import (
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

// CleanupSystem destroys everything marked Dead during the tick.
type CleanupSystem struct{}

func NewCleanupSystem() *CleanupSystem {
	return &CleanupSystem{}
}

func (s *CleanupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.DeadComponent.Kind(), func(e ecs.Entity, _ *component.Dead) {
		ecs.DestroyEntity(w, e)
	})
}

package system

import (
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

// TTLSystem counts down TTL components and marks entities dead when they
// run out.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	gs, hasState := gameState(w)
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if hasState && ttl.Born == gs.Ticks {
			return
		}
		if ttl.Ticks > 0 {
			ttl.Ticks--
		}
		if ttl.Ticks <= 0 {
			kill(w, e, "expired")
		}
	})
}

package system

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

// GameOverSystem stops the game when the player dies. Without a player the
// game runs until every computer snake is dead. It must run before cleanup.
type GameOverSystem struct {
	logger log.Logger
}

func NewGameOverSystem(logger log.Logger) *GameOverSystem {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &GameOverSystem{logger: logger}
}

func (s *GameOverSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	gs, ok := gameState(w)
	if !ok || gs.State == component.StateStopped {
		return
	}

	players, playersAlive, snakesAlive := 0, 0, 0
	ecs.ForEach(w, component.SnakeComponent.Kind(), func(e ecs.Entity, _ *component.Snake) {
		alive := !isDead(w, e)
		if alive {
			snakesAlive++
		}
		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			players++
			if alive {
				playersAlive++
			}
		}
	})

	over := snakesAlive == 0
	if players > 0 {
		over = playersAlive == 0
	}
	if !over {
		return
	}

	gs.State = component.StateStopped
	w.Events().Push(ecs.Event{Type: ecs.EventGameOver, Data: gs.Ticks})
	_ = level.Info(s.logger).Log("msg", "game over", "ticks", gs.Ticks)
}

package game

import (
	"maps"
	"slices"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/pathfind"
	"github.com/milk9111/snake/prefabs"
)

// SnakeStats is what a snake achieved. Cause is set once it died.
type SnakeStats struct {
	Name      string             `yaml:"name"`
	Control   prefabs.Control    `yaml:"control"`
	Alive     bool               `yaml:"alive"`
	Length    int                `yaml:"length"`
	Head      [2]int             `yaml:"head,flow"`
	Direction pathfind.Direction `yaml:"direction"`
	Apples    int                `yaml:"apples"`
	Coins     int                `yaml:"coins"`
	Score     int                `yaml:"score"`
	Cause     string             `yaml:"cause,omitempty"`
}

// Snapshot summarises a game at the end of a tick.
type Snapshot struct {
	ID     string          `yaml:"id"`
	Ticks  int             `yaml:"ticks"`
	State  component.State `yaml:"state"`
	Score  int             `yaml:"score"`
	Apples int             `yaml:"apples"`
	Coins  int             `yaml:"coins"`
	Food   int             `yaml:"food"`
	Bombs  int             `yaml:"bombs"`
	Snakes []SnakeStats    `yaml:"snakes"`
}

// Alive counts the snakes still on the field.
func (s Snapshot) Alive() int {
	n := 0
	for _, st := range s.Snakes {
		if st.Alive {
			n++
		}
	}
	return n
}

// Snapshot collects the score board. Snakes are listed in spec order, dead
// ones with the stats they had when they died.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		ID:    g.id.String(),
		Ticks: g.state.Ticks,
		State: g.state.State,
		Food:  live(g.world, component.FoodTagComponent.Kind()),
		Bombs: live(g.world, component.BombTagComponent.Kind()),
	}

	for _, spec := range g.spec.Snakes {
		st, ok := g.final[spec.Name]
		if !ok {
			e, found := g.snakes[spec.Name]
			if !found {
				continue
			}
			s, alive := ecs.Get(g.world, e, component.SnakeComponent.Kind())
			if !alive {
				continue
			}
			st = statsOf(g.world, e, s)
		}
		snap.Snakes = append(snap.Snakes, st)
	}
	// Snakes dropped from the spec by a reload.
	for _, name := range slices.Sorted(maps.Keys(g.final)) {
		if !slices.ContainsFunc(snap.Snakes, func(s SnakeStats) bool { return s.Name == name }) {
			snap.Snakes = append(snap.Snakes, g.final[name])
		}
	}

	for _, st := range snap.Snakes {
		snap.Score += st.Score
		snap.Apples += st.Apples
		snap.Coins += st.Coins
	}
	return snap
}

func statsOf(w *ecs.World, e ecs.Entity, s *component.Snake) SnakeStats {
	control := prefabs.ControlComputer
	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		control = prefabs.ControlPlayer
	}
	st := SnakeStats{
		Name:      s.Name,
		Control:   control,
		Alive:     !ecs.Has(w, e, component.DeadComponent.Kind()),
		Length:    len(s.Parts),
		Direction: s.Direction,
		Apples:    s.ApplesEaten,
		Coins:     s.Coins,
		Score:     s.Score,
	}
	if len(s.Parts) > 0 {
		h := s.Head()
		st.Head = [2]int{int(h.X), int(h.Y)}
	}
	return st
}

func live[T any](w *ecs.World, kind component.ComponentKind[T]) int {
	n := 0
	ecs.ForEach(w, kind, func(e ecs.Entity, _ *T) {
		if !ecs.Has(w, e, component.DeadComponent.Kind()) {
			n++
		}
	})
	return n
}

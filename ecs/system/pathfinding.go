package system

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/pathfind"
)

// PathfindingSystem steers computer snakes. Every tick it rebuilds the grid
// from the live obstacles, searches from the head to the chosen target and
// turns the snake towards the first step.
type PathfindingSystem struct {
	selector TargetSelector
	logger   log.Logger
}

func NewPathfindingSystem(selector TargetSelector, logger log.Logger) *PathfindingSystem {
	if selector == nil {
		selector = NearestFood{}
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &PathfindingSystem{selector: selector, logger: logger}
}

// SetSelector replaces the target selector, e.g. after a script reload.
func (ps *PathfindingSystem) SetSelector(selector TargetSelector) {
	if selector != nil {
		ps.selector = selector
	}
}

func (ps *PathfindingSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	field, ok := playField(w)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.ComputerTagComponent.Kind(), component.SnakeComponent.Kind(), func(e ecs.Entity, _ *component.ComputerTag, snake *component.Snake) {
		if isDead(w, e) || len(snake.Parts) == 0 {
			return
		}
		pf, ok := ecs.Get(w, e, component.PathfindingComponent.Kind())
		if !ok {
			pf = &component.Pathfinding{}
			_ = ecs.Add(w, e, component.PathfindingComponent.Kind(), pf)
		}

		head := snake.HeadPosition()
		cands := candidates(w, head)
		pick := ps.selector.Select(head, cands)
		if pick < 0 || pick >= len(cands) {
			pf.Target = 0
			pf.Path = nil
			pf.Found = false
			pf.Direction = pathfind.None
			pf.Grid = nil
			return
		}
		target := cands[pick]

		grid := pathfind.BuildGrid(field.Bounds(), obstacles(w, target.Entity), head, target.Box)
		res := pathfind.Search(grid)

		pf.Searches++
		pf.Target = uint64(target.Entity)
		pf.Visited = res.Visited
		pf.Found = res.Found()
		if !pf.Found {
			pf.Misses++
			_ = level.Debug(ps.logger).Log("msg", "no path", "snake", snake.Name, "target", target.Entity, "visited", res.Visited)
		}
		pf.Path = res.Path

		// Next pops the step it consumed; keep the full path for viewers.
		path := res.Path
		dir := path.Next(head)
		pf.Direction = dir
		if dir != pathfind.None {
			snake.Direction = dir
		}

		if pf.Debug {
			pf.Grid = grid
		} else {
			pf.Grid = nil
		}
		_ = level.Debug(ps.logger).Log("msg", "path", "snake", snake.Name, "target", target.Kind, "len", len(res.Path), "dir", dir)
	})
}

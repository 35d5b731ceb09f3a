package system

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/pathfind"
	"github.com/milk9111/snake/prefabs"
)

const scriptTimeout = 50 * time.Millisecond

type CandidateKind string

const (
	CandidateFood CandidateKind = "food"
	CandidateCoin CandidateKind = "coin"
)

// Candidate is something a computer snake may chase.
type Candidate struct {
	Entity   ecs.Entity
	Kind     CandidateKind
	Box      component.Box
	Distance int
}

// TargetSelector picks the index of the candidate to chase, or -1.
type TargetSelector interface {
	Select(head cp.Vector, candidates []Candidate) int
}

// candidates lists live food and coins in slot order with their Manhattan
// distance from head.
func candidates(w *ecs.World, head cp.Vector) []Candidate {
	var out []Candidate
	add := func(kind CandidateKind) func(ecs.Entity) {
		return func(e ecs.Entity) {
			if isDead(w, e) {
				return
			}
			box, ok := boxOf(w, e)
			if !ok {
				return
			}
			out = append(out, Candidate{
				Entity:   e,
				Kind:     kind,
				Box:      box,
				Distance: distance(head, box),
			})
		}
	}
	addFood := add(CandidateFood)
	ecs.ForEach(w, component.FoodTagComponent.Kind(), func(e ecs.Entity, _ *component.FoodTag) { addFood(e) })
	addCoin := add(CandidateCoin)
	ecs.ForEach(w, component.CoinTagComponent.Kind(), func(e ecs.Entity, _ *component.CoinTag) { addCoin(e) })
	return out
}

func distance(head cp.Vector, box component.Box) int {
	p := pathfind.TargetPoint(box.Bounds())
	dx := math.Abs(math.Floor(p.X) - math.Floor(head.X))
	dy := math.Abs(math.Floor(p.Y) - math.Floor(head.Y))
	return int(dx + dy)
}

// NearestFood chases the closest food. Ties go to the older entity.
type NearestFood struct{}

func (NearestFood) Select(_ cp.Vector, candidates []Candidate) int {
	best := -1
	for i, c := range candidates {
		if c.Kind != CandidateFood {
			continue
		}
		if best < 0 || c.Distance < candidates[best].Distance {
			best = i
		}
	}
	return best
}

// ScriptedSelector lets a tengo script choose the target. The script sees
// __head and __candidates and must set __result. Any failure falls back to
// NearestFood.
type ScriptedSelector struct {
	name     string
	compiled *tengo.Compiled
	fallback NearestFood
	logger   log.Logger
}

func NewScriptedSelector(name string, logger log.Logger) (*ScriptedSelector, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("selector: load %s: %w", name, err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("__head", map[string]any{})
	_ = script.Add("__candidates", []any{})
	_ = script.Add("__result", -1)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("selector: compile %s: %w", name, err)
	}
	return &ScriptedSelector{name: name, compiled: compiled, logger: logger}, nil
}

func (s *ScriptedSelector) Select(head cp.Vector, candidates []Candidate) int {
	if len(candidates) == 0 {
		return -1
	}
	idx, err := s.run(head, candidates)
	if err != nil {
		_ = level.Warn(s.logger).Log("msg", "script selector failed", "script", s.name, "err", err)
		return s.fallback.Select(head, candidates)
	}
	if idx < 0 || idx >= len(candidates) {
		return s.fallback.Select(head, candidates)
	}
	return idx
}

func (s *ScriptedSelector) run(head cp.Vector, candidates []Candidate) (int, error) {
	list := make([]any, len(candidates))
	for i, c := range candidates {
		list[i] = map[string]any{
			"kind":     string(c.Kind),
			"x":        int(c.Box.X),
			"y":        int(c.Box.Y),
			"distance": c.Distance,
		}
	}
	if err := s.compiled.Set("__head", map[string]any{"x": int(head.X), "y": int(head.Y)}); err != nil {
		return -1, err
	}
	if err := s.compiled.Set("__candidates", list); err != nil {
		return -1, err
	}
	if err := s.compiled.Set("__result", -1); err != nil {
		return -1, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	if err := s.compiled.RunContext(ctx); err != nil {
		return -1, err
	}
	return s.compiled.Get("__result").Int(), nil
}

// NewSelector builds the selector named by spec, falling back to
// NearestFood when the script cannot be loaded.
func NewSelector(spec prefabs.AISpec, logger log.Logger) TargetSelector {
	if spec.Selector != prefabs.SelectorScript {
		return NearestFood{}
	}
	sel, err := NewScriptedSelector(spec.Script, logger)
	if err != nil {
		if logger != nil {
			_ = level.Error(logger).Log("msg", "using nearest food selector", "err", err)
		}
		return NearestFood{}
	}
	return sel
}

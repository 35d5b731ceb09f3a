package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/pathfind"
	"github.com/milk9111/snake/prefabs"
)

func scriptDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "scripts"), 0o755))
	old := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = old })
	return dir
}

func writeScript(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", name+".tengo"), []byte(src), 0o644))
}

func TestNearestFood(t *testing.T) {
	cands := []Candidate{
		{Kind: CandidateCoin, Distance: 1},
		{Kind: CandidateFood, Distance: 4},
		{Kind: CandidateFood, Distance: 2},
		{Kind: CandidateFood, Distance: 2},
	}
	require.Equal(t, 2, NearestFood{}.Select(cp.Vector{}, cands))
	require.Equal(t, -1, NearestFood{}.Select(cp.Vector{}, cands[:1]))
	require.Equal(t, -1, NearestFood{}.Select(cp.Vector{}, nil))
}

func TestCandidatesDistance(t *testing.T) {
	w, _ := newTestWorld(t, 20, 20)
	food := addFood(t, w, 4, 4)
	coin := addCoin(t, w, 10, 0)

	got := candidates(w, cp.Vector{X: 1, Y: 1})
	require.Len(t, got, 2)
	require.Equal(t, food, got[0].Entity)
	require.Equal(t, CandidateFood, got[0].Kind)
	require.Equal(t, 8, got[0].Distance)
	require.Equal(t, coin, got[1].Entity)
	require.Equal(t, CandidateCoin, got[1].Kind)
	require.Equal(t, 12, got[1].Distance)

	kill(w, food, "eaten")
	require.Len(t, candidates(w, cp.Vector{}), 1)
}

func TestScriptedSelectorBundledScript(t *testing.T) {
	scriptDir(t)
	sel, err := NewScriptedSelector("ai_snake", nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		cands []Candidate
		want  int
	}{
		{
			name: "near coin beats far food",
			cands: []Candidate{
				{Kind: CandidateFood, Distance: 5},
				{Kind: CandidateCoin, Distance: 2},
			},
			want: 1,
		},
		{
			name: "coins count double",
			cands: []Candidate{
				{Kind: CandidateFood, Distance: 5},
				{Kind: CandidateCoin, Distance: 3},
			},
			want: 0,
		},
		{
			name:  "empty",
			cands: nil,
			want:  -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, sel.Select(cp.Vector{}, tt.cands))
		})
	}
}

func TestScriptedSelectorFallsBack(t *testing.T) {
	dir := scriptDir(t)
	cands := []Candidate{
		{Kind: CandidateFood, Distance: 9},
		{Kind: CandidateFood, Distance: 3},
	}

	writeScript(t, dir, "out_of_range", "__result = 99\n")
	sel, err := NewScriptedSelector("out_of_range", nil)
	require.NoError(t, err)
	require.Equal(t, 1, sel.Select(cp.Vector{}, cands))

	writeScript(t, dir, "runtime_error", "__result = __candidates[0].distance / 0\n")
	sel, err = NewScriptedSelector("runtime_error", nil)
	require.NoError(t, err)
	require.Equal(t, 1, sel.Select(cp.Vector{}, cands))

	writeScript(t, dir, "broken", "__result = (\n")
	_, err = NewScriptedSelector("broken", nil)
	require.Error(t, err)

	_, isNearest := NewSelector(prefabs.AISpec{Selector: prefabs.SelectorScript, Script: "broken"}, nil).(NearestFood)
	require.True(t, isNearest)
	_, isNearest = NewSelector(prefabs.AISpec{Selector: prefabs.SelectorNearest}, nil).(NearestFood)
	require.True(t, isNearest)
	_, isScripted := NewSelector(prefabs.AISpec{Selector: prefabs.SelectorScript, Script: "out_of_range"}, nil).(*ScriptedSelector)
	require.True(t, isScripted)
}

func TestPathfindingWithScriptedSelector(t *testing.T) {
	dir := scriptDir(t)
	writeScript(t, dir, "coins_first", `
best := -1
for i, c in __candidates {
	if c.kind == "coin" { best = i }
}
__result = best
`)
	sel, err := NewScriptedSelector("coins_first", nil)
	require.NoError(t, err)

	w, _ := newTestWorld(t, 20, 20)
	e, _ := addSnake(t, w, "bot", true, pathfind.Right, seg(0, 0))
	addFood(t, w, 2, 0)
	coin := addCoin(t, w, 10, 10)

	NewPathfindingSystem(sel, nil).Update(w)

	pf, ok := ecs.Get(w, e, component.PathfindingComponent.Kind())
	require.True(t, ok)
	require.Equal(t, uint64(coin), pf.Target)
	require.True(t, pf.Found)
	require.Len(t, pf.Path, 24)
}

package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/pathfind"
	"github.com/milk9111/snake/prefabs"
)

func testSpec() *prefabs.GameSpec {
	return &prefabs.GameSpec{
		Name:     "test",
		Field:    prefabs.FieldSpec{Width: 30, Height: 30},
		TickRate: 10,
		Seed:     7,
		Snake:    prefabs.SnakeDefaults{StartLength: 3, GrowthOnFeed: 2},
		Snakes: []prefabs.SnakeSpec{
			{Name: "bot", Control: prefabs.ControlComputer, X: 5, Y: 5, Direction: pathfind.Right},
		},
		Food: prefabs.FoodSpec{Width: 2, Height: 2, Count: 1},
		Coin: prefabs.CoinSpec{Width: 3, Height: 3, Chance: 0.5, TTLSeconds: prefabs.Range{Min: 2, Max: 6}},
		Bomb: prefabs.BombSpec{
			Width: 4, Height: 4, Max: 0,
			FirstSeconds: prefabs.Range{Min: 5, Max: 10},
			NextSeconds:  prefabs.Range{Min: 10, Max: 30},
		},
		AI: prefabs.AISpec{Selector: prefabs.SelectorNearest},
	}
}

func TestNewRejectsBadSpec(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrNilSpec)

	spec := testSpec()
	spec.TickRate = 0
	_, err = New(spec)
	require.ErrorContains(t, err, "tick_rate")
}

func TestNewFromBundledSpec(t *testing.T) {
	old := prefabs.Dir
	prefabs.Dir = t.TempDir()
	t.Cleanup(func() { prefabs.Dir = old })

	spec, err := prefabs.LoadGameSpec("game")
	require.NoError(t, err)
	g, err := New(spec)
	require.NoError(t, err)

	require.NotEqual(t, uuid.Nil, g.ID())
	require.True(t, g.Running())
	require.Zero(t, g.Ticks())
	require.Equal(t, 20, g.TickRate())

	snap := g.Snapshot()
	require.Len(t, snap.Snakes, 2)
	require.Equal(t, 2, snap.Alive())
	require.Equal(t, 1, snap.Food)
	require.Zero(t, snap.Bombs)

	bot := snap.Snakes[0]
	require.Equal(t, "bot", bot.Name)
	require.Equal(t, prefabs.ControlComputer, bot.Control)
	require.Equal(t, 5, bot.Length)
	require.Equal(t, [2]int{7, 2}, bot.Head)

	e, ok := ecs.First(g.World(), component.SnakeComponent.Kind())
	require.True(t, ok)
	s, _ := ecs.Get(g.World(), e, component.SnakeComponent.Kind())
	require.Equal(t, component.Segment{X: 3, Y: 2}, s.Parts[4])
}

func TestComputerSnakeEats(t *testing.T) {
	g, err := New(testSpec())
	require.NoError(t, err)

	for g.Running() && g.Ticks() < 300 && g.Snapshot().Apples == 0 {
		require.NoError(t, g.Update())
	}

	snap := g.Snapshot()
	require.Equal(t, 1, snap.Apples)
	require.Equal(t, 1, snap.Score)
	require.True(t, snap.Snakes[0].Alive)
	require.Equal(t, 1, snap.Food)
}

func TestDeterministicReplay(t *testing.T) {
	spec := testSpec()
	spec.Bomb.Max = 3
	spec.Bomb.FirstSeconds = prefabs.Range{Min: 1, Max: 2}
	spec.Bomb.NextSeconds = prefabs.Range{Min: 1, Max: 3}
	spec.Snakes = append(spec.Snakes, prefabs.SnakeSpec{Name: "rival", Control: prefabs.ControlComputer, X: 5, Y: 20, Direction: pathfind.Right})

	run := func() Snapshot {
		g, err := New(spec)
		require.NoError(t, err)
		for g.Running() && g.Ticks() < 400 {
			require.NoError(t, g.Update())
		}
		snap := g.Snapshot()
		snap.ID = ""
		return snap
	}

	require.Equal(t, run(), run())
}

func TestPlayerHitsWall(t *testing.T) {
	spec := testSpec()
	spec.Snakes = []prefabs.SnakeSpec{
		{Name: "player", Control: prefabs.ControlPlayer, X: 2, Y: 15, Direction: pathfind.Left},
		{Name: "bot", Control: prefabs.ControlComputer, X: 20, Y: 25, Direction: pathfind.Right},
	}

	var events []ecs.Event
	g, err := New(spec, WithEventHandler(func(evt ecs.Event) { events = append(events, evt) }))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.True(t, g.Running())
		require.NoError(t, g.Update())
	}
	require.False(t, g.Running())
	require.Equal(t, 3, g.Ticks())

	require.NoError(t, g.Update())
	require.Equal(t, 3, g.Ticks(), "stopped games do not tick")

	snap := g.Snapshot()
	require.Equal(t, component.StateStopped, snap.State)
	require.Equal(t, "player", snap.Snakes[0].Name)
	require.False(t, snap.Snakes[0].Alive)
	require.Equal(t, "wall", snap.Snakes[0].Cause)
	require.True(t, snap.Snakes[1].Alive)

	var types []string
	for _, evt := range events {
		types = append(types, evt.Type)
	}
	require.Contains(t, types, ecs.EventSnakeDied)
	require.Contains(t, types, ecs.EventGameOver)
}

func TestSteer(t *testing.T) {
	spec := testSpec()
	spec.Snakes[0].Control = prefabs.ControlPlayer
	g, err := New(spec)
	require.NoError(t, err)

	ok, err := g.Steer("bot", pathfind.Left)
	require.NoError(t, err)
	require.False(t, ok, "reversing into the neck is ignored")

	ok, err = g.Steer("bot", pathfind.Down)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, g.Update())
	require.Equal(t, [2]int{5, 6}, g.Snapshot().Snakes[0].Head)

	_, err = g.Steer("nobody", pathfind.Up)
	require.ErrorIs(t, err, ErrUnknownSnake)
}

func TestSteerTwiceInOneTick(t *testing.T) {
	spec := testSpec()
	spec.Snakes[0] = prefabs.SnakeSpec{Name: "player", Control: prefabs.ControlPlayer, X: 10, Y: 10, Direction: pathfind.Right}
	g, err := New(spec)
	require.NoError(t, err)

	ok, err := g.Steer("player", pathfind.Up)
	require.NoError(t, err)
	require.True(t, ok)

	// Left is no longer opposite the current direction but still lands on
	// the neck at (9,10).
	ok, err = g.Steer("player", pathfind.Left)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, g.Update())
	require.True(t, g.Running())
	st := g.Snapshot().Snakes[0]
	require.True(t, st.Alive)
	require.Equal(t, [2]int{10, 9}, st.Head)
	require.Equal(t, pathfind.Up, st.Direction)
}

func TestPause(t *testing.T) {
	g, err := New(testSpec())
	require.NoError(t, err)

	g.SetPaused(true)
	require.True(t, g.Paused())
	require.True(t, g.Running())
	require.NoError(t, g.Update())
	require.Zero(t, g.Ticks())

	g.SetPaused(false)
	require.NoError(t, g.Update())
	require.Equal(t, 1, g.Ticks())
}

func TestReload(t *testing.T) {
	g, err := New(testSpec())
	require.NoError(t, err)

	bad := testSpec()
	bad.Coin.Chance = 3
	require.Error(t, g.Reload(bad))
	require.ErrorIs(t, g.Reload(nil), ErrNilSpec)

	next := testSpec()
	next.TickRate = 30
	next.AI.Debug = true
	require.NoError(t, g.Reload(next))
	require.Equal(t, 30, g.TickRate())
	require.Same(t, next, g.Spec())

	require.NoError(t, g.Update())
	grid, path, ok := g.Debug("bot")
	require.True(t, ok)
	require.Equal(t, 30, grid.Width)
	require.NotEmpty(t, path)
	require.Same(t, grid.Target(), path[len(path)-1])
	require.Contains(t, grid.Render(path), "S")
}

func TestTimings(t *testing.T) {
	g, err := New(testSpec())
	require.NoError(t, err)
	require.NoError(t, g.Update())
	require.NoError(t, g.Update())

	names := make([]string, 0)
	for _, tm := range g.Timings() {
		require.Equal(t, 2, tm.Runs)
		names = append(names, tm.Name)
	}
	require.Equal(t, []string{"pathfinding", "movement", "collision", "spawn", "ttl", "gameover", "record", "cleanup"}, names)
}

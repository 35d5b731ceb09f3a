package pathfind

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"
)

func TestPathNext(t *testing.T) {
	head := cp.Vector{X: 5, Y: 5}
	cases := []struct {
		name string
		step Node
		want Direction
	}{
		{"right", Node{WorldX: 6, WorldY: 5}, Right},
		{"left", Node{WorldX: 4, WorldY: 5}, Left},
		{"down", Node{WorldX: 5, WorldY: 6}, Down},
		{"up", Node{WorldX: 5, WorldY: 4}, Up},
		{"x wins over y", Node{WorldX: 6, WorldY: 4}, Right},
		{"same cell", Node{WorldX: 5, WorldY: 5}, None},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			step := c.step
			path := Path{&step}
			require.Equal(t, c.want, path.Next(head))
			require.Empty(t, path, "step is consumed")
		})
	}
}

func TestPathNextEmpty(t *testing.T) {
	var path Path
	require.Equal(t, None, path.Next(cp.Vector{}))

	var nilPath *Path
	require.Equal(t, None, nilPath.Next(cp.Vector{}))
}

func TestPathNextFollowsSearch(t *testing.T) {
	g := NewGrid(cp.BB{L: 10, B: 10, R: 15, T: 13})
	g.SetStart(0, 0)
	g.SetTarget(4, 2)
	path := Search(g).Path
	require.Len(t, path, 6)

	head := cp.Vector{X: g.Start().WorldX, Y: g.Start().WorldY}
	for len(path) > 0 {
		next := path[0]
		d := path.Next(head)
		require.NotEqual(t, None, d)
		dx, dy := d.Delta()
		head = cp.Vector{X: head.X + float64(dx), Y: head.Y + float64(dy)}
		require.Equal(t, next.WorldX, head.X)
		require.Equal(t, next.WorldY, head.Y)
	}
	require.Equal(t, None, path.Next(head))
}

func TestDirection(t *testing.T) {
	for _, d := range []Direction{Left, Up, Right, Down} {
		require.True(t, d.IsOpposite(d.Opposite()), d.String())
		require.Equal(t, d, d.Opposite().Opposite())

		parsed, err := ParseDirection(d.String())
		require.NoError(t, err)
		require.Equal(t, d, parsed)

		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		require.Equal(t, 0, dx+ox)
		require.Equal(t, 0, dy+oy)
	}

	require.False(t, None.IsOpposite(None))
	_, err := ParseDirection("sideways")
	require.Error(t, err)
	require.Equal(t, "Direction(9)", Direction(9).String())
}

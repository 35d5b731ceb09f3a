package pathfind

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"
)

type box struct {
	x, y, w, h float64
}

func (b box) Bounds() cp.BB {
	return cp.BB{L: b.x, B: b.y, R: b.x + b.w, T: b.y + b.h}
}

type body []Obstacle

func (b body) Bounds() cp.BB {
	if len(b) == 0 {
		return cp.BB{}
	}
	return b[0].Bounds()
}

func (b body) Segments() []Obstacle {
	return b
}

func field(w, h float64) cp.BB {
	return cp.BB{L: 0, B: 0, R: w, T: h}
}

func TestBuildGridDimensions(t *testing.T) {
	cases := []struct {
		name  string
		field cp.BB
		w, h  int
	}{
		{"whole", field(10, 4), 10, 4},
		{"fractional rounds up", field(9.2, 3.01), 10, 4},
		{"offset origin", cp.BB{L: 5, B: 7, R: 8, T: 9}, 3, 2},
		{"empty", field(0, 5), 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := BuildGrid(c.field, nil, cp.Vector{X: c.field.L, Y: c.field.B}, nil)
			require.Equal(t, c.w, g.Width)
			require.Equal(t, c.h, g.Height)
		})
	}
}

func TestBuildGridMarksObstacles(t *testing.T) {
	snake := body{box{2, 1, 1, 1}, box{1, 1, 1, 1}, box{0, 1, 1, 1}}
	bomb := box{5, 0, 2, 2}
	food := box{7, 2, 2, 2}

	g := BuildGrid(field(10, 4), []Obstacle{snake, bomb}, cp.Vector{X: 2, Y: 1}, food)

	want := "" +
		".....##...\n" +
		"##S..##...\n" +
		"..........\n" +
		"........T.\n"
	require.Equal(t, want, g.String())

	require.True(t, g.Start().Walkable, "head cell is forced walkable")
	require.Equal(t, 2, g.Start().GridX)
	require.Equal(t, 1, g.Start().GridY)
	require.Equal(t, 8, g.Target().GridX)
	require.Equal(t, 3, g.Target().GridY)
}

func TestBuildGridTargetOverridesObstacle(t *testing.T) {
	wall := box{0, 0, 4, 1}
	g := BuildGrid(field(4, 2), []Obstacle{wall}, cp.Vector{X: 0, Y: 1}, box{3, 0, 1, 1})

	require.Equal(t, "###T\nS...\n", g.String())
	require.True(t, g.Target().Walkable)
}

func TestBuildGridRelativeToOrigin(t *testing.T) {
	f := cp.BB{L: 10, B: 20, R: 14, T: 22}
	g := BuildGrid(f, []Obstacle{box{11, 20, 1, 1}}, cp.Vector{X: 10, Y: 21}, box{13, 21, 1, 1})

	require.Equal(t, ".#..\nS..T\n", g.String())
	n := g.At(3, 1)
	require.Equal(t, 13.0, n.WorldX)
	require.Equal(t, 21.0, n.WorldY)
}

func TestBuildGridClampsOutOfField(t *testing.T) {
	obstacles := []Obstacle{
		box{-3, -3, 2, 2},
		box{3, 1, 5, 5},
	}
	g := BuildGrid(field(4, 3), obstacles, cp.Vector{X: 0, Y: 0}, box{0, 2, 1, 1})
	require.Equal(t, "S...\n...#\nT..#\n", g.String())
}

func TestNeighboursAreBoundsChecked(t *testing.T) {
	g := NewGrid(field(3, 3))

	cases := []struct {
		name string
		x, y int
		want []string
	}{
		{"corner", 0, 0, []string{"(1,0)", "(0,1)"}},
		{"edge", 2, 1, []string{"(1,1)", "(2,0)", "(2,2)"}},
		{"centre", 1, 1, []string{"(0,1)", "(2,1)", "(1,0)", "(1,2)"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got []string
			for _, n := range g.Neighbours(g.At(c.x, c.y)) {
				got = append(got, n.String())
			}
			require.Equal(t, c.want, got)
		})
	}

	require.Nil(t, g.At(-1, 0))
	require.Nil(t, g.At(0, 3))
}

package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/snake/pathfind"
)

// Segment is one 1x1 body part.
type Segment struct {
	X float64
	Y float64
}

func (s Segment) Bounds() cp.BB {
	return cp.BB{L: s.X, B: s.Y, R: s.X + 1, T: s.Y + 1}
}

// Snake is a multi-segment body. Parts[0] is the head.
type Snake struct {
	Name         string
	Parts        []Segment
	Direction    pathfind.Direction
	GrowthLeft   int
	GrowthOnFeed int
	ApplesEaten  int
	Coins        int
	Score        int
}

var SnakeComponent = NewComponent[Snake]()

// Head returns the head segment. The snake must have at least one part.
func (s *Snake) Head() Segment {
	return s.Parts[0]
}

func (s *Snake) HeadPosition() cp.Vector {
	h := s.Head()
	return cp.Vector{X: h.X, Y: h.Y}
}

// Bounds is the head box; a snake collides through its head.
func (s *Snake) Bounds() cp.BB {
	return s.Head().Bounds()
}

// Segments exposes every part as an independent obstacle.
func (s *Snake) Segments() []pathfind.Obstacle {
	out := make([]pathfind.Obstacle, len(s.Parts))
	for i, p := range s.Parts {
		out[i] = p
	}
	return out
}

// Move advances the snake one cell in dir. With growth pending a new head
// is added, otherwise the tail is recycled as the new head.
func (s *Snake) Move(dir pathfind.Direction) {
	if len(s.Parts) == 0 {
		return
	}
	dx, dy := dir.Delta()
	head := s.Head()
	next := Segment{X: head.X + float64(dx), Y: head.Y + float64(dy)}

	if s.GrowthLeft > 0 {
		s.GrowthLeft--
		s.Parts = append(s.Parts, Segment{})
	}
	copy(s.Parts[1:], s.Parts[:len(s.Parts)-1])
	s.Parts[0] = next
}

// Reverses reports whether moving in dir would put the head on the neck.
// It looks at the body rather than Direction, which may already have been
// turned since the last move.
func (s *Snake) Reverses(dir pathfind.Direction) bool {
	if len(s.Parts) < 2 {
		return false
	}
	dx, dy := dir.Delta()
	head, neck := s.Parts[0], s.Parts[1]
	return head.X+float64(dx) == neck.X && head.Y+float64(dy) == neck.Y
}

// Grow queues parts to be added over the next moves.
func (s *Snake) Grow(parts int) {
	if parts > 0 {
		s.GrowthLeft += parts
	}
}

// PopTail drops the last part, keeping at least the head.
func (s *Snake) PopTail() {
	if len(s.Parts) > 1 {
		s.Parts = s.Parts[:len(s.Parts)-1]
	}
}

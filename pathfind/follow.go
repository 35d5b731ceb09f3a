package pathfind

import "github.com/jakecoffman/cp"

// Next consumes the first step of the path and turns it into a move relative
// to head. It returns None once the path is empty, which callers treat as
// "keep the current direction".
func (p *Path) Next(head cp.Vector) Direction {
	if p == nil || len(*p) == 0 {
		return None
	}

	step := (*p)[0]
	*p = (*p)[1:]

	switch {
	case step.WorldX > head.X:
		return Right
	case step.WorldX < head.X:
		return Left
	case step.WorldY > head.Y:
		return Down
	case step.WorldY < head.Y:
		return Up
	}
	return None
}

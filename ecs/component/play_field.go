package component

import "github.com/jakecoffman/cp"

// PlayField is the area snakes live in. A head leaving it is fatal.
type PlayField struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (f PlayField) Bounds() cp.BB {
	return cp.BB{L: f.X, B: f.Y, R: f.X + f.Width, T: f.Y + f.Height}
}

var PlayFieldComponent = NewComponent[PlayField]()

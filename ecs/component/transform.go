package component

import "github.com/jakecoffman/cp"

// Transform is the top-left corner of a single-box entity in field units.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()

// Collider gives an entity a box at its Transform. Entities without
// Collidable never block paths or trigger collisions.
type Collider struct {
	Width      float64
	Height     float64
	Collidable bool
}

var ColliderComponent = NewComponent[Collider]()

// Box is a positioned collider. It satisfies pathfind.Obstacle.
type Box struct {
	X, Y, W, H float64
}

func NewBox(t *Transform, c *Collider) Box {
	return Box{X: t.X, Y: t.Y, W: c.Width, H: c.Height}
}

func (b Box) Bounds() cp.BB {
	return cp.BB{L: b.X, B: b.Y, R: b.X + b.W, T: b.Y + b.H}
}

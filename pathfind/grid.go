package pathfind

import (
	"math"
	"strings"

	"github.com/jakecoffman/cp"
)

// Obstacle is anything that occupies space on the play field. Bounds uses
// screen orientation: B is the smallest Y and T the largest.
type Obstacle interface {
	Bounds() cp.BB
}

// Segmented is implemented by obstacles made of several independent boxes,
// such as a snake body. Each segment blocks cells on its own.
type Segmented interface {
	Segments() []Obstacle
}

// Grid is the occupancy grid for a single search. It owns its nodes; drop
// the whole Grid when the tick ends.
type Grid struct {
	Width  int
	Height int
	Origin cp.Vector

	nodes  []Node
	start  int
	target int
}

// BuildGrid rasterises field into unit cells, blocks every cell covered by
// an obstacle and installs the start (head) and target cells. The caller
// must leave the field itself and the target out of obstacles.
func BuildGrid(field cp.BB, obstacles []Obstacle, head cp.Vector, target Obstacle) *Grid {
	g := newGrid(field)
	if len(g.nodes) == 0 {
		return g
	}

	for _, o := range obstacles {
		if o == nil {
			continue
		}
		if seg, ok := o.(Segmented); ok {
			for _, part := range seg.Segments() {
				if part != nil {
					g.block(part.Bounds())
				}
			}
			continue
		}
		g.block(o.Bounds())
	}

	sx, sy := g.cellOf(head.X, head.Y)
	g.start = g.index(sx, sy)
	g.nodes[g.start].Walkable = true

	if target != nil {
		p := TargetPoint(target.Bounds())
		tx, ty := g.cellOf(p.X, p.Y)
		g.target = g.index(tx, ty)
		g.nodes[g.target].Walkable = true
	}

	return g
}

// TargetPoint is the point whose cell a search aims for inside bb: the far
// corner pulled just inside the box.
func TargetPoint(bb cp.BB) cp.Vector {
	return cp.Vector{
		X: math.Max(bb.L, bb.R-cellEpsilon),
		Y: math.Max(bb.B, bb.T-cellEpsilon),
	}
}

// NewGrid returns an open grid covering field, with no start or target.
// Tests and tools use it to lay out obstacles by hand.
func NewGrid(field cp.BB) *Grid {
	return newGrid(field)
}

func newGrid(field cp.BB) *Grid {
	g := &Grid{
		Origin: cp.Vector{X: field.L, Y: field.B},
		start:  -1,
		target: -1,
	}

	w := int(math.Ceil(field.R - field.L))
	h := int(math.Ceil(field.T - field.B))
	if w <= 0 || h <= 0 {
		return g
	}

	g.Width = w
	g.Height = h
	g.nodes = make([]Node, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			g.nodes[i] = Node{
				Walkable:  true,
				WorldX:    field.L + float64(x),
				WorldY:    field.B + float64(y),
				GridX:     x,
				GridY:     y,
				index:     i,
				parent:    noParent,
				heapIndex: notInHeap,
			}
		}
	}
	return g
}

// At returns the node at grid coordinates, or nil outside the grid.
func (g *Grid) At(x, y int) *Node {
	if !g.inside(x, y) {
		return nil
	}
	return &g.nodes[g.index(x, y)]
}

// Start returns the search origin, or nil if none was set.
func (g *Grid) Start() *Node {
	return g.node(g.start)
}

// Target returns the search goal, or nil if none was set.
func (g *Grid) Target() *Node {
	return g.node(g.target)
}

// SetStart moves the search origin and forces it walkable.
func (g *Grid) SetStart(x, y int) {
	if !g.inside(x, y) {
		return
	}
	g.start = g.index(x, y)
	g.nodes[g.start].Walkable = true
}

// SetTarget moves the search goal and forces it walkable.
func (g *Grid) SetTarget(x, y int) {
	if !g.inside(x, y) {
		return
	}
	g.target = g.index(x, y)
	g.nodes[g.target].Walkable = true
}

// SetWalkable marks a single cell. Out of range coordinates are ignored.
func (g *Grid) SetWalkable(x, y int, walkable bool) {
	if n := g.At(x, y); n != nil {
		n.Walkable = walkable
	}
}

// Reset clears search state on every node so the grid can be searched again.
func (g *Grid) Reset() {
	for i := range g.nodes {
		g.nodes[i].Reset()
	}
}

// Neighbours returns the in-bounds orthogonal neighbours of n in the order
// -X, +X, -Y, +Y.
func (g *Grid) Neighbours(n *Node) []*Node {
	return g.appendNeighbours(make([]*Node, 0, 4), n)
}

func (g *Grid) appendNeighbours(dst []*Node, n *Node) []*Node {
	x, y := n.GridX, n.GridY
	if x > 0 {
		dst = append(dst, &g.nodes[g.index(x-1, y)])
	}
	if x < g.Width-1 {
		dst = append(dst, &g.nodes[g.index(x+1, y)])
	}
	if y > 0 {
		dst = append(dst, &g.nodes[g.index(x, y-1)])
	}
	if y < g.Height-1 {
		dst = append(dst, &g.nodes[g.index(x, y+1)])
	}
	return dst
}

func (g *Grid) String() string {
	return g.Render(nil)
}

// Render draws the grid one row per line: '#' blocked, '.' open, 'S' start,
// 'T' target and '*' for cells on path.
func (g *Grid) Render(path Path) string {
	if len(g.nodes) == 0 {
		return ""
	}

	onPath := make(map[int]bool, len(path))
	for _, n := range path {
		if n != nil {
			onPath[n.index] = true
		}
	}

	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			i := g.index(x, y)
			switch {
			case i == g.start:
				sb.WriteByte('S')
			case i == g.target:
				sb.WriteByte('T')
			case onPath[i]:
				sb.WriteByte('*')
			case !g.nodes[i].Walkable:
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Grid) block(bb cp.BB) {
	minX := int(math.Floor(bb.L - g.Origin.X))
	minY := int(math.Floor(bb.B - g.Origin.Y))
	maxX := int(math.Floor(bb.R - g.Origin.X - cellEpsilon))
	maxY := int(math.Floor(bb.T - g.Origin.Y - cellEpsilon))
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}
	if maxX < 0 || maxY < 0 || minX >= g.Width || minY >= g.Height {
		return
	}

	minX = clamp(minX, 0, g.Width-1)
	minY = clamp(minY, 0, g.Height-1)
	maxX = clamp(maxX, 0, g.Width-1)
	maxY = clamp(maxY, 0, g.Height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			g.nodes[g.index(x, y)].Walkable = false
		}
	}
}

func (g *Grid) cellOf(wx, wy float64) (int, int) {
	x := int(math.Floor(wx - g.Origin.X))
	y := int(math.Floor(wy - g.Origin.Y))
	return clamp(x, 0, g.Width-1), clamp(y, 0, g.Height-1)
}

func (g *Grid) node(i int) *Node {
	if i < 0 || i >= len(g.nodes) {
		return nil
	}
	return &g.nodes[i]
}

func (g *Grid) index(x, y int) int {
	return y*g.Width + x
}

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

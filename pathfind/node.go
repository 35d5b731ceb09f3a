package pathfind

import "fmt"

const (
	noParent    = -1
	notInHeap   = -1
	cellEpsilon = 0.001
)

// Node is one cell of an occupancy grid together with the bookkeeping the
// search needs. Nodes live in a Grid arena and refer to each other by arena
// index, never by pointer.
type Node struct {
	Walkable bool
	WorldX   float64
	WorldY   float64
	GridX    int
	GridY    int
	GCost    int
	HCost    int

	index     int
	parent    int
	heapIndex int
}

// FCost is the node's priority key. Lower is better.
func (n *Node) FCost() int {
	return n.GCost + n.HCost
}

// CompareTo reports whether n should sit closer to the heap root than other.
// Lower FCost wins; equal FCost falls back to the lower HCost.
func (n *Node) CompareTo(other *Node) int {
	switch {
	case n.FCost() < other.FCost():
		return 1
	case n.FCost() > other.FCost():
		return -1
	case n.HCost < other.HCost:
		return 1
	case n.HCost > other.HCost:
		return -1
	}
	return 0
}

func (n *Node) HeapIndex() int {
	return n.heapIndex
}

func (n *Node) SetHeapIndex(i int) {
	n.heapIndex = i
}

// Reset clears search state. A Grid that is searched more than once must
// reset its nodes first, otherwise stale heap indices leak into the new
// open set.
func (n *Node) Reset() {
	n.GCost = 0
	n.HCost = 0
	n.parent = noParent
	n.heapIndex = notInHeap
}

func (n *Node) String() string {
	return fmt.Sprintf("(%d,%d)", n.GridX, n.GridY)
}

// manhattan is both the step cost and the heuristic.
func manhattan(a, b *Node) int {
	dx := a.GridX - b.GridX
	if dx < 0 {
		dx = -dx
	}
	dy := a.GridY - b.GridY
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

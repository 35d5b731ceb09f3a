package pathfind

// Path is the ordered list of cells from the first step after the start up
// to and including the target.
type Path []*Node

// Result is the outcome of one search. An empty Path means the target could
// not be reached this tick.
type Result struct {
	Path    Path
	Visited int
}

// Found reports whether the search produced at least one step.
func (r Result) Found() bool {
	return len(r.Path) > 0
}

// Search runs A* with 4-way movement from the grid's start to its target.
// The grid must be fresh or Reset.
func Search(g *Grid) Result {
	start := g.Start()
	target := g.Target()
	if start == nil || target == nil {
		return Result{}
	}

	open := NewHeap[*Node](g.Width + g.Height)
	closed := make([]bool, len(g.nodes))
	buf := make([]*Node, 0, 4)

	start.GCost = 0
	start.HCost = manhattan(start, target)
	open.Add(start)

	visited := 0
	for open.Len() > 0 {
		current := open.PopFirst()
		closed[current.index] = true
		visited++

		if current == target {
			return Result{Path: g.retrace(start, target), Visited: visited}
		}

		buf = g.appendNeighbours(buf[:0], current)
		for _, neighbour := range buf {
			if !neighbour.Walkable || closed[neighbour.index] {
				continue
			}

			cost := current.GCost + manhattan(current, neighbour)
			inOpen := open.Contains(neighbour)
			if cost >= neighbour.GCost && inOpen {
				continue
			}

			neighbour.GCost = cost
			neighbour.HCost = manhattan(neighbour, target)
			neighbour.parent = current.index

			if inOpen {
				open.Update(neighbour)
			} else {
				open.Add(neighbour)
			}
		}
	}

	return Result{Visited: visited}
}

func (g *Grid) retrace(start, target *Node) Path {
	var path Path
	for n := target; n != start; n = &g.nodes[n.parent] {
		path = append(path, n)
		if n.parent == noParent {
			return nil
		}
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

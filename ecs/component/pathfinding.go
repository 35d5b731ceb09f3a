package component

import "github.com/milk9111/snake/pathfind"

// Pathfinding holds the last search of a computer snake. The path is
// rebuilt every tick; it is kept here only so tools can inspect it.
type Pathfinding struct {
	Target    uint64
	Path      pathfind.Path
	Visited   int
	Found     bool
	Direction pathfind.Direction
	Searches  int
	Misses    int

	// Debug keeps the tick's grid for viewers.
	Debug bool
	Grid  *pathfind.Grid
}

var PathfindingComponent = NewComponent[Pathfinding]()

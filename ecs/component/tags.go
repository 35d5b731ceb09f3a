package component

// PlayerTag marks the keyboard-driven snake. Only its death ends a game.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// ComputerTag marks a snake steered by the pathfinding system.
type ComputerTag struct{}

var ComputerTagComponent = NewComponent[ComputerTag]()

type FoodTag struct{}

var FoodTagComponent = NewComponent[FoodTag]()

type CoinTag struct{}

var CoinTagComponent = NewComponent[CoinTag]()

// BombTag carries the spawn tick so the oldest bomb can be retired first.
type BombTag struct {
	SpawnTick int
}

var BombTagComponent = NewComponent[BombTag]()

// Dead marks an entity for removal at the end of the tick.
type Dead struct {
	Cause string
}

var DeadComponent = NewComponent[Dead]()

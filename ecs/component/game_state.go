package component

// State is the lifecycle of a game.
type State string

const (
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateStopped State = "stopped"
)

// GameState is a singleton holding tick counters and spawn timers.
type GameState struct {
	State        State
	Ticks        int
	TickRate     int
	NextBombTick int
}

var GameStateComponent = NewComponent[GameState]()

package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// Event types pushed by the simulation systems.
const (
	EventAteFood   = "ate_food"
	EventAteCoin   = "ate_coin"
	EventSnakeDied = "snake_died"
	EventBombSpawn = "bomb_spawned"
	EventGameOver  = "game_over"
)

// SnakeEvent describes something that happened to a snake this tick.
type SnakeEvent struct {
	Snake Entity
	Other Entity
	Cause string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

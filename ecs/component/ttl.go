package component

// TTL removes an entity after the given number of ticks. Coins use it.
// Born is the tick it was added on; that tick does not count down.
type TTL struct {
	Ticks int
	Born  int
}

var TTLComponent = NewComponent[TTL]()

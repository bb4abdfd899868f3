package world

// Stats counts what has happened in a world since it was created.
type Stats struct {
	Ticks          uint64
	Entities       int // Currently registered
	Contacts       int // Events reported by physics
	Handled        int // Events that reached a handler
	MobsKilled     int
	ItemsCollected int
	BlocksMined    int
	BlocksPlaced   int
	Removed        int
}

// Stats returns a snapshot of the world counters.
func (w *World) Stats() Stats {
	s := w.stats
	s.Ticks = w.tick
	s.Entities = w.registry.Len()
	s.Handled = w.dispatch.Dispatched()
	return s
}

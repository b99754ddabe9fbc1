package services

import "context"

// Gate serializes cache-touching work between the switcher and ordinary sync. There is
// only ever one in-flight switch per client instance, so a single slot is enough.
type Gate struct {
	slot chan struct{}
}

// NewGate creates an unheld gate.
func NewGate() *Gate {
	return &Gate{slot: make(chan struct{}, 1)}
}

// Acquire blocks until the gate is free or the context is done.
func (g *Gate) Acquire(ctx context.Context) error {
	select {
	case g.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire takes the gate without blocking. Returns false if it is held.
func (g *Gate) TryAcquire() bool {
	select {
	case g.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release frees the gate. Must only be called by the holder.
func (g *Gate) Release() {
	<-g.slot
}

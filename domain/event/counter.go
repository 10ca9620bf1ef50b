package event

import "sync"

// Counter accumulates per-kind event totals for the telemetry pipeline.
// Safe for concurrent use.
type Counter struct {
	mu     sync.RWMutex
	counts map[Kind]uint64
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[Kind]uint64)}
}

func (c *Counter) Increment(kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[kind]++
}

func (c *Counter) Get(kind Kind) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[kind]
}

// Snapshot returns a copy of all totals, for stats pages.
func (c *Counter) Snapshot() map[Kind]uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[Kind]uint64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

package reactive

import (
	"sync"

	"github.com/okian/assetlens/pkg/metrics"
)

// Computed is a read-only, lazily recomputed value derived from its Sources.
type Computed[T any] struct {
	name string
	fn   func() T

	mu     sync.Mutex
	cached T
	valid  bool
	epoch  uint64

	cancels []func()
	subs    subscribers
}

// NewComputed derives a value from fn, invalidated whenever any source changes.
// fn must be side-effect free; it runs at most once per invalidation.
func NewComputed[T any](name string, fn func() T, sources ...Source) *Computed[T] {
	c := &Computed[T]{name: name, fn: fn}
	for _, s := range sources {
		if s == nil {
			continue
		}
		c.cancels = append(c.cancels, s.Subscribe(c.invalidate))
	}
	return c
}

// Get returns the cached result, recomputing it first if a source changed.
func (c *Computed[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid {
		c.cached = c.fn()
		c.valid = true
		c.epoch++
		metrics.RecordRecompute(c.name)
	}
	return c.cached
}

// Epoch counts recomputations so far.
func (c *Computed[T]) Epoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// Subscribe implements Source, so Computed values can feed other Computed values.
// Subscribers fire when the cached result is invalidated.
func (c *Computed[T]) Subscribe(fn func()) func() {
	return c.subs.add(fn)
}

// Close detaches from all sources. The last cached result stays readable.
func (c *Computed[T]) Close() {
	c.mu.Lock()
	cancels := c.cancels
	c.cancels = nil
	c.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}

func (c *Computed[T]) invalidate() {
	c.mu.Lock()
	wasValid := c.valid
	c.valid = false
	c.mu.Unlock()

	// Downstream only needs one notification per stale period.
	if wasValid {
		c.subs.notify()
	}
}

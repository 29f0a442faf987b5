// Package reactive provides observable values and memoized derivations.
//
// A Computed declares its Sources explicitly. When any Source notifies, the
// cached result is marked stale and recomputed on the next Get.
package reactive

import (
	"sync"
)

// Source is anything that can announce a change.
type Source interface {
	// Subscribe registers fn to run after every change. The returned
	// function removes the subscription; calling it twice is a no-op.
	Subscribe(fn func()) (cancel func())
}

// subscribers is a registry of change callbacks keyed by a monotonic id so
// cancellation works without comparing funcs.
type subscribers struct {
	mu   sync.Mutex
	next uint64
	fns  map[uint64]func()
}

func (s *subscribers) add(fn func()) func() {
	s.mu.Lock()
	if s.fns == nil {
		s.fns = make(map[uint64]func())
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.fns, id)
			s.mu.Unlock()
		})
	}
}

// snapshot returns the callbacks in registration order.
func (s *subscribers) snapshot() []func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]func(), 0, len(s.fns))
	for id := uint64(0); id < s.next; id++ {
		if fn, ok := s.fns[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func (s *subscribers) notify() {
	for _, fn := range s.snapshot() {
		fn()
	}
}

// Value is an observable cell. Set notifies subscribers only when the value
// actually changes.
type Value[T comparable] struct {
	mu   sync.RWMutex
	v    T
	subs subscribers
}

// NewValue returns a Value holding initial.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{v: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.v
}

// Set stores x and reports whether it differed from the previous value.
// Subscribers run synchronously on the calling goroutine, after the lock is released.
func (v *Value[T]) Set(x T) bool {
	v.mu.Lock()
	if v.v == x {
		v.mu.Unlock()
		return false
	}
	v.v = x
	v.mu.Unlock()

	v.subs.notify()
	return true
}

// Subscribe implements Source.
func (v *Value[T]) Subscribe(fn func()) func() {
	return v.subs.add(fn)
}

// Watch subscribes fn with the post-change value.
func (v *Value[T]) Watch(fn func(T)) func() {
	return v.subs.add(func() { fn(v.Get()) })
}

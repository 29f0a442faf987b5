// Package repository stores the configured distribution sets served by the backend.
package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Kind separates top-level distribution sets from per-category detail sets.
type Kind string

// Set kinds.
const (
	KindDistribution Kind = "distribution"
	KindDetail       Kind = "detail"
)

// Item is one stored holding.
type Item struct {
	Name  string
	Value float64
}

// Store provides read/write access to distribution sets.
type Store interface {
	// Put replaces the items of the named set.
	Put(ctx context.Context, kind Kind, name string, items []Item) error

	// Get returns a copy of the named set's items.
	// Returns ErrNotFound if the set is unknown.
	Get(ctx context.Context, kind Kind, name string) ([]Item, error)

	// Names lists the set names of a kind in sorted order.
	Names(ctx context.Context, kind Kind) []string

	// Count returns the number of sets across kinds.
	Count(ctx context.Context) int
}

type key struct {
	kind Kind
	name string
}

// MemoryStore is a Store held in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[key][]Item
}

// NewMemoryStore returns an empty MemoryStore, optionally seeded.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{sets: make(map[key][]Item)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, kind Kind, name string, items []Item) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	cp := make([]Item, len(items))
	copy(cp, items)

	s.mu.Lock()
	s.sets[key{kind, name}] = cp
	s.mu.Unlock()
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, kind Kind, name string) ([]Item, error) {
	s.mu.RLock()
	items, ok := s.sets[key{kind, name}]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]Item, len(items))
	copy(cp, items)
	return cp, nil
}

// Names implements Store.
func (s *MemoryStore) Names(_ context.Context, kind Kind) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for k := range s.sets {
		if k.kind == kind {
			names = append(names, k.name)
		}
	}
	sort.Strings(names)
	return names
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sets)
}

// Package appstore holds process-wide UI state shared by chart consumers.
package appstore

import (
	"github.com/okian/assetlens/internal/reactive"
	"github.com/okian/assetlens/pkg/metrics"
)

// Store is the shared application state. The zero value is not usable; call New.
type Store struct {
	dark *reactive.Value[bool]
}

// Option configures a Store.
type Option func(*Store)

// WithDark seeds the dark-mode flag.
func WithDark(dark bool) Option {
	return func(s *Store) { s.dark = reactive.NewValue(dark) }
}

// New returns a Store with the dark-mode flag off unless configured.
func New(opts ...Option) *Store {
	s := &Store{dark: reactive.NewValue(false)}
	for _, opt := range opts {
		opt(s)
	}
	s.dark.Subscribe(func() { metrics.RecordStateChange("dark_mode") })
	return s
}

// IsDark reports the current dark-mode flag.
func (s *Store) IsDark() bool { return s.dark.Get() }

// SetDark updates the flag. Subscribers run only if it changed.
func (s *Store) SetDark(dark bool) { s.dark.Set(dark) }

// Toggle flips the flag and returns the new value.
func (s *Store) Toggle() bool {
	next := !s.dark.Get()
	s.dark.Set(next)
	return next
}

// Subscribe implements reactive.Source for the dark-mode flag.
func (s *Store) Subscribe(fn func()) func() { return s.dark.Subscribe(fn) }

// Watch subscribes fn with the new flag value.
func (s *Store) Watch(fn func(dark bool)) func() { return s.dark.Watch(fn) }

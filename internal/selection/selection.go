// Package selection holds the active month key shared across budget
// reads: an explicit, mutex-guarded object handed to callers instead
// of a global.
package selection

import (
	"sync"

	"budget/internal/monthkey"
)

// Selection is the currently active month. The zero value is not
// usable; construct with New.
type Selection struct {
	mu  sync.Mutex
	key string
}

// New returns a selection initialized to the current calendar month.
func New() *Selection {
	return &Selection{key: monthkey.Current()}
}

// Current returns the active month key.
func (s *Selection) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// Set replaces the active month key.
func (s *Selection) Set(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
}

// Next advances the selection one month, wrapping year boundaries.
func (s *Selection) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, y := monthkey.Decode(s.key)
	s.key = monthkey.Encode(monthkey.Next(m, y))
	return s.key
}

// Previous steps the selection back one month, wrapping year
// boundaries.
func (s *Selection) Previous() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, y := monthkey.Decode(s.key)
	s.key = monthkey.Encode(monthkey.Previous(m, y))
	return s.key
}

// Reset returns the selection to the current calendar month.
func (s *Selection) Reset() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = monthkey.Current()
	return s.key
}

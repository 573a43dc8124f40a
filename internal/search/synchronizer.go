package search

import (
	"net/url"
	"sync"
	"time"

	"github.com/polkiloo/invoices-dashboard/internal/pkg/debounce"
)

// DefaultWait is the quiet window before a changed term is applied.
const DefaultWait = 300 * time.Millisecond

// Navigator replaces the current history entry with url.
type Navigator interface {
	Replace(url string)
}

// Synchronizer mirrors a search input into the list URL. Only the last term
// typed within the quiet window causes a navigation.
type Synchronizer struct {
	path     string
	debounce *debounce.Debouncer
	nav      Navigator

	mu      sync.Mutex
	current url.Values
	term    string
}

// NewSynchronizer seeds the input value from the query parameter of current.
func NewSynchronizer(path string, current url.Values, nav Navigator, wait time.Duration) *Synchronizer {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Synchronizer{
		path:     path,
		debounce: debounce.New(wait),
		nav:      nav,
		current:  current,
		term:     current.Get(ParamQuery),
	}
}

// Term returns the value currently shown in the input.
func (s *Synchronizer) Term() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

// Input records an edit of the search input.
func (s *Synchronizer) Input(term string) {
	s.mu.Lock()
	s.term = term
	s.mu.Unlock()

	s.debounce.Trigger(func() {
		s.mu.Lock()
		next := Params(s.current, term)
		s.current = next
		s.mu.Unlock()

		s.nav.Replace(s.path + "?" + next.Encode())
	})
}

// Flush applies a pending edit without waiting.
func (s *Synchronizer) Flush() {
	s.debounce.Flush()
}

// Close drops a pending edit.
func (s *Synchronizer) Close() {
	s.debounce.Stop()
}

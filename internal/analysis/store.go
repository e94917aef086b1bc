// Package analysis holds the single source of truth for the current resume
// analysis. Coordinators read from the Store and subscribe to replacements;
// only the upload flow writes it.
package analysis

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/career-mentor/internal/types"
)

// Listener is notified synchronously whenever a new analysis replaces the
// current one. The version identifies the analysis instance so listeners can
// tag derived work and discard stale completions.
type Listener func(result *types.AnalysisResult, version uuid.UUID)

// Store holds at most one AnalysisResult. A new Set fully supersedes the old
// value; subscribers are responsible for resetting their own derived state on
// notification. Only one flow may call Set (the upload path), so notifications
// from successive Sets never interleave.
type Store struct {
	mu        sync.RWMutex
	result    *types.AnalysisResult
	version   uuid.UUID
	listeners []Listener
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the held analysis and notifies subscribers synchronously, in
// subscription order, exactly once.
func (s *Store) Set(result *types.AnalysisResult) {
	s.mu.Lock()
	s.result = result
	s.version = uuid.New()
	version := s.version
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(result, version)
	}
}

// Get returns the current analysis, or nil if none has been set.
func (s *Store) Get() *types.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Snapshot returns the current analysis together with its version.
func (s *Store) Snapshot() (*types.AnalysisResult, uuid.UUID) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result, s.version
}

// Version returns the identity of the current analysis. The zero UUID means
// no analysis has been set yet.
func (s *Store) Version() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers a listener for future Set calls.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

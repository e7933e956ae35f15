// Package settings holds the live configuration snapshot shared by the
// gate and the chat client.
package settings

import (
	"sync"
	"sync/atomic"

	asklet "github.com/Paranoid-AF/asklet"
)

// Store owns the current configuration. Snapshots are immutable and swapped
// whole, so a request never sees a half-applied update.
type Store struct {
	cfg atomic.Pointer[asklet.Config]
	mu  sync.Mutex // serializes writers
}

// NewStore creates a store holding cfg, or the defaults when cfg is nil.
func NewStore(cfg *asklet.Config) *Store {
	s := &Store{}
	s.cfg.Store(cfg.Clone())
	return s
}

// Read returns the current snapshot. Callers must not modify it.
func (s *Store) Read() *asklet.Config {
	return s.cfg.Load()
}

// Update replaces the host-controlled settings from an option list and
// returns the new snapshot.
func (s *Store) Update(opts []asklet.Option) *asklet.Config {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := asklet.ApplyOptions(s.cfg.Load(), opts)
	s.cfg.Store(next)
	return next
}

// Replace swaps in a whole config, e.g. after reloading the config file.
func (s *Store) Replace(cfg *asklet.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Store(cfg.Clone())
}

// Options lists the current settings for display, API key masked.
func (s *Store) Options() []asklet.Option {
	return asklet.ConfigOptions(s.Read(), true)
}

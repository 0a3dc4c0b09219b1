// Package denylist provides an in-memory store of revoked token IDs with
// expiry-based eviction.
package denylist

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	// ErrStoreClosed indicates the store has been shut down.
	ErrStoreClosed = errors.New("denylist store is closed")

	// ErrEmptyTokenID indicates a revocation request without a token ID.
	ErrEmptyTokenID = errors.New("token ID cannot be empty")
)

// Config controls store capacity and background cleanup.
type Config struct {
	// MaxSize bounds the number of revoked IDs held in memory.
	MaxSize int

	// CleanupInterval is how often expired entries are swept. A zero or
	// negative interval disables the background sweeper.
	CleanupInterval time.Duration
}

// DefaultConfig returns the store defaults used by the engine.
func DefaultConfig() Config {
	return Config{
		MaxSize:         100000,
		CleanupInterval: 5 * time.Minute,
	}
}

// Store holds revoked token IDs until their expiry passes.
type Store struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	clock   clockwork.Clock
	maxSize int
	closed  bool

	stopCleanup chan struct{}
	cleanupWg   sync.WaitGroup
}

// NewStore creates a Store using clock for all expiry decisions and starts
// the background sweeper when configured.
func NewStore(cfg Config, clock clockwork.Clock) *Store {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultConfig().MaxSize
	}

	s := &Store{
		entries:     make(map[string]time.Time),
		clock:       clock,
		maxSize:     cfg.MaxSize,
		stopCleanup: make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		s.cleanupWg.Add(1)
		go s.cleanupLoop(cfg.CleanupInterval)
	}

	return s
}

// Add records tokenID as revoked until expiresAt. Entries already past
// their expiry are not stored.
func (s *Store) Add(tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return ErrEmptyTokenID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	now := s.clock.Now()
	if !expiresAt.After(now) {
		return nil
	}

	if len(s.entries) >= s.maxSize {
		s.sweepLocked(now)
		if len(s.entries) >= s.maxSize {
			s.evictSoonestLocked()
		}
	}

	s.entries[tokenID] = expiresAt
	return nil
}

// Contains reports whether tokenID is currently revoked.
func (s *Store) Contains(tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, ErrStoreClosed
	}

	expiresAt, ok := s.entries[tokenID]
	if !ok {
		return false, nil
	}

	return s.clock.Now().Before(expiresAt), nil
}

// Remove drops tokenID from the store.
func (s *Store) Remove(tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	delete(s.entries, tokenID)
	return nil
}

// Sweep removes expired entries and reports how many were dropped.
func (s *Store) Sweep() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	return s.sweepLocked(s.clock.Now()), nil
}

// Len reports the number of stored entries, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the background sweeper and releases the stored entries.
// Safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.entries = nil
	close(s.stopCleanup)
	s.mu.Unlock()

	s.cleanupWg.Wait()
	return nil
}

func (s *Store) sweepLocked(now time.Time) int {
	removed := 0
	for id, expiresAt := range s.entries {
		if !now.Before(expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// evictSoonestLocked makes room by dropping the entry closest to expiry.
func (s *Store) evictSoonestLocked() {
	var (
		victim   string
		earliest time.Time
	)
	for id, expiresAt := range s.entries {
		if victim == "" || expiresAt.Before(earliest) {
			victim = id
			earliest = expiresAt
		}
	}
	if victim != "" {
		delete(s.entries, victim)
	}
}

func (s *Store) cleanupLoop(interval time.Duration) {
	defer s.cleanupWg.Done()

	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			s.mu.Lock()
			if !s.closed {
				s.sweepLocked(s.clock.Now())
			}
			s.mu.Unlock()
		case <-s.stopCleanup:
			return
		}
	}
}

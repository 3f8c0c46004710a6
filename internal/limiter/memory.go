package limiter

import (
	"sync"
	"time"
)

type windowEntry struct {
	count   int
	resetAt time.Time
}

// MemoryStore is the in-process CounterStore. Safe for concurrent use; all
// map access happens under one mutex, so an increment is atomic with respect
// to parallel request handlers.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time
	stopCh  chan struct{}
	stopped sync.Once
}

// NewMemoryStore creates an in-memory counter store. A nil clock means
// time.Now; tests inject a fake clock to simulate window expiry.
func NewMemoryStore(clock func() time.Time) *MemoryStore {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryStore{
		entries: make(map[string]*windowEntry),
		now:     clock,
		stopCh:  make(chan struct{}),
	}
}

// Increment counts one hit for the key. The window resets lazily: when the
// stored window has elapsed, the entry restarts at count 1.
func (s *MemoryStore) Increment(key string, window time.Duration) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || !now.Before(e.resetAt) {
		e = &windowEntry{resetAt: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count, e.resetAt
}

// Sweep evicts entries whose window has fully elapsed.
func (s *MemoryStore) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if !now.Before(e.resetAt) {
			delete(s.entries, key)
		}
	}
}

// Len returns the number of tracked keys. For tests and metrics.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartSweeper runs Sweep on the given interval until Stop is called. The
// onSweep hook, if set, receives the post-sweep key count.
func (s *MemoryStore) StartSweeper(interval time.Duration, onSweep func(keys int)) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep(s.now())
				if onSweep != nil {
					onSweep(s.Len())
				}
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the background sweeper.
func (s *MemoryStore) Stop() {
	s.stopped.Do(func() {
		close(s.stopCh)
	})
}

// compile-time interface check
var _ CounterStore = (*MemoryStore)(nil)

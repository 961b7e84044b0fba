package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int64
	resetAt time.Time
}

// MemoryStore keeps window counters in process. Limits are per instance.
type MemoryStore struct {
	mu        sync.Mutex
	windows   map[string]*window
	length    time.Duration
	now       func() time.Time
	nextSweep time.Time
}

func NewMemoryStore(length time.Duration) *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*window),
		length:  length,
		now:     time.Now,
	}
}

func (s *MemoryStore) Take(_ context.Context, key string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(s.length)}
		s.windows[key] = w
	}
	w.count++

	return Result{Count: w.count, ResetAfter: w.resetAt.Sub(now)}, nil
}

// sweep drops closed windows at most once per window length
func (s *MemoryStore) sweep(now time.Time) {
	if now.Before(s.nextSweep) {
		return
	}
	for key, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, key)
		}
	}
	s.nextSweep = now.Add(s.length)
}

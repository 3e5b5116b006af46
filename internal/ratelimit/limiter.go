package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter answers whether one more request from the given key is allowed
// inside the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Memory is a mutex-guarded per-process counter map with a periodic sweep.
// Under horizontal scaling each instance counts independently, so the
// effective ceiling is limit x instance count.
type Memory struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
	stop   chan struct{}
	now    func() time.Time
}

func NewMemory(limit int, window time.Duration) *Memory {
	m := &Memory{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		stop:   make(chan struct{}),
		now:    time.Now,
	}
	go m.sweep()
	return m
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cutoff := now.Add(-m.window)

	recent := m.hits[key][:0]
	for _, t := range m.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= m.limit {
		m.hits[key] = recent
		return false, nil
	}

	m.hits[key] = append(recent, now)
	return true, nil
}

func (m *Memory) sweep() {
	ticker := time.NewTicker(m.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			cutoff := m.now().Add(-m.window)
			for key, times := range m.hits {
				if len(times) == 0 || !times[len(times)-1].After(cutoff) {
					delete(m.hits, key)
				}
			}
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}

func (m *Memory) Close() {
	close(m.stop)
}

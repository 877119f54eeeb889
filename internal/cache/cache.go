// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package cache provides a process-wide keyed TTL store that memoizes
// expensive provider lookups. Concurrent lookups for the same key collapse
// into a single upstream call.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Producer computes a value on cache miss.
type Producer func(ctx context.Context) (any, error)

type entry struct {
	value  any
	expiry time.Time
}

// Store is a concurrency-safe in-memory TTL cache.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
}

// New returns a new empty Store.
func New() *Store {
	return &Store{
		entries: make(map[string]entry),
	}
}

// GetOrCompute returns the cached value for key if it is still fresh.
// Otherwise it runs producer and caches the result for ttl. Failed producer
// runs are not cached.
func (s *Store) GetOrCompute(ctx context.Context, key string, ttl time.Duration, producer Producer) (any, error) {
	s.mu.RLock()
	ent, ok := s.entries[key]
	s.mu.RUnlock()
	if ok && time.Now().Before(ent.expiry) {
		return ent.value, nil
	}

	value, err, _ := s.group.Do(key, func() (any, error) {
		// Re-check after acquiring the flight: a concurrent caller may have
		// populated the entry while we waited.
		s.mu.RLock()
		ent, ok := s.entries[key]
		s.mu.RUnlock()
		if ok && time.Now().Before(ent.expiry) {
			return ent.value, nil
		}

		// The flight is shared between collapsed callers, so the producer must
		// not die with the first caller's context. Upstream calls stay bounded
		// by their own client timeouts.
		val, err := producer(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.entries[key] = entry{value: val, expiry: time.Now().Add(ttl)}
		s.mu.Unlock()
		return val, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Sweep removes all expired entries and returns the number of evictions.
func (s *Store) Sweep() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, ent := range s.entries {
		if now.After(ent.expiry) {
			delete(s.entries, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of entries currently held, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

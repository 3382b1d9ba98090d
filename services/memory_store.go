package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"concert-pass/models"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

func (e memoryEntry) live(now time.Time) bool {
	return e.expires.IsZero() || now.Before(e.expires)
}

func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

// MemoryDraftStore keeps drafts in process memory. It is used when no Redis URL is
// configured and in tests.
type MemoryDraftStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	locks   map[string]time.Time
	now     func() time.Time
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{
		entries: make(map[string]memoryEntry),
		locks:   make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryDraftStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || !entry.live(s.now()) {
		delete(s.entries, key)
		return nil, ErrDraftNotFound
	}
	return append([]byte(nil), entry.data...), nil
}

func (s *MemoryDraftStore) Save(_ context.Context, key string, data []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{data: append([]byte(nil), data...), expires: expiry(s.now(), ttl)}
	return nil
}

func (s *MemoryDraftStore) Replace(_ context.Context, key string, data []byte, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok || !entry.live(now) {
		delete(s.entries, key)
		return false, nil
	}
	s.entries[key] = memoryEntry{data: append([]byte(nil), data...), expires: expiry(now, ttl)}
	return true, nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *MemoryDraftStore) DeletePrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	return nil
}

func (s *MemoryDraftStore) AcquireLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if until, held := s.locks[key]; held && (until.IsZero() || now.Before(until)) {
		return false, nil
	}
	s.locks[key] = expiry(now, ttl)
	return true, nil
}

func (s *MemoryDraftStore) ReleaseLock(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.locks, key)
	return nil
}

type memorySession struct {
	session models.Session
	expires time.Time
}

// MemorySessionStore is the in-process counterpart of RedisSessionStore.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Save(_ context.Context, session models.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = memorySession{session: session, expires: expiry(s.now(), ttl)}
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context, id string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok || (!entry.expires.IsZero() && !s.now().Before(entry.expires)) {
		delete(s.sessions, id)
		return models.Session{}, ErrNoSession
	}
	return entry.session, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

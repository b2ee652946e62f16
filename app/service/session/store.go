package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"
)

// Sessions expire 24 hours after the last write.
const sessionExpiry = 24 * time.Hour

const keyPrefix = "session:"

type store interface {
	get(ctx context.Context, id string) (*Session, error)
	put(ctx context.Context, sess *Session) error
	delete(ctx context.Context, id string) (bool, error)
}

type redisStore struct {
	client *redis.Client
}

func (s *redisStore) get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}

		return nil, oops.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err = json.Unmarshal(data, &sess); err != nil {
		return nil, oops.Errorf("failed to parse session blob: %w", err)
	}

	return &sess, nil
}

func (s *redisStore) put(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return oops.Errorf("failed to marshal session: %w", err)
	}

	if err = s.client.SetEx(ctx, keyPrefix+sess.ID, data, sessionExpiry).Err(); err != nil {
		return oops.Errorf("failed to write session: %w", err)
	}

	return nil
}

func (s *redisStore) delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.client.Del(ctx, keyPrefix+id).Result()
	if err != nil {
		return false, oops.Errorf("failed to delete session: %w", err)
	}

	return removed > 0, nil
}

// memoryStore is the fallback when Redis is unreachable at startup. Entries
// honor the same expiry, checked lazily on read.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sessions: make(map[string]memoryEntry),
	}
}

func (s *memoryStore) get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()

		return nil, ErrNotFound
	}

	var sess Session
	if err := json.Unmarshal(entry.data, &sess); err != nil {
		return nil, oops.Errorf("failed to parse session blob: %w", err)
	}

	return &sess, nil
}

func (s *memoryStore) put(_ context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return oops.Errorf("failed to marshal session: %w", err)
	}

	s.mu.Lock()
	s.sessions[sess.ID] = memoryEntry{
		data:      data,
		expiresAt: time.Now().Add(sessionExpiry),
	}
	s.mu.Unlock()

	return nil
}

func (s *memoryStore) delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false, nil
	}

	delete(s.sessions, id)

	return true, nil
}

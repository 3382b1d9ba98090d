package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrDraftNotFound  = errors.New("draft: not found")
	ErrSubmitInFlight = errors.New("draft: submission already in flight")
	ErrNotSubmittable = errors.New("draft: not ready to submit")

	// ErrDraftAbandoned is returned when a submission finishes after its draft was
	// discarded or replaced; the result is not applied.
	ErrDraftAbandoned = errors.New("draft: abandoned")
)

// DraftStore holds serialized wizard drafts and their submit locks.
type DraftStore interface {
	// Load returns ErrDraftNotFound when key is unknown or expired.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Replace overwrites key only if it still holds a live draft and reports
	// whether it did. A discarded draft is never brought back.
	Replace(ctx context.Context, key string, data []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	// DeletePrefix drops every draft whose key starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// AcquireLock reports false when the lock for key is already held.
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

func BookingDraftKey(sessionID string, concertID int64) string {
	return fmt.Sprintf("draft:%s:booking:%d", sessionID, concertID)
}

func ListingDraftKey(sessionID string) string {
	return fmt.Sprintf("draft:%s:listing:new", sessionID)
}

// SessionDraftPrefix is the key prefix of every draft of one session.
func SessionDraftPrefix(sessionID string) string {
	return fmt.Sprintf("draft:%s:", sessionID)
}

func lockKey(key string) string {
	return "lock:" + key
}

type RedisDraftStore struct {
	Redis *redis.Client
}

func NewRedisDraftStore(redisClient *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{Redis: redisClient}
}

func (s *RedisDraftStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.Redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("draft: load %s: %w", key, err)
	}
	return data, nil
}

func (s *RedisDraftStore) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := s.Redis.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("draft: save %s: %w", key, err)
	}
	return nil
}

func (s *RedisDraftStore) Replace(ctx context.Context, key string, data []byte, ttl time.Duration) (bool, error) {
	ok, err := s.Redis.SetXX(ctx, key, data, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("draft: replace %s: %w", key, err)
	}
	return ok, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, key string) error {
	if err := s.Redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("draft: delete %s: %w", key, err)
	}
	return nil
}

func (s *RedisDraftStore) DeletePrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	for {
		keys, next, err := s.Redis.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("draft: scan %s: %w", prefix, err)
		}
		if len(keys) > 0 {
			if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("draft: delete %s: %w", prefix, err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (s *RedisDraftStore) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.Redis.SetNX(ctx, lockKey(key), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("draft: lock %s: %w", key, err)
	}
	return ok, nil
}

func (s *RedisDraftStore) ReleaseLock(ctx context.Context, key string) error {
	if err := s.Redis.Del(ctx, lockKey(key)).Err(); err != nil {
		return fmt.Errorf("draft: unlock %s: %w", key, err)
	}
	return nil
}

// DraftService stores wizard states as JSON.
type DraftService struct {
	Store DraftStore
	TTL   time.Duration
}

func NewDraftService(store DraftStore, ttl time.Duration) *DraftService {
	return &DraftService{Store: store, TTL: ttl}
}

func (s *DraftService) Load(ctx context.Context, key string, dst any) error {
	data, err := s.Store.Load(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("draft: json.Unmarshal %s: %w", key, err)
	}
	return nil
}

func (s *DraftService) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("draft: json.Marshal %s: %w", key, err)
	}
	return s.Store.Save(ctx, key, data, s.TTL)
}

// Update rewrites an existing draft. It returns ErrDraftNotFound when the draft
// was discarded in the meantime.
func (s *DraftService) Update(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("draft: json.Marshal %s: %w", key, err)
	}
	ok, err := s.Store.Replace(ctx, key, data, s.TTL)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDraftNotFound
	}
	return nil
}

// Lock takes the per-draft submit lock. The returned release func is safe to
// defer whether or not the lock was taken.
func (s *DraftService) Lock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	locked, err := s.Store.AcquireLock(ctx, key, ttl)
	if err != nil || !locked {
		return func() {}, false, err
	}
	return func() {
		if err := s.Store.ReleaseLock(ctx, key); err != nil {
			slog.WarnContext(ctx, "release draft lock", "key", key, "error", err)
		}
	}, true, nil
}

func (s *DraftService) Discard(ctx context.Context, key string) error {
	return s.Store.Delete(ctx, key)
}

// DiscardSession abandons every draft of a session.
func (s *DraftService) DiscardSession(ctx context.Context, sessionID string) error {
	return s.Store.DeletePrefix(ctx, SessionDraftPrefix(sessionID))
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"concert-pass/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionKeyPattern matches every stored session.
const SessionKeyPattern = "session:*"

var ErrNoSession = errors.New("session: not found")

// SessionStore persists sessions by id.
type SessionStore interface {
	Save(ctx context.Context, session models.Session, ttl time.Duration) error
	// Load returns ErrNoSession when id is unknown or expired.
	Load(ctx context.Context, id string) (models.Session, error)
	Delete(ctx context.Context, id string) error
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

type RedisSessionStore struct {
	Redis *redis.Client
}

func NewRedisSessionStore(redisClient *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Redis: redisClient}
}

func (s *RedisSessionStore) Save(ctx context.Context, session models.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session: json.Marshal: %w", err)
	}
	if err := s.Redis.Set(ctx, sessionKey(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Load(ctx context.Context, id string) (models.Session, error) {
	data, err := s.Redis.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, ErrNoSession
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("session: load: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return models.Session{}, fmt.Errorf("session: json.Unmarshal: %w", err)
	}
	return session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.Redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

// SessionService is the single owner of the signed-in state. Handlers call Current
// on every request instead of caching the session.
type SessionService struct {
	Store SessionStore
	TTL   time.Duration

	newID func() string
	now   func() time.Time
}

func NewSessionService(store SessionStore, ttl time.Duration) *SessionService {
	return &SessionService{
		Store: store,
		TTL:   ttl,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Login stores a new session for token and user. The session never outlives the
// token's own exp claim when the token is a JWT.
func (s *SessionService) Login(ctx context.Context, token string, user models.User) (models.Session, error) {
	if token == "" {
		return models.Session{}, errors.New("session: login: empty token")
	}

	now := s.now()
	expires := now.Add(s.TTL)
	if exp, ok := tokenExpiry(token); ok && exp.Before(expires) {
		expires = exp
	}
	if !expires.After(now) {
		return models.Session{}, errors.New("session: login: token already expired")
	}

	session := models.Session{
		ID:        s.newID(),
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: expires,
	}
	if err := s.Store.Save(ctx, session, expires.Sub(now)); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// Current returns the live session with the given id.
func (s *SessionService) Current(ctx context.Context, id string) (models.Session, error) {
	if id == "" {
		return models.Session{}, ErrNoSession
	}

	session, err := s.Store.Load(ctx, id)
	if err != nil {
		return models.Session{}, err
	}
	if !session.ExpiresAt.IsZero() && !session.ExpiresAt.After(s.now()) {
		return models.Session{}, ErrNoSession
	}
	return session, nil
}

// UpdateUser replaces the cached user of a session, keeping its expiry.
func (s *SessionService) UpdateUser(ctx context.Context, session models.Session, user models.User) (models.Session, error) {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return models.Session{}, ErrNoSession
	}

	session.User = user
	if err := s.Store.Save(ctx, session, ttl); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (s *SessionService) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.Store.Delete(ctx, id)
}

// tokenExpiry reads the exp claim without verifying the signature; the backend
// stays the one that checks the token.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

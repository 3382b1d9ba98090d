package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"concert-pass/internal/api"
	"concert-pass/models"
)

type AuthService struct {
	Backend  Backend
	Sessions *SessionService
	Drafts   *DraftService
}

func NewAuthService(backend Backend, sessions *SessionService, drafts *DraftService) *AuthService {
	return &AuthService{Backend: backend, Sessions: sessions, Drafts: drafts}
}

// Login exchanges credentials for a backend token and opens a session for it.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	resp, err := s.Backend.Login(ctx, req)
	if err != nil {
		return models.Session{}, fmt.Errorf("auth: login: %w", err)
	}

	session, err := s.Sessions.Login(ctx, resp.Token, resp.User)
	if err != nil {
		return models.Session{}, fmt.Errorf("auth: login: %w", err)
	}
	slog.InfoContext(ctx, "user signed in", "user_id", resp.User.ID, "role", resp.User.Role)
	return session, nil
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := s.Backend.Register(ctx, req); err != nil {
		return fmt.Errorf("auth: register: %w", err)
	}
	return nil
}

// Logout ends the session and abandons its drafts.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.Drafts.DiscardSession(ctx, sessionID); err != nil {
		slog.WarnContext(ctx, "discard drafts on logout", "error", err)
	}
	return s.Sessions.Logout(ctx, sessionID)
}

// Refresh reloads the session user from the backend. A token the backend no longer
// accepts ends the session.
func (s *AuthService) Refresh(ctx context.Context, session models.Session) (models.Session, error) {
	user, err := s.Backend.Me(ctx, session.Token)
	if errors.Is(err, api.ErrUnauthorized) {
		if err := s.Logout(ctx, session.ID); err != nil {
			slog.WarnContext(ctx, "logout rejected session", "error", err)
		}
		return models.Session{}, ErrNoSession
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("auth: refresh: %w", err)
	}
	return s.Sessions.UpdateUser(ctx, session, user)
}

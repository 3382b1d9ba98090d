package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"concert-pass/models"
)

var ErrInvalidStatus = errors.New("admin: invalid concert status")

type AdminService struct {
	Backend Backend
}

func NewAdminService(backend Backend) *AdminService {
	return &AdminService{Backend: backend}
}

func (s *AdminService) Users(ctx context.Context, session models.Session) ([]models.User, error) {
	users, err := s.Backend.ListUsers(ctx, session.Token)
	if err != nil {
		return nil, fmt.Errorf("admin: users: %w", err)
	}
	return users, nil
}

// Concerts lists concerts in one review status, pending when status is empty.
func (s *AdminService) Concerts(ctx context.Context, session models.Session, status models.ConcertStatus) ([]models.Concert, error) {
	if status == "" {
		status = models.ConcertPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	concerts, err := s.Backend.ListConcerts(ctx, session.Token, session.User.ID, status)
	if err != nil {
		return nil, fmt.Errorf("admin: concerts: %w", err)
	}
	return concerts, nil
}

func (s *AdminService) SetStatus(ctx context.Context, session models.Session, concertID int64, status models.ConcertStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.Backend.UpdateConcertStatus(ctx, session.Token, session.User.ID, concertID, status); err != nil {
		return fmt.Errorf("admin: set status of %d: %w", concertID, err)
	}
	slog.InfoContext(ctx, "concert reviewed", "concert_id", concertID, "status", status, "admin_id", session.User.ID)
	return nil
}

func (s *AdminService) Delete(ctx context.Context, session models.Session, concertID int64) error {
	if err := s.Backend.DeleteConcert(ctx, session.Token, session.User.ID, concertID); err != nil {
		return fmt.Errorf("admin: delete %d: %w", concertID, err)
	}
	slog.InfoContext(ctx, "concert deleted", "concert_id", concertID, "admin_id", session.User.ID)
	return nil
}

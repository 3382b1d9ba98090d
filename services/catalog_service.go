package services

import (
	"context"
	"fmt"
	"strings"

	"concert-pass/models"
)

// CatalogService serves the read-only concert and booking views.
type CatalogService struct {
	Backend Backend
}

func NewCatalogService(backend Backend) *CatalogService {
	return &CatalogService{Backend: backend}
}

// Dashboard lists approved concerts, narrowed by query when it is not blank.
func (s *CatalogService) Dashboard(ctx context.Context, session models.Session, query string) ([]models.Concert, error) {
	concerts, err := s.Backend.ListConcerts(ctx, session.Token, session.User.ID, models.ConcertApproved)
	if err != nil {
		return nil, fmt.Errorf("catalog: dashboard: %w", err)
	}
	return FilterConcerts(concerts, query), nil
}

// Search asks the backend's search endpoint.
func (s *CatalogService) Search(ctx context.Context, session models.Session, query string) ([]models.Concert, error) {
	concerts, err := s.Backend.SearchConcerts(ctx, session.Token, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: search: %w", err)
	}
	return concerts, nil
}

func (s *CatalogService) Concert(ctx context.Context, session models.Session, concertID int64) (models.Concert, error) {
	concert, err := s.Backend.GetConcert(ctx, session.Token, session.User.ID, concertID)
	if err != nil {
		return models.Concert{}, fmt.Errorf("catalog: concert %d: %w", concertID, err)
	}
	return concert, nil
}

func (s *CatalogService) MyBookings(ctx context.Context, session models.Session) ([]models.Booking, error) {
	bookings, err := s.Backend.ListBookings(ctx, session.Token, session.User.ID)
	if err != nil {
		return nil, fmt.Errorf("catalog: bookings: %w", err)
	}
	return bookings, nil
}

// FilterConcerts keeps the concerts whose name or location contains query, ignoring
// case. A blank query keeps everything.
func FilterConcerts(concerts []models.Concert, query string) []models.Concert {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return concerts
	}

	filtered := make([]models.Concert, 0, len(concerts))
	for _, concert := range concerts {
		if strings.Contains(strings.ToLower(concert.Name), query) ||
			strings.Contains(strings.ToLower(concert.Location), query) {
			filtered = append(filtered, concert)
		}
	}
	return filtered
}

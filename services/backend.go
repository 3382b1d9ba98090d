package services

import (
	"context"

	"concert-pass/models"
)

// Backend is the concert REST backend as seen by the services. *api.Client
// implements it.
type Backend interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	Me(ctx context.Context, token string) (models.User, error)

	ListConcerts(ctx context.Context, token string, userID int64, status models.ConcertStatus) ([]models.Concert, error)
	GetConcert(ctx context.Context, token string, userID, concertID int64) (models.Concert, error)
	SearchConcerts(ctx context.Context, token, query string) ([]models.Concert, error)
	CreateConcert(ctx context.Context, token string, userID int64, req models.CreateConcertRequest) (models.Concert, error)

	CreateBooking(ctx context.Context, token string, userID int64, req models.CreateBookingRequest) (models.Booking, error)
	ListBookings(ctx context.Context, token string, userID int64) ([]models.Booking, error)

	ListUsers(ctx context.Context, token string) ([]models.User, error)
	UpdateConcertStatus(ctx context.Context, token string, userID, concertID int64, status models.ConcertStatus) error
	DeleteConcert(ctx context.Context, token string, userID, concertID int64) error
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"concert-pass/models"
)

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/register",
		route:  "/auth/register",
		body:   req,
	})
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/login",
		route:  "/auth/login",
		body:   req,
		out:    &resp,
	})
	if err != nil {
		return models.LoginResponse{}, err
	}
	if resp.Token == "" {
		return models.LoginResponse{}, fmt.Errorf("api: login: reply carries no token")
	}
	return resp, nil
}

// Me returns the user the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (models.User, error) {
	var user models.User
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/auth/me",
		route:  "/auth/me",
		token:  token,
		out:    &user,
	})
	return user, err
}

func (c *Client) ListConcerts(ctx context.Context, token string, userID int64, status models.ConcertStatus) ([]models.Concert, error) {
	path := fmt.Sprintf("/users/%d/concert", userID)
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}

	var concerts []models.Concert
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   path,
		route:  "/users/:id/concert",
		token:  token,
		out:    &concerts,
	})
	return concerts, err
}

// GetConcert returns ErrNotFound (via errors.Is) when the backend has no such concert.
func (c *Client) GetConcert(ctx context.Context, token string, userID, concertID int64) (models.Concert, error) {
	var concert models.Concert
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/users/%d/concert/%d", userID, concertID),
		route:  "/users/:id/concert/:concertId",
		token:  token,
		out:    &concert,
	})
	return concert, err
}

func (c *Client) SearchConcerts(ctx context.Context, token, query string) ([]models.Concert, error) {
	var concerts []models.Concert
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/concert/search?q=" + url.QueryEscape(query),
		route:  "/concert/search",
		token:  token,
		out:    &concerts,
	})
	return concerts, err
}

// CreateConcert lists a new concert; the backend starts it as pending. The reply
// body is decoded best-effort since only the status code decides the outcome.
func (c *Client) CreateConcert(ctx context.Context, token string, userID int64, req models.CreateConcertRequest) (models.Concert, error) {
	var raw json.RawMessage
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   fmt.Sprintf("/users/%d/concert", userID),
		route:  "/users/:id/concert",
		token:  token,
		body:   req,
		out:    &raw,
	})
	if err != nil {
		return models.Concert{}, err
	}

	var concert models.Concert
	_ = json.Unmarshal(raw, &concert)
	return concert, nil
}

// CreateBooking places a booking. As with CreateConcert, the reply body is optional.
func (c *Client) CreateBooking(ctx context.Context, token string, userID int64, req models.CreateBookingRequest) (models.Booking, error) {
	var raw json.RawMessage
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   fmt.Sprintf("/users/%d/booking", userID),
		route:  "/users/:id/booking",
		token:  token,
		body:   req,
		out:    &raw,
	})
	if err != nil {
		return models.Booking{}, err
	}

	var booking models.Booking
	_ = json.Unmarshal(raw, &booking)
	return booking, nil
}

func (c *Client) ListBookings(ctx context.Context, token string, userID int64) ([]models.Booking, error) {
	var bookings []models.Booking
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/users/%d/booking", userID),
		route:  "/users/:id/booking",
		token:  token,
		out:    &bookings,
	})
	return bookings, err
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/users",
		route:  "/users",
		token:  token,
		out:    &users,
	})
	return users, err
}

func (c *Client) UpdateConcertStatus(ctx context.Context, token string, userID, concertID int64, status models.ConcertStatus) error {
	return c.do(ctx, call{
		method: http.MethodPut,
		path:   fmt.Sprintf("/users/%d/concert/%d", userID, concertID),
		route:  "/users/:id/concert/:concertId",
		token:  token,
		body:   map[string]models.ConcertStatus{"status": status},
	})
}

func (c *Client) DeleteConcert(ctx context.Context, token string, userID, concertID int64) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/users/%d/concert/%d", userID, concertID),
		route:  "/users/:id/concert/:concertId",
		token:  token,
	})
}

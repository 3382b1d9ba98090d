package services

import (
	"context"
	"sync"

	"concert-pass/models"

	"github.com/stretchr/testify/mock"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Register(ctx context.Context, req models.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockBackend) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.LoginResponse), args.Error(1)
}

func (m *MockBackend) Me(ctx context.Context, token string) (models.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockBackend) ListConcerts(ctx context.Context, token string, userID int64, status models.ConcertStatus) ([]models.Concert, error) {
	args := m.Called(ctx, token, userID, status)
	concerts, _ := args.Get(0).([]models.Concert)
	return concerts, args.Error(1)
}

func (m *MockBackend) GetConcert(ctx context.Context, token string, userID, concertID int64) (models.Concert, error) {
	args := m.Called(ctx, token, userID, concertID)
	return args.Get(0).(models.Concert), args.Error(1)
}

func (m *MockBackend) SearchConcerts(ctx context.Context, token, query string) ([]models.Concert, error) {
	args := m.Called(ctx, token, query)
	concerts, _ := args.Get(0).([]models.Concert)
	return concerts, args.Error(1)
}

func (m *MockBackend) CreateConcert(ctx context.Context, token string, userID int64, req models.CreateConcertRequest) (models.Concert, error) {
	args := m.Called(ctx, token, userID, req)
	return args.Get(0).(models.Concert), args.Error(1)
}

func (m *MockBackend) CreateBooking(ctx context.Context, token string, userID int64, req models.CreateBookingRequest) (models.Booking, error) {
	args := m.Called(ctx, token, userID, req)
	return args.Get(0).(models.Booking), args.Error(1)
}

func (m *MockBackend) ListBookings(ctx context.Context, token string, userID int64) ([]models.Booking, error) {
	args := m.Called(ctx, token, userID)
	bookings, _ := args.Get(0).([]models.Booking)
	return bookings, args.Error(1)
}

func (m *MockBackend) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	args := m.Called(ctx, token)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockBackend) UpdateConcertStatus(ctx context.Context, token string, userID, concertID int64, status models.ConcertStatus) error {
	args := m.Called(ctx, token, userID, concertID, status)
	return args.Error(0)
}

func (m *MockBackend) DeleteConcert(ctx context.Context, token string, userID, concertID int64) error {
	args := m.Called(ctx, token, userID, concertID)
	return args.Error(0)
}

// recordingNotifier keeps every notice it is given.
type recordingNotifier struct {
	mu      sync.Mutex
	notices map[int64][]Notice
}

func (n *recordingNotifier) Notify(_ context.Context, userID int64, notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.notices == nil {
		n.notices = make(map[int64][]Notice)
	}
	n.notices[userID] = append(n.notices[userID], notice)
}

func (n *recordingNotifier) For(userID int64) []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notice(nil), n.notices[userID]...)
}

func testSession() models.Session {
	return models.Session{
		ID:    "sess-1",
		Token: "tok",
		User:  models.User{ID: 4, Username: "ayu", FullName: "Ayu Lestari", Email: "ayu@example.com", Phone: "0811"},
	}
}

func sequentialIDs(ids ...string) func() string {
	var mu sync.Mutex
	i := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		id := ids[i%len(ids)]
		i++
		return id
	}
}

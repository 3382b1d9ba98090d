package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"concert-pass/internal/api"
	"concert-pass/security"
	"concert-pass/services"
	"concert-pass/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a tiny stand-in for the concert REST backend.
type fakeBackend struct {
	hits     atomic.Int64
	bookings atomic.Int64
	concerts atomic.Int64

	bookingStatus int
	bookingReply  string
}

var backendUsers = map[string]map[string]any{
	"tok":      {"id": 4, "username": "ayu", "role": "user", "full_name": "Ayu Lestari", "email": "ayu@example.com", "phone": "0811"},
	"admintok": {"id": 1, "username": "root", "role": "admin", "full_name": "Admin", "email": "admin@example.com"},
}

const concertJSON = `{
	"id": 7, "name": "Java Jazz", "location": "Jakarta", "date": "2026-03-01", "time": "19:00",
	"organizer_name": "Dewi", "organizer_phone": "0812", "status": "approved",
	"ticket_categories": [
		{"id": 1, "category_name": "VIP", "base_price": 125000, "selling_price": 150000, "available_quantity": 3},
		{"id": 2, "category_name": "Regular", "base_price": 50000, "selling_price": 60000, "available_quantity": 0}
	]
}`

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		token := map[string]string{"ayu": "tok", "root": "admintok"}[req["usernameOrEmail"]]
		switch {
		case req["usernameOrEmail"] == "silent":
			w.WriteHeader(http.StatusUnauthorized)
		case token == "" || req["password"] != "pw":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
		default:
			json.NewEncoder(w).Encode(map[string]any{"token": token, "user": backendUsers[token]})
		}
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["username"] == "taken" {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"Username already exists"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		user, ok := backendUsers[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(user)
	})
	mux.HandleFunc("GET /api/users/{id}/concert", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[` + concertJSON + `, {"id": 8, "name": "Bali Beats", "location": "Denpasar", "status": "approved", "ticket_categories": []}]`))
	})
	mux.HandleFunc("GET /api/users/{id}/concert/{concertId}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("concertId") != "7" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(concertJSON))
	})
	mux.HandleFunc("POST /api/users/{id}/concert", func(w http.ResponseWriter, r *http.Request) {
		f.concerts.Add(1)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 9, "status": "pending"}`))
	})
	mux.HandleFunc("POST /api/users/{id}/booking", func(w http.ResponseWriter, r *http.Request) {
		f.bookings.Add(1)
		if f.bookingStatus != 0 {
			w.WriteHeader(f.bookingStatus)
			w.Write([]byte(f.bookingReply))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 31, "status": "confirmed"}`))
	})
	mux.HandleFunc("GET /api/users/{id}/booking", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]any{backendUsers["tok"], backendUsers["admintok"]})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		mux.ServeHTTP(w, r)
	})
}

type harness struct {
	t       *testing.T
	e       *echo.Echo
	backend *fakeBackend
	drafts  *services.DraftService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	client := api.NewClient(api.Config{
		BaseURL:   srv.URL + "/api",
		Timeout:   time.Second,
		Transport: http.DefaultTransport,
		Breaker:   utils.BreakerSettings{MaxRequests: 5, FailureRatio: 1, Timeout: time.Minute},
	})

	sessions := services.NewSessionService(services.NewMemorySessionStore(), time.Hour)
	drafts := services.NewDraftService(services.NewMemoryDraftStore(), time.Hour)
	notifier := services.NopNotifier{}

	e := NewServer(Dependencies{
		Sessions: sessions,
		Auth:     services.NewAuthService(client, sessions, drafts),
		Catalog:  services.NewCatalogService(client),
		Bookings: services.NewBookingService(client, drafts, notifier, 30*time.Second, 3*time.Second),
		Listings: services.NewListingService(client, drafts, notifier, 30*time.Second),
		Admin:    services.NewAdminService(client),
		HealthCheck: func(context.Context) error {
			return nil
		},
	})
	return &harness{t: t, e: e, backend: backend, drafts: drafts}
}

type response struct {
	*httptest.ResponseRecorder
}

func (r response) body(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(r.Body.Bytes(), &out), r.Body.String())
	return out
}

func (h *harness) do(method, path string, body any, cookie *http.Cookie) response {
	h.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return response{rec}
}

// login signs in and returns the session cookie.
func (h *harness) login(username string) *http.Cookie {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/auth/login", map[string]string{"usernameOrEmail": username, "password": "pw"}, nil)
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == security.SessionCookie {
			return cookie
		}
	}
	h.t.Fatal("no session cookie")
	return nil
}

func TestGuard_RedirectsWithoutSessionAndSkipsBackend(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{"/dashboard", "/concerts/7", "/my-bookings", "/booking/7", "/sell", "/admin/users"} {
		rec := h.do(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, security.LoginPath, rec.Header().Get("Location"), path)
	}

	rec := h.do(http.MethodPost, "/booking/7/submit", nil, &http.Cookie{Name: security.SessionCookie, Value: "stale"})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	assert.Zero(t, h.backend.hits.Load())
}

func TestGuard_JSONClientsGet401(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"redirect":"/login"}`, rec.Body.String())
}

func TestRoot_RedirectsBySession(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cookie := h.login("ayu")
	rec = h.do(http.MethodGet, "/", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestLogin_SetsCookieAndRedirects(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/auth/login", map[string]string{"usernameOrEmail": "ayu", "password": "pw"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.body(t)
	assert.Equal(t, "/dashboard", body["redirect_to"])
	assert.Equal(t, "Ayu Lestari", body["user"].(map[string]any)["full_name"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, security.SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLogin_Failures(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/auth/login", map[string]string{"usernameOrEmail": "ayu", "password": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", rec.body(t)["error"])

	rec = h.do(http.MethodPost, "/auth/login", map[string]string{"usernameOrEmail": "silent", "password": "pw"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Login failed", rec.body(t)["error"])

	rec = h.do(http.MethodPost, "/auth/login", map[string]string{"usernameOrEmail": "ayu"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/auth/register", map[string]string{"username": "bima", "email": "b@example.com", "password": "pw"}, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/login?registered=true", rec.body(t)["redirect_to"])

	rec = h.do(http.MethodPost, "/auth/register", map[string]string{"username": "taken"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username already exists", rec.body(t)["error"])
}

func TestLogout_EndsSessionAndDrafts(t *testing.T) {
	h := newHarness(t)
	cookie := h.login("ayu")

	rec := h.do(http.MethodPost, "/sell", nil, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = h.do(http.MethodPost, "/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/login", rec.body(t)["redirect_to"])

	rec = h.do(http.MethodGet, "/sell", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	err := h.drafts.Load(context.Background(), services.ListingDraftKey(cookie.Value), &struct{}{})
	assert.True(t, errors.Is(err, services.ErrDraftNotFound))
}

func TestMe_ReturnsRefreshedUser(t *testing.T) {
	h := newHarness(t)
	cookie := h.login("root")

	rec := h.do(http.MethodGet, "/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.body(t)
	assert.Equal(t, true, body["is_admin"])
	assert.Equal(t, "root", body["user"].(map[string]any)["username"])
}

func TestDashboard_FiltersByQuery(t *testing.T) {
	h := newHarness(t)
	cookie := h.login("ayu")

	rec := h.do(http.MethodGet, "/dashboard", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.body(t)
	assert.Len(t, body["concerts"], 2)
	hero := body["hero"].(map[string]any)
	assert.Equal(t, "Java Jazz", hero["name"])
	assert.Equal(t, float64(60000), hero["min_price"])
	assert.Equal(t, "/concerts/7", hero["url"])

	rec = h.do(http.MethodGet, "/dashboard?q=DENPASAR", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.body(t)
	require.Len(t, body["concerts"], 1)
	assert.Equal(t, "Bali Beats", body["hero"].(map[string]any)["name"])

	rec = h.do(http.MethodGet, "/dashboard?q=opera", nil, cookie)
	body = rec.body(t)
	assert.Empty(t, body["concerts"])
	assert.Nil(t, body["hero"])
}

func TestConcertDetail(t *testing.T) {
	h := newHarness(t)
	cookie := h.login("ayu")

	rec := h.do(http.MethodGet, "/concerts/7", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	categories := rec.body(t)["categories"].([]any)
	require.Len(t, categories, 2)

	vip := categories[0].(map[string]any)
	assert.Equal(t, true, vip["purchasable"])
	assert.Equal(t, "/booking/7?category=1", vip["buy_url"])

	regular := categories[1].(map[string]any)
	assert.Equal(t, false, regular["purchasable"])
	assert.NotContains(t, regular, "buy_url")
}

func TestConcertDetail_NotFound(t *testing.T) {
	h := newHarness(t)
	cookie := h.login("ayu")

	for _, path := range []string{"/concerts/99", "/concerts/abc"} {
		rec := h.do(http.MethodGet, path, nil, cookie)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.JSONEq(t, `{"not_found":true,"back_to":"/dashboard"}`, rec.Body.String(), path)
	}
}

func TestMyBookings_Empty(t *testing.T) {
	h := newHarness(t)
	cookie := h.login("ayu")

	rec := h.do(http.MethodGet, "/my-bookings", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"bookings":[],"empty":true,"browse_url":"/dashboard"}`, rec.Body.String())
}

func (h *harness) fillBooking(cookie *http.Cookie) {
	h.t.Helper()
	for _, action := range []map[string]any{
		{"type": "set_quantity", "quantity": 2},
		{"type": "next"},
		{"type": "set_attendee", "index": 0, "field": "name", "value": "Ayu"},
		{"type": "set_attendee", "index": 0, "field": "phone", "value": "0811"},
		{"type": "set_attendee", "index": 1, "field": "name", "value": "Bima"},
		{"type": "set_attendee", "index": 1, "field": "phone", "value": "0812"},
		{"type": "next"},
	} {
		rec := h.do(http.MethodPost, "/booking/7/actions", action, cookie)
		require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())
	}
}

func TestBooking_FullFlow(t *testing.T) {
	h := newHarness(t)
	cookie := h.login("ayu")

	rec := h.do(http.MethodPost, "/booking/7?category=1", nil, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	view := rec.body(t)
	assert.Equal(t, float64(1), view["step"])
	assert.Equal(t, float64(150000), view["total"])
	assert.Equal(t, true, view["next_enabled"])
	assert.Equal(t, false, view["back_enabled"])
	assert.Equal(t, "bank_transfer", view["payment_method"])

	h.fillBooking(cookie)

	rec = h.do(http.MethodGet, "/booking/7", nil, cookie)
	view = rec.body(t)
	assert.Equal(t, float64(3), view["step"])
	assert.Equal(t, float64(300000), view["total"])
	assert.Equal(t, true, view["submit_enabled"])

	rec = h.do(http.MethodPost, "/booking/7/submit", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view = rec.body(t)
	assert.Equal(t, "/my-bookings", view["redirect_to"])
	assert.Equal(t, float64(3000), view["redirect_after_ms"])
	assert.Equal(t, "3; url=/my-bookings", rec.Header().Get("Refresh"))

	submission := view["submission"].(map[string]any)
	assert.Equal(t, "succeeded", submission["status"])
	assert.Equal(t, "PAYMENT SUCCESS!", submission["message"])
	assert.Equal(t, false, view["submit_enabled"])
	assert.Equal(t, int64(1), h.backend.bookings.Load())

	rec = h.do(http.MethodGet, "/booking/7", nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "/concerts/7", rec.body(t)["start_url"])
}

func TestBooking_NextBlockedUntilAttendeesComplete(t *testing.T) {
	h := newHarness(t)
	cookie := h.login("ayu")
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/booking/7?category=1", nil, cookie).Code)

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/booking/7/actions", map[string]any{"type": "next"}, cookie).Code)

	rec := h.do(http.MethodPost, "/booking/7/actions", map[string]any{"type": "next"}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	view := rec.body(t)
	assert.Equal(t, float64(2), view["step"])
	assert.Equal(t, false, view["next_enabled"])
	assert.Equal(t, true, view["back_enabled"])
}

func TestBooking_RejectedSubmissionKeepsDraft(t *testing.T) {
	h := newHarness(t)
	h.backend.bookingStatus = http.StatusBadRequest
	h.backend.bookingReply = `{"message":"Not enough tickets"}`
	cookie := h.login("ayu")

	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/booking/7?category=1", nil, cookie).Code)
	h.fillBooking(cookie)

	rec := h.do(http.MethodPost, "/booking/7/submit", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	view := rec.body(t)
	assert.NotContains(t, view, "redirect_to")
	assert.Empty(t, rec.Header().Get("Refresh"))

	submission := view["submission"].(map[string]any)
	assert.Equal(t, "failed", submission["status"])
	assert.Equal(t, "Booking failed: Not enough tickets", submission["message"])

	rec = h.do(http.MethodGet, "/booking/7", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	view = rec.body(t)
	assert.Equal(t, float64(3), view["step"])
	assert.Equal(t, true, view["submit_enabled"])
}

func TestBooking_Errors(t *testing.T) {
	h := newHarness(t)
	cookie := h.login("ayu")

	rec := h.do(http.MethodPost, "/booking/7?category=2", nil, cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.do(http.MethodPost, "/booking/7", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodPost, "/booking/99?category=1", nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, true, rec.body(t)["not_found"])

	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/booking/7?category=1", nil, cookie).Code)

	rec = h.do(http.MethodPost, "/booking/7/actions", map[string]any{"type": "set_payment_method", "payment_method": "cash"}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.body(t), "draft")

	rec = h.do(http.MethodPost, "/booking/7/submit", nil, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, h.backend.bookings.Load())
}

func TestListing_FullFlow(t *testing.T) {
	h := newHarness(t)
	cookie := h.login("ayu")

	rec := h.do(http.MethodPost, "/sell", nil, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	view := rec.body(t)
	organizer := view["organizer"].(map[string]any)
	assert.Equal(t, "Ayu Lestari", organizer["full_name"])
	assert.Equal(t, "ayu@example.com", organizer["email"])
	assert.Equal(t, false, view["can_remove_category"])

	for _, action := range []map[string]any{
		{"type": "next"},
		{"type": "set_concert", "field": "name", "value": "Java Jazz"},
		{"type": "set_concert", "field": "location", "value": "Jakarta"},
		{"type": "set_concert", "field": "date", "value": "2026-03-01"},
		{"type": "set_concert", "field": "time", "value": "19:00"},
		{"type": "next"},
		{"type": "update_category", "index": 0, "field": "category_name", "value": "VIP"},
		{"type": "update_category", "index": 0, "field": "base_price", "value": "100000"},
		{"type": "update_category", "index": 0, "field": "available_quantity", "value": "50"},
	} {
		rec = h.do(http.MethodPost, "/sell/actions", action, cookie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	view = rec.body(t)
	assert.Equal(t, float64(3), view["step"])
	category := view["categories"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(120000), category["selling_price_preview"])
	assert.Equal(t, true, view["submit_enabled"])

	rec = h.do(http.MethodPost, "/sell/submit", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view = rec.body(t)
	assert.Equal(t, "/dashboard", view["redirect_to"])
	assert.Equal(t, "Concert created successfully! Waiting for admin approval.", view["submission"].(map[string]any)["message"])
	assert.Equal(t, false, view["submit_enabled"])
	assert.Equal(t, int64(1), h.backend.concerts.Load())
}

func TestListing_GetWithoutDraft(t *testing.T) {
	h := newHarness(t)
	cookie := h.login("ayu")

	rec := h.do(http.MethodGet, "/sell", nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "/sell", rec.body(t)["start_url"])
}

func TestAdmin_RequiresAdminRole(t *testing.T) {
	h := newHarness(t)

	cookie := h.login("ayu")
	before := h.backend.hits.Load()
	rec := h.do(http.MethodGet, "/admin/users", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Access denied"}`, rec.Body.String())
	assert.Equal(t, before, h.backend.hits.Load())

	admin := h.login("root")
	rec = h.do(http.MethodGet, "/admin/users", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.body(t)["users"], 2)

	rec = h.do(http.MethodPut, "/admin/concerts/7/status", map[string]string{"status": "archived"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRequestIDIsUUID(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/healthz", nil, nil)
	id := rec.Header().Get(echo.HeaderXRequestID)
	_, err := uuid.Parse(id)
	assert.NoError(t, err, id)

	other := h.do(http.MethodGet, "/healthz", nil, nil).Header().Get(echo.HeaderXRequestID)
	assert.NotEqual(t, id, other)
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"concert-pass/internal/api"
	"concert-pass/models"
	"concert-pass/security"
	"concert-pass/services"

	"github.com/labstack/echo/v5"
)

const (
	loginFailed        = "Login failed"
	registrationFailed = "Registration failed"

	registeredPath = "/login?registered=true"
)

type AuthHandler struct {
	auth         *services.AuthService
	sessions     *services.SessionService
	cookieSecure bool
}

func NewAuthHandler(auth *services.AuthService, sessions *services.SessionService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		sessions:     sessions,
		cookieSecure: cookieSecure,
	}
}

// Login signs in and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request")
	}
	if req.UsernameOrEmail == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, "Username and password are required")
	}

	session, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		return authFailure(c, err, loginFailed)
	}

	h.setCookie(c, session.ID, session.ExpiresAt)
	return c.JSON(http.StatusOK, map[string]any{
		"user":        session.User,
		"redirect_to": dashboardPath,
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request")
	}

	if err := h.auth.Register(c.Request().Context(), req); err != nil {
		return authFailure(c, err, registrationFailed)
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"redirect_to": registeredPath,
	})
}

// Logout ends the session, if any, and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	var id string
	if cookie, err := c.Cookie(security.SessionCookie); err == nil {
		id = cookie.Value
	}

	if err := h.auth.Logout(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	h.clearCookie(c)
	return c.JSON(http.StatusOK, map[string]string{
		"redirect_to": security.LoginPath,
	})
}

// Me returns the signed-in user, refreshed from the backend when it answers.
func (h *AuthHandler) Me(c echo.Context) error {
	session, _ := security.SessionFrom(c)

	refreshed, err := h.auth.Refresh(c.Request().Context(), session)
	switch {
	case errors.Is(err, services.ErrNoSession):
		h.clearCookie(c)
		return security.RedirectToLogin(c)
	case err != nil:
		// Backend trouble; the cached user is still good enough to render.
		refreshed = session
	}

	return c.JSON(http.StatusOK, map[string]any{
		"user":     refreshed.User,
		"is_admin": refreshed.User.IsAdmin(),
	})
}

// Root sends signed-in browsers to the dashboard and everyone else to login.
func (h *AuthHandler) Root(c echo.Context) error {
	if cookie, err := c.Cookie(security.SessionCookie); err == nil {
		if _, err := h.sessions.Current(c.Request().Context(), cookie.Value); err == nil {
			return c.Redirect(http.StatusSeeOther, dashboardPath)
		}
	}
	return c.Redirect(http.StatusSeeOther, security.LoginPath)
}

func (h *AuthHandler) setCookie(c echo.Context, value string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     security.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     security.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// authFailure shows the backend's own message for a rejected login or registration.
func authFailure(c echo.Context, err error, fallback string) error {
	if errors.Is(err, api.ErrUnavailable) {
		return jsonError(c, http.StatusServiceUnavailable, fallback)
	}

	code := http.StatusUnauthorized
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		code = apiErr.StatusCode
	}

	message := api.MessageOf(err)
	if message == "" {
		message = fallback
	}
	return jsonError(c, code, message)
}

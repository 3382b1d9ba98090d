package security

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"concert-pass/models"
	"concert-pass/monitoring"
	"concert-pass/services"

	"github.com/labstack/echo/v5"
)

const (
	// SessionCookie carries the session id.
	SessionCookie = "cp_session"

	LoginPath = "/login"

	sessionContextKey = "session"
)

var ErrAuthRequired = errors.New("security: authentication required")

type SessionReader interface {
	Current(ctx context.Context, id string) (models.Session, error)
}

// RequireSession lets a request through only when it carries a live session. The
// session is read once per request and stored on the echo context; without one the
// wrapped handler never runs.
func RequireSession(sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = cookie.Value
			}

			session, err := sessions.Current(c.Request().Context(), id)
			if errors.Is(err, services.ErrNoSession) {
				monitoring.TrackGuardRejection("no_session")
				return RedirectToLogin(c)
			}
			if err != nil {
				slog.ErrorContext(c.Request().Context(), "load session", "error", err)
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"error": "Session store unavailable",
				})
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// RequireRole must run after RequireSession.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := SessionFrom(c)
			if !ok {
				monitoring.TrackGuardRejection("no_session")
				return RedirectToLogin(c)
			}
			if session.User.Role != role {
				monitoring.TrackGuardRejection("forbidden")
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "Access denied",
				})
			}
			return next(c)
		}
	}
}

// SessionFrom returns the session RequireSession stored on c.
func SessionFrom(c echo.Context) (models.Session, bool) {
	session, ok := c.Get(sessionContextKey).(models.Session)
	return session, ok
}

// RedirectToLogin answers with 303 to the login page, or with 401 and the target in
// the body when the caller asked for JSON.
func RedirectToLogin(c echo.Context) error {
	if WantsJSON(c.Request()) {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"redirect": LoginPath,
		})
	}
	return c.Redirect(http.StatusSeeOther, LoginPath)
}

func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

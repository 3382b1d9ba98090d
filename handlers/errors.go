package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"concert-pass/internal/api"
	"concert-pass/internal/wizard"
	"concert-pass/services"

	"github.com/labstack/echo/v5"
)

const dashboardPath = services.DashboardPath

type errorResponse struct {
	Error string `json:"error"`
}

func jsonError(c echo.Context, code int, message string) error {
	return c.JSON(code, errorResponse{Error: message})
}

// notFound renders the not-found view with a way back to the dashboard.
func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]any{
		"not_found": true,
		"back_to":   dashboardPath,
	})
}

// respondError maps service and backend errors to a status and a message. It is the
// fallback for errors a handler does not treat itself.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, api.ErrNotFound):
		return notFound(c)
	case errors.Is(err, services.ErrDraftNotFound):
		return jsonError(c, http.StatusNotFound, "Nothing in progress")
	case errors.Is(err, wizard.ErrInvalidAction):
		return jsonError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, wizard.ErrCategoryUnavailable):
		return jsonError(c, http.StatusConflict, "This ticket category is not available")
	case errors.Is(err, services.ErrSubmitInFlight):
		return jsonError(c, http.StatusConflict, "Submission already in progress")
	case errors.Is(err, services.ErrNotSubmittable):
		return jsonError(c, http.StatusUnprocessableEntity, "Please complete every step first")
	case errors.Is(err, services.ErrDraftAbandoned):
		return jsonError(c, http.StatusGone, "This form was closed before the request finished")
	case errors.Is(err, services.ErrInvalidStatus):
		return jsonError(c, http.StatusBadRequest, "Invalid status")
	case errors.Is(err, api.ErrUnavailable):
		return jsonError(c, http.StatusServiceUnavailable, "Service temporarily unavailable")
	}

	if msg := api.MessageOf(err); msg != "" {
		return jsonError(c, http.StatusBadGateway, msg)
	}
	slog.ErrorContext(c.Request().Context(), "request failed", "path", c.Path(), "error", err)
	return jsonError(c, http.StatusInternalServerError, "Something went wrong")
}

func paramID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.PathParam(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

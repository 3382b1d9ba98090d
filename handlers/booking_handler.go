package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"concert-pass/internal/wizard"
	"concert-pass/security"
	"concert-pass/services"

	"github.com/labstack/echo/v5"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Start opens the booking wizard for ?category= of the concert.
func (h *BookingHandler) Start(c echo.Context) error {
	session, _ := security.SessionFrom(c)
	concertID, ok := paramID(c, "concertId")
	if !ok {
		return notFound(c)
	}
	categoryID, err := strconv.ParseInt(c.QueryParam("category"), 10, 64)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "A ticket category is required")
	}

	state, err := h.bookings.Start(c.Request().Context(), session, concertID, categoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, bookingView(state))
}

func (h *BookingHandler) Get(c echo.Context) error {
	session, _ := security.SessionFrom(c)
	concertID, ok := paramID(c, "concertId")
	if !ok {
		return notFound(c)
	}

	state, err := h.bookings.Get(c.Request().Context(), session, concertID)
	if errors.Is(err, services.ErrDraftNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error":     "No booking in progress",
			"start_url": fmt.Sprintf("/concerts/%d", concertID),
		})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, bookingView(state))
}

// Action applies one wizard action. A Next that the current step does not allow
// comes back as the unchanged view, not as an error.
func (h *BookingHandler) Action(c echo.Context) error {
	session, _ := security.SessionFrom(c)
	concertID, ok := paramID(c, "concertId")
	if !ok {
		return notFound(c)
	}

	var action wizard.Action
	if err := c.Bind(&action); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid action")
	}

	state, err := h.bookings.Apply(c.Request().Context(), session, concertID, action)
	if errors.Is(err, wizard.ErrInvalidAction) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": err.Error(),
			"draft": bookingView(state),
		})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, bookingView(state))
}

// Submit places the booking. A rejected booking is still a 200: the view carries
// the failure message and the draft stays editable for another try.
func (h *BookingHandler) Submit(c echo.Context) error {
	session, _ := security.SessionFrom(c)
	concertID, ok := paramID(c, "concertId")
	if !ok {
		return notFound(c)
	}

	state, outcome, err := h.bookings.Submit(c.Request().Context(), session, concertID)
	if err != nil {
		return respondError(c, err)
	}

	view := bookingView(state)
	if outcome.Succeeded {
		view.RedirectTo = outcome.RedirectTo
		view.RedirectAfterMs = outcome.RedirectAfter.Milliseconds()
		c.Response().Header().Set("Refresh", refreshHeader(outcome.RedirectAfter, outcome.RedirectTo))
	}
	return c.JSON(http.StatusOK, view)
}

func refreshHeader(after time.Duration, to string) string {
	return fmt.Sprintf("%d; url=%s", int(after.Seconds()), to)
}

package handlers

import (
	"errors"
	"net/http"

	"concert-pass/internal/wizard"
	"concert-pass/security"
	"concert-pass/services"

	"github.com/labstack/echo/v5"
)

const sellPath = "/sell"

type ListingHandler struct {
	listings *services.ListingService
}

func NewListingHandler(listings *services.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

func (h *ListingHandler) Start(c echo.Context) error {
	session, _ := security.SessionFrom(c)

	state, err := h.listings.Start(c.Request().Context(), session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, listingView(state))
}

func (h *ListingHandler) Get(c echo.Context) error {
	session, _ := security.SessionFrom(c)

	state, err := h.listings.Get(c.Request().Context(), session)
	if errors.Is(err, services.ErrDraftNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error":     "No listing in progress",
			"start_url": sellPath,
		})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, listingView(state))
}

func (h *ListingHandler) Action(c echo.Context) error {
	session, _ := security.SessionFrom(c)

	var action wizard.Action
	if err := c.Bind(&action); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid action")
	}

	state, err := h.listings.Apply(c.Request().Context(), session, action)
	if errors.Is(err, wizard.ErrInvalidAction) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": err.Error(),
			"draft": listingView(state),
		})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, listingView(state))
}

func (h *ListingHandler) Submit(c echo.Context) error {
	session, _ := security.SessionFrom(c)

	state, outcome, err := h.listings.Submit(c.Request().Context(), session)
	if err != nil {
		return respondError(c, err)
	}

	view := listingView(state)
	if outcome.Succeeded {
		view.RedirectTo = outcome.RedirectTo
	}
	return c.JSON(http.StatusOK, view)
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"concert-pass/internal/api"
	"concert-pass/models"
	"concert-pass/security"
	"concert-pass/services"

	"github.com/labstack/echo/v5"
)

type CatalogHandler struct {
	catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Dashboard lists approved concerts, filtered by ?q= on name or location.
func (h *CatalogHandler) Dashboard(c echo.Context) error {
	session, _ := security.SessionFrom(c)
	query := strings.TrimSpace(c.QueryParam("q"))

	concerts, err := h.catalog.Dashboard(c.Request().Context(), session, query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dashboardView(query, concerts))
}

// Search uses the backend's search endpoint instead of filtering locally.
func (h *CatalogHandler) Search(c echo.Context) error {
	session, _ := security.SessionFrom(c)
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return jsonError(c, http.StatusBadRequest, "Search query is required")
	}

	concerts, err := h.catalog.Search(c.Request().Context(), session, query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dashboardView(query, concerts))
}

func (h *CatalogHandler) Concert(c echo.Context) error {
	session, _ := security.SessionFrom(c)
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}

	concert, err := h.catalog.Concert(c.Request().Context(), session, id)
	if errors.Is(err, api.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, concertView(concert))
}

func (h *CatalogHandler) MyBookings(c echo.Context) error {
	session, _ := security.SessionFrom(c)

	bookings, err := h.catalog.MyBookings(c.Request().Context(), session)
	if err != nil {
		return respondError(c, err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return c.JSON(http.StatusOK, BookingsView{
		Bookings:  bookings,
		Empty:     len(bookings) == 0,
		BrowseURL: dashboardPath,
	})
}

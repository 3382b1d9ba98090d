package handlers

import (
	"net/http"

	"concert-pass/models"
	"concert-pass/security"
	"concert-pass/services"

	"github.com/labstack/echo/v5"
)

type AdminHandler struct {
	admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) Users(c echo.Context) error {
	session, _ := security.SessionFrom(c)

	users, err := h.admin.Users(c.Request().Context(), session)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"users": users})
}

// Concerts lists concerts for review; ?status= defaults to pending.
func (h *AdminHandler) Concerts(c echo.Context) error {
	session, _ := security.SessionFrom(c)
	status := models.ConcertStatus(c.QueryParam("status"))

	concerts, err := h.admin.Concerts(c.Request().Context(), session, status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"concerts": concerts})
}

func (h *AdminHandler) SetStatus(c echo.Context) error {
	session, _ := security.SessionFrom(c)
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}

	var req struct {
		Status models.ConcertStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request")
	}

	if err := h.admin.SetStatus(c.Request().Context(), session, id, req.Status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"id": id, "status": req.Status})
}

func (h *AdminHandler) Delete(c echo.Context) error {
	session, _ := security.SessionFrom(c)
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}

	if err := h.admin.Delete(c.Request().Context(), session, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

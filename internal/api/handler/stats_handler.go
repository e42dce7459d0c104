package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tracknest/issuetracker/internal/core/ports"
)

// StatsHandler exposes the read-only aggregate views.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

type userCountResponse struct {
	Count int `json:"count"`
}

// ForUser handles GET /v1/stats/users/:id.
func (h *StatsHandler) ForUser(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	stats, err := h.service.StatsForUser(c.Request().Context(), ident, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// TagsForIssue handles GET /v1/stats/issues/:id/tags.
func (h *StatsHandler) TagsForIssue(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	issueID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	stats, err := h.service.TagStatsForIssue(c.Request().Context(), ident, issueID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// UserCount handles GET /v1/stats/users/count.
func (h *StatsHandler) UserCount(c echo.Context) error {
	if _, err := identity(c); err != nil {
		return err
	}

	count, err := h.service.RegisteredUserCount(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userCountResponse{Count: count})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mindful/internal/model"
	"github.com/iliyamo/mindful/internal/repository"
)

// GetStats handles GET /api/stats.
func (h *TrackerHandler) GetStats(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	counts, err := h.Stats.Counts(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return userNotFound(c)
		}
		return serverError(c, err, "count records")
	}
	return c.JSON(http.StatusOK, model.NewStats(counts, h.now()))
}

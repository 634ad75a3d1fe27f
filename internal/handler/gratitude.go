package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mindful/internal/repository"
)

type gratitudeReq struct {
	Text string `json:"text" validate:"required,max=1000"`
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

func (h *TrackerHandler) SaveGratitude(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req gratitudeReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	g, err := h.Gratitudes.Create(ctx, uid, req.Text, req.Date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return userNotFound(c)
		}
		return serverError(c, err, "save gratitude")
	}
	return c.JSON(http.StatusOK, g)
}

// ListGratitudes handles GET /api/gratitudes with an optional ?date= filter.
func (h *TrackerHandler) ListGratitudes(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	date := c.QueryParam("date")
	if date != "" {
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be a date in YYYY-MM-DD format"})
		}
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	list, err := h.Gratitudes.List(ctx, uid, date)
	if err != nil {
		return serverError(c, err, "list gratitudes")
	}
	return c.JSON(http.StatusOK, list)
}

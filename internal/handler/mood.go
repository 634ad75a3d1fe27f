package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mindful/internal/calendar"
	"github.com/iliyamo/mindful/internal/model"
	"github.com/iliyamo/mindful/internal/repository"
)

type moodReq struct {
	Emoji string `json:"emoji" validate:"required,max=16"`
	Mood  string `json:"mood" validate:"required,max=50"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
}

type moodResp struct {
	model.Mood
	Tip string `json:"tip"`
}

// SaveMood handles POST /api/moods.  Saving twice for the same date keeps
// one row with the latest emoji and mood.
func (h *TrackerHandler) SaveMood(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req moodReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	m, err := h.Moods.Upsert(ctx, uid, req.Emoji, req.Mood, req.Date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return userNotFound(c)
		}
		return serverError(c, err, "save mood")
	}
	return c.JSON(http.StatusOK, moodResp{Mood: m, Tip: calendar.MoodTip(m.Mood)})
}

// ListMoods handles GET /api/moods, newest date first.
func (h *TrackerHandler) ListMoods(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	moods, err := h.Moods.ListByUser(ctx, uid)
	if err != nil {
		return serverError(c, err, "list moods")
	}
	return c.JSON(http.StatusOK, moods)
}

// MoodCalendar handles GET /api/moods/calendar?month=YYYY-MM.  Without a
// month the current one is returned.
func (h *TrackerHandler) MoodCalendar(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	now := h.now().UTC()
	first, err := calendar.ParseMonth(c.QueryParam("month"), now)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	from, to := calendar.Bounds(first)
	moods, err := h.Moods.ListBetween(ctx, uid, from, to)
	if err != nil {
		return serverError(c, err, "list month moods")
	}
	return c.JSON(http.StatusOK, calendar.Build(first, moods, now))
}

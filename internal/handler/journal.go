package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mindful/internal/queue"
	"github.com/iliyamo/mindful/internal/repository"
)

const defaultCategory = "general"

type journalReq struct {
	Content  string `json:"content" validate:"required,max=10000"`
	Category string `json:"category" validate:"omitempty,max=50"`
	IsPublic bool   `json:"isPublic"`
}

// CreateJournal handles POST /api/journal.  Public entries are announced on
// the journal.shared queue.
func (h *TrackerHandler) CreateJournal(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req journalReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	category := strings.ToLower(strings.TrimSpace(req.Category))
	if category == "" {
		category = defaultCategory
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	e, err := h.Journal.Create(ctx, uid, req.Content, category, req.IsPublic)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return userNotFound(c)
		}
		return serverError(c, err, "save journal entry")
	}
	if e.IsPublic {
		h.events().JournalShared(ctx, queue.JournalSharedEvent{
			EntryID:   e.ID,
			UserID:    e.UserID,
			UserName:  e.UserName,
			Category:  e.Category,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, e)
}

// ListJournal handles GET /api/journal: the caller's own entries.
func (h *TrackerHandler) ListJournal(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	entries, err := h.Journal.ListByUser(ctx, uid)
	if err != nil {
		return serverError(c, err, "list journal entries")
	}
	return c.JSON(http.StatusOK, entries)
}

// DeleteJournal handles DELETE /api/journal/:id.  Another user's entry is
// reported exactly like a missing one.
func (h *TrackerHandler) DeleteJournal(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Journal entry not found"})
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	if err := h.Journal.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Journal entry not found"})
		}
		return serverError(c, err, "delete journal entry")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Journal entry deleted"})
}

// PublicJournal handles GET /api/journal/public?category=.
func (h *TrackerHandler) PublicJournal(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	category := strings.ToLower(strings.TrimSpace(c.QueryParam("category")))
	entries, err := h.Journal.ListPublic(ctx, category)
	if err != nil {
		return serverError(c, err, "list public journal entries")
	}
	return c.JSON(http.StatusOK, entries)
}

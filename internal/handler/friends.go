package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mindful/internal/queue"
	"github.com/iliyamo/mindful/internal/repository"
)

type friendReq struct {
	FriendID uint64 `json:"friendId" validate:"required"`
}

// SendFriendRequest handles POST /api/friends/request.
func (h *TrackerHandler) SendFriendRequest(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req friendReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	if req.FriendID == uid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cannot send a friend request to yourself"})
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	fr, err := h.Friends.CreateRequest(ctx, uid, req.FriendID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrFriendRequestExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Friend request already sent"})
		case errors.Is(err, repository.ErrNotFound):
			return userNotFound(c)
		}
		return serverError(c, err, "send friend request")
	}
	h.events().FriendRequested(ctx, queue.FriendRequestedEvent{
		RequestID:   fr.ID,
		RequesterID: fr.RequesterID,
		RequestedID: fr.RequestedID,
		CreatedAt:   fr.CreatedAt.UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, fr)
}

// ListFriendRequests handles GET /api/friends/requests: the ids the caller
// has already asked.
func (h *TrackerHandler) ListFriendRequests(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	ids, err := h.Friends.RequestedIDs(ctx, uid)
	if err != nil {
		return serverError(c, err, "list friend requests")
	}
	return c.JSON(http.StatusOK, ids)
}

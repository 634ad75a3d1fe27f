package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mindful/internal/model"
	"github.com/iliyamo/mindful/internal/repository"
)

type profileReq struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Age    *int    `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender *string `json:"gender" validate:"omitempty,max=50"`
	Bio    *string `json:"bio" validate:"omitempty,max=1000"`
}

// GetProfile handles GET /api/profile.  A valid token whose user row is
// gone gets 404.
func (h *TrackerHandler) GetProfile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	u, err := h.Users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return userNotFound(c)
		}
		return serverError(c, err, "fetch profile")
	}
	return c.JSON(http.StatusOK, u)
}

// UpdateProfile handles PUT /api/profile and marks the profile complete.
func (h *TrackerHandler) UpdateProfile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req profileReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	u, err := h.Users.UpdateProfile(ctx, uid, model.ProfileUpdate{
		Name:   req.Name,
		Age:    req.Age,
		Gender: req.Gender,
		Bio:    req.Bio,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return userNotFound(c)
		}
		return serverError(c, err, "update profile")
	}
	return c.JSON(http.StatusOK, u)
}

// ListUsers handles GET /api/users: other members with a completed profile.
func (h *TrackerHandler) ListUsers(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	members, err := h.Users.ListMembers(ctx, uid)
	if err != nil {
		return serverError(c, err, "list users")
	}
	return c.JSON(http.StatusOK, members)
}

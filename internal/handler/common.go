package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mindful/internal/logging"
	"github.com/iliyamo/mindful/internal/middleware"
	"github.com/iliyamo/mindful/internal/validation"
)

// dbTimeout bounds every store call made on behalf of a request.
const dbTimeout = 5 * time.Second

var errNoIdentity = errors.New("no verified user id in context")

// getUserID returns the id the Auth Gate verified for this request.
func getUserID(c echo.Context) (uint64, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, errNoIdentity
	}
	return id, nil
}

func dbContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// bindValid binds the JSON body into dst and runs its validate tags.  On
// failure it has already written the 400 response and returns false.
func bindValid(c echo.Context, dst any) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := validation.Struct(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return true, nil
}

// serverError logs err with the request's logger and answers a generic 500.
// The client never sees store details.
func serverError(c echo.Context, err error, msg string) error {
	logging.Ctx(c.Request().Context()).Error().Err(err).Msg(msg)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access token required"})
}

func userNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
}

// HTTPErrorHandler renders errors that escape handlers (unknown routes,
// wrong methods, panics caught by Recover) as {"error": ...} JSON.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "Server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok && code < 500 {
			msg = s
		} else if code < 500 {
			msg = http.StatusText(code)
		}
	}
	if code >= 500 {
		logging.Ctx(c.Request().Context()).Error().Err(err).Msg("unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, echo.Map{"error": msg})
	}
	if err != nil {
		logging.Ctx(c.Request().Context()).Warn().Err(err).Msg("write error response")
	}
}

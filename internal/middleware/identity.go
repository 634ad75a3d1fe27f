package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// UserIDKey is the echo context key under which JWTAuth stores the
// verified user id (uint64).
const UserIDKey = "user_id"

// UserID returns the verified user id set by JWTAuth.  ok is false on
// routes that are not behind the gate.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(UserIDKey).(uint64)
	return id, ok && id != 0
}

// userKey renders the caller for cache and rate-limit keys; "anon" before
// authentication.
func userKey(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}

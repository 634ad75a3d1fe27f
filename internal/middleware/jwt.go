package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mindful/internal/logging"
	"github.com/iliyamo/mindful/internal/metrics"
	"github.com/iliyamo/mindful/internal/utils"
)

// JWTAuth returns the Auth Gate for protected routes.  A request without a
// bearer token is answered 401, a request whose token fails verification is
// answered 403, and in neither case is the wrapped handler invoked.  On
// success the verified user id is stored under UserIDKey and attached to the
// request logger.
//
// Verification is stateless: the user store is not consulted, so a token
// for a deleted account still passes and the handler decides what to do.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, err := authenticate(secret, c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				if errors.Is(err, utils.ErrMissingToken) {
					metrics.AuthGateDecisions.WithLabelValues("missing").Inc()
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access token required"})
				}
				metrics.AuthGateDecisions.WithLabelValues("invalid").Inc()
				logging.Ctx(c.Request().Context()).Debug().Msg("rejected invalid token")
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Invalid token"})
			}
			metrics.AuthGateDecisions.WithLabelValues("ok").Inc()

			c.Set(UserIDKey, uid)
			ctx := c.Request().Context()
			l := logging.Ctx(ctx).With().Uint64("user_id", uid).Logger()
			c.SetRequest(c.Request().WithContext(logging.WithContext(ctx, l)))
			return next(c)
		}
	}
}

func authenticate(secret, header string) (uint64, error) {
	raw, err := utils.TokenFromHeader(header)
	if err != nil {
		return 0, err
	}
	return utils.VerifyToken(secret, raw)
}

package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mindful/internal/logging"
	"github.com/iliyamo/mindful/internal/metrics"
)

// RequestLogger tags each request with an X-Request-ID (kept when the
// client sends one), installs a child logger carrying it in the request
// context, and writes one access line when the handler returns.  It also
// records the request in the API metrics.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			l := logging.Logger().With().Str("request_id", rid).Logger()
			c.SetRequest(req.WithContext(logging.WithContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler write the response so the status is final
				c.Error(err)
			}
			elapsed := time.Since(start)

			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.RecordAPIRequest(req.Method, route, status, elapsed)

			ev := logging.Ctx(c.Request().Context()).Info()
			if status >= 500 {
				ev = logging.Ctx(c.Request().Context()).Error()
			}
			ev.Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("route", route).
				Int("status", status).
				Dur("latency", elapsed).
				Str("ip", c.RealIP()).
				Msg("request")
			return nil
		}
	}
}

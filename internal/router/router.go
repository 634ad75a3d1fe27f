// Package router registers every HTTP route and the global middleware
// stack on an echo instance.
package router

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/mindful/internal/config"
	"github.com/iliyamo/mindful/internal/handler"
	"github.com/iliyamo/mindful/internal/middleware"
)

// Setup installs the global middleware: panic recovery, request logging
// with request ids, CORS and the JSON error handler.
func Setup(e *echo.Echo, corsOrigins []string) {
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
}

// RegisterRoutes registers the unauthenticated operational endpoints.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth mounts signup and login under /api/auth behind the
// auth-specific rate limit bucket.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, rl config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/api/auth", middleware.NewTokenBucket(rl.Auth(), rdb))
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
}

// RegisterTracker mounts the protected resource endpoints under /api.
// Every route runs the Auth Gate first, then the general rate limit.  Only
// the public journal feed is cached, since it is the same for every caller.
func RegisterTracker(e *echo.Echo, h *handler.TrackerHandler, jwtSecret string, rl config.RateLimitConfig, cc config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/api",
		middleware.JWTAuth(jwtSecret),
		middleware.NewTokenBucket(rl, rdb),
	)

	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)

	g.POST("/moods", h.SaveMood)
	g.GET("/moods", h.ListMoods)
	g.GET("/moods/calendar", h.MoodCalendar)

	g.POST("/gratitudes", h.SaveGratitude)
	g.GET("/gratitudes", h.ListGratitudes)

	g.POST("/journal", h.CreateJournal)
	g.GET("/journal", h.ListJournal)
	g.GET("/journal/public", h.PublicJournal, middleware.NewRedisCache(cc, rdb))
	g.DELETE("/journal/:id", h.DeleteJournal)

	g.GET("/users", h.ListUsers)
	g.POST("/friends/request", h.SendFriendRequest)
	g.GET("/friends/requests", h.ListFriendRequests)

	g.GET("/stats", h.GetStats)
}

// RegisterStatic serves the frontend from dir with index.html as the
// fallback for unknown non-API paths.  Nothing is registered when dir is
// empty.
func RegisterStatic(e *echo.Echo, dir string) {
	if dir == "" {
		return
	}
	e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
		Root:  dir,
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/api") || p == "/metrics" || p == "/healthz"
		},
	}))
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mindful/internal/config"
	"github.com/iliyamo/mindful/internal/database"
	"github.com/iliyamo/mindful/internal/handler"
	"github.com/iliyamo/mindful/internal/logging"
	"github.com/iliyamo/mindful/internal/queue"
	"github.com/iliyamo/mindful/internal/repository"
	"github.com/iliyamo/mindful/internal/router"
	"github.com/iliyamo/mindful/internal/service"
)

func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logging.Fatal().Err(err).Msg("connect database")
	}
	defer db.Close()

	schemaCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = database.EnsureSchema(schemaCtx, db)
	cancel()
	if err != nil {
		logging.Fatal().Err(err).Msg("ensure schema")
	}

	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()
	rdb := config.NewRedisClient()
	if rdb == nil {
		logging.Warn().Msg("redis unavailable; rate limiting and response cache disabled")
	} else {
		defer rdb.Close()
	}

	var events service.Publisher = service.NopPublisher{}
	if qCfg := config.LoadQueueConfig(); qCfg.Enabled {
		pub := service.NewAMQPPublisher(qCfg.URL)
		defer pub.Close()
		events = pub

		consumer := &queue.Consumer{URL: qCfg.URL, Log: &queue.ActivityLog{Dir: qCfg.LogDir}}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logging.Error().Err(err).Msg("activity consumer stopped")
			}
		}()
	}

	users := repository.NewUserRepo(db)
	tracker := &handler.TrackerHandler{
		Users:      users,
		Moods:      repository.NewMoodRepo(db),
		Gratitudes: repository.NewGratitudeRepo(db),
		Journal:    repository.NewJournalRepo(db),
		Friends:    repository.NewFriendRepo(db),
		Stats:      repository.NewStatsRepo(db),
		Events:     events,
	}

	e := echo.New()
	router.Setup(e, cfg.CORSOrigins)
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), rlCfg, rdb)
	router.RegisterTracker(e, tracker, cfg.JWTSecret, rlCfg, cacheCfg, rdb)
	router.RegisterStatic(e, cfg.StaticDir)

	addr := ":" + cfg.Port
	go func() {
		logging.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown")
	}
}

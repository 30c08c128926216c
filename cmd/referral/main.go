package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lostmyescape/referral-tracker/internal/config"
	"github.com/lostmyescape/referral-tracker/internal/http-server/handlers/signup"
	"github.com/lostmyescape/referral-tracker/internal/http-server/handlers/stats"
	"github.com/lostmyescape/referral-tracker/internal/http-server/handlers/track"
	mwLogger "github.com/lostmyescape/referral-tracker/internal/http-server/logger/middleware"
	"github.com/lostmyescape/referral-tracker/internal/kafka"
	"github.com/lostmyescape/referral-tracker/internal/lib/link"
	"github.com/lostmyescape/referral-tracker/internal/lib/logger/handlers/slogpretty"
	"github.com/lostmyescape/referral-tracker/internal/lib/logger/sl"
	"github.com/lostmyescape/referral-tracker/internal/services/referral"
	"github.com/lostmyescape/referral-tracker/internal/storage/postgres"
	"github.com/lostmyescape/referral-tracker/internal/storage/rediscache"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	ctx := context.Background()
	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	log.Info("starting referral-tracker", slog.String("env", cfg.Env))

	storage := postgres.NewStorage(ctx, cfg, log)

	defer func(DB *sql.DB) {
		if err := DB.Close(); err != nil {
			log.Error("DB close error", sl.Err(err))
		}
	}(storage.DB)

	rdb, err := rediscache.NewClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", sl.Err(err))
		os.Exit(1)
	}
	codeCache := rediscache.New(rdb, cfg.Redis.CodeTTL)

	publisher := kafka.NewEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicUser, cfg.Kafka.TopicClick)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("producer close error", sl.Err(err))
		}
	}()

	links, err := link.NewBuilder(
		link.Style(cfg.Referral.LinkStyle),
		cfg.Referral.LinkBase,
		cfg.Referral.SignupPath,
	)
	if err != nil {
		log.Error("invalid referral link config", sl.Err(err))
		os.Exit(1)
	}

	referralService := referral.New(
		log,
		storage,
		storage,
		storage,
		storage,
		codeCache,
		publisher,
		links,
		cfg.Referral.CodeLength,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Post("/signup", signup.New(log, referralService))
	router.Get("/r/{code}", track.Redirect(log, referralService, cfg.Referral.Destination, cfg.Referral.UnknownCodePolicy))
	router.Post("/track/{code}", track.Report(log, referralService))
	router.Get("/stats/{wallet}", stats.New(log, referralService))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed to start server", sl.Err(err))
	}

	log.Error("server stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()

	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

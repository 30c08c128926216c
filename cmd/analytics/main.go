package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lostmyescape/referral-tracker/internal/analytics/clickhouse"
	"github.com/lostmyescape/referral-tracker/internal/analytics/consumer"
	"github.com/lostmyescape/referral-tracker/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.Info("starting analytics consumer", slog.String("env", cfg.Env))

	conn := clickhouse.NewClickhouseClient(ctx, log, cfg)

	service := consumer.NewConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.TopicUser,
		cfg.Kafka.TopicClick,
		cfg.Kafka.GroupID,
		log,
		conn,
	)

	service.Start(ctx)

	<-ctx.Done()

	log.Info("analytics consumer stopped")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tracknest/issuetracker/internal/api"
	"github.com/tracknest/issuetracker/internal/infrastructure/config"
	mongodb "github.com/tracknest/issuetracker/internal/infrastructure/db/mongo"
	redisdb "github.com/tracknest/issuetracker/internal/infrastructure/db/redis"
	"github.com/tracknest/issuetracker/internal/infrastructure/queue"
	"github.com/tracknest/issuetracker/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// Async publish stage: workers live until publishCancel fires.
	publishCtx, publishCancel := context.WithCancel(ctx)
	defer publishCancel()

	notifier := redisdb.NewNotifier(rdb, log)
	publisher := queue.NewPublisher(cfg.PublisherWorkers, notifier, log)
	publisher.Start(publishCtx)

	e := api.NewRouter(db, rdb, publisher, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("issue tracker API listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

// ensureIndexes bootstraps the lookup indexes each repository relies on.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewIssueRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewCommentRepository(db).EnsureIndexes(ctx)
}

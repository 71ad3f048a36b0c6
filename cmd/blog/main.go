package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/roamvista/roamvista/cmd/blog/config"
	"github.com/roamvista/roamvista/cmd/blog/consumer"
	"github.com/roamvista/roamvista/cmd/blog/controller"
	"github.com/roamvista/roamvista/cmd/blog/db"
	"github.com/roamvista/roamvista/cmd/blog/rest"
	igorm "github.com/roamvista/roamvista/internal/gorm"
	"github.com/roamvista/roamvista/internal/healthz"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/migrate"
	"github.com/roamvista/roamvista/internal/session"
	"github.com/roamvista/roamvista/internal/storage"
	"github.com/roamvista/roamvista/internal/stream"
	"github.com/roamvista/roamvista/internal/validator"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

const (
	ecExit = iota
	ecLoggerSetup
	ecDatabaseSetup
	ecMigrationSetup
	ecRedisSetup
	ecStreamSetup
	ecAWSSetup
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger setup: %s\n", err)
		return ecLoggerSetup
	}
	defer logger.Sync()

	cfg := config.Load()

	dbconn, err := igorm.Open(cfg.DSN())
	if err != nil {
		logger.Error("database setup", zap.Error(err))
		return ecDatabaseSetup
	}

	sqldb, err := dbconn.DB()
	if err != nil {
		logger.Error("database setup", zap.Error(err))
		return ecDatabaseSetup
	}
	if err := migrate.Migrate(sqldb, cfg.Migrations()); err != nil {
		logger.Error("migration setup", zap.Error(err))
		return ecMigrationSetup
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword(),
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("redis setup", zap.Error(err))
		return ecRedisSetup
	}

	streamClient, err := stream.Init(ctx, logger, rdb, "blog")
	if err != nil {
		logger.Error("stream setup", zap.Error(err))
		return ecStreamSetup
	}

	awscfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region()))
	if err != nil {
		logger.Error("aws setup", zap.Error(err))
		return ecAWSSetup
	}
	blobs := storage.NewS3(s3.NewFromConfig(awscfg), cfg.S3Bucket(), cfg.S3Region())

	store := db.NewStore(dbconn)
	sessionManager := session.NewManager(logger, rdb, 48*time.Hour)

	ctrl := controller.New(logger, store, streamClient, blobs)

	api := rest.NewAPI(
		logger,
		ctrl,
		ihttp.NewSessionMiddleware(logger, sessionManager),
		validator.New(),
	)
	health := healthz.NewHTTP()
	api.Mux.Method(http.MethodGet, "/healthz", health)

	// Maintains the local author cache from user service events.
	authors := consumer.New(logger, store, streamClient)
	go func() {
		if err := authors.Launch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("author consumer", zap.Error(err))
		}
	}()

	srv := http.Server{
		Handler:      api.Mux,
		Addr:         fmt.Sprintf(":%d", cfg.Port()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Sugar().Infof("blog API listening; port: %d", cfg.Port())
		health.Healthy()
		errs <- srv.ListenAndServe()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, unix.SIGINT, unix.SIGTERM)

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("blog API", zap.Error(err))
		}
	case sig := <-signals:
		logger.Sugar().Infof("received signal; signal: %s", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("blog API shutdown", zap.Error(err))
		}
	}

	return ecExit
}

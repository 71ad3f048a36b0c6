package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/roamvista/roamvista/cmd/user/config"
	"github.com/roamvista/roamvista/cmd/user/controller"
	"github.com/roamvista/roamvista/cmd/user/db"
	"github.com/roamvista/roamvista/cmd/user/openid"
	"github.com/roamvista/roamvista/cmd/user/rest"
	"github.com/roamvista/roamvista/internal/email"
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
	"github.com/mailgun/mailgun-go/v4"
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
	ecOpenIDSetup
)

const sessionExpiration = 48 * time.Hour

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

	streamClient, err := stream.Init(ctx, logger, rdb, "user")
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

	openID, err := openid.New(
		ctx,
		cfg.OIDCIssuer(),
		cfg.OIDCClientID(),
		cfg.OIDCClientSecret(),
		cfg.OIDCRedirectURL(),
	)
	if err != nil {
		logger.Error("openid setup", zap.Error(err))
		return ecOpenIDSetup
	}

	emailer := email.NewMailgunEmailer(
		mailgun.NewMailgun(cfg.MailgunDomain(), cfg.MailgunAPIKey()),
		cfg.MailgunHost(),
	)

	sessionManager := session.NewManager(logger, rdb, sessionExpiration)

	ctrl := controller.New(
		logger,
		db.NewStore(dbconn),
		emailer,
		streamClient,
		sessionManager,
		blobs,
		cfg.Admins(),
	)

	api := rest.NewAPI(
		logger,
		ctrl,
		ihttp.NewSessionMiddleware(logger, sessionManager),
		sessionManager,
		openID,
		validator.New(),
		ihttp.CookieOptions{
			Domain:   cfg.CookieDomain(),
			Secure:   cfg.CookieSecure(),
			SameSite: http.SameSiteStrictMode,
		},
	)
	health := healthz.NewHTTP()
	api.Mux.Method(http.MethodGet, "/healthz", health)

	srv := http.Server{
		Handler:      api.Mux,
		Addr:         fmt.Sprintf(":%d", cfg.Port()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Sugar().Infof("user API listening; port: %d", cfg.Port())
		health.Healthy()
		errs <- srv.ListenAndServe()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, unix.SIGINT, unix.SIGTERM)

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("user API", zap.Error(err))
		}
	case sig := <-signals:
		logger.Sugar().Infof("received signal; signal: %s", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("user API shutdown", zap.Error(err))
		}
	}

	return ecExit
}

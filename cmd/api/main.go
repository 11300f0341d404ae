package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"recus/internal/adapter/repo"
	httpapi "recus/internal/http"
	"recus/internal/http/handlers"
	"recus/internal/infra"
	"recus/internal/infra/credentials"
	"recus/internal/infra/geoip"
	"recus/internal/mail"
	"recus/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	sqlRunner := infra.NewSQLRunner(dbpool, logger)

	var store storage.ObjectStore
	switch cfg.StorageBackend {
	case "s3":
		store, err = storage.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region)
	default:
		store, err = storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
	}
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("failed to initialize receipt store")
	}

	// The API key comes from the environment, with the credentials table as
	// fallback so a rotated key does not require a redeploy.
	apiKey := cfg.ResendAPIKey
	if apiKey == "" {
		if apiKey, err = credentials.NewStore(sqlRunner).ResendAPIKey(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to load resend api key from credentials store")
		}
	}
	sender := mail.NewResendClient(apiKey, cfg.ResendBaseURL)

	geoDB, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable")
	}
	defer geoDB.Close()

	app := handlers.NewApp(cfg, logger, sqlRunner, repo.NewCounterRepository(dbpool), store, sender)
	router := httpapi.NewRouter(app, geoDB.Lookup())

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

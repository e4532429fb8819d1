package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cdn-service/domain/repository"
	"cdn-service/infrastructure/cache"
	"cdn-service/infrastructure/clients/bunny"
	youtubeclient "cdn-service/infrastructure/clients/youtube"
	"cdn-service/infrastructure/configuration"
	"cdn-service/infrastructure/logger"
	"cdn-service/infrastructure/telemetry"
	httpHandler "cdn-service/interfaces/http"
	"cdn-service/interfaces/middleware"
	"cdn-service/server"
	"cdn-service/usecase"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
		telemetry.CaptureError(fmt.Errorf("panic: %v", err), map[string]string{"where": "main"})
		telemetry.Flush()
	}
}

func main() {
	defer recoverPanic()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := configuration.C
	if cfg.App.Release != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := telemetry.InitSentry(cfg.Sentry.DSN, cfg.Sentry.Environment, cfg.App.Release, cfg.Sentry.TracesSampleRate); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Sentry initialization failed - continuing without error tracking")
	}
	defer telemetry.Flush()

	youtubeUseCase := usecase.NewYouTubeUseCase(
		usecase.NewChannelResolver(cfg.YouTube.Channels, cfg.YouTube.StrictChannels),
		InitiateYouTubeClients(ctx, cfg.YouTube),
		cfg.YouTube.MaxPages,
	)

	storageClient, err := bunny.NewStorageClient(&bunny.StorageConfig{
		APIKey:  cfg.Bunny.StorageAPIKey,
		Zone:    cfg.Bunny.StorageZone,
		Host:    cfg.Bunny.StorageHost,
		Timeout: cfg.Bunny.RequestTimeout,
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Bunny storage client initialization failed")
	}
	streamClient := bunny.NewStreamClient(&bunny.StreamConfig{
		APIKey:  cfg.Bunny.StreamAPIKey,
		BaseURL: cfg.Bunny.StreamBaseURL,
		CDNHost: cfg.Bunny.StreamCDNHost,
		Timeout: cfg.Bunny.RequestTimeout,
	})

	storageUseCase := usecase.NewStorageUseCase(storageClient, cfg.Bunny.StoragePullZone)
	streamUseCase := usecase.NewStreamUseCase(streamClient, usecase.StreamLibraries{
		VideoLibraryID:    cfg.Bunny.VideoLibraryID,
		TrailersLibraryID: cfg.Bunny.TrailersLibraryID,
		CDNHost:           cfg.Bunny.StreamCDNHost,
		EmbedBaseURL:      cfg.Bunny.EmbedBaseURL,
	})

	defaultChannel := configuration.ChannelTNORadio
	if len(cfg.YouTube.Channels) > 0 {
		defaultChannel = cfg.YouTube.Channels[0].Name
	}

	router := server.InitiateRouter(server.Handlers{
		Health:  httpHandler.NewHealthHandler(),
		YouTube: httpHandler.NewYouTubeHandler(youtubeUseCase, defaultChannel),
		Storage: httpHandler.NewStorageHandler(storageUseCase),
		Stream:  httpHandler.NewStreamHandler(streamUseCase),
	}, server.RouterOptions{
		AllowOrigins: cfg.CORS.AllowOrigins,
		Limiter:      InitiateRateLimiter(ctx, cfg),
	})

	app := cfg.App
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.GetLogger().WithFields(map[string]interface{}{"port": app.Port, "tls": app.TLSEnabled}).Info("Starting application")
		var err error
		if app.TLSEnabled && app.TLSCertFile != "" && app.TLSKeyFile != "" {
			err = httpServer.ListenAndServeTLS(app.TLSCertFile, app.TLSKeyFile)
		} else {
			if app.TLSEnabled {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
			}
			err = httpServer.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.GetLogger().Info("Application shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		telemetry.Flush()
		os.Exit(2)
	}
	logger.GetLogger().Info("Application stopped")
}

// InitiateYouTubeClients builds one immutable client per configured channel. A channel
// whose client cannot be built is left out; requests that reach it fail.
func InitiateYouTubeClients(ctx context.Context, cfg configuration.YouTube) map[string]repository.IYouTube {
	clients := make(map[string]repository.IYouTube, len(cfg.Channels))
	for _, channel := range cfg.Channels {
		client, err := youtubeclient.NewYouTubeClient(ctx, &youtubeclient.Config{
			Channel:      channel.Name,
			APIKey:       channel.APIKey,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RefreshToken: channel.RefreshToken,
			PageSize:     cfg.PageSize,
			Timeout:      cfg.RequestTimeout,
		})
		if err != nil {
			logger.GetLogger().WithFields(map[string]interface{}{
				"channel": channel.Name,
				"error":   err,
			}).Warn("YouTube client not initialized for channel")
			continue
		}
		clients[channel.Name] = client
	}
	return clients
}

// InitiateRateLimiter prefers a Redis-backed limiter shared across replicas and falls
// back to an in-process one.
func InitiateRateLimiter(ctx context.Context, cfg configuration.Config) middleware.Limiter {
	if !cfg.RateLimit.Enabled {
		logger.GetLogger().Info("Rate limiting disabled")
		return nil
	}
	redisClient, err := cache.NewCache(ctx, cfg.RedisClient.RedisAddr(), cfg.RedisClient.Username, cfg.RedisClient.Password, cfg.RedisClient.DB)
	if err == nil {
		logger.GetLogger().Info("Using Redis rate limiter")
		return middleware.NewRedisLimiter(redisClient, cfg.RateLimit.RequestsPerMinute)
	}
	if !errors.Is(err, cache.ErrNotConfigured) {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - using in-memory rate limiter")
	}
	return middleware.NewMemoryLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
}

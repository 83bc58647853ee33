package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mockinsight/interview-service/internal/cache"
	"github.com/mockinsight/interview-service/internal/config"
	"github.com/mockinsight/interview-service/internal/events"
	"github.com/mockinsight/interview-service/internal/handlers"
	"github.com/mockinsight/interview-service/internal/metrics"
	"github.com/mockinsight/interview-service/internal/scoring"
	"github.com/mockinsight/interview-service/internal/services"
	"github.com/mockinsight/interview-service/internal/utils"
	"github.com/mockinsight/interview-service/internal/validator"
	"github.com/mockinsight/interview-service/pkg"
)

const reportCachePrefix = "mockinsight:"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewLogger(false).LogError(err, "Failed to load configuration")
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.IsProduction())
	slogger := utils.ToSlogLogger(logger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reportCache := cache.NewMemoryCache()
	if cfg.CacheBackend == config.CacheBackendRedis {
		client, err := pkg.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.LogError(err, "Failed to connect to redis", "redis_url", cfg.RedisURL)
			os.Exit(1)
		}
		defer client.Close()
		reportCache = cache.NewRedisCache(client, slogger, reportCachePrefix)
	}

	bus, err := cfg.Events.CreateEventBus(slogger)
	if err != nil {
		logger.LogError(err, "Failed to create event bus")
		os.Exit(1)
	}

	var background sync.WaitGroup
	activity := metrics.NewMetrics()
	if bus.Subscriber != nil {
		consumer := events.NewConsumer(bus.Subscriber, cfg.Events.Topic, activity.HandleEvent, slogger)
		background.Add(1)
		go func() {
			defer background.Done()
			if err := consumer.Run(ctx); err != nil {
				logger.LogError(err, "Event consumer stopped")
			}
		}()
	}

	service := services.NewInterviewService(
		validator.New(),
		scoring.NewScorer(scoring.NewMockEvaluator()),
		reportCache,
		bus.Publisher,
		activity,
		services.ServiceConfig{
			StableResults:  cfg.ResultsMode == config.ResultsModeStable,
			ReportCacheTTL: cfg.ReportCacheTTL,
			SessionIdleTTL: cfg.SessionIdleTTL,
			TimerInterval:  cfg.TimerInterval,
		},
		slogger,
	)

	background.Add(1)
	go func() {
		defer background.Done()
		service.RunReaper(ctx, reaperInterval(cfg.SessionIdleTTL))
	}()

	router := handlers.NewRouter(handlers.NewHandlerManager(service, logger), logger)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Interview service listening",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"results_mode", cfg.ResultsMode,
			"cache_backend", cfg.CacheBackend,
			"events_publisher", cfg.Events.Publisher)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			logger.LogError(err, "Server failed")
		}
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.LogError(err, "Server shutdown")
	}
	service.Shutdown(shutdownCtx)
	if err := bus.Close(); err != nil {
		logger.LogError(err, "Failed to close event bus")
	}
	background.Wait()

	logger.Info("Interview service stopped")
}

// reaperInterval checks for idle sessions a few times per ttl, at most once a minute.
func reaperInterval(idleTTL time.Duration) time.Duration {
	interval := idleTTL / 4
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

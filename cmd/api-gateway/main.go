package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/wazai-maps/api/swagger"
	"github.com/noah-isme/wazai-maps/internal/dto"
	"github.com/noah-isme/wazai-maps/internal/handler"
	"github.com/noah-isme/wazai-maps/internal/mapview"
	internalmiddleware "github.com/noah-isme/wazai-maps/internal/middleware"
	"github.com/noah-isme/wazai-maps/internal/repository"
	"github.com/noah-isme/wazai-maps/internal/service"
	"github.com/noah-isme/wazai-maps/pkg/cache"
	"github.com/noah-isme/wazai-maps/pkg/config"
	"github.com/noah-isme/wazai-maps/pkg/jobs"
	"github.com/noah-isme/wazai-maps/pkg/logger"
	corsmiddleware "github.com/noah-isme/wazai-maps/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/wazai-maps/pkg/middleware/requestid"
	"github.com/noah-isme/wazai-maps/pkg/storage"
)

// @title Wazai Maps API
// @version 0.1.0
// @description Map sessions over the tech event search API: markers, selection, list, calendar and exports.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsSvc := service.NewMetricsService()

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			defer redisClient.Close() //nolint:errcheck
		}
	}
	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, "wazai", logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.SearchTTL, logr, redisClient != nil)

	searchRepo := repository.NewSearchAPIRepository(cfg.SearchAPI,
		repository.WithUpstreamObserver(metricsSvc.ObserveUpstream),
		repository.WithSearchLogger(logr),
	)
	searchSvc := service.NewSearchService(searchRepo, cacheSvc, service.SearchConfig{
		SearchTTL:    cfg.Cache.SearchTTL,
		ProvidersTTL: cfg.Cache.ProvidersTTL,
	}, logr)
	exportSvc := service.NewExportService(nil, nil, nil)

	var sessionSvc *service.SessionService
	queue := jobs.NewQueue("search", func(ctx context.Context, job jobs.Job) error {
		return sessionSvc.HandleSearchJob(ctx, job)
	}, jobs.QueueConfig{
		Workers:    cfg.Workers.SearchConcurrency,
		BufferSize: cfg.Workers.SearchBuffer,
		MaxRetries: cfg.Workers.SearchRetries,
		Retryable:  service.IsRetryableSearchError,
		Logger:     logr,
	})

	sessionSvc = service.NewSessionService(
		repository.NewSessionRepository[*service.Session](cfg.Sessions.MaxSessions, cfg.Sessions.IdleTTL),
		searchSvc,
		queue,
		exportSvc,
		metricsSvc,
		nil,
		service.SessionConfig{
			Center:          mapview.LatLng{Lat: cfg.Map.DefaultLat, Lng: cfg.Map.DefaultLng},
			Zoom:            cfg.Map.DefaultZoom,
			FocusZoom:       cfg.Map.FocusZoom,
			Viewport:        mapview.Size{Width: cfg.Map.ViewportWidth, Height: cfg.Map.ViewportHeight},
			DisplayTimezone: cfg.Sessions.DisplayTimezone,
			JobRetries:      cfg.Workers.SearchRetries,
		},
		logr,
	)

	queue.Start(ctx)
	defer queue.Stop()
	go sessionSvc.RunJanitor(ctx, cfg.Sessions.CleanupInterval)

	var shareSvc *service.ShareService
	if fileStore, err := storage.NewFileStore(cfg.Exports.Dir); err != nil {
		logr.Warn("export directory unavailable, links disabled", zap.String("dir", cfg.Exports.Dir), zap.Error(err))
	} else {
		signer := storage.NewLinkSigner(cfg.Exports.LinkSecret, cfg.Exports.LinkTTL)
		shareSvc = service.NewShareService(fileStore, signer, cfg.APIPrefix+"/exports/", logr)
		go shareSvc.RunJanitor(ctx, cfg.Sessions.CleanupInterval)
	}

	go func() {
		warmCtx, cancel := context.WithTimeout(ctx, cfg.SearchAPI.Timeout)
		defer cancel()
		if err := searchSvc.Warm(warmCtx); err != nil {
			logr.Warn("cache warm-up failed", zap.Error(err))
		}
	}()

	checks := map[string]handler.ReadinessCheck{
		"search_api": func(ctx context.Context) error {
			_, err := searchRepo.Providers(ctx)
			return err
		},
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	handlers := handler.Handlers{
		Sessions:  handler.NewSessionHandler(sessionSvc),
		Lists:     handler.NewListHandler(sessionSvc),
		Selection: handler.NewSelectionHandler(sessionSvc),
		Map:       handler.NewMapHandler(sessionSvc),
		Exports:   handler.NewExportHandler(sessionSvc, shareHandlerDep(shareSvc)),
		Providers: handler.NewProviderHandler(searchSvc),
		Metrics:   handler.NewMetricsHandler(metricsSvc, checks, logr),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc, "/metrics", "/health", "/ready"))
	r.Use(internalmiddleware.WithResponseMeta())

	handler.Register(r, cfg.APIPrefix, handlers)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// shareHandlerDep keeps a nil *ShareService from becoming a non-nil interface.
func shareHandlerDep(svc *service.ShareService) interface {
	Publish(owner string, file dto.ExportFile) (*dto.ExportLink, error)
	Open(token string) (*service.SharedFile, error)
} {
	if svc == nil {
		return nil
	}
	return svc
}

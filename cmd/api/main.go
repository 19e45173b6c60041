package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"eatease-backend/internal/api"
	"eatease-backend/internal/api/handlers/health"
	"eatease-backend/internal/core/ai/cache"
	"eatease-backend/internal/core/ai/openrouter"
	"eatease-backend/internal/core/ai/queue"
	"eatease-backend/internal/core/ai/vision"
	"eatease-backend/internal/core/detection"
	"eatease-backend/internal/core/feedback"
	"eatease-backend/internal/core/image"
	"eatease-backend/internal/core/recommend"
	"eatease-backend/internal/infrastructure/config"
	"eatease-backend/internal/infrastructure/monitoring"
	"eatease-backend/internal/infrastructure/persistence"
	"eatease-backend/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("detection_provider", cfg.Detection.Provider),
		zap.String("database_driver", cfg.Database.Driver),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	ctx := context.Background()

	// 資料庫
	db, err := persistence.Open(cfg.Database)
	if err != nil {
		common.LogFatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		if err := persistence.Close(db); err != nil {
			common.LogWarn("Failed to close database", zap.Error(err))
		}
	}()

	dictionary := detection.DefaultDictionary()
	if cfg.Database.Seed {
		n, err := persistence.SeedIngredients(ctx, db, dictionary.CanonicalNames())
		if err != nil {
			common.LogFatal("Failed to seed ingredients", zap.Error(err))
		}
		common.LogInfo("食材資料已初始化", zap.Int("inserted", n))
	}

	metrics := monitoring.NewMetrics()
	if sqlDB, err := db.DB(); err == nil {
		if err := metrics.RegisterDB(sqlDB, cfg.App.Name); err != nil {
			common.LogWarn("Failed to register database metrics", zap.Error(err))
		}
	}

	catalog := persistence.NewCatalog(db)
	store := persistence.NewCorrectionStore(db)
	learned := detection.NewLearnedCache(store,
		detection.WithRefreshInterval(cfg.Detection.LearnedRefresh),
		detection.WithMinCorrections(cfg.Detection.MinCorrections),
		detection.WithRebuildObserver(metrics),
	)
	resolver := detection.NewResolver(dictionary, learned)
	images := image.NewService(cfg.Image)

	checks := map[string]health.Pinger{
		"database": health.PingFunc(func(ctx context.Context) error { return persistence.Ping(ctx, db) }),
	}

	detector, closeDetector, err := buildDetector(ctx, cfg, images)
	if err != nil {
		common.LogFatal("Failed to initialize detector", zap.Error(err))
	}
	defer closeDetector()
	if detector != nil {
		detector = queue.NewManager(detector, cfg.Detection.Workers, cfg.Detection.QueueSize)
	}

	rawCache, closeCache := buildRawCache(ctx, cfg, checks)
	defer closeCache()

	detectionService := detection.NewService(detector, rawCache, resolver, metrics, detection.ServiceConfig{
		HighConfidence:   cfg.Detection.HighConfidence,
		RawFallbackCount: cfg.Detection.RawFallbackCount,
	})
	feedbackService := feedback.NewService(store, learned,
		feedback.WithIngredientFinder(catalog),
		feedback.WithRecorder(metrics),
		feedback.WithBatchLimit(cfg.Detection.FeedbackBatchLimit),
		feedback.WithMinCorrections(cfg.Detection.MinCorrections),
	)
	recommendService := recommend.NewService(catalog, metrics, recommend.Config{
		MinMatchPercentage: cfg.Recommend.MinMatchPercentage,
		DefaultLimit:       cfg.Recommend.DefaultLimit,
		MaxLimit:           cfg.Recommend.MaxLimit,
		RecentDays:         cfg.Recommend.RecentDays,
		FavoriteMinRating:  cfg.Recommend.FavoriteMinRating,
		QuickMaxTime:       cfg.Recommend.QuickMaxTime,
	})

	detectorName := "none"
	if detector != nil {
		detectorName = detector.Name()
	}

	// 設置路由
	router := api.SetupRouter(api.Dependencies{
		Config:      cfg,
		Detection:   detectionService,
		Images:      images,
		Feedback:    feedbackService,
		Catalog:     catalog,
		Recommender: recommendService,
		Health:      health.NewHandler(cfg.App.Version, detectorName, checks),
		Metrics:     metrics,
	})

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo(common.MsgAppStarting,
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.String("addr", srv.Addr),
			zap.String("detector", detectorName),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo(common.MsgShuttingDown)

	// 設置關閉超時
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo(common.MsgServerExited)
}

// buildDetector 依 detection.provider 建立偵測器，none 時回傳 nil
func buildDetector(ctx context.Context, cfg *config.Config, images *image.Service) (detection.Detector, func(), error) {
	noop := func() {}

	switch strings.ToLower(strings.TrimSpace(cfg.Detection.Provider)) {
	case vision.ProviderName:
		d, err := vision.NewDetector(ctx, vision.Options{
			CredentialsFile: cfg.GoogleVision.CredentialsFile,
			CredentialsJSON: cfg.GoogleVision.CredentialsJSON,
			Timeout:         cfg.GoogleVision.Timeout,
			MaxLabels:       cfg.Detection.MaxLabels,
			MaxObjects:      cfg.Detection.MaxObjects,
		})
		if err != nil {
			return nil, noop, err
		}
		return d, closer("google vision", d), nil

	case openrouter.ProviderName:
		c := openrouter.NewClient(openrouter.Options{
			BaseURL:   cfg.OpenRouter.BaseURL,
			APIKey:    cfg.OpenRouter.APIKey,
			Model:     cfg.OpenRouter.Model,
			MaxTokens: cfg.OpenRouter.MaxTokens,
			Timeout:   cfg.OpenRouter.Timeout,
			Retries:   cfg.OpenRouter.Retries,
			MaxLabels: cfg.Detection.MaxLabels,
		}, images)
		return c, noop, nil

	case "", "none":
		common.LogWarn("未設定影像偵測器，偵測 API 將回傳空結果")
		return nil, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown detection provider: %s", cfg.Detection.Provider)
}

// buildRawCache Redis 啟用且可連線時使用 Redis，否則視設定使用記憶體快取
func buildRawCache(ctx context.Context, cfg *config.Config, checks map[string]health.Pinger) (detection.RawCache, func()) {
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err == nil {
			rc := cache.NewRedisCache(client, cfg.Cache.TTL)
			checks["redis"] = rc
			return rc, closer("redis", rc)
		}
		common.LogWarn("Redis 無法連線，改用記憶體快取", zap.Error(err))
	}

	if !cfg.Cache.Enabled {
		return nil, func() {}
	}
	m := cache.NewManager(cfg.Cache)
	return m, closer("cache", m)
}

func closer(name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			common.LogWarn("Failed to close "+name, zap.Error(err))
		}
	}
}

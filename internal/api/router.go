package api

import (
	"time"

	"eatease-backend/internal/api/handlers/health"
	"eatease-backend/internal/api/handlers/ingredient"
	"eatease-backend/internal/api/handlers/recipe"
	"eatease-backend/internal/api/middleware"
	"eatease-backend/internal/core/image"
	"eatease-backend/internal/infrastructure/config"
	"eatease-backend/internal/infrastructure/monitoring"
	"eatease-backend/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipartOverhead multipart 邊界與欄位的額外空間
const multipartOverhead = 1 << 20

// Dependencies 路由需要的服務
type Dependencies struct {
	Config      *config.Config
	Detection   ingredient.Detector
	Images      *image.Service
	Feedback    ingredient.Feedback
	Catalog     ingredient.Catalog
	Recommender recipe.Recommender
	Health      *health.Handler
	Metrics     *monitoring.Metrics
}

// SetupRouter 設置路由
func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID))) // 自動生成請求 ID
	router.Use(middleware.Logger())
	if deps.Metrics != nil {
		router.Use(deps.Metrics.HTTPMiddleware())
	}

	// CORS 設置
	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !containsWildcard(origins),
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制，圖片大小由 handler 另外檢查
	router.Use(middleware.BodySizeLimit(deps.Images.MaxSizeBytes() + multipartOverhead))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// 健康檢查路由
	if deps.Health != nil {
		router.GET("/health", deps.Health.HealthCheck)
		router.GET("/ready", deps.Health.ReadinessCheck)
		router.GET("/live", deps.Health.LivenessCheck)
	}
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	auth := middleware.NewAuthenticator(cfg.Auth)
	dedup := middleware.NewDeduplicator(cfg.DedupWindow)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	ingredients := ingredient.NewHandler(deps.Detection, deps.Images, deps.Feedback, deps.Catalog)
	ingredientGroup := api.Group("/ingredients")
	{
		ingredientGroup.GET("", ingredients.List)
		ingredientGroup.GET("/:id", ingredients.Get)
		ingredientGroup.POST("/detect", auth.Required(), dedup.Middleware(), ingredients.Detect)
		ingredientGroup.POST("/detect/feedback", auth.Required(), ingredients.SubmitFeedback)
		ingredientGroup.GET("/detect/learned-mappings", ingredients.LearnedMappings)
	}

	recipes := recipe.NewHandler(deps.Recommender)
	recipeGroup := api.Group("/recipes")
	{
		recipeGroup.POST("/search", recipes.Search)
		recipeGroup.POST("/recommend", auth.Required(), recipes.Recommend)
		recipeGroup.GET("/recommend/quick", recipes.Quick)
		recipeGroup.GET("/recommend/cuisine/:cuisine_type", recipes.ByCuisine)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("auth_enabled", auth.Enabled()),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_image_size", deps.Images.MaxSizeBytes()),
	)
	return router
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Detection    DetectionConfig    `mapstructure:"detection"`
	GoogleVision GoogleVisionConfig `mapstructure:"google_vision"`
	OpenRouter   OpenRouterConfig   `mapstructure:"openrouter"`
	Recommend    RecommendConfig    `mapstructure:"recommend"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Image        ImageConfig        `mapstructure:"image"`
	DedupWindow  time.Duration      `mapstructure:"dedup_window"`
	LogLevel     string             `mapstructure:"log_level"`
	LogDir       string             `mapstructure:"log_dir"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// DatabaseConfig 資料庫設定，driver 為 sqlite 或 postgres
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	Seed            bool          `mapstructure:"seed"`
	LogQueries      bool          `mapstructure:"log_queries"`
}

// RedisConfig Redis 設定，啟用時取代記憶體偵測快取
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig 偵測結果快取配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// DetectionConfig 食材偵測設定
type DetectionConfig struct {
	Provider           string        `mapstructure:"provider"` // google、openrouter 或 none
	HighConfidence     float64       `mapstructure:"high_confidence"`
	RawFallbackCount   int           `mapstructure:"raw_fallback_count"`
	LearnedRefresh     time.Duration `mapstructure:"learned_refresh"`
	MinCorrections     int           `mapstructure:"min_corrections"`
	MaxLabels          int           `mapstructure:"max_labels"`
	MaxObjects         int           `mapstructure:"max_objects"`
	FeedbackBatchLimit int           `mapstructure:"feedback_batch_limit"`
	Workers            int           `mapstructure:"workers"`    // 同時呼叫外部偵測器的上限
	QueueSize          int           `mapstructure:"queue_size"` // 等待中的偵測請求上限
}

// GoogleVisionConfig Google Cloud Vision 設定
type GoogleVisionConfig struct {
	CredentialsFile string        `mapstructure:"credentials_file"`
	CredentialsJSON string        `mapstructure:"credentials_json"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// OpenRouterConfig OpenRouter 配置
type OpenRouterConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Retries   int           `mapstructure:"retries"`
}

// RecommendConfig 推薦設定
type RecommendConfig struct {
	MinMatchPercentage float64 `mapstructure:"min_match_percentage"`
	DefaultLimit       int     `mapstructure:"default_limit"`
	MaxLimit           int     `mapstructure:"max_limit"`
	RecentDays         int     `mapstructure:"recent_days"`
	FavoriteMinRating  int     `mapstructure:"favorite_min_rating"`
	QuickMaxTime       int     `mapstructure:"quick_max_time"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// AuthConfig JWT 驗證設定，secret 為空時不驗證並視為匿名
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// ImageConfig 圖片配置
type ImageConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
	MaxDimension int   `mapstructure:"max_dimension"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 不存在時只使用環境變數與預設值
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return Load(viper.New())
}

// Load 以指定的 viper 實例解析設定
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定常用環境變量
	bindings := map[string]string{
		"database.driver":                "DATABASE_DRIVER",
		"database.dsn":                   "DATABASE_URL",
		"redis.enabled":                  "REDIS_ENABLED",
		"redis.addr":                     "REDIS_ADDR",
		"redis.password":                 "REDIS_PASSWORD",
		"detection.provider":             "DETECTION_PROVIDER",
		"google_vision.credentials_file": "GOOGLE_APPLICATION_CREDENTIALS",
		"google_vision.credentials_json": "GOOGLE_APPLICATION_CREDENTIALS_JSON",
		"openrouter.api_key":             "OPENROUTER_API_KEY",
		"openrouter.model":               "OPENROUTER_MODEL",
		"openrouter.max_tokens":          "MODEL_MAX_TOKENS",
		"cache.enabled":                  "CACHE_ENABLED",
		"rate_limit.enabled":             "RATE_LIMIT_ENABLED",
		"rate_limit.requests":            "RATE_LIMIT_REQUESTS",
		"rate_limit.window":              "RATE_LIMIT_WINDOW",
		"auth.jwt_secret":                "JWT_SECRET",
		"dedup_window":                   "DEDUP_WINDOW",
		"log_level":                      "LOG_LEVEL",
		"server.port":                    "PORT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	if config.App.Debug {
		fmt.Println("Loading configuration",
			"detection_provider:", config.Detection.Provider,
			"openrouter_api_key:", maskAPIKey(config.OpenRouter.APIKey),
			"database_driver:", config.Database.Driver)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "eatease-backend")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "60s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// 資料庫設定
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "eatease.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.seed", true)
	v.SetDefault("database.log_queries", false)

	// Redis 設定
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// 偵測設定
	v.SetDefault("detection.provider", "google")
	v.SetDefault("detection.high_confidence", 0.7)
	v.SetDefault("detection.raw_fallback_count", 5)
	v.SetDefault("detection.learned_refresh", "5m")
	v.SetDefault("detection.min_corrections", 1)
	v.SetDefault("detection.max_labels", 20)
	v.SetDefault("detection.max_objects", 20)
	v.SetDefault("detection.feedback_batch_limit", 50)
	v.SetDefault("detection.workers", 4)
	v.SetDefault("detection.queue_size", 100)

	v.SetDefault("google_vision.timeout", "30s")

	// OpenRouter 設定
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.model", "qwen/qwen2.5-vl-72b-instruct:free")
	v.SetDefault("openrouter.max_tokens", 1000)
	v.SetDefault("openrouter.timeout", "60s")
	v.SetDefault("openrouter.retries", 1)

	// 推薦設定
	v.SetDefault("recommend.min_match_percentage", 20.0)
	v.SetDefault("recommend.default_limit", 10)
	v.SetDefault("recommend.max_limit", 50)
	v.SetDefault("recommend.recent_days", 30)
	v.SetDefault("recommend.favorite_min_rating", 4)
	v.SetDefault("recommend.quick_max_time", 30)

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("auth.issuer", "eatease")

	// 圖片設定
	v.SetDefault("image.max_size_bytes", 10*1024*1024) // 10MB
	v.SetDefault("image.max_dimension", 1600)

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "logs")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	switch config.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}
	if config.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}

	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	switch config.Detection.Provider {
	case "google", "none":
	case "openrouter":
		if config.OpenRouter.APIKey == "" {
			return fmt.Errorf("openrouter api key is required when detection provider is openrouter")
		}
	default:
		return fmt.Errorf("unsupported detection provider %q", config.Detection.Provider)
	}

	if config.Detection.HighConfidence < 0 || config.Detection.HighConfidence > 1 {
		return fmt.Errorf("detection high confidence must be within [0,1]")
	}
	if config.Detection.MinCorrections < 1 {
		return fmt.Errorf("detection min corrections must be at least 1")
	}
	if config.Detection.Workers < 1 || config.Detection.QueueSize < 0 {
		return fmt.Errorf("invalid detection queue settings")
	}

	if config.Recommend.MinMatchPercentage < 0 || config.Recommend.MinMatchPercentage > 100 {
		return fmt.Errorf("recommend min match percentage must be within [0,100]")
	}
	if config.Recommend.DefaultLimit <= 0 || config.Recommend.MaxLimit < config.Recommend.DefaultLimit {
		return fmt.Errorf("invalid recommend limits")
	}

	if config.Image.MaxSizeBytes <= 0 {
		return fmt.Errorf("invalid image max size")
	}

	return nil
}

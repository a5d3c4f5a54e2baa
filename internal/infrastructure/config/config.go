package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// 執行模式
const (
	ModeTerminal = "terminal"
	ModeHTTP     = "http"
)

// 選擇會話儲存後端
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config 應用配置
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Spoonacular  SpoonacularConfig  `mapstructure:"spoonacular"`
	Vocabulary   VocabularyConfig   `mapstructure:"vocabulary"`
	ShoppingList ShoppingListConfig `mapstructure:"shopping_list"`
	Session      SessionConfig      `mapstructure:"session"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
	Log          LogConfig          `mapstructure:"log"`
	DedupWindow  time.Duration      `mapstructure:"dedup_window"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
	Mode    string `mapstructure:"mode"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// SpoonacularConfig 食譜搜尋服務配置
type SpoonacularConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// VocabularyConfig 菜系與飲食選項，只用於表單下拉選單
type VocabularyConfig struct {
	Cuisines []string `mapstructure:"cuisines"`
	Diets    []string `mapstructure:"diets"`
}

// ShoppingListConfig 購物清單檔案設定
type ShoppingListConfig struct {
	Path string `mapstructure:"path"`
}

// SessionConfig 選擇會話設定
type SessionConfig struct {
	Store           string        `mapstructure:"store"`
	TTL             time.Duration `mapstructure:"ttl"`
	MaxSize         int           `mapstructure:"max_size"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LogConfig 日誌設定
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Dir     string `mapstructure:"dir"`
	Console bool   `mapstructure:"console"`
}

// 預設菜系選項
var defaultCuisines = []string{
	"African", "American", "British", "Cajun", "Caribbean", "Chinese",
	"Eastern European", "European", "French", "German", "Greek", "Indian",
	"Irish", "Italian", "Japanese", "Jewish", "Korean", "Latin American",
	"Mediterranean", "Mexican", "Middle Eastern", "Nordic", "Southern",
	"Spanish", "Thai", "Vietnamese",
}

// 預設飲食選項
var defaultDiets = []string{
	"Gluten Free", "Ketogenic", "Vegetarian", "Lacto-Vegetarian",
	"Ovo-Vegetarian", "Vegan", "Pescetarian", "Paleo", "Primal",
	"Low FODMAP", "Whole30",
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 設定預設值
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	v.BindEnv("spoonacular.api_key", "SPOONACULAR_API_KEY", "API_KEY")
	v.BindEnv("spoonacular.base_url", "SPOONACULAR_BASE_URL")
	v.BindEnv("vocabulary.cuisines", "EXAMPLE_CUISINE")
	v.BindEnv("vocabulary.diets", "EXAMPLE_DIET")
	v.BindEnv("shopping_list.path", "SHOPPING_LIST_PATH")
	v.BindEnv("app.mode", "APP_MODE")
	v.BindEnv("session.store", "SESSION_STORE")
	v.BindEnv("session.redis_addr", "REDIS_ADDR")
	v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	v.BindEnv("dedup_window", "DEDUP_WINDOW")
	v.BindEnv("log.level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	// 讀取設定檔（可選）
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	normalize(&config)

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "recipe-finder")
	v.SetDefault("app.mode", ModeTerminal)

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "60s")
	v.SetDefault("server.max_body_bytes", 1<<20) // 1MB

	// Spoonacular 設定
	v.SetDefault("spoonacular.base_url", "https://api.spoonacular.com")
	v.SetDefault("spoonacular.timeout", "30s")

	// 表單選項
	v.SetDefault("vocabulary.cuisines", defaultCuisines)
	v.SetDefault("vocabulary.diets", defaultDiets)

	// 購物清單
	v.SetDefault("shopping_list.path", "Shopping list.txt")

	// 會話設定
	v.SetDefault("session.store", SessionStoreMemory)
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.max_size", 1000)
	v.SetDefault("session.cleanup_interval", "5m")
	v.SetDefault("session.redis_addr", "localhost:6379")
	v.SetDefault("session.redis_db", 0)

	// 限流設定，Spoonacular 免費方案每日點數有限
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 30)
	v.SetDefault("rate_limit.window", "1m")

	// 日誌設定
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "logs")
	v.SetDefault("log.console", false)

	v.SetDefault("dedup_window", "1s")
}

// normalize 整理設定值
func normalize(config *Config) {
	config.App.Mode = strings.ToLower(strings.TrimSpace(config.App.Mode))
	config.Session.Store = strings.ToLower(strings.TrimSpace(config.Session.Store))
	config.Spoonacular.APIKey = strings.TrimSpace(config.Spoonacular.APIKey)
	config.Spoonacular.BaseURL = strings.TrimRight(config.Spoonacular.BaseURL, "/")
	config.Vocabulary.Cuisines = compact(config.Vocabulary.Cuisines)
	config.Vocabulary.Diets = compact(config.Vocabulary.Diets)
}

// compact 去除空白項目
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Spoonacular.APIKey == "" {
		return fmt.Errorf("spoonacular api key is required (set SPOONACULAR_API_KEY)")
	}
	if config.Spoonacular.BaseURL == "" {
		return fmt.Errorf("spoonacular base url is required")
	}
	if config.ShoppingList.Path == "" {
		return fmt.Errorf("shopping list path is required")
	}

	switch config.App.Mode {
	case ModeTerminal:
	case ModeHTTP:
		if config.Server.Port == 0 {
			return fmt.Errorf("server port is required")
		}
	default:
		return fmt.Errorf("unknown app mode %q", config.App.Mode)
	}

	// 驗證會話設定
	switch config.Session.Store {
	case SessionStoreMemory:
		if config.Session.MaxSize <= 0 {
			return fmt.Errorf("invalid session max size")
		}
		if config.Session.CleanupInterval <= 0 {
			return fmt.Errorf("invalid session cleanup interval")
		}
	case SessionStoreRedis:
		if config.Session.RedisAddr == "" {
			return fmt.Errorf("redis address is required for redis session store")
		}
	default:
		return fmt.Errorf("unknown session store %q", config.Session.Store)
	}
	if config.Session.TTL <= 0 {
		return fmt.Errorf("invalid session ttl")
	}

	if config.RateLimit.Enabled && (config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit settings")
	}

	return nil
}

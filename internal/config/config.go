package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env      string
	LogLevel string
	Server   ServerConfig
	Catalog  CatalogConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Cache    CacheConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// CatalogConfig holds remote catalog client configuration
type CatalogConfig struct {
	BaseURL         string
	RequestTimeout  time.Duration
	PageLimit       int
	RefreshDebounce time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	Enabled bool
	URL     string
}

// CacheConfig holds caching TTL configuration
type CacheConfig struct {
	ProductsTTL   time.Duration
	CategoriesTTL time.Duration
}

// Load reads configuration from an optional .env file and environment variables
func Load() (*Config, error) {
	// A missing .env is fine; real deployments pass plain environment variables
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	viper.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "30s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("CATALOG_BASE_URL", "https://dummyjson.com")
	viper.SetDefault("CATALOG_REQUEST_TIMEOUT", "15s")
	viper.SetDefault("CATALOG_PAGE_LIMIT", 10)
	viper.SetDefault("CATALOG_REFRESH_DEBOUNCE", "250ms")

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("NATS_ENABLED", false)
	viper.SetDefault("NATS_URL", "nats://localhost:4222")

	viper.SetDefault("CACHE_TTL_PRODUCTS", "60s")
	viper.SetDefault("CACHE_TTL_CATEGORIES", "1h")

	readTimeout, err := time.ParseDuration(viper.GetString("SERVER_READ_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(viper.GetString("SERVER_WRITE_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := time.ParseDuration(viper.GetString("SERVER_SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT: %w", err)
	}

	requestTimeout, err := time.ParseDuration(viper.GetString("CATALOG_REQUEST_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_REQUEST_TIMEOUT: %w", err)
	}

	refreshDebounce, err := time.ParseDuration(viper.GetString("CATALOG_REFRESH_DEBOUNCE"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_REFRESH_DEBOUNCE: %w", err)
	}

	productsTTL, err := time.ParseDuration(viper.GetString("CACHE_TTL_PRODUCTS"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_PRODUCTS: %w", err)
	}

	categoriesTTL, err := time.ParseDuration(viper.GetString("CACHE_TTL_CATEGORIES"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_CATEGORIES: %w", err)
	}

	pageLimit := viper.GetInt("CATALOG_PAGE_LIMIT")
	if pageLimit <= 0 {
		return nil, fmt.Errorf("invalid CATALOG_PAGE_LIMIT: must be positive, got %d", pageLimit)
	}

	allowedOriginsStr := viper.GetString("CORS_ALLOWED_ORIGINS")
	allowedOrigins := strings.Split(allowedOriginsStr, ",")
	for i := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
	}

	config := &Config{
		Env:      viper.GetString("ENV"),
		LogLevel: viper.GetString("LOG_LEVEL"),
		Server: ServerConfig{
			Port:            viper.GetString("SERVER_PORT"),
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
			AllowedOrigins:  allowedOrigins,
		},
		Catalog: CatalogConfig{
			BaseURL:         strings.TrimRight(viper.GetString("CATALOG_BASE_URL"), "/"),
			RequestTimeout:  requestTimeout,
			PageLimit:       pageLimit,
			RefreshDebounce: refreshDebounce,
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		NATS: NATSConfig{
			Enabled: viper.GetBool("NATS_ENABLED"),
			URL:     viper.GetString("NATS_URL"),
		},
		Cache: CacheConfig{
			ProductsTTL:   productsTTL,
			CategoriesTTL: categoriesTTL,
		},
	}

	return config, nil
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

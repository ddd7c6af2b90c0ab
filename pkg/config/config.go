package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultPlaceholderImage is shown for products that carry no image
const DefaultPlaceholderImage = "https://via.placeholder.com/150"

// APIConfig holds the remote inventory API configuration
type APIConfig struct {
	BaseURL          string
	Timeout          time.Duration
	PlaceholderImage string
}

// AppConfig holds application-wide settings
type AppConfig struct {
	Env string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
	// File is the rotated log file; empty means stderr
	File string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
	// Addr is the listen address for the metrics endpoint; empty disables it
	Addr string
}

// MockConfig holds configuration for the development mock backend
type MockConfig struct {
	Port               string
	JWTSigningKey      string
	JWTExpirationHours int
	RequireAuth        bool
}

// Config holds all configuration
type Config struct {
	ServiceName string
	API         APIConfig
	App         AppConfig
	Log         LogConfig
	Metrics     MetricsConfig
	Mock        MockConfig
}

// Load loads configuration from environment variables, reading an optional .env file first
func Load(serviceName string) (*Config, error) {
	// .env is optional; real environment variables always win
	_ = godotenv.Load()

	config := &Config{
		ServiceName: serviceName,
		API: APIConfig{
			BaseURL:          strings.TrimRight(getEnv("API_BASE_URL", "http://192.168.1.3:5000"), "/"),
			Timeout:          getEnvAsDuration("API_TIMEOUT", 10*time.Second),
			PlaceholderImage: getEnv("PLACEHOLDER_IMAGE_URL", DefaultPlaceholderImage),
		},
		App: AppConfig{
			Env: getEnv("APP_ENV", "development"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", serviceName+".log"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", serviceName),
			Addr:   getEnv("METRICS_ADDR", ""),
		},
		Mock: MockConfig{
			Port:               getEnv("MOCK_PORT", "5000"),
			JWTSigningKey:      getEnv("MOCK_JWT_SIGNING_KEY", "mocksecretkey"),
			JWTExpirationHours: getEnvAsInt("MOCK_JWT_EXPIRATION_HOURS", 24),
			RequireAuth:        getEnvAsBool("MOCK_REQUIRE_AUTH", false),
		},
	}

	return config, nil
}

// LogConfig returns the configuration as zap fields
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.App.Env),
		zap.String("api_base_url", c.API.BaseURL),
		zap.Duration("api_timeout", c.API.Timeout),
		zap.String("log_level", c.Log.Level),
		zap.String("metrics_addr", c.Metrics.Addr),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as booleans
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

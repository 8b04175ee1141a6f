package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
	Auth     AuthConfig
	Prices   PriceConfig
	Fuel     FuelConfig
	Report   ReportConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// AuthConfig holds the key shared with the auth service that issues bearer
// tokens. TokenKey is the raw base64 value; Keys decodes it.
type AuthConfig struct {
	TokenKey string
	TokenTTL time.Duration
}

// PriceConfig tunes market price fetching and the background refresh.
type PriceConfig struct {
	RefreshSchedule  string
	RefreshEnabled   bool
	CacheSize        int
	CacheTTL         time.Duration
	FetchConcurrency int
	FetchTimeout     time.Duration
	SSIBaseURL       string
	VNDirectBaseURL  string
}

type FuelConfig struct {
	CategoryName string
}

type ReportConfig struct {
	Currency string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/fintrack.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Auth: AuthConfig{
			TokenKey: getEnv("AUTH_TOKEN_KEY", ""),
			TokenTTL: getEnvDuration("AUTH_TOKEN_TTL", 24*time.Hour),
		},
		Prices: PriceConfig{
			RefreshSchedule:  getEnv("PRICE_REFRESH_SCHEDULE", "0 */15 9-15 * * MON-FRI"),
			RefreshEnabled:   getEnvBool("PRICE_REFRESH_ENABLED", true),
			CacheSize:        getEnvInt("PRICE_CACHE_SIZE", 512),
			CacheTTL:         getEnvDuration("PRICE_CACHE_TTL", 5*time.Minute),
			FetchConcurrency: getEnvInt("PRICE_FETCH_CONCURRENCY", 8),
			FetchTimeout:     getEnvDuration("PRICE_FETCH_TIMEOUT", 10*time.Second),
			SSIBaseURL:       getEnv("SSI_BASE_URL", ""),
			VNDirectBaseURL:  getEnv("VNDIRECT_BASE_URL", ""),
		},
		Fuel: FuelConfig{
			CategoryName: getEnv("FUEL_CATEGORY_NAME", "Xăng xe"),
		},
		Report: ReportConfig{
			Currency: strings.ToUpper(getEnv("REPORT_CURRENCY", "VND")),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// Keys decodes the token key. It fails when the key is unset or malformed,
// which the server treats as fatal.
func (a AuthConfig) Keys() ([]*fernet.Key, error) {
	if a.TokenKey == "" {
		return nil, fmt.Errorf("AUTH_TOKEN_KEY is required")
	}
	keys, err := fernet.DecodeKeys(splitList(a.TokenKey)...)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_KEY: %w", err)
	}
	return keys, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// splitList splits a comma separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

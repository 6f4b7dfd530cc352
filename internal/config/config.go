package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultErrorMessage is shown when a failed response carries no readable message.
const DefaultErrorMessage = "Възникна грешка. Опитайте отново."

type Config struct {
	API     APIConfig
	Storage StorageConfig
	Redis   RedisConfig
	Viewer  ViewerConfig
	Money   MoneyConfig
	Media   MediaConfig
}

type APIConfig struct {
	BaseURL         string
	TimeoutSeconds  int
	FallbackMessage string
}

type StorageConfig struct {
	Driver string // sqlite, redis, memory
	Path   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Prefix   string
}

type ViewerConfig struct {
	Port        string
	GinMode     string
	AllowOrigin []string
}

type MoneyConfig struct {
	EURRate float64
}

type MediaConfig struct {
	PreviewMaxSize int
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	// .env is optional; the environment alone is a valid configuration
	_ = godotenv.Load()

	return &Config{
		API: APIConfig{
			BaseURL:         resolveBaseURL(getEnv("API_BASE_URL", ""), getEnv("API_FALLBACK_HOST", "localhost")),
			TimeoutSeconds:  getEnvAsInt("HTTP_TIMEOUT_SECONDS", 30),
			FallbackMessage: getEnv("ERROR_FALLBACK_MESSAGE", DefaultErrorMessage),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", "sqlite"),
			Path:   getEnv("STORAGE_PATH", defaultStatePath()),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "menuadmin:"),
		},
		Viewer: ViewerConfig{
			Port:        getEnv("VIEWER_PORT", "8090"),
			GinMode:     getEnv("GIN_MODE", "release"),
			AllowOrigin: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		Money: MoneyConfig{
			EURRate: getEnvAsFloat("EUR_RATE", 1.95583),
		},
		Media: MediaConfig{
			PreviewMaxSize: getEnvAsInt("PREVIEW_MAX_SIZE", 320),
		},
	}
}

// resolveBaseURL falls back to the same host on the API's fixed port.
func resolveBaseURL(base, fallbackHost string) string {
	if base == "" {
		base = fmt.Sprintf("http://%s:8000/api", fallbackHost)
	}
	return strings.TrimRight(base, "/")
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "menuadmin.db"
	}
	return filepath.Join(home, ".menuadmin", "state.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

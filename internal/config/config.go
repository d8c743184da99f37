package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Keys     APIKeys
	Ai       AIConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	FrontendURL        string
	Environment        string
	LogFilePath        string
	NotificationLog    string
	CorsAllowedOrigins string
	NatsURL            string
	ActivityTopic      string
}

type DatabaseConfig struct {
	Connection string
	LogLevel   string // silent, error, warn, info
}

type CacheConfig struct {
	Driver        string // redis, memory, none
	RedisURL      string
	RedisPassword string
}

type AuthConfig struct {
	JwtSecret          string
	JwtTTL             time.Duration
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type APIKeys struct {
	YouTube           string
	YouTubeBaseURL    string
	YouTubeRateLimit  float64 // requests per second
	TranscriptBaseURL string
	OpenAI            string
}

type AIConfig struct {
	LLMProvider   string // "openai" or "ollama"
	LLMModel      string
	LLMBaseURL    string
	OllamaBaseURL string

	OllamaModel         string
	OllamaContextWindow int
	OllamaKeepAlive     string
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			NotificationLog:    getEnv("NOTIFICATION_LOG_FILE_PATH", "logs/notification.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", ""),
			ActivityTopic:      getEnv("ACTIVITY_TOPIC", "learning.activity"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			LogLevel:   getEnv("DB_LOG_LEVEL", "warn"),
		},
		Cache: CacheConfig{
			Driver:        strings.ToLower(getEnv("CACHE_DRIVER", "redis")),
			RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
		},
		Auth: AuthConfig{
			JwtSecret:          getEnv("JWT_SECRET", "utracker_default_secret_key"),
			JwtTTL:             time.Duration(getEnvAsInt("JWT_TTL_HOURS", 168)) * time.Hour,
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:5000/api/auth/google/callback"),
		},
		Keys: APIKeys{
			YouTube:           getEnv("YOUTUBE_API_KEY", ""),
			YouTubeBaseURL:    getEnv("YOUTUBE_API_BASE_URL", "https://www.googleapis.com/youtube/v3"),
			YouTubeRateLimit:  getEnvAsFloat("YOUTUBE_RATE_LIMIT", 5),
			TranscriptBaseURL: getEnv("TRANSCRIPT_BASE_URL", "https://video.google.com/timedtext"),
			OpenAI:            getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
			LLMModel:      getEnv("LLM_MODEL", "gpt-3.5-turbo"),
			LLMBaseURL:    getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),

			OllamaModel:         getEnv("OLLAMA_MODEL", "gemma:2b"),
			OllamaContextWindow: getEnvAsInt("OLLAMA_NUM_CTX", 8192),
			OllamaKeepAlive:     getEnv("OLLAMA_KEEP_ALIVE", ""),
		},
		Tracing: TracingConfig{
			Enabled:  getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

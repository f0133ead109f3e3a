package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Telegram  TelegramConfig
	Session   SessionConfig
	Events    EventsConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

type DatabaseConfig struct {
	Connection  string
	AutoMigrate bool
}

type TelegramConfig struct {
	BotToken    string
	PollTimeout int // Seconds
	Debug       bool
}

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type SessionConfig struct {
	Backend      string // "memory" or "redis"
	IdleTTL      time.Duration
	SelectionTTL time.Duration
	RedisURL     string
}

type EventsConfig struct {
	CatalogTopic string
	NatsURL      string // Empty disables forwarding
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			// Hosting platforms inject PORT
			Port:               getEnv("APP_PORT", getEnv("PORT", "5000")),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "catalog_audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Connection:  getEnv("DATABASE_URL", getEnv("DB_CONNECTION_STRING", "")),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Telegram: TelegramConfig{
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
			PollTimeout: getEnvAsInt("TELEGRAM_POLL_TIMEOUT", 60),
			Debug:       getEnvAsBool("TELEGRAM_DEBUG", false),
		},
		Session: SessionConfig{
			Backend:      getEnv("SESSION_BACKEND", SessionBackendMemory),
			IdleTTL:      getEnvAsDuration("SESSION_IDLE_TTL", 30*time.Minute),
			SelectionTTL: getEnvAsDuration("SELECTION_TOKEN_TTL", 24*time.Hour),
			RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Events: EventsConfig{
			CatalogTopic: getEnv("CATALOG_EVENT_TOPIC", "CATALOG_EVENTS"),
			NatsURL:      getEnv("NATS_URL", ""),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "tobacco-catalog-be"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil && value > 0 {
		return value
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`
	DBMaxConns  int    `env:"DB_MAX_CONNS" envDefault:"10"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	RedisPoolSize int `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// Notification (SMS) webhook Config
	NotifyWebhookURL     string        `env:"NOTIFY_WEBHOOK_URL"`
	NotifyWebhookSecret  string        `env:"NOTIFY_WEBHOOK_SECRET"`
	NotifyWebhookTimeout time.Duration `env:"NOTIFY_WEBHOOK_TIMEOUT" envDefault:"5s"`
	NotifyMaxRetries     int           `env:"NOTIFY_MAX_RETRIES" envDefault:"3"`
	NotifyBaseDelay      time.Duration `env:"NOTIFY_BASE_DELAY" envDefault:"1s"`
	NotifyRatePerSecond  float64       `env:"NOTIFY_RATE_PER_SECOND" envDefault:"5"`

	// Tracking Config
	TrackingUpdateInterval time.Duration `env:"TRACKING_UPDATE_INTERVAL" envDefault:"30s"`
	TrackingHistoryLimit   int           `env:"TRACKING_HISTORY_LIMIT" envDefault:"500"`
	PositionTimeout        time.Duration `env:"POSITION_TIMEOUT" envDefault:"5s"`
	FixMaxAge              time.Duration `env:"FIX_MAX_AGE" envDefault:"1m"`
	LowBatteryThreshold    float64       `env:"LOW_BATTERY_THRESHOLD" envDefault:"20"`

	// Geofence cache
	GeofenceCacheTTL time.Duration `env:"GEOFENCE_CACHE_TTL" envDefault:"5m"`

	// MQTT device bridge, выключен если брокер не задан
	MQTTBroker      string `env:"MQTT_BROKER"`
	MQTTClientID    string `env:"MQTT_CLIENT_ID" envDefault:"safezone-tracking"`
	MQTTUsername    string `env:"MQTT_USERNAME"`
	MQTTPassword    string `env:"MQTT_PASSWORD"`
	MQTTTopicPrefix string `env:"MQTT_TOPIC_PREFIX" envDefault:"care"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "json"),
		DBMaxConns:             getEnvAsInt("DB_MAX_CONNS", 10),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		RedisPoolSize:          getEnvAsInt("REDIS_POOL_SIZE", 10),
		NotifyWebhookURL:       os.Getenv("NOTIFY_WEBHOOK_URL"),
		NotifyWebhookSecret:    os.Getenv("NOTIFY_WEBHOOK_SECRET"),
		NotifyWebhookTimeout:   getEnvAsDuration("NOTIFY_WEBHOOK_TIMEOUT", 5*time.Second),
		NotifyMaxRetries:       getEnvAsInt("NOTIFY_MAX_RETRIES", 3),
		NotifyBaseDelay:        getEnvAsDuration("NOTIFY_BASE_DELAY", time.Second),
		NotifyRatePerSecond:    getEnvAsFloat("NOTIFY_RATE_PER_SECOND", 5),
		TrackingUpdateInterval: getEnvAsDuration("TRACKING_UPDATE_INTERVAL", 30*time.Second),
		TrackingHistoryLimit:   getEnvAsInt("TRACKING_HISTORY_LIMIT", 500),
		PositionTimeout:        getEnvAsDuration("POSITION_TIMEOUT", 5*time.Second),
		FixMaxAge:              getEnvAsDuration("FIX_MAX_AGE", time.Minute),
		LowBatteryThreshold:    getEnvAsFloat("LOW_BATTERY_THRESHOLD", 20),
		GeofenceCacheTTL:       getEnvAsDuration("GEOFENCE_CACHE_TTL", 5*time.Minute),
		MQTTBroker:             os.Getenv("MQTT_BROKER"),
		MQTTClientID:           getEnv("MQTT_CLIENT_ID", "safezone-tracking"),
		MQTTUsername:           os.Getenv("MQTT_USERNAME"),
		MQTTPassword:           os.Getenv("MQTT_PASSWORD"),
		MQTTTopicPrefix:        getEnv("MQTT_TOPIC_PREFIX", "care"),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.TrackingHistoryLimit < 1 {
		return nil, fmt.Errorf("TRACKING_HISTORY_LIMIT must be positive, got %d", cfg.TrackingHistoryLimit)
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

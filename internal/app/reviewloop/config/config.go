package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	Verification VerificationConfig
	Storage      StorageConfig
	Session      SessionConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8084)
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (формат: host:port)
	Topic   string   // Топик для событий REVIEW_SUBMITTED
}

type VerificationConfig struct {
	URL        string // Базовый URL сервиса верификации заказов
	TimeoutSec int
}

type StorageConfig struct {
	URL        string // Базовый URL хранилища скриншотов
	Bucket     string
	TimeoutSec int
}

type SessionConfig struct {
	TTL      time.Duration // Время жизни сессии воркфлоу; продлевается на каждом шаге
	CacheTTL time.Duration // TTL кеша кампаний
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8084"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "reviewloop"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "review_events"),
		},
		Verification: VerificationConfig{
			URL:        getEnv("VERIFICATION_URL", "http://localhost:8090"),
			TimeoutSec: getEnvInt("VERIFICATION_TIMEOUT_SEC", 15),
		},
		Storage: StorageConfig{
			URL:        getEnv("STORAGE_URL", "http://localhost:8091"),
			Bucket:     getEnv("STORAGE_BUCKET", "review-screenshots"),
			TimeoutSec: getEnvInt("STORAGE_TIMEOUT_SEC", 30),
		},
		Session: SessionConfig{
			TTL:      time.Duration(getEnvInt("SESSION_TTL_MIN", 30)) * time.Minute,
			CacheTTL: time.Duration(getEnvInt("CAMPAIGN_CACHE_TTL_MIN", 10)) * time.Minute,
		},
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full service configuration, built once at startup.
type Config struct {
	Addr       string
	AdminToken string

	Engine   EngineConfig
	Reading  ReadingConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Feedback FeedbackConfig
	Kafka    KafkaConfig
}

// EngineConfig points at the external chart-construction engine.
type EngineConfig struct {
	URL     string
	Timeout time.Duration
}

// ReadingConfig points at the AI narrative collaborator.
type ReadingConfig struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// CacheConfig bounds the recent-search cache.
type CacheConfig struct {
	TTL     time.Duration
	RecentN int
}

// RedisConfig configures the optional Redis-backed cache. An empty URL means
// the in-memory cache is used instead.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FeedbackConfig configures the optional Postgres feedback store. An empty
// DSN means feedback stays in memory.
type FeedbackConfig struct {
	PostgresDSN string
}

// KafkaConfig configures the optional audit event sink. No brokers means
// audit events stay in the in-process store.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds the configuration from environment variables so main stays
// lean. Every value has a development default.
func FromEnv() Config {
	return Config{
		Addr:       envOr("ZIWEI_ADDR", ":8080"),
		AdminToken: os.Getenv("ZIWEI_ADMIN_TOKEN"),
		Engine: EngineConfig{
			URL:     envOr("ZIWEI_ENGINE_URL", "http://localhost:3100"),
			Timeout: envDuration("ZIWEI_ENGINE_TIMEOUT", 10*time.Second),
		},
		Reading: ReadingConfig{
			URL:     os.Getenv("ZIWEI_READING_URL"),
			APIKey:  os.Getenv("ZIWEI_READING_API_KEY"),
			Model:   envOr("ZIWEI_READING_MODEL", "gpt-4o-mini"),
			Timeout: envDuration("ZIWEI_READING_TIMEOUT", 60*time.Second),
		},
		Cache: CacheConfig{
			TTL:     envDuration("ZIWEI_CACHE_TTL", 24*time.Hour),
			RecentN: envInt("ZIWEI_CACHE_RECENT", 10),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("ZIWEI_REDIS_URL"),
			PoolSize:     envInt("ZIWEI_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("ZIWEI_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("ZIWEI_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("ZIWEI_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("ZIWEI_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Feedback: FeedbackConfig{
			PostgresDSN: os.Getenv("ZIWEI_POSTGRES_DSN"),
		},
		Kafka: KafkaConfig{
			Brokers: envList("ZIWEI_KAFKA_BROKERS"),
			Topic:   envOr("ZIWEI_KAFKA_TOPIC", "ziwei.audit"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

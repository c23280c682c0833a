package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	DatabaseURL   string
	JWTSigningKey string
	StationCount  int

	Redis RedisConfig
	Cache CacheConfig
	Kafka KafkaConfig
}

// RedisConfig configures the optional Redis connection.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// CacheConfig tunes the dashboard read cache.
type CacheConfig struct {
	TTL             time.Duration
	RefreshInterval time.Duration
}

// KafkaConfig configures the optional audit event relay.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	RelayInterval time.Duration
}

// DefaultStationCount matches the fixed roster of polling stations.
const DefaultStationCount = 82

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("TALLYBOARD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	stationCount := intFromEnv("TALLYBOARD_STATION_COUNT", DefaultStationCount)

	topic := os.Getenv("AUDIT_TOPIC")
	if topic == "" {
		topic = "tallyboard.audit"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),
		StationCount:  stationCount,
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intFromEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: intFromEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationFromEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationFromEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationFromEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Cache: CacheConfig{
			TTL:             durationFromEnv("TURNOUT_CACHE_TTL", time.Minute),
			RefreshInterval: durationFromEnv("TURNOUT_CACHE_REFRESH_INTERVAL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:       brokers,
			Topic:         topic,
			RelayInterval: durationFromEnv("AUDIT_RELAY_INTERVAL", 10*time.Second),
		},
	}
}

func intFromEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

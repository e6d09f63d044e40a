package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all app configuration.
type Config struct {
	// Server
	HTTPAddr string

	// Postgres; empty DSN runs the engine on the in-memory repository.
	PostgresDSN string

	// Redis; empty addr disables the cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTLSec   int

	// Kafka; empty broker list disables event publishing.
	KafkaBrokers []string
	KafkaTopic   string

	Debug bool
}

// LoadConfig loads configuration from environment variables, with an
// optional .env file.
func LoadConfig() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		PostgresDSN:   getEnv("POSTGRES_DSN", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTLSec:   getEnvAsInt("CACHE_TTL_SEC", 300),
		KafkaBrokers:  getEnvAsSlice("KAFKA_BROKERS", nil),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "dex-events"),
		Debug:         getEnvAsBool("DEBUG", false),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvAsSlice(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}

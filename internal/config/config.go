package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Backend names a key-value persistence backend.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMongo  Backend = "mongo"
	BackendMemory Backend = "memory"
)

// DefaultDailyGoal is the questions-per-day goal for new learners.
const DefaultDailyGoal = 20

// Config holds runtime settings resolved from .env and the environment.
type Config struct {
	Backend     Backend
	DBPath      string // empty means the XDG default
	RedisAddr   string
	RedisPrefix string
	MongoURI    string
	MongoDB     string
	UserKey     string
	LogMode     string
	DailyGoal   int
}

// Load reads an optional .env file from the working directory, then the
// process environment. Variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Backend:     Backend(strings.ToLower(getEnvOrDefault("PREPIZ_BACKEND", string(BackendSQLite)))),
		DBPath:      os.Getenv("PREPIZ_DB"),
		RedisAddr:   getEnvOrDefault("PREPIZ_REDIS_ADDR", "localhost:6379"),
		RedisPrefix: getEnvOrDefault("PREPIZ_REDIS_PREFIX", "prepiz:"),
		MongoURI:    getEnvOrDefault("PREPIZ_MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnvOrDefault("PREPIZ_MONGO_DB", "prepiz"),
		UserKey:     getEnvOrDefault("PREPIZ_USER", "default"),
		LogMode:     getEnvOrDefault("PREPIZ_LOG_MODE", "dev"),
		DailyGoal:   DefaultDailyGoal,
	}

	if v := os.Getenv("PREPIZ_DAILY_GOAL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("PREPIZ_DAILY_GOAL: want a positive integer, got %q", v)
		}
		cfg.DailyGoal = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configured backend is known.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendRedis, BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if strings.TrimSpace(c.UserKey) == "" {
		return fmt.Errorf("user key must not be empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds runtime settings read from .env and the process environment.
type Config struct {
	Port          string
	Env           string
	DBDriver      string
	DatabaseURL   string
	SessionSecret string
	LogLevel      string
	RandomSeed    uint64
	TemplatesDir  string
	ContentDir    string
	TopCacheTTL   time.Duration
}

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTest        = "test"
)

// Load reads .env (if present) and then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, finding env vars from system")
	}

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		Env:           strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: getEnv("SESSION_SECRET", "secret_key_change_me"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		TemplatesDir:  getEnv("TEMPLATES_DIR", "./web/templates"),
		ContentDir:    getEnv("CONTENT_DIR", "./web/content"),
		TopCacheTTL:   10 * time.Second,
	}

	if seed := os.Getenv("RANDOM_SEED"); seed != "" {
		v, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			logrus.Warnf("Invalid RANDOM_SEED %q, using time-based seed", seed)
		} else {
			cfg.RandomSeed = v
		}
	}

	if ttl := os.Getenv("TOP_CACHE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			logrus.Warnf("Invalid TOP_CACHE_TTL %q, using %s", ttl, cfg.TopCacheTTL)
		} else {
			cfg.TopCacheTTL = d
		}
	}

	if cfg.DatabaseURL == "" {
		// Fallback for local dev if not set
		if cfg.DBDriver == "sqlite" {
			cfg.DatabaseURL = "singmeasong.db"
		} else {
			cfg.DatabaseURL = "host=localhost user=postgres password=postgres dbname=singmeasong port=5432 sslmode=disable"
		}
	}

	return cfg
}

// ResetEnabled reports whether the truncate-everything endpoint may be served.
func (c Config) ResetEnabled() bool {
	return c.Env == EnvTest || c.Env == EnvDevelopment
}

// SetupLogger applies LogLevel and picks a formatter for the environment.
func (c Config) SetupLogger() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if c.Env == EnvProduction {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

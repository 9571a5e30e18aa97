package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DBURI               string
	DBName              string
	RedisURL            string // optional; enables request stats, the error log and the shared event lock
	LogLevel            string
	AdminKey            string // guards /health/reset and /api/admin/*
	FrontendURLEndsWith string
	DevPassword         string
	UsersPageLimit      int
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "5000")
	v.SetDefault("DB_URI", "mongodb://localhost:27017")
	v.SetDefault("DB_NAME", "mydatabase")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("USERS_PAGE_LIMIT", 10)

	env := v.GetString("APP_ENV")
	if env == "" {
		env = v.GetString("NODE_ENV")
	}
	if env == "" {
		env = "development"
	}

	limit := v.GetInt("USERS_PAGE_LIMIT")
	if limit <= 0 {
		limit = 10
	}

	return &Config{
		Env:                 env,
		Port:                v.GetString("PORT"),
		DBURI:               v.GetString("DB_URI"),
		DBName:              v.GetString("DB_NAME"),
		RedisURL:            v.GetString("REDIS_URL"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		AdminKey:            v.GetString("ADMIN_KEY"),
		FrontendURLEndsWith: v.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         v.GetString("DEV_PASSWORD"),
		UsersPageLimit:      limit,
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SetupLogger configures the global zerolog logger: JSON in production, a console
// writer otherwise.
func SetupLogger(cfg *Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// internal/config/config.go
//
// Process configuration from the environment.
// Responsibilities:
//   - Loading .env when present (godotenv); real env vars win.
//   - Reading every setting with a default.
//   - Validating the result before anything is opened.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/trongtricoder/Footy-Feud/internal/database"
	"github.com/trongtricoder/Footy-Feud/internal/logger"
	"github.com/trongtricoder/Footy-Feud/internal/players"
)

const devJWTSecret = "dev_secret_change_me"

type Config struct {
	Port           string `validate:"required,numeric"`
	LogLevel       string `validate:"oneof=debug info warn error"`
	AppEnv         string `validate:"oneof=dev staging prod"`
	DatabaseType   string `validate:"oneof=sqlite postgres mysql memory"`
	DatabasePath   string `validate:"required_if=DatabaseType sqlite"`
	DatabaseURL    string `validate:"required_if=DatabaseType postgres,required_if=DatabaseType mysql"`
	PlayersFile    string
	DailySalt      string
	DailyTZ        string `validate:"required"`
	Resolution     string `validate:"oneof=exact fuzzy"`
	JWTSecret      string `validate:"required"`
	JWTExpiresDays int    `validate:"gte=1,lte=365"`
	CookieName     string `validate:"required"`
	ClientOrigin   string `validate:"required"`
	Production     bool

	Location *time.Location `validate:"-"`
}

var validate = validator.New()

// Load reads .env (if any) and the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	c := Config{
		Port:           getEnv("PORT", "5175"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		AppEnv:         strings.ToLower(getEnv("APP_ENV", "dev")),
		DatabaseType:   strings.ToLower(getEnv("DATABASE_TYPE", "sqlite")),
		DatabasePath:   getEnv("DATABASE_PATH", "./data/footyfeud.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		PlayersFile:    os.Getenv("PLAYERS_FILE"),
		DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
		DailyTZ:        getEnv("DAILY_TZ", "UTC"),
		Resolution:     strings.ToLower(getEnv("GUESS_RESOLUTION", string(players.ResolveExact))),
		JWTSecret:      getEnv("JWT_SECRET", devJWTSecret),
		CookieName:     getEnv("COOKIE_NAME", "footyfeud_token"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:     os.Getenv("NODE_ENV") == "production",
		JWTExpiresDays: 14,
	}
	if v := os.Getenv("JWT_EXPIRES_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("JWT_EXPIRES_DAYS: %w", err)
		}
		c.JWTExpiresDays = n
	}

	if err := validate.Struct(c); err != nil {
		return Config{}, fmt.Errorf("config validation error: %w", err)
	}
	if c.Production && c.JWTSecret == devJWTSecret {
		return Config{}, errors.New("JWT_SECRET must be set in production")
	}

	loc, err := time.LoadLocation(c.DailyTZ)
	if err != nil {
		return Config{}, fmt.Errorf("DAILY_TZ: %w", err)
	}
	c.Location = loc
	return c, nil
}

// Database returns the connection settings for database.Open.
func (c Config) Database() database.Config {
	return database.Config{Type: c.DatabaseType, Path: c.DatabasePath, URL: c.DatabaseURL}
}

// Logger returns the logger settings.
func (c Config) Logger() *logger.LoggerConfig {
	return &logger.LoggerConfig{Level: c.LogLevel, Env: c.AppEnv}
}

// JWTTTL is the token lifetime.
func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect captures what differs between the supported SQL backends.
type Dialect interface {
	// Name is the migrations subdirectory and the DATABASE_TYPE value.
	Name() string

	// DriverName returns the driver name for sqlx.Open.
	DriverName() string

	// DSN returns the data source name for the connection.
	DSN(cfg Config) (string, error)

	// Configure applies pool settings and session pragmas.
	Configure(db *sqlx.DB, cfg Config) error

	// UpsertStats inserts or replaces one player_stats row.
	// Placeholders: user_key, mode, played, won, current_streak, max_streak,
	// distribution, last_played_date, updated_at.
	UpsertStats() string

	// InsertDailyResult inserts a daily_results row, ignoring a duplicate
	// (user_key, date).
	InsertDailyResult() string
}

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sqlite", "sqlite3", "":
		return sqliteDialect{}, nil
	case "postgres", "postgresql":
		return postgresDialect{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	}
	return nil, fmt.Errorf("unsupported database type: %s", name)
}

func configurePool(db *sqlx.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
}

// ------------------------------- sqlite -------------------------------------

type sqliteDialect struct{}

func (sqliteDialect) Name() string       { return "sqlite" }
func (sqliteDialect) DriverName() string { return "sqlite3" }

func (sqliteDialect) DSN(cfg Config) (string, error) {
	if cfg.Path == "" {
		return "", fmt.Errorf("sqlite: DATABASE_PATH is required")
	}
	if cfg.Path == MemoryPath {
		return MemoryPath, nil
	}
	// Ensure directory exists for ./data/app.db, etc.
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return cfg.Path + "?_busy_timeout=5000&_journal_mode=WAL", nil
}

func (sqliteDialect) Configure(db *sqlx.DB, cfg Config) error {
	if cfg.Path == MemoryPath {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	} else {
		configurePool(db)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return fmt.Errorf("set pragmas: %w", err)
	}
	return nil
}

func (sqliteDialect) UpsertStats() string {
	return `INSERT INTO player_stats
	    (user_key, mode, played, won, current_streak, max_streak, distribution, last_played_date, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (user_key, mode) DO UPDATE SET
	    played = excluded.played,
	    won = excluded.won,
	    current_streak = excluded.current_streak,
	    max_streak = excluded.max_streak,
	    distribution = excluded.distribution,
	    last_played_date = excluded.last_played_date,
	    updated_at = excluded.updated_at`
}

func (sqliteDialect) InsertDailyResult() string {
	return `INSERT OR IGNORE INTO daily_results
	    (user_key, date, secret_index, guesses, won, elapsed_ms, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
}

// ------------------------------ postgres ------------------------------------

type postgresDialect struct{}

func (postgresDialect) Name() string       { return "postgres" }
func (postgresDialect) DriverName() string { return "postgres" }

func (postgresDialect) DSN(cfg Config) (string, error) {
	if cfg.URL == "" {
		return "", fmt.Errorf("postgres: DATABASE_URL is required")
	}
	return cfg.URL, nil
}

func (postgresDialect) Configure(db *sqlx.DB, _ Config) error {
	configurePool(db)
	return nil
}

func (postgresDialect) UpsertStats() string {
	return `INSERT INTO player_stats
	    (user_key, mode, played, won, current_streak, max_streak, distribution, last_played_date, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (user_key, mode) DO UPDATE SET
	    played = EXCLUDED.played,
	    won = EXCLUDED.won,
	    current_streak = EXCLUDED.current_streak,
	    max_streak = EXCLUDED.max_streak,
	    distribution = EXCLUDED.distribution,
	    last_played_date = EXCLUDED.last_played_date,
	    updated_at = EXCLUDED.updated_at`
}

func (postgresDialect) InsertDailyResult() string {
	return `INSERT INTO daily_results
	    (user_key, date, secret_index, guesses, won, elapsed_ms, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (user_key, date) DO NOTHING`
}

// ------------------------------- mysql --------------------------------------

type mysqlDialect struct{}

func (mysqlDialect) Name() string       { return "mysql" }
func (mysqlDialect) DriverName() string { return "mysql" }

func (mysqlDialect) DSN(cfg Config) (string, error) {
	if cfg.URL == "" {
		return "", fmt.Errorf("mysql: DATABASE_URL is required")
	}
	return cfg.URL, nil
}

func (mysqlDialect) Configure(db *sqlx.DB, _ Config) error {
	configurePool(db)
	if _, err := db.Exec("SET FOREIGN_KEY_CHECKS = 1;"); err != nil {
		return err
	}
	return nil
}

func (mysqlDialect) UpsertStats() string {
	return "INSERT INTO player_stats " +
		"(user_key, mode, played, won, current_streak, max_streak, distribution, last_played_date, updated_at) " +
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) " +
		"ON DUPLICATE KEY UPDATE played = VALUES(played), won = VALUES(won), " +
		"current_streak = VALUES(current_streak), max_streak = VALUES(max_streak), " +
		"distribution = VALUES(distribution), last_played_date = VALUES(last_played_date), " +
		"updated_at = VALUES(updated_at)"
}

func (mysqlDialect) InsertDailyResult() string {
	return `INSERT IGNORE INTO daily_results
	    (user_key, date, secret_index, guesses, won, elapsed_ms, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
}

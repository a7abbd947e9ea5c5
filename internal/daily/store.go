// internal/daily/store.go
//
// Persistence of finished daily games.
// Responsibilities:
//   - One row per (user, day); a second insert for the same pair is ignored.
//   - Looking up a user's result for a day (has the puzzle been finished?).
//   - The per-day leaderboard of winners.

package daily

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/trongtricoder/Footy-Feud/internal/database"
)

type Result struct {
	UserKey     string `db:"user_key" json:"userKey"`
	Date        string `db:"date" json:"date"`
	SecretIndex int    `db:"secret_index" json:"secretIndex"`
	Guesses     int    `db:"guesses" json:"guesses"`
	Won         bool   `db:"won" json:"won"`
	ElapsedMs   int64  `db:"elapsed_ms" json:"elapsedMs"`
}

type Store struct{ db *database.DB }

func NewStore(db *database.DB) *Store { return &Store{db: db} }

// Get returns the user's result for date, if one was recorded.
func (s *Store) Get(ctx context.Context, userKey, date string) (Result, bool, error) {
	var r Result
	err := s.db.GetContext(ctx, &r, s.db.Rebind(
		`SELECT user_key, date, secret_index, guesses, won, elapsed_ms
		FROM daily_results WHERE user_key = ? AND date = ?`),
		userKey, date,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, err
	}
	return r, true, nil
}

func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(s.db.Dialect.InsertDailyResult()),
		r.UserKey, r.Date, r.SecretIndex, r.Guesses, r.Won, r.ElapsedMs,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

type LBRow struct {
	UserKey   string `db:"user_key" json:"userKey"`
	Guesses   int    `db:"guesses" json:"guesses"`
	ElapsedMs int64  `db:"elapsed_ms" json:"elapsedMs"`
}

// Leaderboard lists the day's winners, fewest guesses first, then fastest.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	out := []LBRow{}
	err := s.db.SelectContext(ctx, &out, s.db.Rebind(
		`SELECT user_key, guesses, elapsed_ms
		FROM daily_results
		WHERE date = ? AND won = ?
		ORDER BY guesses ASC, elapsed_ms ASC, created_at ASC
		LIMIT ?`), date, true, limit,
	)
	return out, err
}

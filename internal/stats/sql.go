package stats

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/trongtricoder/Footy-Feud/internal/database"
	"github.com/trongtricoder/Footy-Feud/internal/game"
)

// SQLStore keeps stats in the player_stats table. The distribution is stored
// as a JSON object keyed by guess count.
type SQLStore struct{ db *database.DB }

func NewSQLStore(db *database.DB) *SQLStore { return &SQLStore{db: db} }

type statsRow struct {
	Played         int    `db:"played"`
	Won            int    `db:"won"`
	CurrentStreak  int    `db:"current_streak"`
	MaxStreak      int    `db:"max_streak"`
	Distribution   string `db:"distribution"`
	LastPlayedDate string `db:"last_played_date"`
}

func (s *SQLStore) Get(ctx context.Context, userKey string, mode game.Mode) (PlayerStats, bool, error) {
	var row statsRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(
		`SELECT played, won, current_streak, max_streak, distribution, last_played_date
		FROM player_stats WHERE user_key = ? AND mode = ?`), userKey, string(mode))
	if errors.Is(err, sql.ErrNoRows) {
		return PlayerStats{}, false, nil
	}
	if err != nil {
		return PlayerStats{}, false, err
	}

	ps := PlayerStats{
		Played:         row.Played,
		Won:            row.Won,
		CurrentStreak:  row.CurrentStreak,
		MaxStreak:      row.MaxStreak,
		LastPlayedDate: row.LastPlayedDate,
	}
	if row.Distribution != "" {
		if err := json.Unmarshal([]byte(row.Distribution), &ps.Distribution); err != nil {
			return PlayerStats{}, false, fmt.Errorf("decode distribution: %w", err)
		}
	}
	ps.ensureBuckets()
	return ps, true, nil
}

func (s *SQLStore) Put(ctx context.Context, userKey string, mode game.Mode, ps PlayerStats) error {
	ps.ensureBuckets()
	dist, err := json.Marshal(ps.Distribution)
	if err != nil {
		return fmt.Errorf("encode distribution: %w", err)
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(s.db.Dialect.UpsertStats()),
		userKey, string(mode), ps.Played, ps.Won, ps.CurrentStreak, ps.MaxStreak,
		string(dist), ps.LastPlayedDate, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

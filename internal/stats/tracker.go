// internal/stats/tracker.go
//
// Tracker applies finished games and streak checks to a Store.
// Responsibilities:
//   - Load: stats for a user and mode, zeroed when absent.
//   - RecordTerminal: game.Recorder implementation (load, fold, put).
//   - Reconcile: the once-per-session-start missed-day check for daily stats.
//
// Notes:
//   - A daily game is recorded at most once per day key per user.
//   - Store failures are wrapped in ErrPersistence.

package stats

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/trongtricoder/Footy-Feud/internal/game"
)

var ErrPersistence = errors.New("stats: persistence failed")

type Tracker struct {
	store Store
	log   zerolog.Logger
	mu    sync.Mutex // serializes read-modify-write cycles
}

func NewTracker(store Store, logger zerolog.Logger) *Tracker {
	return &Tracker{
		store: store,
		log:   logger.With().Str("component", "stats").Logger(),
	}
}

// Load returns the user's stats for mode, or New() when none are stored.
func (t *Tracker) Load(ctx context.Context, userKey string, mode game.Mode) (PlayerStats, error) {
	ps, ok, err := t.store.Get(ctx, userKey, mode)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if !ok {
		return New(), nil
	}
	return ps, nil
}

// RecordTerminal is invoked by the session while it holds its own lock, so
// it reads the session fields directly.
func (t *Tracker) RecordTerminal(ctx context.Context, s *game.Session) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	ps, err := t.Load(ctx, s.UserKey, s.Mode)
	if err != nil {
		t.log.Warn().Err(err).Str("user", s.UserKey).Str("game", s.ID).Msg("load stats")
		return err
	}
	if s.Mode == game.ModeDaily && ps.LastPlayedDate == s.Date {
		t.log.Debug().Str("user", s.UserKey).Str("date", s.Date).Msg("daily already recorded")
		return nil
	}

	// Dated by the puzzle's day, not by when the last guess landed.
	ps.RecordTerminal(s.Mode, s.Status, len(s.Guesses), s.Date)
	if err := t.store.Put(ctx, s.UserKey, s.Mode, ps); err != nil {
		err = fmt.Errorf("%w: %w", ErrPersistence, err)
		t.log.Warn().Err(err).Str("user", s.UserKey).Str("game", s.ID).Msg("save stats")
		return err
	}
	t.log.Info().
		Str("user", s.UserKey).
		Str("mode", string(s.Mode)).
		Str("status", string(s.Status)).
		Int("guesses", len(s.Guesses)).
		Int("streak", ps.CurrentStreak).
		Msg("game recorded")
	return nil
}

// Reconcile runs ReconcileStreak on the user's daily stats for today and
// stores the result when the streak was reset.
func (t *Tracker) Reconcile(ctx context.Context, userKey, today string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ps, ok, err := t.store.Get(ctx, userKey, game.ModeDaily)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if !ok || !ps.ReconcileStreak(today) {
		return false, nil
	}
	if err := t.store.Put(ctx, userKey, game.ModeDaily, ps); err != nil {
		return true, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	t.log.Info().Str("user", userKey).Str("today", today).Msg("daily streak reset")
	return true, nil
}

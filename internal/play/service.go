// internal/play/service.go
//
// Game orchestration shared by the HTTP server and the terminal client.
// Responsibilities:
//   - Start: reconcile the daily streak, then resume, lock or create the session.
//   - Guess: ownership check, apply the guess, save, and record daily results.
//   - Stats: per-mode summaries for a user.
//
// Notes:
//   - Daily secrets come from daily.Pick over the roster order; random secrets
//     from the roster's general-purpose source.
//   - A user who already finished today's daily gets a locked session back.
//   - Results is optional; without it daily locking falls back to the stats
//     record and the session store.

package play

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/trongtricoder/Footy-Feud/internal/daily"
	"github.com/trongtricoder/Footy-Feud/internal/game"
	"github.com/trongtricoder/Footy-Feud/internal/players"
	"github.com/trongtricoder/Footy-Feud/internal/stats"
	"github.com/trongtricoder/Footy-Feud/internal/store"
)

var ErrForbidden = errors.New("game belongs to another player")

// ResultStore persists finished daily games (daily.Store).
type ResultStore interface {
	Get(ctx context.Context, userKey, date string) (daily.Result, bool, error)
	InsertResult(ctx context.Context, r daily.Result) error
	Leaderboard(ctx context.Context, date string, limit int) ([]daily.LBRow, error)
}

type Options struct {
	Salt     string
	Location *time.Location
	Resolver game.Resolver
	Results  ResultStore
	Now      func() time.Time
}

type Service struct {
	roster   *players.Roster
	sessions store.Store
	tracker  *stats.Tracker
	opts     Options
	log      zerolog.Logger
}

func New(roster *players.Roster, sessions store.Store, tracker *stats.Tracker, opts Options, logger zerolog.Logger) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Resolver == nil {
		opts.Resolver = roster.Resolver(players.ResolveExact)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		roster:   roster,
		sessions: sessions,
		tracker:  tracker,
		opts:     opts,
		log:      logger.With().Str("component", "play").Logger(),
	}
}

// Today returns the current day key in the configured zone.
func (s *Service) Today() string { return daily.DateKey(s.opts.Now(), s.opts.Location) }

// Roster exposes the player list for search endpoints.
func (s *Service) Roster() *players.Roster { return s.roster }

// Start opens a game for userKey in mode.
func (s *Service) Start(ctx context.Context, userKey string, mode game.Mode) (*game.Session, error) {
	now := s.opts.Now()
	today := daily.DateKey(now, s.opts.Location)

	if _, err := s.tracker.Reconcile(ctx, userKey, today); err != nil {
		s.log.Warn().Err(err).Str("user", userKey).Msg("reconcile streak")
	}

	if mode == game.ModeRandom {
		secret := s.roster.Random()
		sess := game.New(userKey, mode, today, secret, -1, now)
		return sess, s.save(ctx, sess)
	}

	if sess, err := s.sessions.FindLatest(ctx, userKey, game.ModeDaily, today); err == nil {
		return sess, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	secret, idx, err := daily.Pick(s.roster.All(), today, s.opts.Salt)
	if err != nil {
		return nil, err
	}
	locked, status, err := s.finishedToday(ctx, userKey, today)
	if err != nil {
		return nil, err
	}
	var sess *game.Session
	if locked {
		sess = game.NewLocked(userKey, game.ModeDaily, today, secret, idx, now, status)
		s.log.Debug().Str("user", userKey).Str("date", today).Msg("daily already played")
	} else {
		sess = game.New(userKey, game.ModeDaily, today, secret, idx, now)
	}
	return sess, s.save(ctx, sess)
}

// finishedToday reports whether the user already finished the day's puzzle,
// and how it ended when that is known.
func (s *Service) finishedToday(ctx context.Context, userKey, today string) (bool, game.Status, error) {
	if s.opts.Results != nil {
		res, ok, err := s.opts.Results.Get(ctx, userKey, today)
		if err != nil {
			return false, "", fmt.Errorf("daily result: %w", err)
		}
		if ok {
			if res.Won {
				return true, game.StatusWon, nil
			}
			return true, game.StatusLost, nil
		}
	}
	ps, err := s.tracker.Load(ctx, userKey, game.ModeDaily)
	if err != nil {
		return false, "", err
	}
	if ps.LastPlayedDate == today {
		return true, game.StatusInProgress, nil
	}
	return false, "", nil
}

func (s *Service) save(ctx context.Context, sess *game.Session) error {
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.log.Info().
		Str("game", sess.ID).
		Str("user", sess.UserKey).
		Str("mode", string(sess.Mode)).
		Str("date", sess.Date).
		Bool("locked", sess.Locked).
		Msg("game started")
	return nil
}

// Session returns the user's session by id.
func (s *Service) Session(ctx context.Context, userKey, id string) (*game.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.UserKey != userKey {
		return nil, ErrForbidden
	}
	return sess, nil
}

// Guess applies query to the user's session.
func (s *Service) Guess(ctx context.Context, userKey, id, query string) (*game.Session, game.Outcome, error) {
	sess, err := s.Session(ctx, userKey, id)
	if err != nil {
		return nil, game.Outcome{}, err
	}

	out, err := sess.ApplyGuess(ctx, s.opts.Resolver, s.tracker, query)
	if err != nil {
		return sess, out, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return sess, out, fmt.Errorf("save session: %w", err)
	}

	if out.Finished && sess.Mode == game.ModeDaily && s.opts.Results != nil {
		res := daily.Result{
			UserKey:     userKey,
			Date:        sess.Date,
			SecretIndex: sess.SecretIndex,
			Guesses:     out.Attempt,
			Won:         out.Status == game.StatusWon,
			ElapsedMs:   sess.Elapsed(s.opts.Now()).Milliseconds(),
		}
		if err := s.opts.Results.InsertResult(ctx, res); err != nil && out.PersistErr == nil {
			out.PersistErr = fmt.Errorf("%w: %w", stats.ErrPersistence, err)
		}
	}
	if out.PersistErr != nil {
		s.log.Warn().Err(out.PersistErr).Str("game", sess.ID).Str("user", userKey).Msg("result not saved")
	}
	return sess, out, nil
}

// Stats loads every mode's summary for the user concurrently.
func (s *Service) Stats(ctx context.Context, userKey string) ([]stats.Summary, error) {
	out := make([]stats.Summary, len(game.Modes))
	g, ctx := errgroup.WithContext(ctx)
	for i, mode := range game.Modes {
		g.Go(func() error {
			ps, err := s.tracker.Load(ctx, userKey, mode)
			if err != nil {
				return err
			}
			out[i] = stats.Summarize(mode, ps)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Leaderboard returns the day's winners, or none without a result store.
func (s *Service) Leaderboard(ctx context.Context, date string, limit int) ([]daily.LBRow, error) {
	if s.opts.Results == nil {
		return []daily.LBRow{}, nil
	}
	return s.opts.Results.Leaderboard(ctx, date, limit)
}

// internal/game/engine.go
//
// Core game engine for a single FootyFeud session.
// Responsibilities:
//   - Create new sessions for a mode, day and secret.
//   - Resolve, validate and apply guesses (unknown player, repeat, finished game).
//   - Score guesses with Evaluate.
//   - Track state transitions: in_progress → won/lost, and report the
//     transition to a Recorder exactly once.
//
// Notes:
//   - Rejected guesses never change the session.
//   - A Recorder failure does not undo the transition; it is returned in
//     Outcome.PersistErr for the caller to log and surface.
package game

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/trongtricoder/Footy-Feud/internal/players"
)

var (
	ErrNotFound        = errors.New("player not found")
	ErrDuplicateGuess  = errors.New("player already guessed")
	ErrAlreadyTerminal = errors.New("game finished")
)

// Resolver turns a free-text guess into a known player.
type Resolver interface {
	Resolve(query string) (players.Player, bool)
}

// Recorder is told about a session's terminal transition.
type Recorder interface {
	RecordTerminal(ctx context.Context, s *Session) error
}

// Outcome describes an accepted guess.
type Outcome struct {
	Verdict    Verdict
	Status     Status
	Attempt    int   // 1-based number of this guess
	Remaining  int   // guesses left after this one
	Finished   bool  // this guess ended the game
	PersistErr error // recorder failure, if any
}

// New constructs a session for secret, which sits at index idx of the roster.
func New(userKey string, mode Mode, date string, secret players.Player, idx int, now time.Time) *Session {
	return &Session{
		ID:          uuid.NewString(),
		UserKey:     userKey,
		Mode:        mode,
		Date:        date,
		SecretIndex: idx,
		Secret:      secret,
		Guesses:     []players.Player{},
		Verdicts:    []Verdict{},
		Status:      StatusInProgress,
		StartedAt:   now.UTC(),
	}
}

// NewLocked constructs a session for a game the user already finished.
// It reports status and rejects every guess with ErrAlreadyTerminal.
func NewLocked(userKey string, mode Mode, date string, secret players.Player, idx int, now time.Time, status Status) *Session {
	s := New(userKey, mode, date, secret, idx, now)
	s.Locked = true
	s.Status = status
	return s
}

// ApplyGuess resolves query and applies it to the session.
//
// Checks run in order: the query must resolve to a player (ErrNotFound), the
// player must not have been guessed before (ErrDuplicateGuess), and the game
// must still be open (ErrAlreadyTerminal). An accepted guess is evaluated,
// the status advanced, and rec invoked when the game ends.
func (s *Session) ApplyGuess(ctx context.Context, r Resolver, rec Recorder, query string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guess, ok := r.Resolve(query)
	if !ok {
		return Outcome{}, ErrNotFound
	}
	for _, g := range s.Guesses {
		if g.Name == guess.Name {
			return Outcome{}, ErrDuplicateGuess
		}
	}
	if s.Status.Terminal() || s.Locked {
		return Outcome{}, ErrAlreadyTerminal
	}

	v := Evaluate(guess, s.Secret)
	s.Guesses = append(s.Guesses, guess)
	s.Verdicts = append(s.Verdicts, v)

	if v.Correct {
		s.Status = StatusWon
	} else if len(s.Guesses) >= MaxGuesses {
		s.Status = StatusLost
	}

	out := Outcome{
		Verdict:   v,
		Status:    s.Status,
		Attempt:   len(s.Guesses),
		Remaining: MaxGuesses - len(s.Guesses),
		Finished:  s.Status.Terminal(),
	}
	if out.Finished {
		s.FinishedAt = time.Now().UTC()
		if rec != nil {
			out.PersistErr = rec.RecordTerminal(ctx, s)
		}
	}
	return out, nil
}

// GuessCount returns how many guesses were accepted.
func (s *Session) GuessCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Guesses)
}

// Remaining returns the number of guesses left.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining()
}

func (s *Session) remaining() int {
	if s.Status.Terminal() || s.Locked {
		return 0
	}
	return MaxGuesses - len(s.Guesses)
}

// History returns a copy of the verdicts so far. Finished sessions keep theirs.
func (s *Session) History() []Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Verdict(nil), s.Verdicts...)
}

// CurrentStatus returns the status under the session lock.
func (s *Session) CurrentStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Status
}

// Elapsed is the time from start to finish, or to now while in progress.
func (s *Session) Elapsed(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.FinishedAt.IsZero() {
		return s.FinishedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}

// Snapshot copies the session for display. The secret is only included once
// the game is over.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:          s.ID,
		Mode:        s.Mode,
		Date:        s.Date,
		Status:      s.Status,
		Locked:      s.Locked,
		MaxGuesses:  MaxGuesses,
		Remaining:   s.remaining(),
		Verdicts:    append([]Verdict{}, s.Verdicts...),
		StartedAt:   s.StartedAt,
		SecretIndex: s.SecretIndex,
		UserKey:     s.UserKey,
	}
	if s.Status.Terminal() {
		secret := s.Secret
		snap.Secret = &secret
	}
	if !s.FinishedAt.IsZero() {
		fin := s.FinishedAt
		snap.FinishedAt = &fin
	}
	return snap
}

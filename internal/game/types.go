// internal/game/types.go
//
// Core type definitions for the FootyFeud game engine.
// Defines:
//   - Tier: per-attribute disclosure level of a guess (exact/near/none).
//   - Direction: where the secret's age lies relative to the guess.
//   - Verdict: the evaluation of one guessed player against the secret.
//   - Mode, Status: the game variant and its lifecycle state.
//   - Session: state for a single in-progress or finished game.

package game

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/trongtricoder/Footy-Feud/internal/players"
)

// MaxGuesses is the fixed number of attempts per session.
const MaxGuesses = 6

// NearAgeGap is the largest age difference still reported as near.
const NearAgeGap = 2

// Tier represents the disclosure level for a single attribute comparison.
// Possible values:
//   - "exact": the guess matches the secret.
//   - "near":  close but not equal (age only, within NearAgeGap years).
//   - "none":  no match.
type Tier string

const (
	TierExact Tier = "exact"
	TierNear  Tier = "near"
	TierNone  Tier = "none"
)

// Direction tells which way the secret's age lies from the guess.
type Direction string

const (
	DirHigher Direction = "higher" // secret is older than the guess
	DirLower  Direction = "lower"  // secret is younger than the guess
	DirEqual  Direction = "equal"
)

// Verdict is the result of comparing one guess with the secret.
type Verdict struct {
	Guess        players.Player `json:"guess"`
	Nationality  Tier           `json:"nationality"`
	League       Tier           `json:"league"`
	Club         Tier           `json:"club"`
	Position     Tier           `json:"position"`
	Age          Tier           `json:"age"`
	AgeDirection Direction      `json:"ageDirection"`
	Correct      bool           `json:"correct"`
}

type Mode string

const (
	ModeDaily  Mode = "daily"
	ModeRandom Mode = "random"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeDaily, ModeRandom}

// ParseMode accepts "daily" or "random" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDaily:
		return ModeDaily, nil
	case ModeRandom:
		return ModeRandom, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// Session holds the state of a single game.
//
// All mutation goes through ApplyGuess; readers that may race with a guess
// use Snapshot.
type Session struct {
	mu sync.Mutex

	ID          string           // Unique game identifier (uuid).
	UserKey     string           // Owner (user id or anonymous id).
	Mode        Mode             // daily | random.
	Date        string           // Calendar day key the session belongs to.
	SecretIndex int              // Index of the secret in the roster order.
	Secret      players.Player   // The player to guess.
	Guesses     []players.Player // Accepted guesses in submission order.
	Verdicts    []Verdict        // One verdict per guess, same order.
	Status      Status           // in_progress | won | lost.
	Locked      bool             // Daily puzzle already finished by this user today.
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Snapshot is a consistent, copy-on-read view of a Session.
type Snapshot struct {
	ID          string          `json:"gameId"`
	Mode        Mode            `json:"mode"`
	Date        string          `json:"date"`
	Status      Status          `json:"status"`
	Locked      bool            `json:"locked"`
	MaxGuesses  int             `json:"maxGuesses"`
	Remaining   int             `json:"remaining"`
	Verdicts    []Verdict       `json:"guesses"`
	Secret      *players.Player `json:"secret,omitempty"`
	StartedAt   time.Time       `json:"startedAt"`
	FinishedAt  *time.Time      `json:"finishedAt,omitempty"`
	SecretIndex int             `json:"-"`
	UserKey     string          `json:"-"`
}

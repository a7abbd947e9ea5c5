// internal/stats/stats.go
//
// Per-user, per-mode statistics.
// Responsibilities:
//   - Folding a finished game into the counters, streaks and guess distribution.
//   - Resetting a daily streak once a calendar day has been skipped.

package stats

import (
	"github.com/trongtricoder/Footy-Feud/internal/daily"
	"github.com/trongtricoder/Footy-Feud/internal/game"
)

// PlayerStats is the persisted record for one user and mode.
//
// MaxStreak and LastPlayedDate are only maintained for daily games.
type PlayerStats struct {
	Played         int         `json:"played"`
	Won            int         `json:"won"`
	CurrentStreak  int         `json:"currentStreak"`
	MaxStreak      int         `json:"maxStreak"`
	Distribution   map[int]int `json:"distribution"`
	LastPlayedDate string      `json:"lastPlayedDate"`
}

// New returns zeroed stats with every distribution bucket present.
func New() PlayerStats {
	var s PlayerStats
	s.ensureBuckets()
	return s
}

func (s *PlayerStats) ensureBuckets() {
	if s.Distribution == nil {
		s.Distribution = make(map[int]int, game.MaxGuesses)
	}
	for k := 1; k <= game.MaxGuesses; k++ {
		if _, ok := s.Distribution[k]; !ok {
			s.Distribution[k] = 0
		}
	}
}

// Clone returns a deep copy.
func (s PlayerStats) Clone() PlayerStats {
	out := s
	out.Distribution = make(map[int]int, len(s.Distribution))
	for k, v := range s.Distribution {
		out.Distribution[k] = v
	}
	out.ensureBuckets()
	return out
}

// RecordTerminal folds one finished game into s. today is the day key the
// game belongs to and is only stored for daily games.
func (s *PlayerStats) RecordTerminal(mode game.Mode, status game.Status, guessCount int, today string) {
	s.ensureBuckets()
	s.Played++

	switch status {
	case game.StatusWon:
		s.Won++
		s.CurrentStreak++
		if guessCount >= 1 && guessCount <= game.MaxGuesses {
			s.Distribution[guessCount]++
		}
		if mode == game.ModeDaily && s.CurrentStreak > s.MaxStreak {
			s.MaxStreak = s.CurrentStreak
		}
	case game.StatusLost:
		s.CurrentStreak = 0
	}

	if mode == game.ModeDaily {
		s.LastPlayedDate = today
	}
}

// ReconcileStreak zeroes a live streak whose last game was neither today nor
// yesterday. It reports whether anything changed.
func (s *PlayerStats) ReconcileStreak(today string) bool {
	if s.CurrentStreak == 0 || s.LastPlayedDate == today {
		return false
	}
	if yesterday, err := daily.PrevDateKey(today); err == nil && s.LastPlayedDate == yesterday {
		return false
	}
	s.CurrentStreak = 0
	return true
}

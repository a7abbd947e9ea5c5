package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trongtricoder/Footy-Feud/internal/game"
)

func TestNewHasAllBuckets(t *testing.T) {
	s := New()
	for k := 1; k <= game.MaxGuesses; k++ {
		v, ok := s.Distribution[k]
		assert.True(t, ok, "bucket %d", k)
		assert.Zero(t, v)
	}
	assert.Zero(t, s.Played)
}

func TestRecordWinIncrementsBucket(t *testing.T) {
	for k := 1; k <= game.MaxGuesses; k++ {
		s := New()
		s.RecordTerminal(game.ModeRandom, game.StatusWon, k, "2025-01-01")
		assert.Equal(t, 1, s.Distribution[k])
		total := 0
		for _, v := range s.Distribution {
			total += v
		}
		assert.Equal(t, 1, total)
	}
}

func TestRecordDailyStreaks(t *testing.T) {
	s := New()
	s.RecordTerminal(game.ModeDaily, game.StatusWon, 3, "2025-01-01")
	s.RecordTerminal(game.ModeDaily, game.StatusWon, 2, "2025-01-02")
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 2, s.MaxStreak)
	assert.Equal(t, "2025-01-02", s.LastPlayedDate)

	s.RecordTerminal(game.ModeDaily, game.StatusLost, 6, "2025-01-03")
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 2, s.MaxStreak)
	assert.Equal(t, 3, s.Played)
	assert.Equal(t, 2, s.Won)
	assert.Equal(t, "2025-01-03", s.LastPlayedDate)

	s.RecordTerminal(game.ModeDaily, game.StatusWon, 1, "2025-01-04")
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 2, s.MaxStreak)
	assert.LessOrEqual(t, s.CurrentStreak, s.MaxStreak)
}

func TestRecordRandomLeavesDailyFields(t *testing.T) {
	s := New()
	s.RecordTerminal(game.ModeRandom, game.StatusWon, 4, "2025-01-01")
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 0, s.MaxStreak)
	assert.Empty(t, s.LastPlayedDate)
}

func TestRecordIgnoresOutOfRangeGuessCount(t *testing.T) {
	s := New()
	s.RecordTerminal(game.ModeRandom, game.StatusWon, 9, "")
	assert.Equal(t, 1, s.Won)
	assert.Len(t, s.Distribution, game.MaxGuesses)
}

func TestReconcileStreak(t *testing.T) {
	tests := []struct {
		name    string
		last    string
		streak  int
		reset   bool
		current int
	}{
		{"three days ago", "2025-01-07", 5, true, 0},
		{"yesterday", "2025-01-09", 5, false, 5},
		{"today", "2025-01-10", 5, false, 5},
		{"never played", "", 2, true, 0},
		{"no streak", "2024-12-01", 0, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.CurrentStreak, s.MaxStreak, s.LastPlayedDate = tt.streak, tt.streak, tt.last
			assert.Equal(t, tt.reset, s.ReconcileStreak("2025-01-10"))
			assert.Equal(t, tt.current, s.CurrentStreak)
			assert.Equal(t, tt.streak, s.MaxStreak)
		})
	}
}

func TestReconcileAcrossMonthBoundary(t *testing.T) {
	s := New()
	s.CurrentStreak, s.LastPlayedDate = 3, "2024-02-29"
	assert.False(t, s.ReconcileStreak("2024-03-01"))
	assert.Equal(t, 3, s.CurrentStreak)
}

func TestCloneIsDeep(t *testing.T) {
	s := New()
	c := s.Clone()
	c.Distribution[1] = 7
	assert.Zero(t, s.Distribution[1])
}

func TestSummarize(t *testing.T) {
	s := New()
	s.Played, s.Won = 3, 2
	s.Distribution[2] = 1
	s.Distribution[5] = 1

	sum := Summarize(game.ModeDaily, s)
	assert.Equal(t, 66, sum.WinPct)
	assert.InDelta(t, 3.5, sum.MeanGuesses, 0.001)
	assert.InDelta(t, 3.5, sum.MedianGuesses, 0.001)
	assert.Equal(t, game.ModeDaily, sum.Mode)

	empty := Summarize(game.ModeRandom, New())
	assert.Zero(t, empty.WinPct)
	assert.Zero(t, empty.MeanGuesses)
	assert.Len(t, empty.Distribution, game.MaxGuesses)
}

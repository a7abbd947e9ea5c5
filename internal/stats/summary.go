package stats

import (
	mstats "github.com/montanaflynn/stats"

	"github.com/trongtricoder/Footy-Feud/internal/game"
)

// Summary is the display form of PlayerStats.
type Summary struct {
	Mode           game.Mode   `json:"mode"`
	Played         int         `json:"played"`
	Won            int         `json:"won"`
	WinPct         int         `json:"winPct"`
	CurrentStreak  int         `json:"currentStreak"`
	MaxStreak      int         `json:"maxStreak"`
	MeanGuesses    float64     `json:"meanGuesses"`
	MedianGuesses  float64     `json:"medianGuesses"`
	Distribution   map[int]int `json:"distribution"`
	LastPlayedDate string      `json:"lastPlayedDate,omitempty"`
}

// Summarize derives the win rate and the mean and median number of guesses
// per win.
func Summarize(mode game.Mode, s PlayerStats) Summary {
	s = s.Clone()
	out := Summary{
		Mode:           mode,
		Played:         s.Played,
		Won:            s.Won,
		CurrentStreak:  s.CurrentStreak,
		MaxStreak:      s.MaxStreak,
		Distribution:   s.Distribution,
		LastPlayedDate: s.LastPlayedDate,
	}
	if s.Played > 0 {
		out.WinPct = s.Won * 100 / s.Played
	}

	var wins mstats.Float64Data
	for k := 1; k <= game.MaxGuesses; k++ {
		for i := 0; i < s.Distribution[k]; i++ {
			wins = append(wins, float64(k))
		}
	}
	if len(wins) == 0 {
		return out
	}
	if mean, err := wins.Mean(); err == nil {
		out.MeanGuesses, _ = mstats.Round(mean, 2)
	}
	if median, err := wins.Median(); err == nil {
		out.MedianGuesses, _ = mstats.Round(median, 2)
	}
	return out
}

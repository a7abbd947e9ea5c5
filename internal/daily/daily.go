// internal/daily/daily.go
//
// Deterministic daily secret selection.
// Responsibilities:
//   - Turning a wall-clock instant into the calendar day key (YYYY-MM-DD) in the configured zone.
//   - Deriving the day's ordinal number (0001-01-01 = 1) and using it as the seed.
//   - Drawing one index from a generator built for that draw alone.
//
// Every call rebuilds its generator from (ordinal, salt), so two processes
// computing the same day agree without sharing state, and nothing here ever
// touches the package-level math/rand source used for random-mode games.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/trongtricoder/Footy-Feud/internal/players"
)

// Layout is the calendar day key format.
const Layout = "2006-01-02"

// unixEpochOrdinal is the ordinal of 1970-01-01.
const unixEpochOrdinal = 719163

// DateKey returns YYYY-MM-DD for t in loc (UTC when loc is nil).
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(Layout)
}

// ParseDateKey parses a YYYY-MM-DD key into midnight UTC of that day.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(Layout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("daily: bad date key %q: %w", key, err)
	}
	return t, nil
}

// PrevDateKey returns the key of the day before key.
func PrevDateKey(key string) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format(Layout), nil
}

// Ordinal returns the proleptic Gregorian ordinal of t's calendar day
// (as printed, ignoring zone offset).
func Ordinal(t time.Time) int64 {
	civil := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return civil.Unix()/86400 + unixEpochOrdinal
}

// Index returns the deterministic index in [0, n) for the day key.
func Index(dateKey, salt string, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("daily: no players to pick from")
	}
	day, err := ParseDateKey(dateKey)
	if err != nil {
		return 0, err
	}
	rng := rand.New(rand.NewPCG(uint64(Ordinal(day)), saltSeed(salt)))
	return rng.IntN(n), nil
}

// Pick returns the day's secret from list in its stored order, with its index.
func Pick(list []players.Player, dateKey, salt string) (players.Player, int, error) {
	idx, err := Index(dateKey, salt, len(list))
	if err != nil {
		return players.Player{}, 0, err
	}
	return list[idx], idx, nil
}

// saltSeed folds the salt into the generator's second seed word via HMAC-SHA256.
// An empty salt still yields a fixed value.
func saltSeed(salt string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("footyfeud-daily"))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}

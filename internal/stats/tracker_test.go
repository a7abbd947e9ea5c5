package stats

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trongtricoder/Footy-Feud/internal/game"
	"github.com/trongtricoder/Footy-Feud/internal/players"
)

type failingStore struct {
	Store
	putErr error
}

func (f failingStore) Put(context.Context, string, game.Mode, PlayerStats) error { return f.putErr }

type resolver map[string]players.Player

func (r resolver) Resolve(q string) (players.Player, bool) {
	p, ok := r[q]
	return p, ok
}

func p(name string, age int) players.Player {
	return players.Player{Name: name, Nationality: "N", League: "L", Club: "C", Position: "P", Age: age}
}

func playDaily(t *testing.T, tr *Tracker, user, date string, guesses ...string) game.Outcome {
	t.Helper()
	secret := p("Sam", 27)
	r := resolver{"Alex": p("Alex", 25), "Sam": secret, "Kit": p("Kit", 30)}
	s := game.New(user, game.ModeDaily, date, secret, 1, time.Now())
	var out game.Outcome
	for _, g := range guesses {
		var err error
		out, err = s.ApplyGuess(context.Background(), r, tr, g)
		require.NoError(t, err)
	}
	return out
}

func TestTrackerRecordsWin(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), zerolog.New(io.Discard))
	out := playDaily(t, tr, "u1", "2025-01-01", "Alex", "Sam")
	require.NoError(t, out.PersistErr)

	ps, err := tr.Load(context.Background(), "u1", game.ModeDaily)
	require.NoError(t, err)
	assert.Equal(t, 1, ps.Played)
	assert.Equal(t, 1, ps.Distribution[2])
	assert.Equal(t, 1, ps.MaxStreak)
	assert.Equal(t, "2025-01-01", ps.LastPlayedDate)
}

func TestTrackerDailyOncePerDay(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), zerolog.New(io.Discard))
	playDaily(t, tr, "u1", "2025-01-01", "Sam")
	playDaily(t, tr, "u1", "2025-01-01", "Alex", "Sam")

	ps, err := tr.Load(context.Background(), "u1", game.ModeDaily)
	require.NoError(t, err)
	assert.Equal(t, 1, ps.Played)
	assert.Equal(t, 1, ps.Distribution[1])
	assert.Zero(t, ps.Distribution[2])

	playDaily(t, tr, "u1", "2025-01-02", "Sam")
	ps, err = tr.Load(context.Background(), "u1", game.ModeDaily)
	require.NoError(t, err)
	assert.Equal(t, 2, ps.Played)
	assert.Equal(t, 2, ps.CurrentStreak)
}

func TestTrackerLoadAbsent(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), zerolog.New(io.Discard))
	ps, err := tr.Load(context.Background(), "nobody", game.ModeRandom)
	require.NoError(t, err)
	assert.Equal(t, New(), ps)
}

func TestTrackerPersistFailure(t *testing.T) {
	st := failingStore{Store: NewMemoryStore(), putErr: errors.New("boom")}
	tr := NewTracker(st, zerolog.New(io.Discard))
	out := playDaily(t, tr, "u1", "2025-01-01", "Sam")
	assert.ErrorIs(t, out.PersistErr, ErrPersistence)
	assert.Equal(t, game.StatusWon, out.Status)
}

func TestTrackerReconcile(t *testing.T) {
	mem := NewMemoryStore()
	tr := NewTracker(mem, zerolog.New(io.Discard))
	ctx := context.Background()

	reset, err := tr.Reconcile(ctx, "u1", "2025-01-10")
	require.NoError(t, err)
	assert.False(t, reset)

	ps := New()
	ps.CurrentStreak, ps.MaxStreak, ps.LastPlayedDate = 5, 5, "2025-01-07"
	require.NoError(t, mem.Put(ctx, "u1", game.ModeDaily, ps))

	reset, err = tr.Reconcile(ctx, "u1", "2025-01-10")
	require.NoError(t, err)
	assert.True(t, reset)

	got, _, err := mem.Get(ctx, "u1", game.ModeDaily)
	require.NoError(t, err)
	assert.Zero(t, got.CurrentStreak)
	assert.Equal(t, 5, got.MaxStreak)

	reset, err = tr.Reconcile(ctx, "u1", "2025-01-10")
	require.NoError(t, err)
	assert.False(t, reset)
}

func TestTrackerDatesDailyBySessionDay(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), zerolog.New(io.Discard))
	secret := p("Sam", 27)
	r := resolver{"Sam": secret}
	started := time.Date(2025, 1, 1, 23, 58, 0, 0, time.UTC)
	s := game.New("u1", game.ModeDaily, "2025-01-01", secret, 1, started)

	out, err := s.ApplyGuess(context.Background(), r, tr, "Sam")
	require.NoError(t, err)
	require.NoError(t, out.PersistErr)

	ps, err := tr.Load(context.Background(), "u1", game.ModeDaily)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", ps.LastPlayedDate)

	reset, err := tr.Reconcile(context.Background(), "u1", "2025-01-02")
	require.NoError(t, err)
	assert.False(t, reset)
}

package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trongtricoder/Footy-Feud/internal/database"
	"github.com/trongtricoder/Footy-Feud/internal/game"
)

func newSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := database.Open(context.Background(), database.Config{Type: "sqlite", Path: database.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLStore(db)
}

func TestStores(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"sql":    newSQLStore(t),
	}
	for name, st := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := st.Get(ctx, "u1", game.ModeDaily)
			require.NoError(t, err)
			assert.False(t, ok)

			ps := New()
			ps.RecordTerminal(game.ModeDaily, game.StatusWon, 3, "2025-02-01")
			require.NoError(t, st.Put(ctx, "u1", game.ModeDaily, ps))

			got, ok, err := st.Get(ctx, "u1", game.ModeDaily)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, ps, got)

			ps.RecordTerminal(game.ModeDaily, game.StatusLost, 6, "2025-02-02")
			require.NoError(t, st.Put(ctx, "u1", game.ModeDaily, ps))
			got, _, err = st.Get(ctx, "u1", game.ModeDaily)
			require.NoError(t, err)
			assert.Equal(t, 2, got.Played)
			assert.Equal(t, 0, got.CurrentStreak)
			assert.Equal(t, 1, got.Distribution[3])

			_, ok, err = st.Get(ctx, "u1", game.ModeRandom)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	st := NewMemoryStore()
	ps := New()
	require.NoError(t, st.Put(context.Background(), "u", game.ModeRandom, ps))
	ps.Distribution[1] = 99

	got, _, err := st.Get(context.Background(), "u", game.ModeRandom)
	require.NoError(t, err)
	assert.Zero(t, got.Distribution[1])
}

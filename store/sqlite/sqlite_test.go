package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/VTGare/minesweeper/game"
	"github.com/VTGare/minesweeper/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) store.Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init(context.Background()))

	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	g, err := game.New("g1", "alice", game.Beginner)
	require.NoError(t, err)

	_, err = g.Reveal(game.Pos(4, 4))
	require.NoError(t, err)

	created, err := s.CreateGame(ctx, g.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	_, err = s.CreateGame(ctx, g.Snapshot())
	assert.ErrorIs(t, err, store.ErrGameExists)

	fetched, err := s.Game(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, created.Cells, fetched.Cells)

	restored, err := game.Restore(fetched)
	require.NoError(t, err)
	assert.Equal(t, game.InProgress, restored.Status())

	_, err = restored.Pause()
	require.NoError(t, err)

	next := restored.Snapshot()
	next.Version = fetched.Version
	updated, err := s.UpdateGame(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	_, err = s.UpdateGame(ctx, next)
	assert.ErrorIs(t, err, store.ErrVersionConflict)

	paused, err := s.PlayerGames(ctx, "alice", store.GameFilter{Statuses: []string{"paused"}})
	require.NoError(t, err)
	require.Len(t, paused, 1)
	assert.Equal(t, "g1", paused[0].ID)

	none, err := s.PlayerGames(ctx, "alice", store.GameFilter{Statuses: []string{"won", "lost"}})
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, s.DeleteGame(ctx, "g1"))
	assert.ErrorIs(t, s.DeleteGame(ctx, "g1"), store.ErrGameNotFound)

	_, err = s.Game(ctx, "g1")
	assert.ErrorIs(t, err, store.ErrGameNotFound)

	_, err = s.UpdateGame(ctx, next)
	assert.ErrorIs(t, err, store.ErrGameNotFound)
}

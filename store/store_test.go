package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/VTGare/minesweeper/game"
	cache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshot(t *testing.T, id, player string) *game.Snapshot {
	t.Helper()

	g, err := game.New(id, player, game.Beginner)
	require.NoError(t, err)

	return g.Snapshot()
}

func TestMemoryStore(t *testing.T) {
	var (
		ctx = context.Background()
		s   = NewMemory(0)
	)

	created, err := s.CreateGame(ctx, newSnapshot(t, "1", "alice"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	_, err = s.CreateGame(ctx, newSnapshot(t, "1", "alice"))
	assert.ErrorIs(t, err, ErrGameExists)

	created.Moves = 3
	updated, err := s.UpdateGame(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	_, err = s.UpdateGame(ctx, created)
	assert.ErrorIs(t, err, ErrVersionConflict, "stale version")

	fetched, err := s.Game(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 3, fetched.Moves)

	fetched.Cells[0].Visibility = game.Flagged
	again, err := s.Game(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, game.Hidden, again.Cells[0].Visibility, "snapshots are copied")

	require.NoError(t, s.DeleteGame(ctx, "1"))
	_, err = s.Game(ctx, "1")
	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.ErrorIs(t, s.DeleteGame(ctx, "1"), ErrGameNotFound)

	_, err = s.UpdateGame(ctx, created)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestMemoryStore_PlayerGames(t *testing.T) {
	var (
		ctx = context.Background()
		s   = NewMemory(time.Hour)
	)

	for _, id := range []string{"a", "b", "c"} {
		_, err := s.CreateGame(ctx, newSnapshot(t, id, "alice"))
		require.NoError(t, err)
	}

	_, err := s.CreateGame(ctx, newSnapshot(t, "d", "bob"))
	require.NoError(t, err)

	won := newSnapshot(t, "e", "alice")
	won.Status = game.Won.String()
	_, err = s.CreateGame(ctx, won)
	require.NoError(t, err)

	games, err := s.PlayerGames(ctx, "alice", GameFilter{})
	require.NoError(t, err)
	assert.Len(t, games, 4)

	games, err = s.PlayerGames(ctx, "alice", GameFilter{Statuses: []string{"won"}})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "e", games[0].ID)

	games, err = s.PlayerGames(ctx, "alice", GameFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()

	idle := NewMemory(50 * time.Millisecond)
	_, err := idle.CreateGame(ctx, newSnapshot(t, "1", "alice"))
	require.NoError(t, err)

	forever := NewMemory(0)
	_, err = forever.CreateGame(ctx, newSnapshot(t, "1", "alice"))
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	_, err = idle.Game(ctx, "1")
	assert.ErrorIs(t, err, ErrGameNotFound)

	_, err = forever.Game(ctx, "1")
	assert.NoError(t, err, "zero ttl keeps paused games")
}

func TestMemoryStore_DeleteWhileUpdating(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(0)

	created, err := s.CreateGame(ctx, newSnapshot(t, "1", "alice"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			current := created
			for j := 0; j < 50; j++ {
				updated, err := s.UpdateGame(ctx, current)
				if err != nil {
					return
				}
				current = updated
			}
		}()
	}

	require.NoError(t, s.DeleteGame(ctx, "1"))
	wg.Wait()

	_, err = s.Game(ctx, "1")
	assert.ErrorIs(t, err, ErrGameNotFound, "updates never bring a deleted game back")
}

func TestStatefulStore(t *testing.T) {
	var (
		ctx     = context.Background()
		backend = NewMemory(0)
		c       = cache.New(time.Minute, time.Minute)
		s       = NewStatefulStore(backend, c)
	)

	created, err := s.CreateGame(ctx, newSnapshot(t, "1", "alice"))
	require.NoError(t, err)

	_, ok := c.Get("games:1")
	assert.True(t, ok)

	// A write behind the cache's back makes the cached version stale.
	_, err = backend.UpdateGame(ctx, created)
	require.NoError(t, err)

	_, err = s.UpdateGame(ctx, created)
	assert.ErrorIs(t, err, ErrVersionConflict)

	_, ok = c.Get("games:1")
	assert.False(t, ok, "conflicts evict the cached snapshot")

	fresh, err := s.Game(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), fresh.Version)

	require.NoError(t, s.DeleteGame(ctx, "1"))
	_, ok = c.Get("games:1")
	assert.False(t, ok)
}

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/VTGare/minesweeper/game"
	cache "github.com/patrickmn/go-cache"
)

type memoryStore struct {
	mx    sync.Mutex
	cache *cache.Cache
}

// NewMemory returns a store that keeps snapshots in process memory. Games
// expire after ttl of inactivity; zero keeps them forever.
func NewMemory(ttl time.Duration) Store {
	if ttl <= 0 {
		return &memoryStore{cache: cache.New(cache.NoExpiration, 0)}
	}

	return &memoryStore{cache: cache.New(ttl, ttl)}
}

func (m *memoryStore) Init(context.Context) error {
	return nil
}

func (m *memoryStore) Close(context.Context) error {
	m.cache.Flush()
	return nil
}

func (m *memoryStore) Game(_ context.Context, gameID string) (*game.Snapshot, error) {
	s, ok := m.cache.Get(gameID)
	if !ok {
		return nil, ErrGameNotFound
	}

	return Clone(s.(*game.Snapshot)), nil
}

func (m *memoryStore) CreateGame(_ context.Context, snapshot *game.Snapshot) (*game.Snapshot, error) {
	stored := Clone(snapshot)
	stored.Version = 1
	stored.UpdatedAt = time.Now()

	if err := m.cache.Add(stored.ID, stored, cache.DefaultExpiration); err != nil {
		return nil, ErrGameExists
	}

	return Clone(stored), nil
}

func (m *memoryStore) UpdateGame(_ context.Context, snapshot *game.Snapshot) (*game.Snapshot, error) {
	m.mx.Lock()
	defer m.mx.Unlock()

	current, ok := m.cache.Get(snapshot.ID)
	if !ok {
		return nil, ErrGameNotFound
	}

	if current.(*game.Snapshot).Version != snapshot.Version {
		return nil, ErrVersionConflict
	}

	stored := Clone(snapshot)
	stored.Version++
	stored.UpdatedAt = time.Now()

	m.cache.Set(stored.ID, stored, cache.DefaultExpiration)
	return Clone(stored), nil
}

func (m *memoryStore) DeleteGame(_ context.Context, gameID string) error {
	m.mx.Lock()
	defer m.mx.Unlock()

	if _, ok := m.cache.Get(gameID); !ok {
		return ErrGameNotFound
	}

	m.cache.Delete(gameID)
	return nil
}

func (m *memoryStore) PlayerGames(_ context.Context, playerID string, filter GameFilter) ([]*game.Snapshot, error) {
	games := make([]*game.Snapshot, 0)
	for _, item := range m.cache.Items() {
		s := item.Object.(*game.Snapshot)
		if s.PlayerID == playerID && filter.Match(s) {
			games = append(games, Clone(s))
		}
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].UpdatedAt.After(games[j].UpdatedAt)
	})

	if filter.Limit > 0 && int64(len(games)) > filter.Limit {
		games = games[:filter.Limit]
	}

	return games, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	c := *t
	return &c
}

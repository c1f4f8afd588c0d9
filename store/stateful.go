package store

import (
	"context"
	"errors"

	"github.com/VTGare/minesweeper/game"
	cache "github.com/patrickmn/go-cache"
)

// StatefulStore keeps recently used snapshots in memory in front of another
// store.
type StatefulStore struct {
	Store
	cache *cache.Cache
}

func NewStatefulStore(store Store, c *cache.Cache) Store {
	return &StatefulStore{
		Store: store,
		cache: c,
	}
}

func (s *StatefulStore) key(gameID string) string {
	return "games:" + gameID
}

func (s *StatefulStore) Game(ctx context.Context, gameID string) (*game.Snapshot, error) {
	if g, ok := s.cache.Get(s.key(gameID)); ok {
		return Clone(g.(*game.Snapshot)), nil
	}

	snapshot, err := s.Store.Game(ctx, gameID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(s.key(gameID), Clone(snapshot), 0)
	return snapshot, nil
}

func (s *StatefulStore) CreateGame(ctx context.Context, snapshot *game.Snapshot) (*game.Snapshot, error) {
	snapshot, err := s.Store.CreateGame(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	s.cache.Set(s.key(snapshot.ID), Clone(snapshot), 0)
	return snapshot, nil
}

func (s *StatefulStore) UpdateGame(ctx context.Context, snapshot *game.Snapshot) (*game.Snapshot, error) {
	updated, err := s.Store.UpdateGame(ctx, snapshot)
	if err != nil {
		if errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrGameNotFound) {
			s.cache.Delete(s.key(snapshot.ID))
		}

		return nil, err
	}

	s.cache.Set(s.key(updated.ID), Clone(updated), 0)
	return updated, nil
}

func (s *StatefulStore) DeleteGame(ctx context.Context, gameID string) error {
	s.cache.Delete(s.key(gameID))
	return s.Store.DeleteGame(ctx, gameID)
}

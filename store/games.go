package store

import (
	"context"

	"github.com/VTGare/minesweeper/game"
)

// GameStore persists game snapshots. Updates are optimistic: the stored
// version must match the snapshot's version, which is incremented on success.
type GameStore interface {
	Game(ctx context.Context, gameID string) (*game.Snapshot, error)
	CreateGame(ctx context.Context, snapshot *game.Snapshot) (*game.Snapshot, error)
	UpdateGame(ctx context.Context, snapshot *game.Snapshot) (*game.Snapshot, error)
	DeleteGame(ctx context.Context, gameID string) error
	PlayerGames(ctx context.Context, playerID string, filter GameFilter) ([]*game.Snapshot, error)
}

// GameFilter narrows PlayerGames. Empty Statuses matches every status.
type GameFilter struct {
	Statuses []string
	Limit    int64
}

func (f GameFilter) Match(s *game.Snapshot) bool {
	if len(f.Statuses) == 0 {
		return true
	}

	for _, status := range f.Statuses {
		if s.Status == status {
			return true
		}
	}

	return false
}

// Clone deep copies a snapshot so that stores never share cells with callers.
func Clone(s *game.Snapshot) *game.Snapshot {
	if s == nil {
		return nil
	}

	clone := *s
	clone.Cells = append([]game.CellState(nil), s.Cells...)
	clone.StartedAt = copyTime(s.StartedAt)
	clone.CompletedAt = copyTime(s.CompletedAt)
	clone.PausedAt = copyTime(s.PausedAt)

	return &clone
}

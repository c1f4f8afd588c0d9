package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VTGare/minesweeper/game"
	"github.com/VTGare/minesweeper/store"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	player_id  TEXT NOT NULL,
	status     TEXT NOT NULL,
	version    INTEGER NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	snapshot   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS games_player ON games (player_id, updated_at DESC);
`

type sqliteStore struct {
	db *sql.DB
}

// New opens a SQLite database at path. Snapshots are stored as JSON.
func New(path string) (store.Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite serialises writers anyway.
	db.SetMaxOpenConns(1)

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *sqliteStore) Close(context.Context) error {
	return s.db.Close()
}

func (s *sqliteStore) Game(ctx context.Context, gameID string) (*game.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, "SELECT snapshot FROM games WHERE id = ?", gameID)

	return scan(row)
}

func (s *sqliteStore) CreateGame(ctx context.Context, snapshot *game.Snapshot) (*game.Snapshot, error) {
	created := store.Clone(snapshot)
	created.Version = 1
	created.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(created)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(
		ctx,
		"INSERT INTO games (id, player_id, status, version, updated_at, snapshot) VALUES (?, ?, ?, ?, ?, ?)",
		created.ID, created.PlayerID, created.Status, created.Version, created.UpdatedAt, string(data),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, store.ErrGameExists
		}

		return nil, fmt.Errorf("failed to insert a game: %w", err)
	}

	return created, nil
}

func (s *sqliteStore) UpdateGame(ctx context.Context, snapshot *game.Snapshot) (*game.Snapshot, error) {
	updated := store.Clone(snapshot)
	updated.Version++
	updated.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(updated)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(
		ctx,
		"UPDATE games SET status = ?, version = ?, updated_at = ?, snapshot = ? WHERE id = ? AND version = ?",
		updated.Status, updated.Version, updated.UpdatedAt, string(data), snapshot.ID, snapshot.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update a game: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	if affected == 0 {
		if _, err := s.Game(ctx, snapshot.ID); err != nil {
			return nil, err
		}

		return nil, store.ErrVersionConflict
	}

	return updated, nil
}

func (s *sqliteStore) DeleteGame(ctx context.Context, gameID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM games WHERE id = ?", gameID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return store.ErrGameNotFound
	}

	return nil
}

func (s *sqliteStore) PlayerGames(ctx context.Context, playerID string, filter store.GameFilter) ([]*game.Snapshot, error) {
	var (
		query = "SELECT snapshot FROM games WHERE player_id = ?"
		args  = []any{playerID}
	)

	if len(filter.Statuses) != 0 {
		query += " AND status IN (?" + strings.Repeat(", ?", len(filter.Statuses)-1) + ")"
		for _, status := range filter.Statuses {
			args = append(args, status)
		}
	}

	query += " ORDER BY updated_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]*game.Snapshot, 0)
	for rows.Next() {
		snapshot, err := scan(rows)
		if err != nil {
			return nil, err
		}

		games = append(games, snapshot)
	}

	return games, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*game.Snapshot, error) {
	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrGameNotFound
		}

		return nil, err
	}

	var snapshot game.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode a game: %w", err)
	}

	return &snapshot, nil
}

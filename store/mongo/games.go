package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VTGare/minesweeper/game"
	"github.com/VTGare/minesweeper/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type gameStore struct {
	client *mongo.Client
	db     *mongo.Database
	col    *mongo.Collection
}

func GameStore(client *mongo.Client, database string) store.GameStore {
	db := client.Database(database)
	col := db.Collection("games")

	return &gameStore{
		client: client,
		db:     db,
		col:    col,
	}
}

func (g *gameStore) Game(ctx context.Context, gameID string) (*game.Snapshot, error) {
	res := g.col.FindOne(ctx, bson.M{"game_id": gameID})

	return resDecoder(res)
}

func (g *gameStore) CreateGame(ctx context.Context, snapshot *game.Snapshot) (*game.Snapshot, error) {
	created := store.Clone(snapshot)
	created.Version = 1
	created.UpdatedAt = time.Now()

	_, err := g.col.InsertOne(ctx, created)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, store.ErrGameExists
		}

		return nil, fmt.Errorf("failed to insert a game: %w", err)
	}

	return created, nil
}

func (g *gameStore) UpdateGame(ctx context.Context, snapshot *game.Snapshot) (*game.Snapshot, error) {
	updated := store.Clone(snapshot)
	updated.Version++
	updated.UpdatedAt = time.Now()

	res := g.col.FindOneAndReplace(
		ctx,
		bson.M{"game_id": snapshot.ID, "version": snapshot.Version},
		updated,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	)

	doc, err := resDecoder(res)
	if errors.Is(err, store.ErrGameNotFound) {
		// Either the game is gone or somebody else bumped the version.
		if _, err := g.Game(ctx, snapshot.ID); err != nil {
			return nil, err
		}

		return nil, store.ErrVersionConflict
	}

	return doc, err
}

func (g *gameStore) DeleteGame(ctx context.Context, gameID string) error {
	res, err := g.col.DeleteOne(ctx, bson.M{"game_id": gameID})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return store.ErrGameNotFound
	}

	return nil
}

func (g *gameStore) PlayerGames(ctx context.Context, playerID string, filter store.GameFilter) ([]*game.Snapshot, error) {
	query := bson.M{"player_id": playerID}
	if len(filter.Statuses) != 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}

	opts := options.Find().SetSort(bson.M{"updated_at": -1})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cur, err := g.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	games := make([]*game.Snapshot, 0)
	if err := cur.All(ctx, &games); err != nil {
		return nil, err
	}

	return games, nil
}

func resDecoder(res *mongo.SingleResult) (*game.Snapshot, error) {
	var snapshot game.Snapshot
	if err := res.Decode(&snapshot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrGameNotFound
		}

		return nil, fmt.Errorf("failed to decode a game: %w", err)
	}

	return &snapshot, nil
}

package store

import (
	"context"
	"errors"
)

type Store interface {
	GameStore
	Init(context.Context) error
	Close(context.Context) error
}

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameExists      = errors.New("game already exists")
	ErrVersionConflict = errors.New("game was modified concurrently")
)

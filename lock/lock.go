package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrLocked = errors.New("game is locked")

// Locker serialises mutations of a single game across goroutines and
// processes. Lock fails fast with ErrLocked instead of waiting. It returns a
// token that Unlock must be given back: a holder whose lock expired can't
// release the next holder's lock.
type Locker interface {
	Lock(ctx context.Context, gameID string, ttl time.Duration) (string, error)
	Unlock(ctx context.Context, gameID, token string) error
	Close() error
}

func key(gameID string) string {
	return "lock:game:" + gameID
}

func newToken() string {
	return uuid.NewString()
}

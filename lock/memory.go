package lock

import (
	"context"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

type inMemory struct {
	mx    sync.Mutex
	cache *cache.Cache
}

func NewMemory() Locker {
	return &inMemory{cache: cache.New(0, time.Minute)}
}

func (l *inMemory) Lock(_ context.Context, gameID string, ttl time.Duration) (string, error) {
	token := newToken()

	l.mx.Lock()
	defer l.mx.Unlock()

	// Add refuses keys that are present and not expired.
	if err := l.cache.Add(key(gameID), token, ttl); err != nil {
		return "", ErrLocked
	}

	return token, nil
}

func (l *inMemory) Unlock(_ context.Context, gameID, token string) error {
	l.mx.Lock()
	defer l.mx.Unlock()

	if held, ok := l.cache.Get(key(gameID)); ok && held == token {
		l.cache.Delete(key(gameID))
	}

	return nil
}

func (l *inMemory) Close() error {
	l.cache.Flush()
	return nil
}

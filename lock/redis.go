package lock

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// unlock deletes the key only if it still holds the caller's token.
var unlock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client *redis.Client
}

func NewRedis(addr string) (Locker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       addr,
		MaxRetries: 5,
	})

	status := client.Ping(context.Background())
	if status.Err() != nil {
		return nil, status.Err()
	}

	return &redisLocker{client: client}, nil
}

func (l *redisLocker) Lock(ctx context.Context, gameID string, ttl time.Duration) (string, error) {
	token := newToken()

	ok, err := l.client.SetNX(ctx, key(gameID), token, ttl).Result()
	if err != nil {
		return "", err
	}

	if !ok {
		return "", ErrLocked
	}

	return token, nil
}

func (l *redisLocker) Unlock(ctx context.Context, gameID, token string) error {
	return unlock.Run(ctx, l.client, []string{key(gameID)}, token).Err()
}

func (l *redisLocker) Close() error {
	return l.client.Close()
}

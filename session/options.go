package session

import (
	"time"

	"github.com/VTGare/minesweeper/game"
	"github.com/VTGare/minesweeper/internal/cache"
	"github.com/VTGare/minesweeper/stats"
)

type Option func(*Service)

func WithStats(s *stats.Stats) Option {
	return func(svc *Service) {
		svc.stats = s
	}
}

func WithActiveGames(ag *cache.ActiveGames) Option {
	return func(svc *Service) {
		svc.active = ag
	}
}

// WithRandSource supplies the randomness used when a game places its mines.
// It's called once per loaded game.
func WithRandSource(source func() game.Rand) Option {
	return func(svc *Service) {
		svc.rand = source
	}
}

func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		svc.now = now
	}
}

func WithLockTTL(ttl time.Duration) Option {
	return func(svc *Service) {
		svc.lockTTL = ttl
	}
}

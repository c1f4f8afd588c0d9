package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VTGare/minesweeper/game"
	"github.com/VTGare/minesweeper/internal/cache"
	"github.com/VTGare/minesweeper/lock"
	"github.com/VTGare/minesweeper/stats"
	"github.com/VTGare/minesweeper/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrNoActiveGame = errors.New("player has no active game")

// Service runs game operations against persisted games. Every mutation holds
// the game's lock for the load-apply-save cycle.
type Service struct {
	store  store.Store
	locker lock.Locker
	log    *zap.SugaredLogger

	stats   *stats.Stats
	active  *cache.ActiveGames
	rand    func() game.Rand
	now     func() time.Time
	lockTTL time.Duration
}

// Result is the outcome of a mutating call.
type Result struct {
	Snapshot   *game.Snapshot
	Events     []game.Event
	Statistics game.Statistics
}

func NewService(s store.Store, l lock.Locker, log *zap.SugaredLogger, opts ...Option) *Service {
	svc := &Service{
		store:   s,
		locker:  l,
		log:     log,
		now:     time.Now,
		lockTTL: 10 * time.Second,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

func (s *Service) gameOptions() []game.Option {
	opts := []game.Option{game.WithClock(s.now)}
	if s.rand != nil {
		opts = append(opts, game.WithRand(s.rand()))
	}

	return opts
}

func (s *Service) Create(ctx context.Context, playerID string, d game.Difficulty) (*game.Snapshot, error) {
	g, err := game.New(uuid.NewString(), playerID, d, s.gameOptions()...)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.store.CreateGame(ctx, g.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to create a game: %w", err)
	}

	if s.stats != nil {
		s.stats.IncrementGame()
	}

	if s.active != nil {
		s.active.Set(playerID, snapshot.ID)
	}

	s.log.With(
		"game_id", snapshot.ID,
		"player_id", playerID,
		"difficulty", d.Name,
	).Info("created a game")

	return snapshot, nil
}

func (s *Service) Reveal(ctx context.Context, gameID string, p game.Position) (*Result, error) {
	return s.apply(ctx, gameID, "reveal", func(g *game.Game) ([]game.Event, error) {
		return g.Reveal(p)
	})
}

func (s *Service) ToggleFlag(ctx context.Context, gameID string, p game.Position) (*Result, error) {
	return s.apply(ctx, gameID, "flag", func(g *game.Game) ([]game.Event, error) {
		return g.ToggleFlag(p)
	})
}

func (s *Service) ToggleQuestion(ctx context.Context, gameID string, p game.Position) (*Result, error) {
	return s.apply(ctx, gameID, "question", func(g *game.Game) ([]game.Event, error) {
		return g.ToggleQuestion(p)
	})
}

func (s *Service) Chord(ctx context.Context, gameID string, p game.Position) (*Result, error) {
	return s.apply(ctx, gameID, "chord", func(g *game.Game) ([]game.Event, error) {
		return g.Chord(p)
	})
}

func (s *Service) Pause(ctx context.Context, gameID string) (*Result, error) {
	return s.apply(ctx, gameID, "pause", func(g *game.Game) ([]game.Event, error) {
		return g.Pause()
	})
}

func (s *Service) Resume(ctx context.Context, gameID string) (*Result, error) {
	return s.apply(ctx, gameID, "resume", func(g *game.Game) ([]game.Event, error) {
		return g.Resume()
	})
}

func (s *Service) Game(ctx context.Context, gameID string) (*game.Snapshot, error) {
	return s.store.Game(ctx, gameID)
}

func (s *Service) Statistics(ctx context.Context, gameID string) (game.Statistics, error) {
	g, _, err := s.load(ctx, gameID)
	if err != nil {
		return game.Statistics{}, err
	}

	return g.Statistics(), nil
}

// Active returns the player's most recent unfinished game.
func (s *Service) Active(ctx context.Context, playerID string) (*game.Snapshot, error) {
	if s.active != nil {
		if gameID, ok := s.active.Get(playerID); ok {
			snapshot, err := s.store.Game(ctx, gameID)
			if err == nil {
				return snapshot, nil
			}

			if !errors.Is(err, store.ErrGameNotFound) {
				return nil, err
			}

			s.active.Remove(playerID, gameID)
		}
	}

	games, err := s.store.PlayerGames(ctx, playerID, store.GameFilter{
		Statuses: []string{
			game.NotStarted.String(),
			game.InProgress.String(),
			game.Paused.String(),
		},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}

	if len(games) == 0 {
		return nil, ErrNoActiveGame
	}

	if s.active != nil {
		s.active.Set(playerID, games[0].ID)
	}

	return games[0], nil
}

func (s *Service) Close(ctx context.Context) error {
	if s.active != nil {
		s.active.Close()
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return s.store.Close(ctx)
	})

	eg.Go(func() error {
		return s.locker.Close()
	})

	return eg.Wait()
}

func (s *Service) load(ctx context.Context, gameID string) (*game.Game, *game.Snapshot, error) {
	snapshot, err := s.store.Game(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	g, err := game.Restore(snapshot, s.gameOptions()...)
	if err != nil {
		s.log.With(
			"game_id", gameID,
			"version", snapshot.Version,
			"error", err,
		).Error("failed to restore a game")

		return nil, nil, err
	}

	return g, snapshot, nil
}

func (s *Service) apply(ctx context.Context, gameID, op string, fn func(*game.Game) ([]game.Event, error)) (*Result, error) {
	log := s.log.With(
		"game_id", gameID,
		"op", op,
	)

	g, snapshot, events, err := s.mutate(ctx, gameID, fn)
	if err != nil {
		if errors.Is(err, game.ErrInvalidInput) || errors.Is(err, game.ErrIllegalOperation) {
			log.With("error", err).Debug("rejected a move")
		}

		return nil, err
	}

	if s.stats != nil {
		s.stats.Record(events...)
	}

	for _, event := range events {
		log.With("event", event.Kind()).Debug("game event")
	}

	switch g.Status() {
	case game.Won, game.Lost:
		log.With(
			"player_id", g.PlayerID(),
			"status", g.Status().String(),
			"moves", g.Moves(),
			"elapsed", g.Elapsed().String(),
		).Info("game finished")

		if s.active != nil {
			s.active.Remove(g.PlayerID(), g.ID())
		}
	default:
		if s.active != nil {
			s.active.Set(g.PlayerID(), g.ID())
		}
	}

	return &Result{
		Snapshot:   snapshot,
		Events:     events,
		Statistics: g.Statistics(),
	}, nil
}

func (s *Service) mutate(ctx context.Context, gameID string, fn func(*game.Game) ([]game.Event, error)) (*game.Game, *game.Snapshot, []game.Event, error) {
	token, err := s.locker.Lock(ctx, gameID, s.lockTTL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to lock game %v: %w", gameID, err)
	}

	defer func() {
		if err := s.locker.Unlock(ctx, gameID, token); err != nil {
			s.log.With("game_id", gameID, "error", err).Warn("failed to unlock a game")
		}
	}()

	g, loaded, err := s.load(ctx, gameID)
	if err != nil {
		return nil, nil, nil, err
	}

	events, err := fn(g)
	if err != nil {
		return nil, nil, nil, err
	}

	if len(events) == 0 {
		return g, loaded, nil, nil
	}

	next := g.Snapshot()
	next.Version = loaded.Version
	saved, err := s.store.UpdateGame(ctx, next)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to save game %v: %w", gameID, err)
	}

	return g, saved, events, nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VTGare/minesweeper/game"
	"github.com/VTGare/minesweeper/internal/cache"
	"github.com/VTGare/minesweeper/internal/config"
	"github.com/VTGare/minesweeper/internal/logger"
	"github.com/VTGare/minesweeper/internal/tui"
	"github.com/VTGare/minesweeper/lock"
	"github.com/VTGare/minesweeper/messages"
	"github.com/VTGare/minesweeper/session"
	"github.com/VTGare/minesweeper/stats"
	"github.com/VTGare/minesweeper/store"
	"github.com/VTGare/minesweeper/store/mongo"
	"github.com/VTGare/minesweeper/store/sqlite"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

func newLocker(cfg *config.Lock) (lock.Locker, error) {
	if cfg.Type == "redis" {
		locker, err := lock.NewRedis(cfg.RedisURI)
		if err != nil {
			return nil, err
		}

		return locker, nil
	}

	return lock.NewMemory(), nil
}

func initStore(cfg *config.Config) (store.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		backend store.Store
		err     error
	)

	switch cfg.Store.Type {
	case "mongo":
		backend, err = mongo.New(ctx, cfg.Store.Mongo.URI, cfg.Store.Mongo.Database)
	case "sqlite":
		backend, err = sqlite.New(cfg.Store.SQLite.Path)
	default:
		// Already in memory, no need for a cache in front.
		return store.NewMemory(cfg.Store.MemoryTTL()), nil
	}
	if err != nil {
		return nil, err
	}

	if err := backend.Init(ctx); err != nil {
		return nil, err
	}

	ttl := cfg.Cache.GamesTTL()
	return store.NewStatefulStore(backend, gocache.New(ttl, 2*ttl)), nil
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.FromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}

	return cfg, err
}

// startGame continues the player's unfinished game unless a new one is asked for.
func startGame(ctx context.Context, svc *session.Service, playerID string, d game.Difficulty, fresh bool) (*game.Snapshot, error) {
	if !fresh {
		snapshot, err := svc.Active(ctx, playerID)
		if err == nil {
			return snapshot, nil
		}

		if !errors.Is(err, session.ErrNoActiveGame) {
			return nil, err
		}
	}

	return svc.Create(ctx, playerID, d)
}

func main() {
	var (
		configPath = flag.String("config", "config.json", "path to a JSON config file")
		difficulty = flag.String("difficulty", "", "beginner, intermediate or expert; overrides the config")
		playerID   = flag.String("player", "player", "player name")
		fresh      = flag.Bool("new", false, "start a new game even if there's one in progress")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Println("failed to load config: ", err)
		os.Exit(1)
	}

	if *difficulty != "" {
		cfg.Difficulty = &config.Difficulty{Name: *difficulty}
	}

	d, err := cfg.Difficulty.Resolve()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Sentry, cfg.Log)
	if err != nil {
		fmt.Println("failed to initialise logger: ", err)
		os.Exit(1)
	}
	err = run(cfg, log, *playerID, d, *fresh)
	if err != nil {
		log.With("error", err).Error("sweeper stopped")
		fmt.Println(messages.ErrMove(err))
	}

	logger.Flush(log)
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger, playerID string, d game.Difficulty, fresh bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := initStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialise a store: %w", err)
	}

	locker, err := newLocker(cfg.Lock)
	if err != nil {
		st.Close(context.Background())
		return fmt.Errorf("failed to initialise a locker: %w", err)
	}

	counters := stats.New()
	svc := session.NewService(
		st,
		locker,
		log,
		session.WithStats(counters),
		session.WithActiveGames(cache.NewActiveGames(cfg.Cache.ActiveTTL())),
		session.WithLockTTL(cfg.Lock.TTL()),
	)

	defer func() {
		items, total := counters.Items()
		log.With("events", items, "total", total, "games", counters.Games.Load()).Info("session stats")

		if err := svc.Close(context.Background()); err != nil {
			log.With("error", err).Warn("failed to close the service")
		}
	}()

	snapshot, err := startGame(ctx, svc, playerID, d, fresh)
	if err != nil {
		return err
	}

	log.With("game_id", snapshot.ID, "player_id", playerID).Info("playing")

	ui := tui.New(ctx, svc, snapshot.ID, cfg.RandomQuote)
	go func() {
		<-ctx.Done()
		ui.Stop()
	}()

	return ui.Run()
}

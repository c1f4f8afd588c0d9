package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/VTGare/minesweeper/game"
)

// Config is an application configuration struct.
type Config struct {
	Store      *Store      `json:"store"`
	Lock       *Lock       `json:"lock"`
	Cache      *Cache      `json:"cache"`
	Difficulty *Difficulty `json:"difficulty"`
	Sentry     string      `json:"sentry"`
	Log        string      `json:"log"`
	Quotes     []*Quote    `json:"quotes"`
}

// Store selects the game store. Supported types: "memory", "mongo", "sqlite".
// Memory games never expire unless MemoryTTLSeconds is set.
type Store struct {
	Type             string  `json:"type"`
	Mongo            *Mongo  `json:"mongo"`
	SQLite           *SQLite `json:"sqlite"`
	MemoryTTLSeconds int     `json:"memory_ttl_seconds"`
}

// Mongo stores Mongo connection configuration. Required for the "mongo" store.
type Mongo struct {
	URI      string `json:"uri"`
	Database string `json:"default_db"`
}

type SQLite struct {
	Path string `json:"path"`
}

// Lock selects the game locker. Supported types: "memory", "redis". RedisURI is not required for in-memory locks.
type Lock struct {
	Type       string `json:"type"`
	RedisURI   string `json:"redis_uri"`
	TTLSeconds int    `json:"ttl_seconds"`
}

// Cache configures in-process caches. Zero values fall back to defaults.
type Cache struct {
	GamesMinutes  int `json:"games_minutes"`
	ActiveMinutes int `json:"active_minutes"`
}

// Difficulty is either a preset name or a custom board. Custom dimensions win
// over the name when Rows is set.
type Difficulty struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	Mines   int    `json:"mines"`
}

// Quote is a message shown when a game ends, selected randomly. On is "won" or "lost".
type Quote struct {
	Content string `json:"content"`
	On      string `json:"on"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()

	return cfg
}

func FromFile(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = json.Unmarshal(file, &cfg)
	if err != nil {
		return nil, err
	}

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Store == nil {
		c.Store = &Store{}
	}

	if c.Store.Type == "" {
		c.Store.Type = "memory"
	}

	if c.Store.Type == "sqlite" && (c.Store.SQLite == nil || c.Store.SQLite.Path == "") {
		c.Store.SQLite = &SQLite{Path: "minesweeper.db"}
	}

	if c.Store.Mongo != nil && c.Store.Mongo.Database == "" {
		c.Store.Mongo.Database = "minesweeper"
	}

	if c.Lock == nil {
		c.Lock = &Lock{}
	}

	if c.Lock.Type == "" {
		c.Lock.Type = "memory"
	}

	if c.Lock.TTLSeconds <= 0 {
		c.Lock.TTLSeconds = 10
	}

	if c.Cache == nil {
		c.Cache = &Cache{}
	}

	if c.Cache.GamesMinutes <= 0 {
		c.Cache.GamesMinutes = 30
	}

	if c.Cache.ActiveMinutes <= 0 {
		c.Cache.ActiveMinutes = 60
	}

	if c.Log == "" {
		c.Log = "sweeper.log"
	}

	if c.Difficulty == nil {
		c.Difficulty = &Difficulty{Name: game.Beginner.Name}
	}
}

func (c *Config) validate() error {
	switch c.Store.Type {
	case "memory", "sqlite":
	case "mongo":
		if c.Store.Mongo == nil || c.Store.Mongo.URI == "" {
			return errors.New("mongo store requires a connection uri")
		}
	default:
		return fmt.Errorf("unknown store type: %v", c.Store.Type)
	}

	switch c.Lock.Type {
	case "memory":
	case "redis":
		if c.Lock.RedisURI == "" {
			return errors.New("redis lock requires a redis uri")
		}
	default:
		return fmt.Errorf("unknown lock type: %v", c.Lock.Type)
	}

	_, err := c.Difficulty.Resolve()
	return err
}

// MemoryTTL is how long an idle memory game is kept. Zero keeps it forever.
func (s *Store) MemoryTTL() time.Duration {
	if s.MemoryTTLSeconds <= 0 {
		return 0
	}

	return time.Duration(s.MemoryTTLSeconds) * time.Second
}

func (l *Lock) TTL() time.Duration {
	return time.Duration(l.TTLSeconds) * time.Second
}

func (c *Cache) GamesTTL() time.Duration {
	return time.Duration(c.GamesMinutes) * time.Minute
}

func (c *Cache) ActiveTTL() time.Duration {
	return time.Duration(c.ActiveMinutes) * time.Minute
}

func (d *Difficulty) Resolve() (game.Difficulty, error) {
	if d.Rows > 0 {
		name := d.Name
		if name == "" {
			name = "custom"
		}

		return game.NewDifficulty(name, d.Rows, d.Columns, d.Mines)
	}

	preset, ok := game.DifficultyByName(d.Name)
	if !ok {
		return game.Difficulty{}, fmt.Errorf("unknown difficulty: %v", d.Name)
	}

	return preset, nil
}

func (c *Config) RandomQuote(status game.Status) string {
	quotes := make([]*Quote, 0, len(c.Quotes))
	for _, quote := range c.Quotes {
		if quote.On == status.String() {
			quotes = append(quotes, quote)
		}
	}

	if l := len(quotes); l > 0 {
		s := rand.NewSource(time.Now().Unix())
		r := rand.New(s)

		return quotes[r.Intn(l)].Content
	}

	return ""
}

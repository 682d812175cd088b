package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/benched/internal/api/sse"
	"github.com/mcoot/benched/internal/config"
	"github.com/mcoot/benched/internal/dependencies/clock"
	"github.com/mcoot/benched/internal/dependencies/ids"
	"github.com/mcoot/benched/internal/dependencies/random"
	"github.com/mcoot/benched/internal/services/persist"
	"github.com/mcoot/benched/internal/services/roster"
	"github.com/mcoot/benched/internal/storage"
	"github.com/mcoot/benched/internal/storage/file"
	"github.com/mcoot/benched/internal/storage/memory"
	redisstorage "github.com/mcoot/benched/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeFile   = config.StorageFile
	StorageTypeMemory = config.StorageMemory
	StorageTypeRedis  = config.StorageRedis
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage
	Writer  *persist.Writer

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	IDs    ids.Generator

	// Services
	Roster      *roster.Store
	Hub         *sse.Hub
	Broadcaster *sse.Broadcaster

	logger *slog.Logger
	detach func()
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("file", "memory" or "redis")
	// If empty, defaults to "file"
	StorageType string
	// FilePath is the roster file for file storage
	// If empty, defaults to players.json
	FilePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// TeamSize is the initial number of teams (optional, defaults to 2)
	TeamSize int
	// WriteDebounce delays writes so bursts of changes coalesce
	WriteDebounce time.Duration
}

// ConfigFrom converts loaded settings into a factory Config
func ConfigFrom(cfg config.Config, logger *slog.Logger) Config {
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = cfg.Storage.Redis.URL
	redisCfg.Roster = cfg.Storage.Redis.Roster

	return Config{
		Logger:        logger,
		StorageType:   cfg.Storage.Type,
		FilePath:      cfg.Storage.File,
		RedisConfig:   &redisCfg,
		TeamSize:      cfg.Roster.TeamSize,
		WriteDebounce: cfg.Roster.WriteDebounce,
	}
}

// New creates a new application with all dependencies wired.
// The roster is not loaded; call App.Roster.Load.
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	switch storageType {
	case StorageTypeFile:
		store = file.New(cfg.FilePath)
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'file', 'memory' or 'redis'", storageType)
	}

	persistCfg := persist.DefaultConfig()
	persistCfg.Debounce = cfg.WriteDebounce

	logger.Debug("storage selected", slog.String("type", storageType))
	return newWithDependencies(store, clock.New(), random.New(), ids.New(), persistCfg, cfg.TeamSize, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	idGen ids.Generator,
	persistCfg persist.Config,
	teamSize int,
	logger *slog.Logger,
) *App {
	writer := persist.New(store, persistCfg, logger)
	rosterStore := roster.New(store, writer, clk, rnd, idGen, teamSize, logger)
	hub := sse.NewHub(logger)
	broadcaster := sse.NewBroadcaster(hub, logger)

	return &App{
		Storage:     store,
		Writer:      writer,
		Clock:       clk,
		Random:      rnd,
		IDs:         idGen,
		Roster:      rosterStore,
		Hub:         hub,
		Broadcaster: broadcaster,
		logger:      logger,
	}
}

// StartLiveUpdates runs the SSE hub and feeds it every roster change
func (a *App) StartLiveUpdates() {
	if a.detach != nil {
		return
	}
	go a.Hub.Run()
	a.detach = a.Broadcaster.Attach(a.Roster)
}

// Close flushes pending writes and releases storage
func (a *App) Close() error {
	if a.detach != nil {
		a.detach()
		a.Hub.Close()
		a.detach = nil
	}
	writeErr := a.Writer.Close()
	closeErr := a.Storage.Close()
	if writeErr != nil {
		a.logger.Error("final roster write failed", slog.Any("error", writeErr))
	}
	return errors.Join(writeErr, closeErr)
}

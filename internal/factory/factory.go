package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/danielrhuynh/cs-446-ece-452/internal/dependencies/clock"
	"github.com/danielrhuynh/cs-446-ece-452/internal/dependencies/random"
	"github.com/danielrhuynh/cs-446-ece-452/internal/metrics"
	"github.com/danielrhuynh/cs-446-ece-452/internal/services/directory"
	"github.com/danielrhuynh/cs-446-ece-452/internal/services/matchmaking"
	"github.com/danielrhuynh/cs-446-ece-452/internal/services/projection"
	"github.com/danielrhuynh/cs-446-ece-452/internal/storage"
	"github.com/danielrhuynh/cs-446-ece-452/internal/storage/memory"
	redisstorage "github.com/danielrhuynh/cs-446-ece-452/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Directory   *directory.Service
	Projection  *projection.Service
	Matchmaking *matchmaking.Controller

	// Observability
	Metrics *metrics.Collector
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
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
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), metrics.NewCollector(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, collector *metrics.Collector, logger *slog.Logger) *App {
	var recorder metrics.Recorder = metrics.Nop{}
	if collector != nil {
		recorder = collector
	}

	directoryService := directory.New(store, clk, logger)
	projectionService := projection.New(store)
	matchmakingController := matchmaking.NewController(
		store, directoryService, projectionService, clk, rnd, recorder, logger,
	)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		Directory:   directoryService,
		Projection:  projectionService,
		Matchmaking: matchmakingController,
		Metrics:     collector,
	}
}

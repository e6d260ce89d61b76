package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hance08/payledger/internal/config"
	"github.com/hance08/payledger/internal/constants"
	"github.com/hance08/payledger/internal/ledger"
	"github.com/hance08/payledger/internal/logging"
	"github.com/hance08/payledger/internal/service"
	"github.com/hance08/payledger/internal/store"
	"github.com/hance08/payledger/internal/store/memory"
	"github.com/hance08/payledger/internal/store/postgres"
	"github.com/hance08/payledger/internal/store/sqlite"
)

type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Store     store.Repository
	Engine    *ledger.Engine
	Processor *ledger.Processor
	Service   *service.Service
}

// NewApp builds the logger, opens the configured store and wires the
// ledger on top of it. The returned cleanup closes the store and flushes
// the logger.
func NewApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	repo, err := OpenStore(ctx, cfg.Database)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Debug("store opened", zap.String("driver", cfg.Database.Driver))

	engine := ledger.NewEngine(repo, logger)

	cleanup := func() {
		if err := repo.Close(); err != nil {
			logger.Error("closing store", zap.Error(err))
		}
		_ = logger.Sync()
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Store:     repo,
		Engine:    engine,
		Processor: ledger.NewProcessor(engine, logger),
		Service:   service.NewService(repo),
	}, cleanup, nil
}

// OpenStore returns the repository selected by cfg.Driver.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (store.Repository, error) {
	switch cfg.Driver {
	case constants.DriverMemory, "":
		return memory.New(), nil
	case constants.DriverSQLite:
		path := cfg.Path
		if path != sqlite.MemoryPath {
			var err error
			if path, err = cfg.DBPath(); err != nil {
				return nil, err
			}
		}
		s, err := sqlite.NewStore(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case constants.DriverPostgres:
		s, err := postgres.NewStore(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownDriver, cfg.Driver)
	}
}

// Provider hands commands the App once the root command has built it.
type Provider func() *App

package cmd

import (
	"fmt"

	"loot-restrictions/core/config"
	"loot-restrictions/core/database"
	"loot-restrictions/core/logger"
	"loot-restrictions/core/metrics"
	"loot-restrictions/core/storage"
	"loot-restrictions/feature/restrictions"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps bundles what every command needs.
type deps struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	client  storage.Client
	service *restrictions.Service
}

// loadDeps loads configuration, connects to the database and storage and builds the
// restriction service. A nil metrics value disables recording.
func loadDeps(m *metrics.Metrics) (*deps, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	svc, err := restrictions.NewService(cfg.Restrictions, client, cfg.Storage.Bucket, l, db, m)
	if err != nil {
		return nil, fmt.Errorf("failed to create restriction service: %w", err)
	}

	return &deps{cfg: cfg, logger: l, db: db, client: client, service: svc}, nil
}

package integrity

import (
	"context"

	"loot-restrictions/core/storage"
	"loot-restrictions/feature/integrity/checks"
	"loot-restrictions/feature/restrictions"
	"loot-restrictions/feature/restrictions/models"
	"loot-restrictions/feature/restrictions/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
	db     *gorm.DB
	cfg    restrictions.Config
}

// NewService creates a new integrity service.
func NewService(client storage.Client, bucket, region string, logger *zap.Logger, db *gorm.DB, cfg restrictions.Config) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		region: region,
		logger: logger,
		db:     db,
		cfg:    cfg,
	}
}

// CheckStorage verifies the bucket and, for the storage catalog, the item export.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	object := ""
	if s.cfg.Catalog == restrictions.CatalogStorage {
		object = s.cfg.CatalogObject
	}
	return checks.CheckStorage(ctx, s.client, s.bucket, object)
}

// FixStorage creates the bucket when it is missing.
func (s *Service) FixStorage(ctx context.Context) (bool, error) {
	return storage.EnsureBucket(ctx, s.client, s.bucket, s.region)
}

// CheckCatalog counts items and stored restrictions.
func (s *Service) CheckCatalog(ctx context.Context) (*checks.CatalogReport, error) {
	return checks.CheckCatalog(ctx, s.db, s.cfg.Catalog, s.cfg.Catalog == restrictions.CatalogDatabase)
}

// CheckServer compares the live tables with the models.
func (s *Service) CheckServer() (*store.SchemaReport, error) {
	tables := []any{&models.Restriction{}}
	if s.cfg.Catalog == restrictions.CatalogDatabase {
		tables = append(tables, &models.Item{})
	}
	return store.VerifySchema(s.db, tables...)
}

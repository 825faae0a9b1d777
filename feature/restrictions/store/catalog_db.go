package store

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"loot-restrictions/feature/restrictions/engine"
	"loot-restrictions/feature/restrictions/models"

	"gorm.io/gorm"
)

var errStopIteration = errors.New("stop iteration")

// DBCatalog reads items from the items table.
type DBCatalog struct {
	db        *gorm.DB
	batchSize int
}

// NewDBCatalog creates a catalog. A non-positive batchSize selects DefaultBatchSize.
func NewDBCatalog(db *gorm.DB, batchSize int) *DBCatalog {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &DBCatalog{db: db, batchSize: batchSize}
}

// Prepare creates or migrates the items table.
func (c *DBCatalog) Prepare(ctx context.Context) error {
	if err := c.db.WithContext(ctx).AutoMigrate(&models.Item{}); err != nil {
		return fmt.Errorf("migrate %s: %w", models.Item{}.TableName(), err)
	}
	return nil
}

// Items streams the catalog in primary key order, one batch in memory at a time.
func (c *DBCatalog) Items(ctx context.Context) iter.Seq2[*models.Item, error] {
	return func(yield func(*models.Item, error) bool) {
		var batch []models.Item
		res := c.db.WithContext(ctx).FindInBatches(&batch, c.batchSize, func(tx *gorm.DB, _ int) error {
			for i := range batch {
				item := batch[i]
				if !yield(&item, nil) {
					return errStopIteration
				}
			}
			return nil
		})
		if res.Error != nil && !errors.Is(res.Error, errStopIteration) {
			yield(nil, fmt.Errorf("read items: %w", res.Error))
		}
	}
}

// Item loads one item by id.
func (c *DBCatalog) Item(ctx context.Context, id uint32) (*models.Item, error) {
	var item models.Item
	err := c.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("item %d: %w", id, engine.ErrItemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load item %d: %w", id, err)
	}
	return &item, nil
}

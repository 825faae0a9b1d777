package store

import (
	"context"
	"errors"
	"fmt"

	"loot-restrictions/feature/restrictions/models"
	"loot-restrictions/feature/restrictions/reconcile"

	"gorm.io/gorm"
)

// ErrMutationRefused is returned when a commit targets a restriction that is missing
// or not automated. The whole commit is rolled back.
var ErrMutationRefused = errors.New("restriction is missing or manually curated")

// ErrRestrictionNotFound is returned when a restriction id does not exist.
var ErrRestrictionNotFound = errors.New("restriction not found")

// DefaultBatchSize is used when no batch size is configured.
const DefaultBatchSize = 500

// RestrictionStore persists restrictions through GORM.
type RestrictionStore struct {
	db        *gorm.DB
	batchSize int
}

// NewRestrictionStore creates a store. A non-positive batchSize selects DefaultBatchSize.
func NewRestrictionStore(db *gorm.DB, batchSize int) *RestrictionStore {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &RestrictionStore{db: db, batchSize: batchSize}
}

// Prepare creates or migrates the restriction table.
func (s *RestrictionStore) Prepare(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.Restriction{}); err != nil {
		return fmt.Errorf("migrate %s: %w", models.Restriction{}.TableName(), err)
	}
	return nil
}

// ListRestrictions returns every restriction ordered by id.
func (s *RestrictionStore) ListRestrictions(ctx context.Context) ([]models.Restriction, error) {
	var list []models.Restriction
	if err := s.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list restrictions: %w", err)
	}
	return list, nil
}

// ListByItem returns the restrictions of one item ordered by id.
func (s *RestrictionStore) ListByItem(ctx context.Context, itemID uint32) ([]models.Restriction, error) {
	var list []models.Restriction
	err := s.db.WithContext(ctx).Where("item_id = ?", itemID).Order("id").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list restrictions for item %d: %w", itemID, err)
	}
	return list, nil
}

// Commit applies the changes in a single transaction. Updates and deletes only touch
// automated rows; a change aimed at anything else rolls the transaction back.
func (s *RestrictionStore) Commit(ctx context.Context, changes reconcile.Changes) error {
	if changes.Len() == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Deletes first so a replaced record never coexists with its successor
		for start := 0; start < len(changes.Delete); start += s.batchSize {
			ids := changes.Delete[start:min(start+s.batchSize, len(changes.Delete))]
			res := tx.Where("id IN ? AND automated = ?", ids, true).Delete(&models.Restriction{})
			if res.Error != nil {
				return fmt.Errorf("delete restrictions: %w", res.Error)
			}
			if res.RowsAffected != int64(len(ids)) {
				return fmt.Errorf("delete %d restrictions, %d affected: %w", len(ids), res.RowsAffected, ErrMutationRefused)
			}
		}

		for _, u := range changes.Update {
			res := tx.Model(&models.Restriction{}).
				Where("id = ? AND automated = ?", u.ID, true).
				Updates(map[string]any{
					"specializations": u.Specializations,
					"level":           u.Level,
				})
			if res.Error != nil {
				return fmt.Errorf("update restriction %d: %w", u.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("update restriction %d: %w", u.ID, ErrMutationRefused)
			}
		}

		if len(changes.Create) > 0 {
			creates := make([]models.Restriction, len(changes.Create))
			for i, c := range changes.Create {
				c.ID = 0
				c.Automated = true
				creates[i] = c
			}
			if err := tx.CreateInBatches(&creates, s.batchSize).Error; err != nil {
				return fmt.Errorf("create restrictions: %w", err)
			}
		}

		return nil
	})
}

// AddManual stores a hand-curated restriction.
func (s *RestrictionStore) AddManual(ctx context.Context, r models.Restriction) (*models.Restriction, error) {
	r.ID = 0
	r.Automated = false
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, fmt.Errorf("create manual restriction: %w", err)
	}
	return &r, nil
}

// Promote hands an automated restriction over to manual curation. Reconciliation
// never touches it afterwards.
func (s *RestrictionStore) Promote(ctx context.Context, id uint) (*models.Restriction, error) {
	var r models.Restriction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&r, id).Error; err != nil {
			return err
		}
		if !r.Automated {
			return nil
		}
		r.Automated = false
		return tx.Model(&r).Update("automated", false).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("promote restriction %d: %w", id, ErrRestrictionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("promote restriction %d: %w", id, err)
	}
	return &r, nil
}

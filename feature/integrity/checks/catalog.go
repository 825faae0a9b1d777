package checks

import (
	"context"
	"fmt"

	"loot-restrictions/feature/restrictions/models"

	"gorm.io/gorm"
)

// CatalogReport counts the rows the restriction engine works with.
type CatalogReport struct {
	Source       string `json:"source"`
	Items        int64  `json:"items"`
	Restrictions int64  `json:"restrictions"`
	Automated    int64  `json:"automated"`
	Manual       int64  `json:"manual"`
	Status       string `json:"status"` // "ok", "empty"
}

// CheckCatalog counts items and restrictions. Items are only counted for the database source.
func CheckCatalog(ctx context.Context, db *gorm.DB, source string, countItems bool) (*CatalogReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &CatalogReport{Source: source, Status: "ok"}
	tx := db.WithContext(ctx)

	if countItems {
		if err := tx.Model(&models.Item{}).Count(&report.Items).Error; err != nil {
			return nil, fmt.Errorf("count items: %w", err)
		}
		if report.Items == 0 {
			report.Status = "empty"
		}
	}

	if err := tx.Model(&models.Restriction{}).Where("automated = ?", true).Count(&report.Automated).Error; err != nil {
		return nil, fmt.Errorf("count automated restrictions: %w", err)
	}
	if err := tx.Model(&models.Restriction{}).Where("automated = ?", false).Count(&report.Manual).Error; err != nil {
		return nil, fmt.Errorf("count manual restrictions: %w", err)
	}
	report.Restrictions = report.Automated + report.Manual

	return report, nil
}

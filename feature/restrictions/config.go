package restrictions

import (
	"fmt"
	"time"

	"loot-restrictions/feature/restrictions/reconcile"
)

// Catalog sources.
const (
	CatalogDatabase = "database"
	CatalogStorage  = "storage"
)

// Config holds configuration for the restriction feature.
type Config struct {
	// Schedule is a 5-field cron expression for automatic reconciliation. Empty disables it.
	Schedule string `mapstructure:"schedule" default:""`
	// Catalog selects where item records are read from (database, storage).
	Catalog string `mapstructure:"catalog" default:"database"`
	// CatalogObject is the object key of the item export when Catalog is storage.
	CatalogObject string `mapstructure:"catalog_object" default:"gamedata/ItemData.json"`
	// CacheTTLSeconds is how long single-item lookups are served from memory. Zero disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// Match selects how persisted records are paired with candidates (reason, exact).
	Match string `mapstructure:"match" default:"reason"`
	// BatchSize bounds the rows read or written per statement.
	BatchSize int `mapstructure:"batch_size" default:"500"`
	// VerifySchema checks the restriction table layout before every run.
	VerifySchema bool `mapstructure:"verify_schema" default:"true"`
	// ArchiveReports uploads each run report to object storage.
	ArchiveReports bool `mapstructure:"archive_reports" default:"false"`
}

// CacheTTL returns the cache lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Validate checks the values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Catalog {
	case CatalogDatabase, CatalogStorage:
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog)
	}
	if _, err := reconcile.ParseMatchMode(c.Match); err != nil {
		return err
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	return nil
}

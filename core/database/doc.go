// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either the production MySQL database or a SQLite file
// (":memory:" in tests) from the application's configuration.
//
// # Schema Inspection
//
// GetTableColumns reports the live columns of a table. The restriction store compares
// them against its models before a reconciliation is allowed to write.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "item_restrictions")
package database

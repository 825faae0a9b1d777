// Package store holds the persistence collaborators of the restriction feature.
//
// RestrictionStore keeps the restriction table and applies reconciliation changes in one
// transaction. Three catalogs provide item records: DBCatalog reads the items table,
// StorageCatalog reads a JSON export from object storage and CachedCatalog indexes
// either one for fast single-item lookups.
//
// VerifySchema compares the models' gorm tags with the live columns before anything
// is written.
package store

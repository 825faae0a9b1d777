// Package integrity reports on the health of the data the restriction engine depends on.
//
// It checks that the storage bucket (and the item export, when items are read from
// storage) exists, counts catalog items and stored restrictions, and compares the live
// database schema with the models.
//
// # Endpoints
//
//   - GET /integrity: all checks combined
//   - GET /integrity/storage?fix=true: bucket and export, optionally creating the bucket
//   - GET /integrity/catalog: item and restriction counts
//   - GET /integrity/server: schema verification
package integrity

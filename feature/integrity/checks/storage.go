package checks

import (
	"context"
	"fmt"
	"time"

	"loot-restrictions/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectReport describes one object in the bucket.
type ObjectReport struct {
	Key          string    `json:"key"`
	Exists       bool      `json:"exists"`
	Size         int64     `json:"size,omitempty"`
	LastModified time.Time `json:"last_modified,omitzero"`
}

// StorageReport is the result of a storage check.
type StorageReport struct {
	Bucket  string        `json:"bucket"`
	Exists  bool          `json:"exists"`
	Catalog *ObjectReport `json:"catalog,omitempty"`
	Status  string        `json:"status"` // "ok", "error"
}

// CheckStorage verifies the bucket and, when catalogObject is set, the item export.
func CheckStorage(ctx context.Context, client storage.Client, bucket, catalogObject string) (*StorageReport, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is nil")
	}

	report := &StorageReport{Bucket: bucket, Status: "ok"}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.Exists = exists
	if !exists {
		report.Status = "error"
		return report, nil
	}

	if catalogObject == "" {
		return report, nil
	}

	obj := &ObjectReport{Key: catalogObject}
	report.Catalog = obj

	info, err := client.StatObject(ctx, bucket, catalogObject, minio.StatObjectOptions{})
	switch {
	case storage.IsNotFound(err):
		report.Status = "error"
	case err != nil:
		return nil, fmt.Errorf("failed to stat %s: %w", catalogObject, err)
	default:
		obj.Exists = true
		obj.Size = info.Size
		obj.LastModified = info.LastModified
	}

	return report, nil
}

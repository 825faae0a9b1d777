package store

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"

	"loot-restrictions/core/storage"
	"loot-restrictions/feature/restrictions/engine"
	"loot-restrictions/feature/restrictions/models"

	"github.com/minio/minio-go/v7"
)

// DefaultCatalogObject is the object holding the item export.
const DefaultCatalogObject = "gamedata/ItemData.json"

// StorageCatalog reads items from a JSON array stored in object storage.
type StorageCatalog struct {
	client storage.Client
	bucket string
	object string
}

// NewStorageCatalog creates a catalog over bucket/object. An empty object selects
// DefaultCatalogObject.
func NewStorageCatalog(client storage.Client, bucket, object string) *StorageCatalog {
	if object == "" {
		object = DefaultCatalogObject
	}
	return &StorageCatalog{client: client, bucket: bucket, object: object}
}

// Items decodes the export one element at a time.
func (c *StorageCatalog) Items(ctx context.Context) iter.Seq2[*models.Item, error] {
	return func(yield func(*models.Item, error) bool) {
		obj, err := c.client.GetObject(ctx, c.bucket, c.object, minio.GetObjectOptions{})
		if err != nil {
			yield(nil, fmt.Errorf("get %s: %w", c.object, err))
			return
		}
		defer obj.Close()

		dec := json.NewDecoder(obj)
		tok, err := dec.Token()
		if err != nil {
			yield(nil, fmt.Errorf("decode %s: %w", c.object, err))
			return
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '[' {
			yield(nil, fmt.Errorf("decode %s: expected an array of items", c.object))
			return
		}

		for dec.More() {
			item := new(models.Item)
			if err := dec.Decode(item); err != nil {
				yield(nil, fmt.Errorf("decode %s: %w", c.object, err))
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Item scans the export for one item.
func (c *StorageCatalog) Item(ctx context.Context, id uint32) (*models.Item, error) {
	for item, err := range c.Items(ctx) {
		if err != nil {
			return nil, err
		}
		if item.ID == id {
			return item, nil
		}
	}
	return nil, fmt.Errorf("item %d: %w", id, engine.ErrItemNotFound)
}

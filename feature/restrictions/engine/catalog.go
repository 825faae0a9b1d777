package engine

import (
	"context"
	"errors"
	"iter"

	"loot-restrictions/feature/restrictions/models"
)

// ErrItemNotFound is returned by catalogs when an item id is unknown.
var ErrItemNotFound = errors.New("item not found")

// Catalog is the read-only source of item stat records.
type Catalog interface {
	// Items streams the whole catalog once. A non-nil error ends the stream.
	Items(ctx context.Context) iter.Seq2[*models.Item, error]

	// Item looks up a single item, returning ErrItemNotFound when it does not exist.
	Item(ctx context.Context, id uint32) (*models.Item, error)
}

// SliceCatalog is an in-memory catalog.
type SliceCatalog []*models.Item

func (c SliceCatalog) Items(ctx context.Context) iter.Seq2[*models.Item, error] {
	return func(yield func(*models.Item, error) bool) {
		for _, item := range c {
			if !yield(item, nil) {
				return
			}
		}
	}
}

func (c SliceCatalog) Item(ctx context.Context, id uint32) (*models.Item, error) {
	for _, item := range c {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, ErrItemNotFound
}

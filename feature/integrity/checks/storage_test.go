package checks

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"loot-restrictions/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "loot").Return(false, nil)

		report, err := CheckStorage(ctx, mockClient, "loot", "gamedata/ItemData.json")
		require.NoError(t, err)
		assert.False(t, report.Exists)
		assert.Equal(t, "error", report.Status)
		assert.Nil(t, report.Catalog)
	})

	t.Run("Bucket Only", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "loot").Return(true, nil)

		report, err := CheckStorage(ctx, mockClient, "loot", "")
		require.NoError(t, err)
		assert.Equal(t, "ok", report.Status)
		assert.Nil(t, report.Catalog)
		mockClient.AssertNotCalled(t, "StatObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Catalog Present", func(t *testing.T) {
		modified := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "loot").Return(true, nil)
		mockClient.On("StatObject", mock.Anything, "loot", "gamedata/ItemData.json", mock.Anything).
			Return(minio.ObjectInfo{Size: 2048, LastModified: modified}, nil)

		report, err := CheckStorage(ctx, mockClient, "loot", "gamedata/ItemData.json")
		require.NoError(t, err)
		assert.Equal(t, "ok", report.Status)
		require.NotNil(t, report.Catalog)
		assert.True(t, report.Catalog.Exists)
		assert.Equal(t, int64(2048), report.Catalog.Size)
		assert.Equal(t, modified, report.Catalog.LastModified)
	})

	t.Run("Catalog Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "loot").Return(true, nil)
		mockClient.On("StatObject", mock.Anything, "loot", "gamedata/ItemData.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound})

		report, err := CheckStorage(ctx, mockClient, "loot", "gamedata/ItemData.json")
		require.NoError(t, err)
		assert.Equal(t, "error", report.Status)
		assert.False(t, report.Catalog.Exists)
	})

	t.Run("Stat Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "loot").Return(true, nil)
		mockClient.On("StatObject", mock.Anything, "loot", "gamedata/ItemData.json", mock.Anything).
			Return(nil, errors.New("connection reset"))

		_, err := CheckStorage(ctx, mockClient, "loot", "gamedata/ItemData.json")
		assert.Error(t, err)
	})

	t.Run("Bucket Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "loot").Return(false, errors.New("denied"))

		_, err := CheckStorage(ctx, mockClient, "loot", "")
		assert.Error(t, err)
	})

	t.Run("Nil Client", func(t *testing.T) {
		_, err := CheckStorage(ctx, nil, "loot", "")
		assert.Error(t, err)
	})
}

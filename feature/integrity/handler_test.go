package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"loot-restrictions/core/database"
	"loot-restrictions/core/storage/mocks"
	"loot-restrictions/feature/restrictions"
	"loot-restrictions/feature/restrictions/models"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testConfig() restrictions.Config {
	return restrictions.Config{Catalog: restrictions.CatalogDatabase, Match: "reason"}
}

func setupTestApp(t *testing.T, cfg restrictions.Config) (*fiber.App, *mocks.Client, *gorm.DB) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	svc := NewService(mockClient, "loot", "", zap.NewNop(), db, cfg)
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, mockClient, db
}

func decode(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleStorageCheck(t *testing.T) {
	app, mockClient, _ := setupTestApp(t, testConfig())

	mockClient.On("BucketExists", mock.Anything, "loot").Return(true, nil)

	status, body := decode(t, app, "/integrity/storage")
	assert.Equal(t, 200, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["exists"])
}

func TestHandleStorageCheck_Fix(t *testing.T) {
	app, mockClient, _ := setupTestApp(t, testConfig())

	mockClient.On("BucketExists", mock.Anything, "loot").Return(false, nil).Twice()
	mockClient.On("MakeBucket", mock.Anything, "loot", minio.MakeBucketOptions{}).Return(nil).Once()
	mockClient.On("BucketExists", mock.Anything, "loot").Return(true, nil)

	status, body := decode(t, app, "/integrity/storage?fix=true")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["exists"])
	mockClient.AssertExpectations(t)
}

func TestHandleCatalogCheck(t *testing.T) {
	app, _, db := setupTestApp(t, testConfig())
	require.NoError(t, db.AutoMigrate(&models.Item{}, &models.Restriction{}))
	require.NoError(t, db.Create(&models.Item{ID: 7, Name: "Ring"}).Error)

	status, body := decode(t, app, "/integrity/catalog")
	assert.Equal(t, 200, status)
	assert.Equal(t, "database", body["source"])
	assert.Equal(t, 1.0, body["items"])
}

func TestHandleCatalogCheck_Error(t *testing.T) {
	app, _, _ := setupTestApp(t, testConfig())

	status, body := decode(t, app, "/integrity/catalog")
	assert.Equal(t, 500, status)
	assert.NotEmpty(t, body["error"])
}

func TestHandleServerCheck(t *testing.T) {
	app, _, db := setupTestApp(t, testConfig())

	status, body := decode(t, app, "/integrity/server")
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["matched"])

	require.NoError(t, db.AutoMigrate(&models.Item{}, &models.Restriction{}))
	status, body = decode(t, app, "/integrity/server")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["matched"])
}

func TestHandleIntegrityCheck(t *testing.T) {
	cfg := testConfig()
	cfg.Catalog = restrictions.CatalogStorage
	cfg.CatalogObject = "gamedata/ItemData.json"
	app, mockClient, db := setupTestApp(t, cfg)
	require.NoError(t, db.AutoMigrate(&models.Restriction{}))

	mockClient.On("BucketExists", mock.Anything, "loot").Return(true, nil)
	mockClient.On("StatObject", mock.Anything, "loot", "gamedata/ItemData.json", mock.Anything).
		Return(minio.ObjectInfo{Size: 10}, nil)

	status, body := decode(t, app, "/integrity")
	assert.Equal(t, 200, status)
	for _, key := range []string{"storage", "catalog", "server"} {
		assert.Contains(t, body, key)
	}

	server := body["server"].(map[string]any)
	assert.Equal(t, true, server["matched"])
	catalog := body["catalog"].(map[string]any)
	assert.Equal(t, "storage", catalog["source"])
}

func TestLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	logger := zap.NewNop()
	// Pass nil db, nothing is queried while loading
	feature := NewFeature(mockClient, "loot", "", logger, nil, testConfig())

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}

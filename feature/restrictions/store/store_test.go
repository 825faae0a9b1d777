package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"regexp"
	"strings"
	"testing"
	"time"

	"loot-restrictions/core/database"
	"loot-restrictions/core/storage/mocks"
	"loot-restrictions/feature/restrictions/engine"
	"loot-restrictions/feature/restrictions/models"
	"loot-restrictions/feature/restrictions/reconcile"
	"loot-restrictions/feature/restrictions/specs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func newStore(t *testing.T) *RestrictionStore {
	t.Helper()
	s := NewRestrictionStore(setupSQLite(t), 2)
	require.NoError(t, s.Prepare(context.Background()))
	return s
}

func TestRestrictionStore_Commit(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	// Seed through a first commit
	err := s.Commit(ctx, reconcile.Changes{Create: []models.Restriction{
		{ItemID: 100, Reason: "X", Level: models.Disallowed, Specializations: specs.Tank},
		{ItemID: 100, Reason: "Y", Level: models.Unequippable, Specializations: specs.Mage},
		{ItemID: 200, Reason: "Z", Level: models.ManualReview, Specializations: specs.All},
	}})
	require.NoError(t, err)

	list, err := s.ListRestrictions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, r := range list {
		assert.True(t, r.Automated)
		assert.NotZero(t, r.ID)
	}

	// Update, delete and create in one commit
	updated := list[0]
	updated.Specializations = specs.Tank | specs.Healer
	updated.Level = models.ManualReview

	err = s.Commit(ctx, reconcile.Changes{
		Update: []models.Restriction{updated},
		Delete: []uint{list[1].ID, list[2].ID},
		Create: []models.Restriction{{ItemID: 300, Reason: "W", Level: models.Disallowed, Specializations: specs.Rogue}},
	})
	require.NoError(t, err)

	byItem, err := s.ListByItem(ctx, 100)
	require.NoError(t, err)
	require.Len(t, byItem, 1)
	assert.Equal(t, specs.Tank|specs.Healer, byItem[0].Specializations)
	assert.Equal(t, models.ManualReview, byItem[0].Level)
	assert.Equal(t, "X", byItem[0].Reason)

	all, err := s.ListRestrictions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRestrictionStore_CommitRefusesManual(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	manual, err := s.AddManual(ctx, models.Restriction{ItemID: 1, Reason: "Curated", Level: models.Disallowed, Specializations: specs.Tank})
	require.NoError(t, err)
	assert.False(t, manual.Automated)

	err = s.Commit(ctx, reconcile.Changes{
		Create: []models.Restriction{{ItemID: 2, Reason: "New", Level: models.Disallowed, Specializations: specs.Mage}},
		Delete: []uint{manual.ID},
	})
	assert.ErrorIs(t, err, ErrMutationRefused)

	// Nothing from the failed commit is visible
	list, err := s.ListRestrictions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, manual.ID, list[0].ID)

	err = s.Commit(ctx, reconcile.Changes{Update: []models.Restriction{{ID: manual.ID, Level: models.ManualReview, Specializations: specs.All}}})
	assert.ErrorIs(t, err, ErrMutationRefused)
}

func TestRestrictionStore_Promote(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Commit(ctx, reconcile.Changes{Create: []models.Restriction{
		{ItemID: 5, Reason: "X", Level: models.Disallowed, Specializations: specs.Tank},
	}}))
	list, err := s.ListRestrictions(ctx)
	require.NoError(t, err)

	promoted, err := s.Promote(ctx, list[0].ID)
	require.NoError(t, err)
	assert.False(t, promoted.Automated)

	list, err = s.ListRestrictions(ctx)
	require.NoError(t, err)
	assert.False(t, list[0].Automated)

	_, err = s.Promote(ctx, 999)
	assert.ErrorIs(t, err, ErrRestrictionNotFound)
}

func TestRestrictionStore_CommitRollback(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	s := NewRestrictionStore(db, 0)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(regexp.QuoteMeta("DELETE FROM `item_restrictions`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(regexp.QuoteMeta("INSERT INTO `item_restrictions`")).
		WillReturnError(errors.New("deadlock found"))
	sqlMock.ExpectRollback()

	err := s.Commit(context.Background(), reconcile.Changes{
		Delete: []uint{4},
		Create: []models.Restriction{{ItemID: 1, Reason: "X", Level: models.Disallowed, Specializations: specs.Tank}},
	})
	assert.ErrorContains(t, err, "deadlock found")
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRestrictionStore_EmptyCommit(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	s := NewRestrictionStore(db, 0)

	assert.NoError(t, s.Commit(context.Background(), reconcile.Changes{}))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestVerifySchema(t *testing.T) {
	ctx := context.Background()
	db := setupSQLite(t)

	t.Run("Missing", func(t *testing.T) {
		report, err := VerifySchema(db, models.Restriction{})
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.NotEmpty(t, report.Errors)
	})

	t.Run("Migrated", func(t *testing.T) {
		require.NoError(t, NewRestrictionStore(db, 0).Prepare(ctx))
		require.NoError(t, NewDBCatalog(db, 0).Prepare(ctx))

		report, err := VerifySchema(db, &models.Restriction{}, models.Item{})
		require.NoError(t, err)
		assert.True(t, report.Matched, "%+v", report)
		assert.Equal(t, "ok", report.Tables["item_restrictions"].Status)
	})

	t.Run("NotAModel", func(t *testing.T) {
		_, err := VerifySchema(db, 42)
		assert.Error(t, err)
	})

	t.Run("NilDB", func(t *testing.T) {
		_, err := VerifySchema(nil, models.Item{})
		assert.Error(t, err)
	})
}

func TestVerifySchema_TypeMismatch(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	for _, col := range []string{"id", "item_id", "specializations", "level", "automated", "created_at", "updated_at"} {
		rows.AddRow(col, "bigint", "NO", "", nil, "")
	}
	rows.AddRow("reason", "text", "NO", "", nil, "")
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `item_restrictions`").WillReturnRows(rows)

	report, err := VerifySchema(db, models.Restriction{})
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables["item_restrictions"]
	assert.Equal(t, "error", tbl.Status)
	assert.Empty(t, tbl.MissingColumns)
	assert.Equal(t, []string{"reason: expected varchar(256), got text"}, tbl.TypeMismatches)
}

func seedItems(t *testing.T, db *gorm.DB, n int) *DBCatalog {
	t.Helper()
	c := NewDBCatalog(db, 3)
	require.NoError(t, c.Prepare(context.Background()))
	for i := n; i >= 1; i-- {
		require.NoError(t, db.Create(&models.Item{ID: uint32(i), Name: fmt.Sprintf("Item %d", i), Slot: models.SlotFinger, SpellPower: i}).Error)
	}
	return c
}

func TestDBCatalog(t *testing.T) {
	ctx := context.Background()
	c := seedItems(t, setupSQLite(t), 7)

	var ids []uint32
	for item, err := range c.Items(ctx) {
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []uint32{1, 2, 3, 4, 5, 6, 7}, ids)

	t.Run("EarlyStop", func(t *testing.T) {
		n := 0
		for _, err := range c.Items(ctx) {
			require.NoError(t, err)
			n++
			if n == 4 {
				break
			}
		}
		assert.Equal(t, 4, n)
	})

	t.Run("Item", func(t *testing.T) {
		item, err := c.Item(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "Item 5", item.Name)
		assert.Equal(t, models.SlotFinger, item.Slot)

		_, err = c.Item(ctx, 50)
		assert.ErrorIs(t, err, engine.ErrItemNotFound)
	})
}

const catalogJSON = `[
	{"id": 28830, "name": "Dragonspine Trophy", "slot": "Trinket", "type": "Miscellaneous", "attack_power": 40, "has_proc": true},
	{"id": 30000, "name": "Band of the Eternal Sage", "slot": "Finger", "type": "Miscellaneous", "spell_power": 34}
]`

func TestStorageCatalog(t *testing.T) {
	ctx := context.Background()

	client := new(mocks.Client)
	// Every scan opens a fresh object
	for range 3 {
		client.On("GetObject", mock.Anything, "loot", DefaultCatalogObject, minio.GetObjectOptions{}).
			Return(io.NopCloser(strings.NewReader(catalogJSON)), nil).Once()
	}

	c := NewStorageCatalog(client, "loot", "")

	var names []string
	for item, err := range c.Items(ctx) {
		require.NoError(t, err)
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"Dragonspine Trophy", "Band of the Eternal Sage"}, names)

	item, err := c.Item(ctx, 30000)
	require.NoError(t, err)
	assert.Equal(t, 34, item.SpellPower)

	_, err = c.Item(ctx, 1)
	assert.ErrorIs(t, err, engine.ErrItemNotFound)
	client.AssertExpectations(t)
}

func TestStorageCatalog_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		body string
		err  error
	}{
		{"GetFails", "", errors.New("connection refused")},
		{"NotAnArray", `{"items": []}`, nil},
		{"BadItem", `[{"id": 1, "slot": "Tail"}]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.Client)
			if tt.err != nil {
				client.On("GetObject", mock.Anything, "loot", "items.json", mock.Anything).Return(nil, tt.err)
			} else {
				client.On("GetObject", mock.Anything, "loot", "items.json", mock.Anything).
					Return(io.NopCloser(strings.NewReader(tt.body)), nil)
			}

			var got error
			for _, err := range NewStorageCatalog(client, "loot", "items.json").Items(ctx) {
				if err != nil {
					got = err
				}
			}
			assert.Error(t, got)
		})
	}
}

// countingCatalog counts full scans of an in-memory catalog.
type countingCatalog struct {
	engine.SliceCatalog
	scans int
}

func (c *countingCatalog) Items(ctx context.Context) iter.Seq2[*models.Item, error] {
	c.scans++
	return c.SliceCatalog.Items(ctx)
}

func TestCachedCatalog(t *testing.T) {
	ctx := context.Background()
	source := &countingCatalog{SliceCatalog: engine.SliceCatalog{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCachedCatalog(source, time.Minute)
	c.now = func() time.Time { return now }

	item, err := c.Item(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "B", item.Name)
	_, err = c.Item(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, source.scans)
	assert.Equal(t, 2, c.Len())

	_, err = c.Item(ctx, 3)
	assert.ErrorIs(t, err, engine.ErrItemNotFound)

	// Expiry rebuilds the index
	now = now.Add(2 * time.Minute)
	_, err = c.Item(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, source.scans)

	// Full scans bypass the index
	for range c.Items(ctx) {
	}
	assert.Equal(t, 3, source.scans)

	c.Invalidate()
	assert.Zero(t, c.Len())
}

func TestCachedCatalog_Disabled(t *testing.T) {
	source := &countingCatalog{SliceCatalog: engine.SliceCatalog{{ID: 1}}}
	c := NewCachedCatalog(source, 0)

	_, err := c.Item(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, source.scans)
}

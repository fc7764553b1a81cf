// Package testutil provides test utilities for the bloom project.
// It offers type-safe APIs, proper test isolation, and fluent abstractions for test data management.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/bloom/internal/service"
	"github.com/Veraticus/bloom/internal/storage"
	"github.com/Veraticus/bloom/internal/testutil/catalog"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
	Catalog catalog.Catalog
}

// SetupTestDB creates a new migrated in-memory test database with no data.
// It automatically handles cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithBuilder(t, nil)
}

// SetupTestDBWithBuilder creates a test database seeded by a catalog builder.
//
// Example:
//
//	db := testutil.SetupTestDBWithBuilder(t, func(b catalog.Builder) catalog.Builder {
//		return b.WithFixture(catalog.FixtureShop).
//			WithOrder(1, model.OrderDelivered, catalog.ProductRedRoses)
//	})
func SetupTestDBWithBuilder(t *testing.T, configure func(catalog.Builder) catalog.Builder) *TestDB {
	t.Helper()

	builder := catalog.NewBuilder(t)
	if configure != nil {
		builder = configure(builder)
	}

	// Create in-memory SQLite storage
	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	// Run migrations
	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	cat, err := builder.Build(ctx, store)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}

	return &TestDB{
		Storage: store,
		Catalog: cat,
		t:       t,
	}
}

// ProductID returns the id of the named product or fails the test.
func (db *TestDB) ProductID(name catalog.ProductName) int64 {
	db.t.Helper()
	return db.Catalog.ProductID(db.t, name)
}

// ProductIDs returns the ids of the named products in order.
func (db *TestDB) ProductIDs(names ...catalog.ProductName) []int64 {
	db.t.Helper()
	return db.Catalog.ProductIDs(db.t, names...)
}

// CategoryID returns the id of the named category or fails the test.
func (db *TestDB) CategoryID(name catalog.CategoryName) int64 {
	db.t.Helper()
	return db.Catalog.CategoryID(db.t, name)
}

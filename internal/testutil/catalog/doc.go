// Package catalog provides test infrastructure for seeding a shop catalog
// and customer activity. It offers a fluent, type-safe API so tests describe
// the data they need by name instead of juggling generated ids.
//
// # Basic Usage
//
//	func TestMyFeature(t *testing.T) {
//		db := testutil.SetupTestDBWithBuilder(t, func(b catalog.Builder) catalog.Builder {
//			return b.WithFixture(catalog.FixtureShop)
//		})
//
//		id := db.ProductID(catalog.ProductRedRoses)
//		// Use db.Storage for your test...
//	}
//
// # Activity
//
// Orders, reviews, views, wishlist and cart rows are created in the order
// they were added to the builder, after all categories and products exist.
// Each order is dated one day after the previous one so purchase history has
// a stable recency order:
//
//	b.WithOrder(1, model.OrderDelivered, catalog.ProductRedRoses).
//		WithView(0, "session-1", catalog.ProductWhiteLilies).
//		WithWishlist(1, catalog.ProductOrchidPot)
package catalog

package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/bloom/internal/model"
	"github.com/Veraticus/bloom/internal/service"
)

// Builder provides a fluent interface for constructing test catalogs.
type Builder interface {
	// WithCategory adds a single category.
	WithCategory(name CategoryName) Builder

	// WithCategories adds several categories.
	WithCategories(names ...CategoryName) Builder

	// WithProduct adds an active product with default stock.
	WithProduct(name ProductName, category CategoryName, price float64) Builder

	// WithProductSpec adds a product with full control over its attributes.
	WithProductSpec(spec ProductSpec) Builder

	// WithFixture adds the categories and products of a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// WithOrder adds an order for userID containing one of each product.
	WithOrder(userID int64, status model.OrderStatus, products ...ProductName) Builder

	// WithReview adds a rating for a product.
	WithReview(userID int64, product ProductName, rating int) Builder

	// WithView adds a product view by a user or anonymous session.
	WithView(userID int64, sessionID string, product ProductName) Builder

	// WithWishlist adds a wishlist entry.
	WithWishlist(userID int64, product ProductName) Builder

	// WithCart adds a cart entry.
	WithCart(userID int64, product ProductName) Builder

	// Build creates everything in storage and returns the created catalog.
	Build(ctx context.Context, storage service.Storage) (Catalog, error)
}

// CategoryName is a strongly-typed category name.
type CategoryName string

// String returns the string representation of the category name.
func (c CategoryName) String() string {
	return string(c)
}

// ProductName is a strongly-typed product name.
type ProductName string

// String returns the string representation of the product name.
func (p ProductName) String() string {
	return string(p)
}

// ProductSpec describes a product to create.
type ProductSpec struct {
	Name       ProductName
	Category   CategoryName
	Price      float64
	Stock      int
	Inactive   bool
	OutOfStock bool
}

// DefaultStock is the stock given to products that do not set one.
const DefaultStock = 10

// baseOrderDate is the date of the first order a builder creates.
var baseOrderDate = time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)

// Catalog is the result of a build.
type Catalog struct {
	Categories map[CategoryName]model.Category
	Products   map[ProductName]model.Product
	Orders     []model.Order
}

// CategoryID returns the id of the named category or fails the test.
func (c Catalog) CategoryID(t *testing.T, name CategoryName) int64 {
	t.Helper()
	cat, ok := c.Categories[name]
	if !ok {
		t.Fatalf("category %q not found in test data", name)
	}
	return cat.ID
}

// ProductID returns the id of the named product or fails the test.
func (c Catalog) ProductID(t *testing.T, name ProductName) int64 {
	t.Helper()
	p, ok := c.Products[name]
	if !ok {
		t.Fatalf("product %q not found in test data", name)
	}
	return p.ID
}

// ProductIDs returns the ids of the named products in order.
func (c Catalog) ProductIDs(t *testing.T, names ...ProductName) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		ids = append(ids, c.ProductID(t, name))
	}
	return ids
}

// activity creates one row of customer behavior once products exist.
type activity func(ctx context.Context, storage service.Storage, c *Catalog) error

// catalogBuilder implements the Builder interface.
type catalogBuilder struct {
	t            *testing.T
	seen         map[CategoryName]struct{}
	categories   []CategoryName
	products     []ProductSpec
	activities   []activity
	orderCounter int
}

// NewBuilder creates a new catalog builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &catalogBuilder{
		t:    t,
		seen: make(map[CategoryName]struct{}),
	}
}

func (b *catalogBuilder) WithCategory(name CategoryName) Builder {
	if _, ok := b.seen[name]; !ok {
		b.seen[name] = struct{}{}
		b.categories = append(b.categories, name)
	}
	return b
}

func (b *catalogBuilder) WithCategories(names ...CategoryName) Builder {
	for _, name := range names {
		b.WithCategory(name)
	}
	return b
}

func (b *catalogBuilder) WithProduct(name ProductName, category CategoryName, price float64) Builder {
	return b.WithProductSpec(ProductSpec{Name: name, Category: category, Price: price})
}

func (b *catalogBuilder) WithProductSpec(spec ProductSpec) Builder {
	b.WithCategory(spec.Category)
	b.products = append(b.products, spec)
	return b
}

func (b *catalogBuilder) WithFixture(fixture Fixture) Builder {
	b.WithCategories(fixture.Categories()...)
	for _, spec := range fixture.Products() {
		b.WithProductSpec(spec)
	}
	return b
}

func (b *catalogBuilder) WithOrder(userID int64, status model.OrderStatus, products ...ProductName) Builder {
	date := baseOrderDate.AddDate(0, 0, b.orderCounter)
	b.orderCounter++
	b.activities = append(b.activities, func(ctx context.Context, storage service.Storage, c *Catalog) error {
		order := model.Order{UserID: userID, Status: status, OrderDate: date}
		for _, name := range products {
			p, err := c.product(name)
			if err != nil {
				return err
			}
			order.Items = append(order.Items, model.OrderItem{ProductID: p.ID, Quantity: 1, Price: p.Price})
		}
		if err := storage.CreateOrder(ctx, &order); err != nil {
			return fmt.Errorf("failed to create order for user %d: %w", userID, err)
		}
		c.Orders = append(c.Orders, order)
		return nil
	})
	return b
}

func (b *catalogBuilder) WithReview(userID int64, product ProductName, rating int) Builder {
	b.activities = append(b.activities, func(ctx context.Context, storage service.Storage, c *Catalog) error {
		p, err := c.product(product)
		if err != nil {
			return err
		}
		return storage.CreateReview(ctx, &model.Review{ProductID: p.ID, UserID: userID, Rating: rating})
	})
	return b
}

func (b *catalogBuilder) WithView(userID int64, sessionID string, product ProductName) Builder {
	b.activities = append(b.activities, func(ctx context.Context, storage service.Storage, c *Catalog) error {
		p, err := c.product(product)
		if err != nil {
			return err
		}
		return storage.TrackView(ctx, userID, sessionID, p.ID)
	})
	return b
}

func (b *catalogBuilder) WithWishlist(userID int64, product ProductName) Builder {
	b.activities = append(b.activities, func(ctx context.Context, storage service.Storage, c *Catalog) error {
		p, err := c.product(product)
		if err != nil {
			return err
		}
		return storage.AddToWishlist(ctx, userID, p.ID)
	})
	return b
}

func (b *catalogBuilder) WithCart(userID int64, product ProductName) Builder {
	b.activities = append(b.activities, func(ctx context.Context, storage service.Storage, c *Catalog) error {
		p, err := c.product(product)
		if err != nil {
			return err
		}
		return storage.AddToCart(ctx, userID, p.ID, 1)
	})
	return b
}

func (b *catalogBuilder) Build(ctx context.Context, storage service.Storage) (Catalog, error) {
	b.t.Helper()

	result := Catalog{
		Categories: make(map[CategoryName]model.Category, len(b.categories)),
		Products:   make(map[ProductName]model.Product, len(b.products)),
	}

	for i, name := range b.categories {
		cat := model.Category{
			Name:        name.String(),
			Slug:        fmt.Sprintf("category-%d", i+1),
			Description: "Test description for " + name.String(),
			IsActive:    true,
		}
		if err := storage.CreateCategory(ctx, &cat); err != nil {
			return Catalog{}, fmt.Errorf("failed to create category %q: %w", name, err)
		}
		result.Categories[name] = cat
	}

	for i, spec := range b.products {
		if _, dup := result.Products[spec.Name]; dup {
			return Catalog{}, fmt.Errorf("duplicate product %q", spec.Name)
		}
		stock := spec.Stock
		switch {
		case spec.OutOfStock:
			stock = 0
		case stock == 0:
			stock = DefaultStock
		}
		product := model.Product{
			Name:          spec.Name.String(),
			Slug:          fmt.Sprintf("product-%d", i+1),
			CategoryID:    result.Categories[spec.Category].ID,
			CategoryName:  spec.Category.String(),
			Price:         spec.Price,
			StockQuantity: stock,
			IsActive:      !spec.Inactive,
			ImageURL:      fmt.Sprintf("/images/product-%d.jpg", i+1),
		}
		if err := storage.CreateProduct(ctx, &product); err != nil {
			return Catalog{}, fmt.Errorf("failed to create product %q: %w", spec.Name, err)
		}
		result.Products[spec.Name] = product
	}

	for _, act := range b.activities {
		if err := act(ctx, storage, &result); err != nil {
			return Catalog{}, err
		}
	}

	return result, nil
}

func (c Catalog) product(name ProductName) (model.Product, error) {
	p, ok := c.Products[name]
	if !ok {
		return model.Product{}, fmt.Errorf("product %q not in catalog", name)
	}
	return p, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/model"
	"github.com/Veraticus/bloom/internal/service"
)

// productColumns selects a product with its ranking counters. Counters use
// correlated sub-queries so joins never multiply each other.
const productColumns = `
	p.product_id, p.name, p.slug, COALESCE(p.description, ''), p.price,
	p.category_id, c.name, p.stock_quantity, p.is_active, p.created_at,
	COALESCE((SELECT pi.image_url FROM product_images pi
		WHERE pi.product_id = p.product_id AND pi.is_primary = 1 LIMIT 1), '') AS image_url,
	(SELECT COUNT(*) FROM order_items oi WHERE oi.product_id = p.product_id) AS order_count,
	(SELECT COUNT(*) FROM view_history vh WHERE vh.product_id = p.product_id) AS view_count,
	(SELECT COUNT(*) FROM wishlist w WHERE w.product_id = p.product_id) AS wishlist_count,
	(SELECT AVG(r.rating) FROM reviews r WHERE r.product_id = p.product_id) AS avg_rating`

const productFrom = `
	FROM products p
	JOIN categories c ON p.category_id = c.category_id`

const availableClause = `p.is_active = 1 AND p.stock_quantity > 0`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (model.Product, error) {
	var (
		p         model.Product
		avgRating sql.NullFloat64
		createdAt timestamp
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price,
		&p.CategoryID, &p.CategoryName, &p.StockQuantity, &p.IsActive, &createdAt,
		&p.ImageURL, &p.OrderCount, &p.ViewCount, &p.WishlistCount, &avgRating,
	)
	if err != nil {
		return p, err
	}
	p.CreatedAt = createdAt.Time
	if avgRating.Valid {
		rating := avgRating.Float64
		p.AvgRating = &rating
	}
	return p, nil
}

func (s *SQLiteStorage) queryProducts(ctx context.Context, what, query string, args ...any) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.StoreError(what, err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, common.StoreError(what+": scan", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StoreError(what+": iterate", err)
	}

	slog.Debug("queried products", "query", what, "count", len(products))
	return products, nil
}

// CreateCategory inserts a category and sets its ID.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, slug, description, is_active) VALUES (?, ?, ?, ?)`,
		category.Name, category.Slug, category.Description, category.IsActive)
	if err != nil {
		return common.StoreError("insert category", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return common.StoreError("category id", err)
	}
	category.ID = id
	return nil
}

// CreateProduct inserts a product, plus its primary image when ImageURL is set.
func (s *SQLiteStorage) CreateProduct(ctx context.Context, product *model.Product) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProduct(product); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.StoreError("begin product insert", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO products (category_id, name, slug, description, price, stock_quantity, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		product.CategoryID, product.Name, product.Slug, product.Description,
		product.Price, product.StockQuantity, product.IsActive)
	if err != nil {
		return common.StoreError("insert product", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return common.StoreError("product id", err)
	}

	if product.ImageURL != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_images (product_id, image_url, is_primary) VALUES (?, ?, 1)`,
			id, product.ImageURL); err != nil {
			return common.StoreError("insert product image", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return common.StoreError("commit product insert", err)
	}
	product.ID = id
	return nil
}

// GetProduct returns a product by id regardless of availability.
func (s *SQLiteStorage) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "productID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+productFrom+` WHERE p.product_id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.StoreError("get product", err)
	}
	return &p, nil
}

// GetProductsByIDs returns the products that exist among ids, in id order.
func (s *SQLiteStorage) GetProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + productColumns + productFrom +
		` WHERE p.product_id IN (` + placeholders(len(ids)) + `) ORDER BY p.product_id`
	return s.queryProducts(ctx, "get products by ids", query, int64Args(ids)...)
}

func rankColumn(signal service.RankSignal) (string, error) {
	switch signal {
	case "", service.RankByOrders:
		return "order_count", nil
	case service.RankByViews:
		return "view_count", nil
	case service.RankByWishlist:
		return "wishlist_count", nil
	}
	return "", fmt.Errorf("unknown rank signal %q", signal)
}

// SearchRanked returns available products ordered by the query's signal
// counter, then average rating. Product id breaks remaining ties.
func (s *SQLiteStorage) SearchRanked(ctx context.Context, q service.RankQuery) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	column, err := rankColumn(q.Signal)
	if err != nil {
		return nil, err
	}
	if q.Limit <= 0 {
		return nil, nil
	}

	var (
		where = []string{availableClause}
		args  []any
	)
	if len(q.CategoryIDs) > 0 {
		where = append(where, `p.category_id IN (`+placeholders(len(q.CategoryIDs))+`)`)
		args = append(args, int64Args(q.CategoryIDs)...)
	}
	if len(q.ExcludeIDs) > 0 {
		where = append(where, `p.product_id NOT IN (`+placeholders(len(q.ExcludeIDs))+`)`)
		args = append(args, int64Args(q.ExcludeIDs)...)
	}
	args = append(args, q.Limit)

	query := `SELECT ` + productColumns + productFrom +
		` WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY ` + column + ` DESC, avg_rating DESC, p.product_id ASC LIMIT ?`
	return s.queryProducts(ctx, "search ranked by "+column, query, args...)
}

// SearchByCategoryAndPriceBand returns available products in the given
// categories. With a price band set, candidates must fall inside it and are
// ordered by distance to the anchor price first.
func (s *SQLiteStorage) SearchByCategoryAndPriceBand(ctx context.Context, q service.PriceBandQuery) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if q.Limit <= 0 || len(q.CategoryIDs) == 0 {
		return nil, nil
	}

	where := []string{availableClause, `p.category_id IN (` + placeholders(len(q.CategoryIDs)) + `)`}
	args := int64Args(q.CategoryIDs)
	if len(q.ExcludeIDs) > 0 {
		where = append(where, `p.product_id NOT IN (`+placeholders(len(q.ExcludeIDs))+`)`)
		args = append(args, int64Args(q.ExcludeIDs)...)
	}

	banded := q.Low != 0 || q.High != 0
	order := `order_count DESC, avg_rating DESC, p.product_id ASC`
	if banded {
		where = append(where, `p.price BETWEEN ? AND ?`)
		args = append(args, q.Low, q.High)
		order = `ABS(p.price - ?) ASC, ` + order
		args = append(args, q.Anchor)
	}
	args = append(args, q.Limit)

	query := `SELECT ` + productColumns + productFrom +
		` WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY ` + order + ` LIMIT ?`
	return s.queryProducts(ctx, "search by category and price band", query, args...)
}

// FindProductsByName returns available products whose name contains name,
// compared case-insensitively.
func (s *SQLiteStorage) FindProductsByName(ctx context.Context, name string, limit int) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `SELECT ` + productColumns + productFrom +
		` WHERE unicode_lower(p.name) LIKE ? ESCAPE '\' AND ` + availableClause +
		` ORDER BY p.product_id LIMIT ?`
	return s.queryProducts(ctx, "find products by name", query,
		likePattern(strings.ToLower(strings.TrimSpace(name))), sqlLimit(limit))
}

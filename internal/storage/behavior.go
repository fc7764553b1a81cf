package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/model"
)

// TrackView records a product page view for a user or anonymous session.
func (s *SQLiteStorage) TrackView(ctx context.Context, userID int64, sessionID string, productID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(sessionID, "sessionID"); err != nil {
		return err
	}
	if err := validateID(productID, "productID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO view_history (user_id, session_id, product_id) VALUES (?, ?, ?)`,
		nullableID(userID), sessionID, productID)
	if err != nil {
		return common.StoreError("track view", err)
	}
	return nil
}

// GetInteractions returns the subject's most recent interactions of one kind,
// one row per product. Purchase, wishlist and cart history need a user id;
// views fall back to the session id. View rows carry no category; resolve it
// with GetProductsByIDs. A non-positive limit returns the full history.
func (s *SQLiteStorage) GetInteractions(ctx context.Context, subject model.Subject, kind model.InteractionKind, limit int) ([]model.Interaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		query string
		args  []any
	)
	switch kind {
	case model.InteractionPurchase:
		if !subject.Known() {
			return nil, nil
		}
		query = `
			SELECT p.product_id, p.category_id, MAX(o.order_date) AS last_at
			FROM orders o
			JOIN order_items oi ON o.order_id = oi.order_id
			JOIN products p ON oi.product_id = p.product_id
			WHERE o.user_id = ? AND o.status != 'cancelled'
			GROUP BY p.product_id
			ORDER BY last_at DESC, MAX(oi.order_item_id) DESC
			LIMIT ?`
		args = []any{subject.UserID, sqlLimit(limit)}

	case model.InteractionView:
		column, value := "user_id", any(subject.UserID)
		if !subject.Known() {
			if subject.SessionID == "" {
				return nil, nil
			}
			column, value = "session_id", subject.SessionID
		}
		query = `
			SELECT product_id, 0, MAX(viewed_at) AS last_at
			FROM view_history
			WHERE ` + column + ` = ?
			GROUP BY product_id
			ORDER BY last_at DESC, MAX(view_id) DESC
			LIMIT ?`
		args = []any{value, sqlLimit(limit)}

	case model.InteractionWishlist, model.InteractionCart:
		if !subject.Known() {
			return nil, nil
		}
		table, idColumn := "wishlist", "wishlist_id"
		if kind == model.InteractionCart {
			table, idColumn = "cart_items", "cart_item_id"
		}
		query = `
			SELECT t.product_id, p.category_id, t.added_at
			FROM ` + table + ` t
			JOIN products p ON t.product_id = p.product_id
			WHERE t.user_id = ?
			ORDER BY t.added_at DESC, t.` + idColumn + ` DESC
			LIMIT ?`
		args = []any{subject.UserID, sqlLimit(limit)}

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.StoreError(fmt.Sprintf("query %s interactions", kind), err)
	}
	defer rows.Close()

	var interactions []model.Interaction
	for rows.Next() {
		var (
			in = model.Interaction{Kind: kind}
			at timestamp
		)
		if err := rows.Scan(&in.ProductID, &in.CategoryID, &at); err != nil {
			return nil, common.StoreError(fmt.Sprintf("scan %s interaction", kind), err)
		}
		in.OccurredAt = at.Time
		interactions = append(interactions, in)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StoreError(fmt.Sprintf("iterate %s interactions", kind), err)
	}

	slog.Debug("retrieved interactions", "kind", kind, "count", len(interactions))
	return interactions, nil
}

// CreateOrder inserts an order with its items and sets the generated ids.
func (s *SQLiteStorage) CreateOrder(ctx context.Context, order *model.Order) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOrder(order); err != nil {
		return err
	}
	if order.Status == "" {
		order.Status = model.OrderPending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.StoreError("begin order insert", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, status, order_date) VALUES (?, ?, ?)`,
		order.UserID, string(order.Status), formatTime(order.OrderDate))
	if err != nil {
		return common.StoreError("insert order", err)
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		return common.StoreError("order id", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return common.StoreError("prepare order items", err)
	}
	defer stmt.Close()

	for i := range order.Items {
		item := &order.Items[i]
		res, err := stmt.ExecContext(ctx, orderID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return common.StoreError("insert order item", err)
		}
		if item.ID, err = res.LastInsertId(); err != nil {
			return common.StoreError("order item id", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return common.StoreError("commit order", err)
	}
	order.ID = orderID
	return nil
}

// CreateReview records a product rating.
func (s *SQLiteStorage) CreateReview(ctx context.Context, review *model.Review) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateReview(review); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (product_id, user_id, rating, comment) VALUES (?, ?, ?, ?)`,
		review.ProductID, review.UserID, review.Rating, review.Comment)
	if err != nil {
		return common.StoreError("insert review", err)
	}
	review.ID, err = result.LastInsertId()
	if err != nil {
		return common.StoreError("review id", err)
	}
	return nil
}

// AddToWishlist adds a product to a user's wishlist. Adding twice is a no-op.
func (s *SQLiteStorage) AddToWishlist(ctx context.Context, userID, productID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(userID, "userID"); err != nil {
		return err
	}
	if err := validateID(productID, "productID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO wishlist (user_id, product_id) VALUES (?, ?)`, userID, productID)
	if err != nil {
		return common.StoreError("add to wishlist", err)
	}
	return nil
}

// AddToCart adds quantity of a product to a user's cart.
func (s *SQLiteStorage) AddToCart(ctx context.Context, userID, productID int64, quantity int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(userID, "userID"); err != nil {
		return err
	}
	if err := validateID(productID, "productID"); err != nil {
		return err
	}
	if quantity <= 0 {
		quantity = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity) VALUES (?, ?, ?)
		ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = quantity + excluded.quantity`,
		userID, productID, quantity)
	if err != nil {
		return common.StoreError("add to cart", err)
	}
	return nil
}

// GetUserPurchaseHistory returns the products a user bought in non-cancelled
// orders, most recent first.
func (s *SQLiteStorage) GetUserPurchaseHistory(ctx context.Context, userID int64, limit int) ([]model.PurchasedProduct, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.product_id, p.name, p.slug, p.price, p.category_id, c.name,
			COALESCE((SELECT pi.image_url FROM product_images pi
				WHERE pi.product_id = p.product_id AND pi.is_primary = 1 LIMIT 1), ''),
			COUNT(oi.order_item_id) AS purchase_count,
			SUM(oi.quantity) AS total_quantity,
			MAX(o.order_date) AS last_purchase_date
		FROM orders o
		JOIN order_items oi ON o.order_id = oi.order_id
		JOIN products p ON oi.product_id = p.product_id
		JOIN categories c ON p.category_id = c.category_id
		WHERE o.user_id = ? AND o.status != 'cancelled'
		GROUP BY p.product_id
		ORDER BY last_purchase_date DESC, purchase_count DESC, p.product_id ASC
		LIMIT ?`, userID, sqlLimit(limit))
	if err != nil {
		return nil, common.StoreError("query purchase history", err)
	}
	defer rows.Close()

	var history []model.PurchasedProduct
	for rows.Next() {
		var (
			pp   model.PurchasedProduct
			last timestamp
		)
		if err := rows.Scan(&pp.ID, &pp.Name, &pp.Slug, &pp.Price, &pp.CategoryID, &pp.CategoryName,
			&pp.ImageURL, &pp.PurchaseCount, &pp.TotalQuantity, &last); err != nil {
			return nil, common.StoreError("scan purchase history", err)
		}
		pp.LastPurchaseDate = last.Time
		history = append(history, pp)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StoreError("iterate purchase history", err)
	}
	return history, nil
}

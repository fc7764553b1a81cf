// Package model defines the core data structures for the bloom application.
package model

import "time"

// Product is a catalog item together with the aggregate counters used for ranking.
// Counters are only populated by ranking queries.
type Product struct {
	CreatedAt     time.Time `json:"created_at"`
	AvgRating     *float64  `json:"avg_rating,omitempty"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description,omitempty"`
	CategoryName  string    `json:"category_name,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	ID            int64     `json:"product_id"`
	CategoryID    int64     `json:"category_id"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	OrderCount    int       `json:"order_count,omitempty"`
	ViewCount     int       `json:"view_count,omitempty"`
	WishlistCount int       `json:"wishlist_count,omitempty"`
	IsActive      bool      `json:"is_active"`
}

// Available reports whether the product can be recommended.
func (p Product) Available() bool {
	return p.IsActive && p.StockQuantity > 0
}

// PurchasedProduct is one row of a user's purchase history.
type PurchasedProduct struct {
	LastPurchaseDate time.Time `json:"last_purchase_date"`
	Product
	PurchaseCount int `json:"purchase_count"`
	TotalQuantity int `json:"total_quantity"`
}

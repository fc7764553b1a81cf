// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/bloom/internal/model"
)

// RankSignal selects the popularity counter a catalog query orders by.
type RankSignal string

// Ranking signals.
const (
	// RankByOrders orders by order line-item count.
	RankByOrders RankSignal = "orders"
	// RankByViews orders by view count.
	RankByViews RankSignal = "views"
	// RankByWishlist orders by wishlist count.
	RankByWishlist RankSignal = "wishlist"
)

// RankQuery describes a ranked catalog lookup. An empty CategoryIDs means the
// whole catalog. Results are active, in-stock products ordered by the signal's
// counter descending, then average rating descending.
type RankQuery struct {
	Signal      RankSignal
	CategoryIDs []int64
	ExcludeIDs  []int64
	Limit       int
}

// PriceBandQuery describes a similarity lookup inside one category.
// When Low and High are both zero the price band is not applied and results
// are ordered by order count then rating; otherwise by distance to Anchor first.
type PriceBandQuery struct {
	CategoryIDs []int64
	ExcludeIDs  []int64
	Anchor      float64
	Low         float64
	High        float64
	Limit       int
}

// InteractionReader reads behavioral history.
type InteractionReader interface {
	// GetInteractions returns the subject's most recent interactions of one kind.
	GetInteractions(ctx context.Context, subject model.Subject, kind model.InteractionKind, limit int) ([]model.Interaction, error)
	// GetProductsByIDs returns the products that still exist among ids.
	GetProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
}

// CatalogReader serves ranked catalog lookups.
type CatalogReader interface {
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	SearchRanked(ctx context.Context, query RankQuery) ([]model.Product, error)
	SearchByCategoryAndPriceBand(ctx context.Context, query PriceBandQuery) ([]model.Product, error)
	FindProductsByName(ctx context.Context, name string, limit int) ([]model.Product, error)
}

// KnowledgeReader searches the flower knowledge base.
type KnowledgeReader interface {
	SearchKnowledgeBase(ctx context.Context, keywords string) ([]model.FlowerKnowledge, error)
}

// ConversationStore persists chat turns.
type ConversationStore interface {
	GetOrCreateConversation(ctx context.Context, userID int64, sessionID string) (*model.Conversation, error)
	AppendMessage(ctx context.Context, msg *model.Message) (int64, error)
	AttachRecommendation(ctx context.Context, messageID, productID int64, reason string, score float64) error
	GetConversationHistory(ctx context.Context, conversationID int64, limit int) ([]model.Message, error)
	GetMessageRecommendations(ctx context.Context, messageID int64) ([]model.ChatRecommendation, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	InteractionReader
	CatalogReader
	KnowledgeReader
	ConversationStore

	// Behavior tracking
	TrackView(ctx context.Context, userID int64, sessionID string, productID int64) error
	GetUserPurchaseHistory(ctx context.Context, userID int64, limit int) ([]model.PurchasedProduct, error)

	// Preferences
	SaveUserPreference(ctx context.Context, pref *model.UserPreference) error
	GetUserPreferences(ctx context.Context, userID int64) ([]model.UserPreference, error)

	// Catalog management
	CreateCategory(ctx context.Context, category *model.Category) error
	CreateProduct(ctx context.Context, product *model.Product) error
	CreateOrder(ctx context.Context, order *model.Order) error
	CreateReview(ctx context.Context, review *model.Review) error
	AddToWishlist(ctx context.Context, userID, productID int64) error
	AddToCart(ctx context.Context, userID, productID int64, quantity int) error
	SaveKnowledge(ctx context.Context, entry *model.FlowerKnowledge) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

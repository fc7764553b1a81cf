package model

import "time"

// InteractionKind identifies the behavioral signal an interaction belongs to.
type InteractionKind string

const (
	// InteractionPurchase is a line item of a non-cancelled order.
	InteractionPurchase InteractionKind = "purchase"
	// InteractionView is a product detail page view.
	InteractionView InteractionKind = "view"
	// InteractionWishlist is a wishlist entry.
	InteractionWishlist InteractionKind = "wishlist"
	// InteractionCart is a cart entry.
	InteractionCart InteractionKind = "cart"
)

// Interaction is one behavioral row for a subject.
type Interaction struct {
	OccurredAt time.Time
	Kind       InteractionKind
	ProductID  int64
	CategoryID int64
}

// Subject identifies who is being profiled: a signed-in user, an anonymous
// session, or both.
type Subject struct {
	SessionID string
	UserID    int64
}

// Known reports whether the subject is a signed-in user.
func (s Subject) Known() bool {
	return s.UserID > 0
}

// Anonymous reports whether the subject carries neither a user nor a session.
func (s Subject) Anonymous() bool {
	return !s.Known() && s.SessionID == ""
}

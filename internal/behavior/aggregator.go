// Package behavior reduces a customer's interaction history to the category
// and product sets used by the recommendation ranker.
package behavior

import (
	"context"
	"fmt"

	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/model"
	"github.com/Veraticus/bloom/internal/service"
	"golang.org/x/sync/errgroup"
)

// History windows per signal. Wishlist and cart are read in full.
const (
	PurchaseWindow = 50
	ViewWindow     = 30
)

// Aggregator builds behavior profiles from stored interactions.
type Aggregator struct {
	reader service.InteractionReader
}

// NewAggregator creates an aggregator reading from reader.
func NewAggregator(reader service.InteractionReader) *Aggregator {
	return &Aggregator{reader: reader}
}

// Aggregate returns the profile of the subject identified by userID and
// sessionID. A zero userID is an anonymous visitor; an anonymous visitor
// without a session yields an empty profile. Any failed read aborts the
// whole aggregation.
func (a *Aggregator) Aggregate(ctx context.Context, userID int64, sessionID string) (*model.BehaviorProfile, error) {
	subject := model.Subject{UserID: userID, SessionID: sessionID}
	profile := model.NewBehaviorProfile()
	if subject.Anonymous() {
		return profile, nil
	}

	var purchases, views, wishlist, cart []model.Interaction
	g, gctx := errgroup.WithContext(ctx)
	fetch := func(kind model.InteractionKind, limit int, dst *[]model.Interaction) {
		g.Go(func() error {
			rows, err := a.reader.GetInteractions(gctx, subject, kind, limit)
			if err != nil {
				return fmt.Errorf("load %s history: %w", kind, err)
			}
			*dst = rows
			return nil
		})
	}
	fetch(model.InteractionPurchase, PurchaseWindow, &purchases)
	fetch(model.InteractionView, ViewWindow, &views)
	fetch(model.InteractionWishlist, 0, &wishlist)
	fetch(model.InteractionCart, 0, &cart)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	views, err := a.resolveCategories(ctx, views)
	if err != nil {
		return nil, err
	}

	collect(purchases, profile.PurchasedCategories, profile.PurchasedProducts)
	collect(views, profile.ViewedCategories, profile.ViewedProducts)
	collect(wishlist, profile.WishlistCategories, profile.WishlistProducts)
	collect(cart, profile.CartCategories, profile.CartProducts)
	profile.TotalInteractions = len(purchases) + len(views) + len(wishlist) + len(cart)

	common.LogDebug(ctx, "aggregated behavior profile", common.Fields{
		"user_id":            userID,
		"session_id":         sessionID,
		"purchases":          len(purchases),
		"views":              len(views),
		"wishlist":           len(wishlist),
		"cart":               len(cart),
		"total_interactions": profile.TotalInteractions,
	})
	return profile, nil
}

// resolveCategories fills in the category of interactions that were stored
// without one. Interactions whose product no longer exists keep their
// product id but contribute no category.
func (a *Aggregator) resolveCategories(ctx context.Context, interactions []model.Interaction) ([]model.Interaction, error) {
	var missing []int64
	for _, in := range interactions {
		if in.CategoryID == 0 {
			missing = append(missing, in.ProductID)
		}
	}
	if len(missing) == 0 {
		return interactions, nil
	}

	products, err := a.reader.GetProductsByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("resolve viewed products: %w", err)
	}
	categoryOf := make(map[int64]int64, len(products))
	for _, p := range products {
		categoryOf[p.ID] = p.CategoryID
	}

	out := make([]model.Interaction, len(interactions))
	for i, in := range interactions {
		if in.CategoryID == 0 {
			in.CategoryID = categoryOf[in.ProductID]
		}
		out[i] = in
	}
	return out, nil
}

func collect(interactions []model.Interaction, categories, products *model.IDSet) {
	for _, in := range interactions {
		products.Add(in.ProductID)
		if in.CategoryID > 0 {
			categories.Add(in.CategoryID)
		}
	}
}

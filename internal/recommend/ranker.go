// Package recommend ranks catalog products for a customer from their
// behavior profile, and finds products similar to a given one.
package recommend

import (
	"context"
	"fmt"

	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/model"
	"github.com/Veraticus/bloom/internal/service"
	"golang.org/x/sync/errgroup"
)

// DefaultLimit is used when a caller asks for fewer than one product.
const DefaultLimit = 8

// signal is one weighted sub-query of a personalized ranking.
type signal struct {
	categories func(*model.BehaviorProfile) *model.IDSet
	source     model.RecommendationSource
	rank       service.RankSignal
	percent    int
}

// signals are listed in merge priority order. Earlier signals win duplicates.
var signals = []signal{
	{
		source:     model.SourcePurchase,
		rank:       service.RankByOrders,
		percent:    40,
		categories: func(p *model.BehaviorProfile) *model.IDSet { return p.PurchasedCategories },
	},
	{
		source:     model.SourceView,
		rank:       service.RankByViews,
		percent:    30,
		categories: func(p *model.BehaviorProfile) *model.IDSet { return p.ViewedCategories },
	},
	{
		source:     model.SourceWishlist,
		rank:       service.RankByWishlist,
		percent:    20,
		categories: func(p *model.BehaviorProfile) *model.IDSet { return p.WishlistCategories },
	},
}

// quota returns ceil(limit * percent / 100).
func quota(limit, percent int) int {
	return (limit*percent + 99) / 100
}

// Ranker produces ranked product lists from the catalog.
type Ranker struct {
	catalog service.CatalogReader
}

// NewRanker creates a ranker over catalog.
func NewRanker(catalog service.CatalogReader) *Ranker {
	return &Ranker{catalog: catalog}
}

// Recommend returns at most limit distinct available products for profile.
// A cold profile gets the global popularity ranking. Otherwise the purchase,
// view and wishlist sub-queries each fill their share of limit from the
// categories the customer touched, skipping products the customer already
// touched, and popularity fills whatever is left.
func (r *Ranker) Recommend(ctx context.Context, profile *model.BehaviorProfile, limit int) ([]model.Recommendation, error) {
	if limit < 1 {
		limit = DefaultLimit
	}

	if profile.Cold() {
		popular, err := r.catalog.SearchRanked(ctx, service.RankQuery{Signal: service.RankByOrders, Limit: limit})
		if err != nil {
			return nil, fmt.Errorf("popular products: %w", err)
		}
		recs := make([]model.Recommendation, 0, len(popular))
		for _, p := range popular {
			recs = append(recs, model.Recommendation{Product: p, Source: model.SourcePopular})
		}
		return finalize(recs, limit), nil
	}

	touched := touchedProducts(profile)
	results := make([][]model.Product, len(signals))

	g, gctx := errgroup.WithContext(ctx)
	for i, sig := range signals {
		i, sig := i, sig
		categories := sig.categories(profile)
		if categories.Len() == 0 {
			continue
		}
		g.Go(func() error {
			products, err := r.catalog.SearchRanked(gctx, service.RankQuery{
				Signal:      sig.rank,
				CategoryIDs: categories.IDs(),
				ExcludeIDs:  touched,
				Limit:       quota(limit, sig.percent),
			})
			if err != nil {
				return fmt.Errorf("%s-based products: %w", sig.source, err)
			}
			results[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	selected := model.NewIDSet()
	recs := make([]model.Recommendation, 0, limit)
	fields := common.Fields{"limit": limit}
	for i, sig := range signals {
		fields[string(sig.source)] = len(results[i])
		for _, p := range results[i] {
			if selected.Add(p.ID) {
				recs = append(recs, model.Recommendation{Product: p, Source: sig.source})
			}
		}
	}

	if missing := limit - len(recs); missing > 0 {
		popular, err := r.catalog.SearchRanked(ctx, service.RankQuery{
			Signal:     service.RankByOrders,
			ExcludeIDs: selected.IDs(),
			Limit:      missing,
		})
		if err != nil {
			return nil, fmt.Errorf("popular backfill: %w", err)
		}
		fields[string(model.SourcePopular)] = len(popular)
		for _, p := range popular {
			if selected.Add(p.ID) {
				recs = append(recs, model.Recommendation{Product: p, Source: model.SourcePopular})
			}
		}
	}

	common.LogDebug(ctx, "ranked recommendations", fields)
	return finalize(recs, limit), nil
}

// touchedProducts returns every product the profile has interacted with.
func touchedProducts(p *model.BehaviorProfile) []int64 {
	all := model.NewIDSet()
	for _, set := range []*model.IDSet{p.PurchasedProducts, p.ViewedProducts, p.WishlistProducts, p.CartProducts} {
		for _, id := range set.IDs() {
			all.Add(id)
		}
	}
	return all.IDs()
}

// finalize truncates recs to limit and scores them by position.
func finalize(recs []model.Recommendation, limit int) []model.Recommendation {
	if len(recs) > limit {
		recs = recs[:limit]
	}
	for i := range recs {
		recs[i].Score = float64(limit-i) / float64(limit)
	}
	return recs
}

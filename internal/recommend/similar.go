package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/model"
	"github.com/Veraticus/bloom/internal/service"
)

// PriceBand is the relative distance from the anchor price that still counts
// as a similar price.
const PriceBand = 0.3

// Similar returns up to limit available products from the category of
// productID. Products priced within PriceBand of it come first, closest price
// first; the rest of the category fills any remaining slots. The anchor is
// never included. A missing anchor yields an empty list and common.ErrNotFound.
func (r *Ranker) Similar(ctx context.Context, productID int64, limit int) ([]model.Recommendation, error) {
	if limit < 1 {
		limit = DefaultLimit
	}

	anchor, err := r.catalog.GetProduct(ctx, productID)
	if errors.Is(err, common.ErrNotFound) {
		return []model.Recommendation{}, err
	}
	if err != nil {
		return nil, fmt.Errorf("load anchor product: %w", err)
	}

	categories := []int64{anchor.CategoryID}
	banded, err := r.catalog.SearchByCategoryAndPriceBand(ctx, service.PriceBandQuery{
		CategoryIDs: categories,
		ExcludeIDs:  []int64{anchor.ID},
		Anchor:      anchor.Price,
		Low:         anchor.Price * (1 - PriceBand),
		High:        anchor.Price * (1 + PriceBand),
		Limit:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("similar products in price band: %w", err)
	}

	selected := model.NewIDSet()
	recs := make([]model.Recommendation, 0, limit)
	for _, p := range banded {
		if p.ID != anchor.ID && selected.Add(p.ID) {
			recs = append(recs, model.Recommendation{Product: p, Source: model.SourceSimilar})
		}
	}

	if missing := limit - len(recs); missing > 0 {
		rest, err := r.catalog.SearchByCategoryAndPriceBand(ctx, service.PriceBandQuery{
			CategoryIDs: categories,
			ExcludeIDs:  append(selected.IDs(), anchor.ID),
			Limit:       missing,
		})
		if err != nil {
			return nil, fmt.Errorf("similar products in category: %w", err)
		}
		for _, p := range rest {
			if p.ID != anchor.ID && selected.Add(p.ID) {
				recs = append(recs, model.Recommendation{Product: p, Source: model.SourceSimilar})
			}
		}
	}

	common.LogDebug(ctx, "ranked similar products", common.Fields{
		"product_id": productID,
		"in_band":    len(banded),
		"total":      len(recs),
	})
	return finalize(recs, limit), nil
}

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"testing"

	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/model"
	"github.com/Veraticus/bloom/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog ranks an in-memory product list the way the store does.
type fakeCatalog struct {
	failOn   service.RankSignal
	products []model.Product
	queries  []service.RankQuery
	bands    []service.PriceBandQuery
	mu       sync.Mutex
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int64) (*model.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product %d: %w", id, common.ErrNotFound)
}

func counter(p model.Product, signal service.RankSignal) int {
	switch signal {
	case service.RankByViews:
		return p.ViewCount
	case service.RankByWishlist:
		return p.WishlistCount
	}
	return p.OrderCount
}

func rating(p model.Product) float64 {
	if p.AvgRating == nil {
		return -1
	}
	return *p.AvgRating
}

func (f *fakeCatalog) filter(categories, exclude []int64) []model.Product {
	var out []model.Product
	for _, p := range f.products {
		if !p.Available() || slices.Contains(exclude, p.ID) {
			continue
		}
		if len(categories) > 0 && !slices.Contains(categories, p.CategoryID) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func truncate(products []model.Product, limit int) []model.Product {
	if len(products) > limit {
		return products[:limit]
	}
	return products
}

func (f *fakeCatalog) SearchRanked(_ context.Context, q service.RankQuery) ([]model.Product, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if q.Signal == f.failOn {
		return nil, common.StoreError("search ranked", errors.New("database is locked"))
	}
	out := f.filter(q.CategoryIDs, q.ExcludeIDs)
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := counter(out[i], q.Signal), counter(out[j], q.Signal)
		if ci != cj {
			return ci > cj
		}
		if rating(out[i]) != rating(out[j]) {
			return rating(out[i]) > rating(out[j])
		}
		return out[i].ID < out[j].ID
	})
	return truncate(out, q.Limit), nil
}

func (f *fakeCatalog) SearchByCategoryAndPriceBand(_ context.Context, q service.PriceBandQuery) ([]model.Product, error) {
	f.bands = append(f.bands, q)
	if len(q.CategoryIDs) == 0 {
		return nil, nil
	}
	banded := q.Low != 0 || q.High != 0
	var out []model.Product
	for _, p := range f.filter(q.CategoryIDs, q.ExcludeIDs) {
		if banded && (p.Price < q.Low || p.Price > q.High) {
			continue
		}
		out = append(out, p)
	}
	diff := func(p model.Product) float64 {
		if !banded {
			return 0
		}
		d := p.Price - q.Anchor
		if d < 0 {
			return -d
		}
		return d
	}
	sort.SliceStable(out, func(i, j int) bool {
		if diff(out[i]) != diff(out[j]) {
			return diff(out[i]) < diff(out[j])
		}
		if out[i].OrderCount != out[j].OrderCount {
			return out[i].OrderCount > out[j].OrderCount
		}
		if rating(out[i]) != rating(out[j]) {
			return rating(out[i]) > rating(out[j])
		}
		return out[i].ID < out[j].ID
	})
	return truncate(out, q.Limit), nil
}

func (f *fakeCatalog) FindProductsByName(context.Context, string, int) ([]model.Product, error) {
	return nil, nil
}

func product(id, category int64, price float64, orders int) model.Product {
	return model.Product{ID: id, CategoryID: category, Price: price, OrderCount: orders, IsActive: true, StockQuantity: 5}
}

// scenarioCatalog has category 5 with the customer's purchases 10 and 11
// plus six other products, and a popular category 9.
func scenarioCatalog() *fakeCatalog {
	products := []model.Product{
		product(10, 5, 300000, 50),
		product(11, 5, 320000, 40),
	}
	for i := int64(0); i < 6; i++ {
		products = append(products, product(20+i, 5, 250000+float64(i)*10000, int(6-i)))
	}
	for i := int64(0); i < 10; i++ {
		products = append(products, product(100+i, 9, 500000, 100-int(i)))
	}
	return &fakeCatalog{products: products}
}

func purchaseProfile() *model.BehaviorProfile {
	profile := model.NewBehaviorProfile()
	profile.PurchasedCategories.Add(5)
	profile.PurchasedProducts.Add(10)
	profile.PurchasedProducts.Add(11)
	profile.TotalInteractions = 2
	return profile
}

func assertDistinct(t *testing.T, recs []model.Recommendation) {
	t.Helper()
	seen := map[int64]bool{}
	for _, r := range recs {
		assert.False(t, seen[r.Product.ID], "duplicate product %d", r.Product.ID)
		seen[r.Product.ID] = true
	}
}

func TestQuota(t *testing.T) {
	tests := []struct {
		limit, percent, want int
	}{
		{8, 40, 4},
		{8, 30, 3},
		{8, 20, 2},
		{4, 40, 2},
		{4, 30, 2},
		{4, 20, 1},
		{10, 40, 4},
		{10, 30, 3},
		{1, 20, 1},
		{5, 20, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%d", tt.limit, tt.percent), func(t *testing.T) {
			assert.Equal(t, tt.want, quota(tt.limit, tt.percent))
		})
	}
}

func TestRanker_PurchaseScenario(t *testing.T) {
	catalog := scenarioCatalog()
	ranker := NewRanker(catalog)

	recs, err := ranker.Recommend(context.Background(), purchaseProfile(), 8)
	require.NoError(t, err)
	require.Len(t, recs, 8)
	assertDistinct(t, recs)

	var fromPurchase []int64
	for _, r := range recs {
		if r.Source == model.SourcePurchase {
			fromPurchase = append(fromPurchase, r.Product.ID)
			assert.Equal(t, int64(5), r.Product.CategoryID)
		}
	}
	assert.Equal(t, []int64{20, 21, 22, 23}, fromPurchase)
	assert.NotContains(t, model.RecommendationIDs(recs)[:4], int64(10))
	assert.NotContains(t, model.RecommendationIDs(recs)[:4], int64(11))

	// Popularity backfills the rest, excluding what was already selected.
	assert.Equal(t, []int64{100, 101, 102, 103}, model.RecommendationIDs(recs)[4:])
	for _, r := range recs[4:] {
		assert.Equal(t, model.SourcePopular, r.Source)
	}

	require.Len(t, catalog.queries, 2)
	assert.Equal(t, 4, catalog.queries[0].Limit)
	assert.Equal(t, []int64{10, 11}, catalog.queries[0].ExcludeIDs)
	assert.Equal(t, []int64{20, 21, 22, 23}, catalog.queries[1].ExcludeIDs)

	assert.InDelta(t, 1.0, recs[0].Score, 1e-9)
	assert.InDelta(t, 1.0/8, recs[7].Score, 1e-9)
}

func TestRanker_ColdProfileIsPopularity(t *testing.T) {
	catalog := scenarioCatalog()
	ranker := NewRanker(catalog)

	for _, profile := range []*model.BehaviorProfile{nil, model.NewBehaviorProfile()} {
		recs, err := ranker.Recommend(context.Background(), profile, 5)
		require.NoError(t, err)

		popular, err := catalog.SearchRanked(context.Background(), service.RankQuery{Signal: service.RankByOrders, Limit: 5})
		require.NoError(t, err)

		want := make([]int64, 0, len(popular))
		for _, p := range popular {
			want = append(want, p.ID)
		}
		assert.Equal(t, want, model.RecommendationIDs(recs))
		for _, r := range recs {
			assert.Equal(t, model.SourcePopular, r.Source)
		}
	}
}

func TestRanker_CartOnlyProfileBackfills(t *testing.T) {
	catalog := scenarioCatalog()
	profile := model.NewBehaviorProfile()
	profile.CartCategories.Add(5)
	profile.CartProducts.Add(10)
	profile.TotalInteractions = 1

	recs, err := NewRanker(catalog).Recommend(context.Background(), profile, 8)
	require.NoError(t, err)
	assert.Len(t, recs, 8)
	assertDistinct(t, recs)
	require.Len(t, catalog.queries, 1, "only the popularity backfill runs")
	assert.Equal(t, 8, catalog.queries[0].Limit)
}

func TestRanker_LengthAndDistinctProperty(t *testing.T) {
	profiles := map[string]*model.BehaviorProfile{
		"cold":     model.NewBehaviorProfile(),
		"purchase": purchaseProfile(),
		"mixed": func() *model.BehaviorProfile {
			p := purchaseProfile()
			p.ViewedCategories.Add(9)
			p.ViewedCategories.Add(5)
			p.ViewedProducts.Add(100)
			p.WishlistCategories.Add(5)
			p.WishlistProducts.Add(20)
			p.TotalInteractions = 5
			return p
		}(),
	}

	for name, profile := range profiles {
		for limit := 1; limit <= 20; limit++ {
			t.Run(fmt.Sprintf("%s/%d", name, limit), func(t *testing.T) {
				recs, err := NewRanker(scenarioCatalog()).Recommend(context.Background(), profile, limit)
				require.NoError(t, err)
				assert.LessOrEqual(t, len(recs), limit)
				assertDistinct(t, recs)
			})
		}
	}
}

func TestRanker_MergePriority(t *testing.T) {
	catalog := &fakeCatalog{products: []model.Product{
		product(1, 1, 100, 10),
		product(2, 1, 100, 9),
		product(3, 2, 100, 1),
	}}
	catalog.products[1].ViewCount = 50
	catalog.products[2].ViewCount = 40

	// Purchase quota is 3 and view quota 2 at limit 6.

	profile := model.NewBehaviorProfile()
	profile.PurchasedCategories.Add(1)
	profile.ViewedCategories.Add(1)
	profile.ViewedCategories.Add(2)
	profile.TotalInteractions = 2

	recs, err := NewRanker(catalog).Recommend(context.Background(), profile, 6)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, model.RecommendationIDs(recs))
	assert.Equal(t, model.SourcePurchase, recs[1].Source, "earlier signals keep duplicates")
	assert.Equal(t, model.SourceView, recs[2].Source)
}

func TestRanker_DefaultLimit(t *testing.T) {
	recs, err := NewRanker(scenarioCatalog()).Recommend(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Len(t, recs, DefaultLimit)
}

func TestRanker_SubQueryFailureAborts(t *testing.T) {
	catalog := scenarioCatalog()
	catalog.failOn = service.RankByViews

	profile := purchaseProfile()
	profile.ViewedCategories.Add(9)
	profile.TotalInteractions++

	recs, err := NewRanker(catalog).Recommend(context.Background(), profile, 8)
	assert.Nil(t, recs)
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

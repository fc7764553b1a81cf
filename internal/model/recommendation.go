package model

// RecommendationSource names the signal that produced a recommendation.
type RecommendationSource string

const (
	// SourcePurchase comes from the purchase-category sub-query.
	SourcePurchase RecommendationSource = "purchase"
	// SourceView comes from the view-category sub-query.
	SourceView RecommendationSource = "view"
	// SourceWishlist comes from the wishlist-category sub-query.
	SourceWishlist RecommendationSource = "wishlist"
	// SourcePopular comes from global popularity.
	SourcePopular RecommendationSource = "popular"
	// SourceSimilar comes from the similar-products ranker.
	SourceSimilar RecommendationSource = "similar"
	// SourceKnowledge comes from a knowledge-base product lookup.
	SourceKnowledge RecommendationSource = "knowledge"
)

// Recommendation is a ranked product suggestion.
type Recommendation struct {
	Source  RecommendationSource `json:"source"`
	Product Product              `json:"product"`
	Score   float64              `json:"score"`
}

// RecommendationIDs returns the product ids of recs in order.
func RecommendationIDs(recs []Recommendation) []int64 {
	ids := make([]int64, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.Product.ID)
	}
	return ids
}

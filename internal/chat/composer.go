// Package chat composes chatbot replies and persists chat turns.
package chat

import (
	"context"
	"fmt"

	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/model"
	"github.com/Veraticus/bloom/internal/service"
)

// Default limits for chat replies.
const (
	DefaultRecommendationLimit = 4
	KnowledgeProductLimit      = 4
)

// Recommender produces personalized recommendations for a customer.
type Recommender interface {
	RecommendFor(ctx context.Context, userID int64, sessionID string, limit int) ([]model.Recommendation, error)
}

// ProductFinder looks up sellable products by name.
type ProductFinder interface {
	FindProductsByName(ctx context.Context, name string, limit int) ([]model.Product, error)
}

// Reply is a composed bot answer. Recommendations is never nil.
type Reply struct {
	Text            string                 `json:"text"`
	Recommendations []model.Recommendation `json:"recommendations"`
	model.Classification
}

// Composer turns a classified message into a reply. It only reads.
type Composer struct {
	knowledge   service.KnowledgeReader
	products    ProductFinder
	recommender Recommender
	limit       int
}

// NewComposer creates a composer. A limit below 1 uses DefaultRecommendationLimit.
func NewComposer(knowledge service.KnowledgeReader, products ProductFinder, recommender Recommender, limit int) *Composer {
	if limit < 1 {
		limit = DefaultRecommendationLimit
	}
	return &Composer{
		knowledge:   knowledge,
		products:    products,
		recommender: recommender,
		limit:       limit,
	}
}

// Compose builds the reply for message given its classification. Store
// failures are returned to the caller; the caller decides what to show.
func (c *Composer) Compose(ctx context.Context, cls model.Classification, message string, userID int64, sessionID string) (*Reply, error) {
	reply := &Reply{Classification: cls, Recommendations: []model.Recommendation{}}

	if text, ok := staticTexts[cls.Intent]; ok {
		reply.Text = text
		return reply, nil
	}

	if cls.Intent == model.IntentRecommendation {
		return c.recommend(ctx, reply, userID, sessionID)
	}

	return c.lookup(ctx, reply, message)
}

func (c *Composer) recommend(ctx context.Context, reply *Reply, userID int64, sessionID string) (*Reply, error) {
	reply.Text = clarifyingText
	if userID <= 0 {
		return reply, nil
	}

	recs, err := c.recommender.RecommendFor(ctx, userID, sessionID, c.limit)
	if err != nil {
		return nil, fmt.Errorf("recommend for user %d: %w", userID, err)
	}
	if len(recs) == 0 {
		return reply, nil
	}

	reply.Text = recommendationText
	reply.Recommendations = recs
	return reply, nil
}

// lookup answers occasion, flower type and unmatched messages from the
// knowledge base. Intents without a dedicated answer use the general one.
func (c *Composer) lookup(ctx context.Context, reply *Reply, message string) (*Reply, error) {
	intent := reply.Intent
	if _, ok := knowledgeAnswers[intent]; !ok {
		intent = model.IntentGeneral
	}

	entries, err := c.knowledge.SearchKnowledgeBase(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("search knowledge base: %w", err)
	}
	if len(entries) == 0 {
		reply.Text = knowledgeGuides[intent]
		return reply, nil
	}

	top := entries[0]
	reply.Text = knowledgeAnswers[intent](top)

	products, err := c.products.FindProductsByName(ctx, top.FlowerName, KnowledgeProductLimit)
	if err != nil {
		return nil, fmt.Errorf("find products for %q: %w", top.FlowerName, err)
	}
	reply.Recommendations = knowledgeRecommendations(products)

	common.LogDebug(ctx, "Answered from knowledge base", common.Fields{
		"intent":   string(intent),
		"flower":   top.FlowerName,
		"products": len(products),
	})
	return reply, nil
}

func knowledgeRecommendations(products []model.Product) []model.Recommendation {
	recs := make([]model.Recommendation, 0, len(products))
	for i, p := range products {
		recs = append(recs, model.Recommendation{
			Product: p,
			Source:  model.SourceKnowledge,
			Score:   float64(len(products)-i) / float64(len(products)),
		})
	}
	return recs
}

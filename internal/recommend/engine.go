package recommend

import (
	"context"
	"fmt"

	"github.com/Veraticus/bloom/internal/model"
)

// ProfileSource builds behavior profiles.
type ProfileSource interface {
	Aggregate(ctx context.Context, userID int64, sessionID string) (*model.BehaviorProfile, error)
}

// Engine ranks products for a customer by profiling them first.
type Engine struct {
	profiles ProfileSource
	ranker   *Ranker
}

// NewEngine creates an engine that profiles with profiles and ranks with ranker.
func NewEngine(profiles ProfileSource, ranker *Ranker) *Engine {
	return &Engine{profiles: profiles, ranker: ranker}
}

// RecommendFor returns personalized recommendations for a user or session.
func (e *Engine) RecommendFor(ctx context.Context, userID int64, sessionID string, limit int) ([]model.Recommendation, error) {
	profile, err := e.profiles.Aggregate(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("build behavior profile: %w", err)
	}
	return e.ranker.Recommend(ctx, profile, limit)
}

// Similar returns products similar to productID.
func (e *Engine) Similar(ctx context.Context, productID int64, limit int) ([]model.Recommendation, error) {
	return e.ranker.Similar(ctx, productID, limit)
}

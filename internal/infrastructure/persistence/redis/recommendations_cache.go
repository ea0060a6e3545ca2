package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/mentoring"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECOMMENDATIONS CACHE
// Stores the full ranked list per mentee so repeated pagination requests
// don't rescore the whole mentor pool. Invalidated on survey retake.
// ══════════════════════════════════════════════════════════════════════════════

// RecommendationsCache implements mentoring.RecommendationsCache on Redis.
type RecommendationsCache struct {
	cache *Cache
}

// NewRecommendationsCache creates a new RecommendationsCache.
func NewRecommendationsCache(cache *Cache) *RecommendationsCache {
	return &RecommendationsCache{cache: cache}
}

// rankingEnvelope is the cached payload. Total is stored alongside the
// list because survivors below the page window still count.
type rankingEnvelope struct {
	Ranked []mentoring.ScoredCandidate `json:"ranked"`
	Total  int                         `json:"total"`
}

// GetRanking returns the cached ranking for a mentee, ok=false on a miss.
func (c *RecommendationsCache) GetRanking(ctx context.Context, userID shared.UserID) ([]mentoring.ScoredCandidate, int, bool, error) {
	var envelope rankingEnvelope

	err := c.cache.Get(ctx, RecommendationsKey(userID.String()), &envelope)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, 0, false, nil
		}
		return nil, 0, false, fmt.Errorf("recommendations cache: %w", err)
	}

	return envelope.Ranked, envelope.Total, true, nil
}

// SetRanking stores the full ranking for a mentee.
func (c *RecommendationsCache) SetRanking(ctx context.Context, userID shared.UserID, ranked []mentoring.ScoredCandidate, total int) error {
	envelope := rankingEnvelope{Ranked: ranked, Total: total}

	if err := c.cache.Set(ctx, RecommendationsKey(userID.String()), envelope, TTLRecommendations); err != nil {
		return fmt.Errorf("recommendations cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached ranking for a mentee.
func (c *RecommendationsCache) Invalidate(ctx context.Context, userID shared.UserID) error {
	if err := c.cache.Delete(ctx, RecommendationsKey(userID.String())); err != nil {
		return fmt.Errorf("recommendations cache: %w", err)
	}
	return nil
}

// InvalidateAll drops every cached ranking. Called when a mentor-side
// change (new survey, engagement accepted) shifts all rankings at once.
func (c *RecommendationsCache) InvalidateAll(ctx context.Context) error {
	if err := c.cache.DeleteByPattern(ctx, PrefixRecommendations+"*"); err != nil {
		return fmt.Errorf("recommendations cache: %w", err)
	}
	return nil
}

package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/mentoring"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CACHE INVALIDATOR
// Drops the cached ranking for a mentee when they retake the survey, so
// the next recommendations read reflects the new answers immediately.
// ══════════════════════════════════════════════════════════════════════════════

// CacheInvalidator subscribes to survey events and keeps the
// recommendations cache consistent.
type CacheInvalidator struct {
	cache   mentoring.RecommendationsCache
	logger  *slog.Logger
	timeout time.Duration
}

// NewCacheInvalidator creates a new CacheInvalidator.
func NewCacheInvalidator(cache mentoring.RecommendationsCache, logger *slog.Logger) *CacheInvalidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &CacheInvalidator{
		cache:   cache,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// Register subscribes the invalidator to the event bus.
func (i *CacheInvalidator) Register(bus shared.EventBus) error {
	return bus.Subscribe(shared.EventSurveySubmitted, i.handleSurveySubmitted)
}

// handleSurveySubmitted invalidates the submitter's cached ranking.
// Failures are logged, not propagated: the TTL bounds staleness.
func (i *CacheInvalidator) handleSurveySubmitted(event shared.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), i.timeout)
	defer cancel()

	userID := shared.UserID(event.AggregateID())
	if err := i.cache.Invalidate(ctx, userID); err != nil {
		i.logger.Error("failed to invalidate recommendations cache",
			"user_id", userID.String(),
			"error", err,
		)
		return err
	}

	i.logger.Debug("recommendations cache invalidated", "user_id", userID.String())
	return nil
}

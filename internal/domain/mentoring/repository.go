package mentoring

import (
	"context"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Implemented by the persistence layer (infrastructure/persistence/postgres).
// ══════════════════════════════════════════════════════════════════════════════

// SurveyRepository persists mentor matching surveys.
type SurveyRepository interface {
	// Create inserts a new survey record. Retakes insert a new record
	// rather than updating in place; matching reads the latest per user.
	Create(ctx context.Context, survey *Survey) error

	// GetLatestByUser returns the most recently created survey for a
	// user, or shared.ErrSurveyNotFound when none exists.
	GetLatestByUser(ctx context.Context, userID shared.UserID) (*Survey, error)
}

// MentorRepository loads mentor candidates for ranking.
type MentorRepository interface {
	// ListCandidates returns every mentor (excluding the given user)
	// together with their latest survey, display card, and the count of
	// currently accepted mentoring engagements. Mentors without a
	// survey are omitted; mentors with a survey but no detail card get
	// an empty-card candidate.
	ListCandidates(ctx context.Context, exclude shared.UserID) ([]Candidate, error)
}

// RecommendationsCache caches the full ranking per mentee. Implemented
// by the redis layer; a nil-safe no-op fallback lives in the query layer.
type RecommendationsCache interface {
	// GetRanking returns the cached ranking and survivor count, or
	// ok=false on a miss.
	GetRanking(ctx context.Context, userID shared.UserID) ([]ScoredCandidate, int, bool, error)

	// SetRanking stores the full ranking for a mentee.
	SetRanking(ctx context.Context, userID shared.UserID, ranked []ScoredCandidate, total int) error

	// Invalidate drops the cached ranking for a mentee.
	Invalidate(ctx context.Context, userID shared.UserID) error
}

package query

import (
	"context"
	"fmt"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/mentoring"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
	"github.com/polaris-hub/polaris-mentoring-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET MENTOR RECOMMENDATIONS QUERY
// The core read path: loads the requester's latest survey, scores every
// eligible mentor against it, and returns a ranked, paginated list.
//
// The full ranking is cached per mentee (cache-aside) because it does not
// depend on offset/limit; pagination slices the cached list. The cache is
// invalidated when the mentee retakes the survey.
// ══════════════════════════════════════════════════════════════════════════════

// Pagination bounds for the recommendations endpoint.
const (
	DefaultRecommendationLimit = 10
	MaxRecommendationLimit     = 50
)

// GetRecommendationsQuery contains the parameters for fetching
// recommendations.
type GetRecommendationsQuery struct {
	// UserID - the mentee requesting recommendations.
	UserID string

	// Limit - page size (1-50, default 10).
	Limit int

	// Offset - number of ranked mentors to skip.
	Offset int
}

// Validate checks and normalizes the query parameters.
func (q *GetRecommendationsQuery) Validate() error {
	if _, err := shared.NewUserID(q.UserID); err != nil {
		return err
	}
	if q.Limit == 0 {
		q.Limit = DefaultRecommendationLimit
	}
	if q.Limit < 1 || q.Limit > MaxRecommendationLimit {
		return shared.ErrInvalidPageLimit
	}
	if q.Offset < 0 {
		return shared.WrapError("mentoring", "GetRecommendations",
			shared.ErrInvalidInput, "offset must be non-negative", nil)
	}
	return nil
}

// RecommendationsDTO is the response envelope for the recommendations
// endpoint.
type RecommendationsDTO struct {
	// Recommendations is the requested page, highest score first.
	Recommendations []mentoring.ScoredCandidate `json:"recommendations"`

	// Total is the number of mentors that survived gating and the
	// score floor, independent of pagination.
	Total int `json:"total"`
}

// GetRecommendationsHandler handles the GetRecommendationsQuery.
type GetRecommendationsHandler struct {
	surveyRepo mentoring.SurveyRepository
	mentorRepo mentoring.MentorRepository
	cache      mentoring.RecommendationsCache // Optional; nil disables caching
	cfg        mentoring.RankerConfig
	log        *logger.Logger
}

// NewGetRecommendationsHandler creates a new GetRecommendationsHandler.
func NewGetRecommendationsHandler(
	surveyRepo mentoring.SurveyRepository,
	mentorRepo mentoring.MentorRepository,
	cache mentoring.RecommendationsCache,
	cfg mentoring.RankerConfig,
	log *logger.Logger,
) (*GetRecommendationsHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("get_recommendations: %w", err)
	}
	if log == nil {
		log = logger.Default()
	}
	return &GetRecommendationsHandler{
		surveyRepo: surveyRepo,
		mentorRepo: mentorRepo,
		cache:      cache,
		cfg:        cfg,
		log:        log,
	}, nil
}

// Handle executes the query.
func (h *GetRecommendationsHandler) Handle(
	ctx context.Context,
	q GetRecommendationsQuery,
) (*RecommendationsDTO, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("get_recommendations: %w", err)
	}
	userID, _ := shared.NewUserID(q.UserID)

	ranked, total, err := h.fullRanking(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &RecommendationsDTO{
		Recommendations: paginate(ranked, q.Offset, q.Limit),
		Total:           total,
	}, nil
}

// fullRanking returns the complete ranked list for a mentee, consulting
// the cache first. Cache errors are logged and treated as misses.
func (h *GetRecommendationsHandler) fullRanking(
	ctx context.Context,
	userID shared.UserID,
) ([]mentoring.ScoredCandidate, int, error) {
	if h.cache != nil {
		ranked, total, ok, err := h.cache.GetRanking(ctx, userID)
		if err != nil {
			h.log.Warn("recommendations cache read failed",
				logger.UserID(userID.String()), logger.Err(err))
		} else if ok {
			return ranked, total, nil
		}
	}

	mentee, err := h.surveyRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("get_recommendations: %w", err)
	}

	candidates, err := h.mentorRepo.ListCandidates(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("get_recommendations: failed to load mentors: %w", err)
	}

	// Rank everything; pagination happens against the cached list.
	ranked, total := mentoring.Rank(mentee, candidates, h.cfg, 0, len(candidates))

	if h.cache != nil {
		if err := h.cache.SetRanking(ctx, userID, ranked, total); err != nil {
			h.log.Warn("recommendations cache write failed",
				logger.UserID(userID.String()), logger.Err(err))
		}
	}

	return ranked, total, nil
}

func paginate(ranked []mentoring.ScoredCandidate, offset, limit int) []mentoring.ScoredCandidate {
	if offset >= len(ranked) {
		return []mentoring.ScoredCandidate{}
	}
	end := offset + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[offset:end]
}

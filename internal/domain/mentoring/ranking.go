package mentoring

import (
	"errors"
	"sort"
)

// ══════════════════════════════════════════════════════════════════════════════
// BATCH RANKING
//
// Ranks all mentor candidates against one mentee survey. Stateless: every
// call recomputes from its arguments, so concurrent use needs no
// synchronization.
// ══════════════════════════════════════════════════════════════════════════════

// Default ranking thresholds.
const (
	// DefaultMinScore is the quality floor: candidates scoring strictly
	// below it never appear in results.
	DefaultMinScore = 0.3

	// DefaultBoostMax is the full new-mentor boost (10 percentage points).
	DefaultBoostMax = 0.10

	// DefaultBoostMenteeCap is the active-mentee count at which the
	// new-mentor boost reaches zero.
	DefaultBoostMenteeCap = 5
)

// ErrInvalidRankerConfig - ranker configuration failed validation.
var ErrInvalidRankerConfig = errors.New("invalid ranker configuration")

// RankerConfig holds the tunable parameters of the batch ranker. All of
// them are injected so matching can be tuned without code changes.
type RankerConfig struct {
	// Weights - the per-dimension weight table.
	Weights Weights

	// MinScore - candidates with a weighted total strictly below this
	// are dropped before the boost is applied.
	MinScore float64

	// BoostMax - the boost a mentor with zero active mentees receives.
	BoostMax float64

	// BoostMenteeCap - active-mentee count at which the boost decays
	// to zero.
	BoostMenteeCap int
}

// DefaultRankerConfig returns the canonical ranking configuration.
func DefaultRankerConfig() RankerConfig {
	return RankerConfig{
		Weights:        DefaultWeights(),
		MinScore:       DefaultMinScore,
		BoostMax:       DefaultBoostMax,
		BoostMenteeCap: DefaultBoostMenteeCap,
	}
}

// Validate checks the ranker configuration.
func (c RankerConfig) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}

	if c.MinScore < 0 || c.MinScore > 1 {
		return ErrInvalidRankerConfig
	}

	if c.BoostMax < 0 || c.BoostMax > 1 {
		return ErrInvalidRankerConfig
	}

	if c.BoostMax > 0 && c.BoostMenteeCap < 1 {
		return ErrInvalidRankerConfig
	}

	return nil
}

// NewMentorBoost returns the additive score boost for a mentor with the
// given number of active mentees. The boost decays linearly from boostMax
// at zero mentees to zero at menteeCap mentees.
func NewMentorBoost(activeMentees int, boostMax float64, menteeCap int) float64 {
	if boostMax <= 0 || menteeCap <= 0 {
		return 0
	}

	decay := 1.0 - float64(activeMentees)/float64(menteeCap)
	if decay < 0 {
		decay = 0
	}
	return boostMax * decay
}

// Rank scores every candidate against the mentee survey and returns one
// page of recommendations plus the total number of surviving candidates.
//
// Candidates with no fields, candidates failing the availability gate,
// and candidates scoring strictly below cfg.MinScore are excluded. The
// rest are boosted, sorted by boosted score descending with mentor ID
// ascending as the tie-break (the secondary key keeps output stable
// regardless of input order), and sliced by offset/limit.
func Rank(mentee *Survey, candidates []Candidate, cfg RankerConfig, offset, limit int) ([]ScoredCandidate, int) {
	ranked := make([]ScoredCandidate, 0, len(candidates))

	for _, cand := range candidates {
		if !cand.Profile.IsEligible() {
			continue
		}

		total, breakdown, ok := ScorePair(mentee, cand.Profile, cfg.Weights)
		if !ok {
			continue
		}

		if total < cfg.MinScore {
			continue
		}

		boost := NewMentorBoost(cand.Profile.ActiveMenteeCount, cfg.BoostMax, cfg.BoostMenteeCap)
		boosted := total + boost
		if boosted > 1.0 {
			boosted = 1.0
		}

		ranked = append(ranked, ScoredCandidate{
			Card:       cand.Card,
			MatchScore: round4(boosted),
			Breakdown:  breakdown,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchScore != ranked[j].MatchScore {
			return ranked[i].MatchScore > ranked[j].MatchScore
		}
		return ranked[i].Card.MentorID < ranked[j].Card.MentorID
	})

	total := len(ranked)

	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []ScoredCandidate{}, total
	}

	if limit < 0 {
		limit = 0
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return ranked[offset:end], total
}

package mentoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
)

func testCandidate(mentorID string, activeMentees int) Candidate {
	profile := testProfile(mentorID)
	profile.ActiveMenteeCount = activeMentees
	return Candidate{
		Profile: profile,
		Card: CandidateCard{
			MentorID: shared.UserID(mentorID),
			Name:     "Mentor " + mentorID[:8],
		},
	}
}

func TestNewMentorBoost(t *testing.T) {
	assert.Equal(t, 0.10, NewMentorBoost(0, DefaultBoostMax, DefaultBoostMenteeCap))
	assert.InDelta(t, 0.08, NewMentorBoost(1, DefaultBoostMax, DefaultBoostMenteeCap), 1e-9)
	assert.InDelta(t, 0.02, NewMentorBoost(4, DefaultBoostMax, DefaultBoostMenteeCap), 1e-9)
	assert.Equal(t, 0.0, NewMentorBoost(5, DefaultBoostMax, DefaultBoostMenteeCap))
	assert.Equal(t, 0.0, NewMentorBoost(12, DefaultBoostMax, DefaultBoostMenteeCap), "never negative past the cap")
	assert.Equal(t, 0.0, NewMentorBoost(0, 0, DefaultBoostMenteeCap), "zero max switches the boost off")
}

func TestRank_BoostOrdersNewMentorsFirst(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	// Half-covered styles keep the base score below 1.0 so the boost shows up.
	mentee.CommunicationStyles = []CommunicationStyle{StyleDirectClear, StyleHorizontalComfortable}

	// Identical profiles, different load: the idle mentor must rank first.
	busy := testCandidate("44444444-4444-4444-4444-444444444444", 5)
	idle := testCandidate("55555555-5555-5555-5555-555555555555", 0)

	results, total := Rank(mentee, []Candidate{busy, idle}, DefaultRankerConfig(), 0, 10)

	require.Equal(t, 2, total)
	require.Len(t, results, 2)
	assert.Equal(t, idle.Card.MentorID, results[0].Card.MentorID)
	assert.Equal(t, busy.Card.MentorID, results[1].Card.MentorID)
	assert.Greater(t, results[0].MatchScore, results[1].MatchScore)
}

func TestRank_BoostClampedToOne(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	perfect := testCandidate("44444444-4444-4444-4444-444444444444", 0)

	results, _ := Rank(mentee, []Candidate{perfect}, DefaultRankerConfig(), 0, 10)

	require.Len(t, results, 1)
	assert.Equal(t, 1.0, results[0].MatchScore, "boosted score never exceeds 1.0")
}

func TestRank_MinScoreThreshold(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	mentee.AvailableDays = nil
	mentee.TimeSlots = nil
	mentee.Methods = []MeetingMethod{MethodOnline}

	// Fields only: 0.35 weighted, below any other overlap, plus boost 0 at cap.
	weak := Candidate{
		Profile: MentorProfile{
			MentorID:          shared.UserID("44444444-4444-4444-4444-444444444444"),
			Fields:            []MentorField{FieldCareerEmployment},
			ActiveMenteeCount: 5,
		},
		Card: CandidateCard{MentorID: shared.UserID("44444444-4444-4444-4444-444444444444")},
	}

	cfg := DefaultRankerConfig()

	// 0.35 >= 0.3: survives.
	results, total := Rank(mentee, []Candidate{weak}, cfg, 0, 10)
	assert.Equal(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, 0.35, results[0].MatchScore)

	// Raise the floor just above the score: excluded.
	cfg.MinScore = 0.36
	results, total = Rank(mentee, []Candidate{weak}, cfg, 0, 10)
	assert.Equal(t, 0, total)
	assert.Empty(t, results)

	// A score exactly at the floor is kept.
	cfg.MinScore = 0.35
	_, total = Rank(mentee, []Candidate{weak}, cfg, 0, 10)
	assert.Equal(t, 1, total)
}

func TestRank_GateFailuresExcluded(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)

	mismatched := testCandidate("44444444-4444-4444-4444-444444444444", 0)
	mismatched.Profile.AvailableDays = []Weekday{Sunday}

	matched := testCandidate("55555555-5555-5555-5555-555555555555", 0)

	results, total := Rank(mentee, []Candidate{mismatched, matched}, DefaultRankerConfig(), 0, 10)

	assert.Equal(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, matched.Card.MentorID, results[0].Card.MentorID)
}

func TestRank_IneligibleMentorsSkipped(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)

	empty := testCandidate("44444444-4444-4444-4444-444444444444", 0)
	empty.Profile.Fields = nil

	_, total := Rank(mentee, []Candidate{empty}, DefaultRankerConfig(), 0, 10)
	assert.Equal(t, 0, total, "mentors without interest areas never appear")
}

func TestRank_TieBreakByMentorID(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)

	b := testCandidate("bbbbbbbb-0000-0000-0000-000000000000", 0)
	a := testCandidate("aaaaaaaa-0000-0000-0000-000000000000", 0)

	results, _ := Rank(mentee, []Candidate{b, a}, DefaultRankerConfig(), 0, 10)

	require.Len(t, results, 2)
	assert.Equal(t, results[0].MatchScore, results[1].MatchScore)
	assert.Equal(t, a.Card.MentorID, results[0].Card.MentorID, "equal scores order by mentor id")
}

func TestRank_Pagination(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)

	var pool []Candidate
	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("%08d-0000-0000-0000-000000000000", i)
		pool = append(pool, testCandidate(id, i%3))
	}

	cfg := DefaultRankerConfig()

	page1, total := Rank(mentee, pool, cfg, 0, 3)
	page2, _ := Rank(mentee, pool, cfg, 3, 3)
	page3, _ := Rank(mentee, pool, cfg, 6, 3)

	assert.Equal(t, 7, total, "total reflects all survivors, not the page")
	assert.Len(t, page1, 3)
	assert.Len(t, page2, 3)
	assert.Len(t, page3, 1)

	seen := make(map[shared.UserID]bool)
	for _, page := range [][]ScoredCandidate{page1, page2, page3} {
		for _, sc := range page {
			assert.False(t, seen[sc.Card.MentorID], "pages must be disjoint")
			seen[sc.Card.MentorID] = true
		}
	}
	assert.Len(t, seen, 7)

	// Offset past the end: empty page, total unchanged.
	overshoot, total := Rank(mentee, pool, cfg, 100, 3)
	assert.Empty(t, overshoot)
	assert.Equal(t, 7, total)
}

func TestRank_EmptyPool(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)

	results, total := Rank(mentee, nil, DefaultRankerConfig(), 0, 10)
	assert.Empty(t, results)
	assert.Equal(t, 0, total)
}

func TestRank_ScoresRounded(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	mentee.CommunicationStyles = []CommunicationStyle{
		StyleDirectClear, StyleHorizontalComfortable, StyleExperienceGuide,
	}

	// Styles coverage 1/3 -> weighted contribution 0.2/3; the boosted total
	// must still carry at most four decimal places.
	c := testCandidate("44444444-4444-4444-4444-444444444444", 3)
	c.Profile.CommunicationStyles = []CommunicationStyle{StyleDirectClear}

	results, _ := Rank(mentee, []Candidate{c}, DefaultRankerConfig(), 0, 10)
	require.Len(t, results, 1)

	got := results[0].MatchScore
	assert.Equal(t, round4(got), got)
}

func TestRankerConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultRankerConfig().Validate())

	bad := DefaultRankerConfig()
	bad.MinScore = 1.5
	assert.ErrorIs(t, bad.Validate(), ErrInvalidRankerConfig)

	bad = DefaultRankerConfig()
	bad.BoostMax = -0.1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidRankerConfig)

	bad = DefaultRankerConfig()
	bad.Weights.Fields = 0.9
	assert.Error(t, bad.Validate())
}

package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/mentoring"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
)

const (
	menteeID  = "11111111-1111-1111-1111-111111111111"
	mentorAID = "aaaaaaaa-0000-0000-0000-000000000000"
	mentorBID = "bbbbbbbb-0000-0000-0000-000000000000"
)

type fakeSurveyRepo struct {
	surveys map[shared.UserID]*mentoring.Survey
}

func (r *fakeSurveyRepo) Create(_ context.Context, s *mentoring.Survey) error {
	r.surveys[s.UserID] = s
	return nil
}

func (r *fakeSurveyRepo) GetLatestByUser(_ context.Context, userID shared.UserID) (*mentoring.Survey, error) {
	s, ok := r.surveys[userID]
	if !ok {
		return nil, shared.ErrSurveyNotFound
	}
	return s, nil
}

type fakeMentorRepo struct {
	candidates []mentoring.Candidate
	calls      int
}

func (r *fakeMentorRepo) ListCandidates(_ context.Context, exclude shared.UserID) ([]mentoring.Candidate, error) {
	r.calls++
	out := make([]mentoring.Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		if c.Profile.MentorID != exclude {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeRecCache struct {
	ranked map[shared.UserID][]mentoring.ScoredCandidate
	totals map[shared.UserID]int
}

func newFakeRecCache() *fakeRecCache {
	return &fakeRecCache{
		ranked: make(map[shared.UserID][]mentoring.ScoredCandidate),
		totals: make(map[shared.UserID]int),
	}
}

func (c *fakeRecCache) GetRanking(_ context.Context, userID shared.UserID) ([]mentoring.ScoredCandidate, int, bool, error) {
	ranked, ok := c.ranked[userID]
	if !ok {
		return nil, 0, false, nil
	}
	return ranked, c.totals[userID], true, nil
}

func (c *fakeRecCache) SetRanking(_ context.Context, userID shared.UserID, ranked []mentoring.ScoredCandidate, total int) error {
	c.ranked[userID] = ranked
	c.totals[userID] = total
	return nil
}

func (c *fakeRecCache) Invalidate(_ context.Context, userID shared.UserID) error {
	delete(c.ranked, userID)
	delete(c.totals, userID)
	return nil
}

func menteeSurvey(t *testing.T) *mentoring.Survey {
	t.Helper()
	s, err := mentoring.NewSurvey(mentoring.NewSurveyParams{
		ID:                  "33333333-3333-3333-3333-333333333333",
		UserID:              shared.UserID(menteeID),
		Fields:              []mentoring.MentorField{mentoring.FieldCareerEmployment},
		Frequency:           mentoring.FrequencyMonthly,
		Goal:                "Land an internship",
		AvailableDays:       []mentoring.Weekday{mentoring.Monday},
		TimeSlots:           []mentoring.TimeSlot{mentoring.SlotMorning},
		Methods:             []mentoring.MeetingMethod{mentoring.MethodFlexible},
		CommunicationStyles: []mentoring.CommunicationStyle{mentoring.StyleDirectClear},
		MentoringFocuses:    []mentoring.MentoringFocus{mentoring.FocusPracticeOriented},
	})
	require.NoError(t, err)
	return s
}

func mentorCandidate(mentorID string, activeMentees int) mentoring.Candidate {
	return mentoring.Candidate{
		Profile: mentoring.MentorProfile{
			MentorID:            shared.UserID(mentorID),
			Fields:              []mentoring.MentorField{mentoring.FieldCareerEmployment},
			Frequencies:         []mentoring.MeetingFrequency{mentoring.FrequencyMonthly},
			AvailableDays:       []mentoring.Weekday{mentoring.Monday},
			TimeSlots:           []mentoring.TimeSlot{mentoring.SlotMorning},
			Methods:             []mentoring.MeetingMethod{mentoring.MethodOnline},
			CommunicationStyles: []mentoring.CommunicationStyle{mentoring.StyleDirectClear},
			MentoringFocuses:    []mentoring.MentoringFocus{mentoring.FocusPracticeOriented},
			ActiveMenteeCount:   activeMentees,
		},
		Card: mentoring.CandidateCard{
			MentorID: shared.UserID(mentorID),
			Name:     "Mentor",
		},
	}
}

func newHandler(t *testing.T, surveys *fakeSurveyRepo, mentors *fakeMentorRepo, cache mentoring.RecommendationsCache) *GetRecommendationsHandler {
	t.Helper()
	h, err := NewGetRecommendationsHandler(surveys, mentors, cache, mentoring.DefaultRankerConfig(), nil)
	require.NoError(t, err)
	return h
}

func TestGetRecommendations_RanksAndPaginates(t *testing.T) {
	surveys := &fakeSurveyRepo{surveys: map[shared.UserID]*mentoring.Survey{
		shared.UserID(menteeID): menteeSurvey(t),
	}}
	mentors := &fakeMentorRepo{candidates: []mentoring.Candidate{
		mentorCandidate(mentorBID, 5),
		mentorCandidate(mentorAID, 0),
	}}
	handler := newHandler(t, surveys, mentors, nil)

	result, err := handler.Handle(context.Background(), GetRecommendationsQuery{
		UserID: menteeID,
		Limit:  1,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Recommendations, 1)

	// Second page holds the remaining mentor.
	page2, err := handler.Handle(context.Background(), GetRecommendationsQuery{
		UserID: menteeID,
		Limit:  1,
		Offset: 1,
	})
	require.NoError(t, err)
	require.Len(t, page2.Recommendations, 1)
	assert.NotEqual(t,
		result.Recommendations[0].Card.MentorID,
		page2.Recommendations[0].Card.MentorID)
}

func TestGetRecommendations_CacheAside(t *testing.T) {
	surveys := &fakeSurveyRepo{surveys: map[shared.UserID]*mentoring.Survey{
		shared.UserID(menteeID): menteeSurvey(t),
	}}
	mentors := &fakeMentorRepo{candidates: []mentoring.Candidate{
		mentorCandidate(mentorAID, 0),
	}}
	cache := newFakeRecCache()
	handler := newHandler(t, surveys, mentors, cache)

	_, err := handler.Handle(context.Background(), GetRecommendationsQuery{UserID: menteeID})
	require.NoError(t, err)
	assert.Equal(t, 1, mentors.calls)

	// Second read served from cache; the mentor repo is not consulted.
	_, err = handler.Handle(context.Background(), GetRecommendationsQuery{UserID: menteeID})
	require.NoError(t, err)
	assert.Equal(t, 1, mentors.calls)

	// After invalidation the ranking is rebuilt.
	require.NoError(t, cache.Invalidate(context.Background(), shared.UserID(menteeID)))
	_, err = handler.Handle(context.Background(), GetRecommendationsQuery{UserID: menteeID})
	require.NoError(t, err)
	assert.Equal(t, 2, mentors.calls)
}

func TestGetRecommendations_ExcludesRequester(t *testing.T) {
	// The mentee is also registered as a mentor; they must not see themselves.
	surveys := &fakeSurveyRepo{surveys: map[shared.UserID]*mentoring.Survey{
		shared.UserID(menteeID): menteeSurvey(t),
	}}
	mentors := &fakeMentorRepo{candidates: []mentoring.Candidate{
		mentorCandidate(menteeID, 0),
		mentorCandidate(mentorAID, 0),
	}}
	handler := newHandler(t, surveys, mentors, nil)

	result, err := handler.Handle(context.Background(), GetRecommendationsQuery{UserID: menteeID})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, shared.UserID(mentorAID), result.Recommendations[0].Card.MentorID)
}

func TestGetRecommendations_NoSurvey(t *testing.T) {
	surveys := &fakeSurveyRepo{surveys: map[shared.UserID]*mentoring.Survey{}}
	handler := newHandler(t, surveys, &fakeMentorRepo{}, nil)

	_, err := handler.Handle(context.Background(), GetRecommendationsQuery{UserID: menteeID})
	assert.ErrorIs(t, err, shared.ErrSurveyNotFound)
}

func TestGetRecommendations_LimitBounds(t *testing.T) {
	surveys := &fakeSurveyRepo{surveys: map[shared.UserID]*mentoring.Survey{
		shared.UserID(menteeID): menteeSurvey(t),
	}}
	handler := newHandler(t, surveys, &fakeMentorRepo{}, nil)

	_, err := handler.Handle(context.Background(), GetRecommendationsQuery{UserID: menteeID, Limit: 51})
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)

	_, err = handler.Handle(context.Background(), GetRecommendationsQuery{UserID: menteeID, Limit: -1})
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)

	_, err = handler.Handle(context.Background(), GetRecommendationsQuery{UserID: menteeID, Offset: -1})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestGetMySurvey_ReturnsLatest(t *testing.T) {
	survey := menteeSurvey(t)
	surveys := &fakeSurveyRepo{surveys: map[shared.UserID]*mentoring.Survey{
		survey.UserID: survey,
	}}
	handler := NewGetMySurveyHandler(surveys)

	dto, err := handler.Handle(context.Background(), GetMySurveyQuery{UserID: menteeID})
	require.NoError(t, err)

	assert.Equal(t, survey.ID, dto.SurveyID)
	assert.Equal(t, []string{"CAREER_EMPLOYMENT"}, dto.Fields)
	assert.Equal(t, "MONTHLY", dto.Frequency)
	assert.WithinDuration(t, time.Now(), dto.SubmittedAt, time.Minute)
}

func TestGetMySurvey_NotFound(t *testing.T) {
	handler := NewGetMySurveyHandler(&fakeSurveyRepo{surveys: map[shared.UserID]*mentoring.Survey{}})

	_, err := handler.Handle(context.Background(), GetMySurveyQuery{UserID: menteeID})
	assert.ErrorIs(t, err, shared.ErrSurveyNotFound)
}

package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/mentoring"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
)

// fakeSurveyRepo keeps surveys in submission order per user.
type fakeSurveyRepo struct {
	surveys []*mentoring.Survey
}

func (r *fakeSurveyRepo) Create(_ context.Context, s *mentoring.Survey) error {
	r.surveys = append(r.surveys, s)
	return nil
}

func (r *fakeSurveyRepo) GetLatestByUser(_ context.Context, userID shared.UserID) (*mentoring.Survey, error) {
	for i := len(r.surveys) - 1; i >= 0; i-- {
		if r.surveys[i].UserID == userID {
			return r.surveys[i], nil
		}
	}
	return nil, shared.ErrSurveyNotFound
}

// recordingBus captures published events.
type recordingBus struct {
	events []shared.Event
}

func (b *recordingBus) Publish(e shared.Event) error {
	b.events = append(b.events, e)
	return nil
}

func (b *recordingBus) Subscribe(shared.EventType, shared.EventHandler) error { return nil }
func (b *recordingBus) SubscribeAll(shared.EventHandler) error                { return nil }
func (b *recordingBus) Close() error                                          { return nil }

func validCommand() SubmitSurveyCommand {
	return SubmitSurveyCommand{
		UserID:              "11111111-1111-1111-1111-111111111111",
		Fields:              []string{"CAREER_EMPLOYMENT"},
		Frequency:           "MONTHLY",
		Goal:                "Prepare for my first engineering job",
		AvailableDays:       []string{"MON", "TUE"},
		TimeSlots:           []string{"MORNING"},
		Methods:             []string{"FLEXIBLE"},
		CommunicationStyles: []string{"DIRECT_CLEAR"},
		MentoringFocuses:    []string{"PRACTICE_ORIENTED"},
	}
}

func TestSubmitSurvey_FirstSubmission(t *testing.T) {
	repo := &fakeSurveyRepo{}
	bus := &recordingBus{}
	handler := NewSubmitSurveyHandler(repo, bus, nil)

	result, err := handler.Handle(context.Background(), validCommand())
	require.NoError(t, err)

	assert.NotEmpty(t, result.SurveyID)
	assert.False(t, result.Retake)
	require.Len(t, repo.surveys, 1)
	assert.Equal(t, shared.UserID("11111111-1111-1111-1111-111111111111"), repo.surveys[0].UserID)

	require.Len(t, bus.events, 1)
	assert.Equal(t, shared.EventSurveySubmitted, bus.events[0].EventType())
}

func TestSubmitSurvey_RetakeInsertsNewRecord(t *testing.T) {
	repo := &fakeSurveyRepo{}
	handler := NewSubmitSurveyHandler(repo, nil, nil)

	first, err := handler.Handle(context.Background(), validCommand())
	require.NoError(t, err)

	cmd := validCommand()
	cmd.Goal = "Switch focus to entrepreneurship"
	cmd.Fields = []string{"ENTREPRENEURSHIP_LEADERSHIP"}

	second, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)

	assert.True(t, second.Retake)
	assert.NotEqual(t, first.SurveyID, second.SurveyID)
	assert.Len(t, repo.surveys, 2, "retake inserts, never overwrites")

	latest, err := repo.GetLatestByUser(context.Background(), shared.UserID(cmd.UserID))
	require.NoError(t, err)
	assert.Equal(t, second.SurveyID, latest.ID)
}

func TestSubmitSurvey_RejectsUnknownTag(t *testing.T) {
	handler := NewSubmitSurveyHandler(&fakeSurveyRepo{}, nil, nil)

	cmd := validCommand()
	cmd.TimeSlots = []string{"MIDNIGHT"}

	_, err := handler.Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestSubmitSurvey_RejectsBadUserID(t *testing.T) {
	handler := NewSubmitSurveyHandler(&fakeSurveyRepo{}, nil, nil)

	cmd := validCommand()
	cmd.UserID = "not-a-uuid"

	_, err := handler.Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, shared.ErrInvalidUserID)
}

func TestSubmitSurvey_RejectsEmptyFields(t *testing.T) {
	handler := NewSubmitSurveyHandler(&fakeSurveyRepo{}, nil, nil)

	cmd := validCommand()
	cmd.Fields = nil

	_, err := handler.Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, mentoring.ErrFieldsRequired)
}

func TestSubmitSurvey_StructuralErrorsAreValidation(t *testing.T) {
	handler := NewSubmitSurveyHandler(&fakeSurveyRepo{}, nil, nil)

	cases := map[string]func(*SubmitSurveyCommand){
		"empty fields": func(c *SubmitSurveyCommand) { c.Fields = nil },
		"empty goal":   func(c *SubmitSurveyCommand) { c.Goal = "" },
		"overlong goal": func(c *SubmitSurveyCommand) {
			c.Goal = strings.Repeat("x", mentoring.GoalMaxLength+1)
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cmd := validCommand()
			mutate(&cmd)

			_, err := handler.Handle(context.Background(), cmd)
			require.Error(t, err)
			assert.True(t, shared.IsValidation(err), "expected a validation error, got %v", err)
		})
	}
}

func TestSubmitSurvey_GoalLengthCountsCharacters(t *testing.T) {
	repo := &fakeSurveyRepo{}
	handler := NewSubmitSurveyHandler(repo, nil, nil)

	// 1000 multi-byte characters exceed the limit in bytes but not in
	// characters, so the submission must be accepted.
	cmd := validCommand()
	cmd.Goal = strings.Repeat("ж", mentoring.GoalMaxLength)

	_, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)

	cmd.Goal = strings.Repeat("ж", mentoring.GoalMaxLength+1)
	_, err = handler.Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, mentoring.ErrGoalLength)
}

// failingBus rejects every publish.
type failingBus struct{ recordingBus }

func (b *failingBus) Publish(shared.Event) error {
	return errors.New("event bus is closed")
}

func TestSubmitSurvey_PublishFailureDoesNotFailRequest(t *testing.T) {
	repo := &fakeSurveyRepo{}
	handler := NewSubmitSurveyHandler(repo, &failingBus{}, nil)

	result, err := handler.Handle(context.Background(), validCommand())
	require.NoError(t, err, "the survey is persisted even when the event cannot be published")
	assert.NotEmpty(t, result.SurveyID)
	assert.Len(t, repo.surveys, 1)
}

func TestSubmitSurvey_NormalizesUserID(t *testing.T) {
	repo := &fakeSurveyRepo{}
	handler := NewSubmitSurveyHandler(repo, nil, nil)

	cmd := validCommand()
	cmd.UserID = "11111111-1111-1111-1111-11111111111A"

	result, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-11111111111a", result.UserID)
}

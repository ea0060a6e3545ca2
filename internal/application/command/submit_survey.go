// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/mentoring"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
	"github.com/polaris-hub/polaris-mentoring-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBMIT SURVEY COMMAND
// Records a mentee's matching survey. A retake inserts a new record; the
// latest survey per user is the one that drives recommendations.
// ══════════════════════════════════════════════════════════════════════════════

// SubmitSurveyCommand contains the raw survey answers as submitted.
// Tag values are validated against their closed sets during handling.
type SubmitSurveyCommand struct {
	// UserID is the mentee submitting the survey.
	UserID string

	// Fields - interest areas the mentee wants mentoring in.
	Fields []string

	// Frequency - desired meeting cadence.
	Frequency string

	// Goal - free-text description of what the mentee wants to achieve.
	Goal string

	// AvailableDays - days of week the mentee can meet.
	AvailableDays []string

	// TimeSlots - parts of the day the mentee can meet.
	TimeSlots []string

	// Methods - preferred meeting methods.
	Methods []string

	// CommunicationStyles - preferred communication styles.
	CommunicationStyles []string

	// MentoringFocuses - what the mentee wants the sessions to emphasize.
	MentoringFocuses []string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate performs the cheap structural checks. Tag-set membership is
// checked by the domain constructor during Handle.
func (c SubmitSurveyCommand) Validate() error {
	if _, err := shared.NewUserID(c.UserID); err != nil {
		return err
	}
	if len(c.Fields) == 0 {
		return mentoring.ErrFieldsRequired
	}
	if goalLen := utf8.RuneCountInString(c.Goal); goalLen == 0 || goalLen > mentoring.GoalMaxLength {
		return mentoring.ErrGoalLength
	}
	return nil
}

// SubmitSurveyResult contains the result of submitting a survey.
type SubmitSurveyResult struct {
	// SurveyID is the ID of the stored survey.
	SurveyID string `json:"survey_id"`

	// UserID is the mentee the survey belongs to.
	UserID string `json:"user_id"`

	// Retake is true when the user already had an earlier survey.
	Retake bool `json:"retake"`

	// SubmittedAt is when the survey was recorded.
	SubmittedAt time.Time `json:"submitted_at"`
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// SubmitSurveyHandler handles the SubmitSurveyCommand.
type SubmitSurveyHandler struct {
	surveyRepo mentoring.SurveyRepository
	eventBus   shared.EventBus // Optional; cache invalidation listens here
	log        *logger.Logger
}

// NewSubmitSurveyHandler creates a new SubmitSurveyHandler.
func NewSubmitSurveyHandler(
	surveyRepo mentoring.SurveyRepository,
	eventBus shared.EventBus,
	log *logger.Logger,
) *SubmitSurveyHandler {
	if log == nil {
		log = logger.Default()
	}
	return &SubmitSurveyHandler{
		surveyRepo: surveyRepo,
		eventBus:   eventBus,
		log:        log,
	}
}

// Handle executes the submit survey command.
func (h *SubmitSurveyHandler) Handle(
	ctx context.Context,
	cmd SubmitSurveyCommand,
) (*SubmitSurveyResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("submit_survey: validation failed: %w", err)
	}

	params, err := h.buildParams(cmd)
	if err != nil {
		return nil, fmt.Errorf("submit_survey: %w", err)
	}

	survey, err := mentoring.NewSurvey(params)
	if err != nil {
		return nil, fmt.Errorf("submit_survey: %w", err)
	}

	// Retake detection: an existing survey is not an error, just a flag.
	retake := false
	if _, err := h.surveyRepo.GetLatestByUser(ctx, survey.UserID); err == nil {
		retake = true
	} else if !shared.IsNotFound(err) {
		return nil, fmt.Errorf("submit_survey: lookup failed: %w", err)
	}

	if err := h.surveyRepo.Create(ctx, survey); err != nil {
		return nil, fmt.Errorf("submit_survey: failed to save: %w", err)
	}

	if h.eventBus != nil {
		event := shared.NewSurveySubmittedEvent(survey.UserID.String(), survey.ID, retake)
		// The survey is already persisted; a failed publish only delays
		// cache invalidation, so log it instead of failing the request.
		if err := h.eventBus.Publish(event); err != nil {
			h.log.Warn("survey event publish failed",
				logger.Operation("submit_survey"),
				logger.UserID(survey.UserID.String()),
				logger.Err(err))
		}
	}

	return &SubmitSurveyResult{
		SurveyID:    survey.ID,
		UserID:      survey.UserID.String(),
		Retake:      retake,
		SubmittedAt: survey.CreatedAt,
	}, nil
}

// buildParams converts the raw string payload into typed domain parameters,
// rejecting any value outside its closed tag set.
func (h *SubmitSurveyHandler) buildParams(cmd SubmitSurveyCommand) (mentoring.NewSurveyParams, error) {
	var p mentoring.NewSurveyParams
	var err error

	if p.Fields, err = mentoring.ParseMentorFields(cmd.Fields); err != nil {
		return p, err
	}
	freqs, err := mentoring.ParseMeetingFrequencies([]string{cmd.Frequency})
	if err != nil {
		return p, err
	}
	p.Frequency = freqs[0]
	if p.AvailableDays, err = mentoring.ParseWeekdays(cmd.AvailableDays); err != nil {
		return p, err
	}
	if p.TimeSlots, err = mentoring.ParseTimeSlots(cmd.TimeSlots); err != nil {
		return p, err
	}
	if p.Methods, err = mentoring.ParseMeetingMethods(cmd.Methods); err != nil {
		return p, err
	}
	if p.CommunicationStyles, err = mentoring.ParseCommunicationStyles(cmd.CommunicationStyles); err != nil {
		return p, err
	}
	if p.MentoringFocuses, err = mentoring.ParseMentoringFocuses(cmd.MentoringFocuses); err != nil {
		return p, err
	}

	p.ID = uuid.NewString()
	if p.UserID, err = shared.NewUserID(cmd.UserID); err != nil {
		return p, err
	}
	p.Goal = cmd.Goal
	return p, nil
}

// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/mentoring"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET MY SURVEY QUERY
// Returns the latest matching survey a user has submitted, so the client
// can pre-fill the form on a retake.
// ══════════════════════════════════════════════════════════════════════════════

// GetMySurveyQuery contains the parameters for fetching a user's survey.
type GetMySurveyQuery struct {
	// UserID - the user whose survey to fetch.
	UserID string
}

// Validate checks the query parameters.
func (q *GetMySurveyQuery) Validate() error {
	if _, err := shared.NewUserID(q.UserID); err != nil {
		return err
	}
	return nil
}

// SurveyDTO is the wire representation of a stored survey.
type SurveyDTO struct {
	SurveyID            string    `json:"survey_id"`
	UserID              string    `json:"user_id"`
	Fields              []string  `json:"fields"`
	Frequency           string    `json:"frequency"`
	Goal                string    `json:"goal"`
	AvailableDays       []string  `json:"available_days"`
	TimeSlots           []string  `json:"time_slots"`
	Methods             []string  `json:"methods"`
	CommunicationStyles []string  `json:"communication_styles"`
	MentoringFocuses    []string  `json:"mentoring_focuses"`
	SubmittedAt         time.Time `json:"submitted_at"`
}

// GetMySurveyHandler handles the GetMySurveyQuery.
type GetMySurveyHandler struct {
	surveyRepo mentoring.SurveyRepository
}

// NewGetMySurveyHandler creates a new GetMySurveyHandler.
func NewGetMySurveyHandler(surveyRepo mentoring.SurveyRepository) *GetMySurveyHandler {
	return &GetMySurveyHandler{surveyRepo: surveyRepo}
}

// Handle executes the query. Returns shared.ErrSurveyNotFound (wrapped)
// when the user has never submitted a survey.
func (h *GetMySurveyHandler) Handle(ctx context.Context, q GetMySurveyQuery) (*SurveyDTO, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("get_my_survey: %w", err)
	}

	userID, _ := shared.NewUserID(q.UserID)
	survey, err := h.surveyRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get_my_survey: %w", err)
	}

	return surveyToDTO(survey), nil
}

func surveyToDTO(s *mentoring.Survey) *SurveyDTO {
	return &SurveyDTO{
		SurveyID:            s.ID,
		UserID:              s.UserID.String(),
		Fields:              tagsToStrings(s.Fields),
		Frequency:           string(s.Frequency),
		Goal:                s.Goal,
		AvailableDays:       tagsToStrings(s.AvailableDays),
		TimeSlots:           tagsToStrings(s.TimeSlots),
		Methods:             tagsToStrings(s.Methods),
		CommunicationStyles: tagsToStrings(s.CommunicationStyles),
		MentoringFocuses:    tagsToStrings(s.MentoringFocuses),
		SubmittedAt:         s.CreatedAt,
	}
}

func tagsToStrings[T ~string](tags []T) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

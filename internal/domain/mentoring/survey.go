package mentoring

import (
	"time"
	"unicode/utf8"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MATCHING SURVEY
//
// One record per submission. A retake inserts a new record; matching only
// ever reads the latest record per user. A survey is immutable once
// created — the scorer never mutates its inputs.
// ══════════════════════════════════════════════════════════════════════════════

// Domain errors for survey construction.
var (
	// ErrSurveyIDRequired - survey id is missing.
	ErrSurveyIDRequired = shared.NewDomainError("mentoring", "NewSurvey", shared.ErrEmptyValue, "survey id is required")

	// ErrFieldsRequired - at least one interest area must be selected.
	ErrFieldsRequired = shared.NewDomainError("mentoring", "NewSurvey", shared.ErrEmptyValue, "at least one field is required")

	// ErrGoalLength - goal must be 1-1000 characters.
	ErrGoalLength = shared.NewDomainError("mentoring", "NewSurvey", shared.ErrValueOutOfRange, "goal must be between 1 and 1000 characters")

	// ErrInvalidTagValue - a tag is outside its closed set.
	ErrInvalidTagValue = shared.NewDomainError("mentoring", "ParseTag", shared.ErrInvalidInput, "invalid tag value")
)

// GoalMaxLength bounds the free-text goal field, counted in characters.
const GoalMaxLength = 1000

// Survey is a completed 7-step mentor matching survey. On the mentee side
// it is the preference record the scorer consumes; on the mentor side the
// latest survey seeds the mentor's matching profile.
type Survey struct {
	// ID - unique identifier of this submission (UUID).
	ID string

	// UserID - who submitted the survey.
	UserID shared.UserID

	// Fields - interest areas (step 1, required non-empty).
	Fields []MentorField

	// Frequency - desired meeting frequency (step 2).
	Frequency MeetingFrequency

	// Goal - free-text description of what the user wants out of
	// mentoring (step 3). Stored for display, never scored.
	Goal string

	// AvailableDays - weekdays the user can meet (step 4).
	AvailableDays []Weekday

	// TimeSlots - time-of-day windows the user can meet (step 5).
	TimeSlots []TimeSlot

	// Methods - preferred meeting methods (step 6).
	Methods []MeetingMethod

	// CommunicationStyles - preferred session tone (step 7a).
	CommunicationStyles []CommunicationStyle

	// MentoringFocuses - expected kind of mentoring (step 7b).
	MentoringFocuses []MentoringFocus

	// CreatedAt - when the survey was submitted.
	CreatedAt time.Time

	// UpdatedAt - when the record was last written.
	UpdatedAt time.Time
}

// NewSurveyParams holds the inputs for NewSurvey.
type NewSurveyParams struct {
	ID                  string
	UserID              shared.UserID
	Fields              []MentorField
	Frequency           MeetingFrequency
	Goal                string
	AvailableDays       []Weekday
	TimeSlots           []TimeSlot
	Methods             []MeetingMethod
	CommunicationStyles []CommunicationStyle
	MentoringFocuses    []MentoringFocus
}

// NewSurvey creates a validated survey. Submission requires every step to
// be answered: all tag lists non-empty and inside their closed sets, goal
// within length bounds.
func NewSurvey(params NewSurveyParams) (*Survey, error) {
	if params.ID == "" {
		return nil, ErrSurveyIDRequired
	}

	if !params.UserID.IsValid() {
		return nil, shared.ErrInvalidUserID
	}

	if len(params.Fields) == 0 {
		return nil, ErrFieldsRequired
	}

	if goalLen := utf8.RuneCountInString(params.Goal); goalLen == 0 || goalLen > GoalMaxLength {
		return nil, ErrGoalLength
	}

	if !params.Frequency.IsValid() {
		return nil, ErrInvalidTagValue
	}

	if len(params.AvailableDays) == 0 || len(params.TimeSlots) == 0 ||
		len(params.Methods) == 0 || len(params.CommunicationStyles) == 0 ||
		len(params.MentoringFocuses) == 0 {
		return nil, shared.ErrInvalidSurvey
	}

	if !allValidFields(params.Fields) || !allValidWeekdays(params.AvailableDays) ||
		!allValidSlots(params.TimeSlots) || !allValidMethods(params.Methods) ||
		!allValidStyles(params.CommunicationStyles) || !allValidFocuses(params.MentoringFocuses) {
		return nil, ErrInvalidTagValue
	}

	now := time.Now().UTC()

	return &Survey{
		ID:                  params.ID,
		UserID:              params.UserID,
		Fields:              params.Fields,
		Frequency:           params.Frequency,
		Goal:                params.Goal,
		AvailableDays:       params.AvailableDays,
		TimeSlots:           params.TimeSlots,
		Methods:             params.Methods,
		CommunicationStyles: params.CommunicationStyles,
		MentoringFocuses:    params.MentoringFocuses,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// FieldSet returns the interest areas as a TagSet.
func (s *Survey) FieldSet() TagSet { return NewTagSet(s.Fields) }

// DaySet returns the available weekdays as a TagSet.
func (s *Survey) DaySet() TagSet { return NewTagSet(s.AvailableDays) }

// SlotSet returns the time slots as a TagSet.
func (s *Survey) SlotSet() TagSet { return NewTagSet(s.TimeSlots) }

// MethodSet returns the meeting methods as a TagSet.
func (s *Survey) MethodSet() TagSet { return NewTagSet(s.Methods) }

// StyleSet returns the communication styles as a TagSet.
func (s *Survey) StyleSet() TagSet { return NewTagSet(s.CommunicationStyles) }

// FocusSet returns the mentoring focuses as a TagSet.
func (s *Survey) FocusSet() TagSet { return NewTagSet(s.MentoringFocuses) }

func allValidFields(vals []MentorField) bool {
	for _, v := range vals {
		if !v.IsValid() {
			return false
		}
	}
	return true
}

func allValidWeekdays(vals []Weekday) bool {
	for _, v := range vals {
		if !v.IsValid() {
			return false
		}
	}
	return true
}

func allValidSlots(vals []TimeSlot) bool {
	for _, v := range vals {
		if !v.IsValid() {
			return false
		}
	}
	return true
}

func allValidMethods(vals []MeetingMethod) bool {
	for _, v := range vals {
		if !v.IsValid() {
			return false
		}
	}
	return true
}

func allValidStyles(vals []CommunicationStyle) bool {
	for _, v := range vals {
		if !v.IsValid() {
			return false
		}
	}
	return true
}

func allValidFocuses(vals []MentoringFocus) bool {
	for _, v := range vals {
		if !v.IsValid() {
			return false
		}
	}
	return true
}

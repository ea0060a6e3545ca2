package mentoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
)

const (
	testMenteeID = "11111111-1111-1111-1111-111111111111"
	testMentorID = "22222222-2222-2222-2222-222222222222"
)

func testSurvey(t *testing.T, userID string) *Survey {
	t.Helper()

	s, err := NewSurvey(NewSurveyParams{
		ID:                  "33333333-3333-3333-3333-333333333333",
		UserID:              shared.UserID(userID),
		Fields:              []MentorField{FieldCareerEmployment},
		Frequency:           FrequencyMonthly,
		Goal:                "Find a mentor for my first job search",
		AvailableDays:       []Weekday{Monday, Tuesday},
		TimeSlots:           []TimeSlot{SlotMorning},
		Methods:             []MeetingMethod{MethodFlexible},
		CommunicationStyles: []CommunicationStyle{StyleDirectClear},
		MentoringFocuses:    []MentoringFocus{FocusPracticeOriented},
	})
	require.NoError(t, err)
	return s
}

func testProfile(mentorID string) MentorProfile {
	return MentorProfile{
		MentorID:            shared.UserID(mentorID),
		Fields:              []MentorField{FieldCareerEmployment, FieldAcademicsStudy},
		Frequencies:         []MeetingFrequency{FrequencyMonthly, FrequencyLongTerm},
		AvailableDays:       []Weekday{Monday, Wednesday},
		TimeSlots:           []TimeSlot{SlotMorning, SlotEvening},
		Methods:             []MeetingMethod{MethodOnline},
		CommunicationStyles: []CommunicationStyle{StyleDirectClear, StyleSoftSupportive},
		MentoringFocuses:    []MentoringFocus{FocusPracticeOriented},
	}
}

func TestScorePair_PerfectMatch(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	mentor := testProfile(testMentorID)

	total, breakdown, ok := ScorePair(mentee, mentor, DefaultWeights())

	require.True(t, ok, "gate should pass: days share MON, slots share MORNING")
	assert.Equal(t, 1.0, breakdown.Fields)
	assert.Equal(t, 1.0, breakdown.Frequency)
	assert.Equal(t, 1.0, breakdown.Methods, "FLEXIBLE mentee is a wildcard")
	assert.Equal(t, 1.0, breakdown.CommunicationStyles)
	assert.Equal(t, 1.0, breakdown.MentoringFocuses)
	assert.Equal(t, 0.5, breakdown.AvailableDays, "one of two requested days covered")
	assert.Equal(t, 1.0, breakdown.TimeSlots)
	assert.Equal(t, 1.0, total)
}

func TestScorePair_AvailabilityDayGate(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	mentee.AvailableDays = []Weekday{Monday}

	mentor := testProfile(testMentorID)
	mentor.AvailableDays = []Weekday{Tuesday}

	_, _, ok := ScorePair(mentee, mentor, DefaultWeights())
	assert.False(t, ok, "disjoint days must hard-fail regardless of other dimensions")
}

func TestScorePair_AvailabilitySlotGate(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	mentee.TimeSlots = []TimeSlot{SlotMorning}

	mentor := testProfile(testMentorID)
	mentor.TimeSlots = []TimeSlot{SlotEvening}

	_, _, ok := ScorePair(mentee, mentor, DefaultWeights())
	assert.False(t, ok)
}

func TestScorePair_EmptyMenteeAvailabilityIsVacuous(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	mentee.AvailableDays = nil
	mentee.TimeSlots = nil

	mentor := testProfile(testMentorID)
	mentor.AvailableDays = nil
	mentor.TimeSlots = nil

	total, breakdown, ok := ScorePair(mentee, mentor, DefaultWeights())

	require.True(t, ok, "no stated preference places no restriction")
	assert.Equal(t, 0.0, breakdown.AvailableDays)
	assert.Equal(t, 0.0, breakdown.TimeSlots)
	assert.Equal(t, 1.0, total, "availability does not contribute to the weighted sum")
}

func TestScorePair_FieldsCoverageAsymmetry(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	mentee.Fields = []MentorField{FieldCareerEmployment, FieldAcademicsStudy}

	// Mentor covering a superset: full coverage, extras not penalized.
	broad := testProfile(testMentorID)
	broad.Fields = []MentorField{
		FieldCareerEmployment, FieldAcademicsStudy,
		FieldInvestmentFinance, FieldEmotionalCounseling,
	}
	_, breakdown, ok := ScorePair(mentee, broad, DefaultWeights())
	require.True(t, ok)
	assert.Equal(t, 1.0, breakdown.Fields)

	// Mentor covering half of what the mentee wants.
	narrow := testProfile(testMentorID)
	narrow.Fields = []MentorField{FieldCareerEmployment}
	_, breakdown, ok = ScorePair(mentee, narrow, DefaultWeights())
	require.True(t, ok)
	assert.Equal(t, 0.5, breakdown.Fields)
}

func TestScorePair_MethodsWildcard(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	mentee.Methods = []MeetingMethod{MethodFlexible}

	mentor := testProfile(testMentorID)
	mentor.Methods = []MeetingMethod{MethodOffline}

	_, breakdown, ok := ScorePair(mentee, mentor, DefaultWeights())
	require.True(t, ok)
	assert.Equal(t, 1.0, breakdown.Methods)

	// Wildcard on the mentor side works the same way.
	mentee.Methods = []MeetingMethod{MethodOnline}
	mentor.Methods = []MeetingMethod{MethodFlexible}

	_, breakdown, ok = ScorePair(mentee, mentor, DefaultWeights())
	require.True(t, ok)
	assert.Equal(t, 1.0, breakdown.Methods)
}

func TestScorePair_MethodsBinaryOverlap(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	mentee.Methods = []MeetingMethod{MethodOnline}

	mentor := testProfile(testMentorID)
	mentor.Methods = []MeetingMethod{MethodOffline}

	_, breakdown, ok := ScorePair(mentee, mentor, DefaultWeights())
	require.True(t, ok)
	assert.Equal(t, 0.0, breakdown.Methods, "no shared method and no wildcard")

	mentor.Methods = []MeetingMethod{MethodOnline, MethodOffline}
	_, breakdown, ok = ScorePair(mentee, mentor, DefaultWeights())
	require.True(t, ok)
	assert.Equal(t, 1.0, breakdown.Methods, "any shared method is sufficient")
}

func TestScorePair_FrequencyContainment(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	mentee.Frequency = FrequencyOneTime

	mentor := testProfile(testMentorID)
	mentor.Frequencies = []MeetingFrequency{FrequencyMonthly, FrequencyLongTerm}

	_, breakdown, ok := ScorePair(mentee, mentor, DefaultWeights())
	require.True(t, ok)
	assert.Equal(t, 0.0, breakdown.Frequency)

	mentor.Frequencies = append(mentor.Frequencies, FrequencyOneTime)
	_, breakdown, ok = ScorePair(mentee, mentor, DefaultWeights())
	require.True(t, ok)
	assert.Equal(t, 1.0, breakdown.Frequency)
}

func TestScorePair_EmptyMentorAttributes(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	mentee.AvailableDays = nil
	mentee.TimeSlots = nil

	// Mentor filled in nothing except fields.
	mentor := MentorProfile{
		MentorID: shared.UserID(testMentorID),
		Fields:   []MentorField{FieldCareerEmployment},
	}

	total, breakdown, ok := ScorePair(mentee, mentor, DefaultWeights())
	require.True(t, ok)
	assert.Equal(t, 1.0, breakdown.Fields)
	assert.Equal(t, 0.0, breakdown.Frequency)
	assert.Equal(t, 1.0, breakdown.Methods, "mentee FLEXIBLE still matches an empty method set")
	assert.Equal(t, 0.0, breakdown.CommunicationStyles)
	assert.Equal(t, 0.0, breakdown.MentoringFocuses)
	assert.Equal(t, 0.5, total, "0.35 fields + 0.15 methods")
}

func TestScorePair_Determinism(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	mentor := testProfile(testMentorID)

	t1, b1, ok1 := ScorePair(mentee, mentor, DefaultWeights())
	t2, b2, ok2 := ScorePair(mentee, mentor, DefaultWeights())

	assert.Equal(t, t1, t2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, ok1, ok2)
}

func TestScorePair_RangeInvariant(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	mentee.Fields = []MentorField{FieldCareerEmployment, FieldAcademicsStudy, FieldInvestmentFinance}
	mentee.CommunicationStyles = []CommunicationStyle{StyleDirectClear, StyleExperienceGuide}

	profiles := []MentorProfile{
		testProfile(testMentorID),
		{MentorID: shared.UserID(testMentorID), Fields: []MentorField{FieldVolunteeringSocial}},
		{
			MentorID:    shared.UserID(testMentorID),
			Fields:      AllMentorFields,
			Frequencies: AllMeetingFrequencies,
			Methods:     AllMeetingMethods,
		},
	}

	mentee.AvailableDays = nil
	mentee.TimeSlots = nil

	for _, mentor := range profiles {
		total, b, ok := ScorePair(mentee, mentor, DefaultWeights())
		require.True(t, ok)

		for _, sub := range []float64{
			b.Fields, b.Frequency, b.AvailableDays, b.TimeSlots,
			b.Methods, b.CommunicationStyles, b.MentoringFocuses, total,
		} {
			assert.GreaterOrEqual(t, sub, 0.0)
			assert.LessOrEqual(t, sub, 1.0)
		}
	}
}

func TestScorePair_Rounding(t *testing.T) {
	mentee := testSurvey(t, testMenteeID)
	mentee.Fields = []MentorField{
		FieldCareerEmployment, FieldAcademicsStudy, FieldInvestmentFinance,
	}
	mentee.AvailableDays = nil
	mentee.TimeSlots = nil

	mentor := testProfile(testMentorID)
	mentor.Fields = []MentorField{FieldCareerEmployment}

	_, breakdown, ok := ScorePair(mentee, mentor, DefaultWeights())
	require.True(t, ok)

	// 1/3 rounds to 4 decimal places.
	assert.Equal(t, 0.3333, breakdown.Fields)
}

func TestWeights_Validate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())

	bad := DefaultWeights()
	bad.Fields = 0.5
	assert.ErrorIs(t, bad.Validate(), ErrWeightsSum)

	negative := Weights{Fields: -0.1, Frequency: 0.5, Methods: 0.2, CommunicationStyles: 0.2, MentoringFocuses: 0.2}
	assert.ErrorIs(t, negative.Validate(), ErrWeightsOutOfRange)
}

func TestNewSurvey_Validation(t *testing.T) {
	valid := NewSurveyParams{
		ID:                  "33333333-3333-3333-3333-333333333333",
		UserID:              shared.UserID(testMenteeID),
		Fields:              []MentorField{FieldCareerEmployment},
		Frequency:           FrequencyMonthly,
		Goal:                "grow",
		AvailableDays:       []Weekday{Monday},
		TimeSlots:           []TimeSlot{SlotMorning},
		Methods:             []MeetingMethod{MethodOnline},
		CommunicationStyles: []CommunicationStyle{StyleDirectClear},
		MentoringFocuses:    []MentoringFocus{FocusPracticeOriented},
	}

	_, err := NewSurvey(valid)
	assert.NoError(t, err)

	noFields := valid
	noFields.Fields = nil
	_, err = NewSurvey(noFields)
	assert.ErrorIs(t, err, ErrFieldsRequired)

	noGoal := valid
	noGoal.Goal = ""
	_, err = NewSurvey(noGoal)
	assert.ErrorIs(t, err, ErrGoalLength)

	badTag := valid
	badTag.Methods = []MeetingMethod{"CARRIER_PIGEON"}
	_, err = NewSurvey(badTag)
	assert.ErrorIs(t, err, ErrInvalidTagValue)

	badUser := valid
	badUser.UserID = "not-a-uuid"
	_, err = NewSurvey(badUser)
	assert.ErrorIs(t, err, shared.ErrInvalidUserID)
}

func TestParseTags_RejectsUnknown(t *testing.T) {
	_, err := ParseMentorFields([]string{"CAREER_EMPLOYMENT", "ASTROLOGY"})
	assert.Error(t, err)

	fields, err := ParseMentorFields([]string{"CAREER_EMPLOYMENT", "ACADEMICS_STUDY"})
	assert.NoError(t, err)
	assert.Equal(t, []MentorField{FieldCareerEmployment, FieldAcademicsStudy}, fields)
}

package mentoring

import (
	"errors"
	"math"
)

// ══════════════════════════════════════════════════════════════════════════════
// MATCH SCORING
//
// Single-pair scorer: one mentee survey against one mentor profile.
//
// Availability (days, time slots) is a hard gate, not a weighted factor:
// a pair that cannot meet at all is excluded outright instead of being
// ranked low. The remaining five dimensions contribute to the weighted
// total. Availability sub-scores are still computed so the client can
// show the full breakdown.
// ══════════════════════════════════════════════════════════════════════════════

// Domain errors for scoring configuration.
var (
	// ErrWeightsOutOfRange - a weight is negative.
	ErrWeightsOutOfRange = errors.New("weights must be non-negative")

	// ErrWeightsSum - the five weights must sum to 1.0.
	ErrWeightsSum = errors.New("weights must sum to 1.0")
)

// weightSumEpsilon tolerates float drift when validating the weight sum.
const weightSumEpsilon = 1e-9

// Weights holds the weight of each contributing dimension. Availability
// dimensions carry no weight: they act only as the hard gate.
type Weights struct {
	// Fields - interest-area coverage weight.
	Fields float64

	// Frequency - meeting-frequency containment weight.
	Frequency float64

	// Methods - meeting-method compatibility weight.
	Methods float64

	// CommunicationStyles - communication-style coverage weight.
	CommunicationStyles float64

	// MentoringFocuses - mentoring-focus coverage weight.
	MentoringFocuses float64
}

// DefaultWeights returns the canonical weight table.
func DefaultWeights() Weights {
	return Weights{
		Fields:              0.35,
		Frequency:           0.15,
		Methods:             0.15,
		CommunicationStyles: 0.20,
		MentoringFocuses:    0.15,
	}
}

// Validate checks that all weights are non-negative and sum to 1.0.
func (w Weights) Validate() error {
	if w.Fields < 0 || w.Frequency < 0 || w.Methods < 0 ||
		w.CommunicationStyles < 0 || w.MentoringFocuses < 0 {
		return ErrWeightsOutOfRange
	}

	sum := w.Fields + w.Frequency + w.Methods + w.CommunicationStyles + w.MentoringFocuses
	if math.Abs(sum-1.0) > weightSumEpsilon {
		return ErrWeightsSum
	}

	return nil
}

// ScoreBreakdown holds the per-dimension sub-scores of one pair, each in
// [0, 1] and rounded to 4 decimal places.
type ScoreBreakdown struct {
	Fields              float64 `json:"fields"`
	Frequency           float64 `json:"frequency"`
	AvailableDays       float64 `json:"available_days"`
	TimeSlots           float64 `json:"time_slots"`
	Methods             float64 `json:"methods"`
	CommunicationStyles float64 `json:"communication_styles"`
	MentoringFocuses    float64 `json:"mentoring_focuses"`
}

// ScorePair computes the weighted match score between a mentee survey and
// a mentor profile.
//
// The boolean result is false when the pair fails a hard constraint: the
// mentee has availability preferences (days or time slots) that do not
// overlap the mentor's at all. A failed pair produces no score and must
// be excluded from results entirely.
func ScorePair(mentee *Survey, mentor MentorProfile, w Weights) (float64, ScoreBreakdown, bool) {
	menteeDays := mentee.DaySet()
	mentorDays := NewTagSet(mentor.AvailableDays)
	if !menteeDays.IsEmpty() && !menteeDays.Intersects(mentorDays) {
		return 0, ScoreBreakdown{}, false
	}

	menteeSlots := mentee.SlotSet()
	mentorSlots := NewTagSet(mentor.TimeSlots)
	if !menteeSlots.IsEmpty() && !menteeSlots.Intersects(mentorSlots) {
		return 0, ScoreBreakdown{}, false
	}

	// Fields: mentee-coverage ratio. Rewards mentors covering more of
	// what the mentee asked for; extra mentor fields are not penalized.
	fieldsScore := mentee.FieldSet().Coverage(NewTagSet(mentor.Fields))

	// Frequency: containment in the mentor's accepted set.
	frequencyScore := 0.0
	if NewTagSet(mentor.Frequencies).Contains(string(mentee.Frequency)) {
		frequencyScore = 1.0
	}

	// Availability: coverage ratios, reported for display only.
	daysScore := menteeDays.Coverage(mentorDays)
	slotsScore := menteeSlots.Coverage(mentorSlots)

	// Methods: FLEXIBLE on either side is a universal wildcard;
	// otherwise any shared method is sufficient.
	menteeMethods := mentee.MethodSet()
	mentorMethods := NewTagSet(mentor.Methods)
	methodsScore := 0.0
	switch {
	case menteeMethods.Contains(string(MethodFlexible)) || mentorMethods.Contains(string(MethodFlexible)):
		methodsScore = 1.0
	case menteeMethods.Intersects(mentorMethods):
		methodsScore = 1.0
	}

	stylesScore := mentee.StyleSet().Coverage(NewTagSet(mentor.CommunicationStyles))
	focusesScore := mentee.FocusSet().Coverage(NewTagSet(mentor.MentoringFocuses))

	breakdown := ScoreBreakdown{
		Fields:              round4(fieldsScore),
		Frequency:           round4(frequencyScore),
		AvailableDays:       round4(daysScore),
		TimeSlots:           round4(slotsScore),
		Methods:             round4(methodsScore),
		CommunicationStyles: round4(stylesScore),
		MentoringFocuses:    round4(focusesScore),
	}

	total := round4(
		w.Fields*breakdown.Fields +
			w.Frequency*breakdown.Frequency +
			w.Methods*breakdown.Methods +
			w.CommunicationStyles*breakdown.CommunicationStyles +
			w.MentoringFocuses*breakdown.MentoringFocuses,
	)

	return total, breakdown, true
}

// round4 rounds to 4 decimal places, matching the precision the survey
// clients display.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

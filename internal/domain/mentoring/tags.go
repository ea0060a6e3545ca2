package mentoring

import (
	"fmt"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MATCHING TAGS
//
// Every matching dimension is a closed set of enumerated tags. The survey
// boundary rejects unknown values; inside the scorer a tag is just a set
// member, so a value that slipped through can only ever fail to match.
// ══════════════════════════════════════════════════════════════════════════════

// MentorField is an interest area a mentoring relationship can focus on.
type MentorField string

const (
	FieldCareerEmployment           MentorField = "CAREER_EMPLOYMENT"
	FieldAcademicsStudy             MentorField = "ACADEMICS_STUDY"
	FieldEntrepreneurshipLeadership MentorField = "ENTREPRENEURSHIP_LEADERSHIP"
	FieldSelfDevelopmentHobbies     MentorField = "SELF_DEVELOPMENT_HOBBIES"
	FieldVolunteeringSocial         MentorField = "VOLUNTEERING_SOCIAL"
	FieldEmotionalCounseling        MentorField = "EMOTIONAL_COUNSELING"
	FieldInvestmentFinance          MentorField = "INVESTMENT_FINANCE"
)

// AllMentorFields lists every valid interest area.
var AllMentorFields = []MentorField{
	FieldCareerEmployment,
	FieldAcademicsStudy,
	FieldEntrepreneurshipLeadership,
	FieldSelfDevelopmentHobbies,
	FieldVolunteeringSocial,
	FieldEmotionalCounseling,
	FieldInvestmentFinance,
}

// IsValid checks if the field is a known value.
func (f MentorField) IsValid() bool {
	for _, v := range AllMentorFields {
		if f == v {
			return true
		}
	}
	return false
}

// MeetingFrequency is how often mentee and mentor want to meet.
type MeetingFrequency string

const (
	FrequencyOneTime  MeetingFrequency = "ONE_TIME"
	FrequencyMonthly  MeetingFrequency = "MONTHLY"
	FrequencyLongTerm MeetingFrequency = "LONG_TERM"
)

// AllMeetingFrequencies lists every valid meeting frequency.
var AllMeetingFrequencies = []MeetingFrequency{
	FrequencyOneTime,
	FrequencyMonthly,
	FrequencyLongTerm,
}

// IsValid checks if the frequency is a known value.
func (f MeetingFrequency) IsValid() bool {
	for _, v := range AllMeetingFrequencies {
		if f == v {
			return true
		}
	}
	return false
}

// Weekday is a day of the week a participant is available.
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

// AllWeekdays lists every valid weekday tag.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValid checks if the weekday is a known value.
func (d Weekday) IsValid() bool {
	for _, v := range AllWeekdays {
		if d == v {
			return true
		}
	}
	return false
}

// TimeSlot is a time-of-day window a participant is available.
type TimeSlot string

const (
	SlotMorning       TimeSlot = "MORNING"
	SlotAfternoon     TimeSlot = "AFTERNOON"
	SlotLateAfternoon TimeSlot = "LATE_AFTERNOON"
	SlotEvening       TimeSlot = "EVENING"
)

// AllTimeSlots lists every valid time slot.
var AllTimeSlots = []TimeSlot{SlotMorning, SlotAfternoon, SlotLateAfternoon, SlotEvening}

// IsValid checks if the time slot is a known value.
func (t TimeSlot) IsValid() bool {
	for _, v := range AllTimeSlots {
		if t == v {
			return true
		}
	}
	return false
}

// MeetingMethod is how the pair prefers to meet. MethodFlexible is a
// wildcard: a flexible participant matches any method.
type MeetingMethod string

const (
	MethodOnline   MeetingMethod = "ONLINE"
	MethodOffline  MeetingMethod = "OFFLINE"
	MethodFlexible MeetingMethod = "FLEXIBLE"
)

// AllMeetingMethods lists every valid meeting method.
var AllMeetingMethods = []MeetingMethod{MethodOnline, MethodOffline, MethodFlexible}

// IsValid checks if the method is a known value.
func (m MeetingMethod) IsValid() bool {
	for _, v := range AllMeetingMethods {
		if m == v {
			return true
		}
	}
	return false
}

// CommunicationStyle describes the tone a participant wants in sessions.
type CommunicationStyle string

const (
	StyleDirectClear           CommunicationStyle = "DIRECT_CLEAR"
	StyleSoftSupportive        CommunicationStyle = "SOFT_SUPPORTIVE"
	StyleHorizontalComfortable CommunicationStyle = "HORIZONTAL_COMFORTABLE"
	StyleExperienceGuide       CommunicationStyle = "EXPERIENCE_GUIDE"
)

// AllCommunicationStyles lists every valid communication style.
var AllCommunicationStyles = []CommunicationStyle{
	StyleDirectClear,
	StyleSoftSupportive,
	StyleHorizontalComfortable,
	StyleExperienceGuide,
}

// IsValid checks if the style is a known value.
func (s CommunicationStyle) IsValid() bool {
	for _, v := range AllCommunicationStyles {
		if s == v {
			return true
		}
	}
	return false
}

// MentoringFocus describes what kind of mentoring the mentee expects.
type MentoringFocus string

const (
	FocusPracticeOriented   MentoringFocus = "PRACTICE_ORIENTED"
	FocusAdviceCounseling   MentoringFocus = "ADVICE_COUNSELING"
	FocusInsightInspiration MentoringFocus = "INSIGHT_INSPIRATION"
)

// AllMentoringFocuses lists every valid mentoring focus.
var AllMentoringFocuses = []MentoringFocus{
	FocusPracticeOriented,
	FocusAdviceCounseling,
	FocusInsightInspiration,
}

// IsValid checks if the focus is a known value.
func (f MentoringFocus) IsValid() bool {
	for _, v := range AllMentoringFocuses {
		if f == v {
			return true
		}
	}
	return false
}

// ══════════════════════════════════════════════════════════════════════════════
// TAG SET
// ══════════════════════════════════════════════════════════════════════════════

// TagSet is an unordered set of tag values from a single dimension.
// The zero value (nil) behaves as an empty set.
type TagSet map[string]struct{}

// NewTagSet builds a TagSet from a slice of typed tags, deduplicating values.
func NewTagSet[T ~string](values []T) TagSet {
	set := make(TagSet, len(values))
	for _, v := range values {
		set[string(v)] = struct{}{}
	}
	return set
}

// Len returns the number of distinct tags in the set.
func (s TagSet) Len() int {
	return len(s)
}

// IsEmpty reports whether the set has no tags.
func (s TagSet) IsEmpty() bool {
	return len(s) == 0
}

// Contains reports whether the set holds the given tag.
func (s TagSet) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// IntersectCount returns the number of tags present in both sets.
func (s TagSet) IntersectCount(other TagSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}

	count := 0
	for tag := range small {
		if large.Contains(tag) {
			count++
		}
	}
	return count
}

// Intersects reports whether the two sets share at least one tag.
func (s TagSet) Intersects(other TagSet) bool {
	return s.IntersectCount(other) > 0
}

// Coverage returns |s ∩ other| / |s|: how much of what this set asks for
// the other set satisfies. An empty receiver yields 0.
func (s TagSet) Coverage(other TagSet) float64 {
	if s.IsEmpty() {
		return 0.0
	}
	return float64(s.IntersectCount(other)) / float64(s.Len())
}

// ══════════════════════════════════════════════════════════════════════════════
// PARSING (boundary validation)
// ══════════════════════════════════════════════════════════════════════════════

// parseTags validates raw tag strings against the IsValid method of T.
// Used by the persistence and HTTP boundaries; unknown values are rejected
// there rather than inside the scorer.
func parseTags[T interface {
	~string
	IsValid() bool
}](raw []string) ([]T, error) {
	tags := make([]T, 0, len(raw))
	for _, v := range raw {
		tag := T(v)
		if !tag.IsValid() {
			return nil, shared.WrapError("mentoring", "ParseTag", shared.ErrInvalidInput,
				fmt.Sprintf("unknown tag %q", v), nil)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// ParseMentorFields validates raw interest-area tags.
func ParseMentorFields(raw []string) ([]MentorField, error) { return parseTags[MentorField](raw) }

// ParseMeetingFrequencies validates raw frequency tags.
func ParseMeetingFrequencies(raw []string) ([]MeetingFrequency, error) {
	return parseTags[MeetingFrequency](raw)
}

// ParseWeekdays validates raw weekday tags.
func ParseWeekdays(raw []string) ([]Weekday, error) { return parseTags[Weekday](raw) }

// ParseTimeSlots validates raw time-slot tags.
func ParseTimeSlots(raw []string) ([]TimeSlot, error) { return parseTags[TimeSlot](raw) }

// ParseMeetingMethods validates raw meeting-method tags.
func ParseMeetingMethods(raw []string) ([]MeetingMethod, error) {
	return parseTags[MeetingMethod](raw)
}

// ParseCommunicationStyles validates raw communication-style tags.
func ParseCommunicationStyles(raw []string) ([]CommunicationStyle, error) {
	return parseTags[CommunicationStyle](raw)
}

// ParseMentoringFocuses validates raw mentoring-focus tags.
func ParseMentoringFocuses(raw []string) ([]MentoringFocus, error) {
	return parseTags[MentoringFocus](raw)
}

package mentoring

import (
	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MENTOR PROFILE
//
// The mentor-side matching record assembled for ranking. Every attribute
// is optional until the mentor fills it in: absent means empty set, so
// the scorer never branches on nil. The mentor's single survey frequency
// becomes a set of accepted frequencies.
// ══════════════════════════════════════════════════════════════════════════════

// MentorProfile holds the matching attributes of one mentor.
type MentorProfile struct {
	// MentorID - the mentor's user ID.
	MentorID shared.UserID

	// Fields - interest areas the mentor covers. A mentor with no
	// fields is not eligible for scoring at all.
	Fields []MentorField

	// Frequencies - meeting frequencies the mentor accepts.
	Frequencies []MeetingFrequency

	// AvailableDays - weekdays the mentor can meet.
	AvailableDays []Weekday

	// TimeSlots - time-of-day windows the mentor can meet.
	TimeSlots []TimeSlot

	// Methods - meeting methods the mentor offers.
	Methods []MeetingMethod

	// CommunicationStyles - the mentor's session tone.
	CommunicationStyles []CommunicationStyle

	// MentoringFocuses - the kind of mentoring the mentor offers.
	MentoringFocuses []MentoringFocus

	// ActiveMenteeCount - number of currently accepted mentoring
	// engagements. Supplied by the caller, drives the new-mentor boost.
	ActiveMenteeCount int
}

// ProfileFromSurvey builds a mentor profile from the mentor's own latest
// survey. The survey's single desired frequency becomes the profile's
// accepted-frequency set.
func ProfileFromSurvey(s *Survey, activeMentees int) MentorProfile {
	return MentorProfile{
		MentorID:            s.UserID,
		Fields:              s.Fields,
		Frequencies:         []MeetingFrequency{s.Frequency},
		AvailableDays:       s.AvailableDays,
		TimeSlots:           s.TimeSlots,
		Methods:             s.Methods,
		CommunicationStyles: s.CommunicationStyles,
		MentoringFocuses:    s.MentoringFocuses,
		ActiveMenteeCount:   activeMentees,
	}
}

// IsEligible reports whether the profile can be scored at all.
func (p MentorProfile) IsEligible() bool {
	return len(p.Fields) > 0
}

// ══════════════════════════════════════════════════════════════════════════════
// CANDIDATES
// ══════════════════════════════════════════════════════════════════════════════

// CandidateCard is the display data of one mentor. The ranker passes it
// through unchanged; nothing in it participates in scoring.
type CandidateCard struct {
	// MentorID - the mentor's user ID.
	MentorID shared.UserID `json:"mentor_id"`

	// Name - display name.
	Name string `json:"name"`

	// AvatarURL - profile picture, if any.
	AvatarURL string `json:"avatar_url,omitempty"`

	// Introduction - the mentor's self-description.
	Introduction string `json:"introduction,omitempty"`

	// Affiliation - company, university or organization.
	Affiliation string `json:"affiliation,omitempty"`

	// Expertise - free-form expertise keywords.
	Expertise []string `json:"expertise,omitempty"`
}

// Candidate pairs one mentor's matching profile with its display card.
type Candidate struct {
	// Profile - the matching attributes.
	Profile MentorProfile

	// Card - opaque display data returned with the score.
	Card CandidateCard
}

// ScoredCandidate is one ranked recommendation.
type ScoredCandidate struct {
	// Card - the mentor's display data, passed through unchanged.
	Card CandidateCard `json:"card"`

	// MatchScore - final score in [0, 1] after the new-mentor boost.
	MatchScore float64 `json:"match_score"`

	// Breakdown - per-dimension sub-scores for display.
	Breakdown ScoreBreakdown `json:"score_breakdown"`
}

// Package postgres implements the PostgreSQL persistence layer for Polaris Mentoring Hub.
package postgres

import (
	"context"
	"fmt"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/mentoring"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MENTOR REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// MentorRepository implements mentoring.MentorRepository for PostgreSQL.
type MentorRepository struct {
	conn *Connection
}

// NewMentorRepository creates a new MentorRepository.
func NewMentorRepository(conn *Connection) *MentorRepository {
	return &MentorRepository{conn: conn}
}

// ListCandidates loads every mentor except the requester, joined with
// their latest matching survey, display card, and count of accepted
// engagements. Mentors who never filled the survey are not returned;
// a missing detail card yields an empty card.
func (r *MentorRepository) ListCandidates(ctx context.Context, exclude shared.UserID) ([]mentoring.Candidate, error) {
	query := `
		SELECT u.id,
			   u.name,
			   COALESCE(u.avatar_url, ''),
			   COALESCE(d.introduction, ''),
			   COALESCE(d.affiliation, ''),
			   COALESCE(d.expertise, '{}'),
			   s.fields,
			   s.frequency,
			   s.available_days,
			   s.time_slots,
			   s.methods,
			   s.communication_styles,
			   s.mentoring_focuses,
			   COALESCE(e.active_count, 0)
		FROM users u
		JOIN LATERAL (
			SELECT fields, frequency, available_days, time_slots,
				   methods, communication_styles, mentoring_focuses
			FROM mentor_matching_surveys
			WHERE user_id = u.id
			ORDER BY created_at DESC
			LIMIT 1
		) s ON TRUE
		LEFT JOIN mentor_details d ON d.user_id = u.id
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS active_count
			FROM mentoring_engagements
			WHERE mentor_id = u.id AND status = 'ACCEPTED'
		) e ON TRUE
		WHERE u.role = 'MENTOR' AND u.id != $1
	`

	rows, err := r.conn.Query(ctx, query, exclude.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list mentor candidates: %w", err)
	}
	defer rows.Close()

	var candidates []mentoring.Candidate
	for rows.Next() {
		var (
			mentorID, name, avatarURL                     string
			introduction, affiliation                     string
			frequency                                     string
			activeCount                                   int
			expertise                                     []string
			fields, days, slots, methods, styles, focuses []string
		)

		err := rows.Scan(
			&mentorID,
			&name,
			&avatarURL,
			&introduction,
			&affiliation,
			&expertise,
			&fields,
			&frequency,
			&days,
			&slots,
			&methods,
			&styles,
			&focuses,
			&activeCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mentor candidate: %w", err)
		}

		candidates = append(candidates, mentoring.Candidate{
			Profile: mentoring.MentorProfile{
				MentorID:            shared.UserID(mentorID),
				Fields:              typedTags[mentoring.MentorField](fields),
				Frequencies:         []mentoring.MeetingFrequency{mentoring.MeetingFrequency(frequency)},
				AvailableDays:       typedTags[mentoring.Weekday](days),
				TimeSlots:           typedTags[mentoring.TimeSlot](slots),
				Methods:             typedTags[mentoring.MeetingMethod](methods),
				CommunicationStyles: typedTags[mentoring.CommunicationStyle](styles),
				MentoringFocuses:    typedTags[mentoring.MentoringFocus](focuses),
				ActiveMenteeCount:   activeCount,
			},
			Card: mentoring.CandidateCard{
				MentorID:     shared.UserID(mentorID),
				Name:         name,
				AvatarURL:    avatarURL,
				Introduction: introduction,
				Affiliation:  affiliation,
				Expertise:    expertise,
			},
		})
	}

	return candidates, rows.Err()
}

// CountActiveMentees returns the number of accepted engagements for one
// mentor. Used by profile views outside the ranking path.
func (r *MentorRepository) CountActiveMentees(ctx context.Context, mentorID shared.UserID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM mentoring_engagements
		WHERE mentor_id = $1 AND status = 'ACCEPTED'
	`

	var count int
	if err := r.conn.QueryRow(ctx, query, mentorID.String()).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active mentees: %w", err)
	}
	return count, nil
}

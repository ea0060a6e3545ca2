// Package postgres implements the PostgreSQL persistence layer for Polaris Mentoring Hub.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/mentoring"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SURVEY REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// SurveyRepository implements mentoring.SurveyRepository for PostgreSQL.
type SurveyRepository struct {
	conn *Connection
}

// NewSurveyRepository creates a new SurveyRepository.
func NewSurveyRepository(conn *Connection) *SurveyRepository {
	return &SurveyRepository{conn: conn}
}

// Create inserts a new survey record. Retakes insert a new row; reads
// always take the latest row per user.
func (r *SurveyRepository) Create(ctx context.Context, s *mentoring.Survey) error {
	query := `
		INSERT INTO mentor_matching_surveys (
			id, user_id, fields, frequency, goal,
			available_days, time_slots, methods,
			communication_styles, mentoring_focuses,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.conn.Exec(ctx, query,
		s.ID,
		s.UserID.String(),
		tagStrings(s.Fields),
		string(s.Frequency),
		s.Goal,
		tagStrings(s.AvailableDays),
		tagStrings(s.TimeSlots),
		tagStrings(s.Methods),
		tagStrings(s.CommunicationStyles),
		tagStrings(s.MentoringFocuses),
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.WrapError("mentoring", "CreateSurvey", shared.ErrNotFound,
				"user does not exist", err)
		}
		return fmt.Errorf("failed to create survey: %w", err)
	}

	return nil
}

// GetLatestByUser returns the most recently submitted survey for a user.
func (r *SurveyRepository) GetLatestByUser(ctx context.Context, userID shared.UserID) (*mentoring.Survey, error) {
	query := `
		SELECT id, user_id, fields, frequency, goal,
			   available_days, time_slots, methods,
			   communication_styles, mentoring_focuses,
			   created_at, updated_at
		FROM mentor_matching_surveys
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	row := r.conn.QueryRow(ctx, query, userID.String())
	return scanSurvey(row)
}

// scanSurvey scans a survey row into the domain entity.
func scanSurvey(row pgx.Row) (*mentoring.Survey, error) {
	var (
		s                                             mentoring.Survey
		userID                                        string
		frequency                                     string
		fields, days, slots, methods, styles, focuses []string
	)

	err := row.Scan(
		&s.ID,
		&userID,
		&fields,
		&frequency,
		&s.Goal,
		&days,
		&slots,
		&methods,
		&styles,
		&focuses,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrSurveyNotFound
		}
		return nil, fmt.Errorf("failed to scan survey: %w", err)
	}

	s.UserID = shared.UserID(userID)
	s.Frequency = mentoring.MeetingFrequency(frequency)
	s.Fields = typedTags[mentoring.MentorField](fields)
	s.AvailableDays = typedTags[mentoring.Weekday](days)
	s.TimeSlots = typedTags[mentoring.TimeSlot](slots)
	s.Methods = typedTags[mentoring.MeetingMethod](methods)
	s.CommunicationStyles = typedTags[mentoring.CommunicationStyle](styles)
	s.MentoringFocuses = typedTags[mentoring.MentoringFocus](focuses)

	return &s, nil
}

// tagStrings converts a typed tag slice to a TEXT[] parameter.
func tagStrings[T ~string](tags []T) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

// typedTags converts a scanned TEXT[] back to typed tags. Values are
// trusted; the write path validated them against the closed sets.
func typedTags[T ~string](raw []string) []T {
	out := make([]T, len(raw))
	for i, v := range raw {
		out[i] = T(v)
	}
	return out
}

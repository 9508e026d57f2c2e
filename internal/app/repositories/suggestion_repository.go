package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/db"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/TRK06/feedback-system/internal/pkg/logger"
)

// SuggestionRepository stores free-text suggestions
type SuggestionRepository struct {
	db db.Querier
}

// NewSuggestionRepository creates a new SuggestionRepository
func NewSuggestionRepository(q db.Querier) *SuggestionRepository {
	return &SuggestionRepository{db: q}
}

func insertSuggestion(ctx context.Context, q db.Querier, s *models.Suggestion) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	sql, args, err := psql.Insert("suggestions").
		Columns("student_id", "subject_code", "message", "created_at").
		Values(s.StudentID, s.SubjectCode, s.Message, s.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return q.QueryRow(ctx, sql, args...).Scan(&s.ID)
}

// Create stores a suggestion and fills in its id and creation time
func (r *SuggestionRepository) Create(ctx context.Context, s *models.Suggestion) error {
	if err := insertSuggestion(ctx, r.db, s); err != nil {
		logger.Error().Err(err).Str("studentID", s.StudentID).Msg("Error inserting suggestion")
		return apperrors.NewStoreError("create suggestion", err)
	}
	return nil
}

// ListByStudent returns the student's suggestions, newest first
func (r *SuggestionRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Suggestion, error) {
	sql, args, err := psql.Select("id", "student_id", "subject_code", "message", "created_at").
		From("suggestions").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError("list suggestions", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error executing list suggestions query")
		return nil, apperrors.NewStoreError("list suggestions", err)
	}
	defer rows.Close()

	out := make([]models.Suggestion, 0)
	for rows.Next() {
		var s models.Suggestion
		if err := rows.Scan(&s.ID, &s.StudentID, &s.SubjectCode, &s.Message, &s.CreatedAt); err != nil {
			return nil, apperrors.NewStoreError("list suggestions", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list suggestions", err)
	}
	return out, nil
}

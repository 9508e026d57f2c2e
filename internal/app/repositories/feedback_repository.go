package repositories

import (
	"context"
	"errors"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/db"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/TRK06/feedback-system/internal/pkg/dberrors"
	"github.com/TRK06/feedback-system/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Constraint backing the one-submission-per-subject rule
const feedbackUniqueConstraint = "feedback_student_subject_parameter_key"

// FeedbackRepository stores ratings and reads them back
type FeedbackRepository struct {
	db db.Pool
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(pool db.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: pool}
}

func hasFeedback(ctx context.Context, q db.Querier, studentID, subjectCode string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM feedback WHERE student_id = $1 AND subject_code = $2)`,
		studentID, subjectCode).Scan(&exists)
	return exists, err
}

// HasSubmitted reports whether the student already rated the subject
func (r *FeedbackRepository) HasSubmitted(ctx context.Context, studentID, subjectCode string) (bool, error) {
	exists, err := hasFeedback(ctx, r.db, studentID, subjectCode)
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID).Str("subjectCode", subjectCode).Msg("Error checking existing feedback")
		return false, apperrors.NewStoreError("check feedback", err)
	}
	return exists, nil
}

// SubmittedSubjectCodes returns the set of subject codes the student has rated
func (r *FeedbackRepository) SubmittedSubjectCodes(ctx context.Context, studentID string) (map[string]bool, error) {
	sql, args, err := psql.Select("DISTINCT subject_code").
		From("feedback").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError("list rated subjects", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error listing rated subjects")
		return nil, apperrors.NewStoreError("list rated subjects", err)
	}
	defer rows.Close()

	codes := make(map[string]bool)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, apperrors.NewStoreError("list rated subjects", err)
		}
		codes[code] = true
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list rated subjects", err)
	}
	return codes, nil
}

// Submit writes one feedback row per rated parameter and the optional
// suggestion in a single transaction. The student row is locked first so
// concurrent submissions by the same student run one after another; the
// cohort and "not yet rated" checks are repeated under that lock.
//
// Returns ErrStudentNotFound, ErrSubjectNotFound or
// ErrFeedbackAlreadySubmitted when a check fails, and a store error otherwise.
func (r *FeedbackRepository) Submit(ctx context.Context, sub *models.Submission) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var current models.Cohort
		err := tx.QueryRow(ctx,
			`SELECT department, year, semester FROM students WHERE student_id = $1 FOR UPDATE`,
			sub.StudentID).Scan(&current.Department, &current.Year, &current.Semester)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrStudentNotFound
			}
			return apperrors.NewStoreError("lock student", err)
		}
		if !current.Matches(sub.Cohort) {
			return apperrors.ErrSubjectNotFound
		}

		var offered bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM subjects WHERE subject_code = $1 AND department = $2 AND year = $3 AND semester = $4)`,
			sub.SubjectCode, current.Department, current.Year, current.Semester).Scan(&offered)
		if err != nil {
			return apperrors.NewStoreError("recheck subject", err)
		}
		if !offered {
			return apperrors.ErrSubjectNotFound
		}

		exists, err := hasFeedback(ctx, tx, sub.StudentID, sub.SubjectCode)
		if err != nil {
			return apperrors.NewStoreError("recheck feedback", err)
		}
		if exists {
			return apperrors.ErrFeedbackAlreadySubmitted
		}

		ids := make([]int64, 0, len(sub.Ratings))
		for id := range sub.Ratings {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		ib := psql.Insert("feedback").Columns("student_id", "subject_code", "parameter_id", "rating", "submitted_at")
		for _, id := range ids {
			ib = ib.Values(sub.StudentID, sub.SubjectCode, id, sub.Ratings[id], sub.SubmittedAt)
		}
		sql, args, err := ib.ToSql()
		if err != nil {
			return apperrors.NewStoreError("insert feedback", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsDuplicateConstraintError(err, feedbackUniqueConstraint) {
				return apperrors.ErrFeedbackAlreadySubmitted
			}
			return apperrors.NewStoreError("insert feedback", err)
		}

		if sub.Suggestion != "" {
			code := sub.SubjectCode
			if err := insertSuggestion(ctx, tx, &models.Suggestion{
				StudentID:   sub.StudentID,
				SubjectCode: &code,
				Message:     sub.Suggestion,
				CreatedAt:   sub.SubmittedAt,
			}); err != nil {
				return apperrors.NewStoreError("insert suggestion", err)
			}
		}
		return nil
	})

	var ev *zerolog.Event
	switch {
	case err == nil:
		ev = logger.Info()
	case errors.Is(err, apperrors.ErrStore):
		ev = logger.Error().Err(err)
	default:
		ev = logger.Warn().Err(err)
	}
	ev.Str("studentID", sub.StudentID).
		Str("subjectCode", sub.SubjectCode).
		Int("ratings", len(sub.Ratings)).
		Bool("committed", err == nil).
		Msg("Feedback submission finished")
	return err
}

// ListByStudent returns the student's feedback rows joined with subject and
// parameter details, newest submission first
func (r *FeedbackRepository) ListByStudent(ctx context.Context, studentID string) ([]models.FeedbackRecord, error) {
	sql, args, err := psql.Select(
		"f.id", "f.student_id", "f.subject_code", "f.parameter_id", "f.rating", "f.submitted_at",
		"s.subject_name", "s.faculty_name", "p.parameter_name", "p.category",
	).From("feedback f").
		Join("subjects s ON s.subject_code = f.subject_code").
		Join("parameters p ON p.id = f.parameter_id").
		Where(squirrel.Eq{"f.student_id": studentID}).
		OrderBy("f.submitted_at DESC", "f.subject_code", "p.category", "p.parameter_name").
		ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError("list feedback", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error executing list feedback query")
		return nil, apperrors.NewStoreError("list feedback", err)
	}
	defer rows.Close()

	records := make([]models.FeedbackRecord, 0)
	for rows.Next() {
		var rec models.FeedbackRecord
		if err := rows.Scan(
			&rec.ID, &rec.StudentID, &rec.SubjectCode, &rec.ParameterID, &rec.Rating, &rec.SubmittedAt,
			&rec.SubjectName, &rec.FacultyName, &rec.ParameterName, &rec.Category,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning feedback row")
			return nil, apperrors.NewStoreError("list feedback", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list feedback", err)
	}
	return records, nil
}

// Summary averages ratings per subject and parameter. An empty subjectCode
// covers every subject.
func (r *FeedbackRepository) Summary(ctx context.Context, subjectCode string) ([]models.RatingSummary, error) {
	qb := psql.Select(
		"f.subject_code", "s.subject_name", "s.faculty_name",
		"p.id", "p.parameter_name", "p.category",
		"AVG(f.rating)::float8", "COUNT(*)",
	).From("feedback f").
		Join("subjects s ON s.subject_code = f.subject_code").
		Join("parameters p ON p.id = f.parameter_id").
		GroupBy("f.subject_code", "s.subject_name", "s.faculty_name", "p.id", "p.parameter_name", "p.category").
		OrderBy("f.subject_code", "p.category", "p.parameter_name")
	if subjectCode != "" {
		qb = qb.Where(squirrel.Eq{"f.subject_code": subjectCode})
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError("summarize feedback", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing feedback summary query")
		return nil, apperrors.NewStoreError("summarize feedback", err)
	}
	defer rows.Close()

	out := make([]models.RatingSummary, 0)
	for rows.Next() {
		var s models.RatingSummary
		if err := rows.Scan(&s.SubjectCode, &s.SubjectName, &s.FacultyName,
			&s.ParameterID, &s.ParameterName, &s.Category, &s.Average, &s.Responses); err != nil {
			return nil, apperrors.NewStoreError("summarize feedback", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("summarize feedback", err)
	}
	return out, nil
}

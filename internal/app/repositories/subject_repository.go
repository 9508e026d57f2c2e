package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/db"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/TRK06/feedback-system/internal/pkg/dberrors"
	"github.com/TRK06/feedback-system/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

var subjectColumns = []string{
	"subject_code", "subject_name", "subject_type", "faculty_name", "department", "year", "semester",
}

// SubjectRepository handles the subject catalogue
type SubjectRepository struct {
	db db.Pool
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(pool db.Pool) *SubjectRepository {
	return &SubjectRepository{db: pool}
}

func cohortEq(c models.Cohort) squirrel.Eq {
	return squirrel.Eq{"department": c.Department, "year": c.Year, "semester": c.Semester}
}

func scanSubject(row pgx.Row) (*models.Subject, error) {
	var s models.Subject
	err := row.Scan(&s.Code, &s.Name, &s.Type, &s.FacultyName, &s.Department, &s.Year, &s.Semester)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetForCohort returns the subject with the given code only if it is offered
// to the cohort. A code outside the cohort is reported as ErrSubjectNotFound.
func (r *SubjectRepository) GetForCohort(ctx context.Context, code string, cohort models.Cohort) (*models.Subject, error) {
	sql, args, err := psql.Select(subjectColumns...).
		From("subjects").
		Where(squirrel.Eq{"subject_code": code}).
		Where(cohortEq(cohort)).
		ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError("get subject", err)
	}

	s, err := scanSubject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Str("subjectCode", code).Msg("Error executing get subject query")
		return nil, apperrors.NewStoreError("get subject", err)
	}
	return s, nil
}

// ListForCohort returns the cohort's subjects ordered by code
func (r *SubjectRepository) ListForCohort(ctx context.Context, cohort models.Cohort) ([]models.Subject, error) {
	return r.list(ctx, psql.Select(subjectColumns...).From("subjects").Where(cohortEq(cohort)).OrderBy("subject_code"))
}

// ListAll returns the whole catalogue ordered by cohort and code
func (r *SubjectRepository) ListAll(ctx context.Context) ([]models.Subject, error) {
	return r.list(ctx, psql.Select(subjectColumns...).From("subjects").
		OrderBy("department", "year", "semester", "subject_code"))
}

func (r *SubjectRepository) list(ctx context.Context, qb squirrel.SelectBuilder) ([]models.Subject, error) {
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError("list subjects", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list subjects query")
		return nil, apperrors.NewStoreError("list subjects", err)
	}
	defer rows.Close()

	subjects := make([]models.Subject, 0)
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning subject row")
			return nil, apperrors.NewStoreError("list subjects", err)
		}
		subjects = append(subjects, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list subjects", err)
	}
	return subjects, nil
}

func insertSubjects(subjects []models.Subject) squirrel.InsertBuilder {
	ib := psql.Insert("subjects").Columns(subjectColumns...)
	for _, s := range subjects {
		ib = ib.Values(s.Code, s.Name, s.Type, s.FacultyName, s.Department, s.Year, s.Semester)
	}
	return ib
}

// ReplaceAll clears the catalogue and loads subjects in one transaction.
// Nothing changes if any row is rejected.
func (r *SubjectRepository) ReplaceAll(ctx context.Context, subjects []models.Subject) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM subjects"); err != nil {
			return apperrors.NewStoreError("clear subjects", err)
		}
		if len(subjects) == 0 {
			return nil
		}

		sql, args, err := insertSubjects(subjects).ToSql()
		if err != nil {
			return apperrors.NewStoreError("load subjects", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.NewConflictError("duplicate subject code in upload")
			}
			return apperrors.NewStoreError("load subjects", err)
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Int("count", len(subjects)).Msg("Subject bulk load rolled back")
		return err
	}

	logger.Info().Int("count", len(subjects)).Msg("Subject catalogue replaced")
	return nil
}

// InsertMissing adds subjects whose code is not present yet and returns how
// many rows were inserted
func (r *SubjectRepository) InsertMissing(ctx context.Context, subjects []models.Subject) (int64, error) {
	if len(subjects) == 0 {
		return 0, nil
	}
	sql, args, err := insertSubjects(subjects).Suffix("ON CONFLICT (subject_code) DO NOTHING").ToSql()
	if err != nil {
		return 0, apperrors.NewStoreError("insert subjects", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error inserting default subjects")
		return 0, apperrors.NewStoreError("insert subjects", err)
	}
	return tag.RowsAffected(), nil
}

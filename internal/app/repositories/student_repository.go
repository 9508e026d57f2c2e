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

var studentColumns = []string{"student_id", "name", "department", "year", "semester", "password", "created_at"}

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.Querier
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(q db.Querier) *StudentRepository {
	return &StudentRepository{db: q}
}

// Create inserts a new student. A taken student id yields ErrStudentIDAlreadyExists.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := psql.Insert("students").
		Columns("student_id", "name", "department", "year", "semester", "password").
		Values(student.StudentID, student.Name, student.Department, student.Year, student.Semester, student.PasswordHash).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return apperrors.NewStoreError("create student", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_pkey") {
			logger.Warn().Str("studentID", student.StudentID).Msg("Attempted to create student with duplicate student ID")
			return apperrors.ErrStudentIDAlreadyExists
		}
		logger.Error().Err(err).Str("studentID", student.StudentID).Msg("Error executing create student query")
		return apperrors.NewStoreError("create student", err)
	}

	logger.Info().Str("studentID", student.StudentID).Str("department", student.Department).Msg("Student created successfully")
	return nil
}

// GetByStudentID retrieves a student by the student identifier
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	sql, args, err := psql.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"student_id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, apperrors.NewStoreError("get student", err)
	}

	var s models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.StudentID, &s.Name, &s.Department, &s.Year, &s.Semester, &s.PasswordHash, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error executing get student query")
		return nil, apperrors.NewStoreError("get student", err)
	}
	return &s, nil
}

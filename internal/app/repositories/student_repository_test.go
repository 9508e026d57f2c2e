package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
)

func TestStudentCreateDuplicateID(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)

	mock.ExpectQuery("INSERT INTO students").
		WithArgs("S001", "A", "CSE", 2, 2, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "students_pkey"})

	err := repo.Create(context.Background(), &models.Student{StudentID: "S001", Name: "A", Department: "CSE", Year: 2, Semester: 2})
	if !errors.Is(err, apperrors.ErrStudentIDAlreadyExists) {
		t.Fatalf("err = %v, want ErrStudentIDAlreadyExists", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStudentGetByStudentID(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT student_id, name, department, year, semester, password, created_at FROM students WHERE student_id = \$1`).
		WithArgs("S001").
		WillReturnRows(pgxmock.NewRows(studentColumns).AddRow("S001", "Asha Rao", "CSE", 2, 2, "hash", created))

	s, err := repo.GetByStudentID(context.Background(), "S001")
	if err != nil {
		t.Fatalf("GetByStudentID: %v", err)
	}
	id := s.Identity()
	if id.StudentID != "S001" || id.Department != "CSE" || id.Year != 2 {
		t.Errorf("identity = %+v", id)
	}
}

func TestStudentGetByStudentIDNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)

	mock.ExpectQuery("FROM students").WithArgs("nobody").WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByStudentID(context.Background(), "nobody"); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("err = %v, want ErrStudentNotFound", err)
	}
}

func TestAdminCount(t *testing.T) {
	mock := newMock(t)
	repo := NewAdminRepository(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM admins`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	n, err := repo.Count(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}

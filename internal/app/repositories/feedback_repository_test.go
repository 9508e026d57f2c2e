package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
)

const (
	lockStudentSQL    = `SELECT department, year, semester FROM students WHERE student_id = \$1 FOR UPDATE`
	recheckSubjectSQL = `SELECT EXISTS\(SELECT 1 FROM subjects WHERE subject_code`
	recheckFeedback   = `SELECT EXISTS\(SELECT 1 FROM feedback WHERE student_id`
)

var submittedAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// one row per parameter, ordered by parameter id
var cs453RatingArgs = []any{
	"S001", "CS453", int64(1), 5, submittedAt,
	"S001", "CS453", int64(2), 4, submittedAt,
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func cs453Submission(suggestion string) *models.Submission {
	return &models.Submission{
		StudentID:   "S001",
		Cohort:      models.Cohort{Department: "CSE", Year: 2, Semester: 2},
		SubjectCode: "CS453",
		Ratings:     map[int64]int{2: 4, 1: 5},
		Suggestion:  suggestion,
		SubmittedAt: submittedAt,
	}
}

func expectChecks(mock pgxmock.PgxPoolIface, offered, already bool) {
	mock.ExpectQuery(lockStudentSQL).WithArgs("S001").
		WillReturnRows(pgxmock.NewRows([]string{"department", "year", "semester"}).AddRow("CSE", 2, 2))
	mock.ExpectQuery(recheckSubjectSQL).WithArgs("CS453", "CSE", 2, 2).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(offered))
	if !offered {
		return
	}
	mock.ExpectQuery(recheckFeedback).WithArgs("S001", "CS453").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(already))
}

func TestSubmitWritesOneRowPerParameterAndSuggestion(t *testing.T) {
	mock := newMock(t)
	repo := NewFeedbackRepository(mock)

	mock.ExpectBegin()
	expectChecks(mock, true, false)
	mock.ExpectExec("INSERT INTO feedback").
		WithArgs(cs453RatingArgs...).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectQuery("INSERT INTO suggestions").
		WithArgs("S001", pgxmock.AnyArg(), "More lab hours", submittedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectCommit()

	if err := repo.Submit(context.Background(), cs453Submission("More lab hours")); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubmitWithoutSuggestionSkipsSuggestionRow(t *testing.T) {
	mock := newMock(t)
	repo := NewFeedbackRepository(mock)

	mock.ExpectBegin()
	expectChecks(mock, true, false)
	mock.ExpectExec("INSERT INTO feedback").WithArgs(cs453RatingArgs...).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	if err := repo.Submit(context.Background(), cs453Submission("")); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubmitRecheckFindsExistingFeedback(t *testing.T) {
	mock := newMock(t)
	repo := NewFeedbackRepository(mock)

	mock.ExpectBegin()
	expectChecks(mock, true, true)
	mock.ExpectRollback()

	err := repo.Submit(context.Background(), cs453Submission(""))
	if !errors.Is(err, apperrors.ErrFeedbackAlreadySubmitted) {
		t.Fatalf("err = %v, want ErrFeedbackAlreadySubmitted", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubmitUniqueViolationRollsBack(t *testing.T) {
	mock := newMock(t)
	repo := NewFeedbackRepository(mock)

	mock.ExpectBegin()
	expectChecks(mock, true, false)
	mock.ExpectExec("INSERT INTO feedback").WithArgs(cs453RatingArgs...).WillReturnError(&pgconn.PgError{
		Code:           "23505",
		ConstraintName: "feedback_student_subject_parameter_key",
	})
	mock.ExpectRollback()

	err := repo.Submit(context.Background(), cs453Submission("x"))
	if !errors.Is(err, apperrors.ErrFeedbackAlreadySubmitted) {
		t.Fatalf("err = %v, want ErrFeedbackAlreadySubmitted", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubmitSuggestionFailureRollsBackRatings(t *testing.T) {
	mock := newMock(t)
	repo := NewFeedbackRepository(mock)

	mock.ExpectBegin()
	expectChecks(mock, true, false)
	mock.ExpectExec("INSERT INTO feedback").WithArgs(cs453RatingArgs...).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectQuery("INSERT INTO suggestions").
		WithArgs("S001", pgxmock.AnyArg(), "x", submittedAt).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Submit(context.Background(), cs453Submission("x"))
	if !errors.Is(err, apperrors.ErrStore) {
		t.Fatalf("err = %v, want store error", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubmitSubjectNoLongerOffered(t *testing.T) {
	mock := newMock(t)
	repo := NewFeedbackRepository(mock)

	mock.ExpectBegin()
	expectChecks(mock, false, false)
	mock.ExpectRollback()

	err := repo.Submit(context.Background(), cs453Submission(""))
	if !errors.Is(err, apperrors.ErrSubjectNotFound) {
		t.Fatalf("err = %v, want ErrSubjectNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubmitStudentCohortChanged(t *testing.T) {
	mock := newMock(t)
	repo := NewFeedbackRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(lockStudentSQL).WithArgs("S001").
		WillReturnRows(pgxmock.NewRows([]string{"department", "year", "semester"}).AddRow("CSE", 3, 1))
	mock.ExpectRollback()

	err := repo.Submit(context.Background(), cs453Submission(""))
	if !errors.Is(err, apperrors.ErrSubjectNotFound) {
		t.Fatalf("err = %v, want ErrSubjectNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListByStudent(t *testing.T) {
	mock := newMock(t)
	repo := NewFeedbackRepository(mock)

	cols := []string{"id", "student_id", "subject_code", "parameter_id", "rating", "submitted_at",
		"subject_name", "faculty_name", "parameter_name", "category"}
	mock.ExpectQuery(`SELECT f.id.*FROM feedback f JOIN subjects s.*JOIN parameters p.*WHERE f.student_id = \$1 ORDER BY f.submitted_at DESC`).
		WithArgs("S001").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(3), "S001", "CS453", int64(1), 5, submittedAt, "Python Programming", "Dr. White", "Clarity", "Teaching").
			AddRow(int64(4), "S001", "CS453", int64(2), 4, submittedAt, "Python Programming", "Dr. White", "Punctuality", "Teaching"))

	recs, err := repo.ListByStudent(context.Background(), "S001")
	if err != nil {
		t.Fatalf("ListByStudent: %v", err)
	}
	if len(recs) != 2 || recs[0].SubjectName != "Python Programming" || recs[1].Rating != 4 {
		t.Fatalf("records = %+v", recs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestHasSubmittedStoreError(t *testing.T) {
	mock := newMock(t)
	repo := NewFeedbackRepository(mock)

	mock.ExpectQuery(recheckFeedback).WithArgs("S001", "CS453").WillReturnError(errors.New("conn reset"))

	_, err := repo.HasSubmitted(context.Background(), "S001", "CS453")
	if !errors.Is(err, apperrors.ErrStore) {
		t.Fatalf("err = %v, want store error", err)
	}
}

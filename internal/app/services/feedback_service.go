package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/app/models/dto"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/TRK06/feedback-system/internal/pkg/metrics"
	"github.com/TRK06/feedback-system/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// User-facing feedback messages
const (
	MsgInvalidSubject     = "Invalid subject selected"
	MsgAlreadySubmitted   = "You have already submitted feedback for this subject"
	MsgSubjectUnavailable = "This subject is no longer available for your cohort"
	MsgSubmitted          = "Feedback submitted successfully!"
	MsgSubmitFailed       = "An error occurred while submitting feedback"
	MsgRatingsInvalid     = "Please rate every parameter from 1 to 5"
)

// Eligibility is the outcome of the pre-submission gate
type Eligibility struct {
	Subject          models.Subject
	AlreadySubmitted bool
}

// FeedbackForm is the data behind the rating form
type FeedbackForm struct {
	Subject models.Subject
	Groups  []models.ParameterGroup
}

// SubmissionResult describes a committed submission
type SubmissionResult struct {
	SubjectCode     string    `json:"subjectCode"`
	SubjectName     string    `json:"subjectName"`
	Ratings         int       `json:"ratings"`
	SuggestionSaved bool      `json:"suggestionSaved"`
	SubmittedAt     time.Time `json:"submittedAt"`
}

// FeedbackService gates, validates and records feedback submissions
type FeedbackService struct {
	subjects   SubjectStore
	parameters ParameterStore
	feedback   FeedbackStore
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	now        func() time.Time
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(
	subjects SubjectStore,
	parameters ParameterStore,
	feedback FeedbackStore,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *FeedbackService {
	return &FeedbackService{
		subjects:   subjects,
		parameters: parameters,
		feedback:   feedback,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

func subjectNotFound(cause error) error {
	return &apperrors.CustomError{Err: apperrors.ErrResourceNotFound, Message: MsgInvalidSubject, Cause: cause}
}

func alreadySubmitted() error {
	return &apperrors.CustomError{
		Err:     apperrors.ErrConflict,
		Message: MsgAlreadySubmitted,
		Cause:   apperrors.ErrFeedbackAlreadySubmitted,
	}
}

// CanSubmit reports whether the subject is offered to the student's cohort
// and whether the student already rated it. A code that is empty, unknown,
// or belongs to another cohort yields a not-found error. Nothing is written.
func (s *FeedbackService) CanSubmit(ctx context.Context, id models.Identity, subjectCode string) (*Eligibility, error) {
	code := strings.TrimSpace(subjectCode)
	if code == "" {
		return nil, subjectNotFound(apperrors.ErrSubjectNotFound)
	}

	subject, err := s.subjects.GetForCohort(ctx, code, id.Cohort)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			s.logger.Warn().Str("studentID", id.StudentID).Str("subjectCode", code).Msg("Subject not offered to student cohort")
			return nil, subjectNotFound(err)
		}
		return nil, err
	}

	submitted, err := s.feedback.HasSubmitted(ctx, id.StudentID, subject.Code)
	if err != nil {
		return nil, err
	}

	return &Eligibility{Subject: *subject, AlreadySubmitted: submitted}, nil
}

// Form returns the subject and its rating parameters grouped by category.
// A subject already rated yields a conflict error.
func (s *FeedbackService) Form(ctx context.Context, id models.Identity, subjectCode string) (*FeedbackForm, error) {
	elig, err := s.CanSubmit(ctx, id, subjectCode)
	if err != nil {
		return nil, err
	}
	if elig.AlreadySubmitted {
		return nil, alreadySubmitted()
	}

	params, err := s.parameters.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return &FeedbackForm{Subject: elig.Subject, Groups: models.GroupParameters(params)}, nil
}

// validateRatings turns the raw form values into ratings keyed by parameter
// id. It requires exactly one value per parameter and each value an integer
// within the rating scale.
func validateRatings(params []models.Parameter, raw map[string]string) (map[int64]int, map[string]string) {
	fields := make(map[string]string)
	ratings := make(map[int64]int, len(params))
	known := make(map[string]bool, len(params))

	for _, p := range params {
		key := strconv.FormatInt(p.ID, 10)
		known[key] = true
		field := fmt.Sprintf("ratings[%s]", key)

		value, ok := raw[key]
		if !ok || strings.TrimSpace(value) == "" {
			fields[field] = fmt.Sprintf("Please rate %q", p.Name)
			continue
		}
		rating, ok := validation.ParseRating(value)
		if !ok {
			fields[field] = fmt.Sprintf("Rating must be a whole number between %d and %d", validation.MinRating, validation.MaxRating)
			continue
		}
		ratings[p.ID] = rating
	}

	for key := range raw {
		if !known[strings.TrimSpace(key)] {
			fields[fmt.Sprintf("ratings[%s]", key)] = "Unknown rating parameter"
		}
	}

	if len(fields) > 0 {
		return nil, fields
	}
	return ratings, nil
}

// Submit records one rating per parameter plus the optional suggestion for
// the subject, all or nothing.
//
// ratings maps parameter ids to raw form values. Errors are a not-found error
// for a subject outside the cohort, a validation error listing the offending
// fields, a conflict error when feedback already exists, or a store error.
func (s *FeedbackService) Submit(ctx context.Context, id models.Identity, subjectCode string, ratings map[string]string, suggestion string) (*SubmissionResult, error) {
	result, err := s.submit(ctx, id, subjectCode, ratings, suggestion)
	s.metrics.ObserveSubmission(submissionOutcome(err))
	return result, err
}

func (s *FeedbackService) submit(ctx context.Context, id models.Identity, subjectCode string, raw map[string]string, suggestion string) (*SubmissionResult, error) {
	elig, err := s.CanSubmit(ctx, id, subjectCode)
	if err != nil {
		return nil, err
	}
	if elig.AlreadySubmitted {
		return nil, alreadySubmitted()
	}

	params, err := s.parameters.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return nil, apperrors.NewStoreError("load parameters", errors.New("no rating parameters configured"))
	}

	ratings, fields := validateRatings(params, raw)
	suggestion = strings.TrimSpace(suggestion)
	if len(suggestion) > validation.SuggestionMaxLength {
		if fields == nil {
			fields = make(map[string]string)
		}
		fields["suggestion"] = fmt.Sprintf("Suggestion must be at most %d characters", validation.SuggestionMaxLength)
	}
	if fields != nil {
		s.logger.Warn().Str("studentID", id.StudentID).Str("subjectCode", elig.Subject.Code).
			Int("invalidFields", len(fields)).Msg("Rejected feedback submission")
		return nil, apperrors.NewValidationError(MsgRatingsInvalid, fields)
	}

	sub := &models.Submission{
		StudentID:   id.StudentID,
		Cohort:      id.Cohort,
		SubjectCode: elig.Subject.Code,
		Ratings:     ratings,
		Suggestion:  suggestion,
		SubmittedAt: s.now().UTC(),
	}

	if err := s.feedback.Submit(ctx, sub); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrFeedbackAlreadySubmitted):
			return nil, alreadySubmitted()
		case apperrors.Is(err, apperrors.ErrSubjectNotFound, apperrors.ErrStudentNotFound):
			return nil, &apperrors.CustomError{Err: apperrors.ErrConflict, Message: MsgSubjectUnavailable, Cause: err}
		case errors.Is(err, apperrors.ErrStore):
			return nil, err
		default:
			return nil, apperrors.NewStoreError("submit feedback", err)
		}
	}

	return &SubmissionResult{
		SubjectCode:     sub.SubjectCode,
		SubjectName:     elig.Subject.Name,
		Ratings:         len(ratings),
		SuggestionSaved: suggestion != "",
		SubmittedAt:     sub.SubmittedAt,
	}, nil
}

func submissionOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, apperrors.ErrValidationFailed):
		return metrics.ResultValidation
	case errors.Is(err, apperrors.ErrConflict):
		return metrics.ResultConflict
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return metrics.ResultNotFound
	default:
		return metrics.ResultError
	}
}

// ListSubmissions returns the student's feedback history, newest first
func (s *FeedbackService) ListSubmissions(ctx context.Context, id models.Identity) ([]models.FeedbackRecord, error) {
	return s.feedback.ListByStudent(ctx, id.StudentID)
}

// CohortSubjects lists the subjects offered to the student's cohort, each
// flagged with whether the student already rated it
func (s *FeedbackService) CohortSubjects(ctx context.Context, id models.Identity) ([]dto.DashboardSubject, error) {
	subjects, err := s.subjects.ListForCohort(ctx, id.Cohort)
	if err != nil {
		return nil, err
	}
	rated, err := s.feedback.SubmittedSubjectCodes(ctx, id.StudentID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DashboardSubject, 0, len(subjects))
	for _, subj := range subjects {
		out = append(out, dto.DashboardSubject{Subject: subj, Submitted: rated[subj.Code]})
	}
	return out, nil
}

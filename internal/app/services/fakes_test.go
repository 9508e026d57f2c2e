package services

import (
	"context"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/TRK06/feedback-system/internal/pkg/auth"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	auth.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

var nopLogger = zerolog.Nop()

var (
	cse22 = models.Cohort{Department: "CSE", Year: 2, Semester: 2}
	cse32 = models.Cohort{Department: "CSE", Year: 3, Semester: 2}

	testDepartments = map[string]string{"CSE": "Computer Science and Engineering", "ECE": "Electronics"}

	testParameters = []models.Parameter{
		{ID: 1, Category: "Course Content", Name: "Relevance of syllabus"},
		{ID: 2, Category: "Teaching", Name: "Clarity of explanation"},
		{ID: 3, Category: "Teaching", Name: "Punctuality"},
	}
)

func catalogue() []models.Subject {
	return []models.Subject{
		{Code: "CS451", Name: "Probability and Statistics", Type: "Theory", FacultyName: "Dr. Smith", Department: "CSE", Year: 2, Semester: 2},
		{Code: "CS453", Name: "Python Programming", Type: "Theory", FacultyName: "Dr. White", Department: "CSE", Year: 2, Semester: 2},
		{Code: "CS701", Name: "Machine Learning", Type: "Theory", FacultyName: "Dr. Anderson", Department: "CSE", Year: 3, Semester: 2},
	}
}

func identity(id string, c models.Cohort) models.Identity {
	return models.Identity{StudentID: id, Name: "Test Student", Cohort: c}
}

// fakeSubjects is an in-memory SubjectStore
type fakeSubjects struct {
	mu         sync.Mutex
	items      map[string]models.Subject
	replaceErr error
	replaced   int
}

func newFakeSubjects(subjects ...models.Subject) *fakeSubjects {
	f := &fakeSubjects{items: make(map[string]models.Subject)}
	for _, s := range subjects {
		f.items[s.Code] = s
	}
	return f
}

func (f *fakeSubjects) GetForCohort(_ context.Context, code string, c models.Cohort) (*models.Subject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.items[code]
	if !ok || !s.Cohort().Matches(c) {
		return nil, apperrors.ErrSubjectNotFound
	}
	return &s, nil
}

func (f *fakeSubjects) ListForCohort(_ context.Context, c models.Cohort) ([]models.Subject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Subject{}
	for _, s := range f.items {
		if s.Cohort().Matches(c) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (f *fakeSubjects) ListAll(_ context.Context) ([]models.Subject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Subject, 0, len(f.items))
	for _, s := range f.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (f *fakeSubjects) ReplaceAll(_ context.Context, subjects []models.Subject) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.items = make(map[string]models.Subject, len(subjects))
	for _, s := range subjects {
		f.items[s.Code] = s
	}
	f.replaced++
	return nil
}

type fakeParameters struct {
	items []models.Parameter
	err   error
}

func (f *fakeParameters) ListAll(_ context.Context) ([]models.Parameter, error) {
	return f.items, f.err
}

// fakeFeedback is an in-memory FeedbackStore whose Submit is atomic under a
// mutex, the way the database transaction is
type fakeFeedback struct {
	mu          sync.Mutex
	subjects    *fakeSubjects
	params      []models.Parameter
	entries     []models.FeedbackEntry
	suggestions []models.Suggestion
	submitErr   error
	submitCalls int

	// readBarrier, when set, holds every HasSubmitted caller until all
	// expected callers have read
	readBarrier *sync.WaitGroup
}

func newFakeFeedback(subjects *fakeSubjects, params []models.Parameter) *fakeFeedback {
	return &fakeFeedback{subjects: subjects, params: params}
}

func (f *fakeFeedback) has(studentID, code string) bool {
	for _, e := range f.entries {
		if e.StudentID == studentID && e.SubjectCode == code {
			return true
		}
	}
	return false
}

func (f *fakeFeedback) HasSubmitted(_ context.Context, studentID, code string) (bool, error) {
	f.mu.Lock()
	exists := f.has(studentID, code)
	f.mu.Unlock()
	if f.readBarrier != nil {
		f.readBarrier.Done()
		f.readBarrier.Wait()
	}
	return exists, nil
}

func (f *fakeFeedback) SubmittedSubjectCodes(_ context.Context, studentID string) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]bool)
	for _, e := range f.entries {
		if e.StudentID == studentID {
			out[e.SubjectCode] = true
		}
	}
	return out, nil
}

func (f *fakeFeedback) Submit(ctx context.Context, sub *models.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitCalls++
	if f.submitErr != nil {
		return f.submitErr
	}
	if _, err := f.subjects.GetForCohort(ctx, sub.SubjectCode, sub.Cohort); err != nil {
		return err
	}
	if f.has(sub.StudentID, sub.SubjectCode) {
		return apperrors.ErrFeedbackAlreadySubmitted
	}
	for id, rating := range sub.Ratings {
		f.entries = append(f.entries, models.FeedbackEntry{
			ID:          int64(len(f.entries) + 1),
			StudentID:   sub.StudentID,
			SubjectCode: sub.SubjectCode,
			ParameterID: id,
			Rating:      rating,
			SubmittedAt: sub.SubmittedAt,
		})
	}
	if sub.Suggestion != "" {
		code := sub.SubjectCode
		f.suggestions = append(f.suggestions, models.Suggestion{
			ID: int64(len(f.suggestions) + 1), StudentID: sub.StudentID, SubjectCode: &code,
			Message: sub.Suggestion, CreatedAt: sub.SubmittedAt,
		})
	}
	return nil
}

func (f *fakeFeedback) entriesFor(studentID, code string) []models.FeedbackEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.FeedbackEntry
	for _, e := range f.entries {
		if e.StudentID == studentID && e.SubjectCode == code {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeFeedback) ListByStudent(_ context.Context, studentID string) ([]models.FeedbackRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	params := make(map[int64]models.Parameter, len(f.params))
	for _, p := range f.params {
		params[p.ID] = p
	}
	out := []models.FeedbackRecord{}
	for _, e := range f.entries {
		if e.StudentID != studentID {
			continue
		}
		subj := f.subjects.items[e.SubjectCode]
		p := params[e.ParameterID]
		out = append(out, models.FeedbackRecord{
			FeedbackEntry: e, SubjectName: subj.Name, FacultyName: subj.FacultyName,
			ParameterName: p.Name, Category: p.Category,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ParameterName < out[j].ParameterName
	})
	return out, nil
}

func (f *fakeFeedback) Summary(_ context.Context, code string) ([]models.RatingSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	type key struct {
		code string
		id   int64
	}
	sums := map[key]*models.RatingSummary{}
	var keys []key
	for _, e := range f.entries {
		if code != "" && e.SubjectCode != code {
			continue
		}
		k := key{e.SubjectCode, e.ParameterID}
		s, ok := sums[k]
		if !ok {
			s = &models.RatingSummary{SubjectCode: e.SubjectCode, ParameterID: e.ParameterID}
			sums[k] = s
			keys = append(keys, k)
		}
		s.Average = (s.Average*float64(s.Responses) + float64(e.Rating)) / float64(s.Responses+1)
		s.Responses++
	}
	out := make([]models.RatingSummary, 0, len(keys))
	for _, k := range keys {
		out = append(out, *sums[k])
	}
	return out, nil
}

type fakeStudents struct {
	mu    sync.Mutex
	items map[string]models.Student
}

func newFakeStudents() *fakeStudents {
	return &fakeStudents{items: make(map[string]models.Student)}
}

func (f *fakeStudents) Create(_ context.Context, s *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[s.StudentID]; ok {
		return apperrors.ErrStudentIDAlreadyExists
	}
	s.CreatedAt = time.Now()
	f.items[s.StudentID] = *s
	return nil
}

func (f *fakeStudents) GetByStudentID(_ context.Context, id string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.items[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return &s, nil
}

type fakeAdmins struct {
	mu     sync.Mutex
	items  map[string]models.Admin
	nextID int64
}

func newFakeAdmins() *fakeAdmins {
	return &fakeAdmins{items: make(map[string]models.Admin)}
}

func (f *fakeAdmins) Create(_ context.Context, a *models.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[a.Username]; ok {
		return apperrors.ErrAdminAlreadyExists
	}
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now()
	f.items[a.Username] = *a
	return nil
}

func (f *fakeAdmins) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.items[username]
	if !ok {
		return nil, apperrors.ErrAdminNotFound
	}
	return &a, nil
}

func (f *fakeAdmins) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.items)), nil
}

type fakeSuggestions struct {
	mu    sync.Mutex
	items []models.Suggestion
	err   error
}

func (f *fakeSuggestions) Create(_ context.Context, s *models.Suggestion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	s.ID = int64(len(f.items) + 1)
	s.CreatedAt = time.Now()
	f.items = append(f.items, *s)
	return nil
}

func (f *fakeSuggestions) ListByStudent(_ context.Context, id string) ([]models.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Suggestion{}
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].StudentID == id {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

package models

import "time"

// FeedbackEntry is one rating row, based on the 'feedback' table
type FeedbackEntry struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   string    `json:"studentId" db:"student_id"`
	SubjectCode string    `json:"subjectCode" db:"subject_code"`
	ParameterID int64     `json:"parameterId" db:"parameter_id"`
	Rating      int       `json:"rating" db:"rating" example:"4"`
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
}

// FeedbackRecord is a feedback row joined with its subject and parameter
type FeedbackRecord struct {
	FeedbackEntry
	SubjectName   string `json:"subjectName"`
	FacultyName   string `json:"facultyName"`
	ParameterName string `json:"parameterName"`
	Category      string `json:"category"`
}

// Submission is the validated write set of one feedback submission
type Submission struct {
	StudentID   string
	Cohort      Cohort
	SubjectCode string
	Ratings     map[int64]int // parameter id -> rating
	Suggestion  string        // trimmed, empty when absent
	SubmittedAt time.Time
}

// Suggestion is a free-text comment, based on the 'suggestions' table.
// SubjectCode is nil for general suggestions.
type Suggestion struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   string    `json:"studentId" db:"student_id"`
	SubjectCode *string   `json:"subjectCode,omitempty" db:"subject_code"`
	Message     string    `json:"message" db:"message"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// RatingSummary is the average rating for one subject and parameter
type RatingSummary struct {
	SubjectCode   string  `json:"subjectCode"`
	SubjectName   string  `json:"subjectName"`
	FacultyName   string  `json:"facultyName"`
	ParameterID   int64   `json:"parameterId"`
	ParameterName string  `json:"parameterName"`
	Category      string  `json:"category"`
	Average       float64 `json:"average" example:"4.25"`
	Responses     int     `json:"responses" example:"12"`
}

package dto

import "github.com/TRK06/feedback-system/internal/app/models"

// SubjectRequest is one row of a subject bulk load
type SubjectRequest struct {
	Code        string `json:"subjectCode" yaml:"subject_code" binding:"required,max=20"`
	Name        string `json:"subjectName" yaml:"subject_name" binding:"required,max=100"`
	Type        string `json:"subjectType" yaml:"subject_type" binding:"omitempty,max=50"`
	FacultyName string `json:"facultyName" yaml:"faculty_name" binding:"required,max=100"`
	Department  string `json:"department" yaml:"department" binding:"required"`
	Year        int    `json:"year" yaml:"year" binding:"required,min=1,max=4"`
	Semester    int    `json:"semester" yaml:"semester" binding:"required,min=1,max=2"`
}

// ToModel converts the request row into a subject
func (r SubjectRequest) ToModel() models.Subject {
	t := r.Type
	if t == "" {
		t = "Theory"
	}
	return models.Subject{
		Code:        r.Code,
		Name:        r.Name,
		Type:        t,
		FacultyName: r.FacultyName,
		Department:  r.Department,
		Year:        r.Year,
		Semester:    r.Semester,
	}
}

// BulkLoadSubjectsRequest replaces the whole subject catalogue
type BulkLoadSubjectsRequest struct {
	Subjects []SubjectRequest `json:"subjects" yaml:"subjects" binding:"required,min=1,dive"`
}

// BulkLoadSubjectsResponse reports the outcome of a bulk load
type BulkLoadSubjectsResponse struct {
	Loaded int `json:"loaded" example:"11"`
}

// SubjectListResponse lists the catalogue
type SubjectListResponse struct {
	Subjects []models.Subject `json:"subjects"`
}

// CreateAdminRequest creates a new administrator
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,alphanum"`
	Password string `json:"password" binding:"required,min=6"`
}

// AdminResponse is the public view of an admin
type AdminResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// FeedbackSummaryResponse holds average ratings per subject and parameter
type FeedbackSummaryResponse struct {
	Summary []models.RatingSummary `json:"summary"`
}

package dto

import (
	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/pkg/flash"
)

// RegisterRequest is the student registration form
type RegisterRequest struct {
	StudentID       string `form:"student_id" json:"studentId"`
	Name            string `form:"name" json:"name"`
	Department      string `form:"department" json:"department"`
	Year            string `form:"year" json:"year"`
	Semester        string `form:"semester" json:"semester"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirmPassword"`
}

// LoginRequest is the student login form
type LoginRequest struct {
	StudentID string `form:"student_id" json:"studentId" binding:"required"`
	Password  string `form:"password" json:"password" binding:"required"`
}

// AdminLoginRequest represents admin login credentials
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// StudentResponse is the public view of a student
type StudentResponse struct {
	StudentID      string `json:"studentId"`
	Name           string `json:"name"`
	Department     string `json:"department"`
	DepartmentName string `json:"departmentName,omitempty"`
	Year           int    `json:"year"`
	Semester       int    `json:"semester"`
}

// NewStudentResponse builds the public view from an identity
func NewStudentResponse(id models.Identity, departmentName string) StudentResponse {
	return StudentResponse{
		StudentID:      id.StudentID,
		Name:           id.Name,
		Department:     id.Department,
		DepartmentName: departmentName,
		Year:           id.Year,
		Semester:       id.Semester,
	}
}

// RegisterFormResponse lists the choices offered by the registration form
type RegisterFormResponse struct {
	Departments map[string]string `json:"departments"`
	Years       []int             `json:"years"`
	Semesters   []int             `json:"semesters"`
	CSRFToken   string            `json:"csrfToken"`
	Notice      *flash.Notice     `json:"notice,omitempty"`
}

// LoginFormResponse carries what the login page needs
type LoginFormResponse struct {
	CSRFToken string        `json:"csrfToken"`
	Notice    *flash.Notice `json:"notice,omitempty"`
}

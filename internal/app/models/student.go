package models

import "time"

// Cohort is the (department, year, semester) triple that decides which
// subjects a student may rate
type Cohort struct {
	Department string `json:"department" example:"CSE"`
	Year       int    `json:"year" example:"2"`
	Semester   int    `json:"semester" example:"2"`
}

// Matches reports whether both cohorts are the same
func (c Cohort) Matches(other Cohort) bool {
	return c.Department == other.Department && c.Year == other.Year && c.Semester == other.Semester
}

// Identity is the authenticated student for the lifetime of one request
type Identity struct {
	StudentID string `json:"studentId" example:"S001"`
	Name      string `json:"name" example:"Asha Rao"`
	Cohort
}

// Student defines the student model based on the 'students' table
type Student struct {
	StudentID    string    `json:"studentId" db:"student_id" example:"S001"`
	Name         string    `json:"name" db:"name" example:"Asha Rao"`
	Department   string    `json:"department" db:"department" example:"CSE"`
	Year         int       `json:"year" db:"year" example:"2"`
	Semester     int       `json:"semester" db:"semester" example:"2"`
	PasswordHash string    `json:"-" db:"password"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Cohort returns the student's cohort
func (s *Student) Cohort() Cohort {
	return Cohort{Department: s.Department, Year: s.Year, Semester: s.Semester}
}

// Identity builds the request identity for the student
func (s *Student) Identity() Identity {
	return Identity{StudentID: s.StudentID, Name: s.Name, Cohort: s.Cohort()}
}

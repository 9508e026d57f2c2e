package models

// Subject defines a course offered to one cohort, based on the 'subjects' table
type Subject struct {
	Code        string `json:"subjectCode" db:"subject_code" example:"CS453"`
	Name        string `json:"subjectName" db:"subject_name" example:"Python Programming"`
	Type        string `json:"subjectType" db:"subject_type" example:"Theory"`
	FacultyName string `json:"facultyName" db:"faculty_name" example:"Dr. White"`
	Department  string `json:"department" db:"department" example:"CSE"`
	Year        int    `json:"year" db:"year" example:"2"`
	Semester    int    `json:"semester" db:"semester" example:"2"`
}

// Cohort returns the cohort the subject is offered to
func (s *Subject) Cohort() Cohort {
	return Cohort{Department: s.Department, Year: s.Year, Semester: s.Semester}
}

// Parameter is one rating criterion, based on the 'parameters' table
type Parameter struct {
	ID       int64  `json:"id" db:"id" example:"1"`
	Category string `json:"category" db:"category" example:"Teaching"`
	Name     string `json:"parameterName" db:"parameter_name" example:"Clarity of explanation"`
}

// ParameterGroup is a category with its parameters, in display order
type ParameterGroup struct {
	Category   string      `json:"category"`
	Parameters []Parameter `json:"parameters"`
}

// GroupParameters groups parameters by category, keeping the input order.
// Callers pass parameters already sorted by category and name.
func GroupParameters(params []Parameter) []ParameterGroup {
	var groups []ParameterGroup
	for _, p := range params {
		if n := len(groups); n > 0 && groups[n-1].Category == p.Category {
			groups[n-1].Parameters = append(groups[n-1].Parameters, p)
			continue
		}
		groups = append(groups, ParameterGroup{Category: p.Category, Parameters: []Parameter{p}})
	}
	return groups
}

package validation

import (
	"regexp"
	"strconv"
	"strings"
)

// Validation rule patterns
var (
	// Student identifier: letters and digits, no spaces
	StudentIDPattern = `^[A-Za-z0-9]+$`

	// Display name: letters, spaces, hyphens and apostrophes
	NamePattern = `^[A-Za-z\s'-]+$`

	// Subject code as loaded by administrators
	SubjectCodePattern = `^[A-Za-z0-9-]+$`

	// Password min length
	PasswordMinLength = 6

	MinYear     = 1
	MaxYear     = 4
	MinSemester = 1
	MaxSemester = 2

	MinRating = 1
	MaxRating = 5

	// Suggestion max length in bytes
	SuggestionMaxLength = 2000
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	StudentID   *regexp.Regexp
	Name        *regexp.Regexp
	SubjectCode *regexp.Regexp
}{
	StudentID:   regexp.MustCompile(StudentIDPattern),
	Name:        regexp.MustCompile(NamePattern),
	SubjectCode: regexp.MustCompile(SubjectCodePattern),
}

// IsValidStudentID reports whether id is a non-empty alphanumeric identifier
func IsValidStudentID(id string) bool {
	return CompiledPatterns.StudentID.MatchString(id)
}

// IsValidName reports whether name only holds letters, spaces, hyphens and apostrophes
func IsValidName(name string) bool {
	return CompiledPatterns.Name.MatchString(name)
}

// IsValidSubjectCode reports whether code is a usable subject code
func IsValidSubjectCode(code string) bool {
	return CompiledPatterns.SubjectCode.MatchString(code)
}

// IsValidYear reports whether year is within the programme length
func IsValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// IsValidSemester reports whether semester is 1 or 2
func IsValidSemester(semester int) bool {
	return semester >= MinSemester && semester <= MaxSemester
}

// ParseRating converts a raw form value into a rating. ok is false for
// anything other than plain decimal digits naming an integer in
// [MinRating, MaxRating]; signs and leading zeros are rejected.
func ParseRating(raw string) (rating int, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	if n < MinRating || n > MaxRating {
		return 0, false
	}
	return n, true
}

// StringValidation validates a single string value
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

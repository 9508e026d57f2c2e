package validation

import "testing"

func TestParseRating(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"1", 1, true},
		{"5", 5, true},
		{" 3 ", 3, true},
		{"0", 0, false},
		{"6", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"2.5", 0, false},
		{"", 0, false},
		{"+5", 0, false},
		{"05", 0, false},
		{"5 ", 5, true},
		{"1e0", 0, false},
		{"55", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseRating(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseRating(%q) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStudentIDAndName(t *testing.T) {
	if !IsValidStudentID("21CS045") {
		t.Error("alphanumeric id rejected")
	}
	for _, bad := range []string{"", "21 CS", "21-CS", "a_b"} {
		if IsValidStudentID(bad) {
			t.Errorf("IsValidStudentID(%q) = true", bad)
		}
	}

	if !IsValidName("Mary-Jane O'Neil") {
		t.Error("name with hyphen and apostrophe rejected")
	}
	if IsValidName("R2D2") {
		t.Error("name with digits accepted")
	}
}

func TestCohortBounds(t *testing.T) {
	for year := 0; year <= 5; year++ {
		want := year >= 1 && year <= 4
		if IsValidYear(year) != want {
			t.Errorf("IsValidYear(%d) != %v", year, want)
		}
	}
	for sem := 0; sem <= 3; sem++ {
		want := sem == 1 || sem == 2
		if IsValidSemester(sem) != want {
			t.Errorf("IsValidSemester(%d) != %v", sem, want)
		}
	}
}

func TestStringValidation(t *testing.T) {
	if NewStringValidation("").Validate() {
		t.Error("required empty value accepted")
	}
	if !NewStringValidation("").WithRequired(false).Validate() {
		t.Error("optional empty value rejected")
	}
	if NewStringValidation("abc").WithMinLength(6).Validate() {
		t.Error("short value accepted")
	}
	if !NewStringValidation("CS453").WithPattern(CompiledPatterns.SubjectCode).Validate() {
		t.Error("subject code rejected")
	}
}

package dto

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestHandleValidationErrorListsNestedFields(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")

	req := BulkLoadSubjectsRequest{Subjects: []SubjectRequest{
		{Code: "CS701", Name: "Machine Learning", FacultyName: "Dr. Anderson", Department: "CSE", Year: 3, Semester: 2},
		{Code: "", Name: "Compiler Design", FacultyName: "Dr. Taylor", Department: "CSE", Year: 5, Semester: 2},
	}}

	detail := HandleValidationError(v.Struct(req))
	if detail.Code != ErrorCodeValidationFailed {
		t.Fatalf("code = %s", detail.Code)
	}
	fields, ok := detail.Details.(map[string]string)
	if !ok {
		t.Fatalf("details = %#v", detail.Details)
	}
	if fields["Subjects[1].Code"] != "is required" {
		t.Errorf("code message = %q", fields["Subjects[1].Code"])
	}
	if fields["Subjects[1].Year"] != "must be at most 4" {
		t.Errorf("year message = %q", fields["Subjects[1].Year"])
	}
	if _, bad := fields["Subjects[0].Code"]; bad {
		t.Error("valid row reported")
	}
}

func TestHandleValidationErrorFallback(t *testing.T) {
	detail := HandleValidationError(errors.New("strconv.ParseInt: parsing \"abc\": invalid syntax"))
	if detail.Code != ErrorCodeValidationFailed || detail.Message != "Invalid request" {
		t.Fatalf("detail = %+v", detail)
	}
}

func TestSubjectRequestDefaultsType(t *testing.T) {
	m := SubjectRequest{Code: "CS401", Name: "Data Structures"}.ToModel()
	if m.Type != "Theory" {
		t.Errorf("type = %q", m.Type)
	}
}

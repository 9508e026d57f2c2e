package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/TRK06/feedback-system/internal/app/models/dto"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// rowValidator checks the same binding tags gin checks on the admin API
var rowValidator = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// readSubjectsFile parses a YAML document of the form
//
//	subjects:
//	  - subject_code: CS453
//	    subject_name: Python Programming
//	    ...
func readSubjectsFile(path string) ([]dto.SubjectRequest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subjects file: %w", err)
	}

	var doc dto.BulkLoadSubjectsRequest
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse subjects file: %w", err)
	}

	if err := rowValidator.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", strings.TrimPrefix(fe.Namespace(), "BulkLoadSubjectsRequest."), fe.Tag()))
			}
			return nil, fmt.Errorf("invalid subjects file:\n  %s", strings.Join(msgs, "\n  "))
		}
		return nil, err
	}
	return doc.Subjects, nil
}

// describe expands a validation error into one line per field
func describe(err error) error {
	fields := apperrors.FieldErrors(err)
	if len(fields) == 0 {
		return err
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, fields[k]))
	}
	return fmt.Errorf("%s:\n  %s", apperrors.UserMessage(err, "rejected"), strings.Join(lines, "\n  "))
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
)

func TestSuggestionSubmitAndList(t *testing.T) {
	store := &fakeSuggestions{}
	svc := NewSuggestionService(store, nopLogger)
	ctx := context.Background()
	student := identity("S001", cse22)

	sg, err := svc.Submit(ctx, student, "  Please add more electives ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sg.Message != "Please add more electives" || sg.SubjectCode != nil {
		t.Errorf("suggestion = %+v", sg)
	}

	list, err := svc.List(ctx, student)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %v, %v", list, err)
	}
}

func TestSuggestionRejectsEmptyAndOversized(t *testing.T) {
	store := &fakeSuggestions{}
	svc := NewSuggestionService(store, nopLogger)

	_, err := svc.Submit(context.Background(), identity("S001", cse22), "   ")
	if !errors.Is(err, apperrors.ErrValidationFailed) || apperrors.UserMessage(err, "") != MsgSuggestionEmpty {
		t.Errorf("empty: err = %v", err)
	}

	_, err = svc.Submit(context.Background(), identity("S001", cse22), strings.Repeat("a", 2001))
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("oversized: err = %v", err)
	}
	if len(store.items) != 0 {
		t.Error("invalid suggestion stored")
	}
}

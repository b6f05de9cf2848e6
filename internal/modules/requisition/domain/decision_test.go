package domain_test

import (
	"errors"
	"testing"

	"factoryerp/internal/modules/requisition/domain"
	apperrors "factoryerp/internal/platform/errors"
)

func TestNewDecision(t *testing.T) {
	t.Parallel()
	d, err := domain.NewDecision(" 42 ", "Approve", "ok by me")
	if err != nil {
		t.Fatalf("new decision: %v", err)
	}
	if d.Endpoint() != "/api/requisition/42/approve" || d.Remarks != "ok by me" {
		t.Fatalf("unexpected decision %+v", d)
	}
	if domain.SuccessMessage(d.Action) != "Requisition approved successfully!" {
		t.Fatalf("unexpected message %q", domain.SuccessMessage(d.Action))
	}
	if domain.SuccessMessage(domain.ActionReject) != "Requisition rejected successfully!" {
		t.Fatalf("unexpected reject message")
	}
	if domain.PromptLabel(domain.ActionReject) != "Enter remarks for reject:" {
		t.Fatalf("unexpected prompt label")
	}
}

func TestNewDecisionRejectsBadInput(t *testing.T) {
	t.Parallel()
	cases := [][2]string{
		{"0", "approve"},
		{"-3", "approve"},
		{"abc", "approve"},
		{"7", "cancel"},
		{"7", ""},
	}
	for _, c := range cases {
		if _, err := domain.NewDecision(c[0], c[1], ""); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%v: expected invalid input, got %v", c, err)
		}
	}
}

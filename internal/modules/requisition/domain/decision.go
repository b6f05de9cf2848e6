package domain

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "factoryerp/internal/platform/errors"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// MsgTransport is shown when the decision never got an answer.
const MsgTransport = "An error occurred."

func ParseAction(raw string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(raw))) {
	case ActionApprove:
		return ActionApprove, nil
	case ActionReject:
		return ActionReject, nil
	}
	return "", fmt.Errorf("%w: action must be approve or reject, got %q", apperrors.ErrInvalidInput, raw)
}

// PastTense is used in the confirmation message.
func (a Action) PastTense() string {
	if a == ActionApprove {
		return "approved"
	}
	return "rejected"
}

// Decision is an approve or reject verdict on one pending requisition.
type Decision struct {
	RequisitionID int64
	Action        Action
	Remarks       string
}

func NewDecision(rawID, rawAction, remarks string) (Decision, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil || id <= 0 {
		return Decision{}, fmt.Errorf("%w: requisition id must be a positive integer, got %q", apperrors.ErrInvalidInput, rawID)
	}
	action, err := ParseAction(rawAction)
	if err != nil {
		return Decision{}, err
	}
	return Decision{RequisitionID: id, Action: action, Remarks: remarks}, nil
}

func (d Decision) Endpoint() string {
	return fmt.Sprintf("/api/requisition/%d/%s", d.RequisitionID, d.Action)
}

func PromptLabel(a Action) string {
	return fmt.Sprintf("Enter remarks for %s:", a)
}

func SuccessMessage(a Action) string {
	return fmt.Sprintf("Requisition %s successfully!", a.PastTense())
}

// Reply is the backend's answer to a decision.
type Reply struct {
	OK     bool
	Reason string
}

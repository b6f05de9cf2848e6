package out

import (
	"context"

	"factoryerp/internal/modules/requisition/domain"
)

// RemarksPrompter asks the user for free text. ok is false when the user
// dismissed the prompt.
type RemarksPrompter interface {
	Prompt(ctx context.Context, label string) (text string, ok bool, err error)
}

type Decider interface {
	Decide(ctx context.Context, token string, decision domain.Decision) (domain.Reply, error)
}

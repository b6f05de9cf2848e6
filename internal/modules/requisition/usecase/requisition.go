package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"factoryerp/internal/modules/requisition/domain"
	"factoryerp/internal/modules/requisition/dto"
	reqin "factoryerp/internal/modules/requisition/port/in"
	reqout "factoryerp/internal/modules/requisition/port/out"
	apperrors "factoryerp/internal/platform/errors"
)

type Interactor struct {
	prompter reqout.RemarksPrompter
	decider  reqout.Decider
	logger   *zap.Logger
}

func NewInteractor(prompter reqout.RemarksPrompter, decider reqout.Decider, logger *zap.Logger) reqin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{prompter: prompter, decider: decider, logger: logger}
}

func (i *Interactor) Decide(ctx context.Context, input dto.DecideInput) (dto.DecideOutput, error) {
	decision, err := domain.NewDecision(input.RequisitionID, input.Action, "")
	if err != nil {
		return dto.DecideOutput{}, err
	}
	out := dto.DecideOutput{RequisitionID: decision.RequisitionID, Action: string(decision.Action)}

	if input.Remarks != nil {
		decision.Remarks = *input.Remarks
	} else {
		if i.prompter == nil {
			return out, fmt.Errorf("%w: remarks are required", apperrors.ErrInvalidInput)
		}
		text, ok, err := i.prompter.Prompt(ctx, domain.PromptLabel(decision.Action))
		if err != nil {
			return out, fmt.Errorf("read remarks: %w", err)
		}
		if !ok {
			return out, apperrors.ErrCancelled
		}
		decision.Remarks = text
	}

	reply, err := i.decider.Decide(ctx, input.Token, decision)
	if err != nil {
		i.logger.Error("requisition decision failed",
			zap.Int64("requisition_id", decision.RequisitionID),
			zap.String("action", string(decision.Action)),
			zap.Error(err),
		)
		out.Level, out.Message = "error", domain.MsgTransport
		return out, err
	}
	if !reply.OK {
		out.Level, out.Message = "error", "Error: "+reply.Reason
		return out, fmt.Errorf("%w: %s", apperrors.ErrBackend, reply.Reason)
	}
	out.Level, out.Message = "info", domain.SuccessMessage(decision.Action)
	out.Reload = true
	return out, nil
}

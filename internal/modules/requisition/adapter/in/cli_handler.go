package in

import (
	"context"

	"factoryerp/internal/modules/requisition/dto"
	reqin "factoryerp/internal/modules/requisition/port/in"
)

type CLIHandler struct {
	usecase reqin.Usecase
}

func NewCLIHandler(usecase reqin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Decide prompts for remarks when remarks is nil.
func (h CLIHandler) Decide(ctx context.Context, id, action, token string, remarks *string) (dto.DecideOutput, error) {
	return h.usecase.Decide(ctx, dto.DecideInput{
		RequisitionID: id,
		Action:        action,
		Token:         token,
		Remarks:       remarks,
	})
}

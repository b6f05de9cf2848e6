package in

import (
	"context"

	"factoryerp/internal/modules/auth/dto"
	authin "factoryerp/internal/modules/auth/port/in"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Current(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Store(ctx context.Context, token, userJSON, role string) error {
	return h.usecase.Store(ctx, dto.StoreInput{Token: token, UserJSON: userJSON, Role: role})
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}

package in

import (
	"context"

	"factoryerp/internal/modules/auth/dto"
)

type Usecase interface {
	Current(ctx context.Context) (dto.SessionOutput, error)
	Store(ctx context.Context, input dto.StoreInput) error
	Clear(ctx context.Context) error
}

package in

import (
	"context"

	"factoryerp/internal/modules/requisition/dto"
)

type Usecase interface {
	Decide(ctx context.Context, input dto.DecideInput) (dto.DecideOutput, error)
}

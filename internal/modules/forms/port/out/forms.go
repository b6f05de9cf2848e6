package out

import (
	"context"

	"factoryerp/internal/modules/forms/domain"
)

type Gateway interface {
	Send(ctx context.Context, endpoint, token string, record domain.Record) (domain.Reply, error)
}

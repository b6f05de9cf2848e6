package out

import (
	"context"

	"factoryerp/internal/modules/forms/domain"
	formsout "factoryerp/internal/modules/forms/port/out"
	"factoryerp/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) formsout.Gateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Send(ctx context.Context, endpoint, token string, record domain.Record) (domain.Reply, error) {
	env, err := g.client.PostJSON(ctx, endpoint, token, record)
	if err != nil {
		return domain.Reply{}, err
	}
	if env.OK() {
		return domain.Reply{OK: true}, nil
	}
	return domain.Reply{Reason: env.Reason()}, nil
}

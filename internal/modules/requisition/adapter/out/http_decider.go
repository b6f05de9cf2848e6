package out

import (
	"context"

	"factoryerp/internal/modules/requisition/domain"
	reqout "factoryerp/internal/modules/requisition/port/out"
	"factoryerp/internal/platform/httpapi"
)

type HTTPDecider struct {
	client *httpapi.Client
}

func NewHTTPDecider(client *httpapi.Client) reqout.Decider {
	return &HTTPDecider{client: client}
}

func (d *HTTPDecider) Decide(ctx context.Context, token string, decision domain.Decision) (domain.Reply, error) {
	env, err := d.client.PostJSON(ctx, decision.Endpoint(), token, map[string]string{"remarks": decision.Remarks})
	if err != nil {
		return domain.Reply{}, err
	}
	if env.OK() {
		return domain.Reply{OK: true}, nil
	}
	return domain.Reply{Reason: env.Reason()}, nil
}

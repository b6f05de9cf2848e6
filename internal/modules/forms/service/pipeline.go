package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"factoryerp/internal/modules/forms/domain"
	formsout "factoryerp/internal/modules/forms/port/out"
	apperrors "factoryerp/internal/platform/errors"
)

// Pipeline runs submissions for a single form. At most one submission is in
// flight; overlapping calls return ErrSubmissionInFlight untouched.
type Pipeline struct {
	form    *domain.Form
	gateway formsout.Gateway
	logger  *zap.Logger
	guard   *semaphore.Weighted

	mu    sync.Mutex
	state domain.State
}

func NewPipeline(form *domain.Form, gateway formsout.Gateway, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		form:    form,
		gateway: gateway,
		logger:  logger.With(zap.String("form", string(form.Kind()))),
		guard:   semaphore.NewWeighted(1),
		state:   domain.StateIdle,
	}
}

func (p *Pipeline) Form() *domain.Form {
	return p.form
}

func (p *Pipeline) State() domain.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) Pending() bool {
	switch p.State() {
	case domain.StateValidating, domain.StateSubmitting:
		return true
	}
	return false
}

func (p *Pipeline) Submit(ctx context.Context, token string) (domain.Outcome, error) {
	if !p.guard.TryAcquire(1) {
		p.logger.Debug("submit ignored while pending")
		return domain.Outcome{State: p.State()}, apperrors.ErrSubmissionInFlight
	}
	defer p.guard.Release(1)

	schema := p.form.Schema()
	p.setState(domain.StateValidating)
	record := p.form.Record()
	if err := domain.Validate(schema, record); err != nil {
		return p.fail(domain.Failure(err.Error())), err
	}

	p.setState(domain.StateSubmitting)
	reply, err := p.gateway.Send(ctx, schema.Endpoint, token, record)
	if err != nil {
		p.logger.Error("submission failed",
			zap.String("endpoint", schema.Endpoint),
			zap.Bool("transport", errors.Is(err, apperrors.ErrTransport)),
			zap.Error(err),
		)
		return p.fail(domain.Failure(schema.TransportMessage)), err
	}
	if !reply.OK {
		p.logger.Info("submission rejected", zap.String("endpoint", schema.Endpoint), zap.String("reason", reply.Reason))
		return p.fail(domain.BackendFailure(reply.Reason)), fmt.Errorf("%w: %s", apperrors.ErrBackend, reply.Reason)
	}

	p.form.Reset()
	p.setState(domain.StateSucceeded)
	return domain.Outcome{State: domain.StateSucceeded, Notification: domain.Success(schema.SuccessMessage)}, nil
}

func (p *Pipeline) fail(n domain.Notification) domain.Outcome {
	p.setState(domain.StateFailed)
	return domain.Outcome{State: domain.StateFailed, Notification: n}
}

func (p *Pipeline) setState(s domain.State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

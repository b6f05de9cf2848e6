package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"factoryerp/internal/modules/forms/domain"
	"factoryerp/internal/modules/forms/service"
	apperrors "factoryerp/internal/platform/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeGateway struct {
	mu      sync.Mutex
	calls   []domain.Record
	tokens  []string
	reply   domain.Reply
	err     error
	entered chan struct{}
	release chan struct{}
}

func (g *fakeGateway) Send(ctx context.Context, _ string, token string, rec domain.Record) (domain.Reply, error) {
	g.mu.Lock()
	g.calls = append(g.calls, rec)
	g.tokens = append(g.tokens, token)
	g.mu.Unlock()
	if g.entered != nil {
		g.entered <- struct{}{}
	}
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return domain.Reply{}, ctx.Err()
		}
	}
	return g.reply, g.err
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func filledRequisition(t *testing.T) *domain.Form {
	t.Helper()
	f, err := domain.NewForm(domain.KindRequisition)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	_ = f.Set(domain.FieldItemID, "9")
	_ = f.Set(domain.FieldQuantity, "40")
	return f
}

func TestSubmitSuccessResetsForm(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{reply: domain.Reply{OK: true}}
	form := filledRequisition(t)
	p := service.NewPipeline(form, gw, nil)

	out, err := p.Submit(context.Background(), "tok")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.State != domain.StateSucceeded || out.Notification != domain.Success("Requisition submitted successfully!") {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if form.Value(domain.FieldItemID) != "" {
		t.Fatalf("expected form reset after success")
	}
	if gw.tokens[0] != "tok" || gw.calls[0]["quantity"] != "40" {
		t.Fatalf("unexpected call: %v %v", gw.tokens, gw.calls)
	}
}

func TestSubmitValidationNeverCallsGateway(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{reply: domain.Reply{OK: true}}
	form, _ := domain.NewForm(domain.KindAttendance)
	_ = form.Set(domain.FieldDate, "2026-03-01")
	p := service.NewPipeline(form, gw, nil)

	out, err := p.Submit(context.Background(), "tok")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if out.Notification.Message != "Please select at least one worker." || out.State != domain.StateFailed {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if gw.callCount() != 0 {
		t.Fatalf("gateway must not be called")
	}
}

func TestSubmitBackendFailureKeepsForm(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{reply: domain.Reply{Reason: "Item not found"}}
	form := filledRequisition(t)
	p := service.NewPipeline(form, gw, nil)

	out, err := p.Submit(context.Background(), "tok")
	if !errors.Is(err, apperrors.ErrBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if out.Notification != domain.Failure("Error: Item not found") {
		t.Fatalf("unexpected notification: %+v", out.Notification)
	}
	if form.Value(domain.FieldItemID) != "9" {
		t.Fatalf("form must stay populated after failure")
	}
	if p.State() != domain.StateFailed || p.Pending() {
		t.Fatalf("unexpected state %s", p.State())
	}
}

func TestSubmitTransportFailureIsLogged(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	gw := &fakeGateway{err: fmt.Errorf("%w: connection refused", apperrors.ErrTransport)}
	form, _ := domain.NewForm(domain.KindDowntime)
	_ = form.Set(domain.FieldMachineName, "Lathe 2")
	_ = form.Set(domain.FieldStartTime, "2026-03-01T08:00")
	_ = form.Set(domain.FieldEndTime, "2026-03-01T09:30")
	p := service.NewPipeline(form, gw, zap.New(core))

	out, err := p.Submit(context.Background(), "")
	if !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if out.Notification.Message != "An error occurred while recording downtime." {
		t.Fatalf("unexpected message %q", out.Notification.Message)
	}
	entries := logs.FilterMessage("submission failed").All()
	if len(entries) != 1 || entries[0].ContextMap()["endpoint"] != "/api/downtime" {
		t.Fatalf("expected one logged failure, got %+v", entries)
	}
	if form.Value(domain.FieldMachineName) != "Lathe 2" {
		t.Fatalf("form must stay populated after failure")
	}
}

func TestSubmitWhilePendingIsIgnored(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{
		reply:   domain.Reply{OK: true},
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	p := service.NewPipeline(filledRequisition(t), gw, nil)

	done := make(chan error, 1)
	go func() {
		_, err := p.Submit(context.Background(), "tok")
		done <- err
	}()
	<-gw.entered
	if !p.Pending() {
		t.Fatalf("expected pending while request is open")
	}

	_, err := p.Submit(context.Background(), "tok")
	if !errors.Is(err, apperrors.ErrSubmissionInFlight) {
		t.Fatalf("expected in-flight error, got %v", err)
	}

	close(gw.release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if gw.callCount() != 1 {
		t.Fatalf("expected exactly one request, got %d", gw.callCount())
	}
	if p.Pending() {
		t.Fatalf("guard should be released")
	}
}

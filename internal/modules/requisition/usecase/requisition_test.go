package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	reqout "factoryerp/internal/modules/requisition/adapter/out"
	"factoryerp/internal/modules/requisition/dto"
	"factoryerp/internal/modules/requisition/usecase"
	apperrors "factoryerp/internal/platform/errors"
	"factoryerp/internal/platform/httpapi"
	"factoryerp/internal/platform/testbackend"
)

type scriptedPrompter struct {
	text   string
	ok     bool
	labels []string
}

func (p *scriptedPrompter) Prompt(_ context.Context, label string) (string, bool, error) {
	p.labels = append(p.labels, label)
	return p.text, p.ok, nil
}

func newDecider(t *testing.T, baseURL string) *httpapi.Client {
	t.Helper()
	return httpapi.New(baseURL, 5*time.Second, nil, nil)
}

func TestApprovePromptsAndRequestsReload(t *testing.T) {
	t.Parallel()
	backend := testbackend.New(t)
	prompter := &scriptedPrompter{text: "urgent", ok: true}
	uc := usecase.NewInteractor(prompter, reqout.NewHTTPDecider(newDecider(t, backend.URL)), nil)

	out, err := uc.Decide(context.Background(), dto.DecideInput{RequisitionID: "12", Action: "approve", Token: "adm"})
	require.NoError(t, err)
	require.True(t, out.Reload)
	require.Equal(t, "Requisition approved successfully!", out.Message)
	require.Equal(t, []string{"Enter remarks for approve:"}, prompter.labels)

	reqs := backend.Requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "/api/requisition/12/approve", reqs[0].Path)
	require.Equal(t, map[string]string{"id": "12", "action": "approve"}, reqs[0].Params)
	require.Equal(t, "Bearer adm", reqs[0].Auth)
	require.Equal(t, map[string]any{"remarks": "urgent"}, reqs[0].Body)
}

func TestExplicitRemarksSkipPrompt(t *testing.T) {
	t.Parallel()
	backend := testbackend.New(t)
	prompter := &scriptedPrompter{ok: true}
	uc := usecase.NewInteractor(prompter, reqout.NewHTTPDecider(newDecider(t, backend.URL)), nil)

	remarks := ""
	out, err := uc.Decide(context.Background(), dto.DecideInput{RequisitionID: "3", Action: "reject", Token: "adm", Remarks: &remarks})
	require.NoError(t, err)
	require.Equal(t, "Requisition rejected successfully!", out.Message)
	require.Empty(t, prompter.labels)
	require.Equal(t, map[string]any{"remarks": ""}, backend.Requests()[0].Body)
}

func TestCancelledPromptSendsNothing(t *testing.T) {
	t.Parallel()
	backend := testbackend.New(t)
	uc := usecase.NewInteractor(&scriptedPrompter{ok: false}, reqout.NewHTTPDecider(newDecider(t, backend.URL)), nil)

	out, err := uc.Decide(context.Background(), dto.DecideInput{RequisitionID: "3", Action: "approve"})
	require.ErrorIs(t, err, apperrors.ErrCancelled)
	require.False(t, out.Reload)
	require.Empty(t, backend.Requests())
}

func TestInvalidActionSendsNothing(t *testing.T) {
	t.Parallel()
	backend := testbackend.New(t)
	prompter := &scriptedPrompter{ok: true}
	uc := usecase.NewInteractor(prompter, reqout.NewHTTPDecider(newDecider(t, backend.URL)), nil)

	_, err := uc.Decide(context.Background(), dto.DecideInput{RequisitionID: "3", Action: "delete"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	require.Empty(t, prompter.labels)
	require.Empty(t, backend.Requests())
}

func TestBackendRefusalKeepsView(t *testing.T) {
	t.Parallel()
	backend := testbackend.New(t)
	backend.Reply("POST /api/requisition/{id}/{action}", http.StatusForbidden, `{"success": false, "error": "Admin access required"}`)
	uc := usecase.NewInteractor(&scriptedPrompter{ok: true}, reqout.NewHTTPDecider(newDecider(t, backend.URL)), nil)

	out, err := uc.Decide(context.Background(), dto.DecideInput{RequisitionID: "5", Action: "approve", Token: "staff"})
	require.ErrorIs(t, err, apperrors.ErrBackend)
	require.False(t, out.Reload)
	require.Equal(t, "Error: Admin access required", out.Message)
}

func TestTransportFailureIsGenericAndLogged(t *testing.T) {
	t.Parallel()
	backend := testbackend.New(t)
	backend.Reply("POST /api/requisition/{id}/{action}", http.StatusBadGateway, `bad gateway`)
	core, logs := observer.New(zapcore.DebugLevel)
	uc := usecase.NewInteractor(&scriptedPrompter{ok: true}, reqout.NewHTTPDecider(newDecider(t, backend.URL)), zap.New(core))

	out, err := uc.Decide(context.Background(), dto.DecideInput{RequisitionID: "5", Action: "reject", Token: "adm"})
	require.ErrorIs(t, err, apperrors.ErrTransport)
	require.Equal(t, "An error occurred.", out.Message)
	require.Equal(t, 1, logs.FilterMessage("requisition decision failed").Len())
}

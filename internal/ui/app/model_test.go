package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	authdto "factoryerp/internal/modules/auth/dto"
	formsdomain "factoryerp/internal/modules/forms/domain"
	formsdto "factoryerp/internal/modules/forms/dto"
	formsusecase "factoryerp/internal/modules/forms/usecase"
	reportdto "factoryerp/internal/modules/reporting/dto"
	reqdto "factoryerp/internal/modules/requisition/dto"
	formview "factoryerp/internal/ui/views/form"
)

type nopGateway struct{}

func (nopGateway) Send(context.Context, string, string, formsdomain.Record) (formsdomain.Reply, error) {
	return formsdomain.Reply{OK: true}, nil
}

type fixedSession struct{ out authdto.SessionOutput }

func (s fixedSession) Current(context.Context) (authdto.SessionOutput, error) { return s.out, nil }

type emptyReports struct{}

func (emptyReports) ProductionChart(context.Context) (reportdto.ChartOutput, error) {
	return reportdto.ChartOutput{}, nil
}
func (emptyReports) WorkerHistory(context.Context, string) (reportdto.HistoryOutput, error) {
	return reportdto.HistoryOutput{}, nil
}
func (emptyReports) Attendance(context.Context) ([]reportdto.AttendanceOutput, error) {
	return nil, nil
}
func (emptyReports) Downtime(context.Context) ([]reportdto.DowntimeOutput, error) { return nil, nil }
func (emptyReports) MaterialFlow(context.Context) ([]reportdto.MaterialFlowOutput, error) {
	return nil, nil
}

type okDecisions struct{ calls int }

func (d *okDecisions) Decide(context.Context, reqdto.DecideInput) (reqdto.DecideOutput, error) {
	d.calls++
	return reqdto.DecideOutput{Level: "info", Message: "Requisition approved successfully!", Reload: true}, nil
}

func newTestModel() Model {
	return NewModel(
		formsusecase.NewInteractor(nopGateway{}, nil),
		fixedSession{out: authdto.SessionOutput{Token: "t", Role: "admin", Email: "a@factory.com"}},
		emptyReports{},
		&okDecisions{},
	)
}

func TestTabCycleAndTextCapture(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	if !m.capturingText() {
		t.Fatalf("form tabs capture text")
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)
	if !strings.Contains(m.formViews[tabProduction].View(), "q") {
		t.Fatalf("q should be typed into the form, not quit")
	}
	for i := 0; i < int(tabDashboard); i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(Model)
	}
	if m.activeTab != tabDashboard || m.capturingText() {
		t.Fatalf("dashboard should not capture text, tab=%d", m.activeTab)
	}
}

func TestSubmittedMsgReachesItsFormFromAnyTab(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m.activeTab = tabDashboard
	next, _ := m.Update(formview.SubmittedMsg{Kind: "downtime", Out: formsOut("Downtime recorded successfully!")})
	m = next.(Model)
	if m.status != "Downtime recorded successfully!" {
		t.Fatalf("status = %q", m.status)
	}
	if !strings.Contains(m.formViews[tabDowntime].View(), "Downtime recorded successfully!") {
		t.Fatalf("downtime view should show the notice")
	}
}

func TestPaletteSwitchesForms(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	next, _ := m.executePalette("form:requisition")
	m = next.(Model)
	if m.activeTab != tabRequisition {
		t.Fatalf("active tab = %d", m.activeTab)
	}
	next, _ = m.executePalette("nonsense")
	if next.(Model).status != "unknown command: nonsense" {
		t.Fatalf("unexpected status %q", next.(Model).status)
	}
}

func TestReloadRebuildsViews(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	before := m.formViews[tabProduction]
	next, cmd := m.reload()
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("reload should re-run init")
	}
	if m.formViews[tabProduction].Kind() != before.Kind() {
		t.Fatalf("production view lost after reload")
	}
}

func formsOut(msg string) formsdto.SubmitOutput {
	return formsdto.SubmitOutput{Kind: "downtime", State: "succeeded", Level: "info", Message: msg}
}

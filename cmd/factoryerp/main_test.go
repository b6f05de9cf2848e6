package main

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"factoryerp/internal/platform/testbackend"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCalcOvertime(t *testing.T) {
	out, _, err := run(t, "", "calc", "overtime", "--actual", "120", "--target", "100")
	require.NoError(t, err)
	require.Equal(t, "1.60\n", out)
}

func TestProductionSubmitUsesStoredToken(t *testing.T) {
	backend := testbackend.New(t)
	home := t.TempDir()
	base := []string{"--home", home, "--base-url", backend.URL}

	_, _, err := run(t, "", append(base, "auth", "set", "--token", "tok", "--user", `{"id":7,"email":"a@b.c"}`)...)
	require.NoError(t, err)

	out, _, err := run(t, "", append(base, "production", "submit",
		"--worker-id", "7", "--item-id", "3", "--date", "2026-03-01",
		"--target", "100", "--actual", "120",
		"--input-material", "10", "--output-material", "9")...)
	require.NoError(t, err)
	require.Equal(t, "Production data saved successfully!\n", out)

	reqs := backend.Requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "Bearer tok", reqs[0].Auth)
	require.Equal(t, "1.60", reqs[0].Body["overtime_hours"])
	require.Equal(t, "1.00", reqs[0].Body["wastage"])
}

func TestAttendanceSubmitWithoutWorkersSendsNothing(t *testing.T) {
	backend := testbackend.New(t)
	_, _, err := run(t, "", "--home", t.TempDir(), "--base-url", backend.URL,
		"attendance", "submit", "--date", "2026-03-01")
	require.EqualError(t, err, "Please select at least one worker.")
	require.Empty(t, backend.Requests())
}

func TestRequisitionRejectPromptsForRemarks(t *testing.T) {
	backend := testbackend.New(t)
	out, _, err := run(t, "damaged stock\n", "--home", t.TempDir(), "--base-url", backend.URL,
		"requisition", "reject", "12")
	require.NoError(t, err)
	require.Contains(t, out, "Enter remarks for reject:")
	require.Contains(t, out, "Requisition rejected successfully!")

	reqs := backend.Requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "/api/requisition/12/reject", reqs[0].Path)
	require.Equal(t, "damaged stock", reqs[0].Body["remarks"])
}

func TestRequisitionBackendFailureShownOnce(t *testing.T) {
	backend := testbackend.New(t)
	backend.Reply("POST /api/requisition/{id}/{action}", http.StatusOK, `{"success": false, "error": "already processed"}`)

	_, stderr, err := run(t, "", "--home", t.TempDir(), "--base-url", backend.URL,
		"requisition", "approve", "3", "--remarks", "")
	require.Error(t, err)
	var shown noticeShown
	require.ErrorAs(t, err, &shown)
	require.Equal(t, "Error: already processed\n", stderr)
	require.Equal(t, "", backend.Requests()[0].Body["remarks"])
}

func TestReportExportWritesWorkbook(t *testing.T) {
	backend := testbackend.New(t)
	backend.Reply("GET /api/reports/production", http.StatusOK,
		`{"success": true, "labels": ["Bolt"], "targets": [10], "actuals": [8]}`)
	dest := filepath.Join(t.TempDir(), "report.xlsx")

	out, _, err := run(t, "", "--home", t.TempDir(), "--base-url", backend.URL,
		"report", "export", "--out", dest)
	require.NoError(t, err)
	require.Equal(t, "exported "+dest+" items=1 history=0\n", out)
	require.FileExists(t, dest)
}

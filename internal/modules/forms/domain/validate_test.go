package domain_test

import (
	"errors"
	"testing"

	"factoryerp/internal/modules/forms/domain"
)

func productionRecord(overrides map[string]string) domain.Record {
	rec := domain.Record{
		"worker_id":       "4",
		"item_id":         "2",
		"date":            "2026-03-01",
		"target":          "100",
		"actual":          "120",
		"input_material":  "500",
		"output_material": "480",
		"overtime_hours":  "1.60",
		"wastage":         "20.00",
	}
	for k, v := range overrides {
		rec[k] = v
	}
	return rec
}

func TestValidateProductionMaterialRule(t *testing.T) {
	t.Parallel()
	schema, _ := domain.SchemaFor(domain.KindProduction)

	cases := []struct {
		name    string
		in, out string
		blocked bool
	}{
		{name: "output below input", in: "500", out: "480", blocked: false},
		{name: "equal", in: "500", out: "500", blocked: false},
		{name: "output above input", in: "500", out: "500.01", blocked: true},
		{name: "prefix parse", in: "10kg", out: "12kg", blocked: true},
		{name: "unparsable output", in: "500", out: "lots", blocked: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := domain.Validate(schema, productionRecord(map[string]string{
				"input_material":  tc.in,
				"output_material": tc.out,
			}))
			var verr *domain.ValidationError
			isMaterial := errors.As(err, &verr) && verr.Message == domain.MsgOutputExceedsInput
			if isMaterial != tc.blocked {
				t.Fatalf("blocked=%v want %v (err=%v)", isMaterial, tc.blocked, err)
			}
		})
	}
}

func TestValidateRequiredFields(t *testing.T) {
	t.Parallel()
	schema, _ := domain.SchemaFor(domain.KindProduction)
	err := domain.Validate(schema, productionRecord(map[string]string{"date": "  "}))
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "date" || verr.Message != "Field 'date' is required" {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := domain.Validate(schema, productionRecord(map[string]string{"target": ""})); err != nil {
		t.Fatalf("target is optional: %v", err)
	}

	req, _ := domain.SchemaFor(domain.KindRequisition)
	if err := domain.Validate(req, domain.Record{"item_id": "1", "quantity": ""}); err == nil {
		t.Fatalf("expected quantity to be required")
	}
}

func TestValidateAttendanceNeedsWorkers(t *testing.T) {
	t.Parallel()
	schema, _ := domain.SchemaFor(domain.KindAttendance)
	err := domain.Validate(schema, domain.Record{"workers": []string{}, "date": "2026-03-01"})
	if err == nil || err.Error() != domain.MsgNoWorkers {
		t.Fatalf("expected %q, got %v", domain.MsgNoWorkers, err)
	}
	if err := domain.Validate(schema, domain.Record{"workers": []string{"1"}, "date": "2026-03-01"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

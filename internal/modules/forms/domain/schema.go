package domain

import (
	"fmt"

	apperrors "factoryerp/internal/platform/errors"
)

type Kind string

const (
	KindProduction  Kind = "production"
	KindAttendance  Kind = "attendance"
	KindDowntime    Kind = "downtime"
	KindRequisition Kind = "requisition"
)

func Kinds() []Kind {
	return []Kind{KindProduction, KindAttendance, KindDowntime, KindRequisition}
}

func ParseKind(raw string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == raw {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown form %q", apperrors.ErrInvalidInput, raw)
}

// Field names shared by the schemas, the CLI flags and the TUI.
const (
	FieldWorkerID       = "worker_id"
	FieldItemID         = "item_id"
	FieldDate           = "date"
	FieldTarget         = "target"
	FieldActual         = "actual"
	FieldInputMaterial  = "input_material"
	FieldOutputMaterial = "output_material"
	FieldOvertimeHours  = "overtime_hours"
	FieldWastage        = "wastage"
	FieldWorkers        = "workers"
	FieldMachineName    = "machine_name"
	FieldStartTime      = "start_time"
	FieldEndTime        = "end_time"
	FieldRemarks        = "remarks"
	FieldQuantity       = "quantity"
)

type FieldSpec struct {
	Name     string
	Label    string
	Required bool
	// Readonly fields are only ever written by derivation.
	Readonly bool
	// Multi fields hold a set of selected values instead of one string.
	Multi bool
}

type Schema struct {
	Kind             Kind
	Title            string
	Endpoint         string
	Fields           []FieldSpec
	SuccessMessage   string
	TransportMessage string
}

func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

var schemas = map[Kind]Schema{
	KindProduction: {
		Kind:     KindProduction,
		Title:    "Production",
		Endpoint: "/api/production",
		Fields: []FieldSpec{
			{Name: FieldWorkerID, Label: "Worker ID", Required: true},
			{Name: FieldItemID, Label: "Item ID", Required: true},
			{Name: FieldDate, Label: "Date (YYYY-MM-DD)", Required: true},
			{Name: FieldTarget, Label: "Target"},
			{Name: FieldActual, Label: "Actual", Required: true},
			{Name: FieldInputMaterial, Label: "Input material", Required: true},
			{Name: FieldOutputMaterial, Label: "Output material", Required: true},
			{Name: FieldOvertimeHours, Label: "Overtime hours", Readonly: true},
			{Name: FieldWastage, Label: "Wastage", Readonly: true},
		},
		SuccessMessage:   "Production data saved successfully!",
		TransportMessage: "An error occurred while saving data.",
	},
	KindAttendance: {
		Kind:     KindAttendance,
		Title:    "Attendance",
		Endpoint: "/api/attendance",
		Fields: []FieldSpec{
			{Name: FieldWorkers, Label: "Workers", Multi: true},
			{Name: FieldDate, Label: "Date (YYYY-MM-DD)", Required: true},
		},
		SuccessMessage:   "Attendance saved successfully!",
		TransportMessage: "An error occurred while saving attendance.",
	},
	KindDowntime: {
		Kind:     KindDowntime,
		Title:    "Downtime",
		Endpoint: "/api/downtime",
		Fields: []FieldSpec{
			{Name: FieldMachineName, Label: "Machine", Required: true},
			{Name: FieldStartTime, Label: "Start (YYYY-MM-DDTHH:MM)", Required: true},
			{Name: FieldEndTime, Label: "End (YYYY-MM-DDTHH:MM)", Required: true},
			{Name: FieldRemarks, Label: "Remarks"},
		},
		SuccessMessage:   "Downtime recorded successfully!",
		TransportMessage: "An error occurred while recording downtime.",
	},
	KindRequisition: {
		Kind:     KindRequisition,
		Title:    "Requisition",
		Endpoint: "/api/requisition",
		Fields: []FieldSpec{
			{Name: FieldItemID, Label: "Item ID", Required: true},
			{Name: FieldQuantity, Label: "Quantity", Required: true},
		},
		SuccessMessage:   "Requisition submitted successfully!",
		TransportMessage: "An error occurred while submitting requisition.",
	},
}

func SchemaFor(kind Kind) (Schema, error) {
	s, ok := schemas[kind]
	if !ok {
		return Schema{}, fmt.Errorf("%w: unknown form %q", apperrors.ErrInvalidInput, kind)
	}
	return s, nil
}

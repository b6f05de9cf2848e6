package domain

import (
	"fmt"
	"strings"

	calc "factoryerp/internal/modules/calc/domain"
)

// Messages shown when local validation blocks a submission.
const (
	MsgOutputExceedsInput = "Output material cannot exceed input material!"
	MsgNoWorkers          = "Please select at least one worker."
)

// ValidationError blocks a submission before any request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks a snapshot against its schema. Selection and material
// rules run before the required-field pass so their messages win.
func Validate(schema Schema, rec Record) error {
	switch schema.Kind {
	case KindAttendance:
		if workers, _ := rec[FieldWorkers].([]string); len(workers) == 0 {
			return &ValidationError{Field: FieldWorkers, Message: MsgNoWorkers}
		}
	case KindProduction:
		in, inOK := calc.ParseLooseDecimal(stringField(rec, FieldInputMaterial))
		out, outOK := calc.ParseLooseDecimal(stringField(rec, FieldOutputMaterial))
		if inOK && outOK && out.GreaterThan(in) {
			return &ValidationError{Field: FieldOutputMaterial, Message: MsgOutputExceedsInput}
		}
	}
	for _, spec := range schema.Fields {
		if !spec.Required || spec.Multi {
			continue
		}
		if strings.TrimSpace(stringField(rec, spec.Name)) == "" {
			return &ValidationError{Field: spec.Name, Message: fmt.Sprintf("Field '%s' is required", spec.Name)}
		}
	}
	return nil
}

func stringField(rec Record, name string) string {
	s, _ := rec[name].(string)
	return s
}

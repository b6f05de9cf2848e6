package domain

import (
	"fmt"
	"slices"
	"sync"

	calc "factoryerp/internal/modules/calc/domain"
	apperrors "factoryerp/internal/platform/errors"
)

// Record is the serialized form state sent as the request body.
type Record map[string]any

// Form holds the live input state of one form instance. It is safe for
// concurrent use so a view can keep editing while a submission snapshots it.
type Form struct {
	schema Schema

	mu       sync.Mutex
	values   map[string]string
	selected map[string][]string
}

func NewForm(kind Kind) (*Form, error) {
	schema, err := SchemaFor(kind)
	if err != nil {
		return nil, err
	}
	f := &Form{schema: schema}
	f.clear()
	return f, nil
}

func (f *Form) Kind() Kind {
	return f.schema.Kind
}

func (f *Form) Schema() Schema {
	return f.schema
}

// Set writes one editable single-value field and refreshes any field derived
// from it.
func (f *Form) Set(name, value string) error {
	spec, ok := f.schema.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s form has no field %q", apperrors.ErrInvalidInput, f.schema.Kind, name)
	}
	if spec.Readonly {
		return fmt.Errorf("%w: field %q is read-only", apperrors.ErrInvalidInput, name)
	}
	if spec.Multi {
		return fmt.Errorf("%w: field %q takes a selection", apperrors.ErrInvalidInput, name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
	f.derive(name)
	return nil
}

// Select replaces the selection of a multi-value field. Duplicates and blank
// entries are dropped; order is kept.
func (f *Form) Select(name string, values ...string) error {
	spec, ok := f.schema.Field(name)
	if !ok || !spec.Multi {
		return fmt.Errorf("%w: %s form has no selection %q", apperrors.ErrInvalidInput, f.schema.Kind, name)
	}
	picked := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || slices.Contains(picked, v) {
			continue
		}
		picked = append(picked, v)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected[name] = picked
	return nil
}

// Toggle flips value in or out of a multi-value field's selection.
func (f *Form) Toggle(name, value string) error {
	current := f.Selected(name)
	if i := slices.Index(current, value); i >= 0 {
		return f.Select(name, slices.Delete(current, i, i+1)...)
	}
	return f.Select(name, append(current, value)...)
}

func (f *Form) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

func (f *Form) Selected(name string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.selected[name])
}

// Record snapshots every named field. Single-value fields keep their raw
// text, blanks included; selections become string lists.
func (f *Form) Record() Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := Record{}
	for _, spec := range f.schema.Fields {
		if spec.Multi {
			rec[spec.Name] = slices.Clone(f.selected[spec.Name])
			continue
		}
		rec[spec.Name] = f.values[spec.Name]
	}
	return rec
}

// Reset returns every field to blank.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clear()
}

func (f *Form) clear() {
	f.values = map[string]string{}
	f.selected = map[string][]string{}
	for _, spec := range f.schema.Fields {
		if spec.Multi {
			f.selected[spec.Name] = []string{}
			continue
		}
		f.values[spec.Name] = ""
	}
}

// derive must be called with mu held.
func (f *Form) derive(changed string) {
	if f.schema.Kind != KindProduction {
		return
	}
	switch changed {
	case FieldActual, FieldTarget:
		f.values[FieldOvertimeHours] = calc.OvertimeHoursFromInput(f.values[FieldActual], f.values[FieldTarget])
	case FieldInputMaterial, FieldOutputMaterial:
		f.values[FieldWastage] = calc.WastageFromInput(f.values[FieldInputMaterial], f.values[FieldOutputMaterial])
	}
}

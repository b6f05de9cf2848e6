package in

import (
	"context"

	"factoryerp/internal/modules/forms/dto"
)

type Usecase interface {
	Open(kind string) (FormHandle, error)
}

// FormHandle is one live form instance with its own submission guard.
type FormHandle interface {
	Kind() string
	Title() string
	Fields() []dto.FieldOutput
	Set(name, value string) error
	Select(name string, values ...string) error
	Toggle(name, value string) error
	Reset()
	Pending() bool
	Submit(ctx context.Context, input dto.SubmitInput) (dto.SubmitOutput, error)
}

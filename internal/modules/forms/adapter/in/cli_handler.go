package in

import (
	"context"

	"factoryerp/internal/modules/forms/dto"
	formsin "factoryerp/internal/modules/forms/port/in"
)

type CLIHandler struct {
	usecase formsin.Usecase
}

func NewCLIHandler(usecase formsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Open hands out a form instance for interactive editing.
func (h CLIHandler) Open(kind string) (formsin.FormHandle, error) {
	return h.usecase.Open(kind)
}

// Submit fills a fresh form from flag values and sends it once. Empty values
// are left blank so required-field checks still apply.
func (h CLIHandler) Submit(ctx context.Context, kind string, values map[string]string, selections map[string][]string, token string) (dto.SubmitOutput, error) {
	form, err := h.usecase.Open(kind)
	if err != nil {
		return dto.SubmitOutput{}, err
	}
	for _, f := range form.Fields() {
		if f.Multi {
			if picked, ok := selections[f.Name]; ok {
				if err := form.Select(f.Name, picked...); err != nil {
					return dto.SubmitOutput{}, err
				}
			}
			continue
		}
		if v, ok := values[f.Name]; ok && !f.Readonly {
			if err := form.Set(f.Name, v); err != nil {
				return dto.SubmitOutput{}, err
			}
		}
	}
	return form.Submit(ctx, dto.SubmitInput{Token: token})
}

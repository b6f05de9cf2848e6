package usecase

import (
	"context"

	"go.uber.org/zap"

	"factoryerp/internal/modules/forms/domain"
	"factoryerp/internal/modules/forms/dto"
	formsin "factoryerp/internal/modules/forms/port/in"
	formsout "factoryerp/internal/modules/forms/port/out"
	"factoryerp/internal/modules/forms/service"
)

type Interactor struct {
	gateway formsout.Gateway
	logger  *zap.Logger
}

func NewInteractor(gateway formsout.Gateway, logger *zap.Logger) formsin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{gateway: gateway, logger: logger}
}

// Open builds a fresh, blank form instance.
func (i *Interactor) Open(kind string) (formsin.FormHandle, error) {
	k, err := domain.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	form, err := domain.NewForm(k)
	if err != nil {
		return nil, err
	}
	return &handle{pipeline: service.NewPipeline(form, i.gateway, i.logger)}, nil
}

type handle struct {
	pipeline *service.Pipeline
}

func (h *handle) form() *domain.Form {
	return h.pipeline.Form()
}

func (h *handle) Kind() string {
	return string(h.form().Kind())
}

func (h *handle) Title() string {
	return h.form().Schema().Title
}

func (h *handle) Fields() []dto.FieldOutput {
	form := h.form()
	specs := form.Schema().Fields
	out := make([]dto.FieldOutput, 0, len(specs))
	for _, spec := range specs {
		f := dto.FieldOutput{
			Name:     spec.Name,
			Label:    spec.Label,
			Required: spec.Required,
			Readonly: spec.Readonly,
			Multi:    spec.Multi,
		}
		if spec.Multi {
			f.Selected = form.Selected(spec.Name)
		} else {
			f.Value = form.Value(spec.Name)
		}
		out = append(out, f)
	}
	return out
}

func (h *handle) Set(name, value string) error {
	return h.form().Set(name, value)
}

func (h *handle) Select(name string, values ...string) error {
	return h.form().Select(name, values...)
}

func (h *handle) Toggle(name, value string) error {
	return h.form().Toggle(name, value)
}

func (h *handle) Reset() {
	h.form().Reset()
}

func (h *handle) Pending() bool {
	return h.pipeline.Pending()
}

func (h *handle) Submit(ctx context.Context, input dto.SubmitInput) (dto.SubmitOutput, error) {
	outcome, err := h.pipeline.Submit(ctx, input.Token)
	return dto.SubmitOutput{
		Kind:    h.Kind(),
		State:   string(outcome.State),
		Level:   string(outcome.Notification.Level),
		Message: outcome.Notification.Message,
	}, err
}

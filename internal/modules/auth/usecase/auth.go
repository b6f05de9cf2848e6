package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"factoryerp/internal/modules/auth/domain"
	"factoryerp/internal/modules/auth/dto"
	authin "factoryerp/internal/modules/auth/port/in"
	"factoryerp/internal/modules/auth/service"
	apperrors "factoryerp/internal/platform/errors"
)

// Interactor hydrates the session once and serves that snapshot for the rest
// of the process. Store and Clear only touch storage, so their effect is
// visible from the next run.
type Interactor struct {
	svc *service.SessionService

	once    sync.Once
	session domain.Session
	err     error
}

func NewInteractor(svc *service.SessionService) authin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Current(ctx context.Context) (dto.SessionOutput, error) {
	i.once.Do(func() {
		i.session, i.err = i.svc.Load(ctx)
	})
	if i.err != nil {
		return dto.SessionOutput{}, i.err
	}
	return toOutput(i.session), nil
}

func (i *Interactor) Store(ctx context.Context, input dto.StoreInput) error {
	if strings.TrimSpace(input.Token) == "" {
		return fmt.Errorf("%w: token is required", apperrors.ErrInvalidInput)
	}
	if err := domain.ValidateUserJSON(input.UserJSON); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	switch input.Role {
	case "", domain.RoleStaff, domain.RoleAdmin:
	default:
		return fmt.Errorf("%w: unsupported role %q", apperrors.ErrInvalidInput, input.Role)
	}
	return i.svc.Save(ctx, input.Token, input.UserJSON, input.Role)
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func toOutput(s domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		UserID:    s.UserID,
		Email:     s.Email,
		Role:      s.Role,
		Token:     s.Token,
		Anonymous: s.Anonymous(),
	}
}

package service

import (
	"context"

	"factoryerp/internal/modules/auth/domain"
	authout "factoryerp/internal/modules/auth/port/out"
)

type SessionService struct {
	storage authout.Storage
}

func NewSessionService(storage authout.Storage) *SessionService {
	return &SessionService{storage: storage}
}

func (s *SessionService) Load(ctx context.Context) (domain.Session, error) {
	token, _, err := s.storage.Get(ctx, domain.KeyToken)
	if err != nil {
		return domain.Session{}, err
	}
	if token == "" {
		return domain.Session{}, nil
	}
	user, _, err := s.storage.Get(ctx, domain.KeyUser)
	if err != nil {
		return domain.Session{}, err
	}
	role, _, err := s.storage.Get(ctx, domain.KeyRole)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.FromStorage(token, user, role)
}

// Save writes each non-empty value under its storage key.
func (s *SessionService) Save(ctx context.Context, token, userJSON, role string) error {
	for _, kv := range [][2]string{{domain.KeyToken, token}, {domain.KeyUser, userJSON}, {domain.KeyRole, role}} {
		if kv[1] == "" {
			continue
		}
		if err := s.storage.Set(ctx, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SessionService) Clear(ctx context.Context) error {
	for _, key := range []string{domain.KeyToken, domain.KeyUser, domain.KeyRole} {
		if err := s.storage.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

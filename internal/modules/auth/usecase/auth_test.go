package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"factoryerp/internal/modules/auth/dto"
	"factoryerp/internal/modules/auth/service"
	"factoryerp/internal/modules/auth/usecase"
	apperrors "factoryerp/internal/platform/errors"
)

type memoryStorage struct {
	mu    sync.Mutex
	data  map[string]string
	reads int
	fail  error
}

func newMemoryStorage(seed map[string]string) *memoryStorage {
	data := map[string]string{}
	for k, v := range seed {
		data[k] = v
	}
	return &memoryStorage{data: data}
}

func (m *memoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.fail != nil {
		return "", false, m.fail
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func TestCurrentHydratesOnce(t *testing.T) {
	t.Parallel()
	storage := newMemoryStorage(map[string]string{
		"authToken":   "tok",
		"currentUser": `{"id":"u-7","email":"w@factory.com"}`,
	})
	uc := usecase.NewInteractor(service.NewSessionService(storage))
	ctx := context.Background()

	first, err := uc.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if first.Anonymous || first.UserID != "u-7" || first.Role != "staff" {
		t.Fatalf("unexpected session: %+v", first)
	}
	reads := storage.reads

	if err := storage.Set(ctx, "authToken", "rotated"); err != nil {
		t.Fatalf("set: %v", err)
	}
	second, err := uc.Current(ctx)
	if err != nil {
		t.Fatalf("current again: %v", err)
	}
	if second.Token != "tok" || storage.reads != reads {
		t.Fatalf("expected cached snapshot, got token %q after %d reads", second.Token, storage.reads)
	}
}

func TestCurrentAnonymousWhenStorageEmpty(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewSessionService(newMemoryStorage(nil)))
	s, err := uc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if !s.Anonymous || s.Token != "" {
		t.Fatalf("expected anonymous session, got %+v", s)
	}
}

func TestCurrentSurfacesStorageFailure(t *testing.T) {
	t.Parallel()
	storage := newMemoryStorage(nil)
	storage.fail = errors.New("disk gone")
	uc := usecase.NewInteractor(service.NewSessionService(storage))
	if _, err := uc.Current(context.Background()); err == nil {
		t.Fatalf("expected storage error")
	}
}

func TestStoreValidatesAndClearRemoves(t *testing.T) {
	t.Parallel()
	storage := newMemoryStorage(nil)
	uc := usecase.NewInteractor(service.NewSessionService(storage))
	ctx := context.Background()

	if err := uc.Store(ctx, dto.StoreInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty token, got %v", err)
	}
	if err := uc.Store(ctx, dto.StoreInput{Token: "t", Role: "owner"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for role, got %v", err)
	}
	if err := uc.Store(ctx, dto.StoreInput{Token: "t", UserJSON: "nope"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for user json, got %v", err)
	}
	if err := uc.Store(ctx, dto.StoreInput{Token: "t", UserJSON: `{"id":"a"}`, Role: "admin"}); err != nil {
		t.Fatalf("store: %v", err)
	}
	if storage.data["authToken"] != "t" || storage.data["userRole"] != "admin" {
		t.Fatalf("unexpected storage: %+v", storage.data)
	}
	if err := uc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(storage.data) != 0 {
		t.Fatalf("expected empty storage, got %+v", storage.data)
	}
}

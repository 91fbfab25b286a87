package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

type stubStore struct {
	values map[string]string
	setErr error
}

func newStubStore() *stubStore {
	return &stubStore{values: map[string]string{}}
}

func (s *stubStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value.(string)
	return nil
}

func (s *stubStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (s *stubStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

type stubKeyer struct{}

func (stubKeyer) SessionKey(token string) string { return "gp:session:" + token }

func newTestManager(store *stubStore) *Manager {
	return &Manager{store: store, keyer: stubKeyer{}, ttl: time.Hour}
}

func TestCreateLookupDestroy(t *testing.T) {
	store := newStubStore()
	manager := newTestManager(store)

	identity := Identity{UserID: uuid.New(), Name: "Mina"}
	token, err := manager.Create(context.Background(), identity)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	resolved, err := manager.Lookup(context.Background(), token)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if resolved.UserID != identity.UserID || resolved.Name != identity.Name {
		t.Fatalf("resolved identity mismatch: %+v", resolved)
	}

	if err := manager.Destroy(context.Background(), token); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if _, err := manager.Lookup(context.Background(), token); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession after destroy, got %v", err)
	}
}

func TestLookupUnknownToken(t *testing.T) {
	manager := newTestManager(newStubStore())
	if _, err := manager.Lookup(context.Background(), "nope"); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if _, err := manager.Lookup(context.Background(), "  "); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession for blank token, got %v", err)
	}
}

func TestDestroyBlankTokenNoop(t *testing.T) {
	manager := newTestManager(newStubStore())
	if err := manager.Destroy(context.Background(), ""); err != nil {
		t.Fatalf("expected no-op for blank token, got %v", err)
	}
}

func TestCreateRequiresUserID(t *testing.T) {
	manager := newTestManager(newStubStore())
	if _, err := manager.Create(context.Background(), Identity{Name: "ghost"}); err == nil {
		t.Fatal("expected error for nil user id")
	}
}

func TestTokensAreUnique(t *testing.T) {
	store := newStubStore()
	manager := newTestManager(store)
	identity := Identity{UserID: uuid.New(), Name: "Mina"}

	first, err := manager.Create(context.Background(), identity)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	second, err := manager.Create(context.Background(), identity)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct tokens for each session")
	}
}

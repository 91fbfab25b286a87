package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gachpala/shop-backend/pkg/config"
	redisclient "github.com/gachpala/shop-backend/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

const tokenBytes = 32

// ErrNoSession signals that the provided token has no live session behind it.
var ErrNoSession = errors.New("session not found")

// Identity is the authenticated principal resolved from a session token.
// It is established at login and immutable for the lifetime of the request.
type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"user_name"`
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(token string) string
}

// Manager creates, resolves, and destroys opaque server-side sessions.
// The token is the only thing the client ever holds; the identity behind it
// lives in Redis with a TTL and is never written to the durable store.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.TTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Create stores the identity under a fresh opaque token and returns the token.
func (m *Manager) Create(ctx context.Context, identity Identity) (string, error) {
	if identity.UserID == uuid.Nil {
		return "", fmt.Errorf("user id is required")
	}
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	if err := m.store.Set(ctx, m.keyer.SessionKey(token), string(payload), m.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Lookup resolves a token to its identity. A token with no live session
// returns ErrNoSession; store failures surface as-is.
func (m *Manager) Lookup(ctx context.Context, token string) (*Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNoSession
	}
	raw, err := m.store.Get(ctx, m.keyer.SessionKey(token))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	var identity Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &identity, nil
}

// Destroy removes the session behind the token. Unknown tokens are a no-op.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return m.store.Del(ctx, m.keyer.SessionKey(token))
}

func generateToken() (string, error) {
	bytes := make([]byte, tokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

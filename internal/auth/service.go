package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gachpala/shop-backend/internal/users"
	"github.com/gachpala/shop-backend/pkg/config"
	"github.com/gachpala/shop-backend/pkg/db"
	"github.com/gachpala/shop-backend/pkg/db/models"
	pkgerrors "github.com/gachpala/shop-backend/pkg/errors"
	"github.com/gachpala/shop-backend/pkg/security"
	"github.com/gachpala/shop-backend/pkg/session"
	"gorm.io/gorm"
)

const (
	invalidCredentialsMessage = "Invalid email or password."
	duplicateEmailMessage     = "This email is already registered."
)

// Service defines the behavior needed by the auth controllers.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) error
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type sessionCreator interface {
	Create(ctx context.Context, identity session.Identity) (string, error)
}

type service struct {
	users       userRepository
	sessions    sessionCreator
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionCreator
	PasswordConfig config.PasswordConfig
}

// NewService constructs a signup/login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		users:       params.UserRepo,
		sessions:    params.SessionManager,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// Signup stores a new user with an Argon2id password hash. Duplicate emails
// are detected solely via the unique index violation; there is no lookup
// beforehand, so two racing signups cannot both win.
func (s *service) Signup(ctx context.Context, req SignupRequest) error {
	email := normalizeEmail(req.Email)
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	if _, err := s.users.Create(ctx, users.CreateUserDTO{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: passwordHash,
	}); err != nil {
		if db.IsUniqueViolation(err, "idx_users_email") {
			return pkgerrors.New(pkgerrors.CodeConflict, duplicateEmailMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return nil
}

// Login verifies the credentials and establishes a session. Unknown emails
// and wrong passwords yield the same error so account existence never leaks.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.sessions.Create(ctx, session.Identity{
		UserID: user.ID,
		Name:   user.Name,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session")
	}

	return &LoginResult{
		Token: token,
		User:  users.FromModel(user),
	}, nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := normalizeEmail(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

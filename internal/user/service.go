// Package user handles storefront accounts: registration and login.
package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MikeMC777/cafe-altura/internal/apperr"
	"github.com/MikeMC777/cafe-altura/internal/auth"
)

type Service struct {
	repo     Repository
	validate *validator.Validate
	secret   string
	tokenTTL time.Duration
}

func NewService(repo Repository, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Register creates a customer account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	return s.create(ctx, req, auth.RoleCustomer)
}

// CreateAdmin creates an admin account. Used by the seeder.
func (s *Service) CreateAdmin(ctx context.Context, req RegisterRequest) (*User, error) {
	return s.create(ctx, req, auth.RoleAdmin)
}

// EnsureAdmin creates an admin account unless the email is already
// registered. It reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, req RegisterRequest) (bool, error) {
	_, err := s.CreateAdmin(ctx, req)
	switch {
	case apperr.KindOf(err) == apperr.Conflict:
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func (s *Service) create(ctx context.Context, req RegisterRequest, role string) (*User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.PostalCode = strings.TrimSpace(req.PostalCode)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Wrap(err, "hash password")
	}
	u := &User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		PostalCode:   req.PostalCode,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrAlreadyExist) {
			return nil, apperr.E(apperr.Conflict, "email already registered")
		}
		return nil, apperr.Wrap(err, "create user")
	}
	return u, nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password fail the same way.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, apperr.Wrap(err, "login")
	}
	if u == nil || !CheckPassword(u.PasswordHash, req.Password) {
		slog.Warn("login failed", "email", req.Email)
		return nil, apperr.E(apperr.Unauthorized, "invalid credentials")
	}

	token, err := auth.GenerateToken(s.secret, s.tokenTTL, u.ID, u.Name, u.Role)
	if err != nil {
		return nil, apperr.Wrap(err, "generate token")
	}
	slog.Info("user logged in", "user", u.Email, "role", u.Role)
	return &LoginResponse{Token: token, User: *u}, nil
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			return apperr.Validationf("%s is required", field)
		case "email":
			return apperr.Validationf("%s must be a valid email", field)
		case "min":
			return apperr.Validationf("%s must be at least %s characters", field, fe.Param())
		}
		return apperr.Validationf("%s is invalid", field)
	}
	return apperr.Validationf("invalid request")
}

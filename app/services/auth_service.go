package services

import (
	"context"
	"strings"
	"time"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/auth"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
)

const invalidCredentials = "Invalid credentials"

// AuthService registers accounts and issues session credentials.
type AuthService struct {
	users  UserStore
	signer *auth.Signer
}

func NewAuthService(users UserStore, signer *auth.Signer) *AuthService {
	return &AuthService{users: users, signer: signer}
}

// Register creates a customer account and signs it in.
func (s *AuthService) Register(ctx context.Context, in *requests.Register) (*models.User, string, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, "", apperrors.Conflict("User already exists")
	} else if !apperrors.IsNotFound(err) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}

	now := time.Now().UTC()
	u := &models.User{
		Name:      strings.TrimSpace(in.Name),
		Email:     in.Email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.signer.GenerateToken(u.ID.Hex(), u.IsAdmin)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	logger.WithCtx(ctx).Info("user registered", "user_id", u.ID.Hex())
	return u, token, nil
}

// Login checks credentials. Unknown email and wrong password answer alike.
func (s *AuthService) Login(ctx context.Context, in *requests.Login) (*models.User, string, error) {
	u, err := s.users.FindByEmail(ctx, in.Email)
	if apperrors.IsNotFound(err) {
		return nil, "", apperrors.Unauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, "", err
	}
	if !auth.CheckPassword(u.Password, in.Password) {
		return nil, "", apperrors.Unauthorized(invalidCredentials)
	}

	token, err := s.signer.GenerateToken(u.ID.Hex(), u.IsAdmin)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	return u, token, nil
}

// Me returns the signed-in user. A credential for a deleted account is
// treated as signed out.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if apperrors.IsNotFound(err) {
		return nil, apperrors.Unauthorized("Unauthorized")
	}
	return u, err
}

// EnsureAdmin creates an administrator or promotes an existing account.
// A non-empty password replaces the stored one. Returns whether a new
// account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (*models.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, false, apperrors.Validation("Email is required")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, false, err
	}

	if u != nil {
		u.IsAdmin = true
		if name != "" {
			u.Name = name
		}
		if err := s.users.Update(ctx, u); err != nil {
			return nil, false, err
		}
		if password != "" {
			hash, err := auth.HashPassword(password)
			if err != nil {
				return nil, false, apperrors.Internal(err)
			}
			if err := s.users.SetPassword(ctx, u.ID.Hex(), hash); err != nil {
				return nil, false, err
			}
		}
		return u, false, nil
	}

	if len(password) < 6 {
		return nil, false, apperrors.Validation("Password must be at least 6 characters")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, apperrors.Internal(err)
	}
	if name == "" {
		name = "Admin"
	}
	now := time.Now().UTC()
	u = &models.User{Name: name, Email: email, Password: hash, IsAdmin: true, CreatedAt: now, UpdatedAt: now}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

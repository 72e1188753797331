package services

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
)

// UserStore is the user persistence.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	SetPassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, search string, p pagination.Params) ([]models.User, int64, error)
}

const emailTaken = "Email already exists"

// UserService is account management for administrators.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, search string, p pagination.Params) ([]models.User, int64, error) {
	return s.users.List(ctx, strings.TrimSpace(search), p)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update edits name, email and the admin flag. Moving to an email another
// account owns is refused before anything is written.
func (s *UserService) Update(ctx context.Context, id string, in *requests.UpdateUser) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && owner.ID != u.ID:
		return nil, apperrors.Validation(emailTaken)
	case err != nil && !apperrors.IsNotFound(err):
		return nil, err
	}

	u.Name = strings.TrimSpace(in.Name)
	u.Email = in.Email
	u.IsAdmin = in.IsAdmin
	if err := s.users.Update(ctx, u); err != nil {
		if apperrors.IsConflict(err) {
			return nil, apperrors.Validation(emailTaken)
		}
		return nil, err
	}
	return u, nil
}

// Delete removes an account. An administrator can never delete their own.
func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return apperrors.Validation("Cannot delete your own account")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("user deleted", "user_id", id, "by", actorID)
	return nil
}

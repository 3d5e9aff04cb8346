package service

import (
	"context"
	"errors"
	"strings"

	"github.com/saodatov/hotel-pms/internal/auth"
	"github.com/saodatov/hotel-pms/internal/models"
	"github.com/saodatov/hotel-pms/internal/repository"
	"github.com/saodatov/hotel-pms/pkg/database"
	"gorm.io/gorm"
)

// UserService is the SUPERUSER-only staff account administration surface.
type UserService interface {
	List(ctx context.Context, principal *auth.Principal) ([]models.User, error)
	Create(ctx context.Context, principal *auth.Principal, username, password string, role models.Role) (*models.User, error)
	Delete(ctx context.Context, principal *auth.Principal, id uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, principal *auth.Principal) ([]models.User, error) {
	if err := auth.RequireRole(principal, models.RoleSuperuser); err != nil {
		return nil, err
	}
	return s.userRepo.FindAll(ctx)
}

func (s *userService) Create(ctx context.Context, principal *auth.Principal, username, password string, role models.Role) (*models.User, error) {
	if err := auth.RequireRole(principal, models.RoleSuperuser); err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingUserFields
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, principal *auth.Principal, id uint) error {
	if err := auth.RequireRole(principal, models.RoleSuperuser); err != nil {
		return err
	}
	if principal.ID == id {
		return ErrCannotDeleteYourself
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

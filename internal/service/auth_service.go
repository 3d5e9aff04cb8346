package service

import (
	"context"
	"errors"

	"github.com/saodatov/hotel-pms/config"
	"github.com/saodatov/hotel-pms/internal/auth"
	"github.com/saodatov/hotel-pms/internal/models"
	"github.com/saodatov/hotel-pms/internal/notifier"
	"github.com/saodatov/hotel-pms/internal/repository"
	"gorm.io/gorm"
)

type LoginResult struct {
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	SuperuserForgotPassword(ctx context.Context) string
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	notifier notifier.Notifier
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, n notifier.Notifier) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, notifier: n}
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, auth.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Username: user.Username, Role: user.Role}, nil
}

// SuperuserForgotPassword emails the default superuser password to the
// configured address and returns a confirmation message for the caller.
func (s *authService) SuperuserForgotPassword(ctx context.Context) string {
	s.notifier.SuperuserPasswordReminder()
	return "Password reminder has been emailed to " + config.SuperuserEmail
}

package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/repositories"
	"github.com/favourfurniture/storefront/pkg/auth"
	"github.com/favourfurniture/storefront/pkg/logger"
)

// AuthService handles registration and login.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// RegisterInput is the registration request contract.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"nullable,max=50"`
	Address  string `json:"address" validate:"nullable,max=255"`
}

// Register creates a customer account with a hashed password and returns
// it with a signed token.
func (s *AuthService) Register(in RegisterInput) (models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.users.FindByEmail(email); err == nil {
		return models.User{}, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("auth: lookup email failed", "error", err)
		return models.User{}, "", ErrUnavailable
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hashed,
		Role:     models.RoleCustomer,
		Address:  strings.TrimSpace(in.Address),
	}
	if strings.TrimSpace(in.Phone) != "" {
		user.Phone = models.NormalizePhone(in.Phone)
	}

	if err := s.users.Create(&user); err != nil {
		logger.Error("auth: create user failed", "error", err)
		return models.User{}, "", ErrUnavailable
	}

	token, err := auth.GenerateToken(user.ID, user.Role, user.Email, user.Name)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	user, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", ErrInvalidLogin
		}
		logger.Error("auth: lookup email failed", "error", err)
		return models.User{}, "", ErrUnavailable
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidLogin
	}

	token, err := auth.GenerateToken(user.ID, user.Role, user.Email, user.Name)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Profile returns the account behind an authenticated request.
func (s *AuthService) Profile(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, ErrUnavailable
	}
	return user, nil
}

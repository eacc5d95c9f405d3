package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fastfour/schleifchen-system/models"
	"github.com/fastfour/schleifchen-system/repositories"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService manages organizer accounts. Only authenticated organizers
// may mutate tournaments; reading drafts and rankings is public.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Name == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidationFailed)
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(creds.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

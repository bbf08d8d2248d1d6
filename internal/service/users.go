package service

import (
	"context"
	"strings"

	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService registers and authenticates authors.
type UserService struct {
	users repository.UserRepository
}

// NewUserService returns a UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register validates in and creates the account. Field errors are returned
// alongside a validation AppError so the form can be redisplayed.
func (s *UserService) Register(ctx context.Context, in validation.SignupInput) (*models.User, map[string][]string, error) {
	in.Normalize()
	if errs := validation.Struct(in); errs != nil {
		return nil, errs, models.NewValidationError("Invalid signup")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if models.IsValidation(err) {
			return nil, map[string][]string{"username": {err.Error()}}, err
		}
		return nil, nil, err
	}
	return user, nil, nil
}

// Authenticate returns the user whose credentials match, or an UNAUTHORIZED AppError.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewUnauthorizedError(invalidCredentials)
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, models.NewUnauthorizedError(invalidCredentials)
	}
	return user, nil
}

// GetByID returns the user with id.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

const invalidCredentials = "Please enter a correct username and password. Note that both fields may be case-sensitive."

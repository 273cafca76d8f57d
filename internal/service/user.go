// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/foodgram/foodgram/internal/auth"
	"github.com/foodgram/foodgram/internal/cache"
	"github.com/foodgram/foodgram/internal/metrics"
	"github.com/foodgram/foodgram/internal/model"
	"github.com/foodgram/foodgram/internal/repository"
)

// User service errors.
var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrEmailExists        = errors.New("email already registered")
	ErrUsernameExists     = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// Validation patterns matching the account schema.
var (
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)
)

// minPasswordLength follows the common validator minimum.
const minPasswordLength = 8

// UserService handles registration, authentication and password changes.
type UserService struct {
	repo      *repository.Repository
	cache     *cache.Cache
	secretKey string
	metrics   metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, cacheClient *cache.Cache, secretKey string, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:      repo,
		cache:     cacheClient,
		secretKey: secretKey,
		metrics:   recorder,
	}
}

// RegisterInput defines input for creating an account.
type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// Register validates the input and creates a new account.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrEmailExists
		case errors.Is(err, repository.ErrUsernameExists):
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// Login verifies credentials and issues a new access token.
// Returns the plaintext token, shown to the client exactly once.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", ErrInvalidCredentials
	}

	generated, err := auth.GenerateToken(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := &model.AuthToken{
		ID:        generated.ID,
		UserID:    user.ID,
		TokenHash: generated.Hash,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateToken(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	s.metrics.IncTokenIssued()

	return generated.Plaintext, nil
}

// Logout revokes the current token and drops its cache entry.
func (s *UserService) Logout(ctx context.Context, authCtx *model.AuthContext) error {
	if err := s.repo.DeleteToken(ctx, authCtx.TokenID); err != nil && !errors.Is(err, repository.ErrTokenNotFound) {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.DeleteAuthContext(ctx, authCtx.TokenHash)
	}

	return nil
}

// SetPassword changes the user's password after verifying the current one.
// All existing tokens are revoked so stolen credentials stop working.
func (s *UserService) SetPassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	match, err := auth.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil || !match {
		return ErrWrongPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdateUserPassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	hashes, err := s.repo.DeleteTokensByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}

	// Cached auth contexts would keep the revoked tokens valid until
	// their TTL expires, so they are dropped right away.
	if s.cache != nil {
		for _, hash := range hashes {
			_ = s.cache.DeleteAuthContext(ctx, hash)
		}
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers returns a page of users plus the total count.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*model.User, int64, error) {
	users, err := s.repo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	return users, count, nil
}

// validateRegisterInput applies field format and length rules.
func validateRegisterInput(input RegisterInput) error {
	if input.Email == "" || len(input.Email) > model.MaxEmailLength || !emailRegex.MatchString(input.Email) {
		return ErrInvalidEmail
	}
	if input.Username == "" || len(input.Username) > model.MaxUsernameLength || !usernameRegex.MatchString(input.Username) {
		return ErrInvalidUsername
	}
	if input.FirstName == "" || len(input.FirstName) > model.MaxFirstNameLength {
		return ErrInvalidName
	}
	if input.LastName == "" || len(input.LastName) > model.MaxLastNameLength {
		return ErrInvalidName
	}
	return validatePassword(input.Password)
}

// validatePassword applies the password length rules.
func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > model.MaxPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

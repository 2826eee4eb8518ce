// Package services implements the business logic between handlers and repositories
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/devhub/backend/internal/auth"
	"github.com/devhub/backend/internal/models"
	"go.uber.org/zap"
)

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserRepository is the interface that wraps methods for users table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is set on success.
	//
	// If the username or email is already taken, models.ErrUsernameExists or
	// models.ErrEmailExists will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by username.
	//
	// "username" parameter is used to retrieve a user by username.
	//
	// If user with such username does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method ExistsByUsername checks if a user with such username exists.
	//
	// "username" parameter is used to check if a user with such username exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// "email" parameter is used to check if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// authService implements registration and login
type authService struct {
	userRepo UserRepository
	codec    *auth.TokenCodec
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, codec *auth.TokenCodec, logger *zap.Logger) *authService {
	return &authService{
		userRepo: userRepo,
		codec:    codec,
		logger:   logger,
	}
}

// Register creates a new user account and returns a token for it.
//
// Uniqueness is checked username first, then email; the first conflict wins
// and nothing is written. On success exactly one user record is created.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (string, *models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if username == "" {
		return "", nil, fmt.Errorf("username cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return "", nil, fmt.Errorf("invalid email format")
	}
	if req.Password == "" {
		return "", nil, fmt.Errorf("password cannot be empty")
	}

	usernameExists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to check username: %w", err)
	}
	if usernameExists {
		return "", nil, models.ErrUsernameExists
	}

	emailExists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to check email: %w", err)
	}
	if emailExists {
		return "", nil, models.ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", nil, err
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = username
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		Role:         models.RoleUser,
	}

	// The repository maps unique-constraint violations back to the same
	// conflict errors, so a registration losing a race with an identical
	// username still fails with ErrUsernameExists.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.codec.Issue(user.Username)
	if err != nil {
		s.logger.Error("failed to issue token", zap.Error(err), zap.String("username", user.Username))
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, user, nil
}

// Login verifies credentials and returns a token for the user.
//
// An unknown username and a wrong password both fail with the identical
// models.ErrInvalidCredentials. No writes are performed.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.Username)
	if err != nil {
		s.logger.Error("failed to issue token", zap.Error(err), zap.String("username", user.Username))
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, user, nil
}

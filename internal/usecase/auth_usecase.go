package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/auth"
	"storefront/internal/domain"
)

type AuthUseCase interface {
	// Login verifies the credentials and returns a signed bearer token.
	Login(ctx context.Context, username, password string) (string, error)
	// EnsureAdminUser seeds the admin account on first start.
	EnsureAdminUser(ctx context.Context, username, password string) error
}

type authUseCase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenManager
	log      *logrus.Logger
}

func NewAuthUseCase(repo domain.UserRepository, tokens *auth.TokenManager, logger *logrus.Logger) AuthUseCase {
	return &authUseCase{
		userRepo: repo,
		tokens:   tokens,
		log:      logger,
	}
}

func (uc *authUseCase) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("username and password are required: %w", domain.ErrValidation)
	}

	user, err := uc.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Warnf("Use Case: Login failed - unknown user %s", username)
			return "", domain.ErrInvalidCredentials
		}
		uc.log.Errorf("Use Case: Error retrieving user %s during login: %v", username, err)
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.log.Warnf("Use Case: Login failed - wrong password for %s", username)
		return "", domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user.ID, user.Username)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to issue token for %s: %v", username, err)
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	uc.log.Infof("Use Case: Login successful for %s (ID: %d)", username, user.ID)
	return token, nil
}

func (uc *authUseCase) EnsureAdminUser(ctx context.Context, username, password string) error {
	_, err := uc.userRepo.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to check admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if _, err := uc.userRepo.CreateUser(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	uc.log.Infof("Use Case: Seeded admin user %s", username)
	return nil
}

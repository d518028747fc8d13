package service

import (
	"context"
	"errors"
	"fmt"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/logger"
	"academyhub-backend/internal/repository"
	"academyhub-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	users       repository.UserRepository
	tokens      security.TokenManager
	email       EmailService
	frontendURL string
}

func NewAuthService(users repository.UserRepository, tokens security.TokenManager, email EmailService, frontendURL string) AuthService {
	return &authService{
		users:       users,
		tokens:      tokens,
		email:       email,
		frontendURL: frontendURL,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, domain.E(domain.CodeUnauthorized, "invalid email or password")
		}
		return "", nil, domain.Wrap(domain.CodeInternal, "failed to load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.E(domain.CodeUnauthorized, "invalid email or password")
	}

	token, err := s.tokens.IssueLoginToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, domain.Wrap(domain.CodeInternal, "failed to issue login token", err)
	}
	return token, user, nil
}

func (s *authService) Me(ctx context.Context, userID int32) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "user not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load user", err)
	}
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID int32, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return domain.E(domain.CodeBadRequest, "password must be at least 8 characters")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.E(domain.CodeNotFound, "user not found")
		}
		return domain.Wrap(domain.CodeInternal, "failed to load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return domain.E(domain.CodeUnauthorized, "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.Wrap(domain.CodeInternal, "failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash), true); err != nil {
		return domain.Wrap(domain.CodeInternal, "failed to update password", err)
	}
	return nil
}

// ForgotPassword always reports success to the caller so email addresses
// cannot be enumerated; a missing user is only logged.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Debug("password reset requested for unknown email", "email", email)
			return nil
		}
		return domain.Wrap(domain.CodeInternal, "failed to load user", err)
	}

	token, err := s.tokens.IssueResetToken(user.ID, user.Email)
	if err != nil {
		return domain.Wrap(domain.CodeInternal, "failed to issue reset token", err)
	}
	link := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)

	name := user.Email
	if user.Profile != nil {
		name = user.Profile.FullName()
	}
	return s.email.SendPasswordReset(ctx, user.Email, name, link)
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return domain.E(domain.CodeBadRequest, "password must be at least 8 characters")
	}

	claims, err := s.tokens.Verify(security.PurposeReset, token)
	if err != nil {
		if errors.Is(err, security.ErrExpiredToken) {
			return domain.E(domain.CodeExpired, "reset link has expired")
		}
		return domain.E(domain.CodeBadRequest, "invalid reset link")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.Wrap(domain.CodeInternal, "failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, claims.UserID, string(hash), true); err != nil {
		return domain.Wrap(domain.CodeInternal, "failed to update password", err)
	}

	logger.Info("password reset completed", "user_id", claims.UserID)
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentpool/careers-portal/internal/core/domain"
	"github.com/talentpool/careers-portal/internal/core/ports"
)

// adminResetMinPasswordLen applies to admin-issued HR password resets.
// Self-registration requires 8 characters; this path accepts 6.
const adminResetMinPasswordLen = 6

// UserService implements the admin HR-management operations and the public
// email-availability check.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// EmailTaken reports whether a user with the given email already exists.
func (s *UserService) EmailTaken(ctx context.Context, email string) (bool, error) {
	return s.repo.ExistsByEmail(ctx, domain.NormalizeEmail(email))
}

// ListHRUsers returns every HR account, newest first.
func (s *UserService) ListHRUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListByRole(ctx, domain.RoleHR)
}

// ChangeHRPassword resets the password of an HR account. The target must exist
// and must hold the HR role: administrators cannot reset applicant or admin
// passwords through this path. The new password is stored as a bcrypt hash.
func (s *UserService) ChangeHRPassword(ctx context.Context, id, password string) (*domain.User, error) {
	if len(password) < adminResetMinPasswordLen {
		return nil, domain.ErrWeakPassword
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleHR {
		return nil, domain.ErrWrongRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("hr password reset")
	return user, nil
}

package ports

import (
	"context"

	"github.com/talentpool/careers-portal/internal/core/domain"
)

// UserRepository defines the interface for user persistence. The store owns the
// email uniqueness constraint: Create must return domain.ErrEmailTaken when an
// insert collides, regardless of any pre-check the caller performed.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

package ports

import (
	"context"

	"github.com/talentpool/careers-portal/internal/core/domain"
)

// UserService covers the role-scoped management operations behind the admin API
// plus the public email-availability check.
type UserService interface {
	EmailTaken(ctx context.Context, email string) (bool, error)
	ListHRUsers(ctx context.Context) ([]*domain.User, error)
	ChangeHRPassword(ctx context.Context, id, password string) (*domain.User, error)
}

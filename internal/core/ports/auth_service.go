package ports

import (
	"context"

	"github.com/talentpool/careers-portal/internal/core/domain"
)

// RegisterInput carries the self-registration fields. Role is not an input:
// self-registration always yields an applicant account.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// SessionResolver verifies a bearer token and returns the session it proves,
// with the role refreshed from the source of truth.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*domain.Session, error)
}

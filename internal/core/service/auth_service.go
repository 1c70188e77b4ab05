package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentpool/careers-portal/internal/core/domain"
	"github.com/talentpool/careers-portal/internal/core/ports"
)

// passwordHashCost is the bcrypt cost factor used for every stored hash.
const passwordHashCost = 12

// registerMinPasswordLen is the minimum password length for self-registration.
const registerMinPasswordLen = 8

// AuthService implements registration, credential validation and session tokens.
type AuthService struct {
	repo      ports.UserRepository
	demo      map[string]domain.DemoAccount
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewAuthService wires the credential store, the demo fallback set and the token
// parameters. The demo set may be empty; it is only consulted when the store has
// no user for an email.
func NewAuthService(repo ports.UserRepository, demoAccounts []domain.DemoAccount, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	demo := make(map[string]domain.DemoAccount, len(demoAccounts))
	for _, acct := range demoAccounts {
		demo[domain.NormalizeEmail(acct.Email)] = acct
	}
	return &AuthService{
		repo:      repo,
		demo:      demo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates an applicant account. The repository's unique index on email
// is the authoritative uniqueness guard: the pre-check here only gives a
// friendlier fast path, a duplicate-key error at insert time still maps to
// domain.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrMissingField
	}

	email := domain.NormalizeEmail(input.Email)
	if !domain.ValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}
	if len(input.Password) < registerMinPasswordLen {
		return nil, domain.ErrWeakPassword
	}

	taken, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), passwordHashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: string(hash),
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		Role:         domain.RoleApplicant,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("applicant registered")
	return created, nil
}

// Login validates credentials and issues a session token. A store miss falls
// back to the demo set, matched by exact plaintext password. Any mismatch is a
// lookup failure, not an exceptional condition: callers get ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	email = domain.NormalizeEmail(email)
	user, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return "", nil, domain.ErrInvalidCredentials
		}
	case errors.Is(err, domain.ErrUserNotFound):
		acct, ok := s.demo[email]
		if !ok || acct.Password != password {
			return "", nil, domain.ErrInvalidCredentials
		}
		user = demoUser(acct)
	default:
		return "", nil, err
	}

	demo := user.ID == ""
	token, err := s.issueToken(user, demo)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Bool("demo", demo).Msg("login succeeded")
	return token, user, nil
}

// ResolveSession verifies a token and re-derives the caller's role from the
// source of truth. A role change in the store propagates into already-issued
// sessions; a deleted user or an expired token resolves to no session.
func (s *AuthService) ResolveSession(ctx context.Context, tokenString string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	email, _ := claims["email"].(string)
	if demo, _ := claims["demo"].(bool); demo {
		acct, ok := s.demo[domain.NormalizeEmail(email)]
		if !ok {
			return nil, domain.ErrInvalidCredentials
		}
		return &domain.Session{Email: acct.Email, Name: acct.Name, Role: acct.Role, Demo: true}, nil
	}

	id, _ := claims["sub"].(string)
	if id == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	return &domain.Session{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.FullName(),
		Role:   user.Role,
	}, nil
}

func (s *AuthService) issueToken(user *domain.User, demo bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.FullName(),
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	if demo {
		claims["demo"] = true
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// demoUser shapes a demo account as a transient, non-persisted user.
func demoUser(acct domain.DemoAccount) *domain.User {
	first, last, _ := strings.Cut(acct.Name, " ")
	return &domain.User{
		FirstName: first,
		LastName:  last,
		Email:     domain.NormalizeEmail(acct.Email),
		Role:      acct.Role,
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentpool/careers-portal/internal/core/domain"
	"github.com/talentpool/careers-portal/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by email
	// forceCreateConflict simulates losing the check-then-insert race: the
	// pre-check sees no user but the insert hits the unique index.
	forceCreateConflict bool
	updateCalls         int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if r.forceCreateConflict {
		return false, nil
	}
	_, ok := r.users[email]
	return ok, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists || r.forceCreateConflict {
		return nil, domain.ErrEmailTaken
	}
	created := cloneUser(user)
	created.ID = "id-" + user.Email
	r.users[created.Email] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.updateCalls++
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

var testDemoAccounts = []domain.DemoAccount{
	{Email: "demo-admin@portal.test", Password: "letmein99", Role: domain.RoleAdmin, Name: "Demo Admin"},
}

func newTestAuthService(repo ports.UserRepository) *AuthService {
	return NewAuthService(repo, testDemoAccounts, "secret", time.Hour, zerolog.Nop())
}

func validInput() ports.RegisterInput {
	return ports.RegisterInput{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Password:  "longpass1",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleApplicant {
		t.Fatalf("expected applicant role, got %s", user.Role)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash == "longpass1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longpass1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	input := validInput()
	input.Email = "  Alice@Example.COM "
	user, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}

	// The same address in a different case must now conflict.
	dup := validInput()
	dup.Email = "ALICE@example.com"
	if _, err := svc.Register(context.Background(), dup); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	for _, mutate := range []func(*ports.RegisterInput){
		func(i *ports.RegisterInput) { i.FirstName = "" },
		func(i *ports.RegisterInput) { i.LastName = "" },
		func(i *ports.RegisterInput) { i.Email = "" },
		func(i *ports.RegisterInput) { i.Password = "" },
	} {
		input := validInput()
		mutate(&input)
		if _, err := svc.Register(context.Background(), input); err != domain.ErrMissingField {
			t.Fatalf("expected ErrMissingField, got %v", err)
		}
	}
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	for _, email := range []string{"plainaddress", "no@dot", "two words@x.com", "@missing.local"} {
		input := validInput()
		input.Email = email
		if _, err := svc.Register(context.Background(), input); err != domain.ErrInvalidEmail {
			t.Fatalf("email %q: expected ErrInvalidEmail, got %v", email, err)
		}
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	input := validInput()
	input.Password = "short77"
	if _, err := svc.Register(context.Background(), input); err != domain.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestAuthService_Register_ConflictAtInsert(t *testing.T) {
	// The pre-check passes but the store's unique index rejects the insert.
	repo := newStubUserRepo()
	repo.forceCreateConflict = true
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), validInput()); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice@example.com", "longpass1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != string(domain.RoleApplicant) {
		t.Fatalf("expected role %s, got %v", domain.RoleApplicant, claims["role"])
	}
	if _, ok := claims["demo"]; ok {
		t.Fatalf("store-backed login must not carry the demo claim")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), validInput())
	if _, _, err := svc.Login(context.Background(), "alice@example.com", "wrongpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_DemoFallback(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	token, user, err := svc.Login(context.Background(), "Demo-Admin@portal.test", "letmein99")
	if err != nil {
		t.Fatalf("demo login failed: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", user.Role)
	}
	if user.ID != "" {
		t.Fatalf("demo user must not carry a store id")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("token parse failed: %v", err)
	}
	if demo, _ := claims["demo"].(bool); !demo {
		t.Fatalf("expected demo claim on demo login")
	}
}

func TestAuthService_Login_DemoWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, _, err := svc.Login(context.Background(), "demo-admin@portal.test", "nope"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ResolveSession_RefreshesRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), validInput())
	token, _, err := svc.Login(context.Background(), "alice@example.com", "longpass1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Promote the user after the token was issued; the session must reflect
	// the store's current role, not the one baked into the claims.
	repo.users["alice@example.com"].Role = domain.RoleHR

	sess, err := svc.ResolveSession(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if sess.Role != domain.RoleHR {
		t.Fatalf("expected refreshed role HR, got %s", sess.Role)
	}
	if sess.Email != "alice@example.com" {
		t.Fatalf("unexpected session email: %s", sess.Email)
	}
}

func TestAuthService_ResolveSession_DeletedUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), validInput())
	token, _, _ := svc.Login(context.Background(), "alice@example.com", "longpass1")

	delete(repo.users, "alice@example.com")

	if _, err := svc.ResolveSession(context.Background(), token); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for deleted user, got %v", err)
	}
}

func TestAuthService_ResolveSession_DemoToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	token, _, _ := svc.Login(context.Background(), "demo-admin@portal.test", "letmein99")

	sess, err := svc.ResolveSession(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !sess.Demo || sess.Role != domain.RoleAdmin {
		t.Fatalf("unexpected demo session: %+v", sess)
	}
}

func TestAuthService_ResolveSession_Expired(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "some-id",
		"email": "alice@example.com",
		"role":  string(domain.RoleApplicant),
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.ResolveSession(context.Background(), signed); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for expired token, got %v", err)
	}
}

func TestAuthService_ResolveSession_WrongSecret(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "some-id",
		"role": string(domain.RoleAdmin),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.ResolveSession(context.Background(), signed); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for forged token, got %v", err)
	}
}

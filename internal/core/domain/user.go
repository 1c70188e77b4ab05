package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Role determines which endpoints a session may call.
type Role string

const (
	RoleApplicant Role = "APPLICANT"
	RoleHR        Role = "HR"
	RoleAdmin     Role = "ADMIN"
)

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleApplicant, RoleHR, RoleAdmin:
		return true
	}
	return false
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrMissingField = errors.New("missing required field")
var ErrInvalidEmail = errors.New("invalid email address")
var ErrWeakPassword = errors.New("password too short")
var ErrWrongRole = errors.New("user has wrong role for this operation")
var ErrForbidden = errors.New("access forbidden")

// User models any portal actor: applicants, HR staff and administrators.
// The password hash is never serialized.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName returns the display name used in session tokens.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// emailPattern accepts local@domain.tld shapes without whitespace.
// Deliberately conservative rather than full RFC 5322.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email is syntactically well formed.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeEmail lower-cases and trims an email address. Emails are compared
// case-insensitively everywhere, so this runs at every boundary that accepts one.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

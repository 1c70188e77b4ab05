package domain

// Session is the identity attached to a request after token verification.
// Role is re-derived from the credential store (or the demo set) on every
// resolution, never trusted from the signed payload across requests.
type Session struct {
	UserID string
	Email  string
	Name   string
	Role   Role
	Demo   bool
}

// DemoAccount is a static fallback credential, matched only when the credential
// store has no user for the email. Passwords are kept in plain text: the set is
// a non-production fixture, never persisted and never hashed.
type DemoAccount struct {
	Email    string
	Password string
	Role     Role
	Name     string
}

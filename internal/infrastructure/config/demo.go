package config

import "github.com/talentpool/careers-portal/internal/core/domain"

// demoAccounts is the static fallback credential set for environments without a
// live store. Passwords are plain text on purpose: these accounts are never
// persisted and never hashed.
var demoAccounts = []domain.DemoAccount{
	{Email: "applicant@demo.test", Password: "applicant123", Role: domain.RoleApplicant, Name: "Demo Applicant"},
	{Email: "hr@demo.test", Password: "hr1234567", Role: domain.RoleHR, Name: "Demo Recruiter"},
	{Email: "admin@demo.test", Password: "admin1234", Role: domain.RoleAdmin, Name: "Demo Admin"},
}

// DemoAccountSet returns the demo credentials when demo logins are enabled,
// otherwise nil. The set is fixed at startup and injected into the auth
// service; nothing else reads it.
func (c *Config) DemoAccountSet() []domain.DemoAccount {
	if !c.DemoLogins {
		return nil
	}
	return demoAccounts
}

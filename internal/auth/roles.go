package auth

import "github.com/spec-kit/travel-order-service/internal/domain"

// AdminPolicy identifies the single account allowed to mint access tokens.
type AdminPolicy struct {
	Name string
}

// NewAdminPolicy builds the policy for the configured account name.
func NewAdminPolicy(name string) AdminPolicy {
	return AdminPolicy{Name: name}
}

// Allows reports whether user is the designated administrator.
func (p AdminPolicy) Allows(user *domain.User) bool {
	return user != nil && p.Name != "" && user.Name == p.Name
}

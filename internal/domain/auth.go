package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// ViewerClaims are carried by tokens that unlock the executive briefing.
type ViewerClaims struct {
	UserID string          `json:"user_id"`
	Scopes map[string]bool `json:"scopes"` // "briefing.read": true
	jwt.RegisteredClaims
}

// ScopeBriefingRead grants access to /api/v1/briefing/*.
const ScopeBriefingRead = "briefing.read"

// Allows reports whether the token grants scope; "admin" grants everything.
func (c *ViewerClaims) Allows(scope string) bool {
	return c.Scopes["admin"] || c.Scopes[scope]
}

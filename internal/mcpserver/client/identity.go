package client

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity describes who the current bearer token belongs to. The bridge
// never verifies the token signature (that is the backend's job); it only
// decodes claims to surface the identity in guidance text and preflight
// checks.
type Identity struct {
	Anonymous bool
	Email     string
	Admin     bool
	ExpiresAt time.Time
}

// Role returns a human label for the identity
func (id Identity) Role() string {
	switch {
	case id.Anonymous:
		return "anonymous"
	case id.Admin:
		return "administrator"
	default:
		return "standard user"
	}
}

// Expired reports whether the token carries an exp claim in the past
func (id Identity) Expired() bool {
	return !id.ExpiresAt.IsZero() && time.Now().After(id.ExpiresAt)
}

// DecodeIdentity extracts identity claims from a bearer token without
// verification. An empty or undecodable token yields the anonymous identity.
func DecodeIdentity(token string) Identity {
	if token == "" {
		return Identity{Anonymous: true}
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Opaque (non-JWT) tokens are still usable credentials; we just
		// cannot say anything about the identity beyond "not anonymous".
		return Identity{}
	}

	id := Identity{}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if admin, ok := claims["admin"].(bool); ok {
		id.Admin = admin
	}
	if role, ok := claims["role"].(string); ok && role == "admin" {
		id.Admin = true
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}

	return id
}

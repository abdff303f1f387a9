package models

import "github.com/golang-jwt/jwt/v5"

// AccessTokenType is the token_type an identity provider puts on access
// tokens. Tokens without a token_type are treated as access tokens.
const AccessTokenType = "access"

// AccessClaims are the claims read from an access token issued by the
// external identity provider. The API only validates these tokens.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type,omitempty"`
}

// IsAccessToken reports whether the token may authenticate API calls.
func (c *AccessClaims) IsAccessToken() bool {
	return c.TokenType == "" || c.TokenType == AccessTokenType
}

// Principal returns the user id, falling back to the standard subject
// claim when the provider does not send user_id.
func (c *AccessClaims) Principal() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// RoleOrDefault returns the token's role, customer when none is given.
func (c *AccessClaims) RoleOrDefault() string {
	if c.Role == "" {
		return RoleCustomer
	}
	return c.Role
}

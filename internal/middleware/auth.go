package middleware

import (
	stderrors "errors"
	"strings"

	"ledger-engine/internal/config"
	"ledger-engine/internal/errors"
	"ledger-engine/internal/handlers"
	"ledger-engine/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequireAuth creates a middleware that requires a valid RS256 access token
// issued by the configured identity provider.
func RequireAuth(jwtCfg *config.JWTConfig) echo.MiddlewareFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(jwtCfg.Issuer),
		jwt.WithExpirationRequired(),
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			raw, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || raw == "" {
				return handlers.SendError(c, errors.AuthInvalidToken, errors.WithDetails("Expected a Bearer token"))
			}

			if jwtCfg.PublicKey == nil {
				return handlers.SendError(c, errors.AuthInvalidToken)
			}

			claims := &models.AccessClaims{}
			_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
				return jwtCfg.PublicKey, nil
			})
			if err != nil {
				if stderrors.Is(err, jwt.ErrTokenExpired) {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidToken)
			}

			if !claims.IsAccessToken() {
				return handlers.SendError(c, errors.AuthInvalidToken, errors.WithDetails("Not an access token"))
			}

			userID, err := uuid.Parse(claims.Principal())
			if err != nil || userID == uuid.Nil {
				return handlers.SendError(c, errors.AuthInvalidToken, errors.WithDetails("Invalid user ID in token"))
			}

			role := claims.RoleOrDefault()

			c.Set("user_id", userID)
			c.Set("user_email", claims.Email)
			c.Set("user_role", role)
			c.Set("is_admin", role == models.RoleAdmin)

			return next(c)
		}
	}
}

// RequireRole creates a middleware that requires a specific role
func RequireRole(requiredRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRole, ok := c.Get("user_role").(string)
			if !ok {
				return handlers.SendError(c, errors.AuthInvalidToken, errors.WithDetails("User role not found in token"))
			}

			for _, role := range requiredRoles {
				if userRole == role {
					return next(c)
				}
			}

			return handlers.SendError(c, errors.AuthInsufficientPermission)
		}
	}
}

// RequireAdmin is a convenience middleware that requires admin role
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(models.RoleAdmin)
}

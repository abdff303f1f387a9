package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ledger-engine/internal/config"
	"ledger-engine/internal/errors"
	"ledger-engine/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

type AuthMiddlewareSuite struct {
	suite.Suite
	privateKey *rsa.PrivateKey
	jwtConfig  *config.JWTConfig
	e          *echo.Echo
}

func (s *AuthMiddlewareSuite) SetupSuite() {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	s.Require().NoError(err)
	s.privateKey = key
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.jwtConfig = &config.JWTConfig{
		PublicKey: &s.privateKey.PublicKey,
		Issuer:    "test-issuer",
	}
	s.e = echo.New()
}

func (s *AuthMiddlewareSuite) claims(userID uuid.UUID, role string, expiresIn time.Duration) *models.AccessClaims {
	now := time.Now()
	return &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    "test-issuer",
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
		UserID:    userID.String(),
		Email:     "test@example.com",
		Role:      role,
		TokenType: models.AccessTokenType,
	}
}

func (s *AuthMiddlewareSuite) sign(claims jwt.Claims, key *rsa.PrivateKey) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	s.Require().NoError(err)
	return token
}

// serve runs RequireAuth in front of a handler that records whether it ran.
func (s *AuthMiddlewareSuite) serve(authorization string) (*httptest.ResponseRecorder, echo.Context, bool) {
	called := false
	handler := RequireAuth(s.jwtConfig)(func(c echo.Context) error {
		called = true
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.NoError(handler(c))
	return rec, c, called
}

func (s *AuthMiddlewareSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var resp errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ValidToken() {
	userID := uuid.New()
	token := s.sign(s.claims(userID, models.RoleCustomer, time.Hour), s.privateKey)

	rec, c, called := s.serve("Bearer " + token)

	s.True(called)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(userID, c.Get("user_id"))
	s.Equal("test@example.com", c.Get("user_email"))
	s.Equal(models.RoleCustomer, c.Get("user_role"))
	s.Equal(false, c.Get("is_admin"))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_AdminToken() {
	token := s.sign(s.claims(uuid.New(), models.RoleAdmin, time.Hour), s.privateKey)

	_, c, called := s.serve("Bearer " + token)

	s.True(called)
	s.Equal(true, c.Get("is_admin"))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_DefaultsToCustomerRole() {
	token := s.sign(s.claims(uuid.New(), "", time.Hour), s.privateKey)

	_, c, called := s.serve("Bearer " + token)

	s.True(called)
	s.Equal(models.RoleCustomer, c.Get("user_role"))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_UserFromSubject() {
	userID := uuid.New()
	claims := s.claims(userID, models.RoleCustomer, time.Hour)
	claims.UserID = ""
	claims.TokenType = ""

	_, c, called := s.serve("Bearer " + s.sign(claims, s.privateKey))

	s.True(called)
	s.Equal(userID, c.Get("user_id"))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MissingAuthorizationHeader() {
	rec, _, called := s.serve("")

	s.False(called)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthMissingToken), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_Rejections() {
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	s.Require().NoError(err)

	wrongIssuer := s.claims(uuid.New(), models.RoleCustomer, time.Hour)
	wrongIssuer.Issuer = "someone-else"

	refresh := s.claims(uuid.New(), models.RoleCustomer, time.Hour)
	refresh.TokenType = "refresh"

	badUser := s.claims(uuid.New(), models.RoleCustomer, time.Hour)
	badUser.UserID = "not-a-uuid"

	noExpiry := s.claims(uuid.New(), models.RoleCustomer, time.Hour)
	noExpiry.ExpiresAt = nil

	hmac, err := jwt.NewWithClaims(jwt.SigningMethodHS256, s.claims(uuid.New(), models.RoleAdmin, time.Hour)).SignedString([]byte("secret"))
	s.Require().NoError(err)

	testCases := []struct {
		name          string
		authorization string
		code          errors.ErrorCode
	}{
		{"not bearer", "Basic dXNlcjpwYXNz", errors.AuthInvalidToken},
		{"empty bearer", "Bearer ", errors.AuthInvalidToken},
		{"malformed", "Bearer invalid.jwt.token", errors.AuthInvalidToken},
		{"different key", "Bearer " + s.sign(s.claims(uuid.New(), models.RoleCustomer, time.Hour), otherKey), errors.AuthInvalidToken},
		{"hmac signed", "Bearer " + hmac, errors.AuthInvalidToken},
		{"wrong issuer", "Bearer " + s.sign(wrongIssuer, s.privateKey), errors.AuthInvalidToken},
		{"refresh token", "Bearer " + s.sign(refresh, s.privateKey), errors.AuthInvalidToken},
		{"bad user id", "Bearer " + s.sign(badUser, s.privateKey), errors.AuthInvalidToken},
		{"no expiry", "Bearer " + s.sign(noExpiry, s.privateKey), errors.AuthInvalidToken},
		{"expired", "Bearer " + s.sign(s.claims(uuid.New(), models.RoleCustomer, -time.Minute), s.privateKey), errors.AuthExpiredToken},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec, _, called := s.serve(tc.authorization)

			s.False(called)
			s.Equal(http.StatusUnauthorized, rec.Code)
			s.Equal(string(tc.code), s.errorCode(rec))
		})
	}
}

func (s *AuthMiddlewareSuite) TestRequireAuth_NoPublicKeyConfigured() {
	token := s.sign(s.claims(uuid.New(), models.RoleCustomer, time.Hour), s.privateKey)
	s.jwtConfig.PublicKey = nil

	rec, _, called := s.serve("Bearer " + token)

	s.False(called)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireRole_AuthorizedWithCorrectRole() {
	handler := RequireRole(models.RoleAdmin)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("user_role", models.RoleAdmin)

	s.NoError(handler(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireAdmin_RejectsCustomer() {
	handler := RequireAdmin()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("user_role", models.RoleCustomer)

	s.NoError(handler(c))
	s.Equal(http.StatusForbidden, rec.Code)
	s.Equal(string(errors.AuthInsufficientPermission), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireRole_MissingRoleInContext() {
	handler := RequireRole(models.RoleAdmin)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.NoError(handler(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireRole_AllowsMultipleRoles() {
	handler := RequireRole(models.RoleAdmin, models.RoleCustomer)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for _, role := range []string{models.RoleAdmin, models.RoleCustomer} {
		req := httptest.NewRequest(http.MethodGet, "/mixed", nil)
		rec := httptest.NewRecorder()
		c := s.e.NewContext(req, rec)
		c.Set("user_role", role)

		s.NoError(handler(c))
		s.Equal(http.StatusOK, rec.Code)
	}
}

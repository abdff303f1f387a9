package handlers

import (
	"fmt"
	"strings"

	"ledger-engine/internal/errors"
	"ledger-engine/internal/models"
	"ledger-engine/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getUserIDFromContext returns the authenticated user set by the auth middleware
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.UUID{}, ErrUnauthorized
	}
	return userID, nil
}

// actorFromContext builds the service actor for the authenticated caller
func actorFromContext(c echo.Context) (services.Actor, error) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return services.Actor{}, err
	}

	role, _ := c.Get("user_role").(string)
	if role == "" {
		role = models.RoleCustomer
	}

	return services.Actor{
		UserID:    userID,
		Role:      role,
		IPAddress: getClientIP(c),
		UserAgent: c.Request().UserAgent(),
	}, nil
}

// parseUUIDParam reads a path parameter and writes a validation error when
// it is not a UUID. ok is false when the response has been sent.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false, SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid "+name))
	}
	return id, true, nil
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(param, "%d", &value); err != nil {
		return defaultValue
	}

	return value
}

// getPagination reads offset and limit, clamping limit to maxPageLimit
func getPagination(c echo.Context) (offset, limit int) {
	offset = getIntParam(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	limit = getIntParam(c, "limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return offset, limit
}

func getClientIP(c echo.Context) string {
	xff := c.Request().Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := c.Request().Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	return c.RealIP()
}

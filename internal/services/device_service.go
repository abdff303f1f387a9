package services

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"log/slog"
	"strings"

	"ledger-engine/internal/clock"
	"ledger-engine/internal/models"
	"ledger-engine/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type deviceService struct {
	devices repositories.MobileDeviceRepositoryInterface
	audit   AuditServiceInterface
	clock   clock.Clock
	logger  *slog.Logger
}

func NewDeviceService(
	devices repositories.MobileDeviceRepositoryInterface,
	audit AuditServiceInterface,
	clk clock.Clock,
	logger *slog.Logger,
) DeviceServiceInterface {
	return &deviceService{
		devices: devices,
		audit:   audit,
		clock:   clk,
		logger:  logger,
	}
}

// RegisterDevice trusts a new device for the actor. The previously active
// device, if any, is revoked.
func (s *deviceService) RegisterDevice(ctx context.Context, actor Actor, label, publicKey string) (*models.MobileDevice, error) {
	normalized, err := NormalizePublicKey(publicKey)
	if err != nil {
		return nil, err
	}

	device := &models.MobileDevice{
		UserID:       actor.UserID,
		Label:        strings.TrimSpace(label),
		PublicKey:    normalized,
		RegisteredAt: s.clock.Now().UTC(),
	}
	if err := s.devices.Register(ctx, device); err != nil {
		return nil, fmt.Errorf("failed to register device: %w", err)
	}

	s.logger.InfoContext(ctx, "mobile device registered", "user_id", actor.UserID, "device_id", device.ID)
	s.audit.Record(ctx, newAuditLog(actor, models.AuditActionDeviceRegistered, "device", device.ID, models.JSONBMap{
		"label": device.Label,
	}))

	return device, nil
}

func (s *deviceService) RevokeDevice(ctx context.Context, actor Actor, deviceID uuid.UUID) error {
	device, err := s.devices.GetByID(ctx, deviceID)
	if err != nil {
		return translateRepoError(err)
	}
	if device.UserID != actor.UserID && !actor.IsAdmin() {
		return ErrDeviceNotFound
	}

	if err := s.devices.Revoke(ctx, deviceID, s.clock.Now()); err != nil {
		return translateRepoError(err)
	}

	s.audit.Record(ctx, newAuditLog(actor, models.AuditActionDeviceRevoked, "device", deviceID, nil))
	return nil
}

func (s *deviceService) GetActiveDevice(ctx context.Context, userID uuid.UUID) (*models.MobileDevice, error) {
	device, err := s.devices.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return device, nil
}

func (s *deviceService) ListDevices(ctx context.Context, actor Actor) ([]models.MobileDevice, error) {
	return s.devices.ListByUserID(ctx, actor.UserID)
}

// NormalizePublicKey accepts an RSA public key as PEM or as bare base64 PKIX
// DER and returns it as PEM.
func NormalizePublicKey(publicKey string) (string, error) {
	publicKey = strings.TrimSpace(publicKey)
	if publicKey == "" {
		return "", ErrInvalidPublicKey
	}

	var pemBytes []byte
	if strings.HasPrefix(publicKey, "-----BEGIN") {
		pemBytes = []byte(publicKey + "\n")
	} else {
		der, err := base64.StdEncoding.DecodeString(publicKey)
		if err != nil {
			return "", ErrInvalidPublicKey
		}
		parsed, err := x509.ParsePKIXPublicKey(der)
		if err != nil {
			return "", ErrInvalidPublicKey
		}
		if _, ok := parsed.(*rsa.PublicKey); !ok {
			return "", ErrInvalidPublicKey
		}
		pemBytes = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	}

	if _, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes); err != nil {
		return "", ErrInvalidPublicKey
	}
	return string(pemBytes), nil
}

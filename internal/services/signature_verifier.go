package services

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"

	"ledger-engine/internal/clock"
	"ledger-engine/internal/models"
	"ledger-engine/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SignatureVerifier checks RSA PKCS#1 v1.5 SHA-256 signatures made with the
// key of the user's active mobile device. It fails closed: any problem with
// the message, the key or the signature is reported as false.
type SignatureVerifier struct {
	devices repositories.MobileDeviceRepositoryInterface
	clock   clock.Clock
	logger  *slog.Logger
}

func NewSignatureVerifier(devices repositories.MobileDeviceRepositoryInterface, clk clock.Clock, logger *slog.Logger) SignatureVerifierInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &SignatureVerifier{
		devices: devices,
		clock:   clk,
		logger:  logger,
	}
}

func (v *SignatureVerifier) Verify(ctx context.Context, userID uuid.UUID, signedMessage string) bool {
	_, ok := v.VerifyDevice(ctx, userID, signedMessage)
	return ok
}

// VerifyDevice is Verify that also returns the device whose key matched.
func (v *SignatureVerifier) VerifyDevice(ctx context.Context, userID uuid.UUID, signedMessage string) (*models.MobileDevice, bool) {
	payload, encoded, ok := splitSignedMessage(signedMessage)
	if !ok {
		return nil, false
	}

	signature, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false
	}

	device, err := v.devices.GetActiveByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNoActiveDevice) {
			v.logger.WarnContext(ctx, "failed to load mobile device", "user_id", userID, "error", err)
		}
		return nil, false
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(device.PublicKey))
	if err != nil {
		v.logger.WarnContext(ctx, "stored device key is unreadable", "device_id", device.ID, "error", err)
		return nil, false
	}

	if err := jwt.SigningMethodRS256.Verify(payload, signature, key); err != nil {
		return nil, false
	}

	if err := v.devices.TouchLastUsed(ctx, device.ID, v.clock.Now()); err != nil {
		v.logger.WarnContext(ctx, "failed to update device last use", "device_id", device.ID, "error", err)
	}

	return device, true
}

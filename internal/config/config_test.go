package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "testing")
	t.Setenv("JWT_PUBLIC_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "DE", cfg.Bank.CountryCode)
	assert.Equal(t, "00:50", cfg.Scheduler.PaymentLockAt)
	assert.Equal(t, "01:00", cfg.Scheduler.PaymentExecuteAt)
	assert.Equal(t, 15*time.Minute, cfg.Approval.PaymentCreateTTL)
	assert.NotNil(t, cfg.Bank.Location)
	assert.Nil(t, cfg.JWT.PublicKey)
}

func TestLoad_InvalidTimeZone(t *testing.T) {
	t.Setenv("APP_ENV", "testing")
	t.Setenv("BANK_TIME_ZONE", "Mars/Olympus")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidBankCode(t *testing.T) {
	t.Setenv("APP_ENV", "testing")
	t.Setenv("BANK_CODE", "12AB")

	_, err := Load()
	assert.ErrorContains(t, err, "BANK_CODE")
}

func TestLoad_ProductionRequiresPublicKey(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_PUBLIC_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_PUBLIC_KEY")
}

func TestLoad_PublicKeyFromEnv(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	t.Setenv("APP_ENV", "testing")
	t.Setenv("JWT_PUBLIC_KEY", base64.StdEncoding.EncodeToString(pemBytes))

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.JWT.PublicKey)
	assert.Equal(t, key.PublicKey.N, cfg.JWT.PublicKey.N)
}

func TestApprovalConfig_TTLFor(t *testing.T) {
	cfg := ApprovalConfig{
		GenericTTL:       5 * time.Minute,
		PaymentCreateTTL: 15 * time.Minute,
		PaymentUpdateTTL: 30 * time.Minute,
		PaymentCancelTTL: 31 * time.Minute,
		AccountCloseTTL:  6 * time.Minute,
	}

	tests := []struct {
		kind     string
		expected time.Duration
	}{
		{"GENERIC", 5 * time.Minute},
		{"PAYMENT_CREATE", 15 * time.Minute},
		{"PAYMENT_UPDATE", 30 * time.Minute},
		{"PAYMENT_CANCEL", 31 * time.Minute},
		{"ACCOUNT_CLOSE", 6 * time.Minute},
		{"SOMETHING_ELSE", 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			assert.Equal(t, tt.expected, cfg.TTLFor(tt.kind))
		})
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("00:50")
	require.NoError(t, err)
	assert.Equal(t, 0, h)
	assert.Equal(t, 50, m)

	_, _, err = ParseClock("25:00")
	assert.Error(t, err)
}

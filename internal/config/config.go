package config

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Bank      BankConfig
	Approval  ApprovalConfig
	Scheduler SchedulerConfig
	Security  SecurityConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// JWTConfig only carries verification material. Access tokens are issued by
// the identity provider in front of this service.
type JWTConfig struct {
	PublicKey *rsa.PublicKey
	Issuer    string
}

type BankConfig struct {
	CountryCode     string
	BankCode        string
	DefaultCurrency string
	TimeZone        string
	Location        *time.Location
}

type ApprovalConfig struct {
	GenericTTL       time.Duration
	PaymentCreateTTL time.Duration
	PaymentUpdateTTL time.Duration
	PaymentCancelTTL time.Duration
	AccountCloseTTL  time.Duration
}

// SchedulerConfig holds wall-clock trigger times in HH:MM, interpreted in the
// bank time zone.
type SchedulerConfig struct {
	Enabled             bool
	PaymentLockAt       string
	PaymentExecuteAt    string
	InterestAt          string
	AuditPurgeAt        string
	ApprovalSweepPeriod time.Duration
	TickInterval        time.Duration
	AuditRetention      time.Duration
}

type SecurityConfig struct {
	RateLimitPerSecond int
	RateLimitBurst     int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "localhost"),
			Environment:     getEnv("APP_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "ledger_user"),
			Password:        getEnv("DB_PASSWORD", "ledger_password"),
			Name:            getEnv("DB_NAME", "ledger_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			Issuer: getEnv("JWT_ISSUER", "banking-api"),
		},
		Bank: BankConfig{
			CountryCode:     getEnv("BANK_COUNTRY_CODE", "DE"),
			BankCode:        getEnv("BANK_CODE", "37040044"),
			DefaultCurrency: getEnv("BANK_DEFAULT_CURRENCY", "EUR"),
			TimeZone:        getEnv("BANK_TIME_ZONE", "Europe/Berlin"),
		},
		Approval: ApprovalConfig{
			GenericTTL:       getDurationEnv("APPROVAL_GENERIC_TTL", 5*time.Minute),
			PaymentCreateTTL: getDurationEnv("APPROVAL_PAYMENT_CREATE_TTL", 15*time.Minute),
			PaymentUpdateTTL: getDurationEnv("APPROVAL_PAYMENT_UPDATE_TTL", 30*time.Minute),
			PaymentCancelTTL: getDurationEnv("APPROVAL_PAYMENT_CANCEL_TTL", 30*time.Minute),
			AccountCloseTTL:  getDurationEnv("APPROVAL_ACCOUNT_CLOSE_TTL", 5*time.Minute),
		},
		Scheduler: SchedulerConfig{
			Enabled:             getBoolEnv("SCHEDULER_ENABLED", true),
			PaymentLockAt:       getEnv("SCHEDULER_PAYMENT_LOCK_AT", "00:50"),
			PaymentExecuteAt:    getEnv("SCHEDULER_PAYMENT_EXECUTE_AT", "01:00"),
			InterestAt:          getEnv("SCHEDULER_INTEREST_AT", "00:05"),
			AuditPurgeAt:        getEnv("SCHEDULER_AUDIT_PURGE_AT", "03:30"),
			ApprovalSweepPeriod: getDurationEnv("SCHEDULER_APPROVAL_SWEEP_PERIOD", time.Minute),
			TickInterval:        getDurationEnv("SCHEDULER_TICK_INTERVAL", 30*time.Second),
			AuditRetention:      getDurationEnv("AUDIT_RETENTION", 400*24*time.Hour),
		},
		Security: SecurityConfig{
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 5),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 10),
		},
	}

	loc, err := time.LoadLocation(config.Bank.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid BANK_TIME_ZONE %q: %w", config.Bank.TimeZone, err)
	}
	config.Bank.Location = loc

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.JWT.PublicKey, err = config.loadJWTPublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to load JWT public key: %w", err)
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

// TTLFor returns the challenge lifetime for an approval kind. Unknown kinds
// get the generic lifetime.
func (c *ApprovalConfig) TTLFor(kind string) time.Duration {
	switch kind {
	case "PAYMENT_CREATE":
		return c.PaymentCreateTTL
	case "PAYMENT_UPDATE":
		return c.PaymentUpdateTTL
	case "PAYMENT_CANCEL":
		return c.PaymentCancelTTL
	case "ACCOUNT_CLOSE":
		return c.AccountCloseTTL
	default:
		return c.GenericTTL
	}
}

func (c *Config) validate() error {
	if len(c.Bank.CountryCode) != 2 || strings.ToUpper(c.Bank.CountryCode) != c.Bank.CountryCode {
		return fmt.Errorf("BANK_COUNTRY_CODE must be two upper-case letters, got %q", c.Bank.CountryCode)
	}
	if len(c.Bank.BankCode) != 8 {
		return fmt.Errorf("BANK_CODE must be 8 digits, got %q", c.Bank.BankCode)
	}
	for _, r := range c.Bank.BankCode {
		if r < '0' || r > '9' {
			return fmt.Errorf("BANK_CODE must be 8 digits, got %q", c.Bank.BankCode)
		}
	}
	for _, hhmm := range []string{c.Scheduler.PaymentLockAt, c.Scheduler.PaymentExecuteAt, c.Scheduler.InterestAt, c.Scheduler.AuditPurgeAt} {
		if _, _, err := ParseClock(hhmm); err != nil {
			return err
		}
	}
	return nil
}

// ParseClock parses a wall-clock time in HH:MM form.
func ParseClock(hhmm string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q: %w", hhmm, err)
	}
	return t.Hour(), t.Minute(), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadJWTPublicKey reads the base64-encoded PEM public key of the token
// issuer. Outside production a missing key disables bearer authentication.
func (c *Config) loadJWTPublicKey() (*rsa.PublicKey, error) {
	publicKeyB64 := os.Getenv("JWT_PUBLIC_KEY")
	if publicKeyB64 == "" {
		if c.IsProduction() {
			return nil, fmt.Errorf("JWT_PUBLIC_KEY environment variable must be set in production environments")
		}
		slog.Warn("JWT_PUBLIC_KEY not set, bearer authentication will reject every request")
		return nil, nil
	}

	pemBytes, err := base64.StdEncoding.DecodeString(publicKeyB64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JWT_PUBLIC_KEY: %w", err)
	}

	return jwt.ParseRSAPublicKeyFromPEM(pemBytes)
}

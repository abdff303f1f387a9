package services

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"ledger-engine/internal/clock"
	"ledger-engine/internal/config"
	"ledger-engine/internal/database"
	"ledger-engine/internal/models"
	"ledger-engine/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

var (
	keysOnce sync.Once
	testKeys [2]*rsa.PrivateKey
)

// deviceKey returns one of two RSA keys shared by the package tests.
func deviceKey(t *testing.T, i int) *rsa.PrivateKey {
	t.Helper()
	keysOnce.Do(func() {
		for n := range testKeys {
			key, err := rsa.GenerateKey(rand.Reader, 2048)
			if err != nil {
				panic(err)
			}
			testKeys[n] = key
		}
	})
	return testKeys[i]
}

func publicKeyPEM(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("failed to marshal public key: %v", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

// signMessage renders "<payload>|<base64 signature>" the way the mobile app does.
func signMessage(t *testing.T, key *rsa.PrivateKey, payload string) string {
	t.Helper()
	digest := sha256.Sum256([]byte(payload))
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	return payload + "|" + base64.StdEncoding.EncodeToString(sig)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv wires the services on top of an in-memory database.
type testEnv struct {
	t        *testing.T
	ctx      context.Context
	db       *database.DB
	clock    *clock.Fixed
	location *time.Location

	accountRepo     repositories.AccountRepositoryInterface
	membershipRepo  repositories.MembershipRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	paymentRepo     repositories.PaymentRepositoryInterface
	approvalRepo    repositories.ApprovalRequestRepositoryInterface
	deviceRepo      repositories.MobileDeviceRepositoryInterface
	auditRepo       repositories.AuditLogRepositoryInterface
	ledgerRepo      repositories.LedgerRepositoryInterface

	audit     AuditServiceInterface
	metrics   MetricsRecorderInterface
	verifier  SignatureVerifierInterface
	devices   DeviceServiceInterface
	approvals ApprovalServiceInterface
	payments  PaymentServiceInterface
	accounts  AccountServiceInterface
	ledger    LedgerServiceInterface
	interest  InterestServiceInterface
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	db := database.SetupTestDB(t)
	t.Cleanup(func() { database.CleanupTestDB(t, db) })

	env := &testEnv{
		t:        t,
		ctx:      context.Background(),
		db:       db,
		clock:    clock.NewFixed(now),
		location: loc,
	}

	bank := &config.BankConfig{
		CountryCode:     "DE",
		BankCode:        "37040044",
		DefaultCurrency: "EUR",
		TimeZone:        "Europe/Berlin",
		Location:        loc,
	}
	approvalCfg := &config.ApprovalConfig{
		GenericTTL:       5 * time.Minute,
		PaymentCreateTTL: 15 * time.Minute,
		PaymentUpdateTTL: 30 * time.Minute,
		PaymentCancelTTL: 30 * time.Minute,
		AccountCloseTTL:  5 * time.Minute,
	}
	schedule := &config.SchedulerConfig{
		PaymentLockAt:    "00:50",
		PaymentExecuteAt: "01:00",
		InterestAt:       "00:05",
	}

	logger := discardLogger()

	env.accountRepo = repositories.NewAccountRepository(db.DB)
	env.membershipRepo = repositories.NewMembershipRepository(db.DB)
	env.transactionRepo = repositories.NewTransactionRepository(db.DB)
	env.paymentRepo = repositories.NewPaymentRepository(db.DB)
	env.approvalRepo = repositories.NewApprovalRequestRepository(db.DB)
	env.deviceRepo = repositories.NewMobileDeviceRepository(db.DB)
	env.auditRepo = repositories.NewAuditLogRepository(db.DB)
	env.ledgerRepo = repositories.NewLedgerRepository(db.DB, repositories.NewKeyedLock())
	userRepo := repositories.NewUserRepository(db.DB)

	env.audit = NewAuditService(env.auditRepo, logger)
	env.metrics = NewPrometheusMetrics(prometheus.NewRegistry())
	env.verifier = NewSignatureVerifier(env.deviceRepo, env.clock, logger)
	env.devices = NewDeviceService(env.deviceRepo, env.audit, env.clock, logger)
	env.approvals = NewApprovalService(env.approvalRepo, env.deviceRepo, env.verifier, env.audit, env.metrics, approvalCfg, env.clock, logger)
	env.payments = NewPaymentService(env.paymentRepo, env.accountRepo, env.membershipRepo, env.ledgerRepo, env.approvals, env.audit, env.metrics, env.clock, bank, schedule, logger)
	env.accounts = NewAccountService(env.accountRepo, env.membershipRepo, env.transactionRepo, userRepo, env.ledgerRepo, env.approvals, env.audit, env.clock, bank, logger)
	env.ledger = NewLedgerService(env.ledgerRepo, env.accountRepo, env.transactionRepo, env.audit, env.metrics, logger)
	env.interest = NewInterestService(env.accountRepo, env.ledgerRepo, env.audit, env.metrics, env.clock, loc, logger)

	for _, kind := range []string{models.ApprovalKindPaymentCreate, models.ApprovalKindPaymentUpdate, models.ApprovalKindPaymentCancel} {
		env.approvals.RegisterHandler(kind, env.payments)
	}
	env.approvals.RegisterHandler(models.ApprovalKindAccountClose, env.accounts)

	return env
}

func (e *testEnv) customer() (*models.User, Actor) {
	user := database.CreateTestUser(e.t, e.db, gofakeit.Email())
	return user, Actor{UserID: user.ID, Role: user.Role, IPAddress: gofakeit.IPv4Address()}
}

func (e *testEnv) admin() Actor {
	user := database.CreateTestAdminUser(e.t, e.db, gofakeit.Email())
	return Actor{UserID: user.ID, Role: user.Role, IPAddress: gofakeit.IPv4Address()}
}

func (e *testEnv) account(owner *models.User, balance string) *models.Account {
	return database.CreateTestAccount(e.t, e.db, owner, balance)
}

func (e *testEnv) share(account *models.Account, user *models.User, role string) {
	e.t.Helper()
	if err := e.membershipRepo.Create(e.ctx, &models.AccountMembership{
		AccountID: account.ID,
		UserID:    user.ID,
		Role:      role,
	}); err != nil {
		e.t.Fatalf("failed to share account: %v", err)
	}
}

// trustDevice registers key as the actor's active device.
func (e *testEnv) trustDevice(actor Actor, key *rsa.PrivateKey) *models.MobileDevice {
	e.t.Helper()
	device, err := e.devices.RegisterDevice(e.ctx, actor, "test phone", publicKeyPEM(e.t, key))
	if err != nil {
		e.t.Fatalf("failed to register device: %v", err)
	}
	return device
}

func (e *testEnv) balance(accountID uuid.UUID) decimal.Decimal {
	e.t.Helper()
	var account models.Account
	if err := e.db.Where("id = ?", accountID).First(&account).Error; err != nil {
		e.t.Fatalf("failed to load account: %v", err)
	}
	return account.Balance
}

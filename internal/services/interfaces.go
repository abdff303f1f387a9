package services

import (
	"context"
	"time"

	"ledger-engine/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerServiceInterface exposes direct postings for administrative and
// internal callers.
type LedgerServiceInterface interface {
	Credit(ctx context.Context, actor Actor, accountID uuid.UUID, amount decimal.Decimal, entry models.LedgerEntry) (*models.Transaction, error)
	Debit(ctx context.Context, actor Actor, accountID uuid.UUID, amount decimal.Decimal, entry models.LedgerEntry) (*models.Transaction, error)
	VerifyHistory(ctx context.Context, actor Actor, accountID uuid.UUID) (*HistoryCheck, error)
}

// AccountServiceInterface defines account-related business operations
type AccountServiceInterface interface {
	ApprovedActionHandler
	CreateAccount(ctx context.Context, actor Actor, input CreateAccountInput) (*models.Account, error)
	GetAccount(ctx context.Context, actor Actor, accountID uuid.UUID) (*models.Account, error)
	ListAccountsForUser(ctx context.Context, actor Actor) ([]models.Account, error)
	ListAccounts(ctx context.Context, actor Actor, filters models.AccountFilters, offset, limit int) ([]models.Account, int64, error)
	UpdateAccount(ctx context.Context, actor Actor, accountID uuid.UUID, input UpdateAccountInput) (*models.Account, error)
	StageAccountClosure(ctx context.Context, actor Actor, accountID uuid.UUID) (string, error)
	CloseAccount(ctx context.Context, actor Actor, accountID uuid.UUID) error
	ListTransactions(ctx context.Context, actor Actor, accountID uuid.UUID, query TransactionQuery) ([]models.Transaction, int64, error)
	UpdateTransactionNote(ctx context.Context, actor Actor, transactionID uuid.UUID, note string) (*models.Transaction, error)
}

// SignatureVerifierInterface checks messages signed by a user's mobile device
type SignatureVerifierInterface interface {
	Verify(ctx context.Context, userID uuid.UUID, signedMessage string) bool
	VerifyDevice(ctx context.Context, userID uuid.UUID, signedMessage string) (*models.MobileDevice, bool)
}

// DeviceServiceInterface manages the mobile devices trusted to approve requests
type DeviceServiceInterface interface {
	RegisterDevice(ctx context.Context, actor Actor, label, publicKey string) (*models.MobileDevice, error)
	RevokeDevice(ctx context.Context, actor Actor, deviceID uuid.UUID) error
	GetActiveDevice(ctx context.Context, userID uuid.UUID) (*models.MobileDevice, error)
	ListDevices(ctx context.Context, actor Actor) ([]models.MobileDevice, error)
}

// ApprovedActionHandler performs the action a request was approved for.
type ApprovedActionHandler interface {
	HandleApproved(ctx context.Context, request *models.PendingApprovalRequest) error
}

// ApprovalServiceInterface runs the mobile approval protocol
type ApprovalServiceInterface interface {
	RegisterHandler(kind string, handler ApprovedActionHandler)
	CreateChallenge(ctx context.Context, input ChallengeInput) (string, error)
	Inspect(ctx context.Context, signedMessage string) (*InspectResult, error)
	Resolve(ctx context.Context, signedMessage, outcome string) (*ResolveResult, error)
	ListPending(ctx context.Context, userID uuid.UUID) ([]models.PendingApprovalRequest, error)
	ExpireStale(ctx context.Context) (int64, error)
}

// PaymentServiceInterface stages payments for approval and executes them
type PaymentServiceInterface interface {
	ApprovedActionHandler
	StagePaymentCreation(ctx context.Context, actor Actor, input PaymentInput) (string, error)
	StagePaymentUpdate(ctx context.Context, actor Actor, changes models.PaymentUpdatePayload) (string, error)
	StagePaymentCancellation(ctx context.Context, actor Actor, paymentID uuid.UUID) (string, error)
	GetPayment(ctx context.Context, actor Actor, paymentID uuid.UUID) (*models.Payment, error)
	ListPayments(ctx context.Context, actor Actor, filters models.PaymentFilters) ([]models.Payment, int64, error)
	ListPendingPayments(ctx context.Context, actor Actor, accountID uuid.UUID) ([]models.Payment, error)
	AdminCreatePayment(ctx context.Context, actor Actor, input PaymentInput) (*models.Payment, error)
	AdminUpdatePayment(ctx context.Context, actor Actor, changes models.PaymentUpdatePayload) (*models.Payment, error)
	AdminCancelPayment(ctx context.Context, actor Actor, paymentID uuid.UUID) error
	LockDuePayments(ctx context.Context, now time.Time) (int64, error)
	RunExecutionBatch(ctx context.Context, now time.Time) (*BatchResult, error)
}

// InterestServiceInterface accrues daily interest and settles it quarterly
type InterestServiceInterface interface {
	AccrueDaily(ctx context.Context, today time.Time) (*InterestRunResult, error)
	SettleQuarterly(ctx context.Context) (*InterestRunResult, error)
	RunNightly(ctx context.Context, now time.Time) (*InterestRunResult, error)
}

// AuditServiceInterface records and reads the audit trail. Record never
// fails the caller.
type AuditServiceInterface interface {
	Record(ctx context.Context, log *models.AuditLog)
	GetUserActivity(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
	GetResourceHistory(ctx context.Context, resource, resourceID string, offset, limit int) ([]*models.AuditLog, int64, error)
	PurgeOlderThan(ctx context.Context, retention time.Duration) (int64, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

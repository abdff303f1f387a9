package repositories

import (
	"context"
	"time"

	"ledger-engine/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepositoryInterface defines the contract for account repository operations.
// Balance-changing writes live on LedgerRepositoryInterface.
type AccountRepositoryInterface interface {
	CreateWithOwner(ctx context.Context, account *models.Account, ownerID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetByIBAN(ctx context.Context, iban string) (*models.Account, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Account, error)
	ListWithFilters(ctx context.Context, filters models.AccountFilters, offset, limit int) ([]models.Account, int64, error)
	ListIDsByStatus(ctx context.Context, status string) ([]uuid.UUID, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	IBANExists(ctx context.Context, iban string) (bool, error)
}

// MembershipRepositoryInterface looks up who may act on an account
type MembershipRepositoryInterface interface {
	Create(ctx context.Context, membership *models.AccountMembership) error
	Get(ctx context.Context, accountID, userID uuid.UUID) (*models.AccountMembership, error)
	ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]models.AccountMembership, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ListWithFilters(ctx context.Context, filters models.TransactionFilters) ([]models.Transaction, int64, error)
	GetLatestByAccountID(ctx context.Context, accountID uuid.UUID) (*models.Transaction, error)
	SumByAccountID(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
	UpdateNote(ctx context.Context, id uuid.UUID, note string) error
}

// PaymentRepositoryInterface defines the contract for payment persistence.
// Every state change is a conditional update on the current status.
type PaymentRepositoryInterface interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListWithFilters(ctx context.Context, filters models.PaymentFilters) ([]models.Payment, int64, error)
	UpdateModifiable(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Cancel(ctx context.Context, id uuid.UUID, at time.Time) error
	Lock(ctx context.Context, id uuid.UUID, at time.Time) error
	LockDue(ctx context.Context, today, at time.Time) (int64, error)
	ListDueIDs(ctx context.Context, today time.Time) ([]uuid.UUID, error)
	MarkFailed(ctx context.Context, id uuid.UUID, reason string, at time.Time) error
}

// ApprovalRequestRepositoryInterface persists mobile approval challenges
type ApprovalRequestRepositoryInterface interface {
	CreateReplacingPending(ctx context.Context, request *models.PendingApprovalRequest) (invalidated int64, err error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PendingApprovalRequest, error)
	GetByCodeHash(ctx context.Context, codeHash string) (*models.PendingApprovalRequest, error)
	ListPendingByUserID(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.PendingApprovalRequest, error)
	CountPending(ctx context.Context, userID uuid.UUID, kind string) (int64, error)
	Resolve(ctx context.Context, id uuid.UUID, status string, deviceID *uuid.UUID, at time.Time) error
	RecordActionResult(ctx context.Context, id uuid.UUID, actionStatus, failureReason string) error
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// MobileDeviceRepositoryInterface is the mobile trust store's device directory
type MobileDeviceRepositoryInterface interface {
	Register(ctx context.Context, device *models.MobileDevice) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MobileDevice, error)
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*models.MobileDevice, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.MobileDevice, error)
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) error
	TouchLastUsed(ctx context.Context, id uuid.UUID, at time.Time) error
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
}

// AuditLogRepositoryInterface defines the contract for audit log repository operations
type AuditLogRepositoryInterface interface {
	Create(ctx context.Context, log *models.AuditLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AuditLog, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
	GetByAction(ctx context.Context, action string, offset, limit int) ([]*models.AuditLog, int64, error)
	GetByResource(ctx context.Context, resource, resourceID string, offset, limit int) ([]*models.AuditLog, int64, error)
	GetByTimeRange(ctx context.Context, startTime, endTime time.Time, offset, limit int) ([]*models.AuditLog, int64, error)
	DeleteOlderThan(ctx context.Context, duration time.Duration) (int64, error)
}

// LedgerRepositoryInterface hosts every balance-changing unit of work. Each
// call holds the account's in-process lock and its row lock for the whole
// read-modify-append sequence.
type LedgerRepositoryInterface interface {
	Credit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, entry models.LedgerEntry) (*models.Transaction, error)
	Debit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, entry models.LedgerEntry) (*models.Transaction, error)
	ExecutePayment(ctx context.Context, paymentID uuid.UUID, at time.Time) (*models.Transaction, error)
	AccrueInterest(ctx context.Context, accountID uuid.UUID, today time.Time) (daily decimal.Decimal, applied bool, err error)
	SettleInterest(ctx context.Context, accountID uuid.UUID) (*models.Transaction, error)
	CloseAccount(ctx context.Context, accountID uuid.UUID, at time.Time) (cancelledPayments int64, err error)
}

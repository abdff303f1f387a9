package services

import (
	"encoding/json"
	"time"

	"ledger-engine/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID    uuid.UUID
	Role      string
	IPAddress string
	UserAgent string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// SystemActor is used by scheduled jobs.
var SystemActor = Actor{Role: models.RoleAdmin, IPAddress: "system", UserAgent: "scheduler"}

func (a Actor) userRef() *uuid.UUID {
	if a.UserID == uuid.Nil {
		return nil
	}
	id := a.UserID
	return &id
}

type CreateAccountInput struct {
	// OwnerID defaults to the actor. Only admins may open accounts for others.
	OwnerID      uuid.UUID
	Name         string
	Currency     string
	InterestRate decimal.Decimal
}

// UpdateAccountInput changes descriptive fields. Nil fields are untouched.
type UpdateAccountInput struct {
	Name         *string
	InterestRate *decimal.Decimal
}

// TransactionQuery selects a page of an account's history. From is
// inclusive, To exclusive.
type TransactionQuery struct {
	From   *time.Time
	To     *time.Time
	Kind   string
	Offset int
	Limit  int
}

type PaymentInput struct {
	AccountID     uuid.UUID
	ReceiverIBAN  string
	Amount        decimal.Decimal
	Message       string
	Note          string
	ExecutionType string
	ExecutionDate *time.Time
}

type ChallengeInput struct {
	UserID    uuid.UUID
	IPAddress string
	Kind      string
	Payload   any
}

// InspectResult is what the mobile device shows before the user decides.
type InspectResult struct {
	RequestID uuid.UUID       `json:"request_id"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// ResolveResult reports the resolved request. ActionErr is set when the
// request was approved but the approved action itself failed.
type ResolveResult struct {
	Request   *models.PendingApprovalRequest
	ActionErr error
}

type BatchResult struct {
	Locked   int64
	Executed int
	Failed   int
	Skipped  int
}

type InterestRunResult struct {
	Date     time.Time
	Accrued  int
	Settled  int
	Skipped  int
	Failed   int
	Total    decimal.Decimal
	Settling bool
}

// HistoryCheck compares an account balance with its transaction history.
type HistoryCheck struct {
	AccountID         uuid.UUID
	Balance           decimal.Decimal
	Sum               decimal.Decimal
	LatestBalance     *decimal.Decimal
	TransactionsTotal int64
	Consistent        bool
}

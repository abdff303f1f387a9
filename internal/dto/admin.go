package dto

import (
	"time"

	"ledger-engine/internal/models"

	"github.com/shopspring/decimal"
)

// LedgerPostingRequest books a manual credit or debit. Kind must fit the
// direction: INCOMING or INTEREST for credits, OUTGOING for debits.
type LedgerPostingRequest struct {
	Amount           string `json:"amount" validate:"required,positive_decimal"`
	Kind             string `json:"kind" validate:"required,oneof=INCOMING OUTGOING INTEREST"`
	CounterpartyIBAN string `json:"counterparty_iban,omitempty" validate:"omitempty,iban"`
	Message          string `json:"message,omitempty" validate:"max=140"`
	Note             string `json:"note,omitempty" validate:"max=500"`
}

// HistoryCheckResponse compares an account balance with its history
type HistoryCheckResponse struct {
	AccountID         string           `json:"account_id"`
	Balance           decimal.Decimal  `json:"balance"`
	Sum               decimal.Decimal  `json:"sum"`
	LatestBalance     *decimal.Decimal `json:"latest_balance_after,omitempty"`
	TransactionsTotal int64            `json:"transactions_total"`
	Consistent        bool             `json:"consistent"`
}

type JobStatus struct {
	Name    string    `json:"name"`
	NextRun time.Time `json:"next_run"`
	Running bool      `json:"running"`
}

type JobListResponse struct {
	Jobs []JobStatus `json:"jobs"`
}

// AuditLogListResponse represents a paginated list of audit entries
type AuditLogListResponse struct {
	Logs   []*models.AuditLog `json:"logs"`
	Total  int64              `json:"total"`
	Offset int                `json:"offset"`
	Limit  int                `json:"limit"`
}

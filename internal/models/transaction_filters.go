package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionFilters narrows an account's transaction history. StartDate is
// inclusive and EndDate exclusive.
type TransactionFilters struct {
	AccountID uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Kind      string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Offset    int
	Limit     int
}

// PaymentFilters narrows payment listings. An empty Status matches all.
type PaymentFilters struct {
	AccountID     uuid.UUID
	Status        string
	ExecutionType string
	Offset        int
	Limit         int
}

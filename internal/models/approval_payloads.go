package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentCreatePayload is the staged form of a payment awaiting approval.
type PaymentCreatePayload struct {
	AccountID     uuid.UUID       `json:"account_id"`
	ReceiverIBAN  string          `json:"receiver_iban"`
	Amount        decimal.Decimal `json:"amount"`
	Message       string          `json:"message,omitempty"`
	Note          string          `json:"note,omitempty"`
	ExecutionType string          `json:"execution_type"`
	ExecutionDate *time.Time      `json:"execution_date,omitempty"`
}

// PaymentUpdatePayload carries the changed fields of a pending payment. Nil
// fields are left untouched.
type PaymentUpdatePayload struct {
	PaymentID     uuid.UUID        `json:"payment_id"`
	ReceiverIBAN  *string          `json:"receiver_iban,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Message       *string          `json:"message,omitempty"`
	Note          *string          `json:"note,omitempty"`
	ExecutionDate *time.Time       `json:"execution_date,omitempty"`
}

type PaymentCancelPayload struct {
	PaymentID uuid.UUID `json:"payment_id"`
}

type AccountClosePayload struct {
	AccountID uuid.UUID `json:"account_id"`
}

// GenericPayload is shown to the user on the device for free-form confirmations.
type GenericPayload struct {
	Description string `json:"description"`
}

package dto

import "ledger-engine/internal/models"

// CreatePaymentRequest stages a new payment. ExecutionDate is a calendar date
// in the bank time zone and is required for NORMAL payments.
type CreatePaymentRequest struct {
	AccountID     string `json:"account_id" validate:"required,uuid"`
	ReceiverIBAN  string `json:"receiver_iban" validate:"required,iban"`
	Amount        string `json:"amount" validate:"required,positive_decimal"`
	Message       string `json:"message,omitempty" validate:"max=140"`
	Note          string `json:"note,omitempty" validate:"max=500"`
	ExecutionType string `json:"execution_type" validate:"required,execution_type"`
	ExecutionDate string `json:"execution_date,omitempty" validate:"omitempty,date"`
}

// UpdatePaymentRequest carries the fields to change on a pending payment
type UpdatePaymentRequest struct {
	ReceiverIBAN  *string `json:"receiver_iban,omitempty" validate:"omitempty,iban"`
	Amount        *string `json:"amount,omitempty" validate:"omitempty,positive_decimal"`
	Message       *string `json:"message,omitempty" validate:"omitempty,max=140"`
	Note          *string `json:"note,omitempty" validate:"omitempty,max=500"`
	ExecutionDate *string `json:"execution_date,omitempty" validate:"omitempty,date"`
}

type PaymentListResponse struct {
	Payments []models.Payment `json:"payments"`
	Total    int64            `json:"total"`
	Offset   int              `json:"offset"`
	Limit    int              `json:"limit"`
}

package dto

import (
	"ledger-engine/internal/models"
)

// CreateAccountRequest opens an account. OwnerID and InterestRate are
// honoured for admins only.
type CreateAccountRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Currency     string `json:"currency,omitempty" validate:"omitempty,currency"`
	OwnerID      string `json:"owner_id,omitempty" validate:"omitempty,uuid"`
	InterestRate string `json:"interest_rate,omitempty" validate:"omitempty,interest_rate"`
}

// UpdateAccountRequest changes descriptive fields. Omitted fields are kept.
type UpdateAccountRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	InterestRate *string `json:"interest_rate,omitempty" validate:"omitempty,interest_rate"`
}

// AccountListResponse represents a paginated list of accounts
type AccountListResponse struct {
	Accounts []models.Account `json:"accounts"`
	Total    int64            `json:"total"`
	Offset   int              `json:"offset"`
	Limit    int              `json:"limit"`
}

// ChallengeResponse is returned when an operation waits for mobile approval.
// The verification code is entered into the mobile app, which signs it.
type ChallengeResponse struct {
	VerificationCode string `json:"verification_code"`
	Kind             string `json:"kind"`
	Message          string `json:"message"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}

package dto

import "ledger-engine/internal/models"

// TransactionListResponse represents a paginated list of transactions
type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	Offset       int                  `json:"offset"`
	Limit        int                  `json:"limit"`
}

type UpdateTransactionNoteRequest struct {
	Note string `json:"note" validate:"max=500"`
}

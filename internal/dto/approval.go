package dto

import (
	"ledger-engine/internal/models"
)

// SignedMessageRequest carries a message signed by the mobile device, e.g.
// "{REQUEST}<code>" followed by its base64 signature.
type SignedMessageRequest struct {
	SignedMessage string `json:"signed_message" validate:"required,max=4096"`
}

type ResolveApprovalRequest struct {
	SignedMessage string `json:"signed_message" validate:"required,max=4096"`
	Outcome       string `json:"outcome" validate:"required,oneof=APPROVED REJECTED"`
}

// ResolveApprovalResponse reports the resolved request. ActionError is set
// when the request was approved but the approved action failed.
type ResolveApprovalResponse struct {
	Request     *models.PendingApprovalRequest `json:"request"`
	ActionError string                         `json:"action_error,omitempty"`
}

// GenericChallengeRequest asks the user to confirm a free-form statement on
// their device.
type GenericChallengeRequest struct {
	Description string `json:"description" validate:"required,max=255"`
}

type PendingApprovalsResponse struct {
	Requests []models.PendingApprovalRequest `json:"requests"`
}

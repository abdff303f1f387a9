package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ApprovalKindGeneric       = "GENERIC"
	ApprovalKindPaymentCreate = "PAYMENT_CREATE"
	ApprovalKindPaymentUpdate = "PAYMENT_UPDATE"
	ApprovalKindPaymentCancel = "PAYMENT_CANCEL"
	ApprovalKindAccountClose  = "ACCOUNT_CLOSE"

	ApprovalStatusPending  = "PENDING"
	ApprovalStatusApproved = "APPROVED"
	ApprovalStatusRejected = "REJECTED"
	ApprovalStatusExpired  = "EXPIRED"

	ActionStatusSucceeded = "SUCCEEDED"
	ActionStatusFailed    = "FAILED"
)

var (
	ErrInvalidApprovalKind   = errors.New("invalid approval kind")
	ErrInvalidApprovalStatus = errors.New("invalid approval status")
)

// PendingApprovalRequest is a one-time challenge that the user resolves from
// their registered mobile device. Only a digest of the verification code is
// stored.
type PendingApprovalRequest struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_approval_user_kind_status" json:"user_id"`
	Kind          string     `gorm:"type:varchar(30);not null;index:idx_approval_user_kind_status" json:"kind"`
	Status        string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_approval_user_kind_status" json:"status"`
	CodeHash      string     `gorm:"type:varchar(128);uniqueIndex;not null" json:"-"`
	Payload       string     `gorm:"type:text" json:"-"`
	DeviceID      *uuid.UUID `gorm:"type:uuid" json:"device_id,omitempty"`
	IPAddress     string     `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	ActionStatus  string     `gorm:"type:varchar(20)" json:"action_status,omitempty"`
	FailureReason string     `gorm:"type:varchar(255)" json:"failure_reason,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	ExpiresAt     time.Time  `gorm:"not null;index" json:"expires_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

func (r *PendingApprovalRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	if r.Status == "" {
		r.Status = ApprovalStatusPending
	}

	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	return r.Validate()
}

func (r *PendingApprovalRequest) Validate() error {
	if r.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if !IsValidApprovalKind(r.Kind) {
		return ErrInvalidApprovalKind
	}

	if !IsValidApprovalStatus(r.Status) {
		return ErrInvalidApprovalStatus
	}

	if r.CodeHash == "" {
		return errors.New("code hash is required")
	}

	if r.ExpiresAt.IsZero() {
		return errors.New("expiry is required")
	}

	return nil
}

func (r *PendingApprovalRequest) IsPending() bool {
	return r.Status == ApprovalStatusPending
}

// IsExpired reports whether the challenge can no longer be resolved at now.
func (r *PendingApprovalRequest) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// SetPayload stores v as the JSON payload of the request.
func (r *PendingApprovalRequest) SetPayload(v any) error {
	if v == nil {
		r.Payload = ""
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode approval payload: %w", err)
	}
	r.Payload = string(data)
	return nil
}

// DecodePayload unmarshals the JSON payload into v.
func (r *PendingApprovalRequest) DecodePayload(v any) error {
	if r.Payload == "" {
		return errors.New("approval request has no payload")
	}
	if err := json.Unmarshal([]byte(r.Payload), v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", r.Kind, err)
	}
	return nil
}

func (r *PendingApprovalRequest) TableName() string {
	return "pending_approval_requests"
}

func IsValidApprovalKind(kind string) bool {
	switch kind {
	case ApprovalKindGeneric, ApprovalKindPaymentCreate, ApprovalKindPaymentUpdate,
		ApprovalKindPaymentCancel, ApprovalKindAccountClose:
		return true
	default:
		return false
	}
}

func IsValidApprovalStatus(status string) bool {
	switch status {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected, ApprovalStatusExpired:
		return true
	default:
		return false
	}
}

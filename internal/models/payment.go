package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusExecuted  = "EXECUTED"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusCancelled = "CANCELLED"

	ExecutionTypeInstant = "INSTANT"
	ExecutionTypeNormal  = "NORMAL"

	PaymentFailureInsufficientFunds = "insufficient funds"
	PaymentFailureAccountNotActive  = "account is not active"
)

var (
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidExecutionType = errors.New("invalid execution type")
	ErrExecutionDateMissing = errors.New("execution date is required for NORMAL payments")
	ErrPaymentNotModifiable = errors.New("payment can no longer be modified")
)

// Payment is an outgoing transfer order. NORMAL payments wait for their
// execution date; INSTANT payments execute as soon as they are approved.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	ReceiverIBAN  string          `gorm:"column:receiver_iban;type:varchar(34);not null" json:"receiver_iban"`
	Amount        decimal.Decimal `gorm:"type:decimal(19,4);not null" json:"amount"`
	Message       string          `gorm:"type:varchar(140)" json:"message,omitempty"`
	Note          string          `gorm:"type:text" json:"note,omitempty"`
	ExecutionType string          `gorm:"type:varchar(10);not null" json:"execution_type"`
	ExecutionDate *time.Time      `gorm:"index" json:"execution_date,omitempty"`
	Status        string          `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Locked        bool            `gorm:"not null;default:false" json:"locked"`
	LockedAt      *time.Time      `json:"locked_at,omitempty"`
	FailureReason string          `gorm:"type:varchar(255)" json:"failure_reason,omitempty"`
	TransactionID *uuid.UUID      `gorm:"type:uuid" json:"transaction_id,omitempty"`
	CreatedBy     uuid.UUID       `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
	ExecutedAt    *time.Time      `json:"executed_at,omitempty"`

	Account *Account `gorm:"foreignKey:AccountID" json:"-"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	if p.Status == "" {
		p.Status = PaymentStatusPending
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	p.Amount = p.Amount.Round(MoneyScale)
	return p.Validate()
}

func (p *Payment) AfterFind(tx *gorm.DB) error {
	p.Amount = p.Amount.Round(MoneyScale)
	return nil
}

func (p *Payment) Validate() error {
	if p.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if !ValidateIBAN(p.ReceiverIBAN) {
		return ErrInvalidIBAN
	}

	if !p.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}

	if !IsValidExecutionType(p.ExecutionType) {
		return ErrInvalidExecutionType
	}

	if p.ExecutionType == ExecutionTypeNormal && p.ExecutionDate == nil {
		return ErrExecutionDateMissing
	}

	if !IsValidPaymentStatus(p.Status) {
		return ErrInvalidPaymentStatus
	}

	if len(p.Message) > MaxMessageLength {
		return errors.New("message is too long")
	}

	if len(p.Note) > MaxNoteLength {
		return ErrNoteTooLong
	}

	return nil
}

// CanBeModified reports whether the payment may still be updated or
// cancelled by its owner.
func (p *Payment) CanBeModified() bool {
	return p.ExecutionType == ExecutionTypeNormal && !p.Locked && p.Status == PaymentStatusPending
}

func (p *Payment) IsPending() bool {
	return p.Status == PaymentStatusPending
}

func (p *Payment) IsInstant() bool {
	return p.ExecutionType == ExecutionTypeInstant
}

// IsDue reports whether a NORMAL payment's execution date is on or before
// today. Both are civil dates stored as midnight UTC.
func (p *Payment) IsDue(today time.Time) bool {
	return p.ExecutionDate != nil && !p.ExecutionDate.After(today)
}

func (p *Payment) TableName() string {
	return "payments"
}

func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusExecuted, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	default:
		return false
	}
}

func IsValidExecutionType(executionType string) bool {
	switch executionType {
	case ExecutionTypeInstant, ExecutionTypeNormal:
		return true
	default:
		return false
	}
}

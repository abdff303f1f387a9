package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionKindOutgoing = "OUTGOING"
	TransactionKindIncoming = "INCOMING"
	TransactionKindInterest = "INTEREST"

	MaxNoteLength    = 500
	MaxMessageLength = 140
)

var (
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")
	ErrTransactionSign        = errors.New("transaction amount sign does not match kind")
	ErrNoteTooLong            = errors.New("note is too long")
)

// Transaction is an immutable ledger entry. Amount is signed: negative for
// OUTGOING, positive otherwise. BalanceAfter is the account balance right
// after this entry was applied. Sequence numbers an account's entries from 1
// in append order. Note is the only field that may change.
type Transaction struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID        uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_transactions_account_seq" json:"account_id"`
	Sequence         int64           `gorm:"not null;uniqueIndex:idx_transactions_account_seq" json:"sequence"`
	Kind             string          `gorm:"type:varchar(20);not null" json:"kind"`
	Amount           decimal.Decimal `gorm:"type:decimal(19,4);not null" json:"amount"`
	BalanceAfter     decimal.Decimal `gorm:"type:decimal(19,4);not null" json:"balance_after"`
	CounterpartyIBAN string          `gorm:"column:counterparty_iban;type:varchar(34)" json:"counterparty_iban,omitempty"`
	Message          string          `gorm:"type:varchar(140)" json:"message,omitempty"`
	Note             string          `gorm:"type:text" json:"note,omitempty"`
	Reference        string          `gorm:"type:varchar(100);index" json:"reference"`
	PaymentID        *uuid.UUID      `gorm:"type:uuid;index" json:"payment_id,omitempty"`
	CreatedAt        time.Time       `gorm:"not null;index" json:"created_at"`
}

// LedgerEntry describes the non-monetary side of a ledger posting.
type LedgerEntry struct {
	Kind             string
	CounterpartyIBAN string
	Message          string
	Note             string
	PaymentID        *uuid.UUID
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.Reference == "" {
		t.Reference = GenerateTransactionReference()
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	t.normalize()
	return t.Validate()
}

func (t *Transaction) AfterFind(tx *gorm.DB) error {
	t.normalize()
	return nil
}

func (t *Transaction) normalize() {
	t.Amount = t.Amount.Round(MoneyScale)
	t.BalanceAfter = t.BalanceAfter.Round(MoneyScale)
}

func (t *Transaction) Validate() error {
	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if !IsValidTransactionKind(t.Kind) {
		return ErrInvalidTransactionKind
	}

	if t.Amount.IsZero() {
		return ErrNonPositiveAmount
	}

	if t.Kind == TransactionKindOutgoing && t.Amount.IsPositive() {
		return ErrTransactionSign
	}
	if t.Kind != TransactionKindOutgoing && t.Amount.IsNegative() {
		return ErrTransactionSign
	}

	if t.BalanceAfter.IsNegative() {
		return ErrInvalidBalance
	}

	if len(t.Note) > MaxNoteLength {
		return ErrNoteTooLong
	}

	return nil
}

func (t *Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

func (t *Transaction) TableName() string {
	return "transactions"
}

func IsValidTransactionKind(kind string) bool {
	switch kind {
	case TransactionKindOutgoing, TransactionKindIncoming, TransactionKindInterest:
		return true
	default:
		return false
	}
}

func GenerateTransactionReference() string {
	return "TXN-" + uuid.New().String()[:8] + "-" + time.Now().UTC().Format("20060102150405")
}

package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccountStatusActive = "ACTIVE"
	AccountStatusClosed = "CLOSED"

	// MoneyScale is the number of fractional digits kept on every stored amount.
	MoneyScale = 4
	// SettlementScale is the precision of amounts actually booked to customers.
	SettlementScale = 2
)

var (
	ErrInvalidAccountStatus = errors.New("invalid account status")
	ErrInvalidBalance       = errors.New("balance cannot be negative")
	ErrInvalidInterestRate  = errors.New("interest rate must be in [0, 1)")
	ErrInvalidCurrency      = errors.New("currency must be a three-letter code")
	ErrAccountNotActive     = errors.New("account is not active")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrNonZeroBalance       = errors.New("account balance must be zero to close")
	ErrNonPositiveAmount    = errors.New("amount must be positive")
)

// Account is a customer ledger account. Balance only changes through ledger
// operations, each of which appends a Transaction.
type Account struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name                 string          `gorm:"type:varchar(100);not null" json:"name"`
	IBAN                 string          `gorm:"column:iban;type:varchar(34);uniqueIndex;not null" json:"iban"`
	Balance              decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0" json:"balance"`
	InterestRate         decimal.Decimal `gorm:"type:decimal(5,4);not null;default:0" json:"interest_rate"`
	AccruedInterest      decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0" json:"accrued_interest"`
	LastInterestCalcDate *time.Time      `json:"last_interest_calc_date,omitempty"`
	Status               string          `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	Currency             string          `gorm:"type:varchar(3);not null" json:"currency"`
	CreatedAt            time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"not null" json:"updated_at"`
	ClosedAt             *time.Time      `json:"closed_at,omitempty"`

	Memberships  []AccountMembership `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	Transactions []Transaction       `gorm:"foreignKey:AccountID" json:"-"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	if a.Status == "" {
		a.Status = AccountStatusActive
	}

	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	a.normalize()
	return a.Validate()
}

// AfterFind restores the fixed scale that some drivers drop on read.
func (a *Account) AfterFind(tx *gorm.DB) error {
	a.normalize()
	return nil
}

func (a *Account) normalize() {
	a.Balance = a.Balance.Round(MoneyScale)
	a.AccruedInterest = a.AccruedInterest.Round(MoneyScale)
	a.InterestRate = a.InterestRate.Round(4)
}

func (a *Account) Validate() error {
	if a.Name == "" {
		return errors.New("account name is required")
	}

	if !ValidateIBAN(a.IBAN) {
		return ErrInvalidIBAN
	}

	if !IsValidAccountStatus(a.Status) {
		return ErrInvalidAccountStatus
	}

	if a.Balance.IsNegative() {
		return ErrInvalidBalance
	}

	if err := ValidateInterestRate(a.InterestRate); err != nil {
		return err
	}

	if !IsValidCurrency(a.Currency) {
		return ErrInvalidCurrency
	}

	return nil
}

func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// CanDebit reports whether amount could be taken from the account right now.
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return a.IsActive() && amount.IsPositive() && a.Balance.GreaterThanOrEqual(amount)
}

// Debit takes amount from the in-memory balance. Callers persist the result
// together with the matching Transaction.
func (a *Account) Debit(amount decimal.Decimal) error {
	if !a.IsActive() {
		return ErrAccountNotActive
	}
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount).Round(MoneyScale)
	return nil
}

func (a *Account) Credit(amount decimal.Decimal) error {
	if !a.IsActive() {
		return ErrAccountNotActive
	}
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}

	a.Balance = a.Balance.Add(amount).Round(MoneyScale)
	return nil
}

// Close marks the account closed. Pending payments must be cancelled by the
// caller in the same unit of work.
func (a *Account) Close(at time.Time) error {
	if !a.IsActive() {
		return ErrAccountNotActive
	}
	if !a.Balance.IsZero() {
		return ErrNonZeroBalance
	}

	a.Status = AccountStatusClosed
	closedAt := at.UTC()
	a.ClosedAt = &closedAt
	return nil
}

func (a *Account) TableName() string {
	return "accounts"
}

func IsValidAccountStatus(status string) bool {
	switch status {
	case AccountStatusActive, AccountStatusClosed:
		return true
	default:
		return false
	}
}

func ValidateInterestRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ErrInvalidInterestRate
	}
	if !rate.Equal(rate.Round(4)) {
		return fmt.Errorf("%w: at most 4 fractional digits", ErrInvalidInterestRate)
	}
	return nil
}

func IsValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

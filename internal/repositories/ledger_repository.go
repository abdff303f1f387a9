package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger-engine/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNonZeroBalance    = errors.New("account balance is not zero")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidEntryKind  = errors.New("entry kind does not match ledger operation")
	// ErrPaymentFailed is returned when execution was refused and the payment
	// has been committed as FAILED. The underlying cause is wrapped as well.
	ErrPaymentFailed = errors.New("payment execution failed")
)

// ledgerRepository serializes balance changes per account. The in-process
// lock is always taken before the database transaction is opened; inside the
// transaction the account row is read FOR UPDATE so other processes queue
// behind it too.
type ledgerRepository struct {
	db    *gorm.DB
	locks *KeyedLock
}

func NewLedgerRepository(db *gorm.DB, locks *KeyedLock) LedgerRepositoryInterface {
	if locks == nil {
		locks = NewKeyedLock()
	}
	return &ledgerRepository{
		db:    db,
		locks: locks,
	}
}

func (r *ledgerRepository) Credit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, entry models.LedgerEntry) (*models.Transaction, error) {
	if entry.Kind == "" {
		entry.Kind = models.TransactionKindIncoming
	}
	if entry.Kind == models.TransactionKindOutgoing {
		return nil, ErrInvalidEntryKind
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var txn *models.Transaction
	err := r.withAccount(ctx, accountID, func(tx *gorm.DB, account *models.Account) error {
		if err := account.Credit(amount); err != nil {
			return translateAccountError(err)
		}

		var err error
		txn, err = appendEntry(tx, account, amount, entry, time.Now().UTC(), nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

func (r *ledgerRepository) Debit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, entry models.LedgerEntry) (*models.Transaction, error) {
	if entry.Kind == "" {
		entry.Kind = models.TransactionKindOutgoing
	}
	if entry.Kind != models.TransactionKindOutgoing {
		return nil, ErrInvalidEntryKind
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var txn *models.Transaction
	err := r.withAccount(ctx, accountID, func(tx *gorm.DB, account *models.Account) error {
		if err := account.Debit(amount); err != nil {
			return translateAccountError(err)
		}

		var err error
		txn, err = appendEntry(tx, account, amount.Neg(), entry, time.Now().UTC(), nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// ExecutePayment debits a PENDING payment's account and marks it EXECUTED in
// one unit of work. When the debit is refused the payment is committed as
// FAILED and the returned error wraps ErrPaymentFailed.
func (r *ledgerRepository) ExecutePayment(ctx context.Context, paymentID uuid.UUID, at time.Time) (*models.Transaction, error) {
	var snapshot models.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", paymentID).First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if !snapshot.IsPending() {
		return nil, ErrPaymentNotPending
	}

	at = at.UTC()
	var txn *models.Transaction
	var refused error

	err := r.withAccount(ctx, snapshot.AccountID, func(tx *gorm.DB, account *models.Account) error {
		var payment models.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", paymentID).
			First(&payment).Error; err != nil {
			return fmt.Errorf("failed to lock payment: %w", err)
		}
		if !payment.IsPending() {
			return ErrPaymentNotPending
		}

		if err := account.Debit(payment.Amount); err != nil {
			cause := translateAccountError(err)
			if err := tx.Model(&models.Payment{}).
				Where("id = ? AND status = ?", payment.ID, models.PaymentStatusPending).
				Updates(map[string]interface{}{
					"status":         models.PaymentStatusFailed,
					"failure_reason": failureReasonFor(cause),
					"updated_at":     at,
				}).Error; err != nil {
				return fmt.Errorf("failed to mark payment failed: %w", err)
			}
			refused = fmt.Errorf("%w: %w", ErrPaymentFailed, cause)
			return nil
		}

		entry := models.LedgerEntry{
			Kind:             models.TransactionKindOutgoing,
			CounterpartyIBAN: payment.ReceiverIBAN,
			Message:          payment.Message,
			Note:             payment.Note,
			PaymentID:        &payment.ID,
		}

		var err error
		txn, err = appendEntry(tx, account, payment.Amount.Neg(), entry, at, nil)
		if err != nil {
			return err
		}

		result := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", payment.ID, models.PaymentStatusPending).
			Updates(map[string]interface{}{
				"status":         models.PaymentStatusExecuted,
				"executed_at":    at,
				"transaction_id": txn.ID,
				"updated_at":     at,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to mark payment executed: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrPaymentNotPending
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	if refused != nil {
		return nil, refused
	}

	return txn, nil
}

// AccrueInterest adds one day of interest to an ACTIVE account unless it was
// already accrued for today or later.
func (r *ledgerRepository) AccrueInterest(ctx context.Context, accountID uuid.UUID, today time.Time) (decimal.Decimal, bool, error) {
	daily := decimal.Zero
	applied := false

	err := r.withAccount(ctx, accountID, func(tx *gorm.DB, account *models.Account) error {
		if !account.IsActive() {
			return nil
		}
		if account.LastInterestCalcDate != nil && !account.LastInterestCalcDate.Before(today) {
			return nil
		}

		daily = DailyInterest(account.Balance, account.InterestRate)
		accrued := account.AccruedInterest.Add(daily).Round(models.MoneyScale)

		if err := tx.Model(&models.Account{}).
			Where("id = ?", account.ID).
			Updates(map[string]interface{}{
				"accrued_interest":        accrued,
				"last_interest_calc_date": today,
				"updated_at":              time.Now().UTC(),
			}).Error; err != nil {
			return fmt.Errorf("failed to accrue interest: %w", err)
		}

		applied = true
		return nil
	})
	if err != nil {
		return decimal.Zero, false, err
	}

	return daily, applied, nil
}

// SettleInterest books accrued interest, rounded half-up to cents, as an
// INTEREST transaction and resets the accrual. Accounts with nothing to pay
// out return a nil transaction. An accrual that rounds to zero cents is
// carried over to the next settlement.
func (r *ledgerRepository) SettleInterest(ctx context.Context, accountID uuid.UUID) (*models.Transaction, error) {
	var txn *models.Transaction

	err := r.withAccount(ctx, accountID, func(tx *gorm.DB, account *models.Account) error {
		if !account.IsActive() || !account.AccruedInterest.IsPositive() {
			return nil
		}

		amount := account.AccruedInterest.Round(models.SettlementScale)
		if !amount.IsPositive() {
			return nil
		}

		if err := account.Credit(amount); err != nil {
			return translateAccountError(err)
		}
		account.AccruedInterest = decimal.Zero

		entry := models.LedgerEntry{Kind: models.TransactionKindInterest}

		var err error
		txn, err = appendEntry(tx, account, amount, entry, time.Now().UTC(), map[string]interface{}{
			"accrued_interest": decimal.Zero,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// CloseAccount closes a zero-balance account and cancels its PENDING
// payments. Existing transactions are kept.
func (r *ledgerRepository) CloseAccount(ctx context.Context, accountID uuid.UUID, at time.Time) (int64, error) {
	var cancelled int64
	at = at.UTC()

	err := r.withAccount(ctx, accountID, func(tx *gorm.DB, account *models.Account) error {
		if err := account.Close(at); err != nil {
			return translateAccountError(err)
		}

		result := tx.Model(&models.Payment{}).
			Where("account_id = ? AND status = ?", account.ID, models.PaymentStatusPending).
			Updates(map[string]interface{}{
				"status":     models.PaymentStatusCancelled,
				"updated_at": at,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to cancel pending payments: %w", result.Error)
		}
		cancelled = result.RowsAffected

		if err := tx.Model(&models.Account{}).
			Where("id = ?", account.ID).
			Updates(map[string]interface{}{
				"status":     models.AccountStatusClosed,
				"closed_at":  at,
				"updated_at": at,
			}).Error; err != nil {
			return fmt.Errorf("failed to close account: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return cancelled, nil
}

// DailyInterest is balance * rate / 365, rounded half-up to four digits.
func DailyInterest(balance, annualRate decimal.Decimal) decimal.Decimal {
	return balance.Mul(annualRate).DivRound(decimal.NewFromInt(365), models.MoneyScale)
}

func (r *ledgerRepository) withAccount(ctx context.Context, accountID uuid.UUID, fn func(tx *gorm.DB, account *models.Account) error) error {
	unlock, err := r.locks.Lock(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to acquire account lock: %w", err)
	}
	defer unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", accountID).
			First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to lock account: %w", err)
		}

		return fn(tx, &account)
	})
}

// appendEntry persists account.Balance, which the caller has already moved
// by amount, and appends the matching transaction with the next sequence
// number. extra holds further account columns to write in the same update.
func appendEntry(tx *gorm.DB, account *models.Account, amount decimal.Decimal, entry models.LedgerEntry, at time.Time, extra map[string]interface{}) (*models.Transaction, error) {
	var lastSequence int64
	if err := tx.Model(&models.Transaction{}).
		Select("COALESCE(MAX(sequence), 0)").
		Where("account_id = ?", account.ID).
		Row().Scan(&lastSequence); err != nil {
		return nil, fmt.Errorf("failed to read transaction sequence: %w", err)
	}

	updates := map[string]interface{}{
		"balance":    account.Balance,
		"updated_at": at,
	}
	for k, v := range extra {
		updates[k] = v
	}

	if err := tx.Model(&models.Account{}).
		Where("id = ?", account.ID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update account balance: %w", err)
	}

	txn := &models.Transaction{
		AccountID:        account.ID,
		Sequence:         lastSequence + 1,
		Kind:             entry.Kind,
		Amount:           amount,
		BalanceAfter:     account.Balance,
		CounterpartyIBAN: entry.CounterpartyIBAN,
		Message:          entry.Message,
		Note:             entry.Note,
		PaymentID:        entry.PaymentID,
		CreatedAt:        at,
	}

	if err := tx.Create(txn).Error; err != nil {
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	return txn, nil
}

func translateAccountError(err error) error {
	switch {
	case errors.Is(err, models.ErrInsufficientFunds):
		return ErrInsufficientFunds
	case errors.Is(err, models.ErrAccountNotActive):
		return ErrAccountNotActive
	case errors.Is(err, models.ErrNonZeroBalance):
		return ErrNonZeroBalance
	case errors.Is(err, models.ErrNonPositiveAmount):
		return ErrInvalidAmount
	default:
		return err
	}
}

func failureReasonFor(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return models.PaymentFailureInsufficientFunds
	case errors.Is(err, ErrAccountNotActive):
		return models.PaymentFailureAccountNotActive
	default:
		return err.Error()
	}
}

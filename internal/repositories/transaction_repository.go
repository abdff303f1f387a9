package repositories

import (
	"context"
	"errors"
	"fmt"

	"ledger-engine/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("transaction not found")

const (
	defaultTransactionLimit = 50
	maxTransactionLimit     = 500
)

// transactionRepository is read-only apart from notes; entries are appended
// by the ledger repository.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// ListWithFilters returns matching entries newest first together with the
// unpaginated total.
func (r *transactionRepository) ListWithFilters(ctx context.Context, filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Transaction{})

	if filters.AccountID != uuid.Nil {
		query = query.Where("account_id = ?", filters.AccountID)
	}
	if filters.StartDate != nil {
		query = query.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("created_at < ?", *filters.EndDate)
	}
	if filters.Kind != "" {
		query = query.Where("kind = ?", filters.Kind)
	}
	// decimal.Decimal binds as text; cast it so both sides compare as numbers.
	if filters.MinAmount != nil {
		query = query.Where("ABS(amount) >= CAST(? AS DECIMAL(19,4))", filters.MinAmount.String())
	}
	if filters.MaxAmount != nil {
		query = query.Where("ABS(amount) <= CAST(? AS DECIMAL(19,4))", filters.MaxAmount.String())
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	if limit > maxTransactionLimit {
		limit = maxTransactionLimit
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	if err := query.Offset(offset).Limit(limit).
		Order("created_at DESC").Order("sequence DESC").
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}

	return transactions, total, nil
}

// GetLatestByAccountID returns the most recently appended entry, or
// ErrTransactionNotFound for an account without history.
func (r *transactionRepository) GetLatestByAccountID(ctx context.Context, accountID uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("sequence DESC").
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get latest transaction: %w", err)
	}
	return &transaction, nil
}

// SumByAccountID adds up every signed amount on the account. The result
// equals the balance for an account opened at zero.
func (r *transactionRepository) SumByAccountID(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("account_id = ?", accountID).
		Pluck("amount", &amounts).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}

	sum := decimal.Zero
	for _, amount := range amounts {
		sum = sum.Add(amount)
	}
	return sum.Round(models.MoneyScale), nil
}

// UpdateNote changes the only mutable field of a ledger entry.
func (r *transactionRepository) UpdateNote(ctx context.Context, id uuid.UUID, note string) error {
	if len(note) > models.MaxNoteLength {
		return models.ErrNoteTooLong
	}

	result := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ?", id).
		Update("note", note)
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction note: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"ledger-engine/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrIBANExists       = errors.New("IBAN already exists")
	ErrAccountNotActive = errors.New("account is not active")
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{
		db: db,
	}
}

// CreateWithOwner inserts the account and its OWNER membership atomically.
func (r *accountRepository) CreateWithOwner(ctx context.Context, account *models.Account, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			if isDuplicateKeyError(err) {
				return ErrIBANExists
			}
			return fmt.Errorf("failed to create account: %w", err)
		}

		membership := &models.AccountMembership{
			AccountID: account.ID,
			UserID:    ownerID,
			Role:      models.MembershipRoleOwner,
		}
		if err := tx.Create(membership).Error; err != nil {
			return fmt.Errorf("failed to create owner membership: %w", err)
		}

		return nil
	})
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByIBAN(ctx context.Context, iban string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("iban = ?", models.NormalizeIBAN(iban)).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by IBAN: %w", err)
	}
	return &account, nil
}

// ListByUserID returns every account the user holds a membership on
func (r *accountRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.WithContext(ctx).
		Joins("JOIN account_memberships ON account_memberships.account_id = accounts.id").
		Where("account_memberships.user_id = ?", userID).
		Order("accounts.created_at DESC").
		Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts for user: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) ListWithFilters(ctx context.Context, filters models.AccountFilters, offset, limit int) ([]models.Account, int64, error) {
	var accounts []models.Account
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Account{})

	if filters.UserID != nil {
		query = query.Where("id IN (?)",
			r.db.Model(&models.AccountMembership{}).Select("account_id").Where("user_id = ?", *filters.UserID))
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Currency != "" {
		query = query.Where("currency = ?", filters.Currency)
	}
	if filters.MinBalance != nil {
		query = query.Where("balance >= ?", *filters.MinBalance)
	}
	if filters.MaxBalance != nil {
		query = query.Where("balance <= ?", *filters.MaxBalance)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count filtered accounts: %w", err)
	}

	if err := query.Offset(offset).Limit(limit).
		Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get filtered accounts: %w", err)
	}

	return accounts, total, nil
}

// ListIDsByStatus feeds the batch jobs, which then work account by account.
func (r *accountRepository) ListIDsByStatus(ctx context.Context, status string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("status = ?", status).
		Order("created_at ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list account ids: %w", err)
	}
	return ids, nil
}

// UpdateFields changes descriptive columns. Balance, accrued interest and
// status are owned by the ledger and rejected here.
func (r *accountRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	for _, column := range []string{"balance", "accrued_interest", "status", "currency", "iban"} {
		if _, ok := fields[column]; ok {
			return fmt.Errorf("column %s cannot be updated directly", column)
		}
	}

	result := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) IBANExists(ctx context.Context, iban string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("iban = ?", iban).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check IBAN existence: %w", err)
	}
	return count > 0, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger-engine/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentNotModifiable = errors.New("payment is not modifiable")
	ErrPaymentNotPending    = errors.New("payment is not pending")
)

// Columns a modifiable payment may change. Everything else is owned by the
// state machine.
var modifiablePaymentColumns = map[string]bool{
	"receiver_iban":  true,
	"amount":         true,
	"message":        true,
	"note":           true,
	"execution_date": true,
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepositoryInterface {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) ListWithFilters(ctx context.Context, filters models.PaymentFilters) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Payment{})

	if filters.AccountID != uuid.Nil {
		query = query.Where("account_id = ?", filters.AccountID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.ExecutionType != "" {
		query = query.Where("execution_type = ?", filters.ExecutionType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultTransactionLimit
	}

	if err := query.Offset(filters.Offset).Limit(limit).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, total, nil
}

// UpdateModifiable applies fields only while the payment is a PENDING,
// unlocked NORMAL payment. The condition is part of the UPDATE so a
// concurrent lock or execution wins cleanly.
func (r *paymentRepository) UpdateModifiable(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	for column := range fields {
		if !modifiablePaymentColumns[column] {
			return fmt.Errorf("column %s cannot be updated on a payment", column)
		}
	}
	if len(fields) == 0 {
		return nil
	}

	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now().UTC()

	return r.updateModifiable(ctx, id, updates)
}

// Cancel moves a modifiable payment to CANCELLED.
func (r *paymentRepository) Cancel(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.updateModifiable(ctx, id, map[string]interface{}{
		"status":     models.PaymentStatusCancelled,
		"updated_at": at.UTC(),
	})
}

// Lock freezes a single modifiable payment.
func (r *paymentRepository) Lock(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.updateModifiable(ctx, id, map[string]interface{}{
		"locked":     true,
		"locked_at":  at.UTC(),
		"updated_at": at.UTC(),
	})
}

func (r *paymentRepository) updateModifiable(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status = ? AND locked = ? AND execution_type = ?",
			id, models.PaymentStatusPending, false, models.ExecutionTypeNormal).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update payment: %w", result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrPaymentNotModifiable
}

// LockDue locks every PENDING NORMAL payment whose execution date is on or
// before today. Already locked payments are left alone.
func (r *paymentRepository) LockDue(ctx context.Context, today, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ? AND execution_type = ? AND locked = ? AND execution_date <= ?",
			models.PaymentStatusPending, models.ExecutionTypeNormal, false, today).
		Updates(map[string]interface{}{
			"locked":     true,
			"locked_at":  at.UTC(),
			"updated_at": at.UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to lock due payments: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListDueIDs returns PENDING NORMAL payments due on or before today,
// locked or not, oldest execution date first.
func (r *paymentRepository) ListDueIDs(ctx context.Context, today time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ? AND execution_type = ? AND execution_date <= ?",
			models.PaymentStatusPending, models.ExecutionTypeNormal, today).
		Order("execution_date ASC").Order("created_at ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list due payments: %w", err)
	}
	return ids, nil
}

// MarkFailed moves a PENDING payment to FAILED.
func (r *paymentRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":         models.PaymentStatusFailed,
			"failure_reason": reason,
			"updated_at":     at.UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark payment failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotPending
	}
	return nil
}

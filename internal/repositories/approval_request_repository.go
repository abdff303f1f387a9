package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ledger-engine/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrApprovalRequestNotFound = errors.New("approval request not found")
	ErrApprovalNotPending      = errors.New("approval request is not pending")
	ErrVerificationCodeInUse   = errors.New("verification code already exists")
	ErrPendingRequestConflict  = errors.New("another pending request of this kind was created concurrently")
)

// pendingIndexName backs "at most one PENDING request per user and kind".
const pendingIndexName = "idx_approval_one_pending"

type approvalRequestRepository struct {
	db *gorm.DB
}

func NewApprovalRequestRepository(db *gorm.DB) ApprovalRequestRepositoryInterface {
	return &approvalRequestRepository{db: db}
}

// CreateReplacingPending expires every PENDING request of the same user and
// kind and inserts request, in one transaction. It returns how many requests
// were expired.
func (r *approvalRequestRepository) CreateReplacingPending(ctx context.Context, request *models.PendingApprovalRequest) (int64, error) {
	var invalidated int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		if !request.CreatedAt.IsZero() {
			now = request.CreatedAt
		}

		result := tx.Model(&models.PendingApprovalRequest{}).
			Where("user_id = ? AND kind = ? AND status = ?", request.UserID, request.Kind, models.ApprovalStatusPending).
			Updates(map[string]interface{}{
				"status":       models.ApprovalStatusExpired,
				"completed_at": now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to invalidate pending requests: %w", result.Error)
		}
		invalidated = result.RowsAffected

		if err := tx.Create(request).Error; err != nil {
			if isPendingConflict(err) {
				return ErrPendingRequestConflict
			}
			if isDuplicateKeyError(err) {
				return ErrVerificationCodeInUse
			}
			return fmt.Errorf("failed to create approval request: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return invalidated, nil
}

// isPendingConflict reports a violation of the one-PENDING index. Postgres
// names the index; sqlite lists the indexed columns.
func isPendingConflict(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, pendingIndexName) ||
		strings.Contains(msg, "pending_approval_requests.user_id, pending_approval_requests.kind")
}

func (r *approvalRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PendingApprovalRequest, error) {
	var request models.PendingApprovalRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApprovalRequestNotFound
		}
		return nil, fmt.Errorf("failed to get approval request: %w", err)
	}
	return &request, nil
}

func (r *approvalRequestRepository) GetByCodeHash(ctx context.Context, codeHash string) (*models.PendingApprovalRequest, error) {
	var request models.PendingApprovalRequest
	if err := r.db.WithContext(ctx).Where("code_hash = ?", codeHash).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApprovalRequestNotFound
		}
		return nil, fmt.Errorf("failed to get approval request by code: %w", err)
	}
	return &request, nil
}

// ListPendingByUserID returns the user's unexpired PENDING requests, newest first.
func (r *approvalRequestRepository) ListPendingByUserID(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.PendingApprovalRequest, error) {
	var requests []models.PendingApprovalRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND expires_at > ?", userID, models.ApprovalStatusPending, now.UTC()).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending approval requests: %w", err)
	}
	return requests, nil
}

func (r *approvalRequestRepository) CountPending(ctx context.Context, userID uuid.UUID, kind string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PendingApprovalRequest{}).
		Where("user_id = ? AND kind = ? AND status = ?", userID, kind, models.ApprovalStatusPending).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count pending approval requests: %w", err)
	}
	return count, nil
}

// Resolve moves a PENDING request to status. Exactly one caller can win;
// the others get ErrApprovalNotPending.
func (r *approvalRequestRepository) Resolve(ctx context.Context, id uuid.UUID, status string, deviceID *uuid.UUID, at time.Time) error {
	if !models.IsValidApprovalStatus(status) || status == models.ApprovalStatusPending {
		return models.ErrInvalidApprovalStatus
	}

	updates := map[string]interface{}{
		"status":       status,
		"completed_at": at.UTC(),
	}
	if deviceID != nil {
		updates["device_id"] = *deviceID
	}

	result := r.db.WithContext(ctx).Model(&models.PendingApprovalRequest{}).
		Where("id = ? AND status = ?", id, models.ApprovalStatusPending).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to resolve approval request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrApprovalNotPending
	}
	return nil
}

// RecordActionResult stores the outcome of the side effect run after approval.
func (r *approvalRequestRepository) RecordActionResult(ctx context.Context, id uuid.UUID, actionStatus, failureReason string) error {
	if len(failureReason) > 255 {
		failureReason = failureReason[:255]
	}

	result := r.db.WithContext(ctx).Model(&models.PendingApprovalRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"action_status":  actionStatus,
			"failure_reason": failureReason,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to record approval action result: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrApprovalRequestNotFound
	}
	return nil
}

// ExpireStale marks PENDING requests whose expiry has passed as EXPIRED.
// Safe to run concurrently with itself and with Resolve.
func (r *approvalRequestRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.PendingApprovalRequest{}).
		Where("status = ? AND expires_at <= ?", models.ApprovalStatusPending, now.UTC()).
		Updates(map[string]interface{}{
			"status":       models.ApprovalStatusExpired,
			"completed_at": now.UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire stale approval requests: %w", result.Error)
	}
	return result.RowsAffected, nil
}

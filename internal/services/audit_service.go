package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ledger-engine/internal/models"
	"ledger-engine/internal/repositories"

	"github.com/google/uuid"
)

// AuditService handles audit logging operations
type AuditService struct {
	repo   repositories.AuditLogRepositoryInterface
	logger *slog.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(repo repositories.AuditLogRepositoryInterface, logger *slog.Logger) AuditServiceInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditService{
		repo:   repo,
		logger: logger,
	}
}

var (
	ErrInvalidUserID   = errors.New("invalid user ID")
	ErrInvalidAuditLog = errors.New("invalid audit log")
)

var validAuditActions = map[string]bool{
	models.AuditActionAccountCreated:       true,
	models.AuditActionAccountUpdated:       true,
	models.AuditActionAccountClosed:        true,
	models.AuditActionLedgerCredit:         true,
	models.AuditActionLedgerDebit:          true,
	models.AuditActionTransactionNote:      true,
	models.AuditActionDeviceRegistered:     true,
	models.AuditActionDeviceRevoked:        true,
	models.AuditActionApprovalChallenged:   true,
	models.AuditActionApprovalApproved:     true,
	models.AuditActionApprovalRejected:     true,
	models.AuditActionApprovalActionFailed: true,
	models.AuditActionPaymentCreated:       true,
	models.AuditActionPaymentUpdated:       true,
	models.AuditActionPaymentCancelled:     true,
	models.AuditActionPaymentExecuted:      true,
	models.AuditActionPaymentFailed:        true,
	models.AuditActionInterestSettled:      true,
}

// ValidateActivityType validates that the activity type is one of the allowed types
func ValidateActivityType(action string) error {
	if !validAuditActions[action] {
		return fmt.Errorf("invalid activity type: %s", action)
	}
	return nil
}

// Record writes an audit entry. Failures are logged and swallowed so the
// audited operation is never rolled back or failed by the audit trail.
func (s *AuditService) Record(ctx context.Context, log *models.AuditLog) {
	if log == nil {
		s.logger.WarnContext(ctx, "dropping nil audit log")
		return
	}

	if err := ValidateActivityType(log.Action); err != nil {
		s.logger.WarnContext(ctx, "dropping audit log", "error", err)
		return
	}

	if err := s.repo.Create(ctx, log); err != nil {
		s.logger.ErrorContext(ctx, "failed to create audit log",
			"error", err,
			"action", log.Action,
			"resource", log.Resource,
			"resource_id", log.ResourceID,
		)
	}
}

// GetUserActivity returns the audit entries recorded for a user, newest first
func (s *AuditService) GetUserActivity(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error) {
	if userID == uuid.Nil {
		return nil, 0, ErrInvalidUserID
	}
	return s.repo.GetByUserID(ctx, userID, offset, normalizeLimit(limit))
}

// GetResourceHistory returns the audit entries of one resource, e.g. a payment
func (s *AuditService) GetResourceHistory(ctx context.Context, resource, resourceID string, offset, limit int) ([]*models.AuditLog, int64, error) {
	if resource == "" {
		return nil, 0, ErrInvalidAuditLog
	}
	return s.repo.GetByResource(ctx, resource, resourceID, offset, normalizeLimit(limit))
}

func (s *AuditService) PurgeOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("%w: retention must be positive", ErrValidation)
	}

	deleted, err := s.repo.DeleteOlderThan(ctx, retention)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.InfoContext(ctx, "purged audit logs", "deleted", deleted, "retention", retention.String())
	}
	return deleted, nil
}

// newAuditLog fills the actor fields of an audit entry.
func newAuditLog(actor Actor, action, resource string, resourceID uuid.UUID, metadata models.JSONBMap) *models.AuditLog {
	log := &models.AuditLog{
		UserID:    actor.userRef(),
		Action:    action,
		Resource:  resource,
		IPAddress: actor.IPAddress,
		UserAgent: actor.UserAgent,
		Outcome:   models.AuditOutcomeSuccess,
		Metadata:  metadata,
	}
	if resourceID != uuid.Nil {
		log.ResourceID = resourceID.String()
	}
	return log
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}

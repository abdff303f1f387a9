package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"ledger-engine/internal/clock"
	"ledger-engine/internal/config"
	"ledger-engine/internal/models"
	"ledger-engine/internal/repositories"

	"github.com/google/uuid"
)

// approvalService issues one-time challenges and resolves them with messages
// signed by the user's mobile device. Each request is resolved at most once:
// resolution holds the request's keyed lock and finishes with a conditional
// PENDING -> outcome update.
type approvalService struct {
	requests repositories.ApprovalRequestRepositoryInterface
	devices  repositories.MobileDeviceRepositoryInterface
	verifier SignatureVerifierInterface
	audit    AuditServiceInterface
	metrics  MetricsRecorderInterface
	config   *config.ApprovalConfig
	clock    clock.Clock
	locks    *repositories.KeyedLock
	users    *repositories.KeyedLock
	logger   *slog.Logger

	mu       sync.RWMutex
	handlers map[string]ApprovedActionHandler
}

func NewApprovalService(
	requests repositories.ApprovalRequestRepositoryInterface,
	devices repositories.MobileDeviceRepositoryInterface,
	verifier SignatureVerifierInterface,
	audit AuditServiceInterface,
	metrics MetricsRecorderInterface,
	cfg *config.ApprovalConfig,
	clk clock.Clock,
	logger *slog.Logger,
) ApprovalServiceInterface {
	return &approvalService{
		requests: requests,
		devices:  devices,
		verifier: verifier,
		audit:    audit,
		metrics:  metrics,
		config:   cfg,
		clock:    clk,
		locks:    repositories.NewKeyedLock(),
		users:    repositories.NewKeyedLock(),
		logger:   logger,
		handlers: make(map[string]ApprovedActionHandler),
	}
}

// RegisterHandler sets the action run when a request of kind is approved.
// Kinds without a handler are approved with no side effect.
func (s *approvalService) RegisterHandler(kind string, handler ApprovedActionHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[kind] = handler
}

func (s *approvalService) handlerFor(kind string) ApprovedActionHandler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handlers[kind]
}

// CreateChallenge stores a new PENDING request and returns its verification
// code. Earlier PENDING requests of the same user and kind are expired.
func (s *approvalService) CreateChallenge(ctx context.Context, input ChallengeInput) (string, error) {
	if !models.IsValidApprovalKind(input.Kind) {
		return "", fmt.Errorf("%w: %s", ErrValidation, models.ErrInvalidApprovalKind)
	}

	if _, err := s.devices.GetActiveByUserID(ctx, input.UserID); err != nil {
		return "", translateRepoError(err)
	}

	code, err := GenerateVerificationCode()
	if err != nil {
		return "", err
	}

	now := s.clock.Now().UTC()
	request := &models.PendingApprovalRequest{
		UserID:    input.UserID,
		Kind:      input.Kind,
		CodeHash:  HashVerificationCode(code),
		IPAddress: input.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(s.config.TTLFor(input.Kind)),
	}
	if err := request.SetPayload(input.Payload); err != nil {
		return "", err
	}

	unlock, err := s.users.Lock(ctx, input.UserID)
	if err != nil {
		return "", err
	}
	defer unlock()

	// Another instance may have inserted a PENDING request between our
	// expire and insert; the retry expires it.
	invalidated, err := s.requests.CreateReplacingPending(ctx, request)
	if errors.Is(err, repositories.ErrPendingRequestConflict) {
		invalidated, err = s.requests.CreateReplacingPending(ctx, request)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create approval request: %w", err)
	}

	s.logger.InfoContext(ctx, "approval challenge created",
		"request_id", request.ID,
		"user_id", input.UserID,
		"kind", input.Kind,
		"invalidated", invalidated,
	)
	s.metrics.IncrementCounter("approval.created", map[string]string{"kind": input.Kind})
	s.audit.Record(ctx, newAuditLog(Actor{UserID: input.UserID, IPAddress: input.IPAddress},
		models.AuditActionApprovalChallenged, "approval_request", request.ID, models.JSONBMap{
			"kind":        input.Kind,
			"invalidated": invalidated,
		}))

	return code, nil
}

// Inspect shows a PENDING request to the device that will resolve it. The
// message must be "{REQUEST}code" signed by the user's active device.
func (s *approvalService) Inspect(ctx context.Context, signedMessage string) (*InspectResult, error) {
	code := ExtractVerificationCode(signedMessage, TagRequest)
	if code == "" {
		return nil, ErrNotApprovable
	}

	request, err := s.requests.GetByCodeHash(ctx, HashVerificationCode(code))
	if err != nil {
		return nil, s.notApprovable(ctx, err)
	}

	if !request.IsPending() || request.IsExpired(s.clock.Now()) {
		return nil, ErrNotApprovable
	}

	if !s.verifier.Verify(ctx, request.UserID, signedMessage) {
		return nil, ErrNotApprovable
	}

	payload := json.RawMessage("null")
	if request.Payload != "" {
		payload = json.RawMessage(request.Payload)
	}

	return &InspectResult{
		RequestID: request.ID,
		Kind:      request.Kind,
		Payload:   payload,
		CreatedAt: request.CreatedAt,
		ExpiresAt: request.ExpiresAt,
	}, nil
}

// Resolve approves or rejects the request named by the signed code. The tag
// must match the outcome: {APPROVE} for APPROVED, {REJECT} for REJECTED.
func (s *approvalService) Resolve(ctx context.Context, signedMessage, outcome string) (*ResolveResult, error) {
	var tag string
	switch outcome {
	case models.ApprovalStatusApproved:
		tag = TagApprove
	case models.ApprovalStatusRejected:
		tag = TagReject
	default:
		return nil, fmt.Errorf("%w: unsupported outcome %q", ErrValidation, outcome)
	}

	code := ExtractVerificationCode(signedMessage, tag)
	if code == "" {
		return nil, ErrNotApprovable
	}

	found, err := s.requests.GetByCodeHash(ctx, HashVerificationCode(code))
	if err != nil {
		return nil, s.notApprovable(ctx, err)
	}

	unlock, err := s.locks.Lock(ctx, found.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire approval lock: %w", err)
	}
	defer unlock()

	request, err := s.requests.GetByID(ctx, found.ID)
	if err != nil {
		return nil, s.notApprovable(ctx, err)
	}

	if !request.IsPending() {
		return nil, ErrApprovalNotPending
	}

	now := s.clock.Now().UTC()
	if request.IsExpired(now) {
		return nil, ErrNotApprovable
	}

	device, ok := s.verifier.VerifyDevice(ctx, request.UserID, signedMessage)
	if !ok {
		return nil, ErrNotApprovable
	}

	if err := s.requests.Resolve(ctx, request.ID, outcome, &device.ID, now); err != nil {
		return nil, translateRepoError(err)
	}
	request.Status = outcome
	request.DeviceID = &device.ID
	request.CompletedAt = &now

	s.logger.InfoContext(ctx, "approval request resolved",
		"request_id", request.ID,
		"user_id", request.UserID,
		"kind", request.Kind,
		"outcome", outcome,
	)
	s.metrics.IncrementCounter("approval.resolved", map[string]string{"kind": request.Kind, "outcome": outcome})

	actor := Actor{UserID: request.UserID, IPAddress: request.IPAddress}
	action := models.AuditActionApprovalRejected
	if outcome == models.ApprovalStatusApproved {
		action = models.AuditActionApprovalApproved
	}
	s.audit.Record(ctx, newAuditLog(actor, action, "approval_request", request.ID, models.JSONBMap{
		"kind":      request.Kind,
		"device_id": device.ID.String(),
	}))

	result := &ResolveResult{Request: request}
	if outcome == models.ApprovalStatusApproved {
		result.ActionErr = s.runApprovedAction(ctx, actor, request)
	}

	return result, nil
}

// runApprovedAction dispatches an approved request to its handler and
// records the outcome on the request. The request stays APPROVED either way.
func (s *approvalService) runApprovedAction(ctx context.Context, actor Actor, request *models.PendingApprovalRequest) error {
	handler := s.handlerFor(request.Kind)
	if handler == nil {
		return nil
	}

	actionErr := handler.HandleApproved(ctx, request)

	status, reason := models.ActionStatusSucceeded, ""
	if actionErr != nil {
		status, reason = models.ActionStatusFailed, actionErr.Error()
		s.logger.WarnContext(ctx, "approved action failed",
			"request_id", request.ID,
			"kind", request.Kind,
			"error", actionErr,
		)
		s.audit.Record(ctx, newAuditLog(actor, models.AuditActionApprovalActionFailed, "approval_request", request.ID, models.JSONBMap{
			"kind":   request.Kind,
			"reason": reason,
		}))
	}

	if err := s.requests.RecordActionResult(ctx, request.ID, status, reason); err != nil {
		s.logger.ErrorContext(ctx, "failed to record approved action result", "request_id", request.ID, "error", err)
	}
	request.ActionStatus = status
	request.FailureReason = reason

	return actionErr
}

func (s *approvalService) ListPending(ctx context.Context, userID uuid.UUID) ([]models.PendingApprovalRequest, error) {
	pending, err := s.requests.ListPendingByUserID(ctx, userID, s.clock.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.metrics.RecordGauge("approval.pending", float64(len(pending)), nil)
	return pending, nil
}

// ExpireStale moves every PENDING request past its expiry to EXPIRED.
func (s *approvalService) ExpireStale(ctx context.Context) (int64, error) {
	expired, err := s.requests.ExpireStale(ctx, s.clock.Now().UTC())
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		s.logger.InfoContext(ctx, "expired stale approval requests", "count", expired)
	}
	s.metrics.RecordGauge("approval.expired", float64(expired), nil)
	return expired, nil
}

// notApprovable hides lookup failures behind ErrNotApprovable. Unexpected
// errors are still logged.
func (s *approvalService) notApprovable(ctx context.Context, err error) error {
	if !errors.Is(err, repositories.ErrApprovalRequestNotFound) {
		s.logger.ErrorContext(ctx, "failed to load approval request", "error", err)
		return fmt.Errorf("failed to load approval request: %w", err)
	}
	return ErrNotApprovable
}

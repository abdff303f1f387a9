package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ledger-engine/internal/clock"
	"ledger-engine/internal/config"
	"ledger-engine/internal/models"
	"ledger-engine/internal/repositories"

	"github.com/google/uuid"
)

// paymentService implements PaymentServiceInterface. Customer changes are
// staged as approval requests and applied by HandleApproved once the user
// confirms them on their device. Admin operations apply directly.
type paymentService struct {
	payments    repositories.PaymentRepositoryInterface
	accounts    repositories.AccountRepositoryInterface
	memberships repositories.MembershipRepositoryInterface
	ledger      repositories.LedgerRepositoryInterface
	approvals   ApprovalServiceInterface
	audit       AuditServiceInterface
	metrics     MetricsRecorderInterface
	clock       clock.Clock
	location    *time.Location
	lockHour    int
	lockMinute  int
	execHour    int
	execMinute  int
	logger      *slog.Logger
}

func NewPaymentService(
	payments repositories.PaymentRepositoryInterface,
	accounts repositories.AccountRepositoryInterface,
	memberships repositories.MembershipRepositoryInterface,
	ledger repositories.LedgerRepositoryInterface,
	approvals ApprovalServiceInterface,
	audit AuditServiceInterface,
	metrics MetricsRecorderInterface,
	clk clock.Clock,
	bank *config.BankConfig,
	schedule *config.SchedulerConfig,
	logger *slog.Logger,
) PaymentServiceInterface {
	s := &paymentService{
		payments:    payments,
		accounts:    accounts,
		memberships: memberships,
		ledger:      ledger,
		approvals:   approvals,
		audit:       audit,
		metrics:     metrics,
		clock:       clk,
		location:    bank.Location,
		lockHour:    0,
		lockMinute:  50,
		execHour:    1,
		execMinute:  0,
		logger:      logger,
	}
	if h, m, err := config.ParseClock(schedule.PaymentLockAt); err == nil {
		s.lockHour, s.lockMinute = h, m
	}
	if h, m, err := config.ParseClock(schedule.PaymentExecuteAt); err == nil {
		s.execHour, s.execMinute = h, m
	}
	return s
}

// StagePaymentCreation validates a new payment and issues a PAYMENT_CREATE
// challenge. Nothing is persisted besides the challenge.
func (s *paymentService) StagePaymentCreation(ctx context.Context, actor Actor, input PaymentInput) (string, error) {
	payload, err := s.validateNewPayment(ctx, actor, input, true)
	if err != nil {
		return "", err
	}

	code, err := s.approvals.CreateChallenge(ctx, ChallengeInput{
		UserID:    actor.UserID,
		IPAddress: actor.IPAddress,
		Kind:      models.ApprovalKindPaymentCreate,
		Payload:   payload,
	})
	if err != nil {
		return "", err
	}

	s.metrics.IncrementCounter("payment.staged", map[string]string{"kind": models.ApprovalKindPaymentCreate})
	return code, nil
}

func (s *paymentService) StagePaymentUpdate(ctx context.Context, actor Actor, changes models.PaymentUpdatePayload) (string, error) {
	if _, err := s.modifiablePayment(ctx, actor, changes.PaymentID); err != nil {
		return "", err
	}
	if err := s.validateChanges(&changes); err != nil {
		return "", err
	}

	code, err := s.approvals.CreateChallenge(ctx, ChallengeInput{
		UserID:    actor.UserID,
		IPAddress: actor.IPAddress,
		Kind:      models.ApprovalKindPaymentUpdate,
		Payload:   changes,
	})
	if err != nil {
		return "", err
	}

	s.metrics.IncrementCounter("payment.staged", map[string]string{"kind": models.ApprovalKindPaymentUpdate})
	return code, nil
}

func (s *paymentService) StagePaymentCancellation(ctx context.Context, actor Actor, paymentID uuid.UUID) (string, error) {
	if _, err := s.modifiablePayment(ctx, actor, paymentID); err != nil {
		return "", err
	}

	code, err := s.approvals.CreateChallenge(ctx, ChallengeInput{
		UserID:    actor.UserID,
		IPAddress: actor.IPAddress,
		Kind:      models.ApprovalKindPaymentCancel,
		Payload:   models.PaymentCancelPayload{PaymentID: paymentID},
	})
	if err != nil {
		return "", err
	}

	s.metrics.IncrementCounter("payment.staged", map[string]string{"kind": models.ApprovalKindPaymentCancel})
	return code, nil
}

// HandleApproved applies an approved payment request. Access, account state
// and funds are checked again since time has passed since staging.
func (s *paymentService) HandleApproved(ctx context.Context, request *models.PendingApprovalRequest) error {
	actor := Actor{UserID: request.UserID, IPAddress: request.IPAddress, UserAgent: "mobile-approval"}

	switch request.Kind {
	case models.ApprovalKindPaymentCreate:
		var payload models.PaymentCreatePayload
		if err := request.DecodePayload(&payload); err != nil {
			return err
		}
		_, err := s.createPayment(ctx, actor, PaymentInput{
			AccountID:     payload.AccountID,
			ReceiverIBAN:  payload.ReceiverIBAN,
			Amount:        payload.Amount,
			Message:       payload.Message,
			Note:          payload.Note,
			ExecutionType: payload.ExecutionType,
			ExecutionDate: payload.ExecutionDate,
		}, true)
		return err

	case models.ApprovalKindPaymentUpdate:
		var payload models.PaymentUpdatePayload
		if err := request.DecodePayload(&payload); err != nil {
			return err
		}
		if _, err := s.modifiablePayment(ctx, actor, payload.PaymentID); err != nil {
			return err
		}
		if err := s.validateChanges(&payload); err != nil {
			return err
		}
		_, err := s.updatePayment(ctx, actor, payload)
		return err

	case models.ApprovalKindPaymentCancel:
		var payload models.PaymentCancelPayload
		if err := request.DecodePayload(&payload); err != nil {
			return err
		}
		if _, err := s.modifiablePayment(ctx, actor, payload.PaymentID); err != nil {
			return err
		}
		return s.cancelPayment(ctx, actor, payload.PaymentID)

	default:
		return fmt.Errorf("%w: payment service cannot handle %s requests", ErrValidation, request.Kind)
	}
}

func (s *paymentService) GetPayment(ctx context.Context, actor Actor, paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if !actor.IsAdmin() {
		if _, err := s.memberships.Get(ctx, payment.AccountID, actor.UserID); err != nil {
			return nil, translateRepoError(err)
		}
	}
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, actor Actor, filters models.PaymentFilters) ([]models.Payment, int64, error) {
	if !actor.IsAdmin() {
		if filters.AccountID == uuid.Nil {
			return nil, 0, fmt.Errorf("%w: account is required", ErrValidation)
		}
		if _, err := s.memberships.Get(ctx, filters.AccountID, actor.UserID); err != nil {
			return nil, 0, translateRepoError(err)
		}
	}
	filters.Limit = normalizeLimit(filters.Limit)
	return s.payments.ListWithFilters(ctx, filters)
}

func (s *paymentService) ListPendingPayments(ctx context.Context, actor Actor, accountID uuid.UUID) ([]models.Payment, error) {
	payments, _, err := s.ListPayments(ctx, actor, models.PaymentFilters{
		AccountID: accountID,
		Status:    models.PaymentStatusPending,
		Limit:     100,
	})
	return payments, err
}

func (s *paymentService) AdminCreatePayment(ctx context.Context, actor Actor, input PaymentInput) (*models.Payment, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.createPayment(ctx, actor, input, false)
}

func (s *paymentService) AdminUpdatePayment(ctx context.Context, actor Actor, changes models.PaymentUpdatePayload) (*models.Payment, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := s.validateChanges(&changes); err != nil {
		return nil, err
	}
	return s.updatePayment(ctx, actor, changes)
}

func (s *paymentService) AdminCancelPayment(ctx context.Context, actor Actor, paymentID uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return s.cancelPayment(ctx, actor, paymentID)
}

// LockDuePayments freezes NORMAL payments whose lock cut-off has passed.
// The cut-off is the configured lock time on the execution date, so before
// that time only payments dated yesterday or earlier are locked.
func (s *paymentService) LockDuePayments(ctx context.Context, now time.Time) (int64, error) {
	today := clock.Date(now, s.location)
	cutoff := today
	if now.Before(clock.At(today, s.lockHour, s.lockMinute, s.location)) {
		cutoff = today.AddDate(0, 0, -1)
	}

	locked, err := s.payments.LockDue(ctx, cutoff, now)
	if err != nil {
		return 0, err
	}
	if locked > 0 {
		s.logger.InfoContext(ctx, "locked due payments", "count", locked, "cutoff", cutoff.Format(time.DateOnly))
	}
	s.metrics.RecordGauge("payment.locked", float64(locked), nil)
	return locked, nil
}

// RunExecutionBatch locks what is due and executes every PENDING NORMAL
// payment dated today or earlier. Each payment is its own unit of work; a
// failure is recorded on the payment and the batch moves on.
func (s *paymentService) RunExecutionBatch(ctx context.Context, now time.Time) (*BatchResult, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime("payment.batch", time.Since(start))
	}()

	locked, err := s.LockDuePayments(ctx, now)
	if err != nil {
		return nil, err
	}
	result := &BatchResult{Locked: locked}

	ids, err := s.payments.ListDueIDs(ctx, clock.Date(now, s.location))
	if err != nil {
		return result, err
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			s.logger.WarnContext(ctx, "payment batch interrupted", "remaining", len(ids)-result.Executed-result.Failed-result.Skipped)
			return result, err
		}

		switch err := s.executePayment(ctx, SystemActor, id, now); {
		case err == nil:
			result.Executed++
		case errors.Is(err, ErrPaymentNotPending):
			result.Skipped++
		default:
			result.Failed++
		}
	}

	s.metrics.RecordGauge("payment.batch.executed", float64(result.Executed), nil)
	s.logger.InfoContext(ctx, "payment batch finished",
		"locked", result.Locked,
		"executed", result.Executed,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return result, nil
}

// createPayment validates input, persists a PENDING payment and executes it
// right away when it is INSTANT or already past its execution time.
func (s *paymentService) createPayment(ctx context.Context, actor Actor, input PaymentInput, checkAccess bool) (*models.Payment, error) {
	payload, err := s.validateNewPayment(ctx, actor, input, checkAccess)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	payment := &models.Payment{
		AccountID:     payload.AccountID,
		ReceiverIBAN:  payload.ReceiverIBAN,
		Amount:        payload.Amount,
		Message:       payload.Message,
		Note:          payload.Note,
		ExecutionType: payload.ExecutionType,
		ExecutionDate: payload.ExecutionDate,
		CreatedBy:     actor.UserID,
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}
	if payment.ExecutionType == models.ExecutionTypeNormal && !now.Before(s.lockTime(*payment.ExecutionDate)) {
		lockedAt := now.UTC()
		payment.Locked = true
		payment.LockedAt = &lockedAt
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, translateRepoError(err)
	}

	s.logger.InfoContext(ctx, "payment created",
		"payment_id", payment.ID,
		"account_id", payment.AccountID,
		"execution_type", payment.ExecutionType,
	)
	s.audit.Record(ctx, newAuditLog(actor, models.AuditActionPaymentCreated, "payment", payment.ID, models.JSONBMap{
		"account_id":     payment.AccountID.String(),
		"amount":         payment.Amount.String(),
		"execution_type": payment.ExecutionType,
	}))

	if payment.IsInstant() || !now.Before(s.executeTime(*payment.ExecutionDate)) {
		if err := s.executePayment(ctx, actor, payment.ID, now); err != nil {
			return nil, err
		}
		return s.reload(ctx, payment.ID)
	}

	return payment, nil
}

func (s *paymentService) updatePayment(ctx context.Context, actor Actor, changes models.PaymentUpdatePayload) (*models.Payment, error) {
	fields := make(map[string]interface{})
	if changes.ReceiverIBAN != nil {
		fields["receiver_iban"] = *changes.ReceiverIBAN
	}
	if changes.Amount != nil {
		fields["amount"] = *changes.Amount
	}
	if changes.Message != nil {
		fields["message"] = *changes.Message
	}
	if changes.Note != nil {
		fields["note"] = *changes.Note
	}
	if changes.ExecutionDate != nil {
		fields["execution_date"] = *changes.ExecutionDate
	}
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}

	if err := s.payments.UpdateModifiable(ctx, changes.PaymentID, fields); err != nil {
		return nil, translateRepoError(err)
	}

	metadata := models.JSONBMap{}
	for column := range fields {
		metadata[column] = true
	}
	s.audit.Record(ctx, newAuditLog(actor, models.AuditActionPaymentUpdated, "payment", changes.PaymentID, metadata))

	// A payment moved to today after the cut-off is frozen at once and, past
	// the run time, executed instead of waiting for tomorrow's batch.
	if changes.ExecutionDate != nil {
		now := s.clock.Now()
		if !now.Before(s.lockTime(*changes.ExecutionDate)) {
			if err := s.payments.Lock(ctx, changes.PaymentID, now); err != nil {
				return nil, translateRepoError(err)
			}
			s.logger.InfoContext(ctx, "rescheduled payment locked", "payment_id", changes.PaymentID)
		}
		if !now.Before(s.executeTime(*changes.ExecutionDate)) {
			if err := s.executePayment(ctx, actor, changes.PaymentID, now); err != nil {
				return nil, err
			}
		}
	}

	return s.reload(ctx, changes.PaymentID)
}

func (s *paymentService) cancelPayment(ctx context.Context, actor Actor, paymentID uuid.UUID) error {
	if err := s.payments.Cancel(ctx, paymentID, s.clock.Now()); err != nil {
		return translateRepoError(err)
	}

	s.logger.InfoContext(ctx, "payment cancelled", "payment_id", paymentID)
	s.audit.Record(ctx, newAuditLog(actor, models.AuditActionPaymentCancelled, "payment", paymentID, nil))
	return nil
}

// executePayment runs one payment through the ledger. A refused debit has
// already left the payment FAILED; any other failure is recorded as FAILED
// here so that nothing is retried silently.
func (s *paymentService) executePayment(ctx context.Context, actor Actor, paymentID uuid.UUID, now time.Time) error {
	txn, err := s.ledger.ExecutePayment(ctx, paymentID, now)
	if err == nil {
		s.metrics.IncrementCounter("payment.executed", nil)
		s.metrics.IncrementCounter("ledger.posted", map[string]string{"kind": models.TransactionKindOutgoing})
		s.audit.Record(ctx, newAuditLog(actor, models.AuditActionPaymentExecuted, "payment", paymentID, models.JSONBMap{
			"transaction_id": txn.ID.String(),
			"balance_after":  txn.BalanceAfter.String(),
		}))
		return nil
	}

	if errors.Is(err, repositories.ErrPaymentNotPending) {
		return ErrPaymentNotPending
	}

	reason := err.Error()
	if !errors.Is(err, repositories.ErrPaymentFailed) {
		if markErr := s.payments.MarkFailed(ctx, paymentID, truncate(reason, 255), now); markErr != nil {
			if errors.Is(markErr, repositories.ErrPaymentNotPending) {
				return ErrPaymentNotPending
			}
			s.logger.ErrorContext(ctx, "failed to mark payment failed", "payment_id", paymentID, "error", markErr)
		}
		err = fmt.Errorf("%w: %w", repositories.ErrPaymentFailed, err)
	}

	translated := translateRepoError(err)
	failure := failureLabel(translated)
	s.logger.WarnContext(ctx, "payment execution failed", "payment_id", paymentID, "reason", failure, "error", err)
	s.metrics.IncrementCounter("payment.failed", map[string]string{"reason": failure})
	log := newAuditLog(actor, models.AuditActionPaymentFailed, "payment", paymentID, models.JSONBMap{"reason": reason})
	log.Outcome = models.AuditOutcomeFailure
	s.audit.Record(ctx, log)

	return translated
}

// validateNewPayment checks a payment request against the current account
// state and returns it in normalized form.
func (s *paymentService) validateNewPayment(ctx context.Context, actor Actor, input PaymentInput, checkAccess bool) (*models.PaymentCreatePayload, error) {
	if checkAccess {
		if err := s.requireWriteAccess(ctx, actor, input.AccountID); err != nil {
			return nil, err
		}
	}

	account, err := s.accounts.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if !account.IsActive() {
		return nil, ErrAccountNotActive
	}

	if !input.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	amount := input.Amount.Round(models.MoneyScale)

	iban := models.NormalizeIBAN(input.ReceiverIBAN)
	if !models.ValidateIBAN(iban) {
		return nil, ErrInvalidIBAN
	}
	if len(input.Message) > models.MaxMessageLength {
		return nil, ErrMessageTooLong
	}
	if len(input.Note) > models.MaxNoteLength {
		return nil, ErrNoteTooLong
	}

	payload := &models.PaymentCreatePayload{
		AccountID:     input.AccountID,
		ReceiverIBAN:  iban,
		Amount:        amount,
		Message:       input.Message,
		Note:          input.Note,
		ExecutionType: input.ExecutionType,
	}

	switch input.ExecutionType {
	case models.ExecutionTypeInstant:
		if !account.CanDebit(amount) {
			return nil, ErrInsufficientFunds
		}
	case models.ExecutionTypeNormal:
		date, err := s.executionDate(input.ExecutionDate)
		if err != nil {
			return nil, err
		}
		payload.ExecutionDate = &date
	default:
		return nil, ErrInvalidExecutionType
	}

	return payload, nil
}

func (s *paymentService) validateChanges(changes *models.PaymentUpdatePayload) error {
	if changes.ReceiverIBAN == nil && changes.Amount == nil && changes.Message == nil &&
		changes.Note == nil && changes.ExecutionDate == nil {
		return ErrNothingToUpdate
	}

	if changes.ReceiverIBAN != nil {
		iban := models.NormalizeIBAN(*changes.ReceiverIBAN)
		if !models.ValidateIBAN(iban) {
			return ErrInvalidIBAN
		}
		changes.ReceiverIBAN = &iban
	}
	if changes.Amount != nil {
		if !changes.Amount.IsPositive() {
			return ErrInvalidAmount
		}
		amount := changes.Amount.Round(models.MoneyScale)
		changes.Amount = &amount
	}
	if changes.Message != nil && len(*changes.Message) > models.MaxMessageLength {
		return ErrMessageTooLong
	}
	if changes.Note != nil && len(*changes.Note) > models.MaxNoteLength {
		return ErrNoteTooLong
	}
	if changes.ExecutionDate != nil {
		date, err := s.executionDate(changes.ExecutionDate)
		if err != nil {
			return err
		}
		changes.ExecutionDate = &date
	}
	return nil
}

// executionDate normalizes a requested date to the stored civil-date form
// and rejects dates before today.
func (s *paymentService) executionDate(requested *time.Time) (time.Time, error) {
	if requested == nil {
		return time.Time{}, ErrInvalidExecutionDate
	}
	date := clock.Date(*requested, requested.Location())
	if date.Before(clock.Date(s.clock.Now(), s.location)) {
		return time.Time{}, ErrInvalidExecutionDate
	}
	return date, nil
}

// modifiablePayment loads a payment the actor may change and that is still
// modifiable.
func (s *paymentService) modifiablePayment(ctx context.Context, actor Actor, paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if err := s.requireWriteAccess(ctx, actor, payment.AccountID); err != nil {
		return nil, err
	}
	if !payment.CanBeModified() {
		return nil, ErrPaymentNotModifiable
	}
	return payment, nil
}

func (s *paymentService) requireWriteAccess(ctx context.Context, actor Actor, accountID uuid.UUID) error {
	membership, err := s.memberships.Get(ctx, accountID, actor.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			if _, accErr := s.accounts.GetByID(ctx, accountID); accErr != nil {
				return translateRepoError(accErr)
			}
		}
		return translateRepoError(err)
	}
	if !membership.CanWrite() {
		return ErrForbidden
	}
	return nil
}

func (s *paymentService) reload(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return payment, nil
}

func (s *paymentService) lockTime(executionDate time.Time) time.Time {
	return clock.At(executionDate, s.lockHour, s.lockMinute, s.location)
}

func (s *paymentService) executeTime(executionDate time.Time) time.Time {
	return clock.At(executionDate, s.execHour, s.execMinute, s.location)
}

func failureLabel(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrAccountNotActive):
		return "account_not_active"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}


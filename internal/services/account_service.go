package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ledger-engine/internal/clock"
	"ledger-engine/internal/config"
	"ledger-engine/internal/models"
	"ledger-engine/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxIBANAttempts = 10

// accountService implements AccountServiceInterface
type accountService struct {
	accountRepo     repositories.AccountRepositoryInterface
	membershipRepo  repositories.MembershipRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	userRepo        repositories.UserRepositoryInterface
	ledger          repositories.LedgerRepositoryInterface
	approvals       ApprovalServiceInterface
	audit           AuditServiceInterface
	clock           clock.Clock
	bank            *config.BankConfig
	logger          *slog.Logger
}

// NewAccountService creates an account service. Account closure requested
// by a customer goes through approvals as an ACCOUNT_CLOSE request.
func NewAccountService(
	accountRepo repositories.AccountRepositoryInterface,
	membershipRepo repositories.MembershipRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	ledger repositories.LedgerRepositoryInterface,
	approvals ApprovalServiceInterface,
	audit AuditServiceInterface,
	clk clock.Clock,
	bank *config.BankConfig,
	logger *slog.Logger,
) AccountServiceInterface {
	return &accountService{
		accountRepo:     accountRepo,
		membershipRepo:  membershipRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		ledger:          ledger,
		approvals:       approvals,
		audit:           audit,
		clock:           clk,
		bank:            bank,
		logger:          logger,
	}
}

// CreateAccount opens an account with a fresh IBAN and makes the owner its
// OWNER member. Only admins may open accounts for someone else or with a
// non-zero interest rate.
func (s *accountService) CreateAccount(ctx context.Context, actor Actor, input CreateAccountInput) (*models.Account, error) {
	ownerID := input.OwnerID
	if ownerID == uuid.Nil {
		ownerID = actor.UserID
	}
	if ownerID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if !input.InterestRate.IsZero() && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > 100 {
		return nil, ErrInvalidAccountName
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = s.bank.DefaultCurrency
	}
	if !models.IsValidCurrency(currency) {
		return nil, ErrInvalidCurrency
	}

	if err := models.ValidateInterestRate(input.InterestRate); err != nil {
		return nil, ErrInvalidInterestRate
	}

	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}

	var account *models.Account
	for attempt := 0; attempt < maxIBANAttempts; attempt++ {
		iban, err := models.GenerateIBAN(s.bank.CountryCode, s.bank.BankCode)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIBANGeneration, err)
		}

		candidate := &models.Account{
			Name:         name,
			IBAN:         iban,
			Balance:      decimal.Zero,
			InterestRate: input.InterestRate,
			Currency:     currency,
			Status:       models.AccountStatusActive,
		}

		err = s.accountRepo.CreateWithOwner(ctx, candidate, ownerID)
		if errors.Is(err, repositories.ErrIBANExists) {
			s.logger.WarnContext(ctx, "generated IBAN collided, retrying", "attempt", attempt+1)
			continue
		}
		if err != nil {
			if errors.Is(err, models.ErrInvalidCurrency) {
				return nil, ErrInvalidCurrency
			}
			if errors.Is(err, models.ErrInvalidInterestRate) {
				return nil, ErrInvalidInterestRate
			}
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
		account = candidate
		break
	}
	if account == nil {
		return nil, ErrIBANGeneration
	}

	s.logger.InfoContext(ctx, "account created", "account_id", account.ID, "owner_id", ownerID)
	s.audit.Record(ctx, newAuditLog(actor, models.AuditActionAccountCreated, "account", account.ID, models.JSONBMap{
		"iban":     account.IBAN,
		"currency": account.Currency,
		"owner_id": ownerID.String(),
	}))

	return account, nil
}

// GetAccount returns an account the actor is a member of. Admins see all.
func (s *accountService) GetAccount(ctx context.Context, actor Actor, accountID uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	if !actor.IsAdmin() {
		if _, err := s.membershipRepo.Get(ctx, accountID, actor.UserID); err != nil {
			return nil, translateRepoError(err)
		}
	}

	return account, nil
}

func (s *accountService) ListAccountsForUser(ctx context.Context, actor Actor) ([]models.Account, error) {
	accounts, err := s.accountRepo.ListByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts lists every account matching filters. Admin only.
func (s *accountService) ListAccounts(ctx context.Context, actor Actor, filters models.AccountFilters, offset, limit int) ([]models.Account, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListWithFilters(ctx, filters, offset, normalizeLimit(limit))
}

// UpdateAccount renames an account or, for admins, changes its rate.
func (s *accountService) UpdateAccount(ctx context.Context, actor Actor, accountID uuid.UUID, input UpdateAccountInput) (*models.Account, error) {
	if input.Name == nil && input.InterestRate == nil {
		return nil, ErrNothingToUpdate
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if !account.IsActive() {
		return nil, ErrAccountNotActive
	}

	if !actor.IsAdmin() {
		if input.InterestRate != nil {
			return nil, ErrForbidden
		}
		if err := s.requireRole(ctx, actor, accountID, (*models.AccountMembership).CanWrite); err != nil {
			return nil, err
		}
	}

	fields := make(map[string]interface{})
	metadata := models.JSONBMap{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || len(name) > 100 {
			return nil, ErrInvalidAccountName
		}
		fields["name"] = name
		metadata["name"] = name
	}
	if input.InterestRate != nil {
		if err := models.ValidateInterestRate(*input.InterestRate); err != nil {
			return nil, ErrInvalidInterestRate
		}
		fields["interest_rate"] = input.InterestRate.Round(models.MoneyScale)
		metadata["interest_rate"] = input.InterestRate.String()
	}
	fields["updated_at"] = s.clock.Now().UTC()

	if err := s.accountRepo.UpdateFields(ctx, accountID, fields); err != nil {
		return nil, translateRepoError(err)
	}

	s.audit.Record(ctx, newAuditLog(actor, models.AuditActionAccountUpdated, "account", accountID, metadata))

	return s.accountRepo.GetByID(ctx, accountID)
}

// StageAccountClosure issues an ACCOUNT_CLOSE challenge for the owner. The
// balance is checked up front and again when the closure is approved.
func (s *accountService) StageAccountClosure(ctx context.Context, actor Actor, accountID uuid.UUID) (string, error) {
	account, err := s.closableAccount(ctx, actor, accountID)
	if err != nil {
		return "", err
	}
	if !account.Balance.IsZero() {
		return "", ErrNonZeroBalance
	}

	return s.approvals.CreateChallenge(ctx, ChallengeInput{
		UserID:    actor.UserID,
		IPAddress: actor.IPAddress,
		Kind:      models.ApprovalKindAccountClose,
		Payload:   models.AccountClosePayload{AccountID: accountID},
	})
}

// CloseAccount closes a zero-balance account right away. Owners and admins
// only. Pending payments of the account are cancelled.
func (s *accountService) CloseAccount(ctx context.Context, actor Actor, accountID uuid.UUID) error {
	if _, err := s.closableAccount(ctx, actor, accountID); err != nil {
		return err
	}
	return s.close(ctx, actor, accountID)
}

// HandleApproved closes the account named by an approved ACCOUNT_CLOSE
// request.
func (s *accountService) HandleApproved(ctx context.Context, request *models.PendingApprovalRequest) error {
	if request.Kind != models.ApprovalKindAccountClose {
		return fmt.Errorf("%w: account service cannot handle %s requests", ErrValidation, request.Kind)
	}

	var payload models.AccountClosePayload
	if err := request.DecodePayload(&payload); err != nil {
		return err
	}

	actor := Actor{UserID: request.UserID, IPAddress: request.IPAddress, UserAgent: "mobile-approval"}
	if _, err := s.closableAccount(ctx, actor, payload.AccountID); err != nil {
		return err
	}
	return s.close(ctx, actor, payload.AccountID)
}

func (s *accountService) close(ctx context.Context, actor Actor, accountID uuid.UUID) error {
	cancelled, err := s.ledger.CloseAccount(ctx, accountID, s.clock.Now())
	if err != nil {
		return translateRepoError(err)
	}

	s.logger.InfoContext(ctx, "account closed", "account_id", accountID, "cancelled_payments", cancelled)
	s.audit.Record(ctx, newAuditLog(actor, models.AuditActionAccountClosed, "account", accountID, models.JSONBMap{
		"cancelled_payments": cancelled,
	}))
	return nil
}

func (s *accountService) closableAccount(ctx context.Context, actor Actor, accountID uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if !actor.IsAdmin() {
		if err := s.requireRole(ctx, actor, accountID, (*models.AccountMembership).IsOwner); err != nil {
			return nil, err
		}
	}
	if !account.IsActive() {
		return nil, ErrAccountNotActive
	}
	return account, nil
}

// ListTransactions returns a page of an account's history, newest first.
func (s *accountService) ListTransactions(ctx context.Context, actor Actor, accountID uuid.UUID, query TransactionQuery) ([]models.Transaction, int64, error) {
	if _, err := s.GetAccount(ctx, actor, accountID); err != nil {
		return nil, 0, err
	}

	if query.Kind != "" && !models.IsValidTransactionKind(query.Kind) {
		return nil, 0, fmt.Errorf("%w: invalid transaction kind %q", ErrValidation, query.Kind)
	}
	if query.From != nil && query.To != nil && !query.From.Before(*query.To) {
		return nil, 0, fmt.Errorf("%w: date range is empty", ErrValidation)
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	return s.transactionRepo.ListWithFilters(ctx, models.TransactionFilters{
		AccountID: accountID,
		StartDate: query.From,
		EndDate:   query.To,
		Kind:      query.Kind,
		Offset:    query.Offset,
		Limit:     normalizeLimit(query.Limit),
	})
}

// UpdateTransactionNote changes the internal note, the only mutable field
// of a transaction.
func (s *accountService) UpdateTransactionNote(ctx context.Context, actor Actor, transactionID uuid.UUID, note string) (*models.Transaction, error) {
	if len(note) > models.MaxNoteLength {
		return nil, ErrNoteTooLong
	}

	txn, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	if !actor.IsAdmin() {
		if err := s.requireRole(ctx, actor, txn.AccountID, (*models.AccountMembership).CanWrite); err != nil {
			return nil, err
		}
	}

	if err := s.transactionRepo.UpdateNote(ctx, transactionID, note); err != nil {
		return nil, translateRepoError(err)
	}
	txn.Note = note

	s.audit.Record(ctx, newAuditLog(actor, models.AuditActionTransactionNote, "transaction", transactionID, models.JSONBMap{
		"account_id": txn.AccountID.String(),
	}))

	return txn, nil
}

func (s *accountService) requireRole(ctx context.Context, actor Actor, accountID uuid.UUID, allowed func(*models.AccountMembership) bool) error {
	membership, err := s.membershipRepo.Get(ctx, accountID, actor.UserID)
	if err != nil {
		return translateRepoError(err)
	}
	if !allowed(membership) {
		return ErrForbidden
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ledger-engine/internal/models"
	"ledger-engine/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ledgerService struct {
	ledger       repositories.LedgerRepositoryInterface
	accounts     repositories.AccountRepositoryInterface
	transactions repositories.TransactionRepositoryInterface
	audit        AuditServiceInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

func NewLedgerService(
	ledger repositories.LedgerRepositoryInterface,
	accounts repositories.AccountRepositoryInterface,
	transactions repositories.TransactionRepositoryInterface,
	audit AuditServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) LedgerServiceInterface {
	return &ledgerService{
		ledger:       ledger,
		accounts:     accounts,
		transactions: transactions,
		audit:        audit,
		metrics:      metrics,
		logger:       logger,
	}
}

// Credit posts money into an account. Admin only.
func (s *ledgerService) Credit(ctx context.Context, actor Actor, accountID uuid.UUID, amount decimal.Decimal, entry models.LedgerEntry) (*models.Transaction, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validatePosting(amount, entry); err != nil {
		return nil, err
	}

	txn, err := s.ledger.Credit(ctx, accountID, amount, entry)
	if err != nil {
		return nil, s.postingFailed(ctx, actor, models.AuditActionLedgerCredit, accountID, amount, err)
	}

	s.posted(ctx, actor, models.AuditActionLedgerCredit, txn)
	return txn, nil
}

// Debit posts money out of an account. Admin only.
func (s *ledgerService) Debit(ctx context.Context, actor Actor, accountID uuid.UUID, amount decimal.Decimal, entry models.LedgerEntry) (*models.Transaction, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validatePosting(amount, entry); err != nil {
		return nil, err
	}

	txn, err := s.ledger.Debit(ctx, accountID, amount, entry)
	if err != nil {
		return nil, s.postingFailed(ctx, actor, models.AuditActionLedgerDebit, accountID, amount, err)
	}

	s.posted(ctx, actor, models.AuditActionLedgerDebit, txn)
	return txn, nil
}

// VerifyHistory checks that the balance equals the sum of the account's
// transactions and the balance snapshot of its latest entry.
func (s *ledgerService) VerifyHistory(ctx context.Context, actor Actor, accountID uuid.UUID) (*HistoryCheck, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	sum, err := s.transactions.SumByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	_, total, err := s.transactions.ListWithFilters(ctx, models.TransactionFilters{AccountID: accountID, Limit: 1})
	if err != nil {
		return nil, err
	}

	check := &HistoryCheck{
		AccountID:         accountID,
		Balance:           account.Balance,
		Sum:               sum,
		TransactionsTotal: total,
		Consistent:        account.Balance.Equal(sum),
	}

	latest, err := s.transactions.GetLatestByAccountID(ctx, accountID)
	switch {
	case err == nil:
		check.LatestBalance = &latest.BalanceAfter
		check.Consistent = check.Consistent && latest.BalanceAfter.Equal(account.Balance)
	case errors.Is(err, repositories.ErrTransactionNotFound):
	default:
		return nil, err
	}

	if !check.Consistent {
		s.logger.ErrorContext(ctx, "ledger history does not match balance",
			"account_id", accountID,
			"balance", account.Balance.String(),
			"sum", sum.String(),
		)
	}

	return check, nil
}

func (s *ledgerService) posted(ctx context.Context, actor Actor, action string, txn *models.Transaction) {
	s.metrics.IncrementCounter("ledger.posted", map[string]string{"kind": txn.Kind})
	s.audit.Record(ctx, newAuditLog(actor, action, "account", txn.AccountID, models.JSONBMap{
		"transaction_id": txn.ID.String(),
		"amount":         txn.Amount.String(),
		"balance_after":  txn.BalanceAfter.String(),
	}))
}

func (s *ledgerService) postingFailed(ctx context.Context, actor Actor, action string, accountID uuid.UUID, amount decimal.Decimal, err error) error {
	translated := translateRepoError(err)

	log := newAuditLog(actor, action, "account", accountID, models.JSONBMap{
		"amount": amount.String(),
		"error":  translated.Error(),
	})
	log.Outcome = models.AuditOutcomeFailure
	s.audit.Record(ctx, log)

	return translated
}

func validatePosting(amount decimal.Decimal, entry models.LedgerEntry) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if entry.CounterpartyIBAN != "" && !models.ValidateIBAN(models.NormalizeIBAN(entry.CounterpartyIBAN)) {
		return ErrInvalidIBAN
	}
	if len(entry.Message) > models.MaxMessageLength {
		return ErrMessageTooLong
	}
	if len(entry.Note) > models.MaxNoteLength {
		return ErrNoteTooLong
	}
	if entry.Kind != "" && !models.IsValidTransactionKind(entry.Kind) {
		return fmt.Errorf("%w: invalid transaction kind %q", ErrValidation, entry.Kind)
	}
	return nil
}

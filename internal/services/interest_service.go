package services

import (
	"context"
	"log/slog"
	"time"

	"ledger-engine/internal/clock"
	"ledger-engine/internal/models"
	"ledger-engine/internal/repositories"

	"github.com/shopspring/decimal"
)

// interestService accrues interest daily on every ACTIVE account and books
// it at quarter end. Each account is its own unit of work; one failing
// account never stops the run.
type interestService struct {
	accounts repositories.AccountRepositoryInterface
	ledger   repositories.LedgerRepositoryInterface
	audit    AuditServiceInterface
	metrics  MetricsRecorderInterface
	clock    clock.Clock
	location *time.Location
	logger   *slog.Logger
}

func NewInterestService(
	accounts repositories.AccountRepositoryInterface,
	ledger repositories.LedgerRepositoryInterface,
	audit AuditServiceInterface,
	metrics MetricsRecorderInterface,
	clk clock.Clock,
	location *time.Location,
	logger *slog.Logger,
) InterestServiceInterface {
	if location == nil {
		location = time.UTC
	}
	return &interestService{
		accounts: accounts,
		ledger:   ledger,
		audit:    audit,
		metrics:  metrics,
		clock:    clk,
		location: location,
		logger:   logger,
	}
}

// AccrueDaily adds one day of interest to each ACTIVE account not yet
// accrued for today. Running it twice on the same day changes nothing.
func (s *interestService) AccrueDaily(ctx context.Context, today time.Time) (*InterestRunResult, error) {
	today = clock.Date(today, today.Location())
	result := &InterestRunResult{Date: today, Total: decimal.Zero}

	ids, err := s.accounts.ListIDsByStatus(ctx, models.AccountStatusActive)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		daily, applied, err := s.ledger.AccrueInterest(ctx, id, today)
		if err != nil {
			result.Failed++
			s.logger.ErrorContext(ctx, "interest accrual failed", "account_id", id, "error", err)
			continue
		}
		if !applied {
			result.Skipped++
			continue
		}

		result.Accrued++
		result.Total = result.Total.Add(daily)
		s.metrics.IncrementCounter("interest.accrued", nil)
	}

	s.metrics.RecordGauge("interest.accrued_accounts", float64(result.Accrued), nil)
	s.logger.InfoContext(ctx, "interest accrual finished",
		"date", today.Format(time.DateOnly),
		"accrued", result.Accrued,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"total", result.Total.String(),
	)
	return result, nil
}

// SettleQuarterly books accrued interest on each ACTIVE account as an
// INTEREST transaction.
func (s *interestService) SettleQuarterly(ctx context.Context) (*InterestRunResult, error) {
	result := &InterestRunResult{
		Date:     clock.Date(s.clock.Now(), s.location),
		Total:    decimal.Zero,
		Settling: true,
	}

	ids, err := s.accounts.ListIDsByStatus(ctx, models.AccountStatusActive)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		txn, err := s.ledger.SettleInterest(ctx, id)
		if err != nil {
			result.Failed++
			s.logger.ErrorContext(ctx, "interest settlement failed", "account_id", id, "error", err)
			continue
		}
		if txn == nil {
			result.Skipped++
			continue
		}

		result.Settled++
		result.Total = result.Total.Add(txn.Amount)
		s.metrics.IncrementCounter("interest.settled", nil)
		s.metrics.IncrementCounter("ledger.posted", map[string]string{"kind": models.TransactionKindInterest})
		s.audit.Record(ctx, newAuditLog(SystemActor, models.AuditActionInterestSettled, "account", id, models.JSONBMap{
			"transaction_id": txn.ID.String(),
			"amount":         txn.Amount.String(),
		}))
	}

	s.logger.InfoContext(ctx, "interest settlement finished",
		"settled", result.Settled,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"total", result.Total.String(),
	)
	return result, nil
}

// RunNightly accrues for the civil date of now and, on the last day of a
// quarter, settles right after. Settlement counters are merged into the
// accrual result.
func (s *interestService) RunNightly(ctx context.Context, now time.Time) (*InterestRunResult, error) {
	today := clock.Date(now, s.location)

	result, err := s.AccrueDaily(ctx, today)
	if err != nil {
		return result, err
	}
	if !IsQuarterEnd(today) {
		return result, nil
	}

	settled, err := s.SettleQuarterly(ctx)
	if settled != nil {
		result.Settling = true
		result.Settled = settled.Settled
		result.Failed += settled.Failed
	}
	return result, err
}

// IsQuarterEnd reports whether date is Mar 31, Jun 30, Sep 30 or Dec 31.
func IsQuarterEnd(date time.Time) bool {
	switch date.Month() {
	case time.March, time.December:
		return date.Day() == 31
	case time.June, time.September:
		return date.Day() == 30
	default:
		return false
	}
}

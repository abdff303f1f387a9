package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ledger-engine/internal/config"
	"ledger-engine/internal/services"
)

const (
	JobPaymentsLock    = "payments.lock"
	JobPaymentsExecute = "payments.execute"
	JobInterestNightly = "interest.nightly"
	JobApprovalsExpire = "approvals.expire"
	JobAuditPurge      = "audit.purge"
)

// Dependencies are the services the standard jobs drive.
type Dependencies struct {
	Payments  services.PaymentServiceInterface
	Interest  services.InterestServiceInterface
	Approvals services.ApprovalServiceInterface
	Audit     services.AuditServiceInterface
}

// RegisterLedgerJobs registers the standard jobs with their configured
// triggers. Times are wall-clock times in loc.
func RegisterLedgerJobs(s *Scheduler, cfg *config.SchedulerConfig, loc *time.Location, deps Dependencies) error {
	lockAt, err := DailyAt(cfg.PaymentLockAt, loc)
	if err != nil {
		return err
	}
	executeAt, err := DailyAt(cfg.PaymentExecuteAt, loc)
	if err != nil {
		return err
	}
	interestAt, err := DailyAt(cfg.InterestAt, loc)
	if err != nil {
		return err
	}
	purgeAt, err := DailyAt(cfg.AuditPurgeAt, loc)
	if err != nil {
		return err
	}
	sweep := cfg.ApprovalSweepPeriod
	if sweep <= 0 {
		sweep = time.Minute
	}

	jobs := []Job{
		{
			Name:    JobPaymentsLock,
			Trigger: lockAt,
			CatchUp: true,
			Run: func(ctx context.Context, at time.Time) error {
				_, err := deps.Payments.LockDuePayments(ctx, at)
				return err
			},
		},
		{
			Name:    JobPaymentsExecute,
			Trigger: executeAt,
			CatchUp: true,
			Run: func(ctx context.Context, at time.Time) error {
				result, err := deps.Payments.RunExecutionBatch(ctx, at)
				if err != nil {
					return err
				}
				if result.Failed > 0 {
					s.logger.WarnContext(ctx, "payment batch had failures", slog.Int("failed", result.Failed))
				}
				return nil
			},
		},
		{
			Name:    JobInterestNightly,
			Trigger: interestAt,
			CatchUp: true,
			Run: func(ctx context.Context, at time.Time) error {
				result, err := deps.Interest.RunNightly(ctx, at)
				if err != nil {
					return err
				}
				if result.Failed > 0 {
					return fmt.Errorf("interest run for %s failed on %d accounts", result.Date.Format(time.DateOnly), result.Failed)
				}
				return nil
			},
		},
		{
			Name:    JobApprovalsExpire,
			Trigger: Every{Interval: sweep},
			CatchUp: true,
			Run: func(ctx context.Context, _ time.Time) error {
				_, err := deps.Approvals.ExpireStale(ctx)
				return err
			},
		},
	}

	if deps.Audit != nil && cfg.AuditRetention > 0 {
		jobs = append(jobs, Job{
			Name:    JobAuditPurge,
			Trigger: purgeAt,
			Run: func(ctx context.Context, _ time.Time) error {
				_, err := deps.Audit.PurgeOlderThan(ctx, cfg.AuditRetention)
				return err
			},
		})
	}

	for _, job := range jobs {
		if err := s.Register(job); err != nil {
			return err
		}
	}
	return nil
}

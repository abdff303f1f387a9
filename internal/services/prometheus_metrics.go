package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	ledgerPostings     *prometheus.CounterVec
	paymentsStaged     *prometheus.CounterVec
	paymentsExecuted   prometheus.Counter
	paymentsFailed     *prometheus.CounterVec
	paymentsLocked     prometheus.Counter
	approvalsCreated   *prometheus.CounterVec
	approvalsResolved  *prometheus.CounterVec
	approvalsExpired   prometheus.Counter
	interestAccrued    prometheus.Counter
	interestSettled    prometheus.Counter
	jobRuns            *prometheus.CounterVec
	jobDuration        *prometheus.HistogramVec
	batchDuration      prometheus.Histogram
	pendingApprovals   prometheus.Gauge
	lastBatchExecuted  prometheus.Gauge
	lastAccrualApplied prometheus.Gauge
}

// NewPrometheusMetrics registers the ledger collectors on reg. Passing nil
// uses the default registerer.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		ledgerPostings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_postings_total",
				Help: "Total number of ledger entries appended",
			},
			[]string{"kind"},
		),
		paymentsStaged: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_staged_total",
				Help: "Total number of payment changes staged for mobile approval",
			},
			[]string{"kind"},
		),
		paymentsExecuted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "payments_executed_total",
				Help: "Total number of payments executed",
			},
		),
		paymentsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_failed_total",
				Help: "Total number of payments that failed at execution",
			},
			[]string{"reason"},
		),
		paymentsLocked: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "payments_locked_total",
				Help: "Total number of payments locked for execution",
			},
		),
		approvalsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "approval_requests_created_total",
				Help: "Total number of approval challenges issued",
			},
			[]string{"kind"},
		),
		approvalsResolved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "approval_requests_resolved_total",
				Help: "Total number of approval requests resolved",
			},
			[]string{"kind", "outcome"},
		),
		approvalsExpired: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "approval_requests_expired_total",
				Help: "Total number of approval requests expired by the sweep",
			},
		),
		interestAccrued: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "interest_accruals_total",
				Help: "Total number of daily interest accruals applied",
			},
		),
		interestSettled: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "interest_settlements_total",
				Help: "Total number of interest settlements booked",
			},
		),
		jobRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scheduler_job_runs_total",
				Help: "Total number of scheduled job runs",
			},
			[]string{"job", "status"},
		),
		jobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scheduler_job_duration_seconds",
				Help:    "Scheduled job duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"job"},
		),
		batchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "payment_batch_duration_milliseconds",
				Help:    "Payment execution batch duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
		),
		pendingApprovals: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "approval_requests_pending",
				Help: "Pending approval requests seen by the last listing",
			},
		),
		lastBatchExecuted: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "payment_batch_last_executed",
				Help: "Payments executed by the most recent batch",
			},
		),
		lastAccrualApplied: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "interest_last_accrual_accounts",
				Help: "Accounts accrued by the most recent nightly run",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "ledger.posted":
		m.ledgerPostings.WithLabelValues(tags["kind"]).Inc()
	case "payment.staged":
		m.paymentsStaged.WithLabelValues(tags["kind"]).Inc()
	case "payment.executed":
		m.paymentsExecuted.Inc()
	case "payment.failed":
		m.paymentsFailed.WithLabelValues(tags["reason"]).Inc()
	case "approval.created":
		m.approvalsCreated.WithLabelValues(tags["kind"]).Inc()
	case "approval.resolved":
		m.approvalsResolved.WithLabelValues(tags["kind"], tags["outcome"]).Inc()
	case "interest.accrued":
		m.interestAccrued.Inc()
	case "interest.settled":
		m.interestSettled.Inc()
	case "job.run":
		if job := tags["job"]; job != "" {
			m.jobRuns.WithLabelValues(job, tags["status"]).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "payment.batch":
		m.batchDuration.Observe(float64(duration.Milliseconds()))
	default:
		m.jobDuration.WithLabelValues(name).Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "approval.pending":
		m.pendingApprovals.Set(value)
	case "approval.expired":
		if value > 0 {
			m.approvalsExpired.Add(value)
		}
	case "payment.locked":
		if value > 0 {
			m.paymentsLocked.Add(value)
		}
	case "payment.batch.executed":
		m.lastBatchExecuted.Set(value)
	case "interest.accrued_accounts":
		m.lastAccrualApplied.Set(value)
	}
}

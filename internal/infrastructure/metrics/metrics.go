package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RewardMetrics covers the settlement path and the distribution worker.
type RewardMetrics struct {
	// Settlement
	SettlementsTotal       prometheus.CounterVec
	SettlementAmountTotal  prometheus.CounterVec
	SettlementErrorsTotal  prometheus.CounterVec
	RewardPointsSplitTotal prometheus.CounterVec

	// Job queue
	JobsEnqueuedTotal       prometheus.Counter
	JobEnqueueFailuresTotal prometheus.Counter
	JobsReclaimedTotal      prometheus.Counter

	// Worker
	JobsProcessedTotal    prometheus.CounterVec
	JobProcessingDuration prometheus.HistogramVec
	PayoutsTotal          prometheus.CounterVec
	PayoutAmountTotal     prometheus.CounterVec
	UnusedCommissionTotal prometheus.Counter
	PromotionsTotal       prometheus.CounterVec
}

func NewRewardMetrics() *RewardMetrics {
	return &RewardMetrics{
		SettlementsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkout_settlements_total",
				Help: "Settlement attempts by outcome",
			},
			[]string{"outcome"},
		),

		SettlementAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkout_settlement_amount_total",
				Help: "Total amount debited by completed settlements",
			},
			[]string{"outcome"},
		),

		SettlementErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkout_settlement_errors_total",
				Help: "Settlement failures by error type",
			},
			[]string{"error_type"},
		),

		RewardPointsSplitTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reward_points_split_total",
				Help: "Reward points allocated per pool at settlement",
			},
			[]string{"pool"},
		),

		JobsEnqueuedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "reward_jobs_enqueued_total",
				Help: "Reward jobs enqueued by settlements",
			},
		),

		JobEnqueueFailuresTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "reward_job_enqueue_failures_total",
				Help: "Enqueue failures swallowed by the settlement path",
			},
		),

		JobsReclaimedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "reward_jobs_reclaimed_total",
				Help: "Jobs recovered from expired leases",
			},
		),

		JobsProcessedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reward_jobs_processed_total",
				Help: "Worker job outcomes (completed, retried, dead_letter)",
			},
			[]string{"outcome"},
		),

		JobProcessingDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reward_job_processing_duration_seconds",
				Help:    "Time spent distributing one job",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"outcome"},
		),

		PayoutsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reward_payouts_total",
				Help: "Commission payouts by transaction kind",
			},
			[]string{"kind"},
		),

		PayoutAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reward_payout_amount_total",
				Help: "Points paid out by transaction kind",
			},
			[]string{"kind"},
		),

		UnusedCommissionTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "reward_unused_commission_total",
				Help: "Commission points folded back into the gift pool",
			},
		),

		PromotionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reward_tree_promotions_total",
				Help: "Tree level promotions applied by the worker",
			},
			[]string{"level"},
		),
	}
}

func (m *RewardMetrics) RecordSettlement(outcome string, amount float64) {
	m.SettlementsTotal.WithLabelValues(outcome).Inc()
	m.SettlementAmountTotal.WithLabelValues(outcome).Add(amount)
}

func (m *RewardMetrics) RecordSettlementError(errorType string) {
	m.SettlementErrorsTotal.WithLabelValues(errorType).Inc()
}

func (m *RewardMetrics) RecordShareSplit(tree, gifts, app, referral float64) {
	m.RewardPointsSplitTotal.WithLabelValues("tree").Add(tree)
	m.RewardPointsSplitTotal.WithLabelValues("gifts").Add(gifts)
	m.RewardPointsSplitTotal.WithLabelValues("app").Add(app)
	m.RewardPointsSplitTotal.WithLabelValues("referral").Add(referral)
}

func (m *RewardMetrics) RecordJobOutcome(outcome string, seconds float64) {
	m.JobsProcessedTotal.WithLabelValues(outcome).Inc()
	m.JobProcessingDuration.WithLabelValues(outcome).Observe(seconds)
}

func (m *RewardMetrics) RecordPayout(kind string, amount float64) {
	m.PayoutsTotal.WithLabelValues(kind).Inc()
	m.PayoutAmountTotal.WithLabelValues(kind).Add(amount)
}

func (m *RewardMetrics) RecordPromotion(level string) {
	m.PromotionsTotal.WithLabelValues(level).Inc()
}

package domain

// RewardPayout is one computed commission: a ledger row plus a balance
// credit for its recipient.
type RewardPayout struct {
	CustomerID  string
	Amount      float64
	Kind        TransactionKind
	Description string
}

// DistributionRepository commits a job's entire distribution as one
// all-or-nothing unit: payout transactions, balance credits, pool records
// and the job's completion. The completion update is fenced on the
// claiming attempt, so a worker holding a stale claim can never commit
// over a re-claimed job.
type DistributionRepository interface {
	ApplyDistribution(
		jobID string,
		attempt int,
		sourceTxID string,
		payouts []RewardPayout,
		poolRecords []*Transaction,
	) error
}

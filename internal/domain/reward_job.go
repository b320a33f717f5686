package domain

import "time"

type RewardJobStatus string

const (
	JobPending    RewardJobStatus = "PENDING"
	JobProcessing RewardJobStatus = "PROCESSING"
	JobCompleted  RewardJobStatus = "COMPLETED"
	JobFailed     RewardJobStatus = "FAILED"
)

// RewardShares is the split computed at settlement time and frozen in the
// job payload, so settings drift never changes an already-queued payout.
type RewardShares struct {
	Total         float64 `json:"total"`
	TreeShare     float64 `json:"tree_share"`
	GiftsShare    float64 `json:"gifts_share"`
	AppShare      float64 `json:"app_share"`
	ReferralShare float64 `json:"referral_share"`
}

type RewardJob struct {
	ID                  string
	CustomerID          string
	SourceTransactionID string
	Status              RewardJobStatus
	Payload             RewardShares
	AttemptCount        int
	MaxAttempts         int
	LeaseExpiresAt      time.Time
	Error               string
	CreatedAt           time.Time
	StartedAt           time.Time
	CompletedAt         time.Time
}

type RewardJobStats struct {
	Pending    int64
	Processing int64
	Completed  int64
	Failed     int64
}

type RewardJobRepository interface {
	Enqueue(job *RewardJob) error

	// ClaimNext atomically claims the oldest claimable pending job:
	// status flips to PROCESSING, attempt_count increments and the lease
	// starts, all in one conditional update. ErrNoPendingJobs when empty.
	ClaimNext(lease time.Duration) (*RewardJob, error)

	// ReclaimExpired resets PROCESSING jobs with an expired lease back to
	// PENDING and returns how many were recovered.
	ReclaimExpired(now time.Time) (int64, error)

	MarkCompleted(jobID string) error
	MarkFailed(jobID string, errMsg string) error
	// Release returns a claimed job to PENDING for another attempt.
	Release(jobID string, errMsg string) error

	GetJobByID(jobID string) (*RewardJob, error)
	GetJobsByCustomerID(customerID string, page, limit int64) ([]*RewardJob, int64, error)
	CountByStatus() (*RewardJobStats, error)
	// AverageProcessingTime is measured over the most recent completed jobs.
	AverageProcessingTime(window int) (time.Duration, error)
}

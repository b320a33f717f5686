package reward

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	publisher "github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/kafka"
)

// StartWorker drives the poll-sleep-claim cycle. One claimed job is fully
// processed per tick; empty polls just wait for the next tick.
func (uc *DefaultRewardUsecase) StartWorker(ctx context.Context) {
	ticker := time.NewTicker(uc.Config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for {
				err := uc.ProcessNextJob()
				if err == nil {
					continue // drain the queue while jobs are available
				}
				if !errors.Is(err, domain.ErrNoPendingJobs) {
					log.Printf("reward worker error: %v", err)
				}
				break
			}
		}
	}
}

// StartLeaseSweeper reclaims jobs whose worker died mid-lease.
func (uc *DefaultRewardUsecase) StartLeaseSweeper(ctx context.Context) {
	ticker := time.NewTicker(uc.Config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reclaimed, err := uc.JobRepo.ReclaimExpired(time.Now())
			if err != nil {
				log.Printf("lease sweep error: %v", err)
				continue
			}
			if reclaimed > 0 {
				slog.Info("reclaimed stale reward jobs", "count", reclaimed)
				if uc.Metrics != nil {
					uc.Metrics.JobsReclaimedTotal.Add(float64(reclaimed))
				}
			}
		}
	}
}

// ProcessNextJob claims and fully processes one job.
// ErrNoPendingJobs when the queue is empty.
func (uc *DefaultRewardUsecase) ProcessNextJob() error {
	job, err := uc.JobRepo.ClaimNext(uc.Config.LeaseDuration)
	if err != nil {
		return err
	}

	started := time.Now()
	if err := uc.distribute(job); err != nil {
		uc.handleFailure(job, err, time.Since(started))
		return nil
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordJobOutcome("completed", time.Since(started).Seconds())
	}
	uc.publishJobEvent(job, "reward_distributed", "")
	return nil
}

// distribute runs the full job body: promotion walk, distribution plan,
// direct referral payout, then one atomic apply that also completes the
// job. Everything before the apply is read-only or idempotent, so a retry
// after any failure re-executes safely.
func (uc *DefaultRewardUsecase) distribute(job *domain.RewardJob) error {
	if err := uc.promoteChain(job.CustomerID); err != nil {
		return err
	}

	chain, err := uc.CustomerRepo.GetAncestorChain(job.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to load ancestor chain: %w", err)
	}

	plan := BuildDistributionPlan(job.Payload.TreeShare, chain)
	payouts := plan.Payouts

	// The direct referral reward goes to the immediate parent; with no
	// payable parent it joins the gift pool rather than evaporating.
	unpaidReferral := 0.0
	if job.Payload.ReferralShare > 0 {
		if len(chain) > 0 && chain[0].Payable() {
			payouts = append(payouts, domain.RewardPayout{
				CustomerID:  chain[0].ID,
				Amount:      job.Payload.ReferralShare,
				Kind:        domain.KindDirectReferralReward,
				Description: "direct referral reward",
			})
		} else {
			unpaidReferral = job.Payload.ReferralShare
		}
	}

	poolRecords := make([]*domain.Transaction, 0, 2)
	giftAmount := job.Payload.GiftsShare + plan.Unused + unpaidReferral
	if giftAmount > 0 {
		poolRecords = append(poolRecords, &domain.Transaction{
			CustomerID:           job.CustomerID,
			Amount:               giftAmount,
			Kind:                 domain.KindGiftReward,
			Status:               domain.TxCompleted,
			RelatedTransactionID: job.SourceTransactionID,
			Description:          "gift pool share incl. undistributed commission",
		})
	}
	if job.Payload.AppShare > 0 {
		poolRecords = append(poolRecords, &domain.Transaction{
			CustomerID:           job.CustomerID,
			Amount:               job.Payload.AppShare,
			Kind:                 domain.KindAppRevenueReward,
			Status:               domain.TxCompleted,
			RelatedTransactionID: job.SourceTransactionID,
			Description:          "platform revenue share",
		})
	}

	if err := uc.DistributionRepo.ApplyDistribution(
		job.ID,
		job.AttemptCount,
		job.SourceTransactionID,
		payouts,
		poolRecords,
	); err != nil {
		return err
	}

	if uc.Metrics != nil {
		for _, payout := range payouts {
			uc.Metrics.RecordPayout(string(payout.Kind), payout.Amount)
		}
		uc.Metrics.UnusedCommissionTotal.Add(plan.Unused)
	}
	return nil
}

func (uc *DefaultRewardUsecase) handleFailure(job *domain.RewardJob, cause error, elapsed time.Duration) {
	// A failed attempt fence means the lease expired and someone else owns
	// the job now; this worker must not touch it again.
	if errors.Is(cause, domain.ErrJobNotClaimable) {
		slog.Info("lost job claim, leaving it to the new owner", "job_id", job.ID)
		return
	}

	slog.Error("reward distribution failed",
		"job_id", job.ID,
		"customer_id", job.CustomerID,
		"attempt", job.AttemptCount,
		"max_attempts", job.MaxAttempts,
		"error", cause.Error(),
	)

	if job.AttemptCount >= job.MaxAttempts {
		if err := uc.JobRepo.MarkFailed(job.ID, cause.Error()); err != nil {
			slog.Error("failed to dead-letter job", "job_id", job.ID, "error", err.Error())
			return
		}
		if uc.Metrics != nil {
			uc.Metrics.RecordJobOutcome("dead_letter", elapsed.Seconds())
		}
		uc.publishJobEvent(job, "reward_dead_letter", cause.Error())
		return
	}

	if err := uc.JobRepo.Release(job.ID, cause.Error()); err != nil {
		slog.Error("failed to release job for retry", "job_id", job.ID, "error", err.Error())
		return
	}
	if uc.Metrics != nil {
		uc.Metrics.RecordJobOutcome("retried", elapsed.Seconds())
	}
}

func (uc *DefaultRewardUsecase) publishJobEvent(job *domain.RewardJob, stage, errMsg string) {
	if uc.Publisher == nil {
		return
	}
	go func(event publisher.RewardEvent) {
		if err := uc.Publisher.PublishRewardEvent(event); err != nil {
			slog.Error("failed to publish RewardEvent", "stage", event.Stage, "error", err.Error())
		}
	}(publisher.RewardEvent{
		CustomerID:    job.CustomerID,
		TransactionID: job.SourceTransactionID,
		JobID:         job.ID,
		Stage:         stage,
		RewardPoints:  job.Payload.Total,
		Error:         errMsg,
	})
}

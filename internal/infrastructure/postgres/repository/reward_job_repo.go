package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/mappers"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultRewardJobRepository struct {
	DB *gorm.DB
}

func NewDefaultRewardJobRepository(db *gorm.DB) *DefaultRewardJobRepository {
	return &DefaultRewardJobRepository{DB: db}
}

func (r *DefaultRewardJobRepository) Enqueue(job *domain.RewardJob) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.Status == "" {
		job.Status = domain.JobPending
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	model := mappers.ToGORMRewardJob(job)
	return r.DB.Create(model).Error
}

// ClaimNext picks the oldest claimable pending job and flips it to
// PROCESSING in one transaction. SKIP LOCKED keeps concurrent workers
// from ever observing the same row.
func (r *DefaultRewardJobRepository) ClaimNext(lease time.Duration) (*domain.RewardJob, error) {
	var claimed *domain.RewardJob

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var model models.RewardJobModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ? AND attempt_count < max_attempts", domain.JobPending).
			Order("created_at ASC").
			First(&model).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNoPendingJobs
			}
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":           domain.JobProcessing,
			"attempt_count":    gorm.Expr("attempt_count + 1"),
			"lease_expires_at": now.Add(lease),
			"started_at":       now,
		}
		if err := tx.Model(&models.RewardJobModel{}).
			Where("id = ?", model.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		model.Status = domain.JobProcessing
		model.AttemptCount++
		model.LeaseExpiresAt = now.Add(lease)
		model.StartedAt = now
		claimed = mappers.ToDomainRewardJob(&model)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// ReclaimExpired resets abandoned PROCESSING jobs whose lease has run out.
// Crash recovery only; reclaimed jobs keep their attempt count.
func (r *DefaultRewardJobRepository) ReclaimExpired(now time.Time) (int64, error) {
	result := r.DB.Model(&models.RewardJobModel{}).
		Where("status = ? AND lease_expires_at < ?", domain.JobProcessing, now).
		Updates(map[string]interface{}{
			"status": domain.JobPending,
			"error":  "lease expired, reclaimed",
		})
	return result.RowsAffected, result.Error
}

func (r *DefaultRewardJobRepository) MarkCompleted(jobID string) error {
	return r.transition(jobID, domain.JobProcessing, map[string]interface{}{
		"status":       domain.JobCompleted,
		"completed_at": time.Now(),
		"error":        "",
	})
}

func (r *DefaultRewardJobRepository) MarkFailed(jobID string, errMsg string) error {
	return r.transition(jobID, domain.JobProcessing, map[string]interface{}{
		"status": domain.JobFailed,
		"error":  errMsg,
	})
}

func (r *DefaultRewardJobRepository) Release(jobID string, errMsg string) error {
	return r.transition(jobID, domain.JobProcessing, map[string]interface{}{
		"status": domain.JobPending,
		"error":  errMsg,
	})
}

func (r *DefaultRewardJobRepository) transition(jobID string, from domain.RewardJobStatus, updates map[string]interface{}) error {
	result := r.DB.Model(&models.RewardJobModel{}).
		Where("id = ? AND status = ?", jobID, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrJobNotClaimable
	}
	return nil
}

func (r *DefaultRewardJobRepository) GetJobByID(jobID string) (*domain.RewardJob, error) {
	var model models.RewardJobModel
	if err := r.DB.First(&model, "id = ?", jobID).Error; err != nil {
		return nil, err
	}
	return mappers.ToDomainRewardJob(&model), nil
}

func (r *DefaultRewardJobRepository) GetJobsByCustomerID(customerID string, page, limit int64) ([]*domain.RewardJob, int64, error) {
	var jobModels []models.RewardJobModel
	var total int64

	query := r.DB.Model(&models.RewardJobModel{}).Where("customer_id = ?", customerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&jobModels).Error; err != nil {
		return nil, 0, err
	}

	jobs := make([]*domain.RewardJob, len(jobModels))
	for i, model := range jobModels {
		jobs[i] = mappers.ToDomainRewardJob(&model)
	}
	return jobs, total, nil
}

func (r *DefaultRewardJobRepository) CountByStatus() (*domain.RewardJobStats, error) {
	type statusCount struct {
		Status domain.RewardJobStatus
		Count  int64
	}

	var rows []statusCount
	if err := r.DB.Model(&models.RewardJobModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	stats := &domain.RewardJobStats{}
	for _, row := range rows {
		switch row.Status {
		case domain.JobPending:
			stats.Pending = row.Count
		case domain.JobProcessing:
			stats.Processing = row.Count
		case domain.JobCompleted:
			stats.Completed = row.Count
		case domain.JobFailed:
			stats.Failed = row.Count
		}
	}
	return stats, nil
}

func (r *DefaultRewardJobRepository) AverageProcessingTime(window int) (time.Duration, error) {
	if window <= 0 {
		window = 50
	}

	var seconds float64
	err := r.DB.Raw(`
		SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (completed_at - started_at))), 0)
		FROM (
			SELECT started_at, completed_at
			FROM reward_job_models
			WHERE status = ?
			ORDER BY completed_at DESC
			LIMIT ?
		) recent`, domain.JobCompleted, window).
		Scan(&seconds).Error
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

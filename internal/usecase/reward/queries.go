package reward

import (
	"time"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
)

// Operational query surface backing admin job inspection. Dead-lettered
// jobs are only visible here; nothing in the purchase path reports them.

func (uc *DefaultRewardUsecase) GetJobHistory(customerID string, page, limit int64) ([]*domain.RewardJob, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return uc.JobRepo.GetJobsByCustomerID(customerID, page, limit)
}

func (uc *DefaultRewardUsecase) GetJobStats() (*domain.RewardJobStats, error) {
	return uc.JobRepo.CountByStatus()
}

func (uc *DefaultRewardUsecase) GetAverageProcessingTime(window int) (time.Duration, error) {
	return uc.JobRepo.AverageProcessingTime(window)
}

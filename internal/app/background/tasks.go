package background

import (
	"context"

	"github.com/mallmarketing055-de/mall-sub000/internal/usecase/reward"
)

type BackgroundTasks struct {
	RewardUsecase reward.RewardUsecase
}

func NewBackgroundTasks(rewardUC reward.RewardUsecase) *BackgroundTasks {
	return &BackgroundTasks{
		RewardUsecase: rewardUC,
	}
}

// StartAll launches the distribution worker and the lease sweeper. Both
// loops stop when ctx is canceled; both are safe to run in several
// processes at once against the shared queue.
func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.RewardUsecase.StartWorker(ctx)
	go bt.RewardUsecase.StartLeaseSweeper(ctx)
}

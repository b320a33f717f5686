package reward

import (
	"context"
	"time"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	publisher "github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/kafka"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/metrics"
)

type RewardUsecase interface {
	// StartWorker runs the poll-claim-distribute cycle until ctx ends.
	// Safe to run from multiple processes against the shared queue.
	StartWorker(ctx context.Context)
	// StartLeaseSweeper periodically returns abandoned jobs to the queue.
	StartLeaseSweeper(ctx context.Context)

	ProcessNextJob() error

	GetJobHistory(customerID string, page, limit int64) ([]*domain.RewardJob, int64, error)
	GetJobStats() (*domain.RewardJobStats, error)
	GetAverageProcessingTime(window int) (time.Duration, error)
}

type WorkerConfig struct {
	PollInterval  time.Duration
	SweepInterval time.Duration
	LeaseDuration time.Duration
}

func (c *WorkerConfig) withDefaults() WorkerConfig {
	cfg := *c
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 30 * time.Second
	}
	if cfg.LeaseDuration <= 0 {
		cfg.LeaseDuration = 5 * time.Minute
	}
	return cfg
}

type DefaultRewardUsecase struct {
	CustomerRepo     domain.CustomerRepository
	JobRepo          domain.RewardJobRepository
	TxRepo           domain.TransactionRepository
	SettingsRepo     domain.RewardSettingsRepository
	DistributionRepo domain.DistributionRepository
	Publisher        *publisher.RewardEventPublisher
	Metrics          *metrics.RewardMetrics
	Config           WorkerConfig
}

func NewDefaultRewardUsecase(
	customerRepo domain.CustomerRepository,
	jobRepo domain.RewardJobRepository,
	txRepo domain.TransactionRepository,
	settingsRepo domain.RewardSettingsRepository,
	distributionRepo domain.DistributionRepository,
	eventPublisher *publisher.RewardEventPublisher,
	rewardMetrics *metrics.RewardMetrics,
	config WorkerConfig,
) *DefaultRewardUsecase {
	return &DefaultRewardUsecase{
		CustomerRepo:     customerRepo,
		JobRepo:          jobRepo,
		TxRepo:           txRepo,
		SettingsRepo:     settingsRepo,
		DistributionRepo: distributionRepo,
		Publisher:        eventPublisher,
		Metrics:          rewardMetrics,
		Config:           config.withDefaults(),
	}
}

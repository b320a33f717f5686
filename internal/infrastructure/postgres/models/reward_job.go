package models

import (
	"time"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
)

type RewardJobModel struct {
	ID                  string                 `gorm:"primaryKey;type:uuid"`
	CustomerID          string                 `gorm:"type:uuid;index:idx_job_customer"`
	SourceTransactionID string                 `gorm:"type:uuid"`
	Status              domain.RewardJobStatus `gorm:"index:idx_job_status_created"`
	Payload             string                 `gorm:"type:jsonb"` // frozen RewardShares
	AttemptCount        int
	MaxAttempts         int
	LeaseExpiresAt      time.Time              `gorm:"index:idx_job_lease"`
	Error               string
	CreatedAt           time.Time              `gorm:"index:idx_job_status_created"`
	StartedAt           time.Time
	CompletedAt         time.Time
}

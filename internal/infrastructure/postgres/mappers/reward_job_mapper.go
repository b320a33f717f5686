package mappers

import (
	"encoding/json"
	"log/slog"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/models"
)

func ToDomainRewardJob(model *models.RewardJobModel) *domain.RewardJob {
	var payload domain.RewardShares
	if model.Payload != "" {
		if err := json.Unmarshal([]byte(model.Payload), &payload); err != nil {
			slog.Error("failed to decode reward job payload", "job_id", model.ID, "error", err.Error())
		}
	}

	return &domain.RewardJob{
		ID:                  model.ID,
		CustomerID:          model.CustomerID,
		SourceTransactionID: model.SourceTransactionID,
		Status:              model.Status,
		Payload:             payload,
		AttemptCount:        model.AttemptCount,
		MaxAttempts:         model.MaxAttempts,
		LeaseExpiresAt:      model.LeaseExpiresAt,
		Error:               model.Error,
		CreatedAt:           model.CreatedAt,
		StartedAt:           model.StartedAt,
		CompletedAt:         model.CompletedAt,
	}
}

func ToGORMRewardJob(job *domain.RewardJob) *models.RewardJobModel {
	payload, err := json.Marshal(job.Payload)
	if err != nil {
		slog.Error("failed to encode reward job payload", "job_id", job.ID, "error", err.Error())
		payload = []byte("{}")
	}

	return &models.RewardJobModel{
		ID:                  job.ID,
		CustomerID:          job.CustomerID,
		SourceTransactionID: job.SourceTransactionID,
		Status:              job.Status,
		Payload:             string(payload),
		AttemptCount:        job.AttemptCount,
		MaxAttempts:         job.MaxAttempts,
		LeaseExpiresAt:      job.LeaseExpiresAt,
		Error:               job.Error,
		CreatedAt:           job.CreatedAt,
		StartedAt:           job.StartedAt,
		CompletedAt:         job.CompletedAt,
	}
}

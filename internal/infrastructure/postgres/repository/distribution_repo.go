package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/mappers"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDistributionRepository struct {
	DB *gorm.DB
}

func NewDefaultDistributionRepository(db *gorm.DB) *DefaultDistributionRepository {
	return &DefaultDistributionRepository{DB: db}
}

// ApplyDistribution writes every payout transaction, every balance credit,
// every pool record and the job completion inside one database
// transaction. A crash before commit leaves nothing applied, so retrying
// the whole job body is safe. The completion update is conditional on
// (status, attempt_count): a worker whose lease expired and whose job was
// re-claimed fails the fence and everything rolls back.
func (r *DefaultDistributionRepository) ApplyDistribution(
	jobID string,
	attempt int,
	sourceTxID string,
	payouts []domain.RewardPayout,
	poolRecords []*domain.Transaction,
) error {
	now := time.Now()

	return r.DB.Transaction(func(tx *gorm.DB) error {
		for _, payout := range payouts {
			txModel := mappers.ToGORMTransaction(&domain.Transaction{
				ID:                   uuid.New().String(),
				CustomerID:           payout.CustomerID,
				Amount:               payout.Amount,
				Kind:                 payout.Kind,
				Status:               domain.TxCompleted,
				RelatedTransactionID: sourceTxID,
				Description:          payout.Description,
				CreatedAt:            now,
			})
			if err := tx.Create(txModel).Error; err != nil {
				return fmt.Errorf("failed to record payout transaction: %w", err)
			}

			result := tx.Model(&models.CustomerModel{}).
				Where("id = ?", payout.CustomerID).
				Updates(map[string]interface{}{
					"balance":    gorm.Expr("balance + ?", payout.Amount),
					"updated_at": now,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to credit payout: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("payout recipient %s: %w", payout.CustomerID, domain.ErrCustomerNotFound)
			}
		}

		// Pool entries are accounting records only, no wallet is credited.
		for _, record := range poolRecords {
			if record.ID == "" {
				record.ID = uuid.New().String()
			}
			if record.CreatedAt.IsZero() {
				record.CreatedAt = now
			}
			if err := tx.Create(mappers.ToGORMTransaction(record)).Error; err != nil {
				return fmt.Errorf("failed to record pool transaction: %w", err)
			}
		}

		result := tx.Model(&models.RewardJobModel{}).
			Where("id = ? AND status = ? AND attempt_count = ?",
				jobID, domain.JobProcessing, attempt).
			Updates(map[string]interface{}{
				"status":       domain.JobCompleted,
				"completed_at": now,
				"error":        "",
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrJobNotClaimable
		}
		return nil
	})
}

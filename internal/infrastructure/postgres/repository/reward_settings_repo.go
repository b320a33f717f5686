package repository

import (
	"errors"
	"time"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/mappers"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// settingsRowID keys the singleton row.
const settingsRowID = "00000000-0000-0000-0000-000000000001"

type DefaultRewardSettingsRepository struct {
	DB *gorm.DB
}

func NewDefaultRewardSettingsRepository(db *gorm.DB) *DefaultRewardSettingsRepository {
	return &DefaultRewardSettingsRepository{DB: db}
}

func (r *DefaultRewardSettingsRepository) GetSettings() (*domain.RewardSettings, error) {
	var model models.RewardSettingsModel
	if err := r.DB.First(&model, "id = ?", settingsRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DefaultRewardSettings(), nil
		}
		return nil, err
	}
	return mappers.ToDomainRewardSettings(&model), nil
}

func (r *DefaultRewardSettingsRepository) UpdateSettings(settings *domain.RewardSettings) error {
	model := mappers.ToGORMRewardSettings(settings)
	model.ID = settingsRowID
	model.UpdatedAt = time.Now()

	return r.DB.Transaction(func(tx *gorm.DB) error {
		var current models.RewardSettingsModel
		err := tx.First(&current, "id = ?", settingsRowID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			model.Version = 1
			return tx.Create(model).Error
		case err != nil:
			return err
		default:
			model.Version = current.Version + 1
			return tx.Model(&models.RewardSettingsModel{}).
				Where("id = ?", settingsRowID).
				Select("*").Omit("id").
				Updates(model).Error
		}
	})
}

package mappers

import (
	"encoding/json"
	"log/slog"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/models"
)

func ToDomainRewardSettings(model *models.RewardSettingsModel) *domain.RewardSettings {
	giftTable := map[domain.TreeLevel]float64{}
	if model.PerLevelGiftTable != "" {
		if err := json.Unmarshal([]byte(model.PerLevelGiftTable), &giftTable); err != nil {
			slog.Error("failed to decode per-level gift table", "error", err.Error())
		}
	}

	return &domain.RewardSettings{
		TreeSharePct:      model.TreeSharePct,
		GiftsSharePct:     model.GiftsSharePct,
		AppSharePct:       model.AppSharePct,
		DirectReferralPct: model.DirectReferralPct,
		PerLevelGiftTable: giftTable,
		LevelGiftsEnabled: model.LevelGiftsEnabled,
		Version:           model.Version,
		UpdatedAt:         model.UpdatedAt,
	}
}

func ToGORMRewardSettings(settings *domain.RewardSettings) *models.RewardSettingsModel {
	giftTable, err := json.Marshal(settings.PerLevelGiftTable)
	if err != nil {
		slog.Error("failed to encode per-level gift table", "error", err.Error())
		giftTable = []byte("{}")
	}

	return &models.RewardSettingsModel{
		TreeSharePct:      settings.TreeSharePct,
		GiftsSharePct:     settings.GiftsSharePct,
		AppSharePct:       settings.AppSharePct,
		DirectReferralPct: settings.DirectReferralPct,
		PerLevelGiftTable: string(giftTable),
		LevelGiftsEnabled: settings.LevelGiftsEnabled,
		Version:           settings.Version,
		UpdatedAt:         settings.UpdatedAt,
	}
}

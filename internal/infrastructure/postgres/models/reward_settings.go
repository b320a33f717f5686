package models

import "time"

// RewardSettingsModel is a one-row table keyed by a fixed ID.
type RewardSettingsModel struct {
	ID                string  `gorm:"primaryKey;type:uuid"`
	TreeSharePct      float64
	GiftsSharePct     float64
	AppSharePct       float64
	DirectReferralPct float64
	PerLevelGiftTable string  `gorm:"type:jsonb"` // level -> flat bonus amount
	LevelGiftsEnabled bool
	Version           int
	UpdatedAt         time.Time
}

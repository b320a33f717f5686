package domain

import "time"

// RewardSettings is a versioned singleton. The four share fractions are
// applied to a purchase's total reward points at settlement time.
type RewardSettings struct {
	TreeSharePct      float64
	GiftsSharePct     float64
	AppSharePct       float64
	DirectReferralPct float64
	PerLevelGiftTable map[TreeLevel]float64
	LevelGiftsEnabled bool
	Version           int
	UpdatedAt         time.Time
}

// DefaultRewardSettings applies until an administrator writes the singleton.
func DefaultRewardSettings() *RewardSettings {
	return &RewardSettings{
		TreeSharePct:      0.5,
		GiftsSharePct:     0.15,
		AppSharePct:       0.3,
		DirectReferralPct: 0.05,
		PerLevelGiftTable: map[TreeLevel]float64{},
		LevelGiftsEnabled: false,
		Version:           0,
	}
}

// ShareSum is the allocated fraction of the reward points. Sums above 1.0
// would mint points out of nothing and are rejected at update time.
func (s *RewardSettings) ShareSum() float64 {
	return s.TreeSharePct + s.GiftsSharePct + s.AppSharePct + s.DirectReferralPct
}

// Split computes the four pool shares for a purchase's reward points.
func (s *RewardSettings) Split(totalRewardPoints float64) RewardShares {
	return RewardShares{
		Total:         totalRewardPoints,
		TreeShare:     totalRewardPoints * s.TreeSharePct,
		GiftsShare:    totalRewardPoints * s.GiftsSharePct,
		AppShare:      totalRewardPoints * s.AppSharePct,
		ReferralShare: totalRewardPoints * s.DirectReferralPct,
	}
}

type RewardSettingsRepository interface {
	// GetSettings returns the singleton, or defaults when none is stored.
	GetSettings() (*RewardSettings, error)
	// UpdateSettings persists the singleton and bumps its version.
	UpdateSettings(settings *RewardSettings) error
}

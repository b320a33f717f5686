package reward

import (
	"testing"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func referralsAt(levels ...domain.TreeLevel) []*domain.Customer {
	referrals := make([]*domain.Customer, len(levels))
	for i, level := range levels {
		referrals[i] = &domain.Customer{ID: string(rune('a' + i)), TreeLevel: level}
	}
	return referrals
}

func TestEvaluatePromotionTwoReferralsSameLevel(t *testing.T) {
	newLevel, ok := EvaluatePromotion(
		domain.LevelStarter,
		referralsAt(domain.LevelBronze, domain.LevelBronze),
	)

	assert.True(t, ok)
	assert.Equal(t, domain.LevelSilver, newLevel)
}

func TestEvaluatePromotionBelowThreshold(t *testing.T) {
	_, ok := EvaluatePromotion(
		domain.LevelStarter,
		referralsAt(domain.LevelBronze, domain.LevelSilver),
	)
	assert.False(t, ok)
}

func TestEvaluatePromotionNeverDemotes(t *testing.T) {
	// Customer already outranks the successor their referrals justify.
	_, ok := EvaluatePromotion(
		domain.LevelDiamond,
		referralsAt(domain.LevelBronze, domain.LevelBronze),
	)
	assert.False(t, ok)
}

func TestEvaluatePromotionPicksHighestQualifyingLevel(t *testing.T) {
	newLevel, ok := EvaluatePromotion(
		domain.LevelStarter,
		referralsAt(
			domain.LevelBronze, domain.LevelBronze,
			domain.LevelGold, domain.LevelGold,
		),
	)

	assert.True(t, ok)
	assert.Equal(t, domain.LevelPlatinum, newLevel)
}

func TestEvaluatePromotionTopLevelReferralsHaveNoSuccessor(t *testing.T) {
	_, ok := EvaluatePromotion(
		domain.LevelDiamond,
		referralsAt(domain.LevelCrown, domain.LevelCrown),
	)
	assert.False(t, ok)
}

func TestEvaluatePromotionToTop(t *testing.T) {
	newLevel, ok := EvaluatePromotion(
		domain.LevelEmerald,
		referralsAt(domain.LevelDiamond, domain.LevelDiamond),
	)

	assert.True(t, ok)
	assert.Equal(t, domain.LevelCrown, newLevel)
}

func TestEvaluatePromotionNoReferrals(t *testing.T) {
	_, ok := EvaluatePromotion(domain.LevelStarter, nil)
	assert.False(t, ok)
}

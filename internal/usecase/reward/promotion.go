package reward

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
)

// promotionThreshold is how many direct referrals must share a level
// before their referrer is promoted past it.
const promotionThreshold = 2

// EvaluatePromotion decides the level a customer should be promoted to,
// given their current level and their direct referrals' levels. The
// highest level held by at least two referrals wins; the customer moves
// to that level's successor when it outranks their own. ok is false when
// no promotion applies.
func EvaluatePromotion(current domain.TreeLevel, referrals []*domain.Customer) (domain.TreeLevel, bool) {
	counts := make(map[domain.TreeLevel]int)
	for _, referral := range referrals {
		counts[referral.TreeLevel]++
	}

	ladder := domain.LevelLadder()
	for i := len(ladder) - 1; i >= 0; i-- {
		level := ladder[i]
		if counts[level] < promotionThreshold {
			continue
		}
		successor, ok := level.Next()
		if !ok {
			// Two referrals already at the top cannot push anyone higher.
			continue
		}
		if current.Rank() < successor.Rank() {
			return successor, true
		}
	}
	return current, false
}

// promoteChain re-evaluates the purchaser and every ancestor in turn,
// promoting each where their referrals justify it. Promotion is monotonic
// and conditional at the store, so concurrent workers cannot regress a
// level or double-apply the same promotion.
func (uc *DefaultRewardUsecase) promoteChain(customerID string) error {
	settings, err := uc.SettingsRepo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings for promotion: %w", err)
	}

	currentID := customerID
	for depth := 0; currentID != "" && depth < 100; depth++ {
		customer, err := uc.CustomerRepo.GetCustomerByID(currentID)
		if err != nil {
			return fmt.Errorf("promotion walk at %s: %w", currentID, err)
		}

		referrals, err := uc.CustomerRepo.GetDirectReferrals(customer.ID)
		if err != nil {
			return fmt.Errorf("failed to load referrals of %s: %w", customer.ID, err)
		}

		if newLevel, ok := EvaluatePromotion(customer.TreeLevel, referrals); ok {
			applied, err := uc.CustomerRepo.PromoteLevel(customer.ID, newLevel)
			if err != nil {
				return fmt.Errorf("failed to promote %s: %w", customer.ID, err)
			}
			if applied {
				slog.Info("tree level promoted",
					"customer_id", customer.ID,
					"from", customer.TreeLevel,
					"to", newLevel,
				)
				if uc.Metrics != nil {
					uc.Metrics.RecordPromotion(string(newLevel))
				}
				uc.payLevelGift(settings, customer.ID, newLevel)
			}
		}

		currentID = customer.ParentID
	}
	return nil
}

// payLevelGift credits the flat per-level bonus from the gift pool when
// level gifts are enabled. Failures are logged, never fatal: a missed
// bonus is reconcilable, a blocked distribution is not.
func (uc *DefaultRewardUsecase) payLevelGift(settings *domain.RewardSettings, customerID string, level domain.TreeLevel) {
	if settings == nil || !settings.LevelGiftsEnabled {
		return
	}
	amount, ok := settings.PerLevelGiftTable[level]
	if !ok || amount <= 0 {
		return
	}

	if err := uc.CustomerRepo.ConditionalCredit(customerID, amount); err != nil {
		slog.Error("failed to credit level gift", "customer_id", customerID, "error", err.Error())
		return
	}
	giftTx := &domain.Transaction{
		CustomerID:  customerID,
		Amount:      amount,
		Kind:        domain.KindGiftReward,
		Status:      domain.TxCompleted,
		Description: fmt.Sprintf("level gift for reaching %s", level),
		CreatedAt:   time.Now(),
	}
	if err := uc.TxRepo.CreateTransaction(giftTx); err != nil {
		slog.Error("failed to record level gift", "customer_id", customerID, "error", err.Error())
	}
	if uc.Metrics != nil {
		uc.Metrics.RecordPayout(string(domain.KindGiftReward), amount)
	}
}

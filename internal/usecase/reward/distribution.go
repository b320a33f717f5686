package reward

import (
	"fmt"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
)

// perLevelCommissionPct is the fixed commission slice a single tree level
// earns from a purchase's tree share.
const perLevelCommissionPct = 0.05

// DistributionPlan is the pure outcome of walking one ancestor chain.
// Nothing is written until the plan is applied in a single unit.
type DistributionPlan struct {
	Payouts []domain.RewardPayout
	Paid    float64
	// Unused is the tree share left over when some levels had no payable
	// ancestor. It is folded into the gift pool by the caller.
	Unused float64
}

// BuildDistributionPlan applies the commission rules to an ancestor chain
// ordered nearest parent first:
//   - ancestors that are not active and verified are skipped,
//   - every level below the top pays only the first payable ancestor seen
//     at that level,
//   - all payable top-level ancestors split the top-level slice evenly.
func BuildDistributionPlan(treeShare float64, chain []*domain.Customer) DistributionPlan {
	levelSlice := treeShare * perLevelCommissionPct

	paidLevels := make(map[domain.TreeLevel]bool)
	topAncestors := make([]*domain.Customer, 0)
	plan := DistributionPlan{}

	for _, ancestor := range chain {
		if !ancestor.Payable() {
			continue
		}
		if ancestor.TreeLevel.IsTop() {
			topAncestors = append(topAncestors, ancestor)
			continue
		}
		if paidLevels[ancestor.TreeLevel] {
			continue
		}
		paidLevels[ancestor.TreeLevel] = true

		plan.Payouts = append(plan.Payouts, domain.RewardPayout{
			CustomerID:  ancestor.ID,
			Amount:      levelSlice,
			Kind:        domain.KindTreeReward,
			Description: fmt.Sprintf("tree commission for level %s", ancestor.TreeLevel),
		})
		plan.Paid += levelSlice
	}

	// The top level is a collective, not a ladder rung: everyone there
	// shares one slice instead of racing to be first.
	if n := len(topAncestors); n > 0 {
		each := levelSlice / float64(n)
		for _, ancestor := range topAncestors {
			plan.Payouts = append(plan.Payouts, domain.RewardPayout{
				CustomerID:  ancestor.ID,
				Amount:      each,
				Kind:        domain.KindTreeRewardShared,
				Description: fmt.Sprintf("shared top-level commission (1/%d)", n),
			})
		}
		plan.Paid += levelSlice
	}

	plan.Unused = treeShare - plan.Paid
	return plan
}

package checkout

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	publisher "github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/kafka"
	checkoutdto "github.com/mallmarketing055-de/mall-sub000/internal/usecase/dto/checkout"
)

func (uc *DefaultCheckoutUsecase) Settle(customerID string) (*checkoutdto.SettlementResult, error) {
	items, err := uc.CartRepo.GetActiveCart(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(items) == 0 {
		uc.recordError("empty_cart")
		return nil, domain.ErrEmptyCart
	}

	// Re-price every line from the catalog. Cart rows never carry
	// authoritative prices, so a tampered cart cannot shift the total.
	lineItems := make([]checkoutdto.LineItem, 0, len(items))
	var actualTotal, totalRewardPoints float64
	for _, item := range items {
		price, rewardPct, err := uc.Catalog.GetPrice(item.ProductID)
		if err != nil {
			uc.recordError("product_unavailable")
			return nil, fmt.Errorf("product %s: %w", item.ProductID, err)
		}
		quantity := float64(item.Quantity)
		actualTotal += price * quantity
		totalRewardPoints += price * rewardPct * quantity
		lineItems = append(lineItems, checkoutdto.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: price,
			RewardPct: rewardPct,
		})
	}

	// The sole correctness-critical atomic operation: compare-and-debit.
	newBalance, err := uc.CustomerRepo.ConditionalDebit(customerID, actualTotal)
	if err != nil {
		if domain.IsInsufficientBalance(err) {
			uc.recordError("insufficient_balance")
		}
		return nil, err
	}

	settings, err := uc.SettingsRepo.GetSettings()
	if err != nil {
		slog.Error("failed to load reward settings, using defaults",
			"customer_id", customerID, "error", err.Error())
		settings = domain.DefaultRewardSettings()
	}
	if drift := settings.ShareSum(); math.Abs(drift-1.0) > 1e-9 {
		slog.Warn("reward shares do not sum to 1.0", "share_sum", drift)
	}
	shares := settings.Split(totalRewardPoints)

	reference := uc.newReference()
	itemsJSON, _ := json.Marshal(lineItems)
	purchaseTx := &domain.Transaction{
		CustomerID:  customerID,
		Amount:      actualTotal,
		Kind:        domain.KindPurchase,
		Status:      domain.TxCompleted,
		Reference:   reference,
		Description: string(itemsJSON),
		CreatedAt:   time.Now(),
	}
	if err := uc.TxRepo.CreateTransaction(purchaseTx); err != nil {
		// The debit already happened; surface the ledger failure loudly
		// rather than hiding the purchase.
		return nil, fmt.Errorf("debit succeeded but purchase record failed: %w", err)
	}

	if err := uc.CartRepo.ClearCart(customerID); err != nil {
		slog.Error("failed to clear cart after settlement",
			"customer_id", customerID, "transaction_id", purchaseTx.ID, "error", err.Error())
	}

	uc.enqueueRewardJob(customerID, purchaseTx.ID, shares)

	if uc.Metrics != nil {
		uc.Metrics.RecordSettlement("completed", actualTotal)
		uc.Metrics.RecordShareSplit(shares.TreeShare, shares.GiftsShare, shares.AppShare, shares.ReferralShare)
	}
	uc.publishSettled(customerID, purchaseTx.ID, actualTotal, totalRewardPoints)

	return &checkoutdto.SettlementResult{
		TransactionID: purchaseTx.ID,
		Reference:     reference,
		CartTotal:     actualTotal,
		NewBalance:    newBalance,
		RewardSummary: checkoutdto.RewardSummary{
			Total:         shares.Total,
			TreeShare:     shares.TreeShare,
			GiftsShare:    shares.GiftsShare,
			AppShare:      shares.AppShare,
			ReferralShare: shares.ReferralShare,
			Status:        "processing",
		},
	}, nil
}

// enqueueRewardJob must never fail the settlement: the debit is already
// committed and a missed reward is recoverable, a reversed purchase is not.
func (uc *DefaultCheckoutUsecase) enqueueRewardJob(customerID, sourceTxID string, shares domain.RewardShares) {
	job := &domain.RewardJob{
		CustomerID:          customerID,
		SourceTransactionID: sourceTxID,
		Status:              domain.JobPending,
		Payload:             shares,
		MaxAttempts:         uc.MaxJobAttempts,
	}
	if err := uc.JobRepo.Enqueue(job); err != nil {
		slog.Error("failed to enqueue reward job",
			"customer_id", customerID, "transaction_id", sourceTxID, "error", err.Error())
		if uc.Metrics != nil {
			uc.Metrics.JobEnqueueFailuresTotal.Inc()
		}
		return
	}
	if uc.Metrics != nil {
		uc.Metrics.JobsEnqueuedTotal.Inc()
	}
}

func (uc *DefaultCheckoutUsecase) publishSettled(customerID, txID string, amount, rewardPoints float64) {
	if uc.Publisher == nil {
		return
	}
	go func(event publisher.RewardEvent) {
		if err := uc.Publisher.PublishRewardEvent(event); err != nil {
			slog.Error("failed to publish RewardEvent", "stage", event.Stage, "error", err.Error())
		}
	}(publisher.RewardEvent{
		CustomerID:    customerID,
		TransactionID: txID,
		Stage:         "purchase_settled",
		Amount:        amount,
		RewardPoints:  rewardPoints,
	})
}

func (uc *DefaultCheckoutUsecase) recordError(errorType string) {
	if uc.Metrics != nil {
		uc.Metrics.RecordSettlement("failed", 0)
		uc.Metrics.RecordSettlementError(errorType)
	}
}

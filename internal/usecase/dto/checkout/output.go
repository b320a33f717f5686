package checkoutdto

// RewardSummary reports the computed split. Status is always
// "processing": distribution is asynchronous and the caller must not
// assume rewards have been applied.
type RewardSummary struct {
	Total         float64 `json:"total"`
	TreeShare     float64 `json:"tree_share"`
	GiftsShare    float64 `json:"gifts_share"`
	AppShare      float64 `json:"app_share"`
	ReferralShare float64 `json:"referral_share"`
	Status        string  `json:"status"`
}

type SettlementResult struct {
	TransactionID string        `json:"transaction_id"`
	Reference     string        `json:"reference"`
	CartTotal     float64       `json:"cart_total"`
	NewBalance    float64       `json:"new_balance"`
	RewardSummary RewardSummary `json:"reward_summary"`
}

type LineItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	RewardPct float64 `json:"reward_pct"`
}

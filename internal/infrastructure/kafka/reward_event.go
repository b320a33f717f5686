package kafka

// RewardEvent is published on settlement and on terminal job transitions.
type RewardEvent struct {
	CustomerID    string  `json:"customer_id"`
	TransactionID string  `json:"transaction_id"`
	JobID         string  `json:"job_id,omitempty"`
	Stage         string  `json:"stage"` // purchase_settled, reward_distributed, reward_dead_letter
	Amount        float64 `json:"amount"`
	RewardPoints  float64 `json:"reward_points"`
	Error         string  `json:"error,omitempty"`
}

package domain

import "time"

type TransactionKind string

const (
	KindPurchase             TransactionKind = "PURCHASE"
	KindTreeReward           TransactionKind = "TREE_REWARD"
	KindTreeRewardShared     TransactionKind = "TREE_REWARD_SHARED"
	KindGiftReward           TransactionKind = "GIFT_REWARD"
	KindAppRevenueReward     TransactionKind = "APP_REVENUE_REWARD"
	KindDirectReferralReward TransactionKind = "DIRECT_REFERRAL_REWARD"
	KindAdminCredit          TransactionKind = "ADMIN_CREDIT"
)

type TransactionStatus string

const (
	TxPending   TransactionStatus = "PENDING"
	TxCompleted TransactionStatus = "COMPLETED"
	TxFailed    TransactionStatus = "FAILED"
)

// Transaction is an immutable ledger record. Corrections are new
// transactions, never edits.
type Transaction struct {
	ID                   string
	CustomerID           string
	Amount               float64
	Kind                 TransactionKind
	Status               TransactionStatus
	RelatedTransactionID string // reward rows link back to their purchase
	Reference            string
	Description          string
	CreatedAt            time.Time
}

type TransactionFilters struct {
	Kinds    []TransactionKind
	Statuses []TransactionStatus
	DateFrom time.Time
	DateTo   time.Time
}

type TransactionRepository interface {
	CreateTransaction(tx *Transaction) error
	GetTransactionByID(txID string) (*Transaction, error)
	GetTransactionsByCustomerID(
		customerID string,
		page, limit int64,
		filters TransactionFilters,
	) ([]*Transaction, int64, error)

	// SumByRelatedTransaction totals reward rows generated by one purchase.
	SumByRelatedTransaction(relatedTxID string) (float64, error)
}

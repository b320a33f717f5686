package models

import (
	"time"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
)

type TransactionModel struct {
	ID                   string                   `gorm:"primaryKey;type:uuid"`
	CustomerID           string                   `gorm:"type:uuid;index:idx_tx_customer"`
	Amount               float64
	Kind                 domain.TransactionKind   `gorm:"index:idx_tx_kind"`
	Status               domain.TransactionStatus `gorm:"index:idx_tx_status"`
	RelatedTransactionID string                   `gorm:"type:uuid;index:idx_tx_related"`
	Reference            string                   `gorm:"index:idx_tx_reference"`
	Description          string
	CreatedAt            time.Time                `gorm:"index:idx_tx_created_at"`
}

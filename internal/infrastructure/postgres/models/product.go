package models

import "time"

type ProductModel struct {
	ID        string  `gorm:"primaryKey;type:uuid"`
	Name      string
	Price     float64
	RewardPct float64
	Active    bool    `gorm:"index:idx_product_active"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartItemModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	CustomerID string `gorm:"type:uuid;index:idx_cart_customer"`
	ProductID  string `gorm:"type:uuid"`
	Quantity   int
	AddedAt    time.Time
}

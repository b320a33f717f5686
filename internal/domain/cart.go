package domain

import "time"

type Product struct {
	ID        string
	Name      string
	Price     float64
	RewardPct float64 // fraction of price earned as reward points per unit
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartItem struct {
	ID         string
	CustomerID string
	ProductID  string
	Quantity   int
	AddedAt    time.Time
}

// ProductCatalog is the authoritative price source. Settlement always
// re-prices from it and never trusts amounts captured in the cart.
type ProductCatalog interface {
	// GetPrice returns the live unit price and reward fraction.
	// ErrProductUnavailable for unknown or inactive products.
	GetPrice(productID string) (price float64, rewardPct float64, err error)
}

type CartRepository interface {
	GetActiveCart(customerID string) ([]*CartItem, error)
	AddItem(item *CartItem) error
	ClearCart(customerID string) error
}

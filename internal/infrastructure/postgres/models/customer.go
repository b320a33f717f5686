package models

import (
	"time"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
)

type CustomerModel struct {
	ID           string                `gorm:"primaryKey;type:uuid"`
	Name         string
	Email        string                `gorm:"uniqueIndex"`
	ReferralCode string                `gorm:"uniqueIndex"`
	ParentID     string                `gorm:"type:uuid;index:idx_parent"`
	TreeLevel    domain.TreeLevel      `gorm:"index:idx_tree_level"`
	Balance      float64
	Status       domain.CustomerStatus `gorm:"index:idx_customer_status"`
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCartRepository struct {
	DB *gorm.DB
}

func NewDefaultCartRepository(db *gorm.DB) *DefaultCartRepository {
	return &DefaultCartRepository{DB: db}
}

func (r *DefaultCartRepository) GetActiveCart(customerID string) ([]*domain.CartItem, error) {
	var itemModels []models.CartItemModel
	if err := r.DB.Where("customer_id = ?", customerID).
		Order("added_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]*domain.CartItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = &domain.CartItem{
			ID:         model.ID,
			CustomerID: model.CustomerID,
			ProductID:  model.ProductID,
			Quantity:   model.Quantity,
			AddedAt:    model.AddedAt,
		}
	}
	return items, nil
}

func (r *DefaultCartRepository) AddItem(item *domain.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	return r.DB.Create(&models.CartItemModel{
		ID:         item.ID,
		CustomerID: item.CustomerID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		AddedAt:    item.AddedAt,
	}).Error
}

func (r *DefaultCartRepository) ClearCart(customerID string) error {
	return r.DB.Where("customer_id = ?", customerID).
		Delete(&models.CartItemModel{}).Error
}

type DefaultProductCatalog struct {
	DB *gorm.DB
}

func NewDefaultProductCatalog(db *gorm.DB) *DefaultProductCatalog {
	return &DefaultProductCatalog{DB: db}
}

// GetPrice returns the live unit price and reward fraction. Inactive
// products are as unavailable as missing ones.
func (r *DefaultProductCatalog) GetPrice(productID string) (float64, float64, error) {
	var model models.ProductModel
	if err := r.DB.First(&model, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, domain.ErrProductUnavailable
		}
		return 0, 0, err
	}
	if !model.Active {
		return 0, 0, domain.ErrProductUnavailable
	}
	return model.Price, model.RewardPct, nil
}

package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/mappers"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) CreateTransaction(tx *domain.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	model := mappers.ToGORMTransaction(tx)
	return r.DB.Create(model).Error
}

func (r *DefaultTransactionRepository) GetTransactionByID(txID string) (*domain.Transaction, error) {
	var model models.TransactionModel
	if err := r.DB.First(&model, "id = ?", txID).Error; err != nil {
		return nil, err
	}
	return mappers.ToDomainTransaction(&model), nil
}

func (r *DefaultTransactionRepository) GetTransactionsByCustomerID(
	customerID string,
	page, limit int64,
	filters domain.TransactionFilters,
) ([]*domain.Transaction, int64, error) {
	var txModels []models.TransactionModel
	var total int64

	query := r.DB.Model(&models.TransactionModel{}).
		Where("customer_id = ?", customerID)

	if len(filters.Kinds) > 0 {
		query = query.Where("kind IN (?)", filters.Kinds)
	}
	if len(filters.Statuses) > 0 {
		query = query.Where("status IN (?)", filters.Statuses)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("created_at <= ?", filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&txModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find transactions: %w", err)
	}

	transactions := make([]*domain.Transaction, len(txModels))
	for i, model := range txModels {
		transactions[i] = mappers.ToDomainTransaction(&model)
	}
	return transactions, total, nil
}

func (r *DefaultTransactionRepository) SumByRelatedTransaction(relatedTxID string) (float64, error) {
	var total float64
	err := r.DB.Model(&models.TransactionModel{}).
		Where("related_transaction_id = ?", relatedTxID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

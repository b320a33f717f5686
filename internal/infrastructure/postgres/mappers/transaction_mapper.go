package mappers

import (
	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:                   model.ID,
		CustomerID:           model.CustomerID,
		Amount:               model.Amount,
		Kind:                 model.Kind,
		Status:               model.Status,
		RelatedTransactionID: model.RelatedTransactionID,
		Reference:            model.Reference,
		Description:          model.Description,
		CreatedAt:            model.CreatedAt,
	}
}

func ToGORMTransaction(tx *domain.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:                   tx.ID,
		CustomerID:           tx.CustomerID,
		Amount:               tx.Amount,
		Kind:                 tx.Kind,
		Status:               tx.Status,
		RelatedTransactionID: tx.RelatedTransactionID,
		Reference:            tx.Reference,
		Description:          tx.Description,
		CreatedAt:            tx.CreatedAt,
	}
}

package mappers

import (
	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/models"
)

func ToDomainCustomer(model *models.CustomerModel) *domain.Customer {
	return &domain.Customer{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		ReferralCode: model.ReferralCode,
		ParentID:     model.ParentID,
		TreeLevel:    model.TreeLevel,
		Balance:      model.Balance,
		Status:       model.Status,
		Verified:     model.Verified,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func ToGORMCustomer(customer *domain.Customer) *models.CustomerModel {
	return &models.CustomerModel{
		ID:           customer.ID,
		Name:         customer.Name,
		Email:        customer.Email,
		ReferralCode: customer.ReferralCode,
		ParentID:     customer.ParentID,
		TreeLevel:    customer.TreeLevel,
		Balance:      customer.Balance,
		Status:       customer.Status,
		Verified:     customer.Verified,
		CreatedAt:    customer.CreatedAt,
		UpdatedAt:    customer.UpdatedAt,
	}
}

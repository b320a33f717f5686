package usecase

import (
	"log"

	"github.com/jaevor/go-nanoid"
	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
)

type CustomerUsecase interface {
	// Register creates a customer, resolving referralCode (optional) to an
	// already-persisted parent so referral chains stay acyclic.
	Register(name, email, referralCode string) (*domain.Customer, error)
	GetCustomer(customerID string) (*domain.Customer, error)
	GetLedger(customerID string, page, limit int64, filters domain.TransactionFilters) ([]*domain.Transaction, int64, error)
}

type DefaultCustomerUsecase struct {
	CustomerRepo domain.CustomerRepository
	TxRepo       domain.TransactionRepository

	newReferralCode func() string
}

func NewDefaultCustomerUsecase(
	customerRepo domain.CustomerRepository,
	txRepo domain.TransactionRepository,
) *DefaultCustomerUsecase {
	codeGenerator, err := nanoid.CustomASCII("23456789ABCDEFGHJKLMNPQRSTUVWXYZ", 8)
	if err != nil {
		log.Fatalf("failed to init referral code generator: %v", err)
	}
	return &DefaultCustomerUsecase{
		CustomerRepo:    customerRepo,
		TxRepo:          txRepo,
		newReferralCode: codeGenerator,
	}
}

func (uc *DefaultCustomerUsecase) Register(name, email, referralCode string) (*domain.Customer, error) {
	customer := &domain.Customer{
		Name:         name,
		Email:        email,
		ReferralCode: uc.newReferralCode(),
		TreeLevel:    domain.LevelStarter,
		Status:       domain.CustomerActive,
	}
	if err := uc.CustomerRepo.CreateCustomer(customer, referralCode); err != nil {
		return nil, err
	}
	return customer, nil
}

func (uc *DefaultCustomerUsecase) GetCustomer(customerID string) (*domain.Customer, error) {
	return uc.CustomerRepo.GetCustomerByID(customerID)
}

func (uc *DefaultCustomerUsecase) GetLedger(
	customerID string,
	page, limit int64,
	filters domain.TransactionFilters,
) ([]*domain.Transaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return uc.TxRepo.GetTransactionsByCustomerID(customerID, page, limit, filters)
}

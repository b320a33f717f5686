package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/mappers"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// maxChainDepth bounds the ancestor walk. Chains are acyclic by
// construction; the cap only guards against corrupted data.
const maxChainDepth = 100

type DefaultCustomerRepository struct {
	DB *gorm.DB
}

func NewDefaultCustomerRepository(db *gorm.DB) *DefaultCustomerRepository {
	return &DefaultCustomerRepository{DB: db}
}

// CreateCustomer resolves the referral code to an already-persisted parent,
// so a parent chain can never contain the new customer itself.
func (r *DefaultCustomerRepository) CreateCustomer(customer *domain.Customer, referralCode string) error {
	if referralCode != "" {
		var parent models.CustomerModel
		if err := r.DB.First(&parent, "referral_code = ?", referralCode).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrReferrerNotFound
			}
			return err
		}
		customer.ParentID = parent.ID
	}

	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if customer.TreeLevel == "" {
		customer.TreeLevel = domain.LevelStarter
	}
	model := mappers.ToGORMCustomer(customer)
	return r.DB.Create(model).Error
}

func (r *DefaultCustomerRepository) GetCustomerByID(customerID string) (*domain.Customer, error) {
	var model models.CustomerModel
	if err := r.DB.First(&model, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return mappers.ToDomainCustomer(&model), nil
}

func (r *DefaultCustomerRepository) GetCustomerByReferralCode(code string) (*domain.Customer, error) {
	var model models.CustomerModel
	if err := r.DB.First(&model, "referral_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return mappers.ToDomainCustomer(&model), nil
}

// ConditionalDebit is the single compare-and-debit update. The balance
// check and the decrement happen in one statement, never read-then-write.
func (r *DefaultCustomerRepository) ConditionalDebit(customerID string, amount float64) (float64, error) {
	result := r.DB.Model(&models.CustomerModel{}).
		Where("id = ? AND balance >= ?", customerID, amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		customer, err := r.GetCustomerByID(customerID)
		if err != nil {
			return 0, err
		}
		return 0, &domain.InsufficientBalanceError{
			Required:  amount,
			Available: customer.Balance,
		}
	}

	customer, err := r.GetCustomerByID(customerID)
	if err != nil {
		return 0, fmt.Errorf("debit applied but balance read failed: %w", err)
	}
	return customer.Balance, nil
}

func (r *DefaultCustomerRepository) ConditionalCredit(customerID string, amount float64) error {
	result := r.DB.Model(&models.CustomerModel{}).
		Where("id = ?", customerID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *DefaultCustomerRepository) GetAncestorChain(customerID string) ([]*domain.Customer, error) {
	customer, err := r.GetCustomerByID(customerID)
	if err != nil {
		return nil, err
	}

	chain := make([]*domain.Customer, 0)
	parentID := customer.ParentID
	for depth := 0; parentID != "" && depth < maxChainDepth; depth++ {
		parent, err := r.GetCustomerByID(parentID)
		if err != nil {
			if errors.Is(err, domain.ErrCustomerNotFound) {
				break
			}
			return nil, err
		}
		chain = append(chain, parent)
		parentID = parent.ParentID
	}

	return chain, nil
}

func (r *DefaultCustomerRepository) GetDirectReferrals(customerID string) ([]*domain.Customer, error) {
	var customerModels []models.CustomerModel
	if err := r.DB.Where("parent_id = ?", customerID).Find(&customerModels).Error; err != nil {
		return nil, err
	}

	referrals := make([]*domain.Customer, len(customerModels))
	for i, model := range customerModels {
		referrals[i] = mappers.ToDomainCustomer(&model)
	}
	return referrals, nil
}

// PromoteLevel only moves forward through the ladder: the update is
// conditional on the stored level still ranking below newLevel, so a
// concurrent promotion simply wins and this call becomes a no-op.
func (r *DefaultCustomerRepository) PromoteLevel(customerID string, newLevel domain.TreeLevel) (bool, error) {
	rank := newLevel.Rank()
	if rank < 0 {
		return false, fmt.Errorf("unknown tree level: %s", newLevel)
	}

	lowerLevels := make([]domain.TreeLevel, 0, rank)
	for _, level := range domain.LevelLadder() {
		if level.Rank() < rank {
			lowerLevels = append(lowerLevels, level)
		}
	}

	result := r.DB.Model(&models.CustomerModel{}).
		Where("id = ? AND tree_level IN (?)", customerID, lowerLevels).
		Updates(map[string]interface{}{
			"tree_level": newLevel,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

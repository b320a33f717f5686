package checkout

import (
	"log"

	"github.com/jaevor/go-nanoid"
	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	publisher "github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/kafka"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/metrics"
	checkoutdto "github.com/mallmarketing055-de/mall-sub000/internal/usecase/dto/checkout"
)

type CheckoutUsecase interface {
	// Settle validates and prices the active cart, debits the wallet and
	// enqueues reward distribution. Hard-fails with no side effects before
	// the debit; never fails on queue or event trouble after it.
	Settle(customerID string) (*checkoutdto.SettlementResult, error)
}

type DefaultCheckoutUsecase struct {
	CartRepo     domain.CartRepository
	Catalog      domain.ProductCatalog
	CustomerRepo domain.CustomerRepository
	SettingsRepo domain.RewardSettingsRepository
	TxRepo       domain.TransactionRepository
	JobRepo      domain.RewardJobRepository
	Publisher    *publisher.RewardEventPublisher
	Metrics      *metrics.RewardMetrics

	MaxJobAttempts int
	newReference   func() string
}

func NewDefaultCheckoutUsecase(
	cartRepo domain.CartRepository,
	catalog domain.ProductCatalog,
	customerRepo domain.CustomerRepository,
	settingsRepo domain.RewardSettingsRepository,
	txRepo domain.TransactionRepository,
	jobRepo domain.RewardJobRepository,
	eventPublisher *publisher.RewardEventPublisher,
	rewardMetrics *metrics.RewardMetrics,
	maxJobAttempts int,
) *DefaultCheckoutUsecase {
	refGenerator, err := nanoid.Standard(15)
	if err != nil {
		log.Fatalf("failed to init reference generator: %v", err)
	}
	if maxJobAttempts <= 0 {
		maxJobAttempts = 3
	}

	return &DefaultCheckoutUsecase{
		CartRepo:       cartRepo,
		Catalog:        catalog,
		CustomerRepo:   customerRepo,
		SettingsRepo:   settingsRepo,
		TxRepo:         txRepo,
		JobRepo:        jobRepo,
		Publisher:      eventPublisher,
		Metrics:        rewardMetrics,
		MaxJobAttempts: maxJobAttempts,
		newReference:   refGenerator,
	}
}

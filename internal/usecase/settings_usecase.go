package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
)

// SettingsUsecase is the administrative surface: reward split
// configuration and manual wallet credits.
type SettingsUsecase interface {
	GetSettings() (*domain.RewardSettings, error)
	UpdateSettings(settings *domain.RewardSettings) (*domain.RewardSettings, error)
	CreditCustomer(customerID string, amount float64, reason string) (*domain.Transaction, error)
}

type DefaultSettingsUsecase struct {
	SettingsRepo domain.RewardSettingsRepository
	CustomerRepo domain.CustomerRepository
	TxRepo       domain.TransactionRepository
}

func NewDefaultSettingsUsecase(
	settingsRepo domain.RewardSettingsRepository,
	customerRepo domain.CustomerRepository,
	txRepo domain.TransactionRepository,
) *DefaultSettingsUsecase {
	return &DefaultSettingsUsecase{
		SettingsRepo: settingsRepo,
		CustomerRepo: customerRepo,
		TxRepo:       txRepo,
	}
}

func (uc *DefaultSettingsUsecase) GetSettings() (*domain.RewardSettings, error) {
	return uc.SettingsRepo.GetSettings()
}

// UpdateSettings rejects splits that allocate more than the available
// reward points. Under-allocation is allowed: the remainder is simply
// never minted.
func (uc *DefaultSettingsUsecase) UpdateSettings(settings *domain.RewardSettings) (*domain.RewardSettings, error) {
	for name, pct := range map[string]float64{
		"tree":            settings.TreeSharePct,
		"gifts":           settings.GiftsSharePct,
		"app":             settings.AppSharePct,
		"direct_referral": settings.DirectReferralPct,
	} {
		if pct < 0 || pct > 1 {
			return nil, fmt.Errorf("%s share out of range: %w", name, domain.ErrInvalidShareSplit)
		}
	}
	if settings.ShareSum() > 1.0+1e-9 {
		return nil, domain.ErrInvalidShareSplit
	}
	for level := range settings.PerLevelGiftTable {
		if level.Rank() < 0 {
			return nil, fmt.Errorf("unknown level %q in gift table", level)
		}
	}

	if err := uc.SettingsRepo.UpdateSettings(settings); err != nil {
		return nil, err
	}
	updated, err := uc.SettingsRepo.GetSettings()
	if err != nil {
		return nil, err
	}
	slog.Info("reward settings updated", "version", updated.Version, "share_sum", updated.ShareSum())
	return updated, nil
}

// CreditCustomer is the manual correction path: corrections are new
// admin_credit transactions, never edits to existing ledger rows.
func (uc *DefaultSettingsUsecase) CreditCustomer(customerID string, amount float64, reason string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit amount must be positive, got %.2f", amount)
	}
	if err := uc.CustomerRepo.ConditionalCredit(customerID, amount); err != nil {
		return nil, err
	}

	creditTx := &domain.Transaction{
		CustomerID:  customerID,
		Amount:      amount,
		Kind:        domain.KindAdminCredit,
		Status:      domain.TxCompleted,
		Description: reason,
		CreatedAt:   time.Now(),
	}
	if err := uc.TxRepo.CreateTransaction(creditTx); err != nil {
		return nil, fmt.Errorf("credit applied but ledger record failed: %w", err)
	}
	return creditTx, nil
}

package checkout

import (
	"errors"
	"testing"

	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Settlement only touches a narrow slice of each repository, so the fakes
// embed the interface and implement just that slice.

type fakeCartRepo struct {
	domain.CartRepository
	items      []*domain.CartItem
	cleared    bool
	clearError error
}

func (r *fakeCartRepo) GetActiveCart(customerID string) ([]*domain.CartItem, error) {
	return r.items, nil
}

func (r *fakeCartRepo) ClearCart(customerID string) error {
	if r.clearError != nil {
		return r.clearError
	}
	r.cleared = true
	return nil
}

type fakeCatalog struct {
	products map[string]*domain.Product
}

func (c *fakeCatalog) GetPrice(productID string) (float64, float64, error) {
	product, ok := c.products[productID]
	if !ok || !product.Active {
		return 0, 0, domain.ErrProductUnavailable
	}
	return product.Price, product.RewardPct, nil
}

type fakeWallet struct {
	domain.CustomerRepository
	balance float64
}

func (r *fakeWallet) ConditionalDebit(customerID string, amount float64) (float64, error) {
	if r.balance < amount {
		return 0, &domain.InsufficientBalanceError{Required: amount, Available: r.balance}
	}
	r.balance -= amount
	return r.balance, nil
}

type fakeSettingsRepo struct {
	domain.RewardSettingsRepository
	settings *domain.RewardSettings
	err      error
}

func (r *fakeSettingsRepo) GetSettings() (*domain.RewardSettings, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.settings, nil
}

type fakeTxRepo struct {
	domain.TransactionRepository
	transactions []*domain.Transaction
}

func (r *fakeTxRepo) CreateTransaction(tx *domain.Transaction) error {
	if tx.ID == "" {
		tx.ID = "tx-1"
	}
	r.transactions = append(r.transactions, tx)
	return nil
}

type fakeJobQueue struct {
	domain.RewardJobRepository
	jobs         []*domain.RewardJob
	enqueueError error
}

func (r *fakeJobQueue) Enqueue(job *domain.RewardJob) error {
	if r.enqueueError != nil {
		return r.enqueueError
	}
	r.jobs = append(r.jobs, job)
	return nil
}

type settleFixture struct {
	uc     *DefaultCheckoutUsecase
	cart   *fakeCartRepo
	wallet *fakeWallet
	txs    *fakeTxRepo
	queue  *fakeJobQueue
}

func newSettleFixture(balance float64, items ...*domain.CartItem) *settleFixture {
	f := &settleFixture{
		cart:   &fakeCartRepo{items: items},
		wallet: &fakeWallet{balance: balance},
		txs:    &fakeTxRepo{},
		queue:  &fakeJobQueue{},
	}
	catalog := &fakeCatalog{products: map[string]*domain.Product{
		"widget": {ID: "widget", Price: 200, RewardPct: 0.25, Active: true},
		"gadget": {ID: "gadget", Price: 50, RewardPct: 0.1, Active: true},
		"legacy": {ID: "legacy", Price: 10, Active: false},
	}}
	settings := &fakeSettingsRepo{settings: &domain.RewardSettings{
		TreeSharePct:      0.5,
		GiftsSharePct:     0.15,
		AppSharePct:       0.3,
		DirectReferralPct: 0.05,
		Version:           1,
	}}
	f.uc = NewDefaultCheckoutUsecase(f.cart, catalog, f.wallet, settings, f.txs, f.queue, nil, nil, 3)
	return f
}

func TestSettleDebitsAndEnqueues(t *testing.T) {
	// 200 cart, 25% reward rate: 50 points split 0.5/0.15/0.3/0.05.
	f := newSettleFixture(1000, &domain.CartItem{ProductID: "widget", Quantity: 1})

	result, err := f.uc.Settle("cust-1")
	require.NoError(t, err)

	assert.InDelta(t, 200, result.CartTotal, 1e-9)
	assert.InDelta(t, 800, result.NewBalance, 1e-9)
	assert.InDelta(t, 800, f.wallet.balance, 1e-9)
	assert.NotEmpty(t, result.Reference)
	assert.Equal(t, "processing", result.RewardSummary.Status)

	require.Len(t, f.txs.transactions, 1)
	purchase := f.txs.transactions[0]
	assert.Equal(t, domain.KindPurchase, purchase.Kind)
	assert.Equal(t, domain.TxCompleted, purchase.Status)
	assert.InDelta(t, 200, purchase.Amount, 1e-9)
	assert.Equal(t, purchase.ID, result.TransactionID)

	require.Len(t, f.queue.jobs, 1)
	job := f.queue.jobs[0]
	assert.Equal(t, "cust-1", job.CustomerID)
	assert.Equal(t, purchase.ID, job.SourceTransactionID)
	assert.Equal(t, 3, job.MaxAttempts)
	assert.InDelta(t, 50, job.Payload.Total, 1e-9)
	assert.InDelta(t, 25, job.Payload.TreeShare, 1e-9)
	assert.InDelta(t, 7.5, job.Payload.GiftsShare, 1e-9)
	assert.InDelta(t, 15, job.Payload.AppShare, 1e-9)
	assert.InDelta(t, 2.5, job.Payload.ReferralShare, 1e-9)

	assert.True(t, f.cart.cleared)
}

func TestSettleRepricesMultiLineCartFromCatalog(t *testing.T) {
	f := newSettleFixture(1000,
		&domain.CartItem{ProductID: "widget", Quantity: 2},
		&domain.CartItem{ProductID: "gadget", Quantity: 3},
	)

	result, err := f.uc.Settle("cust-1")
	require.NoError(t, err)

	// 2*200 + 3*50 = 550; points: 2*200*0.25 + 3*50*0.1 = 115.
	assert.InDelta(t, 550, result.CartTotal, 1e-9)
	assert.InDelta(t, 115, result.RewardSummary.Total, 1e-9)
	assert.InDelta(t, 450, f.wallet.balance, 1e-9)
}

func TestSettleInsufficientBalance(t *testing.T) {
	f := newSettleFixture(150, &domain.CartItem{ProductID: "widget", Quantity: 1})

	_, err := f.uc.Settle("cust-1")
	require.Error(t, err)
	assert.True(t, domain.IsInsufficientBalance(err))

	var insufficient *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.InDelta(t, 200, insufficient.Required, 1e-9)
	assert.InDelta(t, 150, insufficient.Available, 1e-9)

	// No side effects at all: balance, ledger and queue untouched.
	assert.InDelta(t, 150, f.wallet.balance, 1e-9)
	assert.Empty(t, f.txs.transactions)
	assert.Empty(t, f.queue.jobs)
	assert.False(t, f.cart.cleared)
}

func TestSettleEmptyCart(t *testing.T) {
	f := newSettleFixture(1000)

	_, err := f.uc.Settle("cust-1")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.InDelta(t, 1000, f.wallet.balance, 1e-9)
}

func TestSettleUnavailableProductFailsBeforeDebit(t *testing.T) {
	f := newSettleFixture(1000,
		&domain.CartItem{ProductID: "widget", Quantity: 1},
		&domain.CartItem{ProductID: "legacy", Quantity: 1},
	)

	_, err := f.uc.Settle("cust-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductUnavailable)
	assert.InDelta(t, 1000, f.wallet.balance, 1e-9)
	assert.Empty(t, f.txs.transactions)
}

func TestSettleSurvivesEnqueueFailure(t *testing.T) {
	f := newSettleFixture(1000, &domain.CartItem{ProductID: "widget", Quantity: 1})
	f.queue.enqueueError = errors.New("queue unavailable")

	result, err := f.uc.Settle("cust-1")
	require.NoError(t, err)

	// The purchase stands; the missed job is recovered operationally.
	assert.InDelta(t, 800, f.wallet.balance, 1e-9)
	require.Len(t, f.txs.transactions, 1)
	assert.Empty(t, f.queue.jobs)
	assert.Equal(t, "processing", result.RewardSummary.Status)
}

func TestSettleFallsBackToDefaultSettings(t *testing.T) {
	f := newSettleFixture(1000, &domain.CartItem{ProductID: "widget", Quantity: 1})
	f.uc.SettingsRepo = &fakeSettingsRepo{err: domain.ErrSettingsNotFound}

	result, err := f.uc.Settle("cust-1")
	require.NoError(t, err)

	// Defaults are 0.5/0.15/0.3/0.05 over 50 points.
	assert.InDelta(t, 25, result.RewardSummary.TreeShare, 1e-9)
	assert.InDelta(t, 2.5, result.RewardSummary.ReferralShare, 1e-9)
}

func TestSettleSurvivesCartClearFailure(t *testing.T) {
	f := newSettleFixture(1000, &domain.CartItem{ProductID: "widget", Quantity: 1})
	f.cart.clearError = errors.New("cart store down")

	_, err := f.uc.Settle("cust-1")
	require.NoError(t, err)
	require.Len(t, f.queue.jobs, 1)
}

package reward

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mallmarketing055-de/mall-sub000/internal/domain"
)

// In-memory repository fakes honoring the same conditional-update
// semantics as the postgres implementations.

type fakeCustomerRepo struct {
	customers map[string]*domain.Customer
}

func newFakeCustomerRepo(customers ...*domain.Customer) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{customers: map[string]*domain.Customer{}}
	for _, customer := range customers {
		repo.customers[customer.ID] = customer
	}
	return repo
}

func (r *fakeCustomerRepo) CreateCustomer(customer *domain.Customer, referralCode string) error {
	if referralCode != "" {
		parent, err := r.GetCustomerByReferralCode(referralCode)
		if err != nil {
			return domain.ErrReferrerNotFound
		}
		customer.ParentID = parent.ID
	}
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetCustomerByID(customerID string) (*domain.Customer, error) {
	customer, ok := r.customers[customerID]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	copied := *customer
	return &copied, nil
}

func (r *fakeCustomerRepo) GetCustomerByReferralCode(code string) (*domain.Customer, error) {
	for _, customer := range r.customers {
		if customer.ReferralCode == code {
			copied := *customer
			return &copied, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *fakeCustomerRepo) ConditionalDebit(customerID string, amount float64) (float64, error) {
	customer, ok := r.customers[customerID]
	if !ok {
		return 0, domain.ErrCustomerNotFound
	}
	if customer.Balance < amount {
		return 0, &domain.InsufficientBalanceError{Required: amount, Available: customer.Balance}
	}
	customer.Balance -= amount
	return customer.Balance, nil
}

func (r *fakeCustomerRepo) ConditionalCredit(customerID string, amount float64) error {
	customer, ok := r.customers[customerID]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	customer.Balance += amount
	return nil
}

func (r *fakeCustomerRepo) GetAncestorChain(customerID string) ([]*domain.Customer, error) {
	customer, ok := r.customers[customerID]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	chain := make([]*domain.Customer, 0)
	parentID := customer.ParentID
	for depth := 0; parentID != "" && depth < 100; depth++ {
		parent, ok := r.customers[parentID]
		if !ok {
			break
		}
		copied := *parent
		chain = append(chain, &copied)
		parentID = parent.ParentID
	}
	return chain, nil
}

func (r *fakeCustomerRepo) GetDirectReferrals(customerID string) ([]*domain.Customer, error) {
	referrals := make([]*domain.Customer, 0)
	ids := make([]string, 0, len(r.customers))
	for id := range r.customers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if r.customers[id].ParentID == customerID {
			copied := *r.customers[id]
			referrals = append(referrals, &copied)
		}
	}
	return referrals, nil
}

func (r *fakeCustomerRepo) PromoteLevel(customerID string, newLevel domain.TreeLevel) (bool, error) {
	customer, ok := r.customers[customerID]
	if !ok {
		return false, domain.ErrCustomerNotFound
	}
	if customer.TreeLevel.Rank() >= newLevel.Rank() {
		return false, nil
	}
	customer.TreeLevel = newLevel
	return true, nil
}

type fakeJobRepo struct {
	jobs []*domain.RewardJob
}

func (r *fakeJobRepo) Enqueue(job *domain.RewardJob) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.Status == "" {
		job.Status = domain.JobPending
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	r.jobs = append(r.jobs, job)
	return nil
}

func (r *fakeJobRepo) ClaimNext(lease time.Duration) (*domain.RewardJob, error) {
	var oldest *domain.RewardJob
	for _, job := range r.jobs {
		if job.Status != domain.JobPending || job.AttemptCount >= job.MaxAttempts {
			continue
		}
		if oldest == nil || job.CreatedAt.Before(oldest.CreatedAt) {
			oldest = job
		}
	}
	if oldest == nil {
		return nil, domain.ErrNoPendingJobs
	}
	oldest.Status = domain.JobProcessing
	oldest.AttemptCount++
	oldest.LeaseExpiresAt = time.Now().Add(lease)
	oldest.StartedAt = time.Now()
	copied := *oldest
	return &copied, nil
}

func (r *fakeJobRepo) ReclaimExpired(now time.Time) (int64, error) {
	var reclaimed int64
	for _, job := range r.jobs {
		if job.Status == domain.JobProcessing && job.LeaseExpiresAt.Before(now) {
			job.Status = domain.JobPending
			job.Error = "lease expired, reclaimed"
			reclaimed++
		}
	}
	return reclaimed, nil
}

func (r *fakeJobRepo) find(jobID string) *domain.RewardJob {
	for _, job := range r.jobs {
		if job.ID == jobID {
			return job
		}
	}
	return nil
}

func (r *fakeJobRepo) transition(jobID string, to domain.RewardJobStatus, errMsg string) error {
	job := r.find(jobID)
	if job == nil || job.Status != domain.JobProcessing {
		return domain.ErrJobNotClaimable
	}
	job.Status = to
	job.Error = errMsg
	if to == domain.JobCompleted {
		job.CompletedAt = time.Now()
	}
	return nil
}

func (r *fakeJobRepo) MarkCompleted(jobID string) error {
	return r.transition(jobID, domain.JobCompleted, "")
}

func (r *fakeJobRepo) MarkFailed(jobID string, errMsg string) error {
	return r.transition(jobID, domain.JobFailed, errMsg)
}

func (r *fakeJobRepo) Release(jobID string, errMsg string) error {
	return r.transition(jobID, domain.JobPending, errMsg)
}

func (r *fakeJobRepo) GetJobByID(jobID string) (*domain.RewardJob, error) {
	job := r.find(jobID)
	if job == nil {
		return nil, fmt.Errorf("job %s not found", jobID)
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) GetJobsByCustomerID(customerID string, page, limit int64) ([]*domain.RewardJob, int64, error) {
	matched := make([]*domain.RewardJob, 0)
	for _, job := range r.jobs {
		if job.CustomerID == customerID {
			copied := *job
			matched = append(matched, &copied)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeJobRepo) CountByStatus() (*domain.RewardJobStats, error) {
	stats := &domain.RewardJobStats{}
	for _, job := range r.jobs {
		switch job.Status {
		case domain.JobPending:
			stats.Pending++
		case domain.JobProcessing:
			stats.Processing++
		case domain.JobCompleted:
			stats.Completed++
		case domain.JobFailed:
			stats.Failed++
		}
	}
	return stats, nil
}

func (r *fakeJobRepo) AverageProcessingTime(window int) (time.Duration, error) {
	return 0, nil
}

type fakeTxRepo struct {
	transactions []*domain.Transaction
}

func (r *fakeTxRepo) CreateTransaction(tx *domain.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	r.transactions = append(r.transactions, tx)
	return nil
}

func (r *fakeTxRepo) GetTransactionByID(txID string) (*domain.Transaction, error) {
	for _, tx := range r.transactions {
		if tx.ID == txID {
			return tx, nil
		}
	}
	return nil, fmt.Errorf("transaction %s not found", txID)
}

func (r *fakeTxRepo) GetTransactionsByCustomerID(
	customerID string,
	page, limit int64,
	filters domain.TransactionFilters,
) ([]*domain.Transaction, int64, error) {
	matched := make([]*domain.Transaction, 0)
	for _, tx := range r.transactions {
		if tx.CustomerID == customerID {
			matched = append(matched, tx)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeTxRepo) SumByRelatedTransaction(relatedTxID string) (float64, error) {
	var total float64
	for _, tx := range r.transactions {
		if tx.RelatedTransactionID == relatedTxID {
			total += tx.Amount
		}
	}
	return total, nil
}

func (r *fakeTxRepo) byKind(kind domain.TransactionKind) []*domain.Transaction {
	matched := make([]*domain.Transaction, 0)
	for _, tx := range r.transactions {
		if tx.Kind == kind {
			matched = append(matched, tx)
		}
	}
	return matched
}

type fakeSettingsRepo struct {
	settings *domain.RewardSettings
}

func (r *fakeSettingsRepo) GetSettings() (*domain.RewardSettings, error) {
	if r.settings == nil {
		return domain.DefaultRewardSettings(), nil
	}
	return r.settings, nil
}

func (r *fakeSettingsRepo) UpdateSettings(settings *domain.RewardSettings) error {
	settings.Version++
	r.settings = settings
	return nil
}

// fakeDistributionRepo mirrors the all-or-nothing apply: the attempt fence
// is checked first and nothing is written when any step fails.
type fakeDistributionRepo struct {
	customers *fakeCustomerRepo
	jobs      *fakeJobRepo
	txs       *fakeTxRepo
	failWith  error
}

func (r *fakeDistributionRepo) ApplyDistribution(
	jobID string,
	attempt int,
	sourceTxID string,
	payouts []domain.RewardPayout,
	poolRecords []*domain.Transaction,
) error {
	if r.failWith != nil {
		return r.failWith
	}

	job := r.jobs.find(jobID)
	if job == nil || job.Status != domain.JobProcessing || job.AttemptCount != attempt {
		return domain.ErrJobNotClaimable
	}

	for _, payout := range payouts {
		if err := r.customers.ConditionalCredit(payout.CustomerID, payout.Amount); err != nil {
			return err
		}
		r.txs.CreateTransaction(&domain.Transaction{
			CustomerID:           payout.CustomerID,
			Amount:               payout.Amount,
			Kind:                 payout.Kind,
			Status:               domain.TxCompleted,
			RelatedTransactionID: sourceTxID,
			Description:          payout.Description,
		})
	}
	for _, record := range poolRecords {
		r.txs.CreateTransaction(record)
	}

	job.Status = domain.JobCompleted
	job.CompletedAt = time.Now()
	job.Error = ""
	return nil
}

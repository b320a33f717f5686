package domain

import "time"

type CustomerStatus string

const (
	CustomerActive    CustomerStatus = "ACTIVE"
	CustomerInactive  CustomerStatus = "INACTIVE"
	CustomerSuspended CustomerStatus = "SUSPENDED"
)

// TreeLevel is one of the ten ordered referral-tree ranks.
type TreeLevel string

const (
	LevelStarter  TreeLevel = "STARTER"
	LevelBronze   TreeLevel = "BRONZE"
	LevelSilver   TreeLevel = "SILVER"
	LevelGold     TreeLevel = "GOLD"
	LevelPlatinum TreeLevel = "PLATINUM"
	LevelRuby     TreeLevel = "RUBY"
	LevelSapphire TreeLevel = "SAPPHIRE"
	LevelEmerald  TreeLevel = "EMERALD"
	LevelDiamond  TreeLevel = "DIAMOND"
	LevelCrown    TreeLevel = "CROWN"
)

// levelLadder fixes the promotion order, lowest rank first.
var levelLadder = []TreeLevel{
	LevelStarter,
	LevelBronze,
	LevelSilver,
	LevelGold,
	LevelPlatinum,
	LevelRuby,
	LevelSapphire,
	LevelEmerald,
	LevelDiamond,
	LevelCrown,
}

func LevelLadder() []TreeLevel {
	ladder := make([]TreeLevel, len(levelLadder))
	copy(ladder, levelLadder)
	return ladder
}

// Rank returns the position of the level on the ladder, -1 for unknown values.
func (l TreeLevel) Rank() int {
	for i, level := range levelLadder {
		if level == l {
			return i
		}
	}
	return -1
}

// Next returns the successor level. ok is false at the top of the ladder
// and for unknown values.
func (l TreeLevel) Next() (TreeLevel, bool) {
	rank := l.Rank()
	if rank < 0 || rank >= len(levelLadder)-1 {
		return l, false
	}
	return levelLadder[rank+1], true
}

func (l TreeLevel) IsTop() bool {
	return l == levelLadder[len(levelLadder)-1]
}

func TopLevel() TreeLevel {
	return levelLadder[len(levelLadder)-1]
}

type Customer struct {
	ID           string
	Name         string
	Email        string
	ReferralCode string
	ParentID     string // empty for roots
	TreeLevel    TreeLevel
	Balance      float64
	Status       CustomerStatus
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Payable reports whether the customer may receive tree commissions.
func (c *Customer) Payable() bool {
	return c.Status == CustomerActive && c.Verified
}

type CustomerRepository interface {
	CreateCustomer(customer *Customer, referralCode string) error
	GetCustomerByID(customerID string) (*Customer, error)
	GetCustomerByReferralCode(code string) (*Customer, error)

	// ConditionalDebit decrements the balance only when it covers amount,
	// in a single conditional update. Returns the new balance or
	// InsufficientBalanceError.
	ConditionalDebit(customerID string, amount float64) (float64, error)
	ConditionalCredit(customerID string, amount float64) error

	// GetAncestorChain follows parent references upward, nearest first.
	GetAncestorChain(customerID string) ([]*Customer, error)
	GetDirectReferrals(customerID string) ([]*Customer, error)

	// PromoteLevel applies newLevel only when it outranks the stored level.
	PromoteLevel(customerID string, newLevel TreeLevel) (bool, error)
}

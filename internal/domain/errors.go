package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrReferrerNotFound   = errors.New("referrer not found")
	ErrNoPendingJobs      = errors.New("no pending reward jobs")
	ErrJobNotClaimable    = errors.New("job is not claimable")
	ErrInvalidShareSplit  = errors.New("reward shares sum above 1.0")
	ErrSettingsNotFound   = errors.New("reward settings not found")
)

// InsufficientBalanceError reports the client-correctable shortfall.
type InsufficientBalanceError struct {
	Required  float64
	Available float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %.2f, available %.2f", e.Required, e.Available)
}

func IsInsufficientBalance(err error) bool {
	var target *InsufficientBalanceError
	return errors.As(err, &target)
}

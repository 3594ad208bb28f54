package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound            = errors.New("entity not found")
	ErrUnauthenticated     = errors.New("session is not authenticated")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInsufficientBalance = errors.New("balance is insufficient")
	ErrAmountBelowMinimum  = errors.New("amount is below the minimum")
	ErrNoPaymentMethod     = errors.New("no payment method selected")
	ErrFlowState           = errors.New("operation not valid in current flow state")
	ErrFlowNotFound        = errors.New("flow not found")
	ErrWizardState         = errors.New("operation not valid in current wizard step")
	ErrUpstream            = errors.New("upstream request failed")
)

package domain

import "errors"

// State machine errors.
var (
	ErrNotActive    = errors.New("rental is not active")
	ErrNotDisputed  = errors.New("rental is not disputed")
	ErrUnauthorized = errors.New("unauthorized to perform this action")
)

// Validation errors.
var (
	ErrZeroAmount         = errors.New("escrow amount must be greater than zero")
	ErrNegativeDuration   = errors.New("duration must not be negative")
	ErrFieldTooLong       = errors.New("field exceeds maximum length")
	ErrCounterOverflow    = errors.New("reputation counter overflow")
	ErrInvalidNonce       = errors.New("nonce does not derive the record address")
	ErrCorruptRecord      = errors.New("corrupt record")
	ErrRecordTypeMismatch = errors.New("record type mismatch")
	ErrInvalidIdentity    = errors.New("invalid identity")
)

// Record store errors.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrRecordExists   = errors.New("record already allocated")
)

// Transfer primitive errors, passed through unchanged by the state machine.
var (
	ErrAccountNotFound   = errors.New("token account not found")
	ErrAccountExists     = errors.New("token account already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrMintMismatch      = errors.New("token account mint mismatch")
	ErrOwnerMismatch     = errors.New("token account owner does not match authority")
	ErrBalanceOverflow   = errors.New("token account balance overflow")
	ErrInvalidCapability = errors.New("invalid derived authority capability")
	ErrReleaseToHolding  = errors.New("release destination is the holding account")
)

// Ledger service errors.
var ErrFaucetDisabled = errors.New("faucet is disabled")

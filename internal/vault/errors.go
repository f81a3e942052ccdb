package vault

import "errors"

// Precondition violations. Each guard is checked synchronously before any
// side effect; a violation aborts the operation with no state change.
var (
	ErrEmptyVaultID       = errors.New("empty vault id")
	ErrInvalidBasePrice   = errors.New("daily base price must be positive")
	ErrInvalidAccessCode  = errors.New("access code must be 4-12 characters")
	ErrWrongState         = errors.New("operation not allowed in current vault state")
	ErrStakeBelowBase     = errors.New("stake below daily base price")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrCheckInInPast      = errors.New("check-in must be in the future")
	ErrCheckInNotReached  = errors.New("check-in time not reached")
	ErrCessionWindowOver  = errors.New("cession window closed")
	ErrInvalidBidIndex    = errors.New("invalid bid index")
	ErrZeroBid            = errors.New("bid amount must be positive")
	ErrNoEarnings         = errors.New("no earnings to withdraw")
	ErrNoActiveAccessCode = errors.New("no active access code")
	ErrAccessCodeInactive = errors.New("access code not active")
)

// Authorization failures. Kept distinct from precondition violations so
// callers and tests can assert on "not authorized" specifically.
var (
	ErrOnlyBooker           = errors.New("only current booker")
	ErrOnlyOwner            = errors.New("only vault owner")
	ErrNotAuthorized        = errors.New("not authorized")
	ErrNotAuthorizedCode    = errors.New("not authorized to view access code")
	ErrNotAuthorizedMaster  = errors.New("not authorized to view master access code")
	ErrOnlyOwnerUpdatesCode = errors.New("only vault owner can update access code")
)

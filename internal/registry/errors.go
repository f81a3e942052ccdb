package registry

import "errors"

var (
	ErrVaultIDExists     = errors.New("vault id already exists")
	ErrVaultNotFound     = errors.New("vault not found")
	ErrSubVaultNotFound  = errors.New("sub-vault not found")
	ErrParentNotActive   = errors.New("parent vault not active")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrCheckInInPast     = errors.New("check-in must be in future")
	ErrPastDay           = errors.New("cannot create vault for past dates")
	ErrNightNotAvailable = errors.New("night not available")
	ErrNotOwner          = errors.New("not owner")
	ErrNoDays            = errors.New("no days specified")
	ErrTooManyDays       = errors.New("too many days")
	ErrNoNights          = errors.New("no nights specified")
	ErrTooManyNights     = errors.New("too many nights")
)

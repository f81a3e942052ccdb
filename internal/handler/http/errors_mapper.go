package http

import (
	"errors"
	"net/http"

	"github.com/stayvault/stayvault/internal/registry"
	"github.com/stayvault/stayvault/internal/service"
	"github.com/stayvault/stayvault/internal/store"
	"github.com/stayvault/stayvault/internal/token"
	"github.com/stayvault/stayvault/internal/vault"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:      http.StatusBadRequest,
	service.ErrWrongPassword:            http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid:  http.StatusUnauthorized,
	service.ErrValidationNoDaysProvided: http.StatusBadRequest,
	service.ErrFaucetDisabled:           http.StatusForbidden,

	vault.ErrEmptyVaultID:       http.StatusBadRequest,
	vault.ErrInvalidBasePrice:   http.StatusBadRequest,
	vault.ErrInvalidAccessCode:  http.StatusBadRequest,
	vault.ErrWrongState:         http.StatusConflict,
	vault.ErrStakeBelowBase:     http.StatusBadRequest,
	vault.ErrInvalidDateRange:   http.StatusBadRequest,
	vault.ErrCheckInInPast:      http.StatusBadRequest,
	vault.ErrCheckInNotReached:  http.StatusConflict,
	vault.ErrCessionWindowOver:  http.StatusConflict,
	vault.ErrInvalidBidIndex:    http.StatusBadRequest,
	vault.ErrZeroBid:            http.StatusBadRequest,
	vault.ErrNoEarnings:         http.StatusConflict,
	vault.ErrNoActiveAccessCode: http.StatusNotFound,
	vault.ErrAccessCodeInactive: http.StatusNotFound,

	vault.ErrOnlyBooker:           http.StatusForbidden,
	vault.ErrOnlyOwner:            http.StatusForbidden,
	vault.ErrNotAuthorized:        http.StatusForbidden,
	vault.ErrNotAuthorizedCode:    http.StatusForbidden,
	vault.ErrNotAuthorizedMaster:  http.StatusForbidden,
	vault.ErrOnlyOwnerUpdatesCode: http.StatusForbidden,

	registry.ErrVaultIDExists:     http.StatusConflict,
	registry.ErrVaultNotFound:     http.StatusNotFound,
	registry.ErrSubVaultNotFound:  http.StatusNotFound,
	registry.ErrParentNotActive:   http.StatusConflict,
	registry.ErrInvalidDateRange:  http.StatusBadRequest,
	registry.ErrCheckInInPast:     http.StatusBadRequest,
	registry.ErrPastDay:           http.StatusBadRequest,
	registry.ErrNightNotAvailable: http.StatusConflict,
	registry.ErrNotOwner:          http.StatusForbidden,
	registry.ErrNoDays:            http.StatusBadRequest,
	registry.ErrTooManyDays:       http.StatusBadRequest,
	registry.ErrNoNights:          http.StatusBadRequest,
	registry.ErrTooManyNights:     http.StatusBadRequest,

	token.ErrInsufficientBalance:   http.StatusPaymentRequired,
	token.ErrInsufficientAllowance: http.StatusPaymentRequired,
	token.ErrEmptyAccount:          http.StatusBadRequest,
	token.ErrZeroAmount:            http.StatusBadRequest,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrVaultIDTaken:       http.StatusConflict,
	store.ErrNothingSaved:       http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// SPDX-License-Identifier: Apache-2.0

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrValidationNoDaysProvided = errors.New("no days provided")

	ErrFaucetDisabled = errors.New("faucet is disabled")
)

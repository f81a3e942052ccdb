package token

import "errors"

var (
	ErrInsufficientBalance   = errors.New("insufficient token balance")
	ErrInsufficientAllowance = errors.New("insufficient token allowance")
	ErrEmptyAccount          = errors.New("empty account")
	ErrZeroAmount            = errors.New("zero amount")
)

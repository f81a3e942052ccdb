package models

import "time"

// User is a marketplace account. AccountID doubles as the payment-token
// ledger account and as the JWT subject.
type User struct {
	AccountID    string    `json:"account_id"`
	Login        string    `json:"login"`
	Password     string    `json:"password,omitempty"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

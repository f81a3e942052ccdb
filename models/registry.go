package models

import "time"

// VaultInfo is the factory registry record for a root vault.
type VaultInfo struct {
	VaultID         string    `json:"vault_id"`
	Address         string    `json:"address"`
	Owner           string    `json:"owner"`
	PropertyDetails string    `json:"property_details"`
	BasePrice       uint64    `json:"base_price"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// SubVaultKind distinguishes the three independent calendar keyings a parent
// vault can be partitioned by.
type SubVaultKind string

const (
	SubVaultDate  SubVaultKind = "date"
	SubVaultDaily SubVaultKind = "daily"
	SubVaultNight SubVaultKind = "night"
)

// SubVaultRecord is one mirrored entry in a parent vault's enumeration list.
//
// State is updated by explicit push notifications from the sub-vault on every
// transition; the registry never polls children.
type SubVaultRecord struct {
	ParentID string       `json:"parent_id"`
	Kind     SubVaultKind `json:"kind"`

	// CheckIn/CheckOut carry the date-range key. For daily sub-vaults CheckIn
	// holds the day timestamp; for night sub-vaults it holds the night index.
	CheckIn  int64 `json:"check_in"`
	CheckOut int64 `json:"check_out,omitempty"`

	SubVaultID string     `json:"sub_vault_id"`
	Address    string     `json:"address"`
	State      VaultState `json:"state"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

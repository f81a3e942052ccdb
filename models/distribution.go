package models

// Distribution is the exact breakdown of one settled stake.
//
// Base + Additional == StakeAmount and the four shares always sum to
// StakeAmount exactly; integer-division remainders are folded into
// RecipientShare so no value is ever created or lost.
type Distribution struct {
	StakeAmount uint64 `json:"stake_amount"`
	Base        uint64 `json:"base"`
	Additional  uint64 `json:"additional"`

	// RecipientShare goes to the vault's payment recipient: the owner for a
	// root vault, the parent treasury for a sub-vault.
	RecipientShare uint64 `json:"recipient_share"`

	PlatformShare      uint64 `json:"platform_share"`
	CurrentBookerShare uint64 `json:"current_booker_share"`
	LastBookerShare    uint64 `json:"last_booker_share"`
}

// Total returns the sum of all disbursed shares.
func (d Distribution) Total() uint64 {
	return d.RecipientShare + d.PlatformShare + d.CurrentBookerShare + d.LastBookerShare
}

// Settlement is the journal record written after a successful check-in.
type Settlement struct {
	VaultID      string       `json:"vault_id"`
	Address      string       `json:"address"`
	Booker       string       `json:"booker"`
	LastBooker   string       `json:"last_booker,omitempty"`
	Distribution Distribution `json:"distribution"`
}

// SettlementFilter narrows a settlement journal query. Zero-value fields are
// ignored.
type SettlementFilter struct {
	VaultID string `json:"vault_id,omitempty"`
	Booker  string `json:"booker,omitempty"`
	Limit   uint64 `json:"limit,omitempty"`
}

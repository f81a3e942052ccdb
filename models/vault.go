// Package models defines the shared domain and transport types of the
// stayvault reservation marketplace: vault lifecycle records, registry
// entities, distribution breakdowns, and HTTP request/response shapes.
package models

import "time"

// VaultState is the lifecycle state of a single bookable unit.
//
// A vault cycles FREE -> AUCTION -> CHECKED_IN -> FREE indefinitely.
// Every other transition is rejected by the state machine.
type VaultState int

const (
	// StateFree means no reservation is open; createReservation is the only
	// mutating operation accepted.
	StateFree VaultState = iota

	// StateAuction means a reservation is open and competing bids may be
	// placed until the current booker checks in or cedes.
	StateAuction

	// StateCheckedIn means the stake has been distributed and an access code
	// is active; only checkOut is accepted.
	StateCheckedIn
)

// String implements fmt.Stringer.
func (s VaultState) String() string {
	switch s {
	case StateFree:
		return "FREE"
	case StateAuction:
		return "AUCTION"
	case StateCheckedIn:
		return "CHECKED_IN"
	default:
		return "UNKNOWN"
	}
}

// Reservation is the open booking of one vault cycle.
//
// StakeAmount is the amount currently held in escrow for the booker: the
// original stake before any cession, or the full accepted bid amount after
// one. Nonce is the access-code nonce reserved for this cycle at creation.
type Reservation struct {
	Booker      string `json:"booker"`
	StakeAmount uint64 `json:"stake_amount"`
	CheckIn     int64  `json:"check_in"`
	CheckOut    int64  `json:"check_out"`
	Nonce       uint64 `json:"nonce"`
}

// Bid is a competing escrowed offer placed during AUCTION.
//
// Bids keep insertion order and are never ranked implicitly: the booker
// selects the bid to accept by index.
type Bid struct {
	Bidder   string    `json:"bidder"`
	Amount   uint64    `json:"amount"`
	PlacedAt time.Time `json:"placed_at"`
}

// VaultSnapshot is a read-only projection of one vault's public state.
type VaultSnapshot struct {
	VaultID        string       `json:"vault_id"`
	Address        string       `json:"address"`
	Owner          string       `json:"owner"`
	Details        string       `json:"details"`
	DailyBasePrice uint64       `json:"daily_base_price"`
	State          VaultState   `json:"state"`
	StateLabel     string       `json:"state_label"`
	Reservation    *Reservation `json:"reservation,omitempty"`
	OriginalBooker string       `json:"original_booker,omitempty"`
	LastBooker     string       `json:"last_booker,omitempty"`
	BidCount       int          `json:"bid_count"`
	ParentID       string       `json:"parent_id,omitempty"`
	TotalEarnings  uint64       `json:"total_earnings"`
}

package models

// Request and response bodies of the REST API.

type CreateVaultRequest struct {
	VaultID         string `json:"vault_id"`
	PropertyDetails string `json:"property_details"`
	DailyBasePrice  uint64 `json:"daily_base_price"`
	AccessCode      string `json:"access_code"`
}

type DateVaultRequest struct {
	CheckIn  int64 `json:"check_in"`
	CheckOut int64 `json:"check_out"`
}

type DailyVaultRequest struct {
	// Day holds a single UTC day-start timestamp; Days a bulk list.
	// Exactly one of the two should be set.
	Day        int64   `json:"day,omitempty"`
	Days       []int64 `json:"days,omitempty"`
	AccessCode string  `json:"access_code"`
}

type NightVaultRequest struct {
	Night      int64  `json:"night"`
	AccessCode string `json:"access_code"`
}

type AvailabilityRequest struct {
	// Night toggles a single night when Start/End are zero.
	Night     int64 `json:"night,omitempty"`
	Available bool  `json:"available"`

	// Start/End bulk-set the [Start, End] window to Available.
	Start int64 `json:"start,omitempty"`
	End   int64 `json:"end,omitempty"`
}

type SubVaultResponse struct {
	SubVaultID string `json:"sub_vault_id"`
	Address    string `json:"address"`
	ParentID   string `json:"parent_id"`
	Created    bool   `json:"created"`
}

type ReservationRequest struct {
	StakeAmount uint64 `json:"stake_amount"`
	CheckIn     int64  `json:"check_in"`
	CheckOut    int64  `json:"check_out"`
}

type BidRequest struct {
	Amount uint64 `json:"amount"`
}

type CedeRequest struct {
	BidIndex int `json:"bid_index"`
}

type CheckInResponse struct {
	AccessCode   string       `json:"access_code"`
	Nonce        uint64       `json:"nonce"`
	Distribution Distribution `json:"distribution"`
}

type AccessCodeResponse struct {
	AccessCode string `json:"access_code"`
	Nonce      uint64 `json:"nonce"`
}

type AccessCodeActiveResponse struct {
	Active bool   `json:"active"`
	Nonce  uint64 `json:"nonce"`
}

type MasterCodeRequest struct {
	AccessCode string `json:"access_code"`
}

type BalanceResponse struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
}

type ApproveRequest struct {
	Spender string `json:"spender"`
	Amount  uint64 `json:"amount"`
}

type AllowanceResponse struct {
	Owner     string `json:"owner"`
	Spender   string `json:"spender"`
	Allowance uint64 `json:"allowance"`
}

type EarningsResponse struct {
	Account       string `json:"account"`
	Earnings      uint64 `json:"earnings"`
	TotalEarnings uint64 `json:"total_earnings"`
}

type WithdrawResponse struct {
	Account   string `json:"account"`
	Withdrawn uint64 `json:"withdrawn"`
}

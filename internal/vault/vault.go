// Package vault implements the escrow-and-state-machine instance governing a
// single bookable unit's reservation cycle: reservation opening, competitive
// bidding, cession of the reservation to a bidder, time-gated check-in with
// proportional fund distribution, and access-code issuance.
//
// A vault is either a root vault paying its owner directly, or a sub-vault
// created under a parent by the factory registry, in which case settlement
// proceeds are routed to the parent vault's earnings ledger.
package vault

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/internal/token"
	"github.com/stayvault/stayvault/models"
)

// CessionWindow is the cutoff before check-in after which a reservation can
// no longer be ceded to a bidder.
const CessionWindow = 24 * time.Hour

const (
	minAccessCodeLen = 4
	maxAccessCodeLen = 12
)

// StateNotifier receives push-model state-change notifications. The registry
// implements it to mirror sub-vault state without polling.
type StateNotifier interface {
	VaultStateChanged(address string, state models.VaultState)
}

// Config carries the immutable parameters of a new vault.
type Config struct {
	VaultID          string
	Owner            string
	Details          string
	DailyBasePrice   uint64
	MasterAccessCode string

	// PlatformAccount receives the platform fee share of every settlement.
	PlatformAccount string

	// Controller is the platform's administrative account, part of the
	// authorized reader set for access codes.
	Controller string

	// TimeGated enables the wall-clock gates (future check-in, check-in
	// timestamp, cession cutoff). Night sub-vaults are keyed by opaque
	// indices and run with TimeGated disabled.
	TimeGated bool

	// Parent is non-nil for sub-vaults; settlement proceeds are then routed
	// to the parent's treasury instead of the owner.
	Parent *Vault

	Token    token.PaymentToken
	Notifier StateNotifier
	Logger   *logger.Logger

	// Now overrides the clock used for the time gates. Defaults to time.Now.
	Now func() time.Time
}

// Vault is one escrow instance. All exported methods are safe for concurrent
// use; every mutating operation runs to completion under the vault mutex so
// callers observe strict operation ordering.
type Vault struct {
	mu sync.Mutex

	id      string
	address string
	owner   string
	details string

	dailyBasePrice   uint64
	masterAccessCode string
	platformAccount  string
	controller       string
	timeGated        bool

	parent   *Vault
	token    token.PaymentToken
	notifier StateNotifier
	logger   *logger.Logger
	now      func() time.Time

	state          models.VaultState
	reservation    *models.Reservation
	bids           []models.Bid
	originalBooker string
	lastBooker     string

	accessCodeNonce  uint64
	accessCodes      map[uint64]string
	accessCodeActive map[uint64]bool

	// treasury role (parent vaults)
	earnings      map[string]uint64
	totalEarnings uint64
}

// New validates cfg and constructs a FREE vault with a freshly generated
// escrow address.
func New(cfg Config) (*Vault, error) {
	if cfg.VaultID == "" {
		return nil, ErrEmptyVaultID
	}
	if cfg.DailyBasePrice == 0 {
		return nil, ErrInvalidBasePrice
	}
	if len(cfg.MasterAccessCode) < minAccessCodeLen || len(cfg.MasterAccessCode) > maxAccessCodeLen {
		return nil, ErrInvalidAccessCode
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Vault{
		id:               cfg.VaultID,
		address:          uuid.NewString(),
		owner:            cfg.Owner,
		details:          cfg.Details,
		dailyBasePrice:   cfg.DailyBasePrice,
		masterAccessCode: cfg.MasterAccessCode,
		platformAccount:  cfg.PlatformAccount,
		controller:       cfg.Controller,
		timeGated:        cfg.TimeGated,
		parent:           cfg.Parent,
		token:            cfg.Token,
		notifier:         cfg.Notifier,
		logger:           log,
		now:              now,
		state:            models.StateFree,
		accessCodes:      make(map[uint64]string),
		accessCodeActive: make(map[uint64]bool),
		earnings:         make(map[string]uint64),
	}, nil
}

// ID returns the vault's registry identifier.
func (v *Vault) ID() string { return v.id }

// Address returns the vault's escrow account address. Bookers and bidders
// approve this address on the payment token before staking.
func (v *Vault) Address() string { return v.address }

// Owner returns the account the vault was created for.
func (v *Vault) Owner() string { return v.owner }

// Details returns the property details inherited from the registry record.
func (v *Vault) Details() string { return v.details }

// DailyBasePrice returns the minimum acceptable stake.
func (v *Vault) DailyBasePrice() uint64 { return v.dailyBasePrice }

// Parent returns the parent vault for sub-vaults, nil for root vaults.
func (v *Vault) Parent() *Vault { return v.parent }

// State returns the current lifecycle state.
func (v *Vault) State() models.VaultState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// CurrentReservation returns a copy of the open reservation, if any.
func (v *Vault) CurrentReservation() (models.Reservation, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.reservation == nil {
		return models.Reservation{}, false
	}
	return *v.reservation, true
}

// OriginalBooker returns the account that opened the current cycle.
func (v *Vault) OriginalBooker() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.originalBooker
}

// LastBooker returns the most recent ceder of the current cycle, or "" if no
// cession occurred.
func (v *Vault) LastBooker() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastBooker
}

// Bids returns a copy of the outstanding bid list in insertion order.
func (v *Vault) Bids() []models.Bid {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Bid, len(v.bids))
	copy(out, v.bids)
	return out
}

// AccessCodeNonce returns the monotonic access-code counter. It survives
// check-outs and is never reset.
func (v *Vault) AccessCodeNonce() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.accessCodeNonce
}

// Snapshot returns a read-only projection of the vault's public state.
func (v *Vault) Snapshot() models.VaultSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := models.VaultSnapshot{
		VaultID:        v.id,
		Address:        v.address,
		Owner:          v.owner,
		Details:        v.details,
		DailyBasePrice: v.dailyBasePrice,
		State:          v.state,
		StateLabel:     v.state.String(),
		OriginalBooker: v.originalBooker,
		LastBooker:     v.lastBooker,
		BidCount:       len(v.bids),
		TotalEarnings:  v.totalEarnings,
	}
	if v.reservation != nil {
		r := *v.reservation
		snap.Reservation = &r
	}
	if v.parent != nil {
		snap.ParentID = v.parent.ID()
	}
	return snap
}

// CreateReservation opens a reservation cycle. Callable only in FREE.
//
// The stake is pulled from caller into the vault's escrow account; caller
// must have approved the vault address beforehand. On success the vault
// enters AUCTION with caller as booker and original booker.
func (v *Vault) CreateReservation(caller string, stake uint64, checkIn, checkOut int64) error {
	v.mu.Lock()

	if v.state != models.StateFree {
		v.mu.Unlock()
		return ErrWrongState
	}
	if stake < v.dailyBasePrice {
		v.mu.Unlock()
		return ErrStakeBelowBase
	}
	if checkOut < checkIn {
		v.mu.Unlock()
		return ErrInvalidDateRange
	}
	if v.timeGated && checkIn < v.now().Unix() {
		v.mu.Unlock()
		return ErrCheckInInPast
	}

	if err := v.token.TransferFrom(v.address, caller, v.address, stake); err != nil {
		v.mu.Unlock()
		return err
	}

	v.accessCodeNonce++
	v.reservation = &models.Reservation{
		Booker:      caller,
		StakeAmount: stake,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Nonce:       v.accessCodeNonce,
	}
	v.originalBooker = caller
	v.lastBooker = ""
	v.bids = nil
	v.state = models.StateAuction

	v.logger.Info().
		Str("vault_id", v.id).
		Str("booker", caller).
		Uint64("stake", stake).
		Msg("reservation created")
	v.mu.Unlock()

	v.notifyStateChange(models.StateAuction)
	return nil
}

// PlaceBid escrows a competing offer. Callable by any account, only during
// AUCTION. The full bid amount is pulled from the bidder immediately and held
// until the bid is accepted by a cession or refunded at check-in.
func (v *Vault) PlaceBid(caller string, amount uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != models.StateAuction {
		return ErrWrongState
	}
	if amount == 0 {
		return ErrZeroBid
	}

	if err := v.token.TransferFrom(v.address, caller, v.address, amount); err != nil {
		return err
	}

	v.bids = append(v.bids, models.Bid{
		Bidder:   caller,
		Amount:   amount,
		PlacedAt: v.now(),
	})

	v.logger.Info().
		Str("vault_id", v.id).
		Str("bidder", caller).
		Uint64("amount", amount).
		Msg("bid placed")
	return nil
}

// CedeReservation transfers the reservation to the bidder at bidIndex.
// Callable only by the current booker during AUCTION, and for time-gated
// vaults only up to CessionWindow before check-in.
//
// The ceding booker's escrowed stake is returned in full; the accepted bid
// amount becomes the new stake. The additional-value distribution happens
// later, at check-in. Cascading cessions are supported: the new booker may
// cede again, and lastBooker always reflects the most recent ceder while
// originalBooker never changes mid-cycle.
func (v *Vault) CedeReservation(caller string, bidIndex int) error {
	v.mu.Lock()

	if v.state != models.StateAuction {
		v.mu.Unlock()
		return ErrWrongState
	}
	if v.reservation == nil || caller != v.reservation.Booker {
		v.mu.Unlock()
		return ErrOnlyBooker
	}
	if v.timeGated && v.now().Unix() > v.reservation.CheckIn-int64(CessionWindow.Seconds()) {
		v.mu.Unlock()
		return ErrCessionWindowOver
	}
	if bidIndex < 0 || bidIndex >= len(v.bids) {
		v.mu.Unlock()
		return ErrInvalidBidIndex
	}

	accepted := v.bids[bidIndex]

	// return the ceder's stake before rewriting the reservation
	if err := v.token.Transfer(v.address, caller, v.reservation.StakeAmount); err != nil {
		v.mu.Unlock()
		return err
	}

	v.reservation.Booker = accepted.Bidder
	v.reservation.StakeAmount = accepted.Amount
	v.lastBooker = caller
	v.bids = append(v.bids[:bidIndex], v.bids[bidIndex+1:]...)

	v.logger.Info().
		Str("vault_id", v.id).
		Str("ceder", caller).
		Str("new_booker", accepted.Bidder).
		Uint64("new_stake", accepted.Amount).
		Msg("reservation ceded")
	v.mu.Unlock()

	v.notifyStateChange(models.StateAuction)
	return nil
}

// CheckIn settles the reservation. Callable only by the current booker during
// AUCTION, and for time-gated vaults only once the check-in timestamp has
// been reached.
//
// Outstanding losing bids are refunded to their bidders first, then the stake
// is distributed per the 95/5 and 40/30/20/10 split. The master access code
// is stored under the reservation's nonce and activated, and the code is
// returned to the caller.
func (v *Vault) CheckIn(caller string) (string, uint64, models.Distribution, error) {
	v.mu.Lock()

	if v.state != models.StateAuction {
		v.mu.Unlock()
		return "", 0, models.Distribution{}, ErrWrongState
	}
	if v.reservation == nil || caller != v.reservation.Booker {
		v.mu.Unlock()
		return "", 0, models.Distribution{}, ErrOnlyBooker
	}
	if v.timeGated && v.now().Unix() < v.reservation.CheckIn {
		v.mu.Unlock()
		return "", 0, models.Distribution{}, ErrCheckInNotReached
	}

	// losing bids are refunded in full before the stake is distributed
	for _, bid := range v.bids {
		if err := v.token.Transfer(v.address, bid.Bidder, bid.Amount); err != nil {
			v.mu.Unlock()
			return "", 0, models.Distribution{}, err
		}
	}
	v.bids = nil

	dist := splitStake(v.reservation.StakeAmount, v.dailyBasePrice, v.lastBooker != "")
	if err := v.disburse(dist, caller); err != nil {
		v.mu.Unlock()
		return "", 0, models.Distribution{}, err
	}

	nonce := v.reservation.Nonce
	code := v.masterAccessCode
	v.accessCodes[nonce] = code
	v.accessCodeActive[nonce] = true
	v.state = models.StateCheckedIn

	v.logger.Info().
		Str("vault_id", v.id).
		Str("booker", caller).
		Uint64("stake", dist.StakeAmount).
		Uint64("recipient_share", dist.RecipientShare).
		Uint64("platform_share", dist.PlatformShare).
		Msg("checked in")
	v.mu.Unlock()

	v.notifyStateChange(models.StateCheckedIn)
	return code, nonce, dist, nil
}

// disburse moves the distribution shares out of escrow. Caller holds v.mu.
func (v *Vault) disburse(dist models.Distribution, booker string) error {
	recipient := v.owner
	if v.parent != nil {
		recipient = v.parent.Address()
	}

	if err := v.token.Transfer(v.address, recipient, dist.RecipientShare); err != nil {
		return err
	}
	if v.parent != nil {
		v.parent.CreditEarnings(dist.RecipientShare)
	}
	if err := v.token.Transfer(v.address, v.platformAccount, dist.PlatformShare); err != nil {
		return err
	}
	if err := v.token.Transfer(v.address, booker, dist.CurrentBookerShare); err != nil {
		return err
	}
	if dist.LastBookerShare > 0 {
		if err := v.token.Transfer(v.address, v.lastBooker, dist.LastBookerShare); err != nil {
			return err
		}
	}
	return nil
}

// CheckOut completes the cycle. Callable only by the current booker in
// CHECKED_IN. The active access-code nonce is deactivated, the reservation
// record is cleared, and the vault returns to FREE. The nonce counter itself
// is not reset.
func (v *Vault) CheckOut(caller string) error {
	v.mu.Lock()

	if v.state != models.StateCheckedIn {
		v.mu.Unlock()
		return ErrWrongState
	}
	if v.reservation == nil || caller != v.reservation.Booker {
		v.mu.Unlock()
		return ErrOnlyBooker
	}

	v.accessCodeActive[v.reservation.Nonce] = false
	v.reservation = nil
	v.originalBooker = ""
	v.lastBooker = ""
	v.state = models.StateFree

	v.logger.Info().
		Str("vault_id", v.id).
		Str("booker", caller).
		Msg("checked out")
	v.mu.Unlock()

	v.notifyStateChange(models.StateFree)
	return nil
}

func (v *Vault) notifyStateChange(state models.VaultState) {
	if v.notifier != nil {
		v.notifier.VaultStateChanged(v.address, state)
	}
}

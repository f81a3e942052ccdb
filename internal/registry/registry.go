// Package registry implements the factory clone registry: it creates vault
// instances, partitions a parent vault into independently booked calendar
// sub-units (date ranges, days, nights), keeps the reverse sub-vault to
// parent mapping, and mirrors sub-vault state pushed by the vaults
// themselves so enumeration never has to poll children.
package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/internal/token"
	"github.com/stayvault/stayvault/internal/vault"
	"github.com/stayvault/stayvault/models"
)

const (
	// maxBulkDays caps one bulk daily-vault creation request.
	maxBulkDays = 30

	// maxAvailabilityWindow caps one availability window update.
	maxAvailabilityWindow = 90
)

type dateKey struct {
	checkIn  int64
	checkOut int64
}

// Config carries the registry's collaborators.
type Config struct {
	Token token.PaymentToken

	// PlatformAccount receives the platform fee share of every settlement.
	PlatformAccount string

	// Controller is the platform's administrative account. It is part of the
	// authorized reader set of every vault the registry creates.
	Controller string

	// MirrorHook, when set, is invoked after every mirrored state update
	// with a copy of the affected record. The booking services use it to
	// journal sub-vault state into the store.
	MirrorHook func(models.SubVaultRecord)

	Logger *logger.Logger

	// Now overrides the clock used for calendar validation.
	Now func() time.Time
}

// Registry is the factory clone registry. All methods are safe for
// concurrent use.
type Registry struct {
	mu sync.RWMutex

	token           token.PaymentToken
	platformAccount string
	controller      string
	mirrorHook      func(models.SubVaultRecord)
	logger          *logger.Logger
	now             func() time.Time

	vaults    map[string]models.VaultInfo
	vaultIDs  []string
	byAddress map[string]*vault.Vault

	dateVaults     map[string]map[dateKey]string
	dailyVaults    map[string]map[int64]string
	nightVaults    map[string]map[int64]string
	nightAvailable map[string]map[int64]bool

	subVaultToParent map[string]string
	records          map[string][]*models.SubVaultRecord
	recordByAddress  map[string]*models.SubVaultRecord
}

// New constructs an empty Registry.
func New(cfg Config) *Registry {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Registry{
		token:            cfg.Token,
		platformAccount:  cfg.PlatformAccount,
		controller:       cfg.Controller,
		mirrorHook:       cfg.MirrorHook,
		logger:           log,
		now:              now,
		vaults:           make(map[string]models.VaultInfo),
		byAddress:        make(map[string]*vault.Vault),
		dateVaults:       make(map[string]map[dateKey]string),
		dailyVaults:      make(map[string]map[int64]string),
		nightVaults:      make(map[string]map[int64]string),
		nightAvailable:   make(map[string]map[int64]bool),
		subVaultToParent: make(map[string]string),
		records:          make(map[string][]*models.SubVaultRecord),
		recordByAddress:  make(map[string]*models.SubVaultRecord),
	}
}

// CreateVault instantiates and registers a root vault owned by owner.
// Rejects empty ids, non-positive prices, out-of-range access codes, and
// duplicate ids.
func (r *Registry) CreateVault(owner, vaultID, details string, dailyBasePrice uint64, accessCode string) (models.VaultInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.vaults[vaultID]; exists {
		return models.VaultInfo{}, ErrVaultIDExists
	}

	v, err := vault.New(vault.Config{
		VaultID:          vaultID,
		Owner:            owner,
		Details:          details,
		DailyBasePrice:   dailyBasePrice,
		MasterAccessCode: accessCode,
		PlatformAccount:  r.platformAccount,
		Controller:       r.controller,
		TimeGated:        true,
		Token:            r.token,
		Notifier:         r,
		Logger:           r.logger,
		Now:              r.now,
	})
	if err != nil {
		return models.VaultInfo{}, err
	}

	info := models.VaultInfo{
		VaultID:         vaultID,
		Address:         v.Address(),
		Owner:           owner,
		PropertyDetails: details,
		BasePrice:       dailyBasePrice,
		IsActive:        true,
		CreatedAt:       r.now(),
	}
	r.vaults[vaultID] = info
	r.vaultIDs = append(r.vaultIDs, vaultID)
	r.byAddress[v.Address()] = v

	r.logger.Info().
		Str("vault_id", vaultID).
		Str("address", v.Address()).
		Str("owner", owner).
		Msg("vault created")
	return info, nil
}

// VaultInfo returns the registry record for vaultID.
func (r *Registry) VaultInfo(vaultID string) (models.VaultInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.vaults[vaultID]
	if !ok {
		return models.VaultInfo{}, ErrVaultNotFound
	}
	return info, nil
}

// VaultAddress returns the escrow address registered under vaultID.
func (r *Registry) VaultAddress(vaultID string) (string, error) {
	info, err := r.VaultInfo(vaultID)
	if err != nil {
		return "", err
	}
	return info.Address, nil
}

// AllVaultIDs returns every registered root vault id in creation order.
func (r *Registry) AllVaultIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.vaultIDs))
	copy(out, r.vaultIDs)
	return out
}

// VaultByAddress resolves any vault (root or sub) by its escrow address.
func (r *Registry) VaultByAddress(address string) (*vault.Vault, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byAddress[address]
	if !ok {
		return nil, ErrVaultNotFound
	}
	return v, nil
}

// ParentOf returns the parent vault id of a sub-vault address, or "" when
// the address is not a registered sub-vault.
func (r *Registry) ParentOf(address string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.subVaultToParent[address]
}

// GetOrCreateDateVault returns the sub-vault booked for the exact
// (checkIn, checkOut) range under parentID, creating it on first request.
// The second return value reports whether a new vault was created.
func (r *Registry) GetOrCreateDateVault(parentID string, checkIn, checkOut int64) (*vault.Vault, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parent, info, err := r.activeParent(parentID)
	if err != nil {
		return nil, false, err
	}
	if checkOut < checkIn {
		return nil, false, ErrInvalidDateRange
	}
	if checkIn <= r.now().Unix() {
		return nil, false, ErrCheckInInPast
	}

	key := dateKey{checkIn: checkIn, checkOut: checkOut}
	if addr, ok := r.dateVaults[parentID][key]; ok {
		return r.byAddress[addr], false, nil
	}

	// date sub-vaults inherit the parent's master code; the controller is in
	// every vault's authorized reader set
	code, err := parent.MasterAccessCode(r.controller)
	if err != nil {
		return nil, false, err
	}

	subID := fmt.Sprintf("%s-DATE-%d-%d", parentID, checkIn, checkOut)
	v, err := r.createSubVault(parent, info, subID, code, true)
	if err != nil {
		return nil, false, err
	}

	if r.dateVaults[parentID] == nil {
		r.dateVaults[parentID] = make(map[dateKey]string)
	}
	r.dateVaults[parentID][key] = v.Address()
	r.registerSubVault(parentID, models.SubVaultDate, checkIn, checkOut, subID, v)

	return v, true, nil
}

// GetOrCreateDailyVault returns the sub-vault for one calendar day under
// parentID, creating it on first request. Day keys are UTC day-start unix
// timestamps; past days are rejected.
func (r *Registry) GetOrCreateDailyVault(parentID string, day int64, accessCode string) (*vault.Vault, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getOrCreateDailyVault(parentID, day, accessCode)
}

// CreateDailyVaults bulk-creates daily sub-vaults. Existing days are left
// untouched; at most maxBulkDays days per call.
func (r *Registry) CreateDailyVaults(parentID string, days []int64, accessCode string) ([]*vault.Vault, error) {
	if len(days) == 0 {
		return nil, ErrNoDays
	}
	if len(days) > maxBulkDays {
		return nil, ErrTooManyDays
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*vault.Vault, 0, len(days))
	for _, day := range days {
		v, _, err := r.getOrCreateDailyVault(parentID, day, accessCode)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// getOrCreateDailyVault is the lock-held body shared by the single and bulk
// daily creators.
func (r *Registry) getOrCreateDailyVault(parentID string, day int64, accessCode string) (*vault.Vault, bool, error) {
	parent, info, err := r.activeParent(parentID)
	if err != nil {
		return nil, false, err
	}

	today := r.now().UTC().Truncate(24 * time.Hour).Unix()
	if day < today {
		return nil, false, ErrPastDay
	}

	if addr, ok := r.dailyVaults[parentID][day]; ok {
		return r.byAddress[addr], false, nil
	}

	subID := fmt.Sprintf("%s-DAY-%d", parentID, day)
	v, err := r.createSubVault(parent, info, subID, accessCode, true)
	if err != nil {
		return nil, false, err
	}

	if r.dailyVaults[parentID] == nil {
		r.dailyVaults[parentID] = make(map[int64]string)
	}
	r.dailyVaults[parentID][day] = v.Address()
	r.registerSubVault(parentID, models.SubVaultDaily, day, 0, subID, v)

	return v, true, nil
}

// GetOrCreateNightVault returns the sub-vault for one night index under
// parentID, creating it on first request. The night must have been marked
// available by the owner beforehand. Night indices are opaque identifiers,
// so night sub-vaults run without wall-clock gates.
func (r *Registry) GetOrCreateNightVault(parentID string, night int64, accessCode string) (*vault.Vault, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parent, info, err := r.activeParent(parentID)
	if err != nil {
		return nil, false, err
	}
	if !r.nightAvailable[parentID][night] {
		return nil, false, ErrNightNotAvailable
	}

	if addr, ok := r.nightVaults[parentID][night]; ok {
		return r.byAddress[addr], false, nil
	}

	subID := fmt.Sprintf("%s-NIGHT-%d", parentID, night)
	v, err := r.createSubVault(parent, info, subID, accessCode, false)
	if err != nil {
		return nil, false, err
	}

	if r.nightVaults[parentID] == nil {
		r.nightVaults[parentID] = make(map[int64]string)
	}
	r.nightVaults[parentID][night] = v.Address()
	r.registerSubVault(parentID, models.SubVaultNight, night, 0, subID, v)

	return v, true, nil
}

// activeParent resolves parentID to its vault instance and registry record,
// requiring it to exist and be active. Caller must hold r.mu.
func (r *Registry) activeParent(parentID string) (*vault.Vault, models.VaultInfo, error) {
	info, ok := r.vaults[parentID]
	if !ok || !info.IsActive {
		return nil, models.VaultInfo{}, ErrParentNotActive
	}
	return r.byAddress[info.Address], info, nil
}

// createSubVault clones the vault behavior under a new escrow address,
// inheriting the parent's price and details and routing settlement proceeds
// to the parent treasury. Caller must hold r.mu.
func (r *Registry) createSubVault(parent *vault.Vault, info models.VaultInfo, subID, accessCode string, timeGated bool) (*vault.Vault, error) {
	return vault.New(vault.Config{
		VaultID:          subID,
		Owner:            info.Owner,
		Details:          info.PropertyDetails,
		DailyBasePrice:   info.BasePrice,
		MasterAccessCode: accessCode,
		PlatformAccount:  r.platformAccount,
		Controller:       r.controller,
		TimeGated:        timeGated,
		Parent:           parent,
		Token:            r.token,
		Notifier:         r,
		Logger:           r.logger,
		Now:              r.now,
	})
}

// registerSubVault records the calendar mapping, the reverse parent lookup,
// and the FREE mirror record of a freshly created sub-vault. Caller must
// hold r.mu.
func (r *Registry) registerSubVault(parentID string, kind models.SubVaultKind, checkIn, checkOut int64, subID string, v *vault.Vault) {
	r.byAddress[v.Address()] = v
	r.subVaultToParent[v.Address()] = parentID

	rec := &models.SubVaultRecord{
		ParentID:   parentID,
		Kind:       kind,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		SubVaultID: subID,
		Address:    v.Address(),
		State:      models.StateFree,
		UpdatedAt:  r.now(),
	}
	r.records[parentID] = append(r.records[parentID], rec)
	r.recordByAddress[v.Address()] = rec

	r.logger.Info().
		Str("parent_id", parentID).
		Str("sub_vault_id", subID).
		Str("address", v.Address()).
		Str("kind", string(kind)).
		Msg("sub-vault created")
}

// VaultStateChanged implements [vault.StateNotifier]. Sub-vaults push their
// state here at the end of every mutating operation; the registry updates
// its mirror record and forwards a copy to the mirror hook.
func (r *Registry) VaultStateChanged(address string, state models.VaultState) {
	r.mu.Lock()
	rec, ok := r.recordByAddress[address]
	var snapshot models.SubVaultRecord
	if ok {
		rec.State = state
		rec.UpdatedAt = r.now()
		snapshot = *rec
	}
	hook := r.mirrorHook
	r.mu.Unlock()

	if ok && hook != nil {
		hook(snapshot)
	}
}

// subVaultsInfo copies the mirror records of one kind under parentID.
func (r *Registry) subVaultsInfo(parentID string, kind models.SubVaultKind) []models.SubVaultRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.SubVaultRecord
	for _, rec := range r.records[parentID] {
		if rec.Kind == kind {
			out = append(out, *rec)
		}
	}
	return out
}

// DateSubVaultsInfo enumerates the mirrored date sub-vault records.
func (r *Registry) DateSubVaultsInfo(parentID string) []models.SubVaultRecord {
	return r.subVaultsInfo(parentID, models.SubVaultDate)
}

// DailySubVaultsInfo enumerates the mirrored daily sub-vault records.
func (r *Registry) DailySubVaultsInfo(parentID string) []models.SubVaultRecord {
	return r.subVaultsInfo(parentID, models.SubVaultDaily)
}

// NightSubVaultsInfo enumerates the mirrored night sub-vault records.
func (r *Registry) NightSubVaultsInfo(parentID string) []models.SubVaultRecord {
	return r.subVaultsInfo(parentID, models.SubVaultNight)
}

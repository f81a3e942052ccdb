// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/stayvault/stayvault/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// RegistryService fronts the factory registry: root vault creation and
// lookup, calendar partitioning into sub-vaults, and night availability
// management. Every mutation is journaled through the store.
type RegistryService interface {
	CreateVault(ctx context.Context, owner string, req models.CreateVaultRequest) (models.VaultInfo, error)
	GetVault(ctx context.Context, vaultID string) (models.VaultInfo, error)
	ListVaults(ctx context.Context) ([]models.VaultInfo, error)

	GetOrCreateDateVault(ctx context.Context, parentID string, req models.DateVaultRequest) (models.SubVaultResponse, error)
	GetOrCreateDailyVault(ctx context.Context, parentID string, day int64, accessCode string) (models.SubVaultResponse, error)
	CreateDailyVaults(ctx context.Context, parentID string, days []int64, accessCode string) ([]models.SubVaultResponse, error)
	GetOrCreateNightVault(ctx context.Context, parentID string, req models.NightVaultRequest) (models.SubVaultResponse, error)

	SetNightAvailability(ctx context.Context, caller, parentID string, req models.AvailabilityRequest) error
	SubVaults(ctx context.Context, parentID string, kind models.SubVaultKind) ([]models.SubVaultRecord, error)
}

// BookingService drives one vault's reservation cycle through its escrow
// address and exposes its access-code reads.
type BookingService interface {
	Snapshot(ctx context.Context, address string) (models.VaultSnapshot, error)
	Bids(ctx context.Context, address string) ([]models.Bid, error)

	CreateReservation(ctx context.Context, address, caller string, req models.ReservationRequest) error
	PlaceBid(ctx context.Context, address, caller string, amount uint64) error
	CedeReservation(ctx context.Context, address, caller string, bidIndex int) error
	CheckIn(ctx context.Context, address, caller string) (models.CheckInResponse, error)
	CheckOut(ctx context.Context, address, caller string) error

	CurrentAccessCode(ctx context.Context, address, caller string) (models.AccessCodeResponse, error)
	AccessCode(ctx context.Context, address, caller string, nonce uint64) (string, error)
	IsAccessCodeActive(ctx context.Context, address, caller string, nonce uint64) (bool, error)
	MasterAccessCode(ctx context.Context, address, caller string) (string, error)
	UpdateMasterAccessCode(ctx context.Context, address, caller, code string) error
}

// TreasuryService exposes the payment ledger and the per-vault earnings
// escrow.
type TreasuryService interface {
	Balance(ctx context.Context, account string) (uint64, error)
	Faucet(ctx context.Context, account string) (uint64, error)
	Approve(ctx context.Context, owner, spender string, amount uint64) error
	Allowance(ctx context.Context, owner, spender string) (uint64, error)

	Earnings(ctx context.Context, address, account string) (models.EarningsResponse, error)
	WithdrawEarnings(ctx context.Context, address, caller string) (models.WithdrawResponse, error)
	Settlements(ctx context.Context, filter models.SettlementFilter) ([]models.Settlement, error)
}

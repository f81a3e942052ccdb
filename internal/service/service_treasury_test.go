// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/internal/registry"
	"github.com/stayvault/stayvault/internal/token"
	"github.com/stayvault/stayvault/internal/vault"
	"github.com/stayvault/stayvault/models"
)

func newTestTreasuryService(reg *registry.Registry, led *token.Ledger, repo *mockSettlementRepository) *treasuryService {
	return &treasuryService{
		ledger:         led,
		registry:       reg,
		settlementRepo: repo,
		logger:         logger.Nop(),
	}
}

func TestTreasuryService_LedgerPassthrough(t *testing.T) {
	clk := newFakeClock()
	reg, led := newTestRegistry(t, clk)
	svc := newTestTreasuryService(reg, led, &mockSettlementRepository{})
	ctx := context.Background()

	balance, err := svc.Balance(ctx, guestAcc)
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000), balance)

	require.NoError(t, svc.Approve(ctx, guestAcc, "escrow-1", 700))
	allowance, err := svc.Allowance(ctx, guestAcc, "escrow-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(700), allowance)
}

func TestTreasuryService_Faucet(t *testing.T) {
	clk := newFakeClock()
	reg, led := newTestRegistry(t, clk)
	svc := newTestTreasuryService(reg, led, &mockSettlementRepository{})
	ctx := context.Background()

	_, err := svc.Faucet(ctx, "fresh-account")
	assert.ErrorIs(t, err, ErrFaucetDisabled)

	svc.faucetAmount = 500
	balance, err := svc.Faucet(ctx, "fresh-account")
	require.NoError(t, err)
	assert.Equal(t, uint64(500), balance)

	balance, err = svc.Faucet(ctx, "fresh-account")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), balance)
}

func TestTreasuryService_EarningsAndWithdraw(t *testing.T) {
	clk := newFakeClock()
	reg, led := newTestRegistry(t, clk)
	svc := newTestTreasuryService(reg, led, &mockSettlementRepository{})
	ctx := context.Background()

	parent, err := reg.CreateVault(hotelAcc, "APT-1", "", testBasePrice, "HOTEL123")
	require.NoError(t, err)
	require.NoError(t, reg.SetNightAvailability(hotelAcc, "APT-1", 5, true))
	night, _, err := reg.GetOrCreateNightVault("APT-1", 5, "NIGHT123")
	require.NoError(t, err)

	// settle one night so the parent treasury accrues the recipient share
	require.NoError(t, led.Approve(guestAcc, night.Address(), testBasePrice))
	require.NoError(t, night.CreateReservation(guestAcc, testBasePrice, 5, 6))
	_, _, _, err = night.CheckIn(guestAcc)
	require.NoError(t, err)

	earnings, err := svc.Earnings(ctx, parent.Address, hotelAcc)
	require.NoError(t, err)
	assert.Equal(t, uint64(950), earnings.Earnings)
	assert.Equal(t, uint64(950), earnings.TotalEarnings)

	t.Run("withdraw is owner-only", func(t *testing.T) {
		_, err := svc.WithdrawEarnings(ctx, parent.Address, guestAcc)
		assert.ErrorIs(t, err, vault.ErrOnlyOwner)
	})

	withdrawn, err := svc.WithdrawEarnings(ctx, parent.Address, hotelAcc)
	require.NoError(t, err)
	assert.Equal(t, uint64(950), withdrawn.Withdrawn)
	assert.Equal(t, uint64(950), led.BalanceOf(hotelAcc))

	earnings, err = svc.Earnings(ctx, parent.Address, hotelAcc)
	require.NoError(t, err)
	assert.Zero(t, earnings.Earnings)
	assert.Equal(t, uint64(950), earnings.TotalEarnings, "lifetime total survives withdrawal")

	t.Run("second withdraw fails", func(t *testing.T) {
		_, err := svc.WithdrawEarnings(ctx, parent.Address, hotelAcc)
		assert.ErrorIs(t, err, vault.ErrNoEarnings)
	})
}

func TestTreasuryService_Settlements(t *testing.T) {
	clk := newFakeClock()
	reg, led := newTestRegistry(t, clk)

	want := []models.Settlement{{VaultID: "APT-1", Booker: guestAcc}}
	repo := &mockSettlementRepository{
		getSettlementsFn: func(_ context.Context, filter models.SettlementFilter) ([]models.Settlement, error) {
			assert.Equal(t, "APT-1", filter.VaultID)
			return want, nil
		},
	}
	svc := newTestTreasuryService(reg, led, repo)

	got, err := svc.Settlements(context.Background(), models.SettlementFilter{VaultID: "APT-1"})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	t.Run("unknown address", func(t *testing.T) {
		_, err := svc.Earnings(context.Background(), "no-such-address", hotelAcc)
		assert.ErrorIs(t, err, registry.ErrVaultNotFound)
	})
}

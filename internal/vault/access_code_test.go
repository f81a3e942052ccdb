// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayvault/stayvault/internal/token"
)

// checkInVault runs a full reservation up to CHECKED_IN and returns the
// issued nonce.
func checkInVault(t *testing.T, led *token.Ledger, v *Vault, clk *fakeClock, booker string) uint64 {
	t.Helper()
	checkIn := clk.unix() + day
	approveAndReserve(t, led, v, booker, basePrice, checkIn, checkIn+day)
	clk.advance(day)
	_, nonce, _, err := v.CheckIn(booker)
	require.NoError(t, err)
	return nonce
}

func TestCurrentAccessCode_AuthorizedReaders(t *testing.T) {
	clk := newFakeClock()
	led := newTestLedger(t, userA)
	v := newTestVault(t, led, clk)
	checkInVault(t, led, v, clk, userA)

	for _, caller := range []string{userA, hotel, controller} {
		code, nonce, err := v.CurrentAccessCode(caller)
		require.NoError(t, err, caller)
		assert.Equal(t, "HOTEL123", code)
		assert.Equal(t, uint64(1), nonce)
	}
}

func TestCurrentAccessCode_DeniesOutsiders(t *testing.T) {
	clk := newFakeClock()
	led := newTestLedger(t, userA)
	v := newTestVault(t, led, clk)
	checkInVault(t, led, v, clk, userA)

	_, _, err := v.CurrentAccessCode(userC)
	assert.ErrorIs(t, err, ErrNotAuthorizedCode)
}

func TestCurrentAccessCode_NoneOutsideCheckedIn(t *testing.T) {
	clk := newFakeClock()
	led := newTestLedger(t, userA)
	v := newTestVault(t, led, clk)

	_, _, err := v.CurrentAccessCode(hotel)
	assert.ErrorIs(t, err, ErrNoActiveAccessCode)

	nonce := checkInVault(t, led, v, clk, userA)
	require.NoError(t, v.CheckOut(userA))

	_, _, err = v.CurrentAccessCode(hotel)
	assert.ErrorIs(t, err, ErrNoActiveAccessCode)

	// the historical nonce is deactivated as well
	_, err = v.AccessCode(hotel, nonce)
	assert.ErrorIs(t, err, ErrAccessCodeInactive)
}

func TestAccessCode_ByNonce(t *testing.T) {
	clk := newFakeClock()
	led := newTestLedger(t, userA)
	v := newTestVault(t, led, clk)
	nonce := checkInVault(t, led, v, clk, userA)

	code, err := v.AccessCode(userA, nonce)
	require.NoError(t, err)
	assert.Equal(t, "HOTEL123", code)

	_, err = v.AccessCode(userC, nonce)
	assert.ErrorIs(t, err, ErrNotAuthorizedCode)

	_, err = v.AccessCode(userA, nonce+1)
	assert.ErrorIs(t, err, ErrAccessCodeInactive)
}

func TestIsAccessCodeActive(t *testing.T) {
	clk := newFakeClock()
	led := newTestLedger(t, userA)
	v := newTestVault(t, led, clk)
	nonce := checkInVault(t, led, v, clk, userA)

	active, err := v.IsAccessCodeActive(userA, nonce)
	require.NoError(t, err)
	assert.True(t, active)

	_, err = v.IsAccessCodeActive(userC, nonce)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	require.NoError(t, v.CheckOut(userA))
	active, err = v.IsAccessCodeActive(hotel, nonce)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestMasterAccessCode_OwnerAndControllerOnly(t *testing.T) {
	clk := newFakeClock()
	led := newTestLedger(t)
	v := newTestVault(t, led, clk)

	code, err := v.MasterAccessCode(hotel)
	require.NoError(t, err)
	assert.Equal(t, "HOTEL123", code)

	_, err = v.MasterAccessCode(controller)
	require.NoError(t, err)

	_, err = v.MasterAccessCode(userA)
	assert.ErrorIs(t, err, ErrNotAuthorizedMaster)
}

func TestUpdateMasterAccessCode(t *testing.T) {
	clk := newFakeClock()
	led := newTestLedger(t, userA)
	v := newTestVault(t, led, clk)

	t.Run("owner only", func(t *testing.T) {
		assert.ErrorIs(t, v.UpdateMasterAccessCode(userA, "NEWCODE456"), ErrOnlyOwnerUpdatesCode)
		assert.ErrorIs(t, v.UpdateMasterAccessCode(controller, "NEWCODE456"), ErrOnlyOwnerUpdatesCode)
	})

	t.Run("length validation", func(t *testing.T) {
		assert.ErrorIs(t, v.UpdateMasterAccessCode(hotel, "123"), ErrInvalidAccessCode)
		assert.ErrorIs(t, v.UpdateMasterAccessCode(hotel, "1234567890123"), ErrInvalidAccessCode)
	})

	t.Run("applies to the next check-in", func(t *testing.T) {
		require.NoError(t, v.UpdateMasterAccessCode(hotel, "NEWCODE456"))

		code, err := v.MasterAccessCode(hotel)
		require.NoError(t, err)
		assert.Equal(t, "NEWCODE456", code)

		checkInVault(t, led, v, clk, userA)
		issued, _, err := v.CurrentAccessCode(userA)
		require.NoError(t, err)
		assert.Equal(t, "NEWCODE456", issued)
	})
}

func TestAccessCodeNonce_MonotonicAcrossCycles(t *testing.T) {
	clk := newFakeClock()
	led := newTestLedger(t, userA)
	v := newTestVault(t, led, clk)

	var last uint64
	for i := 0; i < 5; i++ {
		nonce := checkInVault(t, led, v, clk, userA)
		require.Greater(t, nonce, last)
		last = nonce

		active, err := v.IsAccessCodeActive(userA, nonce)
		require.NoError(t, err)
		assert.True(t, active)

		require.NoError(t, v.CheckOut(userA))
		clk.advance(day)
	}
	assert.Equal(t, uint64(5), v.AccessCodeNonce())
}

// SPDX-License-Identifier: Apache-2.0

package token

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayvault/stayvault/internal/logger"
)

const (
	alice  = "alice"
	bob    = "bob"
	escrow = "escrow"
)

func newLedger(t *testing.T) *Ledger {
	t.Helper()
	return NewLedger(logger.Nop())
}

func TestMint(t *testing.T) {
	l := newLedger(t)

	require.NoError(t, l.Mint(alice, 1000))
	require.NoError(t, l.Mint(alice, 500))
	assert.Equal(t, uint64(1500), l.BalanceOf(alice))

	assert.ErrorIs(t, l.Mint("", 100), ErrEmptyAccount)
}

func TestTransfer(t *testing.T) {
	l := newLedger(t)
	require.NoError(t, l.Mint(alice, 1000))

	t.Run("moves funds", func(t *testing.T) {
		require.NoError(t, l.Transfer(alice, bob, 300))
		assert.Equal(t, uint64(700), l.BalanceOf(alice))
		assert.Equal(t, uint64(300), l.BalanceOf(bob))
	})

	t.Run("zero amount is a no-op", func(t *testing.T) {
		require.NoError(t, l.Transfer(alice, bob, 0))
		assert.Equal(t, uint64(700), l.BalanceOf(alice))
	})

	t.Run("insufficient balance", func(t *testing.T) {
		err := l.Transfer(alice, bob, 701)
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assert.Equal(t, uint64(700), l.BalanceOf(alice))
		assert.Equal(t, uint64(300), l.BalanceOf(bob))
	})

	t.Run("empty accounts", func(t *testing.T) {
		assert.ErrorIs(t, l.Transfer("", bob, 1), ErrEmptyAccount)
		assert.ErrorIs(t, l.Transfer(alice, "", 1), ErrEmptyAccount)
	})
}

func TestApproveAndAllowance(t *testing.T) {
	l := newLedger(t)

	require.NoError(t, l.Approve(alice, escrow, 500))
	assert.Equal(t, uint64(500), l.Allowance(alice, escrow))
	assert.Equal(t, uint64(0), l.Allowance(alice, bob))

	// a later approval replaces, not adds
	require.NoError(t, l.Approve(alice, escrow, 200))
	assert.Equal(t, uint64(200), l.Allowance(alice, escrow))

	assert.ErrorIs(t, l.Approve("", escrow, 1), ErrEmptyAccount)
}

func TestTransferFrom(t *testing.T) {
	l := newLedger(t)
	require.NoError(t, l.Mint(alice, 1000))
	require.NoError(t, l.Approve(alice, escrow, 600))

	t.Run("consumes the allowance", func(t *testing.T) {
		require.NoError(t, l.TransferFrom(escrow, alice, escrow, 400))
		assert.Equal(t, uint64(600), l.BalanceOf(alice))
		assert.Equal(t, uint64(400), l.BalanceOf(escrow))
		assert.Equal(t, uint64(200), l.Allowance(alice, escrow))
	})

	t.Run("insufficient allowance", func(t *testing.T) {
		err := l.TransferFrom(escrow, alice, escrow, 201)
		assert.ErrorIs(t, err, ErrInsufficientAllowance)
		assert.Equal(t, uint64(600), l.BalanceOf(alice))
		assert.Equal(t, uint64(200), l.Allowance(alice, escrow))
	})

	t.Run("insufficient balance leaves allowance intact", func(t *testing.T) {
		require.NoError(t, l.Transfer(alice, bob, 500))
		err := l.TransferFrom(escrow, alice, escrow, 200)
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assert.Equal(t, uint64(200), l.Allowance(alice, escrow))
		assert.Equal(t, uint64(100), l.BalanceOf(alice))
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		assert.ErrorIs(t, l.TransferFrom(escrow, alice, escrow, 0), ErrZeroAmount)
	})
}

func TestLedger_ConcurrentTransfers(t *testing.T) {
	l := newLedger(t)
	require.NoError(t, l.Mint(alice, 10_000))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Transfer(alice, bob, 100))
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(0), l.BalanceOf(alice))
	assert.Equal(t, uint64(10_000), l.BalanceOf(bob))
}

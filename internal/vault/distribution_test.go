// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStake_BaseOnly(t *testing.T) {
	d := splitStake(1000, 1000, false)

	assert.Equal(t, uint64(1000), d.Base)
	assert.Equal(t, uint64(0), d.Additional)
	assert.Equal(t, uint64(950), d.RecipientShare)
	assert.Equal(t, uint64(50), d.PlatformShare)
	assert.Equal(t, uint64(0), d.CurrentBookerShare)
	assert.Equal(t, uint64(0), d.LastBookerShare)
}

func TestSplitStake_WithCession(t *testing.T) {
	// the reference case: base 1000, accepted bid 2500
	d := splitStake(2500, 1000, true)

	assert.Equal(t, uint64(1000), d.Base)
	assert.Equal(t, uint64(1500), d.Additional)
	assert.Equal(t, uint64(1250), d.RecipientShare)
	assert.Equal(t, uint64(200), d.PlatformShare)
	assert.Equal(t, uint64(600), d.CurrentBookerShare)
	assert.Equal(t, uint64(450), d.LastBookerShare)
	assert.Equal(t, uint64(2500), d.Total())
}

func TestSplitStake_NoLastBookerFoldsIntoRecipient(t *testing.T) {
	d := splitStake(2500, 1000, false)

	assert.Equal(t, uint64(0), d.LastBookerShare)
	// 300 recipient share of the additional plus the folded 450
	assert.Equal(t, uint64(950+300+450), d.RecipientShare)
	assert.Equal(t, uint64(2500), d.Total())
}

func TestSplitStake_ExactAccounting(t *testing.T) {
	cases := []struct {
		name      string
		stake     uint64
		basePrice uint64
		last      bool
	}{
		{"stake equals base", 1000, 1000, false},
		{"stake below rounding boundary", 999, 1000, false},
		{"odd base", 1001, 1001, false},
		{"odd additional with last booker", 1007, 1000, true},
		{"odd additional without last booker", 1007, 1000, false},
		{"prime stake", 7919, 1000, true},
		{"tiny amounts", 3, 1, true},
		{"one unit above base", 1001, 1000, true},
		{"large stake", 123456789123, 1000000, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := splitStake(tc.stake, tc.basePrice, tc.last)

			require.Equal(t, tc.stake, d.Base+d.Additional)
			require.Equal(t, tc.stake, d.Total(), "shares must sum to the stake exactly")
			if !tc.last {
				require.Zero(t, d.LastBookerShare)
			}
		})
	}
}

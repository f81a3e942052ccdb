package vault

import "github.com/stayvault/stayvault/models"

// Percentage shares of the settlement split. The base portion of a stake is
// split between the payment recipient and the platform; any additional value
// above the daily base price (raised by a cession) is shared with the two
// bookers involved in the transfer.
const (
	basePlatformPct = 5

	additionalCurrentPct  = 40
	additionalLastPct     = 30
	additionalPlatformPct = 10
)

// splitStake breaks stake into the exact shares disbursed at check-in.
//
// base = min(stake, basePrice) is split 95/5 between the payment recipient
// and the platform. The remainder above base is split 40/30/20/10 between the
// current booker, the last booker, the recipient, and the platform; when no
// cession happened the 30% last-booker share folds into the recipient.
//
// All divisions are integer; every rounding remainder is assigned to the
// recipient, so the shares always sum to stake exactly.
func splitStake(stake, basePrice uint64, hasLastBooker bool) models.Distribution {
	base := stake
	if base > basePrice {
		base = basePrice
	}
	additional := stake - base

	platform := base * basePlatformPct / 100
	d := models.Distribution{
		StakeAmount:    stake,
		Base:           base,
		Additional:     additional,
		PlatformShare:  platform,
		RecipientShare: base - platform,
	}

	if additional > 0 {
		current := additional * additionalCurrentPct / 100
		var last uint64
		if hasLastBooker {
			last = additional * additionalLastPct / 100
		}
		addPlatform := additional * additionalPlatformPct / 100

		d.CurrentBookerShare = current
		d.LastBookerShare = last
		d.PlatformShare += addPlatform
		d.RecipientShare += additional - current - last - addPlatform
	}

	return d
}

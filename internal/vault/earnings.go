package vault

// Treasury role of a parent vault: sub-vault settlements transfer the
// recipient share to the parent's escrow address and credit it here, to be
// withdrawn lazily by the owner.

// CreditEarnings records amount as withdrawable earnings of the vault owner.
// The funds themselves must already sit on the vault's escrow address.
func (v *Vault) CreditEarnings(amount uint64) {
	if amount == 0 {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.earnings[v.owner] += amount
	v.totalEarnings += amount

	v.logger.Debug().
		Str("vault_id", v.id).
		Uint64("amount", amount).
		Uint64("total_earnings", v.totalEarnings).
		Msg("earnings credited")
}

// Earnings returns the outstanding withdrawable balance of account.
func (v *Vault) Earnings(account string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.earnings[account]
}

// TotalEarnings returns the cumulative earnings ever credited. It is never
// decremented by withdrawals.
func (v *Vault) TotalEarnings() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.totalEarnings
}

// WithdrawEarnings transfers the caller's accumulated balance out of the
// vault escrow. Owner-only; fails when nothing is withdrawable.
func (v *Vault) WithdrawEarnings(caller string) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if caller != v.owner {
		return 0, ErrOnlyOwner
	}
	amount := v.earnings[caller]
	if amount == 0 {
		return 0, ErrNoEarnings
	}

	if err := v.token.Transfer(v.address, caller, amount); err != nil {
		return 0, err
	}
	v.earnings[caller] = 0

	v.logger.Info().
		Str("vault_id", v.id).
		Str("owner", caller).
		Uint64("amount", amount).
		Msg("earnings withdrawn")
	return amount, nil
}

package vault

import "github.com/stayvault/stayvault/models"

// Access-code reads are restricted to the current booker, the vault owner,
// and the platform controller. External lock systems poll these through the
// API and trust the vault as the sole source of truth.

// canReadAccessCodes reports whether caller belongs to the authorized reader
// set. Caller must hold v.mu.
func (v *Vault) canReadAccessCodes(caller string) bool {
	if caller == v.owner || (v.controller != "" && caller == v.controller) {
		return true
	}
	return v.reservation != nil && caller == v.reservation.Booker
}

// CurrentAccessCode returns the code issued at the last check-in together
// with its nonce. Fails with ErrNoActiveAccessCode outside CHECKED_IN and
// with ErrNotAuthorizedCode for callers outside the authorized set.
func (v *Vault) CurrentAccessCode(caller string) (string, uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.canReadAccessCodes(caller) {
		return "", 0, ErrNotAuthorizedCode
	}
	if v.state != models.StateCheckedIn || v.reservation == nil {
		return "", 0, ErrNoActiveAccessCode
	}

	nonce := v.reservation.Nonce
	return v.accessCodes[nonce], nonce, nil
}

// AccessCode returns the code stored under a historical nonce. Inactive
// nonces (never issued, or deactivated by check-out) are not readable.
func (v *Vault) AccessCode(caller string, nonce uint64) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.canReadAccessCodes(caller) {
		return "", ErrNotAuthorizedCode
	}
	if !v.accessCodeActive[nonce] {
		return "", ErrAccessCodeInactive
	}
	return v.accessCodes[nonce], nil
}

// IsAccessCodeActive reports whether the code under nonce is currently valid.
func (v *Vault) IsAccessCodeActive(caller string, nonce uint64) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.canReadAccessCodes(caller) {
		return false, ErrNotAuthorized
	}
	return v.accessCodeActive[nonce], nil
}

// MasterAccessCode returns the owner-set master code. Restricted to the
// vault owner and the platform controller.
func (v *Vault) MasterAccessCode(caller string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if caller != v.owner && (v.controller == "" || caller != v.controller) {
		return "", ErrNotAuthorizedMaster
	}
	return v.masterAccessCode, nil
}

// UpdateMasterAccessCode replaces the master code. Owner-only. The new code
// applies from the next check-in; a code already issued under an active nonce
// is not rewritten.
func (v *Vault) UpdateMasterAccessCode(caller, code string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if caller != v.owner {
		return ErrOnlyOwnerUpdatesCode
	}
	if len(code) < minAccessCodeLen || len(code) > maxAccessCodeLen {
		return ErrInvalidAccessCode
	}

	v.masterAccessCode = code
	v.logger.Info().Str("vault_id", v.id).Msg("master access code updated")
	return nil
}

package registry

// Night availability flags gate night sub-vault creation: the owner must
// mark a night available before anyone can open it for booking. Flags have
// no effect on sub-vaults that already exist.

// SetNightAvailability toggles a single night. Owner-only.
func (r *Registry) SetNightAvailability(caller, parentID string, night int64, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireOwner(caller, parentID); err != nil {
		return err
	}

	if r.nightAvailable[parentID] == nil {
		r.nightAvailable[parentID] = make(map[int64]bool)
	}
	r.nightAvailable[parentID][night] = available

	r.logger.Debug().
		Str("parent_id", parentID).
		Int64("night", night).
		Bool("available", available).
		Msg("night availability set")
	return nil
}

// SetAvailabilityWindow bulk-sets every night in [start, end]. Owner-only;
// at most maxAvailabilityWindow nights per call.
func (r *Registry) SetAvailabilityWindow(caller, parentID string, start, end int64, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireOwner(caller, parentID); err != nil {
		return err
	}
	if end < start {
		return ErrNoNights
	}
	if end-start+1 > maxAvailabilityWindow {
		return ErrTooManyNights
	}

	if r.nightAvailable[parentID] == nil {
		r.nightAvailable[parentID] = make(map[int64]bool)
	}
	for night := start; night <= end; night++ {
		r.nightAvailable[parentID][night] = available
	}

	r.logger.Debug().
		Str("parent_id", parentID).
		Int64("start", start).
		Int64("end", end).
		Bool("available", available).
		Msg("availability window set")
	return nil
}

// NightAvailability reports whether a night is open for sub-vault creation.
func (r *Registry) NightAvailability(parentID string, night int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nightAvailable[parentID][night]
}

// requireOwner checks that caller owns an existing parent vault. Caller must
// hold r.mu.
func (r *Registry) requireOwner(caller, parentID string) error {
	info, ok := r.vaults[parentID]
	if !ok {
		return ErrVaultNotFound
	}
	if info.Owner != caller {
		return ErrNotOwner
	}
	return nil
}

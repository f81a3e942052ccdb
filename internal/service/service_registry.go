// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"

	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/internal/registry"
	"github.com/stayvault/stayvault/internal/store"
	"github.com/stayvault/stayvault/internal/vault"
	"github.com/stayvault/stayvault/models"
)

// registryService fronts the in-memory factory registry and journals every
// durable fact (vault records, sub-vault records, availability flags) through
// the registry repository. The in-memory registry stays the source of truth
// at runtime.
type registryService struct {
	registry *registry.Registry
	repo     store.RegistryRepository
	logger   *logger.Logger
}

// NewRegistryService constructs a [RegistryService].
func NewRegistryService(reg *registry.Registry, repo store.RegistryRepository, logger *logger.Logger) RegistryService {
	return &registryService{
		registry: reg,
		repo:     repo,
		logger:   logger,
	}
}

// NewMirrorJournal returns a [registry.Config] MirrorHook that persists every
// pushed sub-vault state change through repo. Journal failures are logged and
// swallowed: the mirror stays authoritative in memory.
func NewMirrorJournal(repo store.RegistryRepository, log *logger.Logger) func(models.SubVaultRecord) {
	return func(record models.SubVaultRecord) {
		if err := repo.UpdateSubVaultState(context.Background(), record); err != nil {
			log.Err(err).
				Str("address", record.Address).
				Str("state", record.State.String()).
				Msg("failed to journal sub-vault state")
		}
	}
}

// CreateVault registers a new root vault for owner and journals its record.
func (s *registryService) CreateVault(ctx context.Context, owner string, req models.CreateVaultRequest) (models.VaultInfo, error) {
	log := logger.FromContext(ctx)

	info, err := s.registry.CreateVault(owner, req.VaultID, req.PropertyDetails, req.DailyBasePrice, req.AccessCode)
	if err != nil {
		log.Err(err).Str("vault_id", req.VaultID).Msg("vault creation failed")
		return models.VaultInfo{}, fmt.Errorf("vault creation failed: %w", err)
	}

	if err := s.repo.SaveVault(ctx, info); err != nil {
		log.Err(err).Str("vault_id", info.VaultID).Msg("failed to journal vault record")
	}

	return info, nil
}

func (s *registryService) GetVault(ctx context.Context, vaultID string) (models.VaultInfo, error) {
	return s.registry.VaultInfo(vaultID)
}

func (s *registryService) ListVaults(ctx context.Context) ([]models.VaultInfo, error) {
	ids := s.registry.AllVaultIDs()
	out := make([]models.VaultInfo, 0, len(ids))
	for _, id := range ids {
		info, err := s.registry.VaultInfo(id)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

// GetOrCreateDateVault resolves the sub-vault for an exact date range,
// creating and journaling it on first request.
func (s *registryService) GetOrCreateDateVault(ctx context.Context, parentID string, req models.DateVaultRequest) (models.SubVaultResponse, error) {
	v, created, err := s.registry.GetOrCreateDateVault(parentID, req.CheckIn, req.CheckOut)
	if err != nil {
		return models.SubVaultResponse{}, err
	}

	if created {
		s.journalSubVault(ctx, parentID, models.SubVaultDate, req.CheckIn, req.CheckOut, v)
	}

	return subVaultResponse(parentID, v, created), nil
}

// GetOrCreateDailyVault resolves the sub-vault for one calendar day.
func (s *registryService) GetOrCreateDailyVault(ctx context.Context, parentID string, day int64, accessCode string) (models.SubVaultResponse, error) {
	v, created, err := s.registry.GetOrCreateDailyVault(parentID, day, accessCode)
	if err != nil {
		return models.SubVaultResponse{}, err
	}

	if created {
		s.journalSubVault(ctx, parentID, models.SubVaultDaily, day, 0, v)
	}

	return subVaultResponse(parentID, v, created), nil
}

// CreateDailyVaults bulk-creates daily sub-vaults. Pre-existing days come
// back flagged as not created.
func (s *registryService) CreateDailyVaults(ctx context.Context, parentID string, days []int64, accessCode string) ([]models.SubVaultResponse, error) {
	if len(days) == 0 {
		return nil, ErrValidationNoDaysProvided
	}

	out := make([]models.SubVaultResponse, 0, len(days))
	for _, day := range days {
		resp, err := s.GetOrCreateDailyVault(ctx, parentID, day, accessCode)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// GetOrCreateNightVault resolves the sub-vault for one night index. The
// night must have been marked available by the owner beforehand.
func (s *registryService) GetOrCreateNightVault(ctx context.Context, parentID string, req models.NightVaultRequest) (models.SubVaultResponse, error) {
	v, created, err := s.registry.GetOrCreateNightVault(parentID, req.Night, req.AccessCode)
	if err != nil {
		return models.SubVaultResponse{}, err
	}

	if created {
		s.journalSubVault(ctx, parentID, models.SubVaultNight, req.Night, 0, v)
	}

	return subVaultResponse(parentID, v, created), nil
}

// SetNightAvailability applies a single-night toggle or a bulk window,
// depending on which fields of req are set, and journals the flags.
func (s *registryService) SetNightAvailability(ctx context.Context, caller, parentID string, req models.AvailabilityRequest) error {
	log := logger.FromContext(ctx)

	if req.Start != 0 || req.End != 0 {
		if err := s.registry.SetAvailabilityWindow(caller, parentID, req.Start, req.End, req.Available); err != nil {
			return err
		}
		for night := req.Start; night <= req.End; night++ {
			if err := s.repo.SaveNightAvailability(ctx, parentID, night, req.Available); err != nil {
				log.Err(err).Int64("night", night).Msg("failed to journal night availability")
			}
		}
		return nil
	}

	if err := s.registry.SetNightAvailability(caller, parentID, req.Night, req.Available); err != nil {
		return err
	}
	if err := s.repo.SaveNightAvailability(ctx, parentID, req.Night, req.Available); err != nil {
		log.Err(err).Int64("night", req.Night).Msg("failed to journal night availability")
	}
	return nil
}

// SubVaults enumerates the mirrored sub-vault records of one kind.
func (s *registryService) SubVaults(ctx context.Context, parentID string, kind models.SubVaultKind) ([]models.SubVaultRecord, error) {
	if _, err := s.registry.VaultInfo(parentID); err != nil {
		return nil, err
	}

	switch kind {
	case models.SubVaultDate:
		return s.registry.DateSubVaultsInfo(parentID), nil
	case models.SubVaultDaily:
		return s.registry.DailySubVaultsInfo(parentID), nil
	default:
		return s.registry.NightSubVaultsInfo(parentID), nil
	}
}

func (s *registryService) journalSubVault(ctx context.Context, parentID string, kind models.SubVaultKind, checkIn, checkOut int64, v *vault.Vault) {
	record := models.SubVaultRecord{
		ParentID:   parentID,
		Kind:       kind,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		SubVaultID: v.ID(),
		Address:    v.Address(),
		State:      v.State(),
	}
	if err := s.repo.SaveSubVault(ctx, record); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("sub_vault_id", record.SubVaultID).
			Msg("failed to journal sub-vault record")
	}
}

func subVaultResponse(parentID string, v *vault.Vault, created bool) models.SubVaultResponse {
	return models.SubVaultResponse{
		SubVaultID: v.ID(),
		Address:    v.Address(),
		ParentID:   parentID,
		Created:    created,
	}
}

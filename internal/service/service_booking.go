// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/internal/registry"
	"github.com/stayvault/stayvault/internal/store"
	"github.com/stayvault/stayvault/internal/vault"
	"github.com/stayvault/stayvault/models"
)

// bookingService drives one vault's reservation cycle. Every operation
// resolves the vault by its escrow address through the registry; the vault
// itself enforces state, authorization, and time gates. Successful check-ins
// are journaled as settlement records.
type bookingService struct {
	registry       *registry.Registry
	settlementRepo store.SettlementRepository
	logger         *logger.Logger
}

// NewBookingService constructs a [BookingService].
func NewBookingService(reg *registry.Registry, settlementRepo store.SettlementRepository, logger *logger.Logger) BookingService {
	return &bookingService{
		registry:       reg,
		settlementRepo: settlementRepo,
		logger:         logger,
	}
}

func (s *bookingService) resolve(address string) (*vault.Vault, error) {
	return s.registry.VaultByAddress(address)
}

func (s *bookingService) Snapshot(ctx context.Context, address string) (models.VaultSnapshot, error) {
	v, err := s.resolve(address)
	if err != nil {
		return models.VaultSnapshot{}, err
	}
	return v.Snapshot(), nil
}

func (s *bookingService) Bids(ctx context.Context, address string) ([]models.Bid, error) {
	v, err := s.resolve(address)
	if err != nil {
		return nil, err
	}
	return v.Bids(), nil
}

// CreateReservation opens a reservation cycle on the vault at address. The
// caller must have approved the escrow address for at least the stake.
func (s *bookingService) CreateReservation(ctx context.Context, address, caller string, req models.ReservationRequest) error {
	v, err := s.resolve(address)
	if err != nil {
		return err
	}
	return v.CreateReservation(caller, req.StakeAmount, req.CheckIn, req.CheckOut)
}

func (s *bookingService) PlaceBid(ctx context.Context, address, caller string, amount uint64) error {
	v, err := s.resolve(address)
	if err != nil {
		return err
	}
	return v.PlaceBid(caller, amount)
}

func (s *bookingService) CedeReservation(ctx context.Context, address, caller string, bidIndex int) error {
	v, err := s.resolve(address)
	if err != nil {
		return err
	}
	return v.CedeReservation(caller, bidIndex)
}

// CheckIn settles the vault at address and journals the resulting
// distribution. The access code issued for the stay comes back in the
// response.
func (s *bookingService) CheckIn(ctx context.Context, address, caller string) (models.CheckInResponse, error) {
	log := logger.FromContext(ctx)

	v, err := s.resolve(address)
	if err != nil {
		return models.CheckInResponse{}, err
	}

	// the last booker is cleared at check-out, so capture it while the
	// settlement it belongs to is still open
	lastBooker := v.LastBooker()

	code, nonce, dist, err := v.CheckIn(caller)
	if err != nil {
		return models.CheckInResponse{}, err
	}

	settlement := models.Settlement{
		VaultID:      v.ID(),
		Address:      address,
		Booker:       caller,
		LastBooker:   lastBooker,
		Distribution: dist,
	}
	if err := s.settlementRepo.SaveSettlement(ctx, settlement); err != nil {
		log.Err(err).Str("vault_id", v.ID()).Msg("failed to journal settlement")
	}

	return models.CheckInResponse{
		AccessCode:   code,
		Nonce:        nonce,
		Distribution: dist,
	}, nil
}

func (s *bookingService) CheckOut(ctx context.Context, address, caller string) error {
	v, err := s.resolve(address)
	if err != nil {
		return err
	}
	return v.CheckOut(caller)
}

func (s *bookingService) CurrentAccessCode(ctx context.Context, address, caller string) (models.AccessCodeResponse, error) {
	v, err := s.resolve(address)
	if err != nil {
		return models.AccessCodeResponse{}, err
	}

	code, nonce, err := v.CurrentAccessCode(caller)
	if err != nil {
		return models.AccessCodeResponse{}, err
	}
	return models.AccessCodeResponse{AccessCode: code, Nonce: nonce}, nil
}

func (s *bookingService) AccessCode(ctx context.Context, address, caller string, nonce uint64) (string, error) {
	v, err := s.resolve(address)
	if err != nil {
		return "", err
	}
	return v.AccessCode(caller, nonce)
}

func (s *bookingService) IsAccessCodeActive(ctx context.Context, address, caller string, nonce uint64) (bool, error) {
	v, err := s.resolve(address)
	if err != nil {
		return false, err
	}
	return v.IsAccessCodeActive(caller, nonce)
}

func (s *bookingService) MasterAccessCode(ctx context.Context, address, caller string) (string, error) {
	v, err := s.resolve(address)
	if err != nil {
		return "", err
	}
	return v.MasterAccessCode(caller)
}

func (s *bookingService) UpdateMasterAccessCode(ctx context.Context, address, caller, code string) error {
	v, err := s.resolve(address)
	if err != nil {
		return err
	}
	return v.UpdateMasterAccessCode(caller, code)
}

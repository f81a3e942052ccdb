// SPDX-License-Identifier: Apache-2.0

package service

import (
	"github.com/stayvault/stayvault/internal/config"
	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/internal/registry"
	"github.com/stayvault/stayvault/internal/store"
	"github.com/stayvault/stayvault/internal/token"
)

type Services struct {
	AuthService     AuthService
	RegistryService RegistryService
	BookingService  BookingService
	TreasuryService TreasuryService
}

// Deps carries the shared collaborators of all services: the in-process
// payment ledger, the factory registry, and the store repositories.
type Deps struct {
	Ledger       *token.Ledger
	Registry     *registry.Registry
	Repositories *store.Repositories
}

func NewServices(deps Deps, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(deps.Repositories.UserRepository, deps.Ledger, cfg.App, logger),
		RegistryService: NewRegistryService(deps.Registry, deps.Repositories.RegistryRepository, logger),
		BookingService:  NewBookingService(deps.Registry, deps.Repositories.SettlementRepository, logger),
		TreasuryService: NewTreasuryService(deps.Ledger, deps.Registry, deps.Repositories.SettlementRepository, cfg.App, logger),
	}
}

package store

import (
	"context"

	"github.com/stayvault/stayvault/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, user models.User) (models.User, error)
}

// RegistryRepository journals the factory registry's durable state: root
// vault records, sub-vault records with their mirrored lifecycle state, and
// the owner-set night availability flags.
type RegistryRepository interface {
	SaveVault(ctx context.Context, info models.VaultInfo) error
	GetAllVaults(ctx context.Context) ([]models.VaultInfo, error)
	SaveSubVault(ctx context.Context, record models.SubVaultRecord) error
	UpdateSubVaultState(ctx context.Context, record models.SubVaultRecord) error
	SaveNightAvailability(ctx context.Context, parentID string, night int64, available bool) error
}

// SettlementRepository journals every check-in distribution.
type SettlementRepository interface {
	SaveSettlement(ctx context.Context, settlement models.Settlement) error
	GetSettlements(ctx context.Context, filter models.SettlementFilter) ([]models.Settlement, error)
}

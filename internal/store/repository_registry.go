package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/models"
)

// registryRepository is the SQL-backed implementation of
// [RegistryRepository]. The in-memory registry stays the source of truth at
// runtime; this repository is its durable journal, replayable at startup.
type registryRepository struct {
	*DB
	logger *logger.Logger
}

// NewRegistryRepository constructs a [RegistryRepository] backed by the
// provided database connection and logger.
func NewRegistryRepository(db *DB, logger *logger.Logger) RegistryRepository {
	logger.Debug().Msg("creating registry repository")
	return &registryRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveVault persists a freshly created root vault record.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrVaultIDTaken].
//   - Any other driver-level error → wrapped in [ErrExecutingStatement].
func (r *registryRepository) SaveVault(ctx context.Context, info models.VaultInfo) error {
	log := logger.FromContext(ctx)

	_, err := r.ExecContext(ctx, saveVault,
		info.VaultID,
		info.Address,
		info.Owner,
		info.PropertyDetails,
		info.BasePrice,
		info.IsActive,
		info.CreatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "*registryRepository.SaveVault").
			Str("vault_id", info.VaultID).
			Msg("failed to save vault record")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrVaultIDTaken
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetAllVaults loads every journaled root vault record in creation order.
func (r *registryRepository) GetAllVaults(ctx context.Context) ([]models.VaultInfo, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, getAllVaults)
	if err != nil {
		log.Err(err).Str("func", "*registryRepository.GetAllVaults").Msg("failed to query vaults")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var out []models.VaultInfo
	for rows.Next() {
		var info models.VaultInfo
		if err := rows.Scan(
			&info.VaultID,
			&info.Address,
			&info.Owner,
			&info.PropertyDetails,
			&info.BasePrice,
			&info.IsActive,
			&info.CreatedAt,
		); err != nil {
			log.Err(err).Str("func", "*registryRepository.GetAllVaults").Msg("failed to scan vault row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return out, nil
}

// SaveSubVault persists the registry record of a freshly created sub-vault.
func (r *registryRepository) SaveSubVault(ctx context.Context, record models.SubVaultRecord) error {
	log := logger.FromContext(ctx)

	_, err := r.ExecContext(ctx, saveSubVault,
		record.Address,
		record.ParentID,
		string(record.Kind),
		record.CheckIn,
		record.CheckOut,
		record.SubVaultID,
		int(record.State),
		record.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "*registryRepository.SaveSubVault").
			Str("sub_vault_id", record.SubVaultID).
			Msg("failed to save sub-vault record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// UpdateSubVaultState rewrites the mirrored lifecycle state of one sub-vault.
func (r *registryRepository) UpdateSubVaultState(ctx context.Context, record models.SubVaultRecord) error {
	log := logger.FromContext(ctx)

	_, err := r.ExecContext(ctx, updateSubVaultState,
		int(record.State),
		record.UpdatedAt,
		record.Address,
	)
	if err != nil {
		log.Err(err).
			Str("func", "*registryRepository.UpdateSubVaultState").
			Str("address", record.Address).
			Msg("failed to update sub-vault state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// SaveNightAvailability upserts one night availability flag.
func (r *registryRepository) SaveNightAvailability(ctx context.Context, parentID string, night int64, available bool) error {
	log := logger.FromContext(ctx)

	_, err := r.ExecContext(ctx, upsertNightAvailability, parentID, night, available)
	if err != nil {
		log.Err(err).
			Str("func", "*registryRepository.SaveNightAvailability").
			Str("parent_id", parentID).
			Int64("night", night).
			Msg("failed to save night availability")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

package store

import (
	"context"
	"fmt"

	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/models"
)

// settlementRepository is the SQL-backed implementation of
// [SettlementRepository]. Every successful check-in appends one row; the
// journal is append-only.
type settlementRepository struct {
	*DB
	logger *logger.Logger
}

// NewSettlementRepository constructs a [SettlementRepository] backed by the
// provided database connection and logger.
func NewSettlementRepository(db *DB, logger *logger.Logger) SettlementRepository {
	logger.Debug().Msg("creating settlement repository")
	return &settlementRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveSettlement appends one distribution record to the journal.
func (r *settlementRepository) SaveSettlement(ctx context.Context, s models.Settlement) error {
	log := logger.FromContext(ctx)

	result, err := r.ExecContext(ctx, saveSettlement,
		s.VaultID,
		s.Address,
		s.Booker,
		s.LastBooker,
		s.Distribution.StakeAmount,
		s.Distribution.Base,
		s.Distribution.Additional,
		s.Distribution.RecipientShare,
		s.Distribution.PlatformShare,
		s.Distribution.CurrentBookerShare,
		s.Distribution.LastBookerShare,
	)
	if err != nil {
		log.Err(err).
			Str("func", "*settlementRepository.SaveSettlement").
			Str("vault_id", s.VaultID).
			Msg("failed to save settlement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrNothingSaved
	}

	return nil
}

// GetSettlements loads journal rows matching filter in insertion order.
func (r *settlementRepository) GetSettlements(ctx context.Context, filter models.SettlementFilter) ([]models.Settlement, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSettlementsQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "*settlementRepository.GetSettlements").
			Msg("failed to build settlements query")
		return nil, err
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*settlementRepository.GetSettlements").
			Msg("failed to query settlements")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var out []models.Settlement
	for rows.Next() {
		var s models.Settlement
		if err := rows.Scan(
			&s.VaultID,
			&s.Address,
			&s.Booker,
			&s.LastBooker,
			&s.Distribution.StakeAmount,
			&s.Distribution.Base,
			&s.Distribution.Additional,
			&s.Distribution.RecipientShare,
			&s.Distribution.PlatformShare,
			&s.Distribution.CurrentBookerShare,
			&s.Distribution.LastBookerShare,
		); err != nil {
			log.Err(err).
				Str("func", "*settlementRepository.GetSettlements").
				Msg("failed to scan settlement row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return out, nil
}

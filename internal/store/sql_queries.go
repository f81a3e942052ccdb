package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/stayvault/stayvault/models"
)

const (
	createUser = `INSERT INTO users (account_id, login, password_hash, name)
    VALUES ($1, $2, $3, $4)
    RETURNING account_id, login, password_hash, name, created_at;`

	findUserByLogin = `SELECT account_id, login, password_hash, name, created_at
    FROM users
    WHERE login = $1;`

	saveVault = `INSERT INTO vaults (vault_id, address, owner, property_details, base_price, is_active, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7);`

	getAllVaults = `SELECT vault_id, address, owner, property_details, base_price, is_active, created_at
    FROM vaults
    ORDER BY created_at;`

	saveSubVault = `INSERT INTO sub_vaults (address, parent_id, kind, check_in, check_out, sub_vault_id, state, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	updateSubVaultState = `UPDATE sub_vaults
    SET state = $1, updated_at = $2
    WHERE address = $3;`

	upsertNightAvailability = `INSERT INTO night_availability (parent_id, night, available)
    VALUES ($1, $2, $3)
    ON CONFLICT (parent_id, night) DO UPDATE SET available = EXCLUDED.available;`

	saveSettlement = `INSERT INTO settlements (
			vault_id,
			address,
			booker,
			last_booker,
			stake_amount,
			base_amount,
			additional_amount,
			recipient_share,
			platform_share,
			current_booker_share,
			last_booker_share
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
)

// buildSettlementsQuery dynamically builds the settlements SELECT with the
// optional filters of a [models.SettlementFilter].
func buildSettlementsQuery(filter models.SettlementFilter) (string, []any, error) {
	builder := sq.Select(
		"vault_id",
		"address",
		"booker",
		"last_booker",
		"stake_amount",
		"base_amount",
		"additional_amount",
		"recipient_share",
		"platform_share",
		"current_booker_share",
		"last_booker_share",
	).
		From("settlements").
		OrderBy("created_at").
		PlaceholderFormat(sq.Dollar)

	if filter.VaultID != "" {
		builder = builder.Where(sq.Eq{"vault_id": filter.VaultID})
	}
	if filter.Booker != "" {
		builder = builder.Where(sq.Eq{"booker": filter.Booker})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

package store

import (
	"database/sql"

	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/migrations"
)

type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate(dialect string) error {
	return migrations.Migrate(db.DB, dialect)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

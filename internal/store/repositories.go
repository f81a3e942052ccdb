package store

import "github.com/stayvault/stayvault/internal/logger"

type Repositories struct {
	UserRepository       UserRepository
	RegistryRepository   RegistryRepository
	SettlementRepository SettlementRepository
}

func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db, log),
		RegistryRepository:   NewRegistryRepository(db, log),
		SettlementRepository: NewSettlementRepository(db, log),
	}
}

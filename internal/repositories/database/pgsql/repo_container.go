package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/mkamgno/ohada_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(dbPool),
		JournalRepo:  newPgxJournalRepository(dbPool),
		PeriodRepo:   newPgxPeriodRepository(dbPool),
		TemplateRepo: newPgxTemplateRepository(dbPool),
		EntryRepo:    newPgxEntryRepository(dbPool),
		SourceRepo:   newPgxSourceRepository(dbPool),
		AuditRepo:    newPgxAuditRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
	}
}

package repositories

import (
	"context"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal registry data.
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, tenantID, journalID string) (*domain.Journal, error)

	// FindJournalByCode retrieves a journal by its short code within a tenant.
	FindJournalByCode(ctx context.Context, tenantID, code string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals for a tenant.
	ListJournals(ctx context.Context, tenantID string, limit, offset int) ([]domain.Journal, error)
}

// JournalWriter defines write operations for journal registry data.
type JournalWriter interface {
	// SaveJournal persists a new journal.
	SaveJournal(ctx context.Context, journal domain.Journal) error

	// UpdateJournal updates an existing journal's details.
	UpdateJournal(ctx context.Context, journal domain.Journal) error

	// DeleteJournal removes a journal. Callers must check references first.
	DeleteJournal(ctx context.Context, tenantID, journalID string) error
}

// JournalRepositoryFacade combines all journal registry repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

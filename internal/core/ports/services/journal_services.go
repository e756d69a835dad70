package services

import (
	"context"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/mkamgno/ohada_ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal registry data.
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal by its ID.
	GetJournalByID(ctx context.Context, tenantID, journalID string) (*domain.Journal, error)

	// GetActiveJournal retrieves a journal and fails unless it is active.
	// Used as a precondition gate by the posting engine.
	GetActiveJournal(ctx context.Context, tenantID, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) ([]domain.Journal, error)
}

// JournalWriterSvc defines write operations for journal registry data.
type JournalWriterSvc interface {
	// CreateJournal persists a new journal.
	CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error)

	// UpdateJournal updates journal details.
	UpdateJournal(ctx context.Context, tenantID, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error)

	// DeleteJournal removes a journal that no entry references.
	DeleteJournal(ctx context.Context, tenantID, journalID, userID string) error
}

// JournalSvcFacade combines all journal registry service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

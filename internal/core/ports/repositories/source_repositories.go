package repositories

import (
	"context"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
)

// SourceReader defines read operations for source document data.
type SourceReader interface {
	// FindSourceByID retrieves a source document by its unique identifier.
	FindSourceByID(ctx context.Context, tenantID, docID string) (*domain.SourceDocument, error)
}

// SourceWriter defines write operations for source document data.
type SourceWriter interface {
	// SaveSourceDocument persists a new source document.
	SaveSourceDocument(ctx context.Context, doc domain.SourceDocument) error
}

// SourceRepositoryFacade combines all source document repository interfaces.
type SourceRepositoryFacade interface {
	SourceReader
	SourceWriter
}

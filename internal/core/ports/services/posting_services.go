package services

import (
	"context"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/mkamgno/ohada_ledger/internal/dto"
)

// PostingReaderSvc defines read operations over journal entries.
type PostingReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines populated.
	GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.Entry, error)

	// ListEntries retrieves a filtered, token-paginated list of entries.
	ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// PostingWriterSvc defines the posting engine write operations.
type PostingWriterSvc interface {
	// CreateEntry creates a draft entry after gating on an active journal
	// and an open period. Lines are added separately.
	CreateEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, userID string) (*domain.Entry, error)

	// AddLine appends a line to a draft entry. The target account must be
	// active and the amount consistent with the line sense.
	AddLine(ctx context.Context, tenantID, entryID string, req dto.AddLineRequest, userID string) (*domain.EntryLine, error)

	// UpdateLine mutates a line of a draft entry.
	UpdateLine(ctx context.Context, tenantID, entryID, lineID string, req dto.UpdateLineRequest, userID string) (*domain.EntryLine, error)

	// DeleteLine removes a line from a draft entry.
	DeleteLine(ctx context.Context, tenantID, entryID, lineID, userID string) error

	// ValidateEntry irreversibly locks a balanced entry.
	ValidateEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.Entry, error)

	// GenerateEntry builds and persists a balanced entry from a source
	// document and an operation template.
	GenerateEntry(ctx context.Context, tenantID string, req dto.GenerateEntryRequest, userID string) (*domain.Entry, error)
}

// PostingSvcFacade combines the posting engine service interfaces.
type PostingSvcFacade interface {
	PostingReaderSvc
	PostingWriterSvc
}

// SourceSvcFacade manages the source documents consumed by generation.
type SourceSvcFacade interface {
	// RegisterSource persists a new source document.
	RegisterSource(ctx context.Context, tenantID string, req dto.CreateSourceRequest, userID string) (*domain.SourceDocument, error)

	// GetSourceByID retrieves a source document.
	GetSourceByID(ctx context.Context, tenantID, docID string) (*domain.SourceDocument, error)
}

package repositories

import (
	"context"
	"time"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryFilter narrows entry listings. Nil/zero values mean "no filter".
type EntryFilter struct {
	From            *time.Time
	To              *time.Time
	JournalID       string
	UnvalidatedOnly bool
}

// EntryReader defines read operations for journal entry data.
type EntryReader interface {
	// FindEntryByID retrieves a specific entry by its unique identifier.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.Entry, error)

	// ListEntries retrieves a filtered, token-paginated list of entries,
	// newest entry date first. It returns the entries, a token for the
	// next page, and an error.
	ListEntries(ctx context.Context, tenantID string, filter EntryFilter, limit int, nextToken *string) ([]domain.Entry, *string, error)

	// CountEntriesByJournal returns how many entries reference a journal.
	CountEntriesByJournal(ctx context.Context, tenantID, journalID string) (int64, error)

	// CountEntriesByPeriod returns how many entries reference a period.
	CountEntriesByPeriod(ctx context.Context, tenantID, periodID string) (int64, error)
}

// EntryWriter defines write operations for journal entry data.
type EntryWriter interface {
	// SaveEntry persists an entry and its lines atomically in one
	// database transaction. The lines slice may be empty.
	SaveEntry(ctx context.Context, entry domain.Entry, lines []domain.EntryLine) error

	// UpdateEntryTotals refreshes the denormalized debit/credit totals.
	UpdateEntryTotals(ctx context.Context, tenantID, entryID string, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error

	// MarkValidated flips the validated flag from false to true with a
	// conditional update, stamping validator and totals. It returns false
	// when the entry was already validated (the CAS lost the race).
	MarkValidated(ctx context.Context, tenantID, entryID, userID string, now time.Time, totalDebit, totalCredit decimal.Decimal) (bool, error)
}

// LineReader defines read operations for entry line data.
type LineReader interface {
	// FindLineByID retrieves one line of an entry.
	FindLineByID(ctx context.Context, tenantID, entryID, lineID string) (*domain.EntryLine, error)

	// FindLinesByEntryID retrieves all lines of an entry.
	FindLinesByEntryID(ctx context.Context, tenantID, entryID string) ([]domain.EntryLine, error)
}

// LineWriter defines write operations for entry line data.
type LineWriter interface {
	// SaveLine persists a new line.
	SaveLine(ctx context.Context, line domain.EntryLine) error

	// UpdateLine updates an existing line.
	UpdateLine(ctx context.Context, line domain.EntryLine) error

	// DeleteLine removes a line from a draft entry.
	DeleteLine(ctx context.Context, tenantID, entryID, lineID string) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
	LineReader
	LineWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities.
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}

package repositories

import (
	"context"
	"time"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
)

// AccountFilter narrows account listings. Zero values mean "no filter".
type AccountFilter struct {
	OnlyActive bool
	Prefix     string // Account number prefix match
	Class      int    // OHADA class digit, 1-8
}

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its OHADA number within a tenant.
	FindAccountByNumber(ctx context.Context, tenantID, number string) (*domain.Account, error)

	// FindAccountsByNumbers retrieves multiple accounts keyed by account number.
	FindAccountsByNumbers(ctx context.Context, tenantID string, numbers []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a filtered, paginated list of accounts for a tenant.
	ListAccounts(ctx context.Context, tenantID string, filter AccountFilter, limit, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates label and notes of an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive. Idempotent.
	DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

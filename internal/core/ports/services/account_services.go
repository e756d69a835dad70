package services

import (
	"context"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/mkamgno/ohada_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// GetActiveAccountByNumber retrieves an account by number and fails
	// unless it exists and is active. Used as a gate by posting flows.
	GetActiveAccountByNumber(ctx context.Context, tenantID, number string) (*domain.Account, error)

	// GetActiveAccountsByNumbers resolves several account numbers at once,
	// failing if any is missing or inactive.
	GetActiveAccountsByNumbers(ctx context.Context, tenantID string, numbers []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts filtered by activity, prefix or class.
	ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data.
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates label/notes of an existing account.
	UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. Idempotent.
	DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

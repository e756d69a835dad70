package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mkamgno/ohada_ledger/internal/apperrors"
	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	portsrepo "github.com/mkamgno/ohada_ledger/internal/core/ports/repositories"
	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
	"github.com/mkamgno/ohada_ledger/internal/middleware"
)

var (
	ErrAccountNumberInvalid = errors.New("account number must be 5 to 8 digits starting with an OHADA class 1-8")
	ErrAccountInactive      = errors.New("account is inactive")
)

// accountService manages the tenant chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account in the tenant's chart of accounts.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidAccountNumber(req.Number) {
		return nil, fmt.Errorf("%w: %q", ErrAccountNumberInvalid, req.Number)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    tenantID,
		Number:      req.Number,
		Label:       req.Label,
		Notes:       req.Notes,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, req.Number)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("number", req.Number))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("number", account.Number))
	return &account, nil
}

// GetAccountByID retrieves an account regardless of its active flag.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetActiveAccountByNumber retrieves an account by number and fails unless
// it is active. This is the gate used by every posting flow.
func (s *accountService) GetActiveAccountByNumber(ctx context.Context, tenantID, number string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, tenantID, number)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", number, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrAccountInactive, number)
	}
	return account, nil
}

// GetActiveAccountsByNumbers resolves several account numbers at once,
// failing if any is missing or inactive.
func (s *accountService) GetActiveAccountsByNumbers(ctx context.Context, tenantID string, numbers []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByNumbers(ctx, tenantID, numbers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, number := range numbers {
		account, found := accounts[number]
		if !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, number)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrAccountInactive, number)
		}
	}
	return accounts, nil
}

// ListAccounts retrieves accounts filtered by activity, prefix or class.
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := portsrepo.AccountFilter{
		OnlyActive: params.OnlyActive,
		Prefix:     params.Prefix,
		Class:      params.Class,
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, filter, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates label and notes of an existing account.
// The account number is immutable once created.
func (s *accountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	updated := false
	if req.Label != nil {
		account.Label = *req.Label
		updated = true
	}
	if req.Notes != nil {
		account.Notes = *req.Notes
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.Touch(userID, time.Now().UTC())

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account inactive. Existing lines keep
// referencing it; only new postings are blocked. Idempotent.
func (s *accountService) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeactivateAccount(ctx, tenantID, accountID, userID, time.Now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

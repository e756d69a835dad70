package services

import (
	"context"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/mkamgno/ohada_ledger/internal/dto"
)

// TokenSvcFacade issues the JWT access tokens consumed by the auth middleware.
type TokenSvcFacade interface {
	// IssueToken signs a token for an authenticated user.
	IssueToken(ctx context.Context, user domain.User) (*dto.LoginResponse, error)
}

package dto

import (
	"time"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Number string `json:"number" binding:"required"`
	Label  string `json:"label" binding:"required"`
	Notes  string `json:"notes"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Label *string `json:"label"`
	Notes *string `json:"notes"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Prefix     string `form:"prefix"`
	Class      int    `form:"class" binding:"omitempty,min=1,max=8"`
	OnlyActive bool   `form:"onlyActive,default=true"`
	Limit      int    `form:"limit,default=50"`
	Offset     int    `form:"offset,default=0"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string    `json:"accountID"`
	Number        string    `json:"number"`
	Class         int       `json:"class"`
	Label         string    `json:"label"`
	Notes         string    `json:"notes"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Number:        acc.Number,
		Class:         acc.Class(),
		Label:         acc.Label,
		Notes:         acc.Notes,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToAccountResponses converts a slice of domain.Account to response DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

package dto

import (
	"time"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTemplateRequest defines the data needed to create an operation template.
type CreateTemplateRequest struct {
	OperationType    string             `json:"operationType" binding:"required"`
	PaymentMode      string             `json:"paymentMode" binding:"required"`
	PrincipalAccount string             `json:"principalAccount" binding:"required"`
	IsStaticAccount  bool               `json:"isStaticAccount"`
	PrincipalSense   domain.Sense       `json:"principalSense" binding:"required,oneof=DEBIT CREDIT"`
	JournalID        string             `json:"journalID" binding:"required"`
	AmountBasis      domain.AmountBasis `json:"amountBasis" binding:"required,oneof=HT TTC TVA PAU"`
	ClientCeiling    *decimal.Decimal   `json:"clientCeiling"`
}

// UpdateTemplateRequest defines the data allowed for updating a template.
type UpdateTemplateRequest struct {
	PrincipalAccount *string             `json:"principalAccount"`
	IsStaticAccount  *bool               `json:"isStaticAccount"`
	PrincipalSense   *domain.Sense       `json:"principalSense" binding:"omitempty,oneof=DEBIT CREDIT"`
	JournalID        *string             `json:"journalID"`
	AmountBasis      *domain.AmountBasis `json:"amountBasis" binding:"omitempty,oneof=HT TTC TVA PAU"`
	ClientCeiling    *decimal.Decimal    `json:"clientCeiling"`
	IsActive         *bool               `json:"isActive"`
}

// ListTemplatesParams defines query parameters for listing templates.
type ListTemplatesParams struct {
	OperationType string `form:"type"`
	PaymentMode   string `form:"mode"`
	Account       string `form:"account"`
	Limit         int    `form:"limit,default=50"`
	Offset        int    `form:"offset,default=0"`
}

// TemplateResponse defines the data returned for an operation template.
type TemplateResponse struct {
	TemplateID       string             `json:"templateID"`
	OperationType    string             `json:"operationType"`
	PaymentMode      string             `json:"paymentMode"`
	PrincipalAccount string             `json:"principalAccount"`
	IsStaticAccount  bool               `json:"isStaticAccount"`
	PrincipalSense   domain.Sense       `json:"principalSense"`
	JournalID        string             `json:"journalID"`
	AmountBasis      domain.AmountBasis `json:"amountBasis"`
	ClientCeiling    *decimal.Decimal   `json:"clientCeiling,omitempty"`
	IsActive         bool               `json:"isActive"`
	CreatedAt        time.Time          `json:"createdAt"`
	CreatedBy        string             `json:"createdBy"`
	LastUpdatedAt    time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy    string             `json:"lastUpdatedBy"`
}

// ToTemplateResponse converts a domain.OperationTemplate to TemplateResponse DTO.
func ToTemplateResponse(t *domain.OperationTemplate) TemplateResponse {
	return TemplateResponse{
		TemplateID:       t.TemplateID,
		OperationType:    t.OperationType,
		PaymentMode:      t.PaymentMode,
		PrincipalAccount: t.PrincipalAccount,
		IsStaticAccount:  t.IsStaticAccount,
		PrincipalSense:   t.PrincipalSense,
		JournalID:        t.JournalID,
		AmountBasis:      t.AmountBasis,
		ClientCeiling:    t.ClientCeiling,
		IsActive:         t.IsActive,
		CreatedAt:        t.CreatedAt,
		CreatedBy:        t.CreatedBy,
		LastUpdatedAt:    t.LastUpdatedAt,
		LastUpdatedBy:    t.LastUpdatedBy,
	}
}

// ToTemplateResponses converts a slice of domain.OperationTemplate to response DTOs.
func ToTemplateResponses(templates []domain.OperationTemplate) []TemplateResponse {
	res := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		res[i] = ToTemplateResponse(&t)
	}
	return res
}

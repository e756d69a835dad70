package dto

import (
	"time"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSourceRequest defines the data needed to register a source document.
type CreateSourceRequest struct {
	Type      domain.SourceType     `json:"type" binding:"required,oneof=TRANSACTION FACTURE STOCK"`
	Label     string                `json:"label" binding:"required"`
	Reference string                `json:"reference"`
	Amount    decimal.Decimal       `json:"amount" binding:"required"`
	NetAmount decimal.Decimal       `json:"netAmount"`
	VATRate   decimal.Decimal       `json:"vatRate"`
	Direction domain.StockDirection `json:"direction" binding:"omitempty,oneof=ENTRY EXIT"`
	DocDate   time.Time             `json:"docDate" binding:"required"`
}

// SourceResponse defines the data returned for a source document.
type SourceResponse struct {
	DocID     string                `json:"docID"`
	Type      domain.SourceType     `json:"type"`
	Label     string                `json:"label"`
	Reference string                `json:"reference,omitempty"`
	Amount    decimal.Decimal       `json:"amount"`
	NetAmount decimal.Decimal       `json:"netAmount"`
	VATRate   decimal.Decimal       `json:"vatRate"`
	Direction domain.StockDirection `json:"direction,omitempty"`
	DocDate   time.Time             `json:"docDate"`
	CreatedAt time.Time             `json:"createdAt"`
	CreatedBy string                `json:"createdBy"`
}

// ToSourceResponse converts a domain.SourceDocument to SourceResponse DTO.
func ToSourceResponse(d *domain.SourceDocument) SourceResponse {
	return SourceResponse{
		DocID:     d.DocID,
		Type:      d.Type,
		Label:     d.Label,
		Reference: d.Reference,
		Amount:    d.Amount,
		NetAmount: d.NetAmount,
		VATRate:   d.VATRate,
		Direction: d.Direction,
		DocDate:   d.DocDate,
		CreatedAt: d.CreatedAt,
		CreatedBy: d.CreatedBy,
	}
}

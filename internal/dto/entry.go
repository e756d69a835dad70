package dto

import (
	"time"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the data needed to create a draft entry.
// Lines are added afterwards through the line endpoint.
type CreateEntryRequest struct {
	Number    string    `json:"number"` // Optional; validated against the generated pattern when supplied
	Label     string    `json:"label" binding:"required"`
	EntryDate time.Time `json:"entryDate" binding:"required"`
	JournalID string    `json:"journalID" binding:"required"`
	PeriodID  string    `json:"periodID" binding:"required"`
	Reference string    `json:"reference"`
	Notes     string    `json:"notes"`
}

// AddLineRequest defines the data needed to add a line to a draft entry.
// The side opposite to Sense is forced to zero whatever the caller sends.
type AddLineRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required"`
	Label         string          `json:"label"`
	Sense         domain.Sense    `json:"sense" binding:"required,oneof=DEBIT CREDIT"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Notes         string          `json:"notes"`
}

// UpdateLineRequest defines the data allowed for updating a draft entry line.
type UpdateLineRequest struct {
	AccountNumber *string          `json:"accountNumber"`
	Label         *string          `json:"label"`
	Sense         *domain.Sense    `json:"sense" binding:"omitempty,oneof=DEBIT CREDIT"`
	Debit         *decimal.Decimal `json:"debit"`
	Credit        *decimal.Decimal `json:"credit"`
	Notes         *string          `json:"notes"`
}

// GenerateEntryRequest drives automatic entry generation from a source
// document and an operation template.
type GenerateEntryRequest struct {
	SourceDocumentID string `json:"sourceDocumentID" binding:"required"`
	TemplateID       string `json:"templateID" binding:"required"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	From            *time.Time `form:"from" time_format:"2006-01-02"`
	To              *time.Time `form:"to" time_format:"2006-01-02"`
	JournalID       string     `form:"journalID"`
	UnvalidatedOnly bool       `form:"unvalidated"`
	Limit           int        `form:"limit,default=20"`
	NextToken       *string    `form:"nextToken"`
}

// LineResponse defines the data returned for one entry line.
type LineResponse struct {
	LineID        string          `json:"lineID"`
	EntryID       string          `json:"entryID"`
	AccountNumber string          `json:"accountNumber"`
	Label         string          `json:"label"`
	Sense         domain.Sense    `json:"sense"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Notes         string          `json:"notes"`
	EntryDate     time.Time       `json:"entryDate"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID     string          `json:"entryID"`
	Number      string          `json:"number"`
	Label       string          `json:"label"`
	EntryDate   time.Time       `json:"entryDate"`
	JournalID   string          `json:"journalID"`
	PeriodID    string          `json:"periodID"`
	Reference   string          `json:"reference,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Status      string          `json:"status"`
	ValidatedAt *time.Time      `json:"validatedAt,omitempty"`
	ValidatedBy string          `json:"validatedBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
	Lines       []LineResponse  `json:"lines,omitempty"`
}

// ListEntriesResponse carries one page of entries and the next page token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToLineResponse converts a domain.EntryLine to LineResponse DTO.
func ToLineResponse(l *domain.EntryLine) LineResponse {
	return LineResponse{
		LineID:        l.LineID,
		EntryID:       l.EntryID,
		AccountNumber: l.AccountNumber,
		Label:         l.Label,
		Sense:         l.Sense,
		Debit:         l.Debit,
		Credit:        l.Credit,
		Notes:         l.Notes,
		EntryDate:     l.EntryDate,
	}
}

// ToLineResponses converts a slice of domain.EntryLine to response DTOs.
func ToLineResponses(lines []domain.EntryLine) []LineResponse {
	res := make([]LineResponse, len(lines))
	for i, l := range lines {
		res[i] = ToLineResponse(&l)
	}
	return res
}

// ToEntryResponse converts a domain.Entry to EntryResponse DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	resp := EntryResponse{
		EntryID:     e.EntryID,
		Number:      e.Number,
		Label:       e.Label,
		EntryDate:   e.EntryDate,
		JournalID:   e.JournalID,
		PeriodID:    e.PeriodID,
		Reference:   e.Reference,
		Notes:       e.Notes,
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
		Status:      string(e.Status),
		ValidatedAt: e.ValidatedAt,
		ValidatedBy: e.ValidatedBy,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = ToLineResponses(e.Lines)
	}
	return resp
}

// ToEntryResponses converts a slice of domain.Entry to response DTOs.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToEntryResponse(&e)
	}
	return res
}

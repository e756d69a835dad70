package dto

import (
	"time"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
)

// CreateJournalRequest defines the data needed to create a new journal.
type CreateJournalRequest struct {
	Code  string             `json:"code" binding:"required"`
	Label string             `json:"label" binding:"required"`
	Type  domain.JournalType `json:"type" binding:"required"`
}

// UpdateJournalRequest defines the data allowed for updating a journal.
type UpdateJournalRequest struct {
	Label    *string             `json:"label"`
	Type     *domain.JournalType `json:"type"`
	IsActive *bool               `json:"isActive"`
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID     string             `json:"journalID"`
	Code          string             `json:"code"`
	Label         string             `json:"label"`
	Type          domain.JournalType `json:"type"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:     j.JournalID,
		Code:          j.Code,
		Label:         j.Label,
		Type:          j.Type,
		IsActive:      j.IsActive,
		CreatedAt:     j.CreatedAt,
		CreatedBy:     j.CreatedBy,
		LastUpdatedAt: j.LastUpdatedAt,
		LastUpdatedBy: j.LastUpdatedBy,
	}
}

// ToJournalResponses converts a slice of domain.Journal to response DTOs.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	res := make([]JournalResponse, len(journals))
	for i, j := range journals {
		res[i] = ToJournalResponse(&j)
	}
	return res
}

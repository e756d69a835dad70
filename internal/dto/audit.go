package dto

import (
	"time"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
)

// ListAuditParams defines query parameters for querying the audit trail.
type ListAuditParams struct {
	Actor     string     `form:"actor"`
	Action    string     `form:"action"`
	EntryID   string     `form:"entryID"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=50"`
	NextToken *string    `form:"nextToken"`
}

// AuditRecordResponse defines the data returned for one audit record.
type AuditRecordResponse struct {
	RecordID   string    `json:"recordID"`
	EntryID    *string   `json:"entryID,omitempty"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor"`
	ActionDate time.Time `json:"actionDate"`
	Details    string    `json:"details"`
	SourceIP   string    `json:"sourceIP,omitempty"`
}

// ListAuditResponse carries one page of audit records and the next page token.
type ListAuditResponse struct {
	Records   []AuditRecordResponse `json:"records"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToAuditRecordResponse converts a domain.AuditRecord to its response DTO.
func ToAuditRecordResponse(r *domain.AuditRecord) AuditRecordResponse {
	return AuditRecordResponse{
		RecordID:   r.RecordID,
		EntryID:    r.EntryID,
		Action:     string(r.Action),
		Actor:      r.Actor,
		ActionDate: r.ActionDate,
		Details:    r.Details,
		SourceIP:   r.SourceIP,
	}
}

// ToAuditRecordResponses converts a slice of domain.AuditRecord to response DTOs.
func ToAuditRecordResponses(records []domain.AuditRecord) []AuditRecordResponse {
	res := make([]AuditRecordResponse, len(records))
	for i, r := range records {
		res[i] = ToAuditRecordResponse(&r)
	}
	return res
}

package domain

import "time"

// AuditAction identifies the kind of action an audit record describes.
type AuditAction string

const (
	AuditCreate   AuditAction = "CREATE"
	AuditUpdate   AuditAction = "UPDATE"
	AuditDelete   AuditAction = "DELETE"
	AuditClose    AuditAction = "CLOSE"
	AuditValidate AuditAction = "VALIDATE"
	AuditGenerate AuditAction = "GENERATE"
)

// AuditRecord is one append-only compliance log row. Records are never
// updated or deleted.
type AuditRecord struct {
	RecordID       string      `json:"recordID"` // Primary key (UUID)
	TenantID       string      `json:"tenantID"`
	EntryID        *string     `json:"entryID,omitempty"` // Nullable reference to an entry
	Action         AuditAction `json:"action"`
	Actor          string      `json:"actor"` // UserID reference
	ActionDate     time.Time   `json:"actionDate"`
	Details        string      `json:"details"`
	BeforeSnapshot string      `json:"beforeSnapshot,omitempty"`
	AfterSnapshot  string      `json:"afterSnapshot,omitempty"`
	SourceIP       string      `json:"sourceIP,omitempty"`
}

package domain

import "regexp"

// journalCodePattern restricts journal codes to 1-5 uppercase letters.
var journalCodePattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// JournalType is a free-form journal category.
type JournalType string

const (
	JournalPurchase JournalType = "PURCHASE"
	JournalSale     JournalType = "SALE"
	JournalTreasury JournalType = "TREASURY"
	JournalMisc     JournalType = "MISC"
)

// Journal is a named ledger subdivision that entries are filed under.
type Journal struct {
	JournalID string      `json:"journalID"` // Primary key (UUID)
	TenantID  string      `json:"tenantID"`
	Code      string      `json:"code"` // Short code, unique per tenant at creation
	Label     string      `json:"label"`
	Type      JournalType `json:"type"`
	IsActive  bool        `json:"isActive"`
	AuditFields
}

// ValidJournalCode reports whether code satisfies the journal code rule.
func ValidJournalCode(code string) bool {
	return journalCodePattern.MatchString(code)
}

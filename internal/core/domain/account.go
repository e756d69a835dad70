package domain

import "regexp"

// accountNumberPattern is the OHADA chart-of-accounts numbering rule:
// first digit is the account class (1-8), total length 5 to 8 digits.
// Class 9 (analytical accounts) is not accepted for posting.
var accountNumberPattern = regexp.MustCompile(`^[1-8][0-9]{4,7}$`)

// Account is one entry of a tenant's chart of accounts.
type Account struct {
	AccountID string `json:"accountID"` // Primary key (UUID)
	TenantID  string `json:"tenantID"`
	Number    string `json:"number"` // OHADA account number, unique per tenant
	Label     string `json:"label"`
	Notes     string `json:"notes"`
	IsActive  bool   `json:"isActive"` // Soft delete flag; accounts are never hard-deleted
	AuditFields
}

// ValidAccountNumber reports whether number satisfies the OHADA numbering rule.
func ValidAccountNumber(number string) bool {
	return accountNumberPattern.MatchString(number)
}

// Class returns the OHADA class digit (1-8) of the account, or 0 if the
// number is malformed.
func (a Account) Class() int {
	if !ValidAccountNumber(a.Number) {
		return 0
	}
	return int(a.Number[0] - '0')
}

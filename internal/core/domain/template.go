package domain

import "github.com/shopspring/decimal"

// AmountBasis selects which amount of a source document drives the
// principal line of a generated entry.
type AmountBasis string

const (
	BasisTTC AmountBasis = "TTC" // Tax inclusive
	BasisHT  AmountBasis = "HT"  // Tax exclusive
	BasisTVA AmountBasis = "TVA" // Tax portion only
	BasisPAU AmountBasis = "PAU" // Unit price as recorded
)

// OperationTemplate maps a (operation type, payment mode) pair to the
// accounts, sense and journal used to auto-generate entries.
// The pair is unique per tenant.
type OperationTemplate struct {
	TemplateID       string           `json:"templateID"` // Primary key (UUID)
	TenantID         string           `json:"tenantID"`
	OperationType    string           `json:"operationType"` // e.g. "ACHAT"
	PaymentMode      string           `json:"paymentMode"`   // e.g. "ESPECE"
	PrincipalAccount string           `json:"principalAccount"`
	IsStaticAccount  bool             `json:"isStaticAccount"` // Counter-account fixed (e.g. VAT) vs dynamic
	PrincipalSense   Sense            `json:"principalSense"`
	JournalID        string           `json:"journalID"`
	AmountBasis      AmountBasis      `json:"amountBasis"`
	ClientCeiling    *decimal.Decimal `json:"clientCeiling,omitempty"`
	IsActive         bool             `json:"isActive"`
	AuditFields
}

// CounterAccountPolicy describes how the counter-account of a generated
// entry is resolved: a fixed account number, or a dynamic default chosen
// by the principal sense (receivable vs payable).
type CounterAccountPolicy struct {
	Fixed  bool
	Number string // Set when Fixed
}

// CounterPolicy resolves the template's counter-account policy once.
// staticAccount is the configured fixed counter-account (typically VAT).
func (t OperationTemplate) CounterPolicy(staticAccount string) CounterAccountPolicy {
	if t.IsStaticAccount {
		return CounterAccountPolicy{Fixed: true, Number: staticAccount}
	}
	return CounterAccountPolicy{}
}

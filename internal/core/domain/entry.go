package domain

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Sense indicates the debit or credit direction of an entry line.
type Sense string

const (
	Debit  Sense = "DEBIT"
	Credit Sense = "CREDIT"
)

// Opposite returns the inverse sense.
func (s Sense) Opposite() Sense {
	if s == Debit {
		return Credit
	}
	return Debit
}

// EntryStatus is the lifecycle state of a journal entry.
// The only transition is Draft -> Validated, and it is terminal.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Validated EntryStatus = "VALIDATED"
)

// generatedNumberPattern is the shape of entry numbers produced by
// automatic generation: ECR-<source document id>-<epoch millis>.
var generatedNumberPattern = regexp.MustCompile(`^ECR-[0-9a-f-]+-\d+$`)

// Entry is a journal entry: a balanced set of debit/credit lines
// representing one accounting event.
type Entry struct {
	EntryID     string          `json:"entryID"` // Primary key (UUID)
	TenantID    string          `json:"tenantID"`
	Number      string          `json:"number"`
	Label       string          `json:"label"`
	EntryDate   time.Time       `json:"entryDate"`
	JournalID   string          `json:"journalID"` // FK -> Journal
	PeriodID    string          `json:"periodID"`  // FK -> FiscalPeriod
	Reference   string          `json:"reference"` // External reference (invoice no, etc.)
	Notes       string          `json:"notes"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Status      EntryStatus     `json:"status"`
	ValidatedAt *time.Time      `json:"validatedAt,omitempty"`
	ValidatedBy string          `json:"validatedBy,omitempty"`
	AuditFields
	Lines []EntryLine `json:"lines,omitempty"` // Often loaded separately
}

// IsValidated reports whether the entry reached its terminal state.
func (e Entry) IsValidated() bool {
	return e.Status == Validated
}

// ValidGeneratedNumber reports whether number matches the automatic
// generation pattern.
func ValidGeneratedNumber(number string) bool {
	return generatedNumberPattern.MatchString(number)
}

// EntryLine is one debit-or-credit row within an entry, tied to one account.
// Exactly one of Debit/Credit is non-zero, consistent with Sense.
type EntryLine struct {
	LineID        string          `json:"lineID"` // Unique within (tenant, entry)
	TenantID      string          `json:"tenantID"`
	EntryID       string          `json:"entryID"` // Owning entry
	AccountNumber string          `json:"accountNumber"`
	Label         string          `json:"label"`
	Sense         Sense           `json:"sense"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Notes         string          `json:"notes"`
	EntryDate     time.Time       `json:"entryDate"`
	AuditFields
}

// Amount returns the non-zero side of the line.
func (l EntryLine) Amount() decimal.Decimal {
	if l.Sense == Debit {
		return l.Debit
	}
	return l.Credit
}

package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SourceType discriminates the closed set of documents that automatic
// entry generation knows how to post.
type SourceType string

const (
	SourceTransaction SourceType = "TRANSACTION"
	SourceInvoice     SourceType = "FACTURE"
	SourceStock       SourceType = "STOCK"
)

// StockDirection is the movement direction of a stock source document.
type StockDirection string

const (
	StockIn  StockDirection = "ENTRY"
	StockOut StockDirection = "EXIT"
)

// DefaultVATRate is the OHADA-region standard VAT rate applied when an
// invoice does not carry its own rate.
var DefaultVATRate = decimal.New(18, -2) // 0.18

// SourceDocument is the closed union of postable source documents.
// Type selects which fields are meaningful:
//   - TRANSACTION: Amount
//   - FACTURE: Amount (tax inclusive), NetAmount (tax exclusive, may be
//     zero and derived), VATRate (zero means DefaultVATRate)
//   - STOCK: Amount, Direction
type SourceDocument struct {
	DocID     string          `json:"docID"` // Primary key (UUID)
	TenantID  string          `json:"tenantID"`
	Type      SourceType      `json:"type"`
	Label     string          `json:"label"`
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount"`
	NetAmount decimal.Decimal `json:"netAmount"`
	VATRate   decimal.Decimal `json:"vatRate"`
	Direction StockDirection  `json:"direction,omitempty"`
	DocDate   time.Time       `json:"docDate"`
	AuditFields
}

// EffectiveVATRate returns the document VAT rate, defaulting when unset.
func (d SourceDocument) EffectiveVATRate() decimal.Decimal {
	if d.VATRate.IsPositive() {
		return d.VATRate
	}
	return DefaultVATRate
}

// VATSplit returns (net, vat) amounts for an invoice document. The net
// amount is rounded to 2 decimals and the VAT portion is the exact
// remainder, so net + vat always equals the gross amount.
func (d SourceDocument) VATSplit() (decimal.Decimal, decimal.Decimal) {
	net := d.NetAmount
	if net.IsZero() {
		one := decimal.New(1, 0)
		net = d.Amount.Div(one.Add(d.EffectiveVATRate())).Round(2)
	}
	return net, d.Amount.Sub(net)
}

// AmountFor selects the document amount matching the template basis.
func (d SourceDocument) AmountFor(basis AmountBasis) decimal.Decimal {
	switch basis {
	case BasisHT:
		net, _ := d.VATSplit()
		return net
	case BasisTVA:
		_, vat := d.VATSplit()
		return vat
	default: // TTC, PAU
		return d.Amount
	}
}

// LineDraft is a not-yet-persisted entry line produced by generation.
type LineDraft struct {
	AccountNumber string
	Label         string
	Sense         Sense
	Amount        decimal.Decimal
}

// GenerationAccounts carries the resolved account numbers used by
// BuildLineDrafts. All of them must already be validated as active.
type GenerationAccounts struct {
	Principal string
	Counter   string
	VAT       string
}

// BuildLineDrafts produces the balanced line set for a source document.
// TRANSACTION and STOCK yield two lines, FACTURE yields three (principal,
// VAT, counter-party). The result always balances by construction.
func BuildLineDrafts(doc SourceDocument, tpl OperationTemplate, accounts GenerationAccounts) ([]LineDraft, error) {
	if !doc.Amount.IsPositive() {
		return nil, fmt.Errorf("source document %s has non-positive amount %s", doc.DocID, doc.Amount)
	}

	switch doc.Type {
	case SourceTransaction:
		amount := doc.AmountFor(tpl.AmountBasis)
		return []LineDraft{
			{AccountNumber: accounts.Principal, Label: doc.Label, Sense: tpl.PrincipalSense, Amount: amount},
			{AccountNumber: accounts.Counter, Label: doc.Label, Sense: tpl.PrincipalSense.Opposite(), Amount: amount},
		}, nil

	case SourceInvoice:
		net, vat := doc.VATSplit()
		lines := []LineDraft{
			{AccountNumber: accounts.Principal, Label: doc.Label, Sense: tpl.PrincipalSense, Amount: doc.Amount},
			{AccountNumber: accounts.VAT, Label: doc.Label + " TVA", Sense: tpl.PrincipalSense.Opposite(), Amount: vat},
			{AccountNumber: accounts.Counter, Label: doc.Label, Sense: tpl.PrincipalSense.Opposite(), Amount: net},
		}
		if vat.IsZero() {
			// No tax portion: collapse to the two-line shape.
			lines = append(lines[:1], lines[2])
		}
		return lines, nil

	case SourceStock:
		sense := tpl.PrincipalSense
		if doc.Direction == StockOut {
			sense = sense.Opposite()
		}
		amount := doc.AmountFor(tpl.AmountBasis)
		return []LineDraft{
			{AccountNumber: accounts.Principal, Label: doc.Label, Sense: sense, Amount: amount},
			{AccountNumber: accounts.Counter, Label: doc.Label, Sense: sense.Opposite(), Amount: amount},
		}, nil

	default:
		return nil, fmt.Errorf("unknown source document type %q for document %s", doc.Type, doc.DocID)
	}
}

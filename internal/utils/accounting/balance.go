package accounting

import (
	"fmt"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum absolute difference between total
// debits and total credits of a validatable entry.
var BalanceTolerance = decimal.New(1, -2) // 0.01

// ComputeTotals sums the debit and credit sides of a line set.
func ComputeTotals(lines []domain.EntryLine) (decimal.Decimal, decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// IsBalanced reports whether |totalDebit - totalCredit| is within tolerance.
func IsBalanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThanOrEqual(BalanceTolerance)
}

// NormalizeLine forces the side opposite to the line sense to zero and
// checks that the carried side is strictly positive. The caller-supplied
// opposite amount is discarded, never reconciled.
func NormalizeLine(line domain.EntryLine) (domain.EntryLine, error) {
	switch line.Sense {
	case domain.Debit:
		if !line.Debit.IsPositive() {
			return line, fmt.Errorf("debit line requires a positive debit amount, got %s", line.Debit)
		}
		line.Credit = decimal.Zero
	case domain.Credit:
		if !line.Credit.IsPositive() {
			return line, fmt.Errorf("credit line requires a positive credit amount, got %s", line.Credit)
		}
		line.Debit = decimal.Zero
	default:
		return line, fmt.Errorf("unknown sense %q", line.Sense)
	}
	return line, nil
}

// LineFromDraft materializes a generated line draft on the proper side.
func LineFromDraft(draft domain.LineDraft) domain.EntryLine {
	line := domain.EntryLine{
		AccountNumber: draft.AccountNumber,
		Label:         draft.Label,
		Sense:         draft.Sense,
	}
	if draft.Sense == domain.Debit {
		line.Debit = draft.Amount
		line.Credit = decimal.Zero
	} else {
		line.Credit = draft.Amount
		line.Debit = decimal.Zero
	}
	return line
}

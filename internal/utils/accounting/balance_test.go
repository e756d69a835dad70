package accounting_test

import (
	"testing"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/mkamgno/ohada_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debitLine(amount float64) domain.EntryLine {
	return domain.EntryLine{Sense: domain.Debit, Debit: decimal.NewFromFloat(amount)}
}

func creditLine(amount float64) domain.EntryLine {
	return domain.EntryLine{Sense: domain.Credit, Credit: decimal.NewFromFloat(amount)}
}

func TestComputeTotals(t *testing.T) {
	lines := []domain.EntryLine{debitLine(1180), creditLine(1000), creditLine(180)}

	totalDebit, totalCredit := accounting.ComputeTotals(lines)
	assert.True(t, totalDebit.Equal(decimal.NewFromInt(1180)))
	assert.True(t, totalCredit.Equal(decimal.NewFromInt(1180)))
}

func TestIsBalanced(t *testing.T) {
	tests := []struct {
		name   string
		debit  float64
		credit float64
		want   bool
	}{
		{name: "exact balance", debit: 1180, credit: 1180, want: true},
		{name: "within tolerance", debit: 100.00, credit: 100.01, want: true},
		{name: "just over tolerance", debit: 100.00, credit: 100.02, want: false},
		{name: "grossly unbalanced", debit: 1180, credit: 1000, want: false},
		{name: "zero on both sides", debit: 0, credit: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.IsBalanced(decimal.NewFromFloat(tt.debit), decimal.NewFromFloat(tt.credit))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeLine_ForcesOppositeSideToZero(t *testing.T) {
	line := domain.EntryLine{
		Sense:  domain.Debit,
		Debit:  decimal.NewFromInt(100),
		Credit: decimal.NewFromInt(55), // Caller noise, must be discarded
	}

	normalized, err := accounting.NormalizeLine(line)
	require.NoError(t, err)
	assert.True(t, normalized.Debit.Equal(decimal.NewFromInt(100)))
	assert.True(t, normalized.Credit.IsZero())

	line = domain.EntryLine{
		Sense:  domain.Credit,
		Debit:  decimal.NewFromInt(55),
		Credit: decimal.NewFromInt(100),
	}

	normalized, err = accounting.NormalizeLine(line)
	require.NoError(t, err)
	assert.True(t, normalized.Credit.Equal(decimal.NewFromInt(100)))
	assert.True(t, normalized.Debit.IsZero())
}

func TestNormalizeLine_RejectsNonPositiveCarriedSide(t *testing.T) {
	_, err := accounting.NormalizeLine(domain.EntryLine{Sense: domain.Debit, Debit: decimal.Zero})
	assert.Error(t, err)

	_, err = accounting.NormalizeLine(domain.EntryLine{Sense: domain.Credit, Credit: decimal.NewFromInt(-5)})
	assert.Error(t, err)

	_, err = accounting.NormalizeLine(domain.EntryLine{Sense: "SIDEWAYS", Debit: decimal.NewFromInt(1)})
	assert.Error(t, err)
}

func TestLineFromDraft(t *testing.T) {
	draft := domain.LineDraft{AccountNumber: "701000", Sense: domain.Credit, Amount: decimal.NewFromInt(1000)}

	line := accounting.LineFromDraft(draft)
	assert.Equal(t, "701000", line.AccountNumber)
	assert.True(t, line.Credit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, line.Debit.IsZero())
}

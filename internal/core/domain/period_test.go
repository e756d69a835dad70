package domain_test

import (
	"testing"
	"time"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFiscalPeriod_Overlaps(t *testing.T) {
	january := domain.FiscalPeriod{StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 31)}

	tests := []struct {
		name  string
		other domain.FiscalPeriod
		want  bool
	}{
		{
			name:  "straddling ranges overlap",
			other: domain.FiscalPeriod{StartDate: day(2025, 1, 15), EndDate: day(2025, 2, 5)},
			want:  true,
		},
		{
			name:  "contained range overlaps",
			other: domain.FiscalPeriod{StartDate: day(2025, 1, 10), EndDate: day(2025, 1, 20)},
			want:  true,
		},
		{
			name:  "shared boundary day overlaps",
			other: domain.FiscalPeriod{StartDate: day(2025, 1, 31), EndDate: day(2025, 2, 28)},
			want:  true,
		},
		{
			name:  "adjacent month does not overlap",
			other: domain.FiscalPeriod{StartDate: day(2025, 2, 1), EndDate: day(2025, 2, 28)},
			want:  false,
		},
		{
			name:  "earlier month does not overlap",
			other: domain.FiscalPeriod{StartDate: day(2024, 12, 1), EndDate: day(2024, 12, 31)},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, january.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(january))
		})
	}
}

func TestFiscalPeriod_Contains(t *testing.T) {
	p := domain.FiscalPeriod{StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 31)}

	assert.True(t, p.Contains(day(2025, 1, 1)))
	assert.True(t, p.Contains(day(2025, 1, 31)))
	assert.True(t, p.Contains(time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(day(2025, 2, 1)))
	assert.False(t, p.Contains(day(2024, 12, 31)))
}

func TestValidPeriodCode(t *testing.T) {
	assert.True(t, domain.ValidPeriodCode("2025-01"))
	assert.True(t, domain.ValidPeriodCode("2025-12"))
	assert.False(t, domain.ValidPeriodCode("2025-13"))
	assert.False(t, domain.ValidPeriodCode("2025-1"))
	assert.False(t, domain.ValidPeriodCode("25-01"))
}

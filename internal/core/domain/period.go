package domain

import (
	"regexp"
	"time"
)

// periodCodePattern restricts period codes to the YYYY-MM form.
var periodCodePattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// FiscalPeriod is a closed date range within which entries may be posted.
// Ranges never overlap for the same tenant. Closing is terminal.
type FiscalPeriod struct {
	PeriodID  string     `json:"periodID"` // Primary key (UUID)
	TenantID  string     `json:"tenantID"`
	Code      string     `json:"code"` // YYYY-MM, unique per tenant
	StartDate time.Time  `json:"startDate"`
	EndDate   time.Time  `json:"endDate"` // Must be >= StartDate
	IsClosed  bool       `json:"isClosed"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
	AuditFields
}

// ValidPeriodCode reports whether code satisfies the YYYY-MM rule.
func ValidPeriodCode(code string) bool {
	return periodCodePattern.MatchString(code)
}

// Contains reports whether the given date falls inside the period range,
// boundaries included. Comparison is on calendar dates.
func (p FiscalPeriod) Contains(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(p.StartDate)) && !d.After(truncateToDay(p.EndDate))
}

// Overlaps reports whether two period ranges intersect, boundaries included.
func (p FiscalPeriod) Overlaps(other FiscalPeriod) bool {
	return !(truncateToDay(p.EndDate).Before(truncateToDay(other.StartDate)) ||
		truncateToDay(p.StartDate).After(truncateToDay(other.EndDate)))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

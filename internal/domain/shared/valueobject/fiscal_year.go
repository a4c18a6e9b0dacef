package valueobject

import (
	"fmt"
	"time"
)

// DefaultFiscalYearStartMonth is April, the start of the Indian fiscal year.
const DefaultFiscalYearStartMonth = time.April

// FiscalYear identifies a fiscal year by its starting calendar year.
// FiscalYear(2025) with an April start covers 2025-04-01 through 2026-03-31.
type FiscalYear int

// FiscalYearOf returns the fiscal year containing t for the given start month.
func FiscalYearOf(t time.Time, startMonth time.Month) FiscalYear {
	if t.Month() < startMonth {
		return FiscalYear(t.Year() - 1)
	}
	return FiscalYear(t.Year())
}

// CurrentFiscalYear returns the fiscal year containing the current time.
func CurrentFiscalYear(startMonth time.Month) FiscalYear {
	return FiscalYearOf(time.Now(), startMonth)
}

// Start returns the first instant of the fiscal year in UTC.
func (fy FiscalYear) Start(startMonth time.Month) time.Time {
	return time.Date(int(fy), startMonth, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following fiscal year in UTC.
// The fiscal year covers [Start, End).
func (fy FiscalYear) End(startMonth time.Month) time.Time {
	return fy.Start(startMonth).AddDate(1, 0, 0)
}

// Contains reports whether t falls within the fiscal year.
func (fy FiscalYear) Contains(t time.Time, startMonth time.Month) bool {
	return !t.Before(fy.Start(startMonth)) && t.Before(fy.End(startMonth))
}

// Label returns the display form, e.g. "2025-26".
func (fy FiscalYear) Label() string {
	return fmt.Sprintf("%d-%02d", int(fy), (int(fy)+1)%100)
}

// IsValid reports whether the fiscal year is within a plausible range.
func (fy FiscalYear) IsValid() bool {
	return fy >= 1990 && fy <= 2999
}
